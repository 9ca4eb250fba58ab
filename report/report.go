// Package report summarizes how much of their bounds the witness vectors use.
package report

import (
	"fmt"
	"io"
	"math/big"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"github.com/greco-zk/greco/bounds"
	"github.com/greco-zk/greco/utils"
	"github.com/greco-zk/greco/utils/bignum"
	"github.com/greco-zk/greco/vectors"
)

// Component summarizes the witness of a single RNS component.
type Component struct {
	Modulus uint64

	R1Max    *big.Int
	R1Mean   float64
	R1StdDev float64
	// R1Usage is max|r1| over the largest absolute r1 bound.
	R1Usage float64

	R2Max    *big.Int
	R2Mean   float64
	R2StdDev float64
	R2Usage  float64
}

// Report summarizes a witness against its bounds.
type Report struct {
	Degree int
	Tag    string

	SKMax   *big.Int
	SKUsage float64
	EMax    *big.Int
	EUsage  float64

	GaussianTailLog2 float64

	// MaxUsage is the largest usage ratio over all fields and components.
	MaxUsage float64

	Components []Component
}

func toFloat64s(v []*big.Int) stats.Float64Data {
	data := make(stats.Float64Data, len(v))
	for i := range v {
		data[i], _ = new(big.Float).SetInt(v[i]).Float64()
	}
	return data
}

func ratio(a, b *big.Int) float64 {
	if b.Sign() == 0 {
		return 0
	}
	r, _ := new(big.Float).Quo(new(big.Float).SetInt(a), new(big.Float).SetInt(b)).Float64()
	return r
}

func meanStdDev(v []*big.Int) (mean, stddev float64, err error) {
	data := toFloat64s(v)
	if mean, err = stats.Mean(data); err != nil {
		return
	}
	stddev, err = stats.StandardDeviation(data)
	return
}

// Summarize computes the Report of vecs against b.
func Summarize(vecs *vectors.Vectors, b *bounds.Bounds) (*Report, error) {

	if err := vecs.CheckCorrectLengths(b.NumModuli(), b.Degree); err != nil {
		return nil, fmt.Errorf("cannot Summarize: %w", err)
	}

	r := &Report{
		Degree:           b.Degree,
		Tag:              b.Tag.String(),
		SKMax:            bignum.MaxAbs(vecs.SK),
		EMax:             bignum.MaxAbs(vecs.E),
		GaussianTailLog2: b.GaussianTailLog2,
		Components:       make([]Component, b.NumModuli()),
	}

	r.SKUsage = ratio(r.SKMax, b.SK)
	r.EUsage = ratio(r.EMax, b.E)

	usages := []float64{r.SKUsage, r.EUsage}

	for i := range r.Components {

		c := Component{
			Modulus: b.Moduli[i],
			R1Max:   bignum.MaxAbs(vecs.R1is[i]),
			R2Max:   bignum.MaxAbs(vecs.R2is[i]),
		}

		var err error
		if c.R1Mean, c.R1StdDev, err = meanStdDev(vecs.R1is[i]); err != nil {
			return nil, fmt.Errorf("cannot Summarize: r1is[%d]: %w", i, err)
		}

		if c.R2Mean, c.R2StdDev, err = meanStdDev(vecs.R2is[i]); err != nil {
			return nil, fmt.Errorf("cannot Summarize: r2is[%d]: %w", i, err)
		}

		r1Bound := new(big.Int).Abs(b.R1Low[i])
		if b.R1Up[i].Cmp(r1Bound) > 0 {
			r1Bound.Set(b.R1Up[i])
		}

		c.R1Usage = ratio(c.R1Max, r1Bound)
		c.R2Usage = ratio(c.R2Max, b.R2[i])

		r.Components[i] = c
		usages = append(usages, c.R1Usage, c.R2Usage)
	}

	r.MaxUsage = utils.MaxSlice(usages)

	return r, nil
}

// WriteHTML renders the bound usage of each component as a bar chart.
func (r *Report) WriteHTML(w io.Writer) error {

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Witness bound usage",
			Subtitle: fmt.Sprintf("N=%d, tag=%s", r.Degree, r.Tag),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "max / bound", Max: 1}),
	)

	labels := make([]string, len(r.Components))
	r1 := make([]opts.BarData, len(r.Components))
	r2 := make([]opts.BarData, len(r.Components))
	for i, c := range r.Components {
		labels[i] = fmt.Sprintf("q%d=%d", i, c.Modulus)
		r1[i] = opts.BarData{Value: c.R1Usage}
		r2[i] = opts.BarData{Value: c.R2Usage}
	}

	bar.SetXAxis(labels).
		AddSeries("r1", r1).
		AddSeries("r2", r2)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("cannot WriteHTML: %w", err)
	}

	return nil
}
