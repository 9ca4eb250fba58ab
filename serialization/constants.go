// Package serialization implements the writers of the files consumed by the proof
// circuits: the Noir constants file, the prover inputs and a JSON export of the witness.
package serialization

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/greco-zk/greco/bounds"
)

var (
	// ErrUnknownCircuit is returned for a circuit name that has no constants layout.
	ErrUnknownCircuit = errors.New("unknown circuit")
	// ErrOverflow is returned when a bound does not fit the integer type declared for it.
	ErrOverflow = errors.New("bound overflows its declared type")
)

// Circuit names the proof circuit the constants are generated for.
type Circuit string

const (
	// CircuitPkTRBFV is the threshold BFV public-key encryption circuit.
	CircuitPkTRBFV = Circuit("pk_trbfv")
	// CircuitPkPVW is the PVW public-key encryption circuit.
	CircuitPkPVW = Circuit("pk_pvw")
)

// ParseCircuit returns the Circuit of the given name.
func ParseCircuit(name string) (Circuit, error) {
	switch c := Circuit(name); c {
	case CircuitPkTRBFV, CircuitPkPVW:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCircuit, name)
	}
}

func toInt64s(v []*big.Int, field string) ([]int64, error) {
	res := make([]int64, len(v))
	for i := range v {
		if !v[i].IsInt64() {
			return nil, fmt.Errorf("%w: %s[%d]=%s as i64", ErrOverflow, field, i, v[i])
		}
		res[i] = v[i].Int64()
	}
	return res, nil
}

func toUint64s(v []*big.Int, field string) ([]uint64, error) {
	res := make([]uint64, len(v))
	for i := range v {
		if !v[i].IsUint64() {
			return nil, fmt.Errorf("%w: %s[%d]=%s as u64", ErrOverflow, field, i, v[i])
		}
		res[i] = v[i].Uint64()
	}
	return res, nil
}

func formatInteger[T constraints.Integer](x T) string {
	if x < 0 {
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatUint(uint64(x), 10)
}

func formatList[T constraints.Integer](v []T) string {
	b := make([]byte, 0, 24*len(v))
	for i := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, formatInteger(v[i])...)
	}
	return string(b)
}

// WriteConstants writes the Noir global constants of the bounds for the given circuit.
func WriteConstants(w io.Writer, b *bounds.Bounds, circuit Circuit) (err error) {

	if _, err = ParseCircuit(string(circuit)); err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	sk, err := toUint64s([]*big.Int{b.SK}, "SK_BOUND")
	if err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	e, err := toUint64s([]*big.Int{b.E}, "E_BOUND")
	if err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	r1Low, err := toInt64s(b.R1Low, "R1_LOW_BOUNDS")
	if err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	r1Up, err := toUint64s(b.R1Up, "R1_UP_BOUNDS")
	if err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	r2, err := toUint64s(b.R2, "R2_BOUNDS")
	if err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	L := len(b.Moduli)

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "/// `N` is the degree of the cyclotomic polynomial `X^N + 1` of the ring `Rq = Zq[X]/(X^N + 1)`.")
	fmt.Fprintf(bw, "pub global N: u32 = %d;\n", b.Degree)

	fmt.Fprintln(bw, "/// `L` is the number of CRT moduli of `q`.")
	fmt.Fprintf(bw, "pub global L: u32 = %d;\n", L)

	eName := "E_BOUND"
	if circuit == CircuitPkTRBFV {
		eName = "EEK_BOUND"
	}

	fmt.Fprintf(bw, "/// The coefficients of `e` lie in `[-%s, %s]`, %s being the Gaussian bound ceil(6 * sigma).\n", eName, eName, eName)
	fmt.Fprintf(bw, "pub global %s: u64 = %d;\n", eName, e[0])

	fmt.Fprintln(bw, "/// The coefficients of `sk` lie in `[-SK_BOUND, SK_BOUND]`.")
	fmt.Fprintf(bw, "pub global SK_BOUND: u64 = %d;\n", sk[0])

	fmt.Fprintln(bw, "/// The coefficients of `r1is[i]` lie in `[R1_LOW_BOUNDS[i], R1_UP_BOUNDS[i]]`, with")
	fmt.Fprintln(bw, "/// R1_LOW_BOUNDS[i] = floor((ptxt_low * |K0[i]| - ((N * B + 2) * (qi - 1) / 2 + B)) / qi) and")
	fmt.Fprintln(bw, "/// R1_UP_BOUNDS[i] = floor((ptxt_high * |K0[i]| + (N * B + 2) * (qi - 1) / 2 + B) / qi).")
	fmt.Fprintf(bw, "pub global R1_LOW_BOUNDS: [i64; %d] = [%s];\n", L, formatList(r1Low))
	fmt.Fprintf(bw, "pub global R1_UP_BOUNDS: [u64; %d] = [%s];\n", L, formatList(r1Up))

	fmt.Fprintln(bw, "/// The coefficients of `r2is[i]` lie in `[-R2_BOUNDS[i], R2_BOUNDS[i]]` with R2_BOUNDS[i] = (qi - 1) / 2.")
	fmt.Fprintf(bw, "pub global R2_BOUNDS: [u64; %d] = [%s];\n", L, formatList(r2))

	fmt.Fprintln(bw, "/// `QIS[i]` is the i-th CRT modulus of the ciphertext modulus `q`.")
	fmt.Fprintf(bw, "pub global QIS: [Field; %d] = [%s];\n", L, formatList(b.Moduli))

	fmt.Fprintln(bw, "/// Number of coefficients absorbed by the sponge.")
	fmt.Fprintf(bw, "pub global SIZE: u32 = %d;\n", b.Size)

	fmt.Fprintln(bw, "/// Domain separation tag of the SAFE sponge.")
	fmt.Fprintf(bw, "pub global TAG: Field = %s;\n", b.Tag)

	if circuit == CircuitPkPVW {
		fmt.Fprintln(bw, "/// Security dimension of the PVW encryption.")
		fmt.Fprintln(bw, "pub global K: u32 = 2;")
		fmt.Fprintln(bw, "pub global N_PARTIES: u32 = 3;")
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("cannot WriteConstants: %w", err)
	}

	return nil
}
