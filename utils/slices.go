// Package utils implements generic slice helpers shared by the other packages.
package utils

import (
	"golang.org/x/exp/constraints"
)

// ReverseSlice returns a new slice with the elements of s in reverse order.
func ReverseSlice[V any](s []V) []V {
	r := make([]V, len(s))
	for i := range s {
		r[len(s)-1-i] = s[i]
	}
	return r
}

// GetDistincts returns the list of distinct elements in v, in order of first occurrence.
func GetDistincts[V comparable](v []V) (vd []V) {
	m := map[V]bool{}
	for _, vi := range v {
		if !m[vi] {
			m[vi] = true
			vd = append(vd, vi)
		}
	}
	return
}

// MaxSlice returns the maximum value of s, or the zero value if s is empty.
func MaxSlice[V constraints.Ordered](s []V) (max V) {
	for i := range s {
		if i == 0 || s[i] > max {
			max = s[i]
		}
	}
	return
}

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo[V constraints.Integer](x V) bool {
	return x > 0 && x&(x-1) == 0
}
