// Package units formats drawing numbers. Coordinates always carry exactly two
// decimals; values shown to people (page sizes, dimension text) use the
// shortest form after rounding to two decimals.
package units

import (
	"math"
	"strconv"
)

// MMPerInch converts inches to millimetres.
const MMPerInch = 25.4

// Coord formats a coordinate with exactly two decimals. Negative zero is
// normalized to "0.00".
func Coord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// Drop the sign of negative zero.
		return 0
	}
	return r
}

// Number formats v in its shortest form after rounding to two decimals, so
// 420 prints as "420" and 279.4 as "279.4".
func Number(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', -1, 64)
}

// InchesToMM converts inches to millimetres.
func InchesToMM(in float64) float64 {
	return in * MMPerInch
}
