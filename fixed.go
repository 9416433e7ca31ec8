package glyphvg

import "golang.org/x/image/math/fixed"

// FixedToFloat converts a 26.6 fixed-point value to float32.
// Integer multiples of 64 convert exactly.
func FixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}

// FloatToFixed converts a float64 to 26.6 fixed point, rounding to the
// nearest 1/64.
func FloatToFixed(v float64) fixed.Int26_6 {
	if v < 0 {
		return -fixed.Int26_6(-v*64 + 0.5)
	}
	return fixed.Int26_6(v*64 + 0.5)
}
