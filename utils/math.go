package utils

import (
	"math"
)

// POW is x^n for an integer n, multiplying out small powers
func POW(x float64, n int) (y float64) {
	var (
		p = n
	)
	if p < 0 {
		p = -p
	}
	if p > 8 {
		return math.Pow(x, float64(n))
	}
	y = 1
	for base := x; p > 0; p >>= 1 {
		if p&1 == 1 {
			y *= base
		}
		base *= base
	}
	if n < 0 {
		y = 1. / y
	}
	return
}
