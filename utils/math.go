package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// MinSlice returns the smallest entry, +Inf for an empty slice.
func MinSlice(v []float64) (min float64) {
	min = math.Inf(1)
	for _, val := range v {
		if val < min {
			min = val
		}
	}
	return
}

// MaxInt returns the largest entry, 0 for an empty slice.
func MaxInt(v []int) (m int) {
	for i, val := range v {
		if i == 0 || val > m {
			m = val
		}
	}
	return
}
