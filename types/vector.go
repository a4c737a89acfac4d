package types

import "math"

// Vector is a Cartesian 3-vector. Unused components stay zero on reduced
// dimension meshes.
type Vector [3]float64

func (v Vector) Dot(a Vector) float64 {
	return v[0]*a[0] + v[1]*a[1] + v[2]*a[2]
}

func (v Vector) Add(a Vector) Vector {
	return Vector{v[0] + a[0], v[1] + a[1], v[2] + a[2]}
}

func (v Vector) Sub(a Vector) Vector {
	return Vector{v[0] - a[0], v[1] - a[1], v[2] - a[2]}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{s * v[0], s * v[1], s * v[2]}
}

func (v Vector) MagSqr() float64 { return v.Dot(v) }

func (v Vector) Mag() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v/|v|, or the zero vector when |v| is zero.
func (v Vector) Normalized() Vector {
	m := v.Mag()
	if m == 0 {
		return Vector{}
	}
	return v.Scale(1. / m)
}
