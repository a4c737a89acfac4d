package ode

import (
	"gonum.org/v1/gonum/floats"
)

// Euler is the explicit first order method with a step doubling error
// estimate. The two half step solution is kept.
type Euler struct {
	adaptive
	sys        System
	dqdt, qMid []float64
}

func NewEuler(sys System, dict Dict) (e *Euler) {
	n := sys.NEqns()
	e = &Euler{
		sys:  sys,
		dqdt: make([]float64, n),
		qMid: make([]float64, n),
	}
	e.adaptive = newAdaptive("Euler", 1, n, dict, e.step)
	return
}

func (e *Euler) step(t0, h float64, q0 []float64, li int, q, qErr []float64) {
	e.sys.Derivatives(t0, q0, li, e.dqdt)
	// Full step lands in qErr
	floats.AddScaledTo(qErr, q0, h, e.dqdt)
	floats.AddScaledTo(e.qMid, q0, 0.5*h, e.dqdt)
	e.sys.Derivatives(t0+0.5*h, e.qMid, li, e.dqdt)
	floats.AddScaledTo(q, e.qMid, 0.5*h, e.dqdt)
	floats.SubTo(qErr, q, qErr)
}
