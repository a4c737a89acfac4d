package ode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goblast/utils"
)

// Two stage L-stable Rosenbrock coefficients
var (
	ros_gamma = 1 + 1/math.Sqrt(2)
	ros_a21   = 1 / ros_gamma
	ros_c2    = 1.
	ros_c21   = -2 / ros_gamma
	ros_b1    = 3 / (2 * ros_gamma)
	ros_b2    = 1 / (2 * ros_gamma)
	ros_e1    = ros_b1 - 1/ros_gamma
	ros_e2    = ros_b2
	ros_d1    = ros_gamma
	ros_d2    = -ros_gamma
)

/*
Rosenbrock12 is a linearly implicit second order method with an embedded
first order error estimate. Each step factorizes

	I/(gamma*h) - J

once and reuses it for both stages, which keeps stiff drag relaxation stable
at steps far beyond the explicit limit.
*/
type Rosenbrock12 struct {
	adaptive
	sys              System
	n                int
	J                utils.DOK
	A                *mat.Dense
	lu               mat.LU
	dfdt, dqdt       []float64
	k1, k2, rhs, tmp *mat.VecDense
}

func NewRosenbrock12(sys System, dict Dict) (r *Rosenbrock12) {
	n := sys.NEqns()
	r = &Rosenbrock12{
		sys:  sys,
		n:    n,
		J:    utils.NewDOK(n, n),
		A:    mat.NewDense(n, n, nil),
		dfdt: make([]float64, n),
		dqdt: make([]float64, n),
		k1:   mat.NewVecDense(n, nil),
		k2:   mat.NewVecDense(n, nil),
		rhs:  mat.NewVecDense(n, nil),
		tmp:  mat.NewVecDense(n, nil),
	}
	r.adaptive = newAdaptive("Rosenbrock12", 2, n, dict, r.step)
	return
}

func (r *Rosenbrock12) step(t0, h float64, q0 []float64, li int, q, qErr []float64) {
	var (
		n      = r.n
		qTmp   = r.tmp.RawVector().Data
		dfdt   = r.dfdt
		dqdt   = r.dqdt
		rhs    = r.rhs.RawVector().Data
		k1, k2 = r.k1.RawVector().Data, r.k2.RawVector().Data
	)
	r.J.Reset()
	r.sys.Jacobian(t0, q0, li, dfdt, &r.J)
	r.J.SetReadOnly("Rosenbrock12 Jacobian")
	r.sys.Derivatives(t0, q0, li, dqdt)

	r.A.Zero()
	r.J.M.DoNonZero(func(i, j int, v float64) {
		r.A.Set(i, j, -v)
	})
	for i := 0; i < n; i++ {
		r.A.Set(i, i, r.A.At(i, i)+1/(ros_gamma*h))
	}
	r.lu.Factorize(r.A)

	// k1
	for i := 0; i < n; i++ {
		rhs[i] = dqdt[i] + h*ros_d1*dfdt[i]
	}
	r.solve(r.k1)
	for i := 0; i < n; i++ {
		qTmp[i] = q0[i] + ros_a21*k1[i]
	}

	// k2
	r.sys.Derivatives(t0+ros_c2*h, qTmp, li, dqdt)
	for i := 0; i < n; i++ {
		rhs[i] = dqdt[i] + h*ros_d2*dfdt[i] + ros_c21*k1[i]/h
	}
	r.solve(r.k2)

	for i := 0; i < n; i++ {
		q[i] = q0[i] + ros_b1*k1[i] + ros_b2*k2[i]
		qErr[i] = ros_e1*k1[i] + ros_e2*k2[i]
	}
}

func (r *Rosenbrock12) solve(k *mat.VecDense) {
	err := r.lu.SolveVecTo(k, false, r.rhs)
	if cond, ok := err.(mat.Condition); ok && !math.IsInf(float64(cond), 1) {
		// Ill conditioned but solved
		return
	}
	if err != nil {
		panic(fmt.Errorf("rosenbrock linear solve failed: %w", err))
	}
}
