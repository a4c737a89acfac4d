package ode

import (
	"gonum.org/v1/gonum/floats"
)

// Cash-Karp coefficients
const (
	ck_c2 = 1. / 5.
	ck_c3 = 3. / 10.
	ck_c4 = 3. / 5.
	ck_c5 = 1.
	ck_c6 = 7. / 8.

	ck_a21 = 1. / 5.
	ck_a31 = 3. / 40.
	ck_a32 = 9. / 40.
	ck_a41 = 3. / 10.
	ck_a42 = -9. / 10.
	ck_a43 = 6. / 5.
	ck_a51 = -11. / 54.
	ck_a52 = 5. / 2.
	ck_a53 = -70. / 27.
	ck_a54 = 35. / 27.
	ck_a61 = 1631. / 55296.
	ck_a62 = 175. / 512.
	ck_a63 = 575. / 13824.
	ck_a64 = 44275. / 110592.
	ck_a65 = 253. / 4096.

	ck_b1 = 37. / 378.
	ck_b3 = 250. / 621.
	ck_b4 = 125. / 594.
	ck_b6 = 512. / 1771.

	ck_e1 = ck_b1 - 2825./27648.
	ck_e3 = ck_b3 - 18575./48384.
	ck_e4 = ck_b4 - 13525./55296.
	ck_e5 = -277. / 14336.
	ck_e6 = ck_b6 - 1./4.
)

// RKCK45 is the embedded fifth/fourth order Runge-Kutta pair of Cash and
// Karp. The fifth order solution is kept.
type RKCK45 struct {
	adaptive
	sys                    System
	k1, k2, k3, k4, k5, k6 []float64
	qTmp                   []float64
}

func NewRKCK45(sys System, dict Dict) (rk *RKCK45) {
	n := sys.NEqns()
	rk = &RKCK45{
		sys:  sys,
		k1:   make([]float64, n),
		k2:   make([]float64, n),
		k3:   make([]float64, n),
		k4:   make([]float64, n),
		k5:   make([]float64, n),
		k6:   make([]float64, n),
		qTmp: make([]float64, n),
	}
	rk.adaptive = newAdaptive("RKCK45", 4, n, dict, rk.step)
	return
}

func (rk *RKCK45) step(t0, h float64, q0 []float64, li int, q, qErr []float64) {
	var (
		sys  = rk.sys
		qTmp = rk.qTmp
	)
	sys.Derivatives(t0, q0, li, rk.k1)

	for i := range q0 {
		qTmp[i] = q0[i] + h*ck_a21*rk.k1[i]
	}
	sys.Derivatives(t0+ck_c2*h, qTmp, li, rk.k2)

	for i := range q0 {
		qTmp[i] = q0[i] + h*(ck_a31*rk.k1[i]+ck_a32*rk.k2[i])
	}
	sys.Derivatives(t0+ck_c3*h, qTmp, li, rk.k3)

	for i := range q0 {
		qTmp[i] = q0[i] + h*(ck_a41*rk.k1[i]+ck_a42*rk.k2[i]+ck_a43*rk.k3[i])
	}
	sys.Derivatives(t0+ck_c4*h, qTmp, li, rk.k4)

	for i := range q0 {
		qTmp[i] = q0[i] + h*(ck_a51*rk.k1[i]+ck_a52*rk.k2[i]+ck_a53*rk.k3[i]+ck_a54*rk.k4[i])
	}
	sys.Derivatives(t0+ck_c5*h, qTmp, li, rk.k5)

	for i := range q0 {
		qTmp[i] = q0[i] + h*(ck_a61*rk.k1[i]+ck_a62*rk.k2[i]+ck_a63*rk.k3[i]+
			ck_a64*rk.k4[i]+ck_a65*rk.k5[i])
	}
	sys.Derivatives(t0+ck_c6*h, qTmp, li, rk.k6)

	for i := range q0 {
		q[i] = q0[i] + h*(ck_b1*rk.k1[i]+ck_b3*rk.k3[i]+ck_b4*rk.k4[i]+ck_b6*rk.k6[i])
		qErr[i] = ck_e1*rk.k1[i] + ck_e3*rk.k3[i] + ck_e4*rk.k4[i] + ck_e5*rk.k5[i] + ck_e6*rk.k6[i]
	}
	floats.Scale(h, qErr)
}
