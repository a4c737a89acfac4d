package sod_shock_tube

import (
	"fmt"
	"math"

	"github.com/notargets/goblast/utils"
)

// State is a primitive ideal gas state.
type State struct {
	Rho, U, P float64
}

/*
RiemannProblem is the exact solution of the ideal gas Riemann problem with
the initial discontinuity at X0. The star pressure is found by Newton
iteration on the pressure function, each outer wave is a shock when the star
pressure exceeds the pressure ahead of it and a rarefaction otherwise.
*/
type RiemannProblem struct {
	Left, Right        State
	Gamma, X0          float64
	PStar, UStar       float64
	RhoStarL, RhoStarR float64
	cL, cR             float64
}

func NewRiemannProblem(left, right State, gamma, x0 float64) (rp *RiemannProblem, err error) {
	if left.Rho <= 0 || right.Rho <= 0 || left.P <= 0 || right.P <= 0 {
		err = fmt.Errorf("riemann states need positive density and pressure, have %+v and %+v", left, right)
		return
	}
	rp = &RiemannProblem{
		Left:  left,
		Right: right,
		Gamma: gamma,
		X0:    x0,
		cL:    math.Sqrt(gamma * left.P / left.Rho),
		cR:    math.Sqrt(gamma * right.P / right.Rho),
	}
	// Pressure positivity condition
	if 2*(rp.cL+rp.cR)/(gamma-1) <= right.U-left.U {
		err = fmt.Errorf("initial states generate vacuum")
		rp = nil
		return
	}
	rp.PStar = fzero(rp.pressureFunction, rp.guessPressure())
	fL, _ := rp.waveFunction(rp.PStar, left, rp.cL)
	fR, _ := rp.waveFunction(rp.PStar, right, rp.cR)
	rp.UStar = 0.5*(left.U+right.U) + 0.5*(fR-fL)
	rp.RhoStarL = rp.starDensity(left)
	rp.RhoStarR = rp.starDensity(right)
	return
}

// NewSod is the classic shock tube on [0,1] with gamma 1.4.
func NewSod() *RiemannProblem {
	rp, err := NewRiemannProblem(State{1, 0, 1}, State{0.125, 0, 0.1}, 1.4, 0.5)
	if err != nil {
		panic(err)
	}
	return rp
}

func (rp *RiemannProblem) guessPressure() float64 {
	var (
		l, r = rp.Left, rp.Right
		pPV  = 0.5*(l.P+r.P) - 0.125*(r.U-l.U)*(l.Rho+r.Rho)*(rp.cL+rp.cR)
	)
	return math.Max(utils.NODETOL, pPV)
}

// waveFunction returns the velocity jump across the wave adjacent to s and
// its derivative with respect to the star pressure.
func (rp *RiemannProblem) waveFunction(p float64, s State, c float64) (f, df float64) {
	g := rp.Gamma
	if p > s.P {
		var (
			A = 2 / ((g + 1) * s.Rho)
			B = (g - 1) / (g + 1) * s.P
			q = math.Sqrt(A / (p + B))
		)
		f = (p - s.P) * q
		df = q * (1 - 0.5*(p-s.P)/(p+B))
		return
	}
	ratio := p / s.P
	f = 2 * c / (g - 1) * (math.Pow(ratio, (g-1)/(2*g)) - 1)
	df = math.Pow(ratio, -(g+1)/(2*g)) / (s.Rho * c)
	return
}

func (rp *RiemannProblem) pressureFunction(p float64) (y, dy float64) {
	fL, dfL := rp.waveFunction(p, rp.Left, rp.cL)
	fR, dfR := rp.waveFunction(p, rp.Right, rp.cR)
	y = fL + fR + rp.Right.U - rp.Left.U
	dy = dfL + dfR
	return
}

func fzero(f func(P float64) (y, dy float64), start float64) float64 {
	var (
		tol = 1.e-12
		P   = start
	)
	for iter := 0; iter < 100; iter++ {
		y, dy := f(P)
		PNew := math.Max(utils.NODETOL, P-y/dy)
		if 2*math.Abs(PNew-P)/(PNew+P) < tol {
			return PNew
		}
		P = PNew
	}
	return P
}

func (rp *RiemannProblem) starDensity(s State) float64 {
	var (
		g     = rp.Gamma
		ratio = rp.PStar / s.P
	)
	if ratio > 1 {
		gr := (g - 1) / (g + 1)
		return s.Rho * (ratio + gr) / (ratio*gr + 1)
	}
	return s.Rho * math.Pow(ratio, 1/g)
}

/*
Sample returns the state at x and time t > 0. Each side is classified by
where the similarity coordinate (x-X0)/t falls relative to the contact and
the outer wave.
*/
func (rp *RiemannProblem) Sample(x, t float64) (s State) {
	if t <= 0 {
		if x < rp.X0 {
			return rp.Left
		}
		return rp.Right
	}
	// Mirror the right side onto the left so one branch handles both
	var (
		g       = rp.Gamma
		xi      = (x - rp.X0) / t
		side    = rp.Left
		c       = rp.cL
		rhoStar = rp.RhoStarL
		uStar   = rp.UStar
		sign    = 1.
	)
	if xi > rp.UStar {
		side, c, rhoStar = rp.Right, rp.cR, rp.RhoStarR
		side.U, uStar, xi, sign = -side.U, -uStar, -xi, -1
	}
	if rp.PStar > side.P {
		ratio := rp.PStar / side.P
		SShock := side.U - c*math.Sqrt((g+1)/(2*g)*ratio+(g-1)/(2*g))
		if xi < SShock {
			s = side
		} else {
			s = State{rhoStar, uStar, rp.PStar}
		}
	} else {
		var (
			cStar = c * math.Pow(rp.PStar/side.P, (g-1)/(2*g))
			SHead = side.U - c
			STail = uStar - cStar
		)
		switch {
		case xi < SHead:
			s = side
		case xi > STail:
			s = State{rhoStar, uStar, rp.PStar}
		default:
			cFan := 2/(g+1)*c + (g-1)/(g+1)*(side.U-xi)
			s = State{
				Rho: side.Rho * math.Pow(cFan/c, 2/(g-1)),
				U:   2 / (g + 1) * (c + (g-1)/2*side.U + xi),
				P:   side.P * math.Pow(cFan/c, 2*g/(g-1)),
			}
		}
	}
	s.U *= sign
	return
}

// WavePositions returns the rarefaction head and tail, the contact and the
// shock for a left facing rarefaction and right facing shock.
func (rp *RiemannProblem) WavePositions(t float64) (x1, x2, x3, x4 float64) {
	var (
		g      = rp.Gamma
		cStarL = rp.cL * math.Pow(rp.PStar/rp.Left.P, (g-1)/(2*g))
		ratio  = rp.PStar / rp.Right.P
		SShock = rp.Right.U + rp.cR*math.Sqrt((g+1)/(2*g)*ratio+(g-1)/(2*g))
	)
	x1 = rp.X0 + (rp.Left.U-rp.cL)*t
	x2 = rp.X0 + (rp.UStar-cStarL)*t
	x3 = rp.X0 + rp.UStar*t
	x4 = rp.X0 + SShock*t
	return
}

// Profile samples density, velocity, pressure and specific internal energy
// at every X.
func (rp *RiemannProblem) Profile(X []float64, t float64) (Rho, U, P, E []float64) {
	Rho = make([]float64, len(X))
	U = make([]float64, len(X))
	P = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		s := rp.Sample(x, t)
		Rho[i], U[i], P[i] = s.Rho, s.U, s.P
		E[i] = s.P / ((rp.Gamma - 1.) * s.Rho)
	}
	return
}

// SOD_calc returns the classic Sod solution bracketing each wave, the points
// a line plot needs.
func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	var (
		rp             = NewSod()
		x1, x2, x3, x4 = rp.WavePositions(t)
		tol            = 1.e-8
	)
	X = []float64{
		0,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		1,
	}
	Rho, U, P, E = rp.Profile(X, t)
	return
}
