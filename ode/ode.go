package ode

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/goblast/utils"
)

// System is a set of first order ODEs evaluated for one mesh cell li.
type System interface {
	NEqns() int
	Derivatives(t float64, q []float64, li int, dqdt []float64)
	// Jacobian fills dfdt with the explicit time derivative of the right hand
	// side and accumulates dF/dq into J, which the caller has reset
	Jacobian(t float64, q []float64, li int, dfdt []float64, J *utils.DOK)
}

// Solver advances q in place by one accepted step of at most *dt. On return
// *dt holds the step taken and *dtTry the suggested next step.
type Solver interface {
	Name() string
	Solve(t0 float64, dt *float64, q []float64, li int, dtTry *float64) error
}

var ErrStepUnderflow = errors.New("ode step size underflow")

type Dict struct {
	AbsTol, RelTol float64
	MinDeltaT      float64 // smallest step attempted before giving up
	MaxRetries     int     // rejected steps allowed within one Solve
}

func DefaultDict() Dict {
	return Dict{
		AbsTol:     1.e-8,
		RelTol:     1.e-4,
		MinDeltaT:  1.e-14,
		MaxRetries: 50,
	}
}

func (d Dict) withDefaults() Dict {
	def := DefaultDict()
	if d.AbsTol <= 0 {
		d.AbsTol = def.AbsTol
	}
	if d.RelTol <= 0 {
		d.RelTol = def.RelTol
	}
	if d.MinDeltaT <= 0 {
		d.MinDeltaT = def.MinDeltaT
	}
	if d.MaxRetries <= 0 {
		d.MaxRetries = def.MaxRetries
	}
	return d
}

type SolverType uint

const (
	ODE_Euler SolverType = iota
	ODE_RKCK45
	ODE_Rosenbrock12
)

var SolverNames = map[string]SolverType{
	"euler":        ODE_Euler,
	"rkck45":       ODE_RKCK45,
	"rosenbrock12": ODE_Rosenbrock12,
}

func Names() (names []string) {
	for name := range SolverNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New returns the named solver bound to sys. Names are case insensitive.
func New(name string, sys System, dict Dict) (s Solver, err error) {
	st, ok := SolverNames[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown ODE solver %q, valid choices are: %s",
			name, strings.Join(Names(), ", "))
		return
	}
	dict = dict.withDefaults()
	switch st {
	case ODE_Euler:
		s = NewEuler(sys, dict)
	case ODE_RKCK45:
		s = NewRKCK45(sys, dict)
	case ODE_Rosenbrock12:
		s = NewRosenbrock12(sys, dict)
	}
	return
}

// stepper computes one trial step of size h from q0 into q along with an
// estimate of the local error.
type stepper func(t0, h float64, q0 []float64, li int, q, qErr []float64)

// adaptive wraps an embedded stepper with step size control.
type adaptive struct {
	Dict
	name     string
	order    int
	q0, qErr []float64
	trial    stepper
}

const (
	safeScale = 0.9
	minScale  = 0.2
	maxScale  = 10.
)

func newAdaptive(name string, order, n int, dict Dict, step stepper) adaptive {
	return adaptive{
		Dict:  dict.withDefaults(),
		name:  name,
		order: order,
		q0:    make([]float64, n),
		qErr:  make([]float64, n),
		trial: step,
	}
}

func (a *adaptive) Name() string { return a.name }

// normalisedError is the largest error relative to the mixed tolerance.
func (a *adaptive) normalisedError(q []float64) (maxErr float64) {
	for i := range q {
		tol := a.AbsTol + a.RelTol*math.Max(math.Abs(a.q0[i]), math.Abs(q[i]))
		maxErr = math.Max(maxErr, math.Abs(a.qErr[i])/tol)
	}
	return
}

func (a *adaptive) Solve(t0 float64, dt *float64, q []float64, li int, dtTry *float64) (err error) {
	if len(q) != len(a.q0) {
		panic(fmt.Errorf("%s solver sized for %d equations, got %d", a.name, len(a.q0), len(q)))
	}
	h := *dt
	if *dtTry > 0 && *dtTry < h {
		h = *dtTry
	}
	copy(a.q0, q)
	for retry := 0; ; retry++ {
		if !(h >= a.MinDeltaT) || retry > a.MaxRetries {
			copy(q, a.q0)
			return fmt.Errorf("%w: %s step %g after %d retries in cell %d",
				ErrStepUnderflow, a.name, h, retry, li)
		}
		a.trial(t0, h, a.q0, li, q, a.qErr)
		e := a.normalisedError(q)
		if e <= 1 {
			*dt = h
			*dtTry = h * a.scale(e)
			return
		}
		h *= math.Max(minScale, safeScale*math.Pow(e, -1./float64(a.order)))
	}
}

// scale is the growth factor after an accepted step.
func (a *adaptive) scale(e float64) float64 {
	if e < utils.VSmall {
		return maxScale
	}
	return math.Min(maxScale, math.Max(1, safeScale*math.Pow(e, -1./float64(a.order+1))))
}
