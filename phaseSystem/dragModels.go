package phaseSystem

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/goblast/utils"
)

// DragModel returns the momentum exchange coefficient K [kg/m^3/s] between
// node nodeI of a pair's Phase1 and node nodeJ of its Phase2 in one cell.
type DragModel interface {
	Name() string
	CellK(cell, nodeI, nodeJ int) float64
}

// DragDict holds the parameters any registered drag model may read.
type DragDict struct {
	K         float64 // constant coefficient
	Mu        float64 // continuous phase dynamic viscosity
	Dispersed string  // name of the dispersed phase
}

type dragConstructor func(pp PhasePair, dict DragDict) (DragModel, error)

var dragModels = map[string]dragConstructor{
	"constant":        newConstantDrag,
	"schillernaumann": newSchillerNaumann,
}

func DragModelNames() (names []string) {
	for name := range dragModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func NewDragModel(name string, pp PhasePair, dict DragDict) (dm DragModel, err error) {
	ctor, ok := dragModels[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown drag model %q, valid choices are: %s",
			name, strings.Join(DragModelNames(), ", "))
		return
	}
	return ctor(pp, dict)
}

// ConstantDrag applies the same coefficient to every node pair.
type ConstantDrag struct {
	K float64
}

func newConstantDrag(_ PhasePair, dict DragDict) (DragModel, error) {
	if dict.K < 0 {
		return nil, fmt.Errorf("constant drag coefficient must be non negative, have %g", dict.K)
	}
	return &ConstantDrag{K: dict.K}, nil
}

func (cd *ConstantDrag) Name() string              { return "constant" }
func (cd *ConstantDrag) CellK(_, _, _ int) float64 { return cd.K }

/*
SchillerNaumann is the drag on spheres of each dispersed node diameter d in
the continuous phase:

	K  = 18 mu alpha_d / d^2 * (1 + 0.15 Re^0.687)   Re < 1000
	K  = 0.75 * 0.44 * alpha_d rho_c |Ur| / d        otherwise
	Re = rho_c |Ur| d / mu

which reduces to Stokes drag as the slip velocity vanishes.
*/
type SchillerNaumann struct {
	Mu                    float64
	Dispersed, Continuous *Phase
	// dispersedFirst is true when the dispersed phase is Phase1 of the pair
	dispersedFirst bool
}

func newSchillerNaumann(pp PhasePair, dict DragDict) (DragModel, error) {
	if dict.Mu <= 0 {
		return nil, fmt.Errorf("SchillerNaumann drag needs a positive viscosity, have %g", dict.Mu)
	}
	if !pp.Contains(dict.Dispersed) {
		return nil, fmt.Errorf("dispersed phase %q is not part of pair %s", dict.Dispersed, pp.Name())
	}
	var (
		sn = &SchillerNaumann{Mu: dict.Mu, dispersedFirst: pp.Phase1.Name() == dict.Dispersed}
		d  = pp.Phase2
		c  = pp.Phase1
		ok bool
	)
	if sn.dispersedFirst {
		d, c = c, d
	}
	if sn.Dispersed, ok = d.(*Phase); !ok {
		return nil, fmt.Errorf("SchillerNaumann drag needs node diameters for phase %s", d.Name())
	}
	if sn.Continuous, ok = c.(*Phase); !ok {
		return nil, fmt.Errorf("SchillerNaumann drag needs the density of phase %s", c.Name())
	}
	for n, dia := range sn.Dispersed.D {
		if dia <= 0 {
			return nil, fmt.Errorf("node %d of phase %s has diameter %g", n, d.Name(), dia)
		}
	}
	return sn, nil
}

func (sn *SchillerNaumann) Name() string { return "SchillerNaumann" }

func (sn *SchillerNaumann) CellK(cell, nodeI, nodeJ int) (K float64) {
	dNode, cNode := nodeJ, nodeI
	if sn.dispersedFirst {
		dNode, cNode = nodeI, nodeJ
	}
	var (
		d      = sn.Dispersed.D[dNode]
		alphaD = sn.Dispersed.Alpha[dNode][cell]
		rhoC   = sn.Continuous.Rho[cNode][cell]
		magUr  = sn.Dispersed.Vel[dNode][cell].Sub(sn.Continuous.Vel[cNode][cell]).Mag()
		Re     = rhoC * magUr * d / sn.Mu
	)
	if Re < 1000 {
		K = 18 * sn.Mu * alphaD / utils.POW(d, 2) * (1 + 0.15*math.Pow(Re, 0.687))
	} else {
		K = 0.75 * 0.44 * alphaD * rhoC * magUr / d
	}
	return
}
