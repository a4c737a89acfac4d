package thermo

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// EquationOfState is the thermodynamic closure consumed by the flux schemes:
// given density and specific internal energy it returns pressure and sound
// speed.
type EquationOfState interface {
	Name() string
	Pressure(rho, e float64) float64
	SoundSpeed(rho, e float64) float64
	InternalEnergy(rho, p float64) float64
}

type IdealGas struct {
	Gamma float64
}

func (ig IdealGas) Name() string { return "idealGas" }

func (ig IdealGas) Pressure(rho, e float64) float64 {
	return (ig.Gamma - 1.) * rho * e
}

func (ig IdealGas) SoundSpeed(rho, e float64) float64 {
	return math.Sqrt(math.Abs(ig.Gamma * ig.Pressure(rho, e) / rho))
}

func (ig IdealGas) InternalEnergy(rho, p float64) float64 {
	return p / ((ig.Gamma - 1.) * rho)
}

// StiffenedGas models liquids and dense media: p = (γ-1)ρe - γp∞.
type StiffenedGas struct {
	Gamma, PInf float64
}

func (sg StiffenedGas) Name() string { return "stiffenedGas" }

func (sg StiffenedGas) Pressure(rho, e float64) float64 {
	return (sg.Gamma-1.)*rho*e - sg.Gamma*sg.PInf
}

func (sg StiffenedGas) SoundSpeed(rho, e float64) float64 {
	p := sg.Pressure(rho, e)
	return math.Sqrt(math.Abs(sg.Gamma * (p + sg.PInf) / rho))
}

func (sg StiffenedGas) InternalEnergy(rho, p float64) float64 {
	return (p + sg.Gamma*sg.PInf) / ((sg.Gamma - 1.) * rho)
}

type constructor func(params map[string]float64) (EquationOfState, error)

var registry = map[string]constructor{
	"idealgas": func(params map[string]float64) (EquationOfState, error) {
		gamma, ok := params["gamma"]
		if !ok {
			gamma = 1.4
		}
		if gamma <= 1 {
			return nil, fmt.Errorf("idealGas requires gamma > 1, have %v", gamma)
		}
		return IdealGas{Gamma: gamma}, nil
	},
	"stiffenedgas": func(params map[string]float64) (EquationOfState, error) {
		gamma, ok := params["gamma"]
		if !ok {
			return nil, fmt.Errorf("stiffenedGas requires gamma")
		}
		if gamma <= 1 {
			return nil, fmt.Errorf("stiffenedGas requires gamma > 1, have %v", gamma)
		}
		return StiffenedGas{Gamma: gamma, PInf: params["pInf"]}, nil
	},
}

// Names lists the registered equations of state.
func Names() (names []string) {
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func NewEquationOfState(name string, params map[string]float64) (eos EquationOfState, err error) {
	ctor, ok := registry[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown equation of state %q, valid choices are: %s",
			name, strings.Join(Names(), ", "))
		return
	}
	return ctor(params)
}
