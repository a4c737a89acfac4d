package phaseSystem

import (
	"fmt"

	"github.com/notargets/goblast/types"
)

// PhaseModel is a phase carrying one or more velocity nodes per cell. A
// monodisperse phase has a single node, a polydisperse particle population
// has one node per size class.
type PhaseModel interface {
	Name() string
	NNodes() int
	// AlphaRho is the partial density of a node in every cell
	AlphaRho(node int) []float64
	// U is the velocity of a node in every cell, writable in place
	U(node int) []types.Vector
	// Encode recomputes the conserved quantities from the primitive ones
	Encode()
}

/*
Phase stores, per node and per cell, the volume fraction, the phase density
and the velocity, plus a single diameter per node. The conserved partial
density and momentum are derived by Encode.
*/
type Phase struct {
	name      string
	nCells    int
	Alpha     [][]float64      // [node][cell]
	Rho       [][]float64      // [node][cell]
	Vel       [][]types.Vector // [node][cell]
	D         []float64        // [node]
	alphaRho  [][]float64
	AlphaRhoU [][]types.Vector
}

func NewPhase(name string, nNodes, nCells int) (p *Phase) {
	if nNodes < 0 || nCells < 0 {
		panic(fmt.Errorf("phase %s needs non negative sizes, have %d nodes and %d cells",
			name, nNodes, nCells))
	}
	p = &Phase{
		name:      name,
		nCells:    nCells,
		Alpha:     make([][]float64, nNodes),
		Rho:       make([][]float64, nNodes),
		Vel:       make([][]types.Vector, nNodes),
		D:         make([]float64, nNodes),
		alphaRho:  make([][]float64, nNodes),
		AlphaRhoU: make([][]types.Vector, nNodes),
	}
	for n := 0; n < nNodes; n++ {
		p.Alpha[n] = make([]float64, nCells)
		p.Rho[n] = make([]float64, nCells)
		p.Vel[n] = make([]types.Vector, nCells)
		p.alphaRho[n] = make([]float64, nCells)
		p.AlphaRhoU[n] = make([]types.Vector, nCells)
	}
	return
}

func (p *Phase) Name() string                    { return p.name }
func (p *Phase) NNodes() int                     { return len(p.Alpha) }
func (p *Phase) NCells() int                     { return p.nCells }
func (p *Phase) AlphaRho(node int) []float64     { return p.alphaRho[node] }
func (p *Phase) U(node int) []types.Vector       { return p.Vel[node] }
func (p *Phase) Diameter(node int) float64       { return p.D[node] }
func (p *Phase) AlphaField(node int) []float64   { return p.Alpha[node] }
func (p *Phase) DensityField(node int) []float64 { return p.Rho[node] }

// SetUniform assigns the same state to a node in every cell and encodes it.
func (p *Phase) SetUniform(node int, alpha, rho float64, U types.Vector) {
	for c := 0; c < p.nCells; c++ {
		p.Alpha[node][c] = alpha
		p.Rho[node][c] = rho
		p.Vel[node][c] = U
	}
	p.Encode()
}

func (p *Phase) Encode() {
	for n := range p.Alpha {
		for c := 0; c < p.nCells; c++ {
			p.alphaRho[n][c] = p.Alpha[n][c] * p.Rho[n][c]
			p.AlphaRhoU[n][c] = p.Vel[n][c].Scale(p.alphaRho[n][c])
		}
	}
}

// Decode recovers the velocity from the conserved momentum after transport.
// Cells whose partial density falls to floor or below keep their velocity.
func (p *Phase) Decode(floor float64) {
	for n := range p.Alpha {
		for c := 0; c < p.nCells; c++ {
			p.alphaRho[n][c] = p.Alpha[n][c] * p.Rho[n][c]
			if p.alphaRho[n][c] > floor {
				p.Vel[n][c] = p.AlphaRhoU[n][c].Scale(1. / p.alphaRho[n][c])
			}
		}
	}
}

// Momentum is the total momentum of all nodes in one cell.
func (p *Phase) Momentum(cell int) (m types.Vector) {
	for n := range p.Alpha {
		m = m.Add(p.Vel[n][cell].Scale(p.alphaRho[n][cell]))
	}
	return
}

// KineticEnergy is the kinetic energy density of all nodes in one cell.
func (p *Phase) KineticEnergy(cell int) (ke float64) {
	for n := range p.Alpha {
		ke += 0.5 * p.alphaRho[n][cell] * p.Vel[n][cell].MagSqr()
	}
	return
}
