package mesh

import (
	"fmt"

	"github.com/notargets/goblast/types"
)

// Line1D is a uniform mesh of cells along x with a "left" and a "right"
// boundary patch. Only the x component of vectors is solved.
type Line1D struct {
	N          int
	XMin, XMax float64
	Dx, Area   float64
	owner      []int
	neighbour  []int
	sf         []types.Vector
	meshPhi    []float64
	patches    []*Patch
}

func NewLine1D(N int, XMin, XMax float64, left, right types.PatchType) (m *Line1D) {
	if N < 1 {
		panic(fmt.Errorf("a 1D mesh needs at least one cell, have %d", N))
	}
	if left.Coupled() != right.Coupled() {
		panic(fmt.Errorf("coupled patches must be paired, have left %s and right %s", left, right))
	}
	m = &Line1D{
		N:         N,
		XMin:      XMin,
		XMax:      XMax,
		Dx:        (XMax - XMin) / float64(N),
		Area:      1,
		owner:     make([]int, N-1),
		neighbour: make([]int, N-1),
		sf:        make([]types.Vector, N-1),
		meshPhi:   make([]float64, N-1),
	}
	for f := 0; f < N-1; f++ {
		m.owner[f], m.neighbour[f] = f, f+1
		m.sf[f] = types.Vector{m.Area, 0, 0}
	}
	m.patches = []*Patch{
		{
			Name:           "left",
			Type:           left,
			FaceCells:      []int{0},
			FaceSf:         []types.Vector{{-m.Area, 0, 0}},
			FaceMeshPhi:    []float64{0},
			NeighbourPatch: -1,
		},
		{
			Name:           "right",
			Type:           right,
			FaceCells:      []int{N - 1},
			FaceSf:         []types.Vector{{m.Area, 0, 0}},
			FaceMeshPhi:    []float64{0},
			NeighbourPatch: -1,
		},
	}
	if left.Coupled() {
		m.patches[0].NeighbourPatch, m.patches[1].NeighbourPatch = 1, 0
	}
	return
}

// SetMeshVelocity imposes a uniform mesh velocity, which sets the mesh
// motion flux on every face.
func (m *Line1D) SetMeshVelocity(U types.Vector) {
	for f := range m.sf {
		m.meshPhi[f] = U.Dot(m.sf[f])
	}
	for _, p := range m.patches {
		for f := range p.FaceSf {
			p.FaceMeshPhi[f] = U.Dot(p.FaceSf[f])
		}
	}
}

func (m *Line1D) CellCentres() (X []float64) {
	X = make([]float64, m.N)
	for i := range X {
		X[i] = m.XMin + (float64(i)+0.5)*m.Dx
	}
	return
}

func (m *Line1D) NCells() int         { return m.N }
func (m *Line1D) NInternalFaces() int { return m.N - 1 }
func (m *Line1D) Owner() []int        { return m.owner }
func (m *Line1D) Neighbour() []int    { return m.neighbour }
func (m *Line1D) Patches() []*Patch   { return m.patches }
func (m *Line1D) SolutionD() []int    { return []int{0} }

func (m *Line1D) CellVolume(cell int) float64 { return m.Dx * m.Area }

func (m *Line1D) Sf(face, patch int) types.Vector {
	checkPatch(m, patch)
	if patch == types.InternalPatch {
		return m.sf[face]
	}
	return m.patches[patch].FaceSf[face]
}

func (m *Line1D) MagSf(face, patch int) float64 {
	return m.Sf(face, patch).Mag()
}

func (m *Line1D) MeshPhi(face, patch int) float64 {
	checkPatch(m, patch)
	if patch == types.InternalPatch {
		return m.meshPhi[face]
	}
	return m.patches[patch].FaceMeshPhi[face]
}
