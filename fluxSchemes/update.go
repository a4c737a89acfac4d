package fluxSchemes

import (
	"fmt"

	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/types"
	"github.com/notargets/goblast/utils"
)

// FlowFields are the cell centred primitive fields of the mixture. Boundary
// values must be current (CorrectBoundaryConditions) before Update.
type FlowFields struct {
	Rho, E, P, C *mesh.VolScalarField
	U            *mesh.VolVectorField
}

// PhaseFields are the volume fraction and density of one phase.
type PhaseFields struct {
	Alpha, Rho *mesh.VolScalarField
}

type FluxFields struct {
	Phi, RhoPhi, RhoEPhi *mesh.SurfaceScalarField
	RhoUPhi              *mesh.SurfaceVectorField
	AlphaPhi             []*mesh.SurfaceScalarField // one per phase
	AlphaRhoPhi          []*mesh.SurfaceScalarField // one per phase
}

func newFluxFields(m mesh.Mesh, nPhases int) (ff *FluxFields) {
	ff = &FluxFields{
		Phi:         mesh.NewSurfaceField[float64](m),
		RhoPhi:      mesh.NewSurfaceField[float64](m),
		RhoEPhi:     mesh.NewSurfaceField[float64](m),
		RhoUPhi:     mesh.NewSurfaceField[types.Vector](m),
		AlphaPhi:    make([]*mesh.SurfaceScalarField, nPhases),
		AlphaRhoPhi: make([]*mesh.SurfaceScalarField, nPhases),
	}
	for i := 0; i < nPhases; i++ {
		ff.AlphaPhi[i] = mesh.NewSurfaceField[float64](m)
		ff.AlphaRhoPhi[i] = mesh.NewSurfaceField[float64](m)
	}
	return
}

func (ff *FluxFields) set(face, patch int, f FaceFluxes, pf []PhaseFluxes) {
	ff.Phi.Set(face, patch, f.Phi)
	ff.RhoPhi.Set(face, patch, f.RhoPhi)
	ff.RhoUPhi.Set(face, patch, f.RhoUPhi)
	ff.RhoEPhi.Set(face, patch, f.RhoEPhi)
	for i := range pf {
		ff.AlphaPhi[i].Set(face, patch, pf[i].AlphaPhi)
		ff.AlphaRhoPhi[i].Set(face, patch, pf[i].AlphaRhoPhi)
	}
}

func cellState(flow FlowFields, cell int) FaceState {
	return FaceState{
		Rho: flow.Rho.Internal[cell],
		U:   flow.U.Internal[cell],
		E:   flow.E.Internal[cell],
		P:   flow.P.Internal[cell],
		C:   flow.C.Internal[cell],
	}
}

func boundaryState(flow FlowFields, patch, face int) FaceState {
	return FaceState{
		Rho: flow.Rho.Boundary[patch][face],
		U:   flow.U.Boundary[patch][face],
		E:   flow.E.Boundary[patch][face],
		P:   flow.P.Boundary[patch][face],
		C:   flow.C.Boundary[patch][face],
	}
}

/*
Update clears the scheme's caches and evaluates every face of the mesh with
first order reconstruction. Internal faces are split across procLimit go
routines (0 means one per CPU); each routine writes a disjoint range of
faces into caches allocated beforehand. Boundary faces are evaluated after
all internal faces complete.
*/
func Update(fs FluxScheme, flow FlowFields, phases []PhaseFields, procLimit int) (ff *FluxFields) {
	var (
		m         = fs.Mesh()
		nPhases   = len(phases)
		owner     = m.Owner()
		neighbour = m.Neighbour()
		nFaces    = m.NInternalFaces()
	)
	for _, ph := range phases {
		if ph.Alpha == nil || ph.Rho == nil {
			panic(fmt.Errorf("phase fields must supply both alpha and rho"))
		}
	}
	fs.Clear()
	fs.Allocate()
	ff = newFluxFields(m, nPhases)

	evaluate := func(own, nei FaceState, ownP, neiP []PhaseState, pf []PhaseFluxes, face, patch int) {
		Sf := m.Sf(face, patch)
		var f FaceFluxes
		if nPhases == 0 {
			f = fs.CalculateFluxes(own, nei, Sf, face, patch)
		} else {
			f = fs.CalculatePhaseFluxes(own, nei, ownP, neiP, Sf, face, patch, pf)
		}
		ff.set(face, patch, f, pf)
	}

	if nFaces > 0 {
		pm := utils.NewPartitionMap(utils.ParallelDegree(procLimit, nFaces), nFaces)
		pm.Run(func(_, fMin, fMax int) {
			var (
				ownP = make([]PhaseState, nPhases)
				neiP = make([]PhaseState, nPhases)
				pf   = make([]PhaseFluxes, nPhases)
			)
			for f := fMin; f < fMax; f++ {
				o, n := owner[f], neighbour[f]
				for i, ph := range phases {
					ownP[i] = PhaseState{Alpha: ph.Alpha.Internal[o], Rho: ph.Rho.Internal[o]}
					neiP[i] = PhaseState{Alpha: ph.Alpha.Internal[n], Rho: ph.Rho.Internal[n]}
				}
				evaluate(cellState(flow, o), cellState(flow, n), ownP, neiP, pf, f, types.InternalPatch)
			}
		})
	}

	var (
		ownP = make([]PhaseState, nPhases)
		neiP = make([]PhaseState, nPhases)
		pf   = make([]PhaseFluxes, nPhases)
	)
	for p, patch := range m.Patches() {
		for f, c := range patch.FaceCells {
			for i, ph := range phases {
				ownP[i] = PhaseState{Alpha: ph.Alpha.Internal[c], Rho: ph.Rho.Internal[c]}
				neiP[i] = PhaseState{Alpha: ph.Alpha.Boundary[p][f], Rho: ph.Rho.Boundary[p][f]}
			}
			evaluate(cellState(flow, c), boundaryState(flow, p, f), ownP, neiP, pf, f, p)
		}
	}
	return
}
