package ShockTube1D

import (
	"fmt"

	"github.com/notargets/goblast/dragODE"
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/phaseSystem"
	"github.com/notargets/goblast/types"
)

// alphaRhoFloor is the partial density below which a particle node keeps
// its velocity instead of decoding it from the momentum.
const alphaRhoFloor = 1.e-12

func (st *ShockTube) initializeParticles() (err error) {
	var (
		pc     = st.Particles
		nNodes = len(pc.Diameters)
		nCells = st.Mesh.NCells()
		x0     = st.X0()
	)
	if nNodes == 0 {
		return fmt.Errorf("particle cloud %s needs at least one diameter", pc.Name)
	}
	if len(pc.AlphaLeft) != nNodes || len(pc.AlphaRight) != nNodes {
		return fmt.Errorf("particle cloud %s has %d diameters, needs as many volume fractions per side",
			pc.Name, nNodes)
	}
	if pc.Rho <= 0 {
		return fmt.Errorf("particle density must be positive, have %g", pc.Rho)
	}
	if pc.Name == "" || pc.Name == CarrierName {
		return fmt.Errorf("particle cloud needs a name other than %q", CarrierName)
	}
	st.gas = phaseSystem.NewPhase(CarrierName, 1, nCells)
	st.cloud = phaseSystem.NewPhase(pc.Name, nNodes, nCells)
	copy(st.cloud.D, pc.Diameters)
	for c, x := range st.Mesh.CellCentres() {
		alpha := pc.AlphaRight
		if x < x0 {
			alpha = pc.AlphaLeft
		}
		for n := 0; n < nNodes; n++ {
			st.cloud.Alpha[n][c] = alpha[n]
			st.cloud.Rho[n][c] = pc.Rho
		}
	}
	st.syncCarrier()
	st.cloud.Encode()
	st.phases = phaseSystem.NewPhaseSystem()
	for _, p := range []*phaseSystem.Phase{st.gas, st.cloud} {
		if err = st.phases.AddPhase(p); err != nil {
			return
		}
	}
	var (
		pp phaseSystem.PhasePair
		dm phaseSystem.DragModel
	)
	if pp, err = st.phases.NewPhasePair(CarrierName, pc.Name); err != nil {
		return
	}
	dd := pc.DragDict
	if dd.Dispersed == "" {
		dd.Dispersed = pc.Name
	}
	if dm, err = phaseSystem.NewDragModel(pc.DragModel, pp, dd); err != nil {
		return
	}
	if err = st.phases.AddDrag(pp, dm); err != nil {
		return
	}
	dict := st.Drag
	if dict.ParallelDegree == 0 {
		dict.ParallelDegree = st.ParallelDegree
	}
	if st.drag, err = dragODE.New(st.phases, st.Mesh, dict); err != nil {
		return
	}
	st.drag.Log = st.Log
	return
}

// syncCarrier loads the gas state into the carrier phase seen by the drag
// models. The cloud is dilute, so the carrier volume fraction is one.
func (st *ShockTube) syncCarrier() {
	for c, rho := range st.flow.Rho.Internal {
		st.gas.Alpha[0][c] = 1
		st.gas.Rho[0][c] = rho
		st.gas.Vel[0][c] = st.RhoU[c].Scale(1. / rho)
	}
	st.gas.Encode()
}

// neighbourCell is the cell seen across boundary face f, mirrored on walls.
func (st *ShockTube) neighbourCell(patch *mesh.Patch, f, cell int) (nbr int, mirror bool) {
	switch {
	case patch.Coupled():
		nbr = st.Mesh.Patches()[patch.NeighbourPatch].FaceCells[f]
	case patch.Type == types.Patch_Wall:
		nbr, mirror = cell, true
	default:
		nbr = cell
	}
	return
}

/*
transportParticles advects every node of the cloud with its own velocity
using donor cell fluxes of volume fraction and momentum. The face velocity
is the mean of the two sides, so a wall, whose mirrored velocity cancels the
cell velocity, passes nothing.
*/
func (st *ShockTube) transportParticles(dt float64) {
	var (
		m      = st.Mesh
		pc     = st.cloud
		nCells = m.NCells()
		dAlpha = make([]float64, nCells)
		dMom   = make([]types.Vector, nCells)
	)
	donor := func(n, own, nei int, Uown, Unei, Sf types.Vector) (alphaPhi float64, momPhi types.Vector) {
		phi := 0.5 * Uown.Add(Unei).Dot(Sf)
		up := own
		if phi < 0 {
			up = nei
		}
		alphaPhi = pc.Alpha[n][up] * phi
		momPhi = pc.AlphaRhoU[n][up].Scale(phi)
		return
	}
	for n := 0; n < pc.NNodes(); n++ {
		for i := range dAlpha {
			dAlpha[i], dMom[i] = 0, types.Vector{}
		}
		U := pc.Vel[n]
		for f := 0; f < m.NInternalFaces(); f++ {
			own, nei := m.Owner()[f], m.Neighbour()[f]
			aPhi, mPhi := donor(n, own, nei, U[own], U[nei], m.Sf(f, types.InternalPatch))
			dAlpha[own] += aPhi
			dAlpha[nei] -= aPhi
			dMom[own] = dMom[own].Add(mPhi)
			dMom[nei] = dMom[nei].Sub(mPhi)
		}
		for p, patch := range m.Patches() {
			for f, c := range patch.FaceCells {
				Sf := m.Sf(f, p)
				nbr, mirror := st.neighbourCell(patch, f, c)
				Unei := U[nbr]
				if mirror {
					normal := Sf.Normalized()
					Unei = Unei.Sub(normal.Scale(2 * Unei.Dot(normal)))
				}
				aPhi, mPhi := donor(n, c, nbr, U[c], Unei, Sf)
				dAlpha[c] += aPhi
				dMom[c] = dMom[c].Add(mPhi)
			}
		}
		for c := 0; c < nCells; c++ {
			dtV := dt / m.CellVolume(c)
			pc.Alpha[n][c] -= dtV * dAlpha[c]
			pc.AlphaRhoU[n][c] = pc.AlphaRhoU[n][c].Sub(dMom[c].Scale(dtV))
		}
	}
	pc.Decode(alphaRhoFloor)
}

// couple relaxes the gas and particle velocities over dt. The gas takes
// the momentum the particles lose and the kinetic energy change of the
// particles is taken from the gas total energy.
func (st *ShockTube) couple(dt float64) (err error) {
	nCells := st.Mesh.NCells()
	keBefore := make([]float64, nCells)
	for c := 0; c < nCells; c++ {
		keBefore[c] = st.cloud.KineticEnergy(c)
	}
	st.syncCarrier()
	if st.DtDrag, err = st.drag.Solve(dt); err != nil {
		return
	}
	for c := 0; c < nCells; c++ {
		st.RhoU[c] = st.gas.AlphaRhoU[0][c]
		st.RhoE[c] -= st.cloud.KineticEnergy(c) - keBefore[c]
	}
	return
}
