package fluxSchemes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/types"
)

const gamma = 1.4

func idealState(rho, u, p float64) FaceState {
	return FaceState{
		Rho: rho,
		U:   types.Vector{u, 0, 0},
		E:   p / ((gamma - 1) * rho),
		P:   p,
		C:   math.Sqrt(gamma * p / rho),
	}
}

func sodStates() (own, nei FaceState) {
	return idealState(1, 0, 1), idealState(0.125, 0, 0.1)
}

func analyticFlux(s FaceState, normal types.Vector) (ff FaceFluxes) {
	Uv := s.U.Dot(normal)
	ff.Phi = Uv
	ff.RhoPhi = s.Rho * Uv
	ff.RhoUPhi = s.U.Scale(s.Rho * Uv).Add(normal.Scale(s.P))
	ff.RhoEPhi = (s.Rho*s.TotalEnergy() + s.P) * Uv
	return
}

func assertFluxesInDelta(t *testing.T, expected, actual FaceFluxes, tol float64) {
	t.Helper()
	assert.InDelta(t, expected.Phi, actual.Phi, tol)
	assert.InDelta(t, expected.RhoPhi, actual.RhoPhi, tol)
	assert.InDeltaSlice(t, expected.RhoUPhi[:], actual.RhoUPhi[:], tol)
	assert.InDelta(t, expected.RhoEPhi, actual.RhoEPhi, tol)
}

func TestWaveSpeeds(t *testing.T) {
	{
		SOwn, SNei := HLLWaveSpeeds(0, 0, 1, 2)
		assert.Equal(t, -2., SOwn)
		assert.Equal(t, 2., SNei)
	}
	{ // Symmetric fan
		SOwn, SNei := RusanovWaveSpeeds(0.5, 0.2, 1, 1.2)
		assert.Equal(t, -1.5, SOwn)
		assert.Equal(t, 1.5, SNei)
	}
	{ // Equal states collapse onto the characteristics
		SOwn, SNei := RoeWaveSpeeds(2, 2, 0.3, 0.3, 1, 1)
		assert.InDelta(t, -0.7, SOwn, 1.e-14)
		assert.InDelta(t, 1.3, SNei, 1.e-14)
		SStar := StarSpeed(2, 2, 0.3, 0.3, 5, 5, SOwn, SNei)
		assert.InDelta(t, 0.3, SStar, 1.e-14)
		assert.InDelta(t, 5., StarPressure(5, 2, SOwn, 0.3, SStar), 1.e-14)
	}
	{ // Vanishing denominator falls back to the mean velocity
		assert.InDelta(t, 0.3, StarSpeed(1, 1, 0.2, 0.4, 1, 1, 0.2, 0.4), 1.e-14)
	}
	{ // Contact speed is limited to the fan
		assert.Equal(t, 1., StarSpeed(1, 1, 0, 0, 100, 1, -1, 1))
		assert.Equal(t, -1., StarSpeed(1, 1, 0, 0, 1, 100, -1, 1))
	}
	{ // Mesh motion is removed from the normal velocity
		assert.Equal(t, 0.5, NormalVelocity(types.Vector{1, 2, 0}, types.Vector{1, 0, 0}, 0.5))
	}
}

func TestRegistry(t *testing.T) {
	m := mesh.NewLine1D(2, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
	{
		for name, expected := range map[string]string{
			"HLL": "HLL", "hllc": "HLLC", "Rusanov": "Rusanov", "LAX": "Rusanov",
		} {
			fs, err := NewFluxScheme(name, m)
			require.NoError(t, err)
			assert.Equal(t, expected, fs.Name())
			assert.Equal(t, mesh.Mesh(m), fs.Mesh())
		}
	}
	{
		_, err := NewFluxScheme("roe", m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hll, hllc, lax, rusanov")
		assert.Panics(t, func() { NewFluxType("roe") })
		assert.Equal(t, FLUX_HLLC, NewFluxType("HLLC"))
		assert.Equal(t, "Rusanov", FLUX_Rusanov.Print())
	}
}

func TestHLL(t *testing.T) {
	var (
		m      = mesh.NewLine1D(2, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
		Sf     = m.Sf(0, types.InternalPatch)
		normal = types.Vector{1, 0, 0}
	)
	{ // Sod interface
		h := NewHLL(m)
		own, nei := sodStates()
		ff := h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch)
		assert.InDelta(t, 0., ff.Phi, 1.e-14)
		assert.InDelta(t, 1.225/(2*math.Sqrt(1.4)), ff.RhoPhi, 1.e-12)
		assert.InDelta(t, 0.517659, ff.RhoPhi, 1.e-6)
		assert.InDelta(t, 0.55, ff.RhoUPhi[0], 1.e-12)
		assert.InDelta(t, 1.331118, ff.RhoEPhi, 1.e-6)
		assert.InDelta(t, ff.RhoEPhi, h.EnergyFlux(own, nei, 0, types.InternalPatch), 1.e-13)

		// The intermediate density lies between the two states
		rhoF := h.Interpolate(own.Rho, nei.Rho, true, 0, types.InternalPatch)
		assert.InDelta(t, 0.5625, rhoF, 1.e-12)
		assert.InDelta(t, 0.5625, h.Interpolate(1, 0.125, false, 0, types.InternalPatch), 1.e-12)
		assert.Equal(t, types.Vector{}, h.FaceVelocity(0, types.InternalPatch))
	}
	{ // Consistency: equal states reproduce the analytic flux
		h := NewHLL(m)
		s := idealState(1.3, 0.4, 2.1)
		assertFluxesInDelta(t, analyticFlux(s, normal), h.CalculateFluxes(s, s, Sf, 0, types.InternalPatch), 1.e-13)
	}
	{ // Supersonic faces take one side exactly
		h := NewHLL(m)
		own, nei := idealState(1, 3, 1), idealState(0.5, 2.5, 0.4)
		assert.Equal(t, analyticFlux(own, normal), h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch))
		assert.Equal(t, 1., h.Interpolate(1, 2, true, 0, types.InternalPatch))
		own, nei = idealState(1, -3, 1), idealState(0.5, -3.5, 0.4)
		assert.Equal(t, analyticFlux(nei, normal), h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch))
		assert.Equal(t, 2., h.Interpolate(1, 2, true, 0, types.InternalPatch))
		assert.Equal(t, nei.U, h.FaceVelocity(0, types.InternalPatch))
	}
	{ // Interpolated densities stay positive on every side of the fan
		var (
			h      = NewHLL(m)
			rg     = rand.New(rand.NewSource(42))
			counts = map[string]int{}
		)
		for i := 0; i < 2000; i++ {
			own := idealState(0.01+rg.Float64(), 8*rg.Float64()-4, 0.01+rg.Float64())
			nei := idealState(0.01+rg.Float64(), 8*rg.Float64()-4, 0.01+rg.Float64())
			h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch)
			var (
				SOwn = h.SOwn.get(0, types.InternalPatch)
				SNei = h.SNei.get(0, types.InternalPatch)
				rhoF = h.Interpolate(own.Rho, nei.Rho, true, 0, types.InternalPatch)
				fF   = h.Interpolate(own.P, nei.P, false, 0, types.InternalPatch)
			)
			switch {
			case SOwn >= 0:
				counts["right going"]++
			case SNei >= 0:
				counts["fan"]++
			default:
				counts["left going"]++
			}
			assert.False(t, math.IsNaN(rhoF))
			assert.GreaterOrEqual(t, rhoF, 0.)
			assert.GreaterOrEqual(t, fF, math.Min(own.P, nei.P)-1.e-14)
			assert.LessOrEqual(t, fF, math.Max(own.P, nei.P)+1.e-14)
		}
		assert.Greater(t, counts["right going"], 0)
		assert.Greater(t, counts["fan"], 0)
		assert.Greater(t, counts["left going"], 0)
	}
	{ // Multiphase fluxes sum to the mixture mass flux
		h := NewHLL(m)
		own, nei := sodStates()
		var (
			ownP = []PhaseState{{0.25, 2}, {0.75, 2. / 3.}}
			neiP = []PhaseState{{0.05, 1}, {0.95, 0.075 / 0.95}}
			pf   = make([]PhaseFluxes, 2)
		)
		ff := h.CalculatePhaseFluxes(own, nei, ownP, neiP, Sf, 0, types.InternalPatch, pf)
		assert.InDelta(t, ff.RhoPhi, pf[0].AlphaRhoPhi+pf[1].AlphaRhoPhi, 1.e-13)
		assert.InDelta(t, 0., pf[0].AlphaPhi+pf[1].AlphaPhi, 1.e-13)
	}
	{ // Moving mesh: flow at mesh speed only does pressure work
		mm := mesh.NewLine1D(2, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
		mm.SetMeshVelocity(types.Vector{1, 0, 0})
		h := NewHLL(mm)
		s := idealState(1, 1, 2)
		ff := h.CalculateFluxes(s, s, Sf, 0, types.InternalPatch)
		assert.InDelta(t, 0., ff.Phi, 1.e-14)
		assert.InDelta(t, 0., ff.RhoPhi, 1.e-14)
		assert.InDelta(t, 2., ff.RhoUPhi[0], 1.e-14)
		assert.InDelta(t, 2., ff.RhoEPhi, 1.e-14)
		assert.InDelta(t, 2., h.EnergyFlux(s, s, 0, types.InternalPatch), 1.e-14)
	}
	{ // Cache lifecycle
		h := NewHLL(m)
		assert.Panics(t, func() { h.FaceVelocity(0, types.InternalPatch) })
		s := idealState(1, 0, 1)
		h.CalculateFluxes(s, s, Sf, 0, types.InternalPatch)
		assert.NotPanics(t, func() { h.Interpolate(1, 1, true, 0, types.InternalPatch) })
		h.Clear()
		assert.Panics(t, func() { h.Interpolate(1, 1, true, 0, types.InternalPatch) })
		assert.Panics(t, func() { h.EnergyFlux(s, s, 0, types.InternalPatch) })
	}
	{ // Rusanov is HLL with a symmetric fan
		r := NewRusanov(m)
		own := FaceState{Rho: 1, U: types.Vector{0.5, 0, 0}, C: 1}
		nei := FaceState{Rho: 2, U: types.Vector{0.2, 0, 0}, C: 1.2}
		ff := r.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch)
		assert.InDelta(t, -0.3, ff.RhoPhi, 1.e-14)
		assert.InDelta(t, 0.35, ff.Phi, 1.e-14)
	}
}

func TestHLLC(t *testing.T) {
	var (
		m      = mesh.NewLine1D(2, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
		Sf     = m.Sf(0, types.InternalPatch)
		normal = types.Vector{1, 0, 0}
	)
	{ // Consistency
		h := NewHLLC(m)
		s := idealState(1.3, 0.4, 2.1)
		ff := h.CalculateFluxes(s, s, Sf, 0, types.InternalPatch)
		assertFluxesInDelta(t, analyticFlux(s, normal), ff, 1.e-12)
		assert.InDelta(t, ff.RhoEPhi, h.EnergyFlux(s, s, 0, types.InternalPatch), 1.e-12)
		assert.InDelta(t, 0.4, h.SStar.get(0, types.InternalPatch), 1.e-14)
	}
	{ // Supersonic faces
		h := NewHLLC(m)
		own, nei := idealState(1, 3, 1), idealState(0.5, 2.5, 0.4)
		assert.Equal(t, analyticFlux(own, normal), h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch))
		assert.Equal(t, 1., h.Interpolate(1, 2, true, 0, types.InternalPatch))
		own, nei = idealState(1, -3, 1), idealState(0.5, -3.5, 0.4)
		assert.Equal(t, analyticFlux(nei, normal), h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch))
		assert.Equal(t, 2., h.Interpolate(1, 2, true, 0, types.InternalPatch))
	}
	{ // Sod interface: the contact moves right, star pressures agree
		h := NewHLLC(m)
		own, nei := sodStates()
		var (
			ff    = h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch)
			SStar = h.SStar.get(0, types.InternalPatch)
			pOwn  = h.pStarOwn.get(0, types.InternalPatch)
			pNei  = h.pStarNei.get(0, types.InternalPatch)
		)
		assert.Greater(t, SStar, 0.)
		assert.InDelta(t, pOwn, pNei, 1.e-12)
		assert.Greater(t, ff.RhoPhi, 0.)
		assert.Greater(t, ff.RhoEPhi, 0.)
		assert.InDelta(t, ff.RhoEPhi, h.EnergyFlux(own, nei, 0, types.InternalPatch), 1.e-12)
		assert.Equal(t, own.Rho, h.Interpolate(own.Rho, nei.Rho, true, 0, types.InternalPatch))
		// Volumetric flux is the contact speed
		assert.InDelta(t, SStar*(h.SOwn.get(0, -1)-0)/(h.SOwn.get(0, -1)-SStar), ff.Phi, 1.e-14)
		assert.InDelta(t, ff.RhoPhi, own.Rho*ff.Phi, 1.e-12)
	}
	{ // Wave ordering and mirror symmetry for random states
		var (
			h  = NewHLLC(m)
			hm = NewHLLC(m)
			rg = rand.New(rand.NewSource(42))
		)
		for i := 0; i < 200; i++ {
			own := idealState(0.1+rg.Float64(), 2*rg.Float64()-1, 0.1+rg.Float64())
			nei := idealState(0.1+rg.Float64(), 2*rg.Float64()-1, 0.1+rg.Float64())
			ff := h.CalculateFluxes(own, nei, Sf, 0, types.InternalPatch)
			var (
				SOwn  = h.SOwn.get(0, types.InternalPatch)
				SNei  = h.SNei.get(0, types.InternalPatch)
				SStar = h.SStar.get(0, types.InternalPatch)
			)
			assert.LessOrEqual(t, SOwn, SStar)
			assert.LessOrEqual(t, SStar, SNei)
			// Swapping the sides and flipping the normal reverses the flux
			ownM, neiM := nei, own
			ownM.U, neiM.U = nei.U.Scale(-1), own.U.Scale(-1)
			ffM := hm.CalculateFluxes(ownM, neiM, Sf, 0, types.InternalPatch)
			assert.InDelta(t, ff.RhoPhi, -ffM.RhoPhi, 1.e-10)
			assert.InDelta(t, ff.RhoEPhi, -ffM.RhoEPhi, 1.e-10)
			assert.InDelta(t, ff.RhoUPhi[0], ffM.RhoUPhi[0], 1.e-10)
		}
	}
	{ // Multiphase fluxes sum to the mixture mass flux
		h := NewHLLC(m)
		own, nei := sodStates()
		var (
			ownP = []PhaseState{{0.25, 2}, {0.75, 2. / 3.}}
			neiP = []PhaseState{{0.05, 1}, {0.95, 0.075 / 0.95}}
			pf   = make([]PhaseFluxes, 2)
		)
		ff := h.CalculatePhaseFluxes(own, nei, ownP, neiP, Sf, 0, types.InternalPatch, pf)
		assert.InDelta(t, ff.RhoPhi, pf[0].AlphaRhoPhi+pf[1].AlphaRhoPhi, 1.e-12)
		assert.InDelta(t, ff.Phi, pf[0].AlphaPhi+pf[1].AlphaPhi, 1.e-12)
	}
	{ // Cache lifecycle
		h := NewHLLC(m)
		s := idealState(1, 0, 1)
		h.CalculateFluxes(s, s, Sf, 0, types.InternalPatch)
		h.Clear()
		assert.Panics(t, func() { h.Interpolate(1, 1, true, 0, types.InternalPatch) })
		assert.Panics(t, func() { h.SStar.get(0, types.InternalPatch) })
	}
}

func newFlow(m mesh.Mesh, states []FaceState) (flow FlowFields) {
	flow = FlowFields{
		Rho: mesh.NewVolScalarField(m, 0),
		E:   mesh.NewVolScalarField(m, 0),
		P:   mesh.NewVolScalarField(m, 0),
		C:   mesh.NewVolScalarField(m, 0),
		U:   mesh.NewVolVectorField(m, types.Vector{}),
	}
	for i, s := range states {
		flow.Rho.Internal[i] = s.Rho
		flow.E.Internal[i] = s.E
		flow.P.Internal[i] = s.P
		flow.C.Internal[i] = s.C
		flow.U.Internal[i] = s.U
	}
	flow.Rho.CorrectBoundaryConditions()
	flow.E.CorrectBoundaryConditions()
	flow.P.CorrectBoundaryConditions()
	flow.C.CorrectBoundaryConditions()
	flow.U.CorrectBoundaryConditions()
	return
}

func TestUpdate(t *testing.T) {
	{ // Sod tube, every face
		m := mesh.NewLine1D(4, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
		own, nei := sodStates()
		flow := newFlow(m, []FaceState{own, own, nei, nei})
		for _, procLimit := range []int{1, 2, 0} {
			ff := Update(NewHLL(m), flow, nil, procLimit)
			assert.InDelta(t, 0.517659, ff.RhoPhi.Internal[1], 1.e-6)
			assert.InDelta(t, 0., ff.RhoPhi.Internal[0], 1.e-14)
			assert.InDelta(t, 1., ff.RhoUPhi.Internal[0][0], 1.e-14)
			assert.InDelta(t, 0.1, ff.RhoUPhi.Internal[2][0], 1.e-14)
			// Boundary faces point outwards
			assert.InDelta(t, -1., ff.RhoUPhi.Boundary[0][0][0], 1.e-14)
			assert.InDelta(t, 0.1, ff.RhoUPhi.Boundary[1][0][0], 1.e-14)
			assert.Empty(t, ff.AlphaPhi)
		}
	}
	{ // Uniform flow through a periodic tube
		m := mesh.NewLine1D(3, 0, 1, types.Patch_Cyclic, types.Patch_Cyclic)
		s := idealState(1, 0.5, 1)
		flow := newFlow(m, []FaceState{s, s, s})
		alpha := mesh.NewVolScalarField(m, 0.4)
		rho := mesh.NewVolScalarField(m, 2.5)
		fs := NewHLLC(m)
		ff := Update(fs, flow, []PhaseFields{{Alpha: alpha, Rho: rho}}, 0)
		for f := 0; f < m.NInternalFaces(); f++ {
			assert.InDelta(t, 0.5, ff.Phi.Internal[f], 1.e-14)
			assert.InDelta(t, 0.5, ff.AlphaRhoPhi[0].Internal[f], 1.e-14)
			assert.InDelta(t, 0.2, ff.AlphaPhi[0].Internal[f], 1.e-14)
		}
		assert.InDelta(t, -0.5, ff.Phi.Boundary[0][0], 1.e-14)
		assert.InDelta(t, 0.5, ff.Phi.Boundary[1][0], 1.e-14)
		assert.Panics(t, func() {
			Update(fs, flow, []PhaseFields{{Alpha: alpha}}, 0)
		})
	}
}

func TestAD(t *testing.T) {
	var (
		m        = mesh.NewLine1D(2, 0, 1, types.Patch_Cyclic, types.Patch_Cyclic)
		own, nei = sodStates()
		flow     = newFlow(m, []FaceState{own, nei})
		alpha    = mesh.NewVolScalarField(m, 0)
		expected = 1.4 * 0.4 / (2 * math.Sqrt(1.4))
	)
	alpha.Internal = []float64{0.2, 0.6}
	alpha.CorrectBoundaryConditions()
	for _, name := range []string{"HLL", "HLLC", "Rusanov"} {
		fs, err := NewFluxScheme(name, m)
		require.NoError(t, err)
		assert.Panics(t, func() { fs.AD(alpha) })
		Update(fs, flow, nil, 0)
		ad := fs.AD(alpha)
		if name == "HLLC" {
			// Roe averaged speeds bound the fan more tightly
			assert.Greater(t, ad.Internal[0], 0.)
			assert.InDelta(t, ad.Internal[0], ad.Boundary[0][0], 1.e-14)
			continue
		}
		assert.InDelta(t, expected, ad.Internal[0], 1.e-12)
		// Cyclic faces see the far side cell
		assert.InDelta(t, expected, ad.Boundary[0][0], 1.e-12)
		assert.InDelta(t, expected, ad.Boundary[1][0], 1.e-12)
	}
	{ // Uniform alpha has no diffusion
		fs := NewHLL(m)
		Update(fs, flow, nil, 0)
		ad := fs.AD(mesh.NewVolScalarField(m, 0.3))
		assert.Equal(t, 0., ad.Internal[0])
	}
}
