package fluxSchemes

import (
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/types"
)

/*
HLL is the two wave approximate Riemann solver of Harten, Lax and van Leer.
Every flux is a weighted sum of the owner flux, the neighbour flux and the
jump in the conserved variable:

	F = wOwn*F(Own) + wNei*F(Nei) + wJump*(W(Nei) - W(Own))

Supersonic faces select one side with unit weight, which makes those fluxes
bit-identical to the one sided analytic flux.
*/
type HLL struct {
	base
	name       string
	waveSpeeds func(rhoOwn, rhoNei, UvOwn, UvNei, cOwn, cNei float64) (SOwn, SNei float64)
}

func NewHLL(m mesh.Mesh) *HLL {
	return &HLL{
		base: newBase(m),
		name: "HLL",
		waveSpeeds: func(_, _, UvOwn, UvNei, cOwn, cNei float64) (float64, float64) {
			return HLLWaveSpeeds(UvOwn, UvNei, cOwn, cNei)
		},
	}
}

// NewRusanov is the local Lax-Friedrichs flux, an HLL flux with a symmetric
// fan bounded by the fastest characteristic.
func NewRusanov(m mesh.Mesh) *HLL {
	return &HLL{
		base: newBase(m),
		name: "Rusanov",
		waveSpeeds: func(_, _, UvOwn, UvNei, cOwn, cNei float64) (float64, float64) {
			return RusanovWaveSpeeds(UvOwn, UvNei, cOwn, cNei)
		},
	}
}

func (h *HLL) Name() string { return h.name }

type hllWeights struct {
	wOwn, wNei, wJump float64
}

func newHLLWeights(SOwn, SNei float64) (hw hllWeights) {
	switch {
	case SOwn >= 0:
		hw = hllWeights{1, 0, 0}
	case SNei >= 0:
		dS := SNei - SOwn
		hw = hllWeights{SNei / dS, -SOwn / dS, SOwn * SNei / dS}
	default:
		hw = hllWeights{0, 1, 0}
	}
	return
}

func (hw hllWeights) flux(fOwn, fNei, wOwn, wNei float64) float64 {
	return hw.wOwn*fOwn + hw.wNei*fNei + hw.wJump*(wNei-wOwn)
}

func (hw hllWeights) fluxV(fOwn, fNei, wOwn, wNei types.Vector) (f types.Vector) {
	for n := 0; n < 3; n++ {
		f[n] = hw.flux(fOwn[n], fNei[n], wOwn[n], wNei[n])
	}
	return
}

// average is the weighted mean of a non conserved quantity.
func (hw hllWeights) average(fOwn, fNei float64) float64 {
	return hw.wOwn*fOwn + hw.wNei*fNei
}

func (h *HLL) CalculateFluxes(own, nei FaceState, Sf types.Vector, face, patch int) (ff FaceFluxes) {
	var (
		magSf, normal, vMesh = h.geometry(Sf, face, patch)
		UvOwn                = NormalVelocity(own.U, normal, vMesh)
		UvNei                = NormalVelocity(nei.U, normal, vMesh)
		SOwn, SNei           = h.waveSpeeds(own.Rho, nei.Rho, UvOwn, UvNei, own.C, nei.C)
		hw                   = newHLLWeights(SOwn, SNei)
	)
	h.saveWaveSpeeds(face, patch, SOwn, SNei, UvOwn, UvNei)
	h.Uf.save(face, patch, own.U.Scale(hw.wOwn).Add(nei.U.Scale(hw.wNei)))

	var (
		rhoUOwn, rhoUNei = own.U.Scale(own.Rho), nei.U.Scale(nei.Rho)
		rhoEOwn, rhoENei = own.Rho * own.TotalEnergy(), nei.Rho * nei.TotalEnergy()
		p                = hw.average(own.P, nei.P)
	)
	ff.Phi = hw.average(UvOwn, UvNei) * magSf
	ff.RhoPhi = hw.flux(own.Rho*UvOwn, nei.Rho*UvNei, own.Rho, nei.Rho) * magSf
	ff.RhoUPhi = hw.fluxV(
		rhoUOwn.Scale(UvOwn).Add(normal.Scale(own.P)),
		rhoUNei.Scale(UvNei).Add(normal.Scale(nei.P)),
		rhoUOwn, rhoUNei).Scale(magSf)
	ff.RhoEPhi = hw.flux((rhoEOwn+own.P)*UvOwn, (rhoENei+nei.P)*UvNei, rhoEOwn, rhoENei) * magSf
	// Pressure work done by the moving mesh
	ff.RhoEPhi += vMesh * magSf * p
	return
}

func (h *HLL) CalculatePhaseFluxes(own, nei FaceState, ownPhases, neiPhases []PhaseState,
	Sf types.Vector, face, patch int, phaseFluxes []PhaseFluxes) (ff FaceFluxes) {
	ff = h.CalculateFluxes(own, nei, Sf, face, patch)
	var (
		magSf        = Sf.Mag()
		UvOwn, UvNei = h.UvOwn.get(face, patch), h.UvNei.get(face, patch)
		hw           = newHLLWeights(h.SOwn.get(face, patch), h.SNei.get(face, patch))
	)
	for i := range phaseFluxes {
		var (
			aOwn, aNei       = ownPhases[i].Alpha, neiPhases[i].Alpha
			aRhoOwn, aRhoNei = aOwn * ownPhases[i].Rho, aNei * neiPhases[i].Rho
		)
		phaseFluxes[i] = PhaseFluxes{
			AlphaPhi:    hw.flux(aOwn*UvOwn, aNei*UvNei, aOwn, aNei) * magSf,
			AlphaRhoPhi: hw.flux(aRhoOwn*UvOwn, aRhoNei*UvNei, aRhoOwn, aRhoNei) * magSf,
		}
	}
	return
}

func (h *HLL) EnergyFlux(own, nei FaceState, face, patch int) (rhoEPhi float64) {
	var (
		magSf            = h.mesh.MagSf(face, patch)
		vMesh            = h.mesh.MeshPhi(face, patch) / magSf
		UvOwn, UvNei     = h.UvOwn.get(face, patch), h.UvNei.get(face, patch)
		hw               = newHLLWeights(h.SOwn.get(face, patch), h.SNei.get(face, patch))
		rhoEOwn, rhoENei = own.Rho * own.TotalEnergy(), nei.Rho * nei.TotalEnergy()
	)
	rhoEPhi = hw.flux((rhoEOwn+own.P)*UvOwn, (rhoENei+nei.P)*UvNei, rhoEOwn, rhoENei)
	rhoEPhi += vMesh * hw.average(own.P, nei.P)
	rhoEPhi *= magSf
	return
}

/*
Interpolate returns the face value of a transported scalar. Inside the fan a
density takes the HLL intermediate state, which stays positive for positive
inputs, and any other scalar the wave speed weighted average.
*/
func (h *HLL) Interpolate(fOwn, fNei float64, isDensity bool, face, patch int) float64 {
	var (
		SOwn, SNei = h.SOwn.get(face, patch), h.SNei.get(face, patch)
	)
	switch {
	case SOwn >= 0:
		return fOwn
	case SNei >= 0:
		if isDensity {
			UvOwn, UvNei := h.UvOwn.get(face, patch), h.UvNei.get(face, patch)
			return (fNei*(SNei-UvNei) - fOwn*(SOwn-UvOwn)) / (SNei - SOwn)
		}
		return newHLLWeights(SOwn, SNei).average(fOwn, fNei)
	default:
		return fNei
	}
}
