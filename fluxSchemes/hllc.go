package fluxSchemes

import (
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/types"
)

/*
HLLC restores the contact wave missing from HLL. The fan is split at the
contact speed SStar into two star states and the flux is picked from four
regions:

	SOwn > 0            owner state
	SOwn <= 0 < SStar   owner star state
	SStar <= 0 < SNei   neighbour star state
	SNei <= 0           neighbour state
*/
type HLLC struct {
	base
	SStar              faceCache[float64]
	pStarOwn, pStarNei faceCache[float64]
}

func NewHLLC(m mesh.Mesh) *HLLC {
	return &HLLC{
		base:     newBase(m),
		SStar:    newFaceCache[float64]("SStar", m),
		pStarOwn: newFaceCache[float64]("pStarOwn", m),
		pStarNei: newFaceCache[float64]("pStarNei", m),
	}
}

func (h *HLLC) Name() string { return "HLLC" }

func (h *HLLC) Clear() {
	h.base.Clear()
	h.SStar.clear()
	h.pStarOwn.clear()
	h.pStarNei.clear()
}

func (h *HLLC) Allocate() {
	h.base.Allocate()
	h.SStar.allocate()
	h.pStarOwn.allocate()
	h.pStarNei.allocate()
}

type hllcRegion uint8

const (
	regionOwn hllcRegion = iota
	regionStarOwn
	regionStarNei
	regionNei
)

func selectRegion(SOwn, SStar, SNei float64) hllcRegion {
	switch {
	case SOwn > 0:
		return regionOwn
	case SStar > 0:
		return regionStarOwn
	case SNei > 0:
		return regionStarNei
	default:
		return regionNei
	}
}

// side is the conserved state and flux of one side of the face.
type side struct {
	Uv, S, pStar float64
	rho, rhoE, p float64
	U, rhoU      types.Vector
}

func newSide(fs FaceState, Uv, S, pStar float64) side {
	return side{
		Uv:    Uv,
		S:     S,
		pStar: pStar,
		rho:   fs.Rho,
		rhoE:  fs.Rho * fs.TotalEnergy(),
		p:     fs.P,
		U:     fs.U,
		rhoU:  fs.U.Scale(fs.Rho),
	}
}

// starFactor is the compression of the side state across its outer wave.
func (s side) starFactor(SStar float64) float64 {
	return (s.S - s.Uv) / (s.S - SStar)
}

func (s side) fluxes(normal types.Vector) (ff FaceFluxes) {
	ff.Phi = s.Uv
	ff.RhoPhi = s.rho * s.Uv
	ff.RhoUPhi = s.rhoU.Scale(s.Uv).Add(normal.Scale(s.p))
	ff.RhoEPhi = (s.rhoE + s.p) * s.Uv
	return
}

// starFluxes applies the jump condition across the outer wave of the side.
func (s side) starFluxes(normal types.Vector, SStar float64) (ff FaceFluxes) {
	var (
		f        = s.starFactor(SStar)
		rhoStar  = f * s.rho
		rhoUStar = s.U.Sub(normal.Scale(s.Uv - SStar)).Scale(f * s.rho)
		rhoEStar = f*s.rhoE + (s.pStar*SStar-s.p*s.Uv)/(s.S-SStar)
	)
	ff = s.fluxes(normal)
	ff.Phi = SStar * f
	ff.RhoPhi += s.S * (rhoStar - s.rho)
	ff.RhoUPhi = ff.RhoUPhi.Add(rhoUStar.Sub(s.rhoU).Scale(s.S))
	ff.RhoEPhi += s.S * (rhoEStar - s.rhoE)
	return
}

func (h *HLLC) CalculateFluxes(own, nei FaceState, Sf types.Vector, face, patch int) (ff FaceFluxes) {
	var (
		magSf, normal, vMesh = h.geometry(Sf, face, patch)
		UvOwn                = NormalVelocity(own.U, normal, vMesh)
		UvNei                = NormalVelocity(nei.U, normal, vMesh)
		SOwn, SNei           = RoeWaveSpeeds(own.Rho, nei.Rho, UvOwn, UvNei, own.C, nei.C)
		SStar                = StarSpeed(own.Rho, nei.Rho, UvOwn, UvNei, own.P, nei.P, SOwn, SNei)
		pStarOwn             = StarPressure(own.P, own.Rho, SOwn, UvOwn, SStar)
		pStarNei             = StarPressure(nei.P, nei.Rho, SNei, UvNei, SStar)
		sOwn                 = newSide(own, UvOwn, SOwn, pStarOwn)
		sNei                 = newSide(nei, UvNei, SNei, pStarNei)
		p                    float64
	)
	h.saveWaveSpeeds(face, patch, SOwn, SNei, UvOwn, UvNei)
	h.SStar.save(face, patch, SStar)
	h.pStarOwn.save(face, patch, pStarOwn)
	h.pStarNei.save(face, patch, pStarNei)

	switch selectRegion(SOwn, SStar, SNei) {
	case regionOwn:
		h.Uf.save(face, patch, own.U)
		ff, p = sOwn.fluxes(normal), own.P
	case regionStarOwn:
		h.Uf.save(face, patch, own.U.Add(normal.Scale(SStar-UvOwn)))
		ff, p = sOwn.starFluxes(normal, SStar), pStarOwn
	case regionStarNei:
		h.Uf.save(face, patch, nei.U.Add(normal.Scale(SStar-UvNei)))
		ff, p = sNei.starFluxes(normal, SStar), pStarNei
	case regionNei:
		h.Uf.save(face, patch, nei.U)
		ff, p = sNei.fluxes(normal), nei.P
	}
	ff.Phi *= magSf
	ff.RhoPhi *= magSf
	ff.RhoUPhi = ff.RhoUPhi.Scale(magSf)
	ff.RhoEPhi = (ff.RhoEPhi + vMesh*p) * magSf
	return
}

func (h *HLLC) CalculatePhaseFluxes(own, nei FaceState, ownPhases, neiPhases []PhaseState,
	Sf types.Vector, face, patch int, phaseFluxes []PhaseFluxes) (ff FaceFluxes) {
	ff = h.CalculateFluxes(own, nei, Sf, face, patch)
	var (
		magSf        = Sf.Mag()
		SOwn, SNei   = h.SOwn.get(face, patch), h.SNei.get(face, patch)
		UvOwn, UvNei = h.UvOwn.get(face, patch), h.UvNei.get(face, patch)
		SStar        = h.SStar.get(face, patch)
		region       = selectRegion(SOwn, SStar, SNei)
		phi          float64
		ps           []PhaseState
	)
	// Every phase is advected with the mixture volumetric flux of its region
	switch region {
	case regionOwn:
		phi, ps = UvOwn, ownPhases
	case regionStarOwn:
		phi, ps = SStar*(SOwn-UvOwn)/(SOwn-SStar), ownPhases
	case regionStarNei:
		phi, ps = SStar*(SNei-UvNei)/(SNei-SStar), neiPhases
	case regionNei:
		phi, ps = UvNei, neiPhases
	}
	for i := range phaseFluxes {
		phaseFluxes[i] = PhaseFluxes{
			AlphaPhi:    phi * ps[i].Alpha * magSf,
			AlphaRhoPhi: phi * ps[i].Alpha * ps[i].Rho * magSf,
		}
	}
	return
}

/*
EnergyFlux rebuilds the energy flux from the cached wave speeds. The star
regions use the mean of the two cached star pressures, which is cheaper than
the full flux and matches it whenever the contact speed was not limited.
*/
func (h *HLLC) EnergyFlux(own, nei FaceState, face, patch int) (rhoEPhi float64) {
	var (
		magSf        = h.mesh.MagSf(face, patch)
		vMesh        = h.mesh.MeshPhi(face, patch) / magSf
		SOwn, SNei   = h.SOwn.get(face, patch), h.SNei.get(face, patch)
		UvOwn, UvNei = h.UvOwn.get(face, patch), h.UvNei.get(face, patch)
		SStar        = h.SStar.get(face, patch)
		pStar        = 0.5 * (h.pStarOwn.get(face, patch) + h.pStarNei.get(face, patch))
		sOwn         = newSide(own, UvOwn, SOwn, pStar)
		sNei         = newSide(nei, UvNei, SNei, pStar)
		p            float64
	)
	switch selectRegion(SOwn, SStar, SNei) {
	case regionOwn:
		rhoEPhi, p = sOwn.fluxes(types.Vector{}).RhoEPhi, own.P
	case regionStarOwn:
		rhoEPhi, p = sOwn.starFluxes(types.Vector{}, SStar).RhoEPhi, pStar
	case regionStarNei:
		rhoEPhi, p = sNei.starFluxes(types.Vector{}, SStar).RhoEPhi, pStar
	case regionNei:
		rhoEPhi, p = sNei.fluxes(types.Vector{}).RhoEPhi, nei.P
	}
	rhoEPhi = (rhoEPhi + vMesh*p) * magSf
	return
}

// Interpolate treats the contact as a discontinuity: the upwind side of the
// contact supplies the value.
func (h *HLLC) Interpolate(fOwn, fNei float64, _ bool, face, patch int) float64 {
	if h.SOwn.get(face, patch) > 0 || h.SStar.get(face, patch) > 0 {
		return fOwn
	}
	return fNei
}
