package fluxSchemes

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/types"
	"github.com/notargets/goblast/utils"
)

// FaceState is the primitive state on one side of a face.
type FaceState struct {
	Rho float64      // density
	U   types.Vector // velocity
	E   float64      // specific internal energy
	P   float64      // pressure
	C   float64      // sound speed
}

// TotalEnergy is the specific total energy e + |U|^2/2.
func (fs FaceState) TotalEnergy() float64 {
	return fs.E + 0.5*fs.U.MagSqr()
}

// PhaseState is the volume fraction and phase density of one phase on one
// side of a face.
type PhaseState struct {
	Alpha, Rho float64
}

// FaceFluxes are the area-integrated fluxes through a face.
type FaceFluxes struct {
	Phi     float64      // volumetric flux
	RhoPhi  float64      // mass flux
	RhoUPhi types.Vector // momentum flux
	RhoEPhi float64      // total energy flux
}

// PhaseFluxes are the area-integrated fluxes of one phase through a face.
type PhaseFluxes struct {
	AlphaPhi, AlphaRhoPhi float64
}

type FluxScheme interface {
	Name() string
	Mesh() mesh.Mesh
	// Clear invalidates the cached wave speeds; call before each evaluation
	Clear()
	// Allocate prepares the caches for a full pass over every face
	Allocate()
	CalculateFluxes(own, nei FaceState, Sf types.Vector, face, patch int) FaceFluxes
	// CalculatePhaseFluxes also fills phaseFluxes, one entry per phase
	CalculatePhaseFluxes(own, nei FaceState, ownPhases, neiPhases []PhaseState,
		Sf types.Vector, face, patch int, phaseFluxes []PhaseFluxes) FaceFluxes
	// EnergyFlux recomputes the energy flux from the cached wave speeds
	EnergyFlux(own, nei FaceState, face, patch int) float64
	Interpolate(fOwn, fNei float64, isDensity bool, face, patch int) float64
	// AD is the numerical diffusion coefficient of a volume fraction field
	AD(alpha *mesh.VolScalarField) *mesh.SurfaceScalarField
	// FaceVelocity is the velocity used to advect scalars through a face
	FaceVelocity(face, patch int) types.Vector
}

type FluxType uint

const (
	FLUX_HLL FluxType = iota
	FLUX_HLLC
	FLUX_Rusanov
)

var (
	FluxNames = map[string]FluxType{
		"hll":     FLUX_HLL,
		"hllc":    FLUX_HLLC,
		"rusanov": FLUX_Rusanov,
		"lax":     FLUX_Rusanov,
	}
	FluxPrintNames = []string{"HLL", "HLLC", "Rusanov"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

// Names lists the accepted flux scheme names.
func Names() (names []string) {
	for name := range FluxNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func NewFluxScheme(name string, m mesh.Mesh) (fs FluxScheme, err error) {
	ft, ok := FluxNames[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown flux scheme %q, valid choices are: %s",
			name, strings.Join(Names(), ", "))
		return
	}
	switch ft {
	case FLUX_HLL:
		fs = NewHLL(m)
	case FLUX_HLLC:
		fs = NewHLLC(m)
	case FLUX_Rusanov:
		fs = NewRusanov(m)
	}
	return
}

// base carries the mesh and the caches every scheme shares.
type base struct {
	mesh         mesh.Mesh
	SOwn, SNei   faceCache[float64]
	UvOwn, UvNei faceCache[float64]
	Uf           faceCache[types.Vector]
}

func newBase(m mesh.Mesh) base {
	return base{
		mesh:  m,
		SOwn:  newFaceCache[float64]("SOwn", m),
		SNei:  newFaceCache[float64]("SNei", m),
		UvOwn: newFaceCache[float64]("UvOwn", m),
		UvNei: newFaceCache[float64]("UvNei", m),
		Uf:    newFaceCache[types.Vector]("Uf", m),
	}
}

func (b *base) Mesh() mesh.Mesh { return b.mesh }

func (b *base) Clear() {
	b.SOwn.clear()
	b.SNei.clear()
	b.UvOwn.clear()
	b.UvNei.clear()
	b.Uf.clear()
}

func (b *base) Allocate() {
	b.SOwn.allocate()
	b.SNei.allocate()
	b.UvOwn.allocate()
	b.UvNei.allocate()
	b.Uf.allocate()
}

func (b *base) FaceVelocity(face, patch int) types.Vector {
	return b.Uf.get(face, patch)
}

func (b *base) geometry(Sf types.Vector, face, patch int) (magSf float64, normal types.Vector, vMesh float64) {
	magSf = Sf.Mag()
	normal = Sf.Scale(1. / magSf)
	vMesh = b.mesh.MeshPhi(face, patch) / magSf
	return
}

func (b *base) saveWaveSpeeds(face, patch int, SOwn, SNei, UvOwn, UvNei float64) {
	b.SOwn.save(face, patch, SOwn)
	b.SNei.save(face, patch, SNei)
	b.UvOwn.save(face, patch, UvOwn)
	b.UvNei.save(face, patch, UvNei)
}

/*
AD returns |SOwn*SNei*(alphaNei-alphaOwn)/(SNei-SOwn)| on every face. On
coupled patches the neighbour value comes from the far side cells; on the
remaining patches from the boundary value.
*/
func (b *base) AD(alpha *mesh.VolScalarField) (ad *mesh.SurfaceScalarField) {
	var (
		m         = b.mesh
		owner     = m.Owner()
		neighbour = m.Neighbour()
	)
	ad = mesh.NewSurfaceField[float64](m)
	coefficient := func(face, patch int, aOwn, aNei float64) float64 {
		var (
			SOwn = b.SOwn.get(face, patch)
			SNei = b.SNei.get(face, patch)
			dS   = SNei - SOwn
		)
		if dS < utils.VSmall {
			return 0
		}
		return math.Abs(SOwn * SNei * (aNei - aOwn) / dS)
	}
	for f := 0; f < m.NInternalFaces(); f++ {
		ad.Internal[f] = coefficient(f, types.InternalPatch,
			alpha.Internal[owner[f]], alpha.Internal[neighbour[f]])
	}
	for p, patch := range m.Patches() {
		var (
			aOwn = alpha.PatchInternalField(p)
			aNei []float64
		)
		if patch.Coupled() {
			aNei = alpha.PatchNeighbourField(p)
		} else {
			aNei = alpha.Boundary[p]
		}
		for f := 0; f < patch.Size(); f++ {
			ad.Boundary[p][f] = coefficient(f, p, aOwn[f], aNei[f])
		}
	}
	return
}
