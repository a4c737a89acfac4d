package ShockTube1D

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/goblast/dragODE"
	"github.com/notargets/goblast/fluxSchemes"
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/phaseSystem"
	"github.com/notargets/goblast/sod_shock_tube"
	"github.com/notargets/goblast/thermo"
	"github.com/notargets/goblast/types"
	"github.com/notargets/goblast/utils"
)

// Fluid is one phase of a mixture sharing the mixture velocity and pressure.
type Fluid struct {
	Name                  string
	AlphaLeft, AlphaRight float64
	RhoLeft, RhoRight     float64
}

// Particles is a dilute dispersed phase with one velocity node per diameter,
// initially at rest.
type Particles struct {
	Name                  string
	Rho                   float64   // material density
	Diameters             []float64 // one node per size class
	AlphaLeft, AlphaRight []float64 // per node
	DragModel             string
	DragDict              phaseSystem.DragDict
}

type Config struct {
	Title          string
	CFL, FinalTime float64
	NCells         int
	XMin, XMax     float64
	Periodic       bool
	Left, Right    sod_shock_tube.State
	FluxScheme     string
	EOS            thermo.EquationOfState
	Fluids         []Fluid
	Particles      *Particles
	Drag           dragODE.Dict
	ParallelDegree int
	LogFrequency   int

	// AlphaCompression is the fraction, in [0,1], of the scheme's numerical
	// diffusion of volume fraction removed after each step. Two fluids only.
	AlphaCompression float64
}

// CarrierName is the phase name the gas takes in drag pairs.
const CarrierName = "gas"

// alphaSmall is the volume fraction below which a fluid density is frozen.
const alphaSmall = 1.e-10

type fluidFields struct {
	Alpha, Rho *mesh.VolScalarField
	AlphaRho   []float64
}

/*
ShockTube integrates the Euler equations on a line with a first order finite
volume method and forward Euler in time. Mixture fluids are carried with
their volume fractions and partial densities, a particle cloud is carried
with its own velocity and coupled to the gas through DragODE after each
hyperbolic step.
*/
type ShockTube struct {
	Config
	Mesh       *mesh.Line1D
	Flux       fluxSchemes.FluxScheme
	flow       fluxSchemes.FlowFields
	RhoU       []types.Vector
	RhoE       []float64
	fluids     []fluidFields
	phases     *phaseSystem.PhaseSystem
	gas, cloud *phaseSystem.Phase
	drag       *dragODE.DragODE
	Time       float64
	Steps      int
	DtDrag     float64 // drag time scale of the last step
	Log        logrus.FieldLogger
}

func NewShockTube(cfg Config) (st *ShockTube, err error) {
	if cfg.NCells < 1 {
		err = fmt.Errorf("shock tube needs at least one cell, have %d", cfg.NCells)
		return
	}
	if cfg.CFL <= 0 {
		err = fmt.Errorf("CFL must be positive, have %g", cfg.CFL)
		return
	}
	if cfg.AlphaCompression < 0 || cfg.AlphaCompression > 1 {
		err = fmt.Errorf("AlphaCompression must be in [0,1], have %g", cfg.AlphaCompression)
		return
	}
	if cfg.AlphaCompression > 0 && len(cfg.Fluids) != 2 {
		err = fmt.Errorf("AlphaCompression needs exactly two fluids, have %d", len(cfg.Fluids))
		return
	}
	if cfg.EOS == nil {
		cfg.EOS = thermo.IdealGas{Gamma: 1.4}
	}
	if cfg.LogFrequency <= 0 {
		cfg.LogFrequency = 50
	}
	patch := types.Patch_Outflow
	if cfg.Periodic {
		patch = types.Patch_Cyclic
	}
	st = &ShockTube{
		Config: cfg,
		Mesh:   mesh.NewLine1D(cfg.NCells, cfg.XMin, cfg.XMax, patch, patch),
		Log:    logrus.StandardLogger(),
	}
	if st.Flux, err = fluxSchemes.NewFluxScheme(cfg.FluxScheme, st.Mesh); err != nil {
		return nil, err
	}
	st.initialize()
	if cfg.Particles != nil {
		if err = st.initializeParticles(); err != nil {
			return nil, err
		}
	}
	return
}

// X0 is the location of the initial discontinuity.
func (st *ShockTube) X0() float64 { return 0.5 * (st.XMin + st.XMax) }

func (st *ShockTube) initialize() {
	var (
		m  = st.Mesh
		X  = m.CellCentres()
		x0 = st.X0()
	)
	st.flow = fluxSchemes.FlowFields{
		Rho: mesh.NewVolScalarField(m, 0),
		E:   mesh.NewVolScalarField(m, 0),
		P:   mesh.NewVolScalarField(m, 0),
		C:   mesh.NewVolScalarField(m, 0),
		U:   mesh.NewVolVectorField(m, types.Vector{}),
	}
	st.RhoU = make([]types.Vector, m.NCells())
	st.RhoE = make([]float64, m.NCells())
	st.fluids = make([]fluidFields, len(st.Fluids))
	for i := range st.Fluids {
		st.fluids[i] = fluidFields{
			Alpha:    mesh.NewVolScalarField(m, 0),
			Rho:      mesh.NewVolScalarField(m, 0),
			AlphaRho: make([]float64, m.NCells()),
		}
	}
	for c, x := range X {
		s := st.Right
		left := x < x0
		if left {
			s = st.Left
		}
		if len(st.Fluids) != 0 {
			// The mixture density follows from the fluids
			s.Rho = 0
			for i, fl := range st.Fluids {
				alpha, rho := fl.AlphaRight, fl.RhoRight
				if left {
					alpha, rho = fl.AlphaLeft, fl.RhoLeft
				}
				st.fluids[i].Alpha.Internal[c] = alpha
				st.fluids[i].Rho.Internal[c] = rho
				st.fluids[i].AlphaRho[c] = alpha * rho
				s.Rho += alpha * rho
			}
		}
		U := types.Vector{s.U, 0, 0}
		st.flow.Rho.Internal[c] = s.Rho
		st.RhoU[c] = U.Scale(s.Rho)
		st.RhoE[c] = s.Rho * (st.EOS.InternalEnergy(s.Rho, s.P) + 0.5*U.MagSqr())
	}
	st.updatePrimitives()
}

// updatePrimitives recovers velocity, energy, pressure and sound speed from
// the conserved variables and refreshes every boundary value.
func (st *ShockTube) updatePrimitives() {
	f := st.flow
	for c, rho := range f.Rho.Internal {
		var (
			U = st.RhoU[c].Scale(1. / rho)
			e = st.RhoE[c]/rho - 0.5*U.MagSqr()
		)
		f.U.Internal[c] = U
		f.E.Internal[c] = e
		f.P.Internal[c] = st.EOS.Pressure(rho, e)
		f.C.Internal[c] = st.EOS.SoundSpeed(rho, e)
	}
	f.Rho.CorrectBoundaryConditions()
	f.U.CorrectBoundaryConditions()
	f.E.CorrectBoundaryConditions()
	f.P.CorrectBoundaryConditions()
	f.C.CorrectBoundaryConditions()
	for _, fl := range st.fluids {
		fl.Alpha.CorrectBoundaryConditions()
		fl.Rho.CorrectBoundaryConditions()
	}
}

func (st *ShockTube) phaseFields() (pf []fluxSchemes.PhaseFields) {
	for _, fl := range st.fluids {
		pf = append(pf, fluxSchemes.PhaseFields{Alpha: fl.Alpha, Rho: fl.Rho})
	}
	return
}

// CalculateDT returns the CFL limited step, clipped to land on FinalTime.
func (st *ShockTube) CalculateDT() (dt float64) {
	var (
		f     = st.flow
		maxLM float64
	)
	for c := range f.Rho.Internal {
		maxLM = math.Max(maxLM, math.Abs(f.U.Internal[c][0])+f.C.Internal[c])
	}
	if st.cloud != nil {
		for n := 0; n < st.cloud.NNodes(); n++ {
			for _, U := range st.cloud.U(n) {
				maxLM = math.Max(maxLM, math.Abs(U[0]))
			}
		}
	}
	dt = st.CFL * st.Mesh.Dx / maxLM
	if dt+st.Time > st.FinalTime {
		dt = st.FinalTime - st.Time
	}
	return
}

// Step advances the solution by dt: hyperbolic update followed by drag.
func (st *ShockTube) Step(dt float64) (err error) {
	var (
		m         = st.Mesh
		nCells    = m.NCells()
		owner     = m.Owner()
		neighbour = m.Neighbour()
		ff        = fluxSchemes.Update(st.Flux, st.flow, st.phaseFields(), st.ParallelDegree)
		dRho      = make([]float64, nCells)
		dRhoE     = make([]float64, nCells)
		dRhoU     = make([]types.Vector, nCells)
		dPhi      = make([]float64, nCells)
		dAlpha    = make([][]float64, len(st.fluids))
		dAlphaRho = make([][]float64, len(st.fluids))
	)
	for i := range st.fluids {
		dAlpha[i] = make([]float64, nCells)
		dAlphaRho[i] = make([]float64, nCells)
	}
	// Net outflow of every cell
	add := func(cell int, sign float64, face, patch int) {
		dRho[cell] += sign * ff.RhoPhi.Get(face, patch)
		dRhoE[cell] += sign * ff.RhoEPhi.Get(face, patch)
		dRhoU[cell] = dRhoU[cell].Add(ff.RhoUPhi.Get(face, patch).Scale(sign))
		dPhi[cell] += sign * ff.Phi.Get(face, patch)
		for i := range st.fluids {
			dAlpha[i][cell] += sign * ff.AlphaPhi[i].Get(face, patch)
			dAlphaRho[i][cell] += sign * ff.AlphaRhoPhi[i].Get(face, patch)
		}
	}
	for f := 0; f < m.NInternalFaces(); f++ {
		add(owner[f], 1, f, types.InternalPatch)
		add(neighbour[f], -1, f, types.InternalPatch)
	}
	for p, patch := range m.Patches() {
		for f, c := range patch.FaceCells {
			add(c, 1, f, p)
		}
	}
	for c := 0; c < nCells; c++ {
		dtV := dt / m.CellVolume(c)
		st.flow.Rho.Internal[c] -= dtV * dRho[c]
		st.RhoE[c] -= dtV * dRhoE[c]
		st.RhoU[c] = st.RhoU[c].Sub(dRhoU[c].Scale(dtV))
		for i, fl := range st.fluids {
			alpha := fl.Alpha.Internal[c]
			// Volume fractions are advected, not conserved
			alpha -= dtV * (dAlpha[i][c] - alpha*dPhi[c])
			fl.Alpha.Internal[c] = math.Max(alpha, 0)
			fl.AlphaRho[c] -= dtV * dAlphaRho[i][c]
			if fl.Alpha.Internal[c] > alphaSmall {
				fl.Rho.Internal[c] = fl.AlphaRho[c] / fl.Alpha.Internal[c]
			}
		}
	}
	if st.AlphaCompression > 0 {
		st.compressInterface(dt)
	}
	if st.cloud != nil {
		st.transportParticles(dt)
		if err = st.couple(dt); err != nil {
			return
		}
	}
	if utils.IsNan(st.flow.Rho.Internal) || utils.IsNan(st.RhoE) {
		return fmt.Errorf("solution diverged at step %d, time %g", st.Steps, st.Time)
	}
	st.updatePrimitives()
	st.Time += dt
	st.Steps++
	return
}

// Run steps to FinalTime, logging every LogFrequency steps.
func (st *ShockTube) Run() (err error) {
	st.Log.WithFields(logrus.Fields{
		"title":  st.Title,
		"flux":   st.Flux.Name(),
		"eos":    st.EOS.Name(),
		"nCells": st.NCells,
		"CFL":    st.CFL,
	}).Info("shock tube starting")
	for st.FinalTime-st.Time > utils.NODETOL {
		dt := st.CalculateDT()
		if err = st.Step(dt); err != nil {
			return
		}
		isDone := st.FinalTime-st.Time <= utils.NODETOL
		if st.Steps%st.LogFrequency == 0 || isDone {
			rhoMin, rhoMax := minMax(st.flow.Rho.Internal)
			fields := logrus.Fields{
				"step": st.Steps,
				"time": fmt.Sprintf("%8.5f", st.Time),
				"dt":   fmt.Sprintf("%8.6f", dt),
				"rho":  fmt.Sprintf("[%8.5f, %8.5f]", rhoMin, rhoMax),
			}
			if st.cloud != nil {
				fields["dtDrag"] = st.DtDrag
			}
			st.Log.WithFields(fields).Info("step")
		}
	}
	return
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, val := range v {
		lo, hi = math.Min(lo, val), math.Max(hi, val)
	}
	return
}

// Density returns the cell densities.
func (st *ShockTube) Density() []float64 { return st.flow.Rho.Internal }

func (st *ShockTube) Velocity() (U []float64) {
	U = make([]float64, st.Mesh.NCells())
	for c, u := range st.flow.U.Internal {
		U[c] = u[0]
	}
	return
}

func (st *ShockTube) Pressure() []float64 { return st.flow.P.Internal }

// Alpha returns the volume fraction of mixture fluid i.
func (st *ShockTube) Alpha(i int) []float64 { return st.fluids[i].Alpha.Internal }

// FluidDensity returns the phase density of mixture fluid i.
func (st *ShockTube) FluidDensity(i int) []float64 { return st.fluids[i].Rho.Internal }

// Totals are the domain integrals of mass, momentum and energy, particles
// included.
func (st *ShockTube) Totals() (mass, momentum, energy float64) {
	for c, rho := range st.flow.Rho.Internal {
		V := st.Mesh.CellVolume(c)
		mass += rho * V
		momentum += st.RhoU[c][0] * V
		energy += st.RhoE[c] * V
		if st.cloud != nil {
			for n := 0; n < st.cloud.NNodes(); n++ {
				mass += st.cloud.AlphaRho(n)[c] * V
			}
			momentum += st.cloud.Momentum(c)[0] * V
			energy += st.cloud.KineticEnergy(c) * V
		}
	}
	return
}

/*
DensityL1Error compares the density with the exact Riemann solution,

	L1 = sum(|rho - rhoExact| * Dx) / (XMax - XMin)

which is only defined for a single ideal gas.
*/
func (st *ShockTube) DensityL1Error() (l1 float64, err error) {
	ig, ok := st.EOS.(thermo.IdealGas)
	if !ok || len(st.Fluids) != 0 || st.cloud != nil {
		err = fmt.Errorf("exact solution requires a single ideal gas")
		return
	}
	var rp *sod_shock_tube.RiemannProblem
	if rp, err = sod_shock_tube.NewRiemannProblem(st.Left, st.Right, ig.Gamma, st.X0()); err != nil {
		return
	}
	X := st.Mesh.CellCentres()
	RhoExact, _, _, _ := rp.Profile(X, st.Time)
	for c, rho := range st.flow.Rho.Internal {
		l1 += math.Abs(rho-RhoExact[c]) * st.Mesh.Dx
	}
	l1 /= st.XMax - st.XMin
	return
}
