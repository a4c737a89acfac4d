package dragODE

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/ode"
	"github.com/notargets/goblast/phaseSystem"
	"github.com/notargets/goblast/utils"
)

var ErrTooManySubSteps = errors.New("drag relaxation exceeded the sub-step limit")

// alphaRhoFloor bounds the partial densities the drag coefficient is divided by
const alphaRhoFloor = 1.e-6

type Dict struct {
	SolveODE       bool
	ODESolver      string
	ODE            ode.Dict
	MaxSubSteps    int // per cell and per call to Solve
	ParallelDegree int // 0 means one go routine per CPU
}

func DefaultDict() Dict {
	return Dict{
		ODESolver:   "Rosenbrock12",
		ODE:         ode.DefaultDict(),
		MaxSubSteps: 10000,
	}
}

// pairDrag is a drag interaction resolved to phase indices.
type pairDrag struct {
	p1, p2 int
	model  phaseSystem.DragModel
}

/*
DragODE relaxes the velocities of every phase node toward each other under
the registered drag models, independently in each cell. The unknowns of a
cell are packed as

	q[startI[phase] + node*nDims + dim]

over the solved directions of the mesh only.
*/
type DragODE struct {
	ps      *phaseSystem.PhaseSystem
	mesh    mesh.Mesh
	dict    Dict
	phases  []phaseSystem.PhaseModel
	solD    []int
	nDims   int
	startI  []int
	nEqns   int
	drag    []pairDrag
	deltaT  []float64 // per cell last accepted sub-step
	dtTry   []float64 // per cell trial step suggested by the solver
	solvers []ode.Solver
	Log     logrus.FieldLogger
}

func New(ps *phaseSystem.PhaseSystem, m mesh.Mesh, dict Dict) (d *DragODE, err error) {
	if dict.MaxSubSteps <= 0 {
		dict.MaxSubSteps = DefaultDict().MaxSubSteps
	}
	if dict.ODESolver == "" {
		dict.ODESolver = DefaultDict().ODESolver
	}
	d = &DragODE{
		ps:     ps,
		mesh:   m,
		dict:   dict,
		phases: ps.Phases(),
		solD:   m.SolutionD(),
		deltaT: make([]float64, m.NCells()),
		dtTry:  make([]float64, m.NCells()),
		Log:    logrus.StandardLogger(),
	}
	d.nDims = len(d.solD)
	d.startI = make([]int, len(d.phases))
	index := make(map[string]int, len(d.phases))
	for i, p := range d.phases {
		index[p.Name()] = i
		d.startI[i] = d.nEqns
		d.nEqns += p.NNodes() * d.nDims
	}
	for _, pd := range ps.DragModels() {
		d.drag = append(d.drag, pairDrag{
			p1:    index[pd.Pair.Phase1.Name()],
			p2:    index[pd.Pair.Phase2.Name()],
			model: pd.Model,
		})
	}
	// Validate the solver name now rather than on the first step
	if _, err = ode.New(dict.ODESolver, d, dict.ODE); err != nil {
		d = nil
	}
	return
}

func (d *DragODE) NEqns() int { return d.nEqns }

// SolveDrag reports whether Solve integrates anything.
func (d *DragODE) SolveDrag() bool { return d.dict.SolveODE }

// DeltaT returns the last accepted sub-step of every cell.
func (d *DragODE) DeltaT() []float64 { return d.deltaT }

func (d *DragODE) index(phase, node, dim int) int {
	return d.startI[phase] + node*d.nDims + dim
}

// setq gathers the velocities of every node in a cell into q.
func (d *DragODE) setq(q []float64, cell int) {
	for p, phase := range d.phases {
		for n := 0; n < phase.NNodes(); n++ {
			U := phase.U(n)[cell]
			for dim, cmpt := range d.solD {
				q[d.index(p, n, dim)] = U[cmpt]
			}
		}
	}
}

// setUs scatters q back into the velocities of a cell.
func (d *DragODE) setUs(q []float64, cell int) {
	for p, phase := range d.phases {
		for n := 0; n < phase.NNodes(); n++ {
			U := phase.U(n)
			for dim, cmpt := range d.solD {
				U[cell][cmpt] = q[d.index(p, n, dim)]
			}
		}
	}
}

// exchange visits every interacting node pair of a cell with the drag
// coefficients divided by each node's partial density.
func (d *DragODE) exchange(li int, f func(p1, i, p2, j int, drag1, drag2 float64)) {
	for _, pd := range d.drag {
		phase1, phase2 := d.phases[pd.p1], d.phases[pd.p2]
		for i := 0; i < phase1.NNodes(); i++ {
			alphaRho1 := math.Max(phase1.AlphaRho(i)[li], alphaRhoFloor)
			for j := 0; j < phase2.NNodes(); j++ {
				var (
					alphaRho2 = math.Max(phase2.AlphaRho(j)[li], alphaRhoFloor)
					drag      = pd.model.CellK(li, i, j)
				)
				f(pd.p1, i, pd.p2, j, drag/alphaRho1, drag/alphaRho2)
			}
		}
	}
}

func (d *DragODE) Derivatives(_ float64, q []float64, li int, dqdt []float64) {
	for i := range dqdt {
		dqdt[i] = 0
	}
	d.exchange(li, func(p1, i, p2, j int, drag1, drag2 float64) {
		for dim := 0; dim < d.nDims; dim++ {
			var (
				i1 = d.index(p1, i, dim)
				i2 = d.index(p2, j, dim)
			)
			dqdt[i1] += drag1 * (q[i2] - q[i1])
			dqdt[i2] += drag2 * (q[i1] - q[i2])
		}
	})
}

// Jacobian accumulates the linear exchange blocks. The drag coefficients are
// frozen at the last scattered velocities, so the system has no explicit
// time dependence.
func (d *DragODE) Jacobian(_ float64, _ []float64, li int, dfdt []float64, J *utils.DOK) {
	for i := range dfdt {
		dfdt[i] = 0
	}
	d.exchange(li, func(p1, i, p2, j int, drag1, drag2 float64) {
		for dim := 0; dim < d.nDims; dim++ {
			var (
				ui = d.index(p1, i, dim)
				uj = d.index(p2, j, dim)
			)
			J.Add(ui, ui, -drag1)
			J.Add(ui, uj, drag1)
			J.Add(uj, uj, -drag2)
			J.Add(uj, ui, drag2)
		}
	})
}

// ensureSolvers keeps one solver per go routine; solvers carry scratch space.
func (d *DragODE) ensureSolvers(np int) (err error) {
	for len(d.solvers) < np {
		var s ode.Solver
		if s, err = ode.New(d.dict.ODESolver, d, d.dict.ODE); err != nil {
			return
		}
		d.solvers = append(d.solvers, s)
	}
	return
}

func (d *DragODE) solveCell(s ode.Solver, q []float64, cell int, deltaT float64) (nSub int, err error) {
	d.setq(q, cell)
	timeLeft := deltaT
	for ; timeLeft > utils.Small; nSub++ {
		if nSub >= d.dict.MaxSubSteps {
			err = fmt.Errorf("%w: cell %d stopped after %d sub-steps with %g s left",
				ErrTooManySubSteps, cell, nSub, timeLeft)
			return
		}
		dt := timeLeft
		if err = s.Solve(0, &dt, q, cell, &d.dtTry[cell]); err != nil {
			return
		}
		if !(dt > 0) {
			err = fmt.Errorf("%w: cell %d returned step %g", ode.ErrStepUnderflow, cell, dt)
			return
		}
		d.setUs(q, cell)
		d.deltaT[cell] = dt
		timeLeft -= dt
	}
	return
}

/*
Solve integrates drag over deltaT in every cell, encodes every phase and
returns the smallest accepted sub-step, the time scale on which drag is
resolved explicitly. It never exceeds deltaT. When SolveODE is off the phases are left untouched and deltaT is
returned.
*/
func (d *DragODE) Solve(deltaT float64) (dtDrag float64, err error) {
	if !d.dict.SolveODE {
		return deltaT, nil
	}
	nCells := d.mesh.NCells()
	if d.nEqns == 0 || len(d.drag) == 0 || nCells == 0 {
		d.ps.Encode()
		return deltaT, nil
	}
	pm := utils.NewPartitionMap(utils.ParallelDegree(d.dict.ParallelDegree, nCells), nCells)
	if err = d.ensureSolvers(pm.ParallelDegree); err != nil {
		return
	}
	var (
		errs    = make([]error, pm.ParallelDegree)
		maxSubs = make([]int, pm.ParallelDegree)
	)
	pm.Run(func(np, cMin, cMax int) {
		q := make([]float64, d.nEqns)
		for c := cMin; c < cMax; c++ {
			nSub, err := d.solveCell(d.solvers[np], q, c, deltaT)
			if err != nil {
				errs[np] = err
				return
			}
			maxSubs[np] = max(maxSubs[np], nSub)
		}
	})
	if err = errors.Join(errs...); err != nil {
		return
	}
	d.ps.Encode()
	dtDrag = utils.MinSlice(d.deltaT)
	d.Log.WithFields(logrus.Fields{
		"deltaT":      deltaT,
		"dtDrag":      dtDrag,
		"maxSubSteps": utils.MaxInt(maxSubs),
	}).Debug("drag relaxed")
	return
}

// String names the phases and offsets of the packed state.
func (d *DragODE) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DragODE %d equations, solver %s:", d.nEqns, d.dict.ODESolver)
	for i, p := range d.phases {
		fmt.Fprintf(&b, " %s[%d:%d]", p.Name(), d.startI[i], d.startI[i]+p.NNodes()*d.nDims)
	}
	return b.String()
}
