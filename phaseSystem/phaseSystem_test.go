package phaseSystem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goblast/types"
)

func TestPhase(t *testing.T) {
	{
		p := NewPhase("particles", 2, 3)
		assert.Equal(t, "particles", p.Name())
		assert.Equal(t, 2, p.NNodes())
		assert.Equal(t, 3, p.NCells())
		p.SetUniform(0, 0.1, 2000, types.Vector{1, 0, 0})
		p.SetUniform(1, 0.2, 2000, types.Vector{2, 0, 0})
		assert.Equal(t, []float64{200, 200, 200}, p.AlphaRho(0))
		assert.Equal(t, types.Vector{800, 0, 0}, p.AlphaRhoU[1][2])
		assert.Equal(t, types.Vector{1000, 0, 0}, p.Momentum(1))
		assert.Equal(t, 0.5*200+0.5*400*4, p.KineticEnergy(0))

		// Velocities written in place are picked up by Encode
		p.U(0)[1] = types.Vector{3, 0, 0}
		p.Encode()
		assert.Equal(t, types.Vector{600, 0, 0}, p.AlphaRhoU[0][1])

		// Decode recovers the velocity from the momentum
		p.AlphaRhoU[1][0] = types.Vector{1200, 0, 0}
		p.Alpha[1][2] = 0
		p.AlphaRhoU[1][2] = types.Vector{5, 0, 0}
		p.Decode(1.e-6)
		assert.Equal(t, types.Vector{3, 0, 0}, p.U(1)[0])
		assert.Equal(t, types.Vector{2, 0, 0}, p.U(1)[2])
	}
	{ // Zero node phases are valid
		p := NewPhase("empty", 0, 4)
		assert.Equal(t, 0, p.NNodes())
		assert.NotPanics(t, p.Encode)
		assert.Panics(t, func() { NewPhase("bad", -1, 2) })
	}
}

func TestPhaseSystem(t *testing.T) {
	var (
		ps    = NewPhaseSystem()
		gas   = NewPhase("gas", 1, 2)
		part  = NewPhase("particles", 2, 2)
		water = NewPhase("water", 1, 2)
	)
	require.NoError(t, ps.AddPhase(gas))
	require.NoError(t, ps.AddPhase(part))
	require.NoError(t, ps.AddPhase(water))
	assert.Error(t, ps.AddPhase(NewPhase("gas", 1, 2)))
	assert.Len(t, ps.Phases(), 3)
	p, ok := ps.Phase("water")
	assert.True(t, ok)
	assert.Equal(t, PhaseModel(water), p)
	_, ok = ps.Phase("oil")
	assert.False(t, ok)
	{ // Pairs do not depend on the order of the names
		pp1, err := ps.NewPhasePair("particles", "gas")
		require.NoError(t, err)
		pp2, err := ps.NewPhasePair("gas", "particles")
		require.NoError(t, err)
		assert.Equal(t, pp1.Key, pp2.Key)
		assert.Equal(t, "gas", pp1.Phase1.Name())
		assert.Equal(t, "gas_particles", pp1.Name())
		assert.True(t, pp1.Contains("particles"))
		assert.False(t, pp1.Contains("water"))
		_, err = ps.NewPhasePair("gas", "gas")
		assert.Error(t, err)
		_, err = ps.NewPhasePair("gas", "oil")
		assert.Error(t, err)
		_, err = ps.NewPhasePair("oil", "gas")
		assert.Error(t, err)
	}
	{ // One drag model per pair, reported in phase order
		ppWP, _ := ps.NewPhasePair("water", "particles")
		ppGP, _ := ps.NewPhasePair("particles", "gas")
		ppGW, _ := ps.NewPhasePair("gas", "water")
		require.NoError(t, ps.AddDrag(ppWP, &ConstantDrag{K: 1}))
		require.NoError(t, ps.AddDrag(ppGW, &ConstantDrag{K: 2}))
		require.NoError(t, ps.AddDrag(ppGP, &ConstantDrag{K: 3}))
		dup, _ := ps.NewPhasePair("gas", "particles")
		err := ps.AddDrag(dup, &ConstantDrag{K: 4})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gas_particles")
		pds := ps.DragModels()
		require.Len(t, pds, 3)
		assert.Equal(t, "gas_particles", pds[0].Pair.Name())
		assert.Equal(t, "gas_water", pds[1].Pair.Name())
		assert.Equal(t, "particles_water", pds[2].Pair.Name())
		assert.Equal(t, 3., pds[0].Model.CellK(0, 0, 1))
	}
}

func TestDragModels(t *testing.T) {
	var (
		ps   = NewPhaseSystem()
		gas  = NewPhase("gas", 1, 1)
		part = NewPhase("particles", 2, 1)
	)
	require.NoError(t, ps.AddPhase(gas))
	require.NoError(t, ps.AddPhase(part))
	pp, err := ps.NewPhasePair("gas", "particles")
	require.NoError(t, err)
	gas.SetUniform(0, 0.9, 1.2, types.Vector{})
	part.SetUniform(0, 0.1, 2500, types.Vector{})
	part.SetUniform(1, 0.05, 2500, types.Vector{})
	part.D[0], part.D[1] = 1.e-4, 2.e-4
	{
		dm, err := NewDragModel("Constant", pp, DragDict{K: 5})
		require.NoError(t, err)
		assert.Equal(t, "constant", dm.Name())
		assert.Equal(t, 5., dm.CellK(0, 0, 1))
		_, err = NewDragModel("constant", pp, DragDict{K: -1})
		assert.Error(t, err)
	}
	{ // Stokes limit at zero slip
		mu := 1.8e-5
		dm, err := NewDragModel("SchillerNaumann", pp, DragDict{Mu: mu, Dispersed: "particles"})
		require.NoError(t, err)
		assert.InDelta(t, 18*mu*0.1/1.e-8, dm.CellK(0, 0, 0), 1.e-9)
		assert.InDelta(t, 18*mu*0.05/4.e-8, dm.CellK(0, 0, 1), 1.e-9)

		// Slip increases the coefficient
		k0 := dm.CellK(0, 0, 0)
		part.U(0)[0] = types.Vector{1, 0, 0}
		Re := 1.2 * 1 * 1.e-4 / mu
		assert.InDelta(t, k0*(1+0.15*pow687(Re)), dm.CellK(0, 0, 0), 1.e-9)

		// Inertial regime
		part.U(0)[0] = types.Vector{1000, 0, 0}
		assert.InDelta(t, 0.75*0.44*0.1*1.2*1000/1.e-4, dm.CellK(0, 0, 0), 1.e-6)
	}
	{ // The dispersed phase may be either member of the pair
		ps2 := NewPhaseSystem()
		require.NoError(t, ps2.AddPhase(part))
		require.NoError(t, ps2.AddPhase(gas))
		pp2, _ := ps2.NewPhasePair("gas", "particles")
		assert.Equal(t, "particles", pp2.Phase1.Name())
		part.U(0)[0] = types.Vector{}
		dm, err := NewDragModel("schillernaumann", pp2, DragDict{Mu: 1.8e-5, Dispersed: "particles"})
		require.NoError(t, err)
		assert.InDelta(t, 18*1.8e-5*0.05/4.e-8, dm.CellK(0, 1, 0), 1.e-9)
	}
	{
		_, err := NewDragModel("SchillerNaumann", pp, DragDict{Mu: 1.8e-5, Dispersed: "water"})
		assert.Error(t, err)
		_, err = NewDragModel("SchillerNaumann", pp, DragDict{Dispersed: "particles"})
		assert.Error(t, err)
		_, err = NewDragModel("Ergun", pp, DragDict{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constant, schillernaumann")
	}
}

func pow687(x float64) float64 { return math.Pow(x, 0.687) }
