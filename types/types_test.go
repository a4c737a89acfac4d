package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for phase pair labeling
		pk := NewPairKey([2]int{1, 0})
		assert.Equal(t, PairKey(1<<32), pk)
		assert.Equal(t, [2]int{0, 1}, pk.GetIndices(false))

		pk = NewPairKey([2]int{0, 1})
		assert.Equal(t, PairKey(1<<32), pk)
		assert.Equal(t, [2]int{1, 0}, pk.GetIndices(true))

		pk = NewPairKey([2]int{100, 1})
		assert.Equal(t, PairKey(100*(1<<32)+1), pk)
		assert.Equal(t, [2]int{1, 100}, pk.GetIndices(false))

		pk = NewPairKey([2]int{3, 3})
		assert.Equal(t, [2]int{3, 3}, pk.GetIndices(false))

		assert.Panics(t, func() { NewPairKey([2]int{-1, 2}) })
	}
	{ // Patch types
		pt, ok := NewPatchType("Cyclic")
		assert.True(t, ok)
		assert.True(t, pt.Coupled())
		pt, ok = NewPatchType("zeroGradient")
		assert.True(t, ok)
		assert.Equal(t, Patch_Outflow, pt)
		assert.False(t, pt.Coupled())
		_, ok = NewPatchType("bogus")
		assert.False(t, ok)
		assert.Equal(t, "wall", Patch_Wall.String())
	}
	{ // Vectors
		a, b := Vector{1, 2, 2}, Vector{0, 1, 0}
		assert.Equal(t, 3., a.Mag())
		assert.Equal(t, 2., a.Dot(b))
		assert.Equal(t, Vector{1, 1, 2}, a.Sub(b))
		assert.Equal(t, Vector{2, 4, 4}, a.Scale(2))
		assert.InDelta(t, 1., a.Normalized().Mag(), 1.e-15)
		assert.Equal(t, Vector{}, Vector{}.Normalized())
		assert.False(t, math.IsNaN(Vector{}.Normalized()[0]))
	}
}
