package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goblast/types"
)

func TestLine1D(t *testing.T) {
	{ // Connectivity and geometry
		m := NewLine1D(4, 0, 1, types.Patch_Wall, types.Patch_Outflow)
		assert.Equal(t, 4, m.NCells())
		assert.Equal(t, 3, m.NInternalFaces())
		assert.Equal(t, []int{0, 1, 2}, m.Owner())
		assert.Equal(t, []int{1, 2, 3}, m.Neighbour())
		assert.Equal(t, types.Vector{1, 0, 0}, m.Sf(1, types.InternalPatch))
		assert.Equal(t, types.Vector{-1, 0, 0}, m.Sf(0, 0))
		assert.Equal(t, 1., m.MagSf(0, 1))
		assert.Equal(t, 0.25, m.CellVolume(2))
		assert.Equal(t, []float64{0.125, 0.375, 0.625, 0.875}, m.CellCentres())
		assert.Equal(t, 5, FaceCount(m))
		assert.Equal(t, []int{0}, m.SolutionD())
		assert.Panics(t, func() { m.Sf(0, 2) })
	}
	{ // Mesh motion flux
		m := NewLine1D(2, 0, 1, types.Patch_Outflow, types.Patch_Outflow)
		m.SetMeshVelocity(types.Vector{0.5, 0, 0})
		assert.Equal(t, 0.5, m.MeshPhi(0, types.InternalPatch))
		assert.Equal(t, -0.5, m.MeshPhi(0, 0))
		assert.Equal(t, 0.5, m.MeshPhi(0, 1))
	}
	{
		assert.Panics(t, func() { NewLine1D(0, 0, 1, types.Patch_Wall, types.Patch_Wall) })
		assert.Panics(t, func() { NewLine1D(3, 0, 1, types.Patch_Cyclic, types.Patch_Wall) })
	}
}

func TestFields(t *testing.T) {
	{ // Zero gradient, fixed and wall boundaries
		m := NewLine1D(3, 0, 3, types.Patch_Wall, types.Patch_Fixed)
		rho := NewVolScalarField(m, 1)
		rho.Internal = []float64{1, 2, 3}
		rho.SetPatchValue(1, 10)
		rho.CorrectBoundaryConditions()
		assert.Equal(t, 1., rho.Boundary[0][0])
		assert.Equal(t, 10., rho.Boundary[1][0])
		assert.Equal(t, []float64{3}, rho.PatchInternalField(1))
		assert.Panics(t, func() { rho.PatchNeighbourField(0) })

		U := NewVolVectorField(m, types.Vector{})
		U.Internal[0] = types.Vector{2, 1, 0}
		U.CorrectBoundaryConditions()
		assert.Equal(t, types.Vector{-2, 1, 0}, U.Boundary[0][0])
	}
	{ // Coupled patches see the far side cells
		m := NewLine1D(3, 0, 3, types.Patch_Cyclic, types.Patch_Cyclic)
		alpha := NewVolScalarField(m, 0)
		alpha.Internal = []float64{0.1, 0.2, 0.3}
		assert.Equal(t, []float64{0.3}, alpha.PatchNeighbourField(0))
		assert.Equal(t, []float64{0.1}, alpha.PatchNeighbourField(1))
		alpha.CorrectBoundaryConditions()
		assert.Equal(t, 0.3, alpha.Boundary[0][0])
		assert.Equal(t, 0.1, alpha.Boundary[1][0])
	}
	{ // Surface fields
		m := NewLine1D(3, 0, 3, types.Patch_Outflow, types.Patch_Outflow)
		phi := NewSurfaceField[float64](m)
		phi.Set(1, types.InternalPatch, 4)
		phi.Set(0, 1, 5)
		assert.Equal(t, 4., phi.Get(1, types.InternalPatch))
		assert.Equal(t, 5., phi.Get(0, 1))
		assert.Equal(t, 2, len(phi.Internal))
	}
}
