package mesh

import (
	"fmt"

	"github.com/notargets/goblast/types"
)

// VolField holds cell values plus one value per boundary face on each patch.
type VolField[T any] struct {
	Mesh     Mesh
	Internal []T
	Boundary [][]T
	// wall maps the adjacent cell value to the value seen across a wall
	wall func(v T, normal types.Vector) T
}

type VolScalarField = VolField[float64]
type VolVectorField = VolField[types.Vector]

func newVolField[T any](m Mesh, val T, wall func(T, types.Vector) T) (f *VolField[T]) {
	f = &VolField[T]{
		Mesh:     m,
		Internal: make([]T, m.NCells()),
		Boundary: make([][]T, len(m.Patches())),
		wall:     wall,
	}
	for i := range f.Internal {
		f.Internal[i] = val
	}
	for p, patch := range m.Patches() {
		f.Boundary[p] = make([]T, patch.Size())
		for i := range f.Boundary[p] {
			f.Boundary[p][i] = val
		}
	}
	return
}

func NewVolScalarField(m Mesh, val float64) *VolScalarField {
	return newVolField(m, val, func(v float64, _ types.Vector) float64 { return v })
}

// NewVolVectorField creates a vector field whose wall patches mirror the
// wall-normal component.
func NewVolVectorField(m Mesh, val types.Vector) *VolVectorField {
	return newVolField(m, val, func(v types.Vector, n types.Vector) types.Vector {
		return v.Sub(n.Scale(2 * v.Dot(n)))
	})
}

// CorrectBoundaryConditions refreshes boundary values from the cell values:
// zero gradient on outflow, mirrored on walls, partner cells on coupled
// patches. Fixed patches keep their values.
func (f *VolField[T]) CorrectBoundaryConditions() {
	for p, patch := range f.Mesh.Patches() {
		switch {
		case patch.Coupled():
			copy(f.Boundary[p], f.PatchNeighbourField(p))
		case patch.Type == types.Patch_Fixed:
		case patch.Type == types.Patch_Wall:
			for i, c := range patch.FaceCells {
				f.Boundary[p][i] = f.wall(f.Internal[c], patch.FaceSf[i].Normalized())
			}
		default:
			for i, c := range patch.FaceCells {
				f.Boundary[p][i] = f.Internal[c]
			}
		}
	}
}

func (f *VolField[T]) SetPatchValue(patch int, val T) {
	for i := range f.Boundary[patch] {
		f.Boundary[patch][i] = val
	}
}

// PatchInternalField returns the values of the cells adjacent to the patch.
func (f *VolField[T]) PatchInternalField(patch int) (v []T) {
	p := f.Mesh.Patches()[patch]
	v = make([]T, p.Size())
	for i, c := range p.FaceCells {
		v[i] = f.Internal[c]
	}
	return
}

// PatchNeighbourField returns the values of the cells on the far side of a
// coupled patch, face by face.
func (f *VolField[T]) PatchNeighbourField(patch int) (v []T) {
	p := f.Mesh.Patches()[patch]
	if !p.Coupled() {
		panic(fmt.Errorf("patch %s of type %s is not coupled", p.Name, p.Type))
	}
	nbr := f.Mesh.Patches()[p.NeighbourPatch]
	if nbr.Size() != p.Size() {
		panic(fmt.Errorf("coupled patches %s and %s differ in size", p.Name, nbr.Name))
	}
	v = make([]T, p.Size())
	for i, c := range nbr.FaceCells {
		v[i] = f.Internal[c]
	}
	return
}

// SurfaceField holds one value per internal face plus one per boundary face.
type SurfaceField[T any] struct {
	Internal []T
	Boundary [][]T
}

type SurfaceScalarField = SurfaceField[float64]
type SurfaceVectorField = SurfaceField[types.Vector]

func NewSurfaceField[T any](m Mesh) (f *SurfaceField[T]) {
	f = &SurfaceField[T]{
		Internal: make([]T, m.NInternalFaces()),
		Boundary: make([][]T, len(m.Patches())),
	}
	for p, patch := range m.Patches() {
		f.Boundary[p] = make([]T, patch.Size())
	}
	return
}

func (f *SurfaceField[T]) Get(face, patch int) T {
	if patch == types.InternalPatch {
		return f.Internal[face]
	}
	return f.Boundary[patch][face]
}

func (f *SurfaceField[T]) Set(face, patch int, val T) {
	if patch == types.InternalPatch {
		f.Internal[face] = val
		return
	}
	f.Boundary[patch][face] = val
}
