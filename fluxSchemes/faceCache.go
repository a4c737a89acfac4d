package fluxSchemes

import (
	"fmt"

	"github.com/notargets/goblast/mesh"
)

// faceCache holds one value per face, valid from the first save of an
// evaluation pass until clear.
type faceCache[T any] struct {
	name string
	mesh mesh.Mesh
	f    *mesh.SurfaceField[T]
}

func newFaceCache[T any](name string, m mesh.Mesh) faceCache[T] {
	return faceCache[T]{name: name, mesh: m}
}

func (fc *faceCache[T]) valid() bool { return fc.f != nil }

func (fc *faceCache[T]) clear() { fc.f = nil }

func (fc *faceCache[T]) allocate() {
	if fc.f == nil {
		fc.f = mesh.NewSurfaceField[T](fc.mesh)
	}
}

func (fc *faceCache[T]) save(face, patch int, val T) {
	fc.allocate()
	fc.f.Set(face, patch, val)
}

func (fc *faceCache[T]) get(face, patch int) T {
	if fc.f == nil {
		panic(fmt.Errorf("face cache %s read before fluxes were calculated", fc.name))
	}
	return fc.f.Get(face, patch)
}

// field exposes the cached values, nil when invalid.
func (fc *faceCache[T]) field() *mesh.SurfaceField[T] { return fc.f }
