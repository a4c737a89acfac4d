package mesh

import (
	"fmt"

	"github.com/notargets/goblast/types"
)

/*
Mesh is the face-addressed view of a finite volume mesh used by the flux
schemes and the drag integrator. Internal faces are addressed with patch
index types.InternalPatch (-1); boundary faces by (local face, patch).
*/
type Mesh interface {
	NCells() int
	NInternalFaces() int
	Owner() []int     // owner cell of each internal face
	Neighbour() []int // neighbour cell of each internal face
	Sf(face, patch int) types.Vector
	MagSf(face, patch int) float64
	MeshPhi(face, patch int) float64 // volumetric flux swept by mesh motion
	Patches() []*Patch
	SolutionD() []int // vector components that are solved
	CellVolume(cell int) float64
}

type Patch struct {
	Name           string
	Type           types.PatchType
	FaceCells      []int
	FaceSf         []types.Vector
	FaceMeshPhi    []float64
	NeighbourPatch int // partner patch for coupled patches, -1 otherwise
}

func (p *Patch) Size() int { return len(p.FaceCells) }

func (p *Patch) Coupled() bool { return p.Type.Coupled() }

// FaceCount is the total number of internal and boundary faces.
func FaceCount(m Mesh) (n int) {
	n = m.NInternalFaces()
	for _, p := range m.Patches() {
		n += p.Size()
	}
	return
}

func checkPatch(m Mesh, patch int) {
	if patch < types.InternalPatch || patch >= len(m.Patches()) {
		panic(fmt.Errorf("patch index %d out of range [-1, %d)", patch, len(m.Patches())))
	}
}
