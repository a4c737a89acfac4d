package types

import "strings"

//go:generate stringer -type=PatchType

type PatchType uint8

const (
	Patch_Internal PatchType = iota
	Patch_Wall
	Patch_Outflow
	Patch_Fixed
	Patch_Cyclic
	Patch_Processor
)

var PatchNameMap = map[string]PatchType{
	"internal":     Patch_Internal,
	"wall":         Patch_Wall,
	"slip":         Patch_Wall,
	"outflow":      Patch_Outflow,
	"out":          Patch_Outflow,
	"zerogradient": Patch_Outflow,
	"fixed":        Patch_Fixed,
	"fixedvalue":   Patch_Fixed,
	"in":           Patch_Fixed,
	"inflow":       Patch_Fixed,
	"cyclic":       Patch_Cyclic,
	"processor":    Patch_Processor,
}

var patchPrintNames = []string{"internal", "wall", "outflow", "fixed", "cyclic", "processor"}

func (pt PatchType) String() string {
	if int(pt) >= len(patchPrintNames) {
		return "unknown"
	}
	return patchPrintNames[pt]
}

// Coupled patches exchange values with another set of cells, either a
// periodic partner or a neighbouring domain.
func (pt PatchType) Coupled() bool {
	return pt == Patch_Cyclic || pt == Patch_Processor
}

func NewPatchType(label string) (pt PatchType, ok bool) {
	pt, ok = PatchNameMap[strings.ToLower(label)]
	return
}

// InternalPatch is the patch index used for faces interior to the mesh.
const InternalPatch = -1
