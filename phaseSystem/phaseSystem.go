package phaseSystem

import (
	"fmt"
	"sort"

	"github.com/notargets/goblast/types"
)

// PhasePair couples two registered phases. Phase1 is always the phase that
// was registered first, whatever order the pair was requested in.
type PhasePair struct {
	Key            types.PairKey
	Phase1, Phase2 PhaseModel
}

func (pp PhasePair) Name() string {
	return pp.Phase1.Name() + "_" + pp.Phase2.Name()
}

// Contains reports whether the named phase is a member of the pair.
func (pp PhasePair) Contains(name string) bool {
	return pp.Phase1.Name() == name || pp.Phase2.Name() == name
}

// PairDrag is a registered drag interaction.
type PairDrag struct {
	Pair  PhasePair
	Model DragModel
}

type PhaseSystem struct {
	phases []PhaseModel
	index  map[string]int
	drag   map[types.PairKey]PairDrag
}

func NewPhaseSystem() *PhaseSystem {
	return &PhaseSystem{
		index: make(map[string]int),
		drag:  make(map[types.PairKey]PairDrag),
	}
}

func (ps *PhaseSystem) AddPhase(p PhaseModel) (err error) {
	if _, ok := ps.index[p.Name()]; ok {
		err = fmt.Errorf("phase %s is already registered", p.Name())
		return
	}
	ps.index[p.Name()] = len(ps.phases)
	ps.phases = append(ps.phases, p)
	return
}

// Phases returns the phases in registration order.
func (ps *PhaseSystem) Phases() []PhaseModel { return ps.phases }

func (ps *PhaseSystem) Phase(name string) (p PhaseModel, ok bool) {
	var i int
	if i, ok = ps.index[name]; ok {
		p = ps.phases[i]
	}
	return
}

// NewPhasePair returns the pair of two registered phases; the order of the
// names does not matter.
func (ps *PhaseSystem) NewPhasePair(name1, name2 string) (pp PhasePair, err error) {
	i1, ok1 := ps.index[name1]
	i2, ok2 := ps.index[name2]
	switch {
	case !ok1:
		err = fmt.Errorf("unknown phase %s", name1)
		return
	case !ok2:
		err = fmt.Errorf("unknown phase %s", name2)
		return
	case i1 == i2:
		err = fmt.Errorf("phase %s can not be paired with itself", name1)
		return
	}
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	pp = PhasePair{
		Key:    types.NewPairKey([2]int{i1, i2}),
		Phase1: ps.phases[i1],
		Phase2: ps.phases[i2],
	}
	return
}

// AddDrag registers the drag model of a pair, at most one per pair.
func (ps *PhaseSystem) AddDrag(pp PhasePair, dm DragModel) (err error) {
	if existing, ok := ps.drag[pp.Key]; ok {
		err = fmt.Errorf("pair %s already has drag model %s", pp.Name(), existing.Model.Name())
		return
	}
	ps.drag[pp.Key] = PairDrag{Pair: pp, Model: dm}
	return
}

// DragModels returns the registered interactions ordered by phase index.
func (ps *PhaseSystem) DragModels() (pds []PairDrag) {
	keys := make([]types.PairKey, 0, len(ps.drag))
	for k := range ps.drag {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := keys[i].GetIndices(false), keys[j].GetIndices(false)
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})
	for _, k := range keys {
		pds = append(pds, ps.drag[k])
	}
	return
}

// Encode encodes every phase.
func (ps *PhaseSystem) Encode() {
	for _, p := range ps.phases {
		p.Encode()
	}
}
