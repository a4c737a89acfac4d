package types

import (
	"fmt"
	"math"
)

/*
PairKey is an always positive number that stores a pair of indices so that
the pair compares equal regardless of order. A pair between phases [4] and
[0] is always stored as [0,4], in the ascending order of the index values.
*/
type PairKey uint64

func NewPairKey(ids [2]int) (packed PairKey) {
	// Packs two indices into two 32 bit unsigned integers to act as a hash
	var (
		limit = math.MaxUint32
	)
	for _, id := range ids {
		if id < 0 || id > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				ids[0], ids[1]))
		}
	}
	var i1, i2 int
	if ids[0] <= ids[1] {
		i1, i2 = ids[0], ids[1]
	} else {
		i1, i2 = ids[1], ids[0]
	}
	packed = PairKey(i1 + i2<<32)
	return
}

func (pk PairKey) GetIndices(rev bool) (ids [2]int) {
	var (
		pkTmp PairKey
	)
	pkTmp = pk >> 32
	ids[1] = int(pkTmp)
	ids[0] = int(pk - pkTmp*(1<<32))
	if rev {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return
}
