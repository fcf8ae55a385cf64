package syntax

import (
	"iter"
	"math/bits"
)

// KindSet is a bit set over every Kind.
type KindSet [(kindCount + 63) / 64]uint64

func KindSetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s KindSet) Contains(k Kind) bool {
	return k < kindCount && s[k/64]&(1<<(k%64)) != 0
}

func (s KindSet) Union(o KindSet) KindSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

func (s KindSet) IsEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// All yields the kinds in ascending order.
func (s KindSet) All() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for i, w := range s {
			for w != 0 {
				b := bits.TrailingZeros64(w)
				w &^= 1 << b
				if !yield(Kind(i*64 + b)) {
					return
				}
			}
		}
	}
}
