package framegraph

import "fmt"

// Index identifies an element of one specific arena. The type parameter K
// only tags the arena: an Index[ResourceNode] cannot be used where an
// Index[PassNode] is expected, even though both wrap a plain position.
//
// The zero Index is invalid; positions are stored offset by one.
type Index[K any] struct {
	pos int
}

// ResourceIndex identifies a ResourceNode within one frame.
type ResourceIndex = Index[ResourceNode]

// PassIndex identifies a PassNode within one frame.
type PassIndex = Index[PassNode]

// NewIndex returns the index of position i.
func NewIndex[K any](i int) Index[K] {
	if i < 0 {
		panic(fmt.Sprintf("framegraph: negative index %d", i))
	}
	return Index[K]{pos: i + 1}
}

// Position returns the zero-based arena position, or -1 for an invalid index.
func (i Index[K]) Position() int {
	return i.pos - 1
}

// Valid reports whether the index refers to an arena position.
func (i Index[K]) Valid() bool {
	return i.pos > 0
}

func (i Index[K]) String() string {
	if !i.Valid() {
		return "#invalid"
	}
	return fmt.Sprintf("#%d", i.pos-1)
}

// at returns the element of arena addressed by i. An invalid or
// out-of-range index is a programming error and panics.
func at[K any](arena []K, i Index[K]) *K {
	p := i.Position()
	if p < 0 || p >= len(arena) {
		panic(fmt.Sprintf("framegraph: index %s out of range [0, %d)", i, len(arena)))
	}
	return &arena[p]
}
