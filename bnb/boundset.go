// Package bnb - per-node box bounds.
//
// Every bound in this search is either the root box [0,1] or a fixing to 0
// (upper side) or to 1 (lower side). A BoundSet therefore stores only the two
// sets of fixed indices, as roaring bitmaps, and materialises the dense
// lower/upper vectors on demand for the oracle.
//
//	upper[j] = 0 if j ∈ zero, else 1
//	lower[j] = 1 if j ∈ one,  else 0
//
// Tighten is copy-on-write: a parent's BoundSet is never modified by its
// children.
package bnb

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// BoundSet is the box of one search node. The zero value is not usable; use Root.
type BoundSet struct {
	n    int
	zero *roaring.Bitmap // indices with upper[j] = 0
	one  *roaring.Bitmap // indices with lower[j] = 1
}

// Root returns the trivial [0,1]^n box.
func Root(n int) BoundSet {
	return BoundSet{n: n, zero: roaring.New(), one: roaring.New()}
}

// N returns the number of variables.
func (b BoundSet) N() int { return b.n }

// Tighten returns a copy of b with variable j fixed: upper[j]=0 for Upper,
// lower[j]=1 for Lower.
//
// Errors: ErrIndexOutOfRange if j ∉ [0, n); ErrOptionViolation for an
// unknown kind.
func (b BoundSet) Tighten(j int, kind BoundKind) (BoundSet, error) {
	if j < 0 || j >= b.n {
		return BoundSet{}, fmt.Errorf("%w: j=%d, n=%d", ErrIndexOutOfRange, j, b.n)
	}
	out := BoundSet{n: b.n, zero: b.zero.Clone(), one: b.one.Clone()}
	switch kind {
	case Upper:
		out.zero.Add(uint32(j))
	case Lower:
		out.one.Add(uint32(j))
	default:
		return BoundSet{}, fmt.Errorf("%w: unknown bound kind %v", ErrOptionViolation, kind)
	}

	return out, nil
}

// LowerAt returns lower[j].
func (b BoundSet) LowerAt(j int) float64 {
	if b.one.Contains(uint32(j)) {
		return 1
	}

	return 0
}

// UpperAt returns upper[j].
func (b BoundSet) UpperAt(j int) float64 {
	if b.zero.Contains(uint32(j)) {
		return 0
	}

	return 1
}

// Lower materialises the lower-bound vector.
func (b BoundSet) Lower() []float64 {
	out := make([]float64, b.n)
	it := b.one.Iterator()
	for it.HasNext() {
		out[it.Next()] = 1
	}

	return out
}

// Upper materialises the upper-bound vector.
func (b BoundSet) Upper() []float64 {
	out := make([]float64, b.n)
	var j int
	for j = range out {
		out[j] = 1
	}
	it := b.zero.Iterator()
	for it.HasNext() {
		out[it.Next()] = 0
	}

	return out
}

// Depth returns the number of fixed variables.
func (b BoundSet) Depth() int {
	return int(b.zero.GetCardinality() + b.one.GetCardinality())
}

// Empty reports whether some variable is fixed both ways (lower > upper),
// i.e. the box itself admits no point.
func (b BoundSet) Empty() bool {
	return b.zero.Intersects(b.one)
}

// Excluded returns the indices fixed to 0, ascending.
func (b BoundSet) Excluded() []int { return toInts(b.zero) }

// Included returns the indices fixed to 1, ascending.
func (b BoundSet) Included() []int { return toInts(b.one) }

func toInts(bm *roaring.Bitmap) []int {
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}
