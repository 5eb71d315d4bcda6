// Package exhaustive solves small 0/1 knapsack instances by enumerating every
// subset. It is the reference used to verify Branch-and-Bound results.
//
// The walk follows a binary-reflected Gray code, so each step toggles one
// item and updates weight and value in O(1). Among optimal subsets the one
// with the smallest bitmask wins.
//
// Complexity: O(2^n) time, O(n) space; n is capped at MaxItems.
package exhaustive

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/katalvlaran/lvknap/knapsack"
)

// MaxItems bounds the instance size accepted by Solve.
const MaxItems = 24

// ErrTooManyItems is returned for instances larger than MaxItems.
var ErrTooManyItems = errors.New("exhaustive: too many items")

// Result is the optimal selection of an instance.
type Result struct {
	Value    float64   // optimal total value
	Weight   float64   // weight of the chosen subset
	X        []float64 // 0/1 selection vector
	Selected []int     // indices of chosen items, ascending
}

// Solve returns an optimal subset of in. The empty set is always feasible,
// so every valid instance has a result.
func Solve(in *knapsack.Instance) (Result, error) {
	n := in.N()
	if n > MaxItems {
		return Result{}, fmt.Errorf("%w: n=%d > %d", ErrTooManyItems, n, MaxItems)
	}

	var (
		mask, best        uint32
		w, v, bestV, capa float64
		k                 uint32
		i                 int
	)
	capa = in.Capacity()
	best, bestV = 0, 0

	// Gray code g(k) = k ^ (k>>1); consecutive codes differ in bit tz(k).
	for k = 1; k < uint32(1)<<n; k++ {
		i = bits.TrailingZeros32(k)
		mask ^= 1 << i
		if mask&(1<<i) != 0 {
			w += in.WeightAt(i)
			v += in.ValueAt(i)
		} else {
			w -= in.WeightAt(i)
			v -= in.ValueAt(i)
		}
		if w > capa+1e-9 {
			continue
		}
		if v > bestV+1e-9 || (v >= bestV-1e-9 && mask < best) {
			best, bestV = mask, v
		}
	}

	return fromMask(in, best), nil
}

// fromMask recomputes totals exactly from the chosen mask.
func fromMask(in *knapsack.Instance, mask uint32) Result {
	n := in.N()
	r := Result{X: make([]float64, n), Selected: make([]int, 0, n)}
	var i int
	for i = 0; i < n; i++ {
		if mask&(1<<i) != 0 {
			r.X[i] = 1
			r.Selected = append(r.Selected, i)
			r.Weight += in.WeightAt(i)
			r.Value += in.ValueAt(i)
		}
	}

	return r
}
