// Package knapsack - construction, validation and vector evaluation.
//
// Validation runs in stages and stops at the first violation:
//  1. Shape:      numItems ≥ 0, len(weights) == len(values) == numItems.
//  2. Finiteness: no NaN/±Inf in capacity, weights or values.
//  3. Sign:       capacity, weights and values are non-negative.
//
// Solvers assume a validated Instance and never re-check these invariants
// per search node.
package knapsack

import (
	"fmt"
	"math"
)

// New validates its inputs and returns an immutable Instance.
// The weight and value slices are copied, so callers may reuse them.
//
// Errors: ErrDimensionMismatch, ErrNonFinite, ErrNegativeCapacity,
// ErrNegativeWeight, ErrNegativeValue (wrapped with the offending index).
//
// Complexity: O(n) time, O(n) space.
func New(numItems int, capacity float64, weights, values []float64) (*Instance, error) {
	// Stage 1: shape.
	if numItems < 0 || len(weights) != numItems || len(values) != numItems {
		return nil, fmt.Errorf("%w: numItems=%d, weights=%d, values=%d",
			ErrDimensionMismatch, numItems, len(weights), len(values))
	}

	// Stage 2: finiteness.
	if !isFinite(capacity) {
		return nil, fmt.Errorf("%w: capacity=%v", ErrNonFinite, capacity)
	}
	var i int
	for i = 0; i < numItems; i++ {
		if !isFinite(weights[i]) {
			return nil, fmt.Errorf("%w: weight[%d]=%v", ErrNonFinite, i, weights[i])
		}
		if !isFinite(values[i]) {
			return nil, fmt.Errorf("%w: value[%d]=%v", ErrNonFinite, i, values[i])
		}
	}

	// Stage 3: sign.
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity=%v", ErrNegativeCapacity, capacity)
	}
	for i = 0; i < numItems; i++ {
		if weights[i] < 0 {
			return nil, fmt.Errorf("%w: weight[%d]=%v", ErrNegativeWeight, i, weights[i])
		}
		if values[i] < 0 {
			return nil, fmt.Errorf("%w: value[%d]=%v", ErrNegativeValue, i, values[i])
		}
	}

	return &Instance{
		capacity: capacity,
		weights:  append([]float64(nil), weights...),
		values:   append([]float64(nil), values...),
	}, nil
}

// MustNew is New for fixtures and examples; it panics on invalid input.
func MustNew(numItems int, capacity float64, weights, values []float64) *Instance {
	in, err := New(numItems, capacity, weights, values)
	if err != nil {
		panic(err)
	}

	return in
}

// Weight returns weights · x.
// Returns ErrDimensionMismatch if len(x) != N().
func (in *Instance) Weight(x []float64) (float64, error) {
	if len(x) != len(in.weights) {
		return 0, ErrDimensionMismatch
	}

	return dot(in.weights, x), nil
}

// Value returns values · x.
// Returns ErrDimensionMismatch if len(x) != N().
func (in *Instance) Value(x []float64) (float64, error) {
	if len(x) != len(in.values) {
		return 0, ErrDimensionMismatch
	}

	return dot(in.values, x), nil
}

// Feasible reports whether x is a 0/1 selection (every entry within tol of
// 0 or 1) whose weight does not exceed the capacity by more than tol.
func (in *Instance) Feasible(x []float64, tol float64) bool {
	if len(x) != len(in.weights) {
		return false
	}
	var v float64
	for _, v = range x {
		if math.Abs(v) > tol && math.Abs(v-1) > tol {
			return false
		}
	}

	return dot(in.weights, x) <= in.capacity+tol
}

// dot is the plain inner product; callers guarantee equal lengths.
func dot(a, b []float64) float64 {
	var (
		s float64
		i int
	)
	for i = range a {
		s += a[i] * b[i]
	}

	return s
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
