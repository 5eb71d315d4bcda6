// Package knapsack - instance model and sentinel errors.
//
// An Instance is the immutable description of a 0/1 knapsack problem:
// a capacity and, for every item, a weight and a value. All solvers in
// this module consume an *Instance read-only; construction through New
// is the single validation point.
package knapsack

import "errors"

// Sentinel errors returned by New, the codec and the generator.
// Every message is prefixed with "knapsack: ..." so that wrapped errors stay
// greppable; match them with errors.Is.
var (
	// ErrDimensionMismatch is returned when numItems, len(weights) and
	// len(values) disagree, or when a vector passed to an evaluator has the
	// wrong length.
	ErrDimensionMismatch = errors.New("knapsack: dimension mismatch")

	// ErrNegativeWeight is returned when an item weight is below zero.
	ErrNegativeWeight = errors.New("knapsack: negative weight")

	// ErrNegativeValue is returned when an item value is below zero.
	ErrNegativeValue = errors.New("knapsack: negative value")

	// ErrNegativeCapacity is returned when the capacity is below zero.
	ErrNegativeCapacity = errors.New("knapsack: negative capacity")

	// ErrNonFinite is returned when capacity, a weight or a value is NaN or ±Inf.
	ErrNonFinite = errors.New("knapsack: NaN or Inf encountered")

	// ErrBadGenerator is returned when Generator bounds are empty or inverted.
	ErrBadGenerator = errors.New("knapsack: invalid generator configuration")

	// ErrUnknownFormat is returned by the codec for unsupported encodings.
	ErrUnknownFormat = errors.New("knapsack: unknown instance format")
)

// Instance describes a 0/1 knapsack problem.
//
// Invariants (enforced by New):
//   - len(weights) == len(values) == N()
//   - capacity, weights and values are finite and non-negative
//
// The zero value is an empty instance with zero capacity. Instances are never
// mutated after construction; accessors return copies of the vectors.
type Instance struct {
	capacity float64
	weights  []float64
	values   []float64
}

// N returns the number of items.
func (in *Instance) N() int { return len(in.weights) }

// Capacity returns the weight budget.
func (in *Instance) Capacity() float64 { return in.capacity }

// WeightAt returns the weight of item i. It panics if i is out of range,
// like a slice index would.
func (in *Instance) WeightAt(i int) float64 { return in.weights[i] }

// ValueAt returns the value of item i. It panics if i is out of range.
func (in *Instance) ValueAt(i int) float64 { return in.values[i] }

// Weights returns a copy of the weight vector.
func (in *Instance) Weights() []float64 { return append([]float64(nil), in.weights...) }

// Values returns a copy of the value vector.
func (in *Instance) Values() []float64 { return append([]float64(nil), in.values...) }

// TotalWeight returns the sum of all item weights.
func (in *Instance) TotalWeight() float64 {
	var s float64
	for _, w := range in.weights {
		s += w
	}

	return s
}
