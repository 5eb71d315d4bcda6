// Package knapsack - random instance generator.
//
// Generator produces random, always-valid knapsack instances:
//
//   - item count   n ~ U[Items.Lo, Items.Hi)
//   - weights      w ~ U[Weights.Lo, Weights.Hi)
//   - values       v ~ U[Values.Lo, Values.Hi)
//   - capacity     c ~ U[min(w), sum(w))
//
// In integer mode every draw is an integer; otherwise draws are continuous.
// The capacity range guarantees that at least the lightest item fits while
// the full item set does not, so generated instances are never trivial in
// both directions (degenerate ranges collapse to min(w)).
package knapsack

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator limits. Integer draws are converted to int, so their ranges are
// kept well inside int32.
const (
	// MaxGeneratedItems bounds the item count of a generated instance.
	MaxGeneratedItems = 1 << 20

	maxIntegerDraw = math.MaxInt32
)

// Range is a half-open interval [Lo, Hi).
type Range struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	Items   Range // item count bounds (truncated to integers)
	Weights Range // per-item weight bounds
	Values  Range // per-item value bounds
	Integer bool  // draw integer weights, values and capacity
	Seed    int64 // 0 ⇒ fixed default seed
}

// DefaultGeneratorOptions mirrors the classic textbook setup:
// 4..9 items with integer weights and values in 1..9.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Items:   Range{Lo: 4, Hi: 10},
		Weights: Range{Lo: 1, Hi: 10},
		Values:  Range{Lo: 1, Hi: 10},
		Integer: true,
		Seed:    0,
	}
}

// Generator draws random instances from a private deterministic stream.
// It is not safe for concurrent use; see Derive.
type Generator struct {
	opts GeneratorOptions
	rng  *rand.Rand
}

// NewGenerator validates opts and returns a Generator.
//
// Errors: ErrBadGenerator when a range is inverted, non-finite, negative,
// or when the item range admits no positive item count.
func NewGenerator(opts GeneratorOptions) (*Generator, error) {
	if err := validateGeneratorOptions(opts); err != nil {
		return nil, err
	}

	return &Generator{opts: opts, rng: newStream(opts.Seed)}, nil
}

// Options returns the configuration the generator was built with.
func (g *Generator) Options() GeneratorOptions { return g.opts }

// Derive returns an independent generator whose stream is a deterministic
// function of this generator's seed and the stream id. The parent stream is
// not advanced.
func (g *Generator) Derive(stream uint64) *Generator {
	child := g.opts
	child.Seed = childSeed(g.opts.Seed, stream)

	return &Generator{opts: child, rng: newStream(child.Seed)}
}

// Generate draws one instance.
func (g *Generator) Generate() (*Instance, error) {
	var (
		o = g.opts
		n int
	)
	n = intIn(g.rng, int(o.Items.Lo), int(o.Items.Hi))

	weights := make([]float64, n)
	values := make([]float64, n)

	var (
		i        int
		minW     = math.Inf(1)
		sumW     float64
		capacity float64
	)
	for i = 0; i < n; i++ {
		if o.Integer {
			weights[i] = float64(intIn(g.rng, int(o.Weights.Lo), int(o.Weights.Hi)))
			values[i] = float64(intIn(g.rng, int(o.Values.Lo), int(o.Values.Hi)))
		} else {
			weights[i] = floatIn(g.rng, o.Weights.Lo, o.Weights.Hi)
			values[i] = floatIn(g.rng, o.Values.Lo, o.Values.Hi)
		}
		if weights[i] < minW {
			minW = weights[i]
		}
		sumW += weights[i]
	}

	if n > 0 {
		if o.Integer {
			capacity = float64(intIn(g.rng, int(minW), int(sumW)))
		} else {
			capacity = floatIn(g.rng, minW, sumW)
		}
	}

	return New(n, capacity, weights, values)
}

// validateGeneratorOptions rejects ranges that cannot produce a valid instance.
func validateGeneratorOptions(o GeneratorOptions) error {
	var (
		name string
		r    Range
	)
	for name, r = range map[string]Range{"items": o.Items, "weights": o.Weights, "values": o.Values} {
		if !isFinite(r.Lo) || !isFinite(r.Hi) {
			return fmt.Errorf("%w: %s range is not finite", ErrBadGenerator, name)
		}
		if r.Lo < 0 || r.Hi < r.Lo {
			return fmt.Errorf("%w: %s range [%v,%v)", ErrBadGenerator, name, r.Lo, r.Hi)
		}
	}
	if o.Items.Hi > MaxGeneratedItems+1 {
		return fmt.Errorf("%w: items range [%v,%v) exceeds %d items", ErrBadGenerator, o.Items.Lo, o.Items.Hi, MaxGeneratedItems)
	}
	if o.Integer {
		for name, r = range map[string]Range{"weights": o.Weights, "values": o.Values} {
			if r.Hi > maxIntegerDraw {
				return fmt.Errorf("%w: integer %s range [%v,%v) exceeds %d", ErrBadGenerator, name, r.Lo, r.Hi, int64(maxIntegerDraw))
			}
		}
	}
	if int(o.Items.Lo) < 1 {
		return fmt.Errorf("%w: items range must start at 1 or above", ErrBadGenerator)
	}

	return nil
}
