// Package knapsack - deterministic RNG plumbing for the instance generator.
//
// Goals:
//   - Determinism: same seed ⇒ identical instances across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each Generator owns its stream;
//     use Generator.Derive to hand independent streams to workers.
package knapsack

import "math/rand"

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

// streamStride spreads stream ids over the seed space before they are
// mixed into the parent seed.
const streamStride uint64 = 0x9e3779b97f4a7c15

// newStream opens the generator stream for seed (0 selects defaultRNGSeed).
func newStream(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// childSeed is the first draw of a throwaway source keyed by the parent seed
// and the stream id. It reads nothing from the parent's own stream, so
// concurrent callers may derive children from one shared Generator.
func childSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = defaultRNGSeed
	}
	src := rand.NewSource(parent ^ int64((stream+1)*streamStride))

	return src.Int63()
}

// intIn returns a uniform integer in [lo, hi). If hi <= lo it returns lo.
func intIn(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + r.Intn(hi-lo)
}

// floatIn returns a uniform float in [lo, hi). If hi <= lo it returns lo.
func floatIn(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}

	return lo + r.Float64()*(hi-lo)
}
