// Package relax provides the continuous (LP) relaxation oracle used by
// branch-and-bound over 0/1 knapsack instances.
//
// The relaxation replaces x ∈ {0,1} by Lower ≤ x ≤ Upper and keeps the single
// capacity row. An Oracle answers either Optimal (objective + vector) or
// Infeasible; solver breakdowns are errors wrapping ErrOracleFailure and are
// never confused with infeasibility.
//
// Implementations:
//
//	Dantzig      exact greedy ratio fill, O(n log n)
//	OracleFunc   adapter for stubs and custom backends
//	Counting     decorator that counts Solve calls
//
// Usage:
//
//	res, err := relax.Dantzig{}.Solve(relax.Problem{
//		Values: v, Weights: w, Capacity: c, Lower: lo, Upper: hi,
//	})
//	switch {
//	case err != nil:            // errors.Is(err, relax.ErrOracleFailure)
//	case !res.Feasible():       // discard the subproblem
//	default:                    // use res.Objective, res.X
//	}
package relax
