// Package bnb solves 0/1 knapsack instances exactly with best-first
// Branch-and-Bound over the continuous (LP) relaxation.
//
// 🚀 How it works
//
//	root box [0,1]^n ──▶ relaxation ──▶ max-heap by bound
//	                                        │
//	          ┌─────────────────────────────┘
//	          ▼
//	  pop best node ── bound ≤ incumbent? ──▶ stop (best-first cutoff)
//	          │
//	  integral? ──yes──▶ round, offer as incumbent
//	          │no
//	  for each fractional x_j: child x_j=0, child x_j=1
//	  (drop infeasible or dominated children, enqueue the rest)
//
// ✨ Key properties
//   - Every node is evaluated once, at construction (eager relaxation).
//   - Queue order is a strict total order: bound ↓, depth ↑, creation ↑.
//   - Pruning and incumbent acceptance share one margin (DominanceTol).
//   - The relaxation oracle is pluggable (relax.Oracle); the default is the
//     exact greedy relax.Dantzig.
//
// ⚙️ Usage
//
//	in := knapsack.MustNew(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})
//	best, err := bnb.Solve(in, false)
//	// best.Value() == 7, best.Selected() == [0 1]
//
//	e, _ := bnb.NewEngine(
//		bnb.WithVerbose(true),
//		bnb.WithLogger(logger),
//		bnb.WithOnIncumbent(func(prev, next *bnb.Node) { /* ... */ }),
//	)
//	best, err = e.Run(in)
//	stats := e.Stats()
//
// Errors
//   - ErrNilInstance, ErrOptionViolation for bad input;
//   - oracle failures wrap relax.ErrOracleFailure and abort the run;
//   - ErrOracleContract (also relax.ErrOracleFailure) for malformed answers.
//
// An infeasible relaxation is never an error: the subproblem is dropped.
package bnb
