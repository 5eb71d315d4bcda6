// Package lvknap solves the 0/1 knapsack problem exactly with best-first
// branch-and-bound over the LP relaxation.
//
// What is inside?
//
//	knapsack/    Instance type, validation, seeded generator, JSON/YAML codec
//	relax/       relaxation oracle contract and the Dantzig greedy LP solver
//	bnb/         search nodes, bound sets, priority queue and the Engine
//	exhaustive/  brute-force reference solver for small instances
//	cmd/lvknap   command line front end (solve, generate, bench)
//
// Each node solves its relaxation exactly once, when it is built. The engine
// always expands the node with the highest relaxation value, branches on
// every fractional variable of that node, prunes children whose bound cannot
// beat the incumbent, and stops as soon as the best open node is no better
// than the incumbent.
//
// Quick example (capacity 5):
//
//	item   weight  value
//	  0      2       3
//	  1      3       4
//	  2      4       5
//
//	in := knapsack.MustNew(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})
//	best, _ := bnb.Solve(in, false)
//	best.Value()    // 7
//	best.Selected() // [0 1]
//
//	go install github.com/katalvlaran/lvknap/cmd/lvknap@latest
package lvknap
