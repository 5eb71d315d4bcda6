// Package bnb_test provides runnable examples with stable // Output: blocks.
package bnb_test

import (
	"fmt"

	"github.com/katalvlaran/lvknap/bnb"
	"github.com/katalvlaran/lvknap/knapsack"
)

// ExampleSolve solves the textbook instance: weights [2,3,4], values [3,4,5],
// capacity 5. The root relaxation is already integral.
func ExampleSolve() {
	in := knapsack.MustNew(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})

	best, err := bnb.Solve(in, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("value=%g items=%v x=%v\n", best.Value(), best.Selected(), best.Solution())
	// Output: value=7 items=[0 1] x=[1 1 0]
}

// ExampleEngine_Run shows hooks and statistics on an instance where the
// greedy relaxation is fractional and branching is required.
func ExampleEngine_Run() {
	in := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})

	e, err := bnb.NewEngine(
		bnb.WithOnIncumbent(func(prev, next *bnb.Node) {
			fmt.Printf("incumbent %g at %v\n", next.Value(), next.Path())
		}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	best, err := e.Run(in)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	st := e.Stats()
	fmt.Printf("value=%g items=%v created=%d cutoff=%v\n", best.Value(), best.Selected(), st.Created, st.Cutoff)
	// Output:
	// incumbent 14 at [x1=1 x0=0]
	// value=14 items=[1 2] created=9 cutoff=true
}
