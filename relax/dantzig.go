// Package relax - Dantzig's greedy solution of the single-row LP.
//
// With one capacity row and box bounds the LP optimum is obtained greedily:
//  1. Charge every pinned lower bound: x[j] = Lower[j]. If the pinned weight
//     already exceeds Capacity (beyond Tol) the problem is Infeasible.
//  2. Visit the remaining free capacity of each variable in descending
//     value/weight ratio (zero-weight items first, index tiebreak) and fill
//     as much as the residual capacity allows. At most one variable ends up
//     strictly between its bounds.
//  3. Variables with non-positive value never move above their lower bound.
//
// This is exact for the problem class and runs in O(n log n); it is not a
// general simplex method.
package relax

import (
	"fmt"
	"math"
	"sort"
)

// DefaultTol is the default feasibility tolerance of Dantzig.
const DefaultTol = 1e-9

// Dantzig is the exact greedy oracle for one capacity row plus box bounds.
// The zero value uses DefaultTol.
type Dantzig struct {
	// Tol is the capacity slack tolerated before a pinned set is declared
	// infeasible, and the threshold below which residual capacity counts as zero.
	Tol float64
}

var _ Oracle = Dantzig{}

// Solve implements Oracle.
//
// Errors: ErrOracleFailure wrapping ErrMalformedProblem for shape or
// finiteness violations, or for a box with Lower[j] > Upper[j].
func (d Dantzig) Solve(p Problem) (Result, error) {
	var tol float64
	tol = d.Tol
	if tol <= 0 {
		tol = DefaultTol
	}
	if err := checkProblem(p); err != nil {
		return Result{}, err
	}

	n := p.N()
	x := make([]float64, n)

	// Stage 1: charge pinned lower bounds.
	var (
		j    int
		used float64
	)
	for j = 0; j < n; j++ {
		x[j] = p.Lower[j]
		used += p.Weights[j] * p.Lower[j]
	}
	if used > p.Capacity+tol {
		return InfeasibleResult(), nil
	}
	residual := p.Capacity - used

	// Stage 2: order the free slack by ratio.
	free := make([]int, 0, n)
	for j = 0; j < n; j++ {
		if p.Upper[j] > p.Lower[j] && p.Values[j] > 0 {
			free = append(free, j)
		}
	}
	sort.Sort(byRatio{idx: free, p: p})

	// Stage 3: fill.
	var (
		room, take float64
	)
	for _, j = range free {
		room = p.Upper[j] - p.Lower[j]
		if p.Weights[j] == 0 {
			x[j] = p.Upper[j]

			continue
		}
		if residual <= tol {
			break
		}
		take = residual / p.Weights[j]
		if take >= room {
			take = room
		}
		x[j] += take
		residual -= take * p.Weights[j]
	}

	var obj float64
	for j = 0; j < n; j++ {
		obj += p.Values[j] * x[j]
	}

	return Result{Status: Optimal, Objective: obj, X: x}, nil
}

// byRatio orders variable indices by descending value/weight ratio.
// Zero-weight variables rank first; equal ratios fall back to index order.
type byRatio struct {
	idx []int
	p   Problem
}

func (b byRatio) Len() int      { return len(b.idx) }
func (b byRatio) Swap(i, j int) { b.idx[i], b.idx[j] = b.idx[j], b.idx[i] }
func (b byRatio) Less(i, j int) bool {
	a, c := b.idx[i], b.idx[j]
	wa, wc := b.p.Weights[a], b.p.Weights[c]
	switch {
	case wa == 0 && wc == 0:
		return a < c
	case wa == 0:
		return true
	case wc == 0:
		return false
	}
	// Cross-multiplied to avoid division: v_a/w_a > v_c/w_c.
	l, r := b.p.Values[a]*wc, b.p.Values[c]*wa
	if l == r {
		return a < c
	}

	return l > r
}

// checkProblem validates shape and finiteness of p.
func checkProblem(p Problem) error {
	n := len(p.Values)
	if len(p.Weights) != n || len(p.Lower) != n || len(p.Upper) != n {
		return fmt.Errorf("%w: %w: values=%d weights=%d lower=%d upper=%d",
			ErrOracleFailure, ErrMalformedProblem, n, len(p.Weights), len(p.Lower), len(p.Upper))
	}
	if math.IsNaN(p.Capacity) || math.IsInf(p.Capacity, 0) {
		return fmt.Errorf("%w: %w: capacity=%v", ErrOracleFailure, ErrMalformedProblem, p.Capacity)
	}
	var j int
	for j = 0; j < n; j++ {
		if !finite(p.Values[j]) || !finite(p.Weights[j]) || !finite(p.Lower[j]) || !finite(p.Upper[j]) {
			return fmt.Errorf("%w: %w: non-finite entry at %d", ErrOracleFailure, ErrMalformedProblem, j)
		}
		if p.Lower[j] > p.Upper[j] {
			return fmt.Errorf("%w: %w: lower[%d]=%v > upper[%d]=%v",
				ErrOracleFailure, ErrMalformedProblem, j, p.Lower[j], j, p.Upper[j])
		}
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
