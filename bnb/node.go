// Package bnb - search nodes.
//
// A Node is born evaluated: the newNode factory invokes the oracle exactly
// once and stores the answer. After construction a node is immutable except
// for one terminal transition, round(), applied when an integral node is
// offered as incumbent: its relaxation vector is replaced by the rounded 0/1
// vector and the objective is recomputed as values · x.
package bnb

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvknap/knapsack"
	"github.com/katalvlaran/lvknap/relax"
)

// Node is one subproblem of the search tree.
type Node struct {
	inst      *knapsack.Instance
	bounds    BoundSet
	feasible  bool
	objective float64
	x         []float64
	path      Path
	seq       uint64 // creation order within a run, tie-break of last resort
	rounded   bool
}

// Instance returns the shared problem instance.
func (n *Node) Instance() *knapsack.Instance { return n.inst }

// Bounds returns the node's box.
func (n *Node) Bounds() BoundSet { return n.bounds }

// Objective returns the relaxation objective (or the integral objective after
// rounding). ok is false for an infeasible node.
func (n *Node) Objective() (value float64, ok bool) { return n.objective, n.feasible }

// Value returns the objective, or 0 for an infeasible node.
func (n *Node) Value() float64 { return n.objective }

// Solution returns a copy of the solution vector (nil when infeasible).
func (n *Node) Solution() []float64 {
	if n.x == nil {
		return nil
	}

	return append([]float64(nil), n.x...)
}

// Selected returns the indices with x[j] = 1 in ascending order.
// Meaningful for integral nodes (e.g. the final incumbent).
func (n *Node) Selected() []int {
	out := make([]int, 0, len(n.x))
	for j, v := range n.x {
		if v >= 0.5 {
			out = append(out, j)
		}
	}

	return out
}

// Path returns a copy of the branching history.
func (n *Node) Path() Path { return append(Path(nil), n.path...) }

// Depth returns the number of branching steps below the root.
func (n *Node) Depth() int { return len(n.path) }

// Integral reports whether the node went through terminal rounding.
func (n *Node) Integral() bool { return n.rounded }

// String renders the node for traces, e.g. "Node[x1=0]{obj=7 x=[1 1 0]}".
func (n *Node) String() string {
	if !n.feasible {
		return "Node" + n.path.String() + "{infeasible}"
	}
	var sb strings.Builder
	sb.WriteString("Node")
	sb.WriteString(n.path.String())
	sb.WriteString("{obj=")
	sb.WriteString(strconv.FormatFloat(n.objective, 'g', -1, 64))
	sb.WriteString(" x=[")
	for j, v := range n.x {
		if j > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
	}
	sb.WriteString("]}")

	return sb.String()
}

// problemData is the instance data shared by every relaxation of a run.
// Slices are read-only for oracles.
type problemData struct {
	values   []float64
	weights  []float64
	capacity float64
}

// newNode builds and evaluates a node. An empty box is infeasible without
// consulting the oracle; otherwise the oracle is called exactly once.
//
// Errors: oracle errors (expected to wrap relax.ErrOracleFailure) are wrapped
// with the node path; contract violations wrap both ErrOracleContract and
// relax.ErrOracleFailure.
func newNode(inst *knapsack.Instance, data problemData, bounds BoundSet, path Path, seq uint64, oracle relax.Oracle) (*Node, error) {
	n := &Node{inst: inst, bounds: bounds, path: path, seq: seq}
	if bounds.Empty() {
		return n, nil
	}

	lower, upper := bounds.Lower(), bounds.Upper()
	res, err := oracle.Solve(relax.Problem{
		Values:   data.values,
		Weights:  data.weights,
		Capacity: data.capacity,
		Lower:    lower,
		Upper:    upper,
	})
	if err != nil {
		return nil, fmt.Errorf("bnb: relaxation at %v: %w", path, err)
	}
	if !res.Feasible() {
		return n, nil
	}
	if err = checkAnswer(res, lower, upper); err != nil {
		return nil, fmt.Errorf("%w: %w at %v: %w", relax.ErrOracleFailure, ErrOracleContract, path, err)
	}

	n.feasible = true
	n.objective = res.Objective
	n.x = append([]float64(nil), res.X...)

	return n, nil
}

// checkAnswer verifies length, finiteness and box membership of an answer.
func checkAnswer(res relax.Result, lower, upper []float64) error {
	if len(res.X) != len(lower) {
		return fmt.Errorf("solution has %d entries, want %d", len(res.X), len(lower))
	}
	if math.IsNaN(res.Objective) || math.IsInf(res.Objective, 0) {
		return fmt.Errorf("objective %v", res.Objective)
	}
	for j, v := range res.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("x[%d]=%v", j, v)
		}
		if v < lower[j]-boxTol || v > upper[j]+boxTol {
			return fmt.Errorf("x[%d]=%v outside [%v,%v]", j, v, lower[j], upper[j])
		}
	}

	return nil
}

// fractional returns, in increasing order, the indices j with
// |x[j] - round(x[j])| ≥ tol.
func (n *Node) fractional(tol float64) []int {
	var out []int
	for j, v := range n.x {
		if math.Abs(v-math.Round(v)) >= tol {
			out = append(out, j)
		}
	}

	return out
}

// roundedWeight is weights · round(x), computed without touching x.
func (n *Node) roundedWeight(weights []float64) float64 {
	var w float64
	for j, v := range n.x {
		w += weights[j] * math.Round(v)
	}

	return w
}

// unsettled returns, in increasing order, the free indices whose entry is
// not exactly integral. A near-integral vector that rounds over capacity is
// branched on these.
func (n *Node) unsettled() []int {
	var out []int
	for j, v := range n.x {
		if v != math.Round(v) && n.bounds.LowerAt(j) == 0 && n.bounds.UpperAt(j) == 1 {
			out = append(out, j)
		}
	}

	return out
}

// round performs the terminal transition of an integral node.
func (n *Node) round(values []float64) {
	var obj float64
	for j, v := range n.x {
		n.x[j] = math.Round(v)
		obj += values[j] * n.x[j]
	}
	n.objective = obj
	n.rounded = true
}
