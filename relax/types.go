// Package relax defines the continuous-relaxation oracle consumed by the
// branch-and-bound engine, plus its sentinel errors and result types.
package relax

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrOracleFailure marks any failure of the oracle to produce an answer
	// (non-convergence, malformed problem, broken contract). It is distinct
	// from an Infeasible result and is fatal for a search run.
	ErrOracleFailure = errors.New("relax: oracle failure")

	// ErrMalformedProblem is wrapped in ErrOracleFailure when the Problem
	// vectors disagree in length or hold non-finite numbers.
	ErrMalformedProblem = errors.New("relax: malformed problem")
)

// Status is the outcome class of a relaxation solve.
type Status int

const (
	// Optimal means Objective and X hold an optimal LP solution.
	Optimal Status = iota

	// Infeasible means the box and capacity admit no feasible point.
	Infeasible
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Problem is the LP
//
//	maximize   Values · x
//	subject to Weights · x ≤ Capacity
//	           Lower[j] ≤ x[j] ≤ Upper[j]   for every j
//
// All four vectors share one length.
type Problem struct {
	Values   []float64
	Weights  []float64
	Capacity float64
	Lower    []float64
	Upper    []float64
}

// N returns the number of variables.
func (p Problem) N() int { return len(p.Values) }

// Result is the answer of an Oracle. X is nil when Status is Infeasible.
type Result struct {
	Status    Status
	Objective float64
	X         []float64
}

// Feasible reports whether the result carries a solution.
func (r Result) Feasible() bool { return r.Status == Optimal }

// Oracle solves relaxation problems. A non-nil error means the oracle
// failed; infeasibility is reported through Result.Status, never as an error.
// Implementations must not retain p's slices after returning.
type Oracle interface {
	Solve(p Problem) (Result, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(p Problem) (Result, error)

// Solve calls f(p).
func (f OracleFunc) Solve(p Problem) (Result, error) { return f(p) }

// InfeasibleResult is the canonical infeasible answer.
func InfeasibleResult() Result { return Result{Status: Infeasible} }
