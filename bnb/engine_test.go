// Package bnb_test validates the best-first Branch-and-Bound engine.
// Focus:
//  1. Concrete scenarios (textbook, zero capacity, oversized item).
//  2. Optimality against exhaustive enumeration on random instances.
//  3. Pruning soundness: identical optimum with pruning disabled.
//  4. Incumbent monotonicity, termination bounds, once-per-node evaluation.
//  5. Oracle failures and contract violations abort the run.
package bnb_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvknap/bnb"
	"github.com/katalvlaran/lvknap/exhaustive"
	"github.com/katalvlaran/lvknap/knapsack"
	"github.com/katalvlaran/lvknap/relax"
)

// EngineSuite exercises the engine on hand-made instances.
type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// TestTextbook: weights [2,3,4], values [3,4,5], capacity 5 ⇒ {0,1}, value 7.
func (s *EngineSuite) TestTextbook() {
	in := knapsack.MustNew(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})

	best, err := bnb.Solve(in, false)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), best)
	require.Equal(s.T(), 7.0, best.Value())
	require.Equal(s.T(), []float64{1, 1, 0}, best.Solution())
	require.Equal(s.T(), []int{0, 1}, best.Selected())
	require.True(s.T(), best.Integral())
}

// TestZeroCapacity: nothing fits ⇒ all-zero vector, value 0.
func (s *EngineSuite) TestZeroCapacity() {
	in := knapsack.MustNew(4, 0, []float64{1, 2, 3, 4}, []float64{5, 6, 7, 8})

	best, err := bnb.Solve(in, false)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), best)
	require.Equal(s.T(), 0.0, best.Value())
	require.Equal(s.T(), []float64{0, 0, 0, 0}, best.Solution())
}

// TestSingleOversizedItem: the only item is heavier than the capacity.
func (s *EngineSuite) TestSingleOversizedItem() {
	in := knapsack.MustNew(1, 3, []float64{5}, []float64{10})

	e, err := bnb.NewEngine()
	require.NoError(s.T(), err)
	best, err := e.Run(in)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), best)
	require.Equal(s.T(), 0.0, best.Value())
	require.Equal(s.T(), []float64{0}, best.Solution())
	require.Equal(s.T(), bnb.Path{{Index: 0, Kind: bnb.Upper}}, best.Path())

	st := e.Stats()
	require.Equal(s.T(), 3, st.Created, "root + two children")
	require.Equal(s.T(), 1, st.Infeasible, "x0=1 violates capacity")
	require.Equal(s.T(), bnb.Terminated, e.State())
}

// TestNearIntegralLeafOverCapacity: the relaxation puts x0 = 0.999995, which
// looks integral but rounds to a selection heavier than the capacity.
func (s *EngineSuite) TestNearIntegralLeafOverCapacity() {
	in := knapsack.MustNew(1, 999.995, []float64{1000}, []float64{1})

	e, err := bnb.NewEngine()
	require.NoError(s.T(), err)
	best, err := e.Run(in)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), best)
	require.Equal(s.T(), 0.0, best.Value())
	require.Equal(s.T(), []float64{0}, best.Solution())

	w, err := in.Weight(best.Solution())
	require.NoError(s.T(), err)
	require.LessOrEqual(s.T(), w, in.Capacity())

	ref, err := exhaustive.Solve(in)
	require.NoError(s.T(), err)
	require.Equal(s.T(), ref.Value, best.Value())

	st := e.Stats()
	require.Equal(s.T(), 3, st.Created, "root branched on x0")
	require.Equal(s.T(), 1, st.Infeasible, "x0=1 violates capacity")
	require.Equal(s.T(), 1, st.IncumbentUpdates)
}

// TestEmptyInstance: zero items ⇒ empty selection.
func (s *EngineSuite) TestEmptyInstance() {
	in := knapsack.MustNew(0, 10, nil, nil)
	best, err := bnb.Solve(in, false)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), best)
	require.Equal(s.T(), 0.0, best.Value())
	require.Empty(s.T(), best.Selected())
}

// TestBranchingNeeded: root relaxation is fractional, optimum differs from greedy.
func (s *EngineSuite) TestBranchingNeeded() {
	// Greedy by ratio takes item 0 (ratio 1.5) then stalls; {1,2} is optimal.
	in := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})

	e, err := bnb.NewEngine()
	require.NoError(s.T(), err)
	best, err := e.Run(in)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 14.0, best.Value())
	require.Equal(s.T(), []int{1, 2}, best.Selected())
	require.Greater(s.T(), e.Stats().Created, 1)
}

func (s *EngineSuite) TestNilInstance() {
	_, err := bnb.Solve(nil, false)
	require.ErrorIs(s.T(), err, bnb.ErrNilInstance)
}

func (s *EngineSuite) TestOptionViolations() {
	bad := []bnb.Option{
		bnb.WithOracle(nil),
		bnb.WithIntegralityTol(0),
		bnb.WithIntegralityTol(0.7),
		bnb.WithDominanceTol(-1),
		bnb.WithDominanceTol(math.NaN()),
	}
	for _, opt := range bad {
		_, err := bnb.NewEngine(opt)
		require.ErrorIs(s.T(), err, bnb.ErrOptionViolation)
	}
}

// TestRootInfeasible: an oracle that rejects the root box yields no incumbent.
func (s *EngineSuite) TestRootInfeasible() {
	stub := relax.OracleFunc(func(relax.Problem) (relax.Result, error) {
		return relax.InfeasibleResult(), nil
	})
	in := knapsack.MustNew(2, 1, []float64{1, 1}, []float64{1, 1})

	best, err := bnb.Solve(in, false, bnb.WithOracle(stub))
	require.NoError(s.T(), err)
	require.Nil(s.T(), best)
}

// TestOracleFailureIsFatal: a solver error aborts the run.
func (s *EngineSuite) TestOracleFailureIsFatal() {
	var calls int
	stub := relax.OracleFunc(func(p relax.Problem) (relax.Result, error) {
		calls++
		if calls == 2 {
			return relax.Result{}, fmt.Errorf("%w: did not converge", relax.ErrOracleFailure)
		}

		return relax.Dantzig{}.Solve(p)
	})
	in := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})

	e, err := bnb.NewEngine(bnb.WithOracle(stub))
	require.NoError(s.T(), err)
	best, err := e.Run(in)
	require.ErrorIs(s.T(), err, relax.ErrOracleFailure)
	require.Nil(s.T(), best)
	require.Equal(s.T(), bnb.Terminated, e.State())
}

// TestOracleContractViolation: malformed answers are failures, not infeasibility.
func (s *EngineSuite) TestOracleContractViolation() {
	answers := []relax.Result{
		{Status: relax.Optimal, Objective: 1, X: []float64{1}},           // short
		{Status: relax.Optimal, Objective: 1, X: []float64{math.NaN(), 0}}, // NaN
		{Status: relax.Optimal, Objective: 1, X: []float64{1.5, 0}},      // outside box
		{Status: relax.Optimal, Objective: math.Inf(1), X: []float64{0, 0}},
	}
	in := knapsack.MustNew(2, 1, []float64{1, 1}, []float64{1, 1})
	for _, ans := range answers {
		stub := relax.OracleFunc(func(relax.Problem) (relax.Result, error) { return ans, nil })
		_, err := bnb.Solve(in, false, bnb.WithOracle(stub))
		require.ErrorIs(s.T(), err, bnb.ErrOracleContract)
		require.ErrorIs(s.T(), err, relax.ErrOracleFailure)
	}
}

// TestBranchesOnEveryFractionalIndex: with two fractional entries at the
// root, both are branched on, in increasing index order.
func (s *EngineSuite) TestBranchesOnEveryFractionalIndex() {
	stub := relax.OracleFunc(func(p relax.Problem) (relax.Result, error) {
		free := 0
		for j := range p.Lower {
			if p.Lower[j] == 0 && p.Upper[j] == 1 {
				free++
			}
		}
		if free == p.N() {
			return relax.Result{Status: relax.Optimal, Objective: 100, X: []float64{0.5, 0, 0.5}}, nil
		}

		return relax.Dantzig{}.Solve(p)
	})
	in := knapsack.MustNew(3, 4, []float64{2, 2, 2}, []float64{3, 1, 3})

	var rootBranches []int
	best, err := bnb.Solve(in, false,
		bnb.WithOracle(stub),
		bnb.WithOnBranch(func(parent *bnb.Node, j int, _, _ bnb.Outcome) {
			if parent.Depth() == 0 {
				rootBranches = append(rootBranches, j)
			}
		}),
	)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 2}, rootBranches)
	require.Equal(s.T(), 6.0, best.Value())
	require.Equal(s.T(), []int{0, 2}, best.Selected())
}

// TestVerboseTrace checks that the trace reports leaves, incumbents and branches.
func (s *EngineSuite) TestVerboseTrace() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	in := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})

	_, err := bnb.Solve(in, true, bnb.WithLogger(logger))
	require.NoError(s.T(), err)
	out := buf.String()
	require.Contains(s.T(), out, "end at the leaf")
	require.Contains(s.T(), out, "update incumbent solution")
	require.Contains(s.T(), out, "branching")
	require.Contains(s.T(), out, "old=none")
}

// TestQuietByDefault: without verbose, the logger stays silent.
func (s *EngineSuite) TestQuietByDefault() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	in := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})

	_, err := bnb.Solve(in, false, bnb.WithLogger(logger))
	require.NoError(s.T(), err)
	require.Empty(s.T(), buf.String())
}

// TestEngineReuse: state is reset between runs.
func (s *EngineSuite) TestEngineReuse() {
	e, err := bnb.NewEngine()
	require.NoError(s.T(), err)

	a := knapsack.MustNew(3, 10, []float64{6, 5, 5}, []float64{9, 7, 7})
	b := knapsack.MustNew(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})

	ra, err := e.Run(a)
	require.NoError(s.T(), err)
	created := e.Stats().Created

	rb, err := e.Run(b)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 14.0, ra.Value())
	require.Equal(s.T(), 7.0, rb.Value())
	require.Equal(s.T(), 1, e.Stats().Created, "textbook root is integral")
	require.NotEqual(s.T(), created, e.Stats().Created)
	require.Same(s.T(), rb, e.Incumbent())
}

// -----------------------------------------------------------------------------
// Randomised properties against exhaustive enumeration.
// -----------------------------------------------------------------------------

// randomInstances draws count instances with 1..maxItems-1 items.
func randomInstances(t *testing.T, count, maxItems int, integer bool, seed int64) []*knapsack.Instance {
	t.Helper()
	opts := knapsack.DefaultGeneratorOptions()
	opts.Items = knapsack.Range{Lo: 1, Hi: float64(maxItems)}
	opts.Integer = integer
	opts.Seed = seed
	gen, err := knapsack.NewGenerator(opts)
	require.NoError(t, err)

	out := make([]*knapsack.Instance, count)
	for i := range out {
		out[i], err = gen.Generate()
		require.NoError(t, err)
	}

	return out
}

func TestSolve_OptimalAgainstExhaustive(t *testing.T) {
	for i, in := range randomInstances(t, 150, 16, true, 11) {
		want, err := exhaustive.Solve(in)
		require.NoError(t, err)

		best, err := bnb.Solve(in, false)
		require.NoError(t, err, "instance %d", i)
		require.NotNil(t, best)
		require.Equal(t, want.Value, best.Value(), "instance %d", i)

		x := best.Solution()
		for _, v := range x {
			require.True(t, v == 0 || v == 1, "entry %v not binary", v)
		}
		w, err := in.Weight(x)
		require.NoError(t, err)
		require.LessOrEqual(t, w, in.Capacity())
	}
}

func TestSolve_ContinuousInstances(t *testing.T) {
	for i, in := range randomInstances(t, 60, 12, false, 5) {
		want, err := exhaustive.Solve(in)
		require.NoError(t, err)

		best, err := bnb.Solve(in, false)
		require.NoError(t, err)
		require.InDelta(t, want.Value, best.Value(), bnb.DefaultDominanceTol, "instance %d", i)
		w, _ := in.Weight(best.Solution())
		require.LessOrEqual(t, w, in.Capacity()+1e-9)
	}
}

func TestSolve_PruningSoundness(t *testing.T) {
	for i, in := range randomInstances(t, 40, 12, true, 3) {
		pruned, err := bnb.Solve(in, false)
		require.NoError(t, err)

		full, err := bnb.NewEngine(bnb.WithPruning(false))
		require.NoError(t, err)
		all, err := full.Run(in)
		require.NoError(t, err)

		require.Equal(t, all.Value(), pruned.Value(), "instance %d", i)
		require.False(t, full.Stats().Cutoff)
		require.Zero(t, full.Stats().Pruned)
	}
}

func TestSolve_IncumbentMonotone(t *testing.T) {
	for _, in := range randomInstances(t, 40, 14, true, 21) {
		var values []float64
		_, err := bnb.Solve(in, false,
			bnb.WithPruning(false),
			bnb.WithOnIncumbent(func(prev, next *bnb.Node) {
				if prev == nil {
					require.Empty(t, values)
				}
				values = append(values, next.Value())
			}),
		)
		require.NoError(t, err)
		require.NotEmpty(t, values)
		for k := 1; k < len(values); k++ {
			require.GreaterOrEqual(t, values[k], values[k-1]-bnb.DefaultDominanceTol)
		}
	}
}

func TestSolve_TerminationAndOncePerNode(t *testing.T) {
	for _, in := range randomInstances(t, 30, 13, true, 8) {
		oracle := relax.NewCounting(relax.Dantzig{})
		e, err := bnb.NewEngine(bnb.WithOracle(oracle), bnb.WithPruning(false))
		require.NoError(t, err)
		_, err = e.Run(in)
		require.NoError(t, err)

		st := e.Stats()
		n := in.N()
		require.LessOrEqual(t, st.Leaves, 1<<n)
		require.LessOrEqual(t, st.Created, 1<<(n+1))
		require.EqualValues(t, st.Created, oracle.Calls(), "one oracle call per node")
		require.Equal(t, st.Enqueued, st.Popped, "no cutoff ⇒ queue drained")
	}
}

func TestSolve_OracleErrorUnwraps(t *testing.T) {
	sentinel := errors.New("backend down")
	stub := relax.OracleFunc(func(relax.Problem) (relax.Result, error) {
		return relax.Result{}, fmt.Errorf("%w: %w", relax.ErrOracleFailure, sentinel)
	})
	_, err := bnb.Solve(knapsack.MustNew(1, 1, []float64{1}, []float64{1}), false, bnb.WithOracle(stub))
	require.ErrorIs(t, err, sentinel)
	require.ErrorIs(t, err, relax.ErrOracleFailure)
}
