// Package bnb implements best-first Branch-and-Bound for the 0/1 knapsack problem.
//
// Engine explores subproblems in descending order of their LP-relaxation
// objective. Each node carries a box (BoundSet) and is evaluated once, at
// construction, by a relax.Oracle.
//
// Loop (one iteration):
//  1. Queue empty → Terminated; return the incumbent (possibly nil).
//  2. Pop the highest-priority node n (see queue.go for the total order).
//  3. Cutoff: if an incumbent exists and n.obj ≤ incumbent.obj, stop. Every
//     queued node has obj ≤ n.obj, so none can beat the incumbent.
//  4. Integral n → round it and offer it as incumbent. Otherwise, for every
//     fractional index j in increasing order, build the "upper" child
//     (x_j = 0) and the "lower" child (x_j = 1); enqueue each unless it is
//     infeasible or dominated: obj + DominanceTol < incumbent.obj.
//
// Acceptance: a leaf with value v replaces the incumbent when v + DominanceTol
// ≥ incumbent.obj. The same margin drives child pruning.
//
// Complexity:
//   - Worst case O(2^n) leaves; each node costs one oracle call plus O(n)
//     bookkeeping and O(log Q) heap work.
//   - Memory: O(Q·n) for Q live nodes.
//
// Concurrency: an Engine is single-threaded and not safe for concurrent use.
// Separate Engines share nothing and may run in parallel.
package bnb

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/lvknap/knapsack"
)

// Engine owns the state of a search: the live-node queue, the incumbent
// slot and the run counters. Run resets that state, so one Engine may solve
// many instances in sequence.
type Engine struct {
	opts  Options
	trace *tracer

	// per-run state
	inst      *knapsack.Instance
	data      problemData
	queue     nodeQueue
	incumbent *Node
	seq       uint64
	stats     Stats
	state     State
}

// NewEngine applies opts over DefaultOptions.
//
// Errors: ErrOptionViolation for invalid options.
func NewEngine(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Logger == nil {
		if o.Verbose {
			o.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		} else {
			o.Logger = slog.New(slog.DiscardHandler)
		}
	}

	return &Engine{opts: o, trace: newTracer(o.Logger, o.Verbose), state: Idle}, nil
}

// Solve runs a fresh engine on inst. It is the one-call entry point:
// the returned node is the incumbent at termination, or nil when no
// feasible integral point exists.
func Solve(inst *knapsack.Instance, verbose bool, opts ...Option) (*Node, error) {
	e, err := NewEngine(append([]Option{WithVerbose(verbose)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return e.Run(inst)
}

// Stats returns the counters of the most recent run.
func (e *Engine) Stats() Stats { return e.stats }

// State returns the engine state.
func (e *Engine) State() State { return e.state }

// Incumbent returns the current incumbent (nil if none).
func (e *Engine) Incumbent() *Node { return e.incumbent }

// Run searches inst to termination.
//
// Errors: ErrNilInstance; oracle failures (errors.Is(err,
// relax.ErrOracleFailure)) abort the run and are returned as-is, with the
// engine left Terminated.
func (e *Engine) Run(inst *knapsack.Instance) (*Node, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	e.reset(inst)
	e.state = Running
	defer func() { e.state = Terminated }()

	root, err := e.spawn(Root(inst.N()), nil)
	if err != nil {
		return nil, err
	}
	if !root.feasible {
		e.stats.Infeasible++
		e.trace.rootInfeasible()

		return nil, nil
	}
	e.enqueue(root)

	var n *Node
	for e.queue.len() > 0 {
		n = e.queue.pop()
		e.stats.Popped++

		if e.opts.Pruning && e.incumbent != nil && n.objective <= e.incumbent.objective {
			e.stats.Cutoff = true
			e.trace.cutoff(n, e.incumbent)

			break
		}

		if err = e.expand(n); err != nil {
			return nil, err
		}
	}

	return e.incumbent, nil
}

// reset clears per-run state and prefetches the instance vectors.
func (e *Engine) reset(inst *knapsack.Instance) {
	e.inst = inst
	e.data = problemData{values: inst.Values(), weights: inst.Weights(), capacity: inst.Capacity()}
	e.queue.reset()
	e.incumbent = nil
	e.seq = 0
	e.stats = Stats{}
}

// spawn builds and evaluates one node.
func (e *Engine) spawn(b BoundSet, path Path) (*Node, error) {
	n, err := newNode(e.inst, e.data, b, path, e.seq, e.opts.Oracle)
	if err != nil {
		return nil, err
	}
	e.seq++
	e.stats.Created++

	return n, nil
}

func (e *Engine) enqueue(n *Node) {
	e.queue.push(n)
	e.stats.Enqueued++
}

// expand either offers n as incumbent (integral) or branches on every
// fractional index of its relaxation vector.
func (e *Engine) expand(n *Node) error {
	frac := n.fractional(e.opts.IntegralityTol)
	if len(frac) == 0 {
		if n.roundedWeight(e.data.weights) <= e.data.capacity+capacityTol {
			e.offer(n)

			return nil
		}
		// Rounding pushed the leaf over capacity: keep searching on the
		// entries that were only nearly integral.
		if frac = n.unsettled(); len(frac) == 0 {
			e.stats.Rejected++
			e.trace.overweight(n, e.data.capacity)

			return nil
		}
		e.trace.overweight(n, e.data.capacity)
	}

	var (
		j            int
		upper, lower Outcome
		err          error
	)
	for _, j = range frac {
		if upper, err = e.child(n, j, Upper); err != nil {
			return err
		}
		if lower, err = e.child(n, j, Lower); err != nil {
			return err
		}
		e.trace.branch(n, j, upper, lower)
		e.opts.OnBranch(n, j, upper, lower)
	}

	return nil
}

// child builds the child of parent that fixes variable j on the given side
// and enqueues it unless it is infeasible or dominated by the incumbent.
func (e *Engine) child(parent *Node, j int, kind BoundKind) (Outcome, error) {
	b, err := parent.bounds.Tighten(j, kind)
	if err != nil {
		return Outcome{}, err
	}
	path := make(Path, len(parent.path), len(parent.path)+1)
	copy(path, parent.path)
	path = append(path, Step{Index: j, Kind: kind})

	c, err := e.spawn(b, path)
	if err != nil {
		return Outcome{}, err
	}
	if !c.feasible {
		e.stats.Infeasible++

		return Outcome{Kind: InfeasibleChild}, nil
	}
	if e.opts.Pruning && e.incumbent != nil && c.objective+e.opts.DominanceTol < e.incumbent.objective {
		e.stats.Pruned++

		return Outcome{Kind: Pruned, Objective: c.objective}, nil
	}
	e.enqueue(c)

	return Outcome{Kind: Enqueued, Objective: c.objective}, nil
}

// offer rounds an integral node and applies the acceptance rule.
//
// NOTE: v + DominanceTol ≥ incumbent accepts near-ties, including a leaf up
// to DominanceTol worse than the incumbent. Kept deliberately: acceptance and
// pruning share one margin. Use WithDominanceTol(0) for strict ≥.
func (e *Engine) offer(n *Node) {
	n.round(e.data.values)
	e.stats.Leaves++
	e.trace.leaf(n)
	e.opts.OnLeaf(n)

	if e.incumbent != nil && n.objective+e.opts.DominanceTol < e.incumbent.objective {
		e.stats.Rejected++
		e.trace.rejected(n, e.incumbent)

		return
	}
	prev := e.incumbent
	e.incumbent = n
	e.stats.IncumbentUpdates++
	e.trace.incumbent(prev, n)
	e.opts.OnIncumbent(prev, n)
}

// String summarises the engine for debugging.
func (e *Engine) String() string {
	return fmt.Sprintf("bnb.Engine{state=%v live=%d created=%d incumbent=%v}",
		e.state, e.queue.len(), e.stats.Created, e.incumbent)
}
