// Package bnb - options, sentinels, branching vocabulary and run statistics.
package bnb

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvknap/relax"
)

// Default numeric policy.
const (
	// DefaultIntegralityTol: |x - round(x)| ≥ tol marks a fractional entry.
	DefaultIntegralityTol = 1e-5

	// DefaultDominanceTol is the margin shared by child pruning and incumbent
	// acceptance.
	DefaultDominanceTol = 1e-3

	// boxTol is how far an oracle answer may stray outside its box before
	// the answer is rejected as a contract violation.
	boxTol = 1e-6

	// capacityTol is the absolute slack a rounded leaf may use above the
	// capacity before it is refused.
	capacityTol = 1e-9
)

// Sentinel errors.
var (
	// ErrNilInstance is returned when Run receives a nil instance.
	ErrNilInstance = errors.New("bnb: instance is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bnb: invalid option supplied")

	// ErrOracleContract is returned (wrapped together with relax.ErrOracleFailure)
	// when an oracle answer has the wrong length, non-finite entries, or
	// leaves its box.
	ErrOracleContract = errors.New("bnb: oracle broke its contract")

	// ErrIndexOutOfRange is returned by BoundSet.Tighten for a bad variable index.
	ErrIndexOutOfRange = errors.New("bnb: variable index out of range")
)

// BoundKind names which side of a variable's box a branching step tightens.
type BoundKind int

const (
	// Upper forces upper[j] = 0: the item is excluded.
	Upper BoundKind = iota

	// Lower forces lower[j] = 1: the item is included.
	Lower
)

// String implements fmt.Stringer.
func (k BoundKind) String() string {
	switch k {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return fmt.Sprintf("BoundKind(%d)", int(k))
	}
}

// Step is one branching decision on the way from the root to a node.
type Step struct {
	Index int
	Kind  BoundKind
}

// String renders the step as the fixing it applies, e.g. "x3=0".
func (s Step) String() string {
	if s.Kind == Lower {
		return "x" + strconv.Itoa(s.Index) + "=1"
	}

	return "x" + strconv.Itoa(s.Index) + "=0"
}

// Path is the ordered branching history of a node. Diagnostics only.
type Path []Step

// String renders the path as "[x2=0 x0=1]"; the root is "[]".
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(']')

	return sb.String()
}

// OutcomeKind classifies what happened to a freshly built child.
type OutcomeKind int

const (
	// Enqueued children entered the priority queue.
	Enqueued OutcomeKind = iota

	// InfeasibleChild children had an infeasible relaxation.
	InfeasibleChild

	// Pruned children were dominated by the incumbent.
	Pruned
)

// Outcome reports a child's fate together with its relaxation objective
// (zero for infeasible children).
type Outcome struct {
	Kind      OutcomeKind
	Objective float64
}

// String renders the outcome the way verbose traces print it.
func (o Outcome) String() string {
	switch o.Kind {
	case InfeasibleChild:
		return "infeasible"
	case Pruned:
		return "pruned"
	default:
		return strconv.FormatFloat(o.Objective, 'g', -1, 64)
	}
}

// State is the engine's search state.
type State int

const (
	// Idle: no run has started yet.
	Idle State = iota

	// Running: the search loop is active.
	Running

	// Terminated: the last run finished (queue empty or best-first cutoff).
	Terminated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts search events of the most recent run.
type Stats struct {
	Created          int  // nodes built (root included), one oracle call each
	Infeasible       int  // children discarded as infeasible
	Pruned           int  // children discarded by the incumbent bound
	Enqueued         int  // nodes pushed onto the queue (root included)
	Popped           int  // nodes taken from the queue
	Leaves           int  // popped nodes with an integral relaxation
	IncumbentUpdates int  // accepted incumbent candidates
	Rejected         int  // leaves not accepted as incumbent
	Cutoff           bool // search ended by the best-first cutoff
}

// Option configures an Engine via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by NewEngine.
type Option func(*Options)

// Options holds engine parameters and observation hooks.
type Options struct {
	// Oracle solves the relaxation of every node. Default: relax.Dantzig{}.
	Oracle relax.Oracle

	// Verbose enables human-readable trace records on Logger.
	Verbose bool

	// Logger receives verbose trace records. Default: text handler on stderr
	// when Verbose is set, otherwise a discarding logger.
	Logger *slog.Logger

	// Pruning enables bound pruning of children and the best-first cutoff.
	// Disabling it explores the whole tree; useful for soundness checks.
	Pruning bool

	// IntegralityTol decides which relaxation entries are fractional.
	IntegralityTol float64

	// DominanceTol is the shared pruning/acceptance margin.
	DominanceTol float64

	// OnLeaf is called when a popped node turns out integral (after rounding).
	OnLeaf func(n *Node)

	// OnIncumbent is called after the incumbent changes; prev is nil on the
	// first update.
	OnIncumbent func(prev, next *Node)

	// OnBranch is called once per fractional index j after both children of
	// parent were built.
	OnBranch func(parent *Node, j int, upper, lower Outcome)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Oracle:          relax.Dantzig{}
//   - Verbose:         false, Logger nil (resolved in NewEngine)
//   - Pruning:         true
//   - IntegralityTol:  1e-5
//   - DominanceTol:    1e-3
//   - no-op hooks
func DefaultOptions() Options {
	return Options{
		Oracle:         relax.Dantzig{},
		Pruning:        true,
		IntegralityTol: DefaultIntegralityTol,
		DominanceTol:   DefaultDominanceTol,
		OnLeaf:         func(*Node) {},
		OnIncumbent:    func(_, _ *Node) {},
		OnBranch:       func(*Node, int, Outcome, Outcome) {},
	}
}

// WithOracle replaces the relaxation oracle. A nil oracle is an option violation.
func WithOracle(o relax.Oracle) Option {
	return func(opts *Options) {
		if o == nil {
			opts.err = fmt.Errorf("%w: oracle is nil", ErrOptionViolation)

			return
		}
		opts.Oracle = o
	}
}

// WithVerbose toggles the trace.
func WithVerbose(v bool) Option {
	return func(o *Options) { o.Verbose = v }
}

// WithLogger sets the trace destination.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPruning toggles bound pruning and the best-first cutoff.
func WithPruning(on bool) Option {
	return func(o *Options) { o.Pruning = on }
}

// WithIntegralityTol sets the fractional-entry threshold (must be in (0, 0.5)).
func WithIntegralityTol(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0 && tol < 0.5) {
			o.err = fmt.Errorf("%w: IntegralityTol must be in (0,0.5), got %v", ErrOptionViolation, tol)

			return
		}
		o.IntegralityTol = tol
	}
}

// WithDominanceTol sets the pruning/acceptance margin (must be ≥ 0).
func WithDominanceTol(tol float64) Option {
	return func(o *Options) {
		if !(tol >= 0) {
			o.err = fmt.Errorf("%w: DominanceTol must be non-negative, got %v", ErrOptionViolation, tol)

			return
		}
		o.DominanceTol = tol
	}
}

// WithOnLeaf registers a leaf hook.
func WithOnLeaf(fn func(n *Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLeaf = fn
		}
	}
}

// WithOnIncumbent registers an incumbent-update hook.
func WithOnIncumbent(fn func(prev, next *Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIncumbent = fn
		}
	}
}

// WithOnBranch registers a branching hook.
func WithOnBranch(fn func(parent *Node, j int, upper, lower Outcome)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBranch = fn
		}
	}
}
