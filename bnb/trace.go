// Package bnb - verbose search trace on slog.
package bnb

import (
	"context"
	"log/slog"
)

// tracer writes the verbose search trace. Every method is a no-op unless
// verbose is set, so the hot loop pays one branch per event.
type tracer struct {
	log     *slog.Logger
	verbose bool
}

func newTracer(l *slog.Logger, verbose bool) *tracer {
	return &tracer{log: l, verbose: verbose}
}

func (t *tracer) emit(msg string, args ...any) {
	if !t.verbose {
		return
	}
	t.log.Log(context.Background(), slog.LevelInfo, msg, args...)
}

func (t *tracer) leaf(n *Node) {
	t.emit("end at the leaf", "path", n.path.String())
}

func (t *tracer) incumbent(prev, next *Node) {
	if !t.verbose {
		return
	}
	var old any = "none"
	if prev != nil {
		old = prev.objective
	}
	t.emit("update incumbent solution",
		"old", old,
		"new", next.objective,
		"solution", next.String(),
	)
}

func (t *tracer) rejected(n, inc *Node) {
	t.emit("no updates", "leaf", n.objective, "incumbent", inc.objective)
}

func (t *tracer) branch(n *Node, j int, upper, lower Outcome) {
	t.emit("branching",
		"node", n.path.String(),
		"var", j,
		"upper", upper.String(),
		"lower", lower.String(),
	)
}

func (t *tracer) cutoff(n, inc *Node) {
	t.emit("best-first cutoff", "bound", n.objective, "incumbent", inc.objective)
}

func (t *tracer) rootInfeasible() {
	t.emit("root relaxation infeasible")
}

func (t *tracer) overweight(n *Node, capacity float64) {
	t.emit("rounded leaf over capacity", "node", n.objective, "capacity", capacity)
}
