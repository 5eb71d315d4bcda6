// Package bnb - best-first priority queue of live nodes.
//
// Ordering is a strict total order (no tolerance):
//  1. higher relaxation objective first;
//  2. fewer fixed variables (shallower node) first;
//  3. earlier creation first.
//
// Exact comparisons keep the heap invariant transitive; the engine's
// tolerance margins apply only to pruning and acceptance, never to ordering.
package bnb

import "container/heap"

// higherPriority reports whether a must be popped before b.
func higherPriority(a, b *Node) bool {
	if a.objective != b.objective {
		return a.objective > b.objective
	}
	if da, db := a.Depth(), b.Depth(); da != db {
		return da < db
	}

	return a.seq < b.seq
}

// nodePQ is a max-heap of *Node under higherPriority.
type nodePQ []*Node

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less puts the higher-priority node on top.
func (pq nodePQ) Less(i, j int) bool { return higherPriority(pq[i], pq[j]) }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x (a *Node); called by heap.Push.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*Node)) }

// Pop removes the last element; called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}

// nodeQueue wraps nodePQ with typed push/pop.
type nodeQueue struct{ pq nodePQ }

func (q *nodeQueue) push(n *Node) { heap.Push(&q.pq, n) }
func (q *nodeQueue) pop() *Node   { return heap.Pop(&q.pq).(*Node) }
func (q *nodeQueue) len() int     { return q.pq.Len() }
func (q *nodeQueue) reset() {
	clear(q.pq)
	q.pq = q.pq[:0]
}
