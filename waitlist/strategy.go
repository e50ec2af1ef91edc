// Waiting-list strategies of spec §4.G. All six variants satisfy the same
// WaitingList interface so the search kernel (package search) is strategy-
// agnostic; only construction differs.
package waitlist

import (
	"container/heap"
	"math/rand"
)

// WaitingList is the abstract frontier container of spec §4.G: add(x),
// next() -> x (removes), size().
type WaitingList interface {
	Add(id NodeID)
	Next() (NodeID, bool)
	Size() int
}

// WeightFunc reports a NodeID's heuristic weight; lower is explored first.
// Bound by the search kernel to query.Weight/LivenessWeight against that
// node's marking (waitlist has no query dependency of its own).
type WeightFunc func(NodeID) int

// FIFO is the BFS strategy: a plain queue.
type FIFO struct {
	items []NodeID
}

// NewFIFO returns an empty FIFO waiting list.
func NewFIFO() *FIFO { return &FIFO{} }

func (q *FIFO) Add(id NodeID) { q.items = append(q.items, id) }

func (q *FIFO) Next() (NodeID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, true
}

func (q *FIFO) Size() int { return len(q.items) }

// LIFO is the DFS strategy: a plain stack.
type LIFO struct {
	items []NodeID
}

// NewLIFO returns an empty LIFO waiting list.
func NewLIFO() *LIFO { return &LIFO{} }

func (s *LIFO) Add(id NodeID) { s.items = append(s.items, id) }

func (s *LIFO) Next() (NodeID, bool) {
	n := len(s.items)
	if n == 0 {
		return 0, false
	}
	id := s.items[n-1]
	s.items = s.items[:n-1]
	return id, true
}

func (s *LIFO) Size() int { return len(s.items) }

// heapEntry pairs a NodeID with the weight it had when pushed; weights are
// snapshotted at push time, matching the teacher's dijkstra lazy-decrease-
// key discipline (push a new entry rather than mutate one in place).
type heapEntry struct {
	id     NodeID
	weight int
}

// nodeHeap is a container/heap.Interface min-heap of heapEntry ordered by
// weight ascending, the same shape as dijkstra.nodePQ.
type nodeHeap []heapEntry

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Heuristic is the min-weight priority queue strategy keyed by a
// WeightFunc (spec §4.G "min-weight priority queue keyed by the weight
// visitor").
type Heuristic struct {
	pq     nodeHeap
	weight WeightFunc
}

// NewHeuristic returns an empty Heuristic waiting list using weight to
// order entries.
func NewHeuristic(weight WeightFunc) *Heuristic {
	return &Heuristic{weight: weight}
}

func (h *Heuristic) Add(id NodeID) {
	heap.Push(&h.pq, heapEntry{id: id, weight: h.weight(id)})
}

func (h *Heuristic) Next() (NodeID, bool) {
	if h.pq.Len() == 0 {
		return 0, false
	}
	e := heap.Pop(&h.pq).(heapEntry)
	return e.id, true
}

func (h *Heuristic) Size() int { return h.pq.Len() }

// HeuristicStack is spec §4.G's "stack with a staging priority queue": Add
// enqueues into the stage; Next, when the stage is non-empty, transfers the
// entire stage onto the stack in weight order (lowest weight pushed last,
// so it is popped first), then pops the stack. This gives DFS depth
// behaviour with weight-guided tie-breaking at each frontier burst. Per
// the spec §9 design note, the staging container and backing stack are
// kept as distinct fields rather than conflated into one structure.
type HeuristicStack struct {
	stage  nodeHeap
	stack  []NodeID
	weight WeightFunc
}

// NewHeuristicStack returns an empty HeuristicStack waiting list using
// weight to order each staged burst.
func NewHeuristicStack(weight WeightFunc) *HeuristicStack {
	return &HeuristicStack{weight: weight}
}

func (h *HeuristicStack) Add(id NodeID) {
	heap.Push(&h.stage, heapEntry{id: id, weight: h.weight(id)})
}

// flush drains the entire stage onto the stack so the lowest-weight staged
// entry ends on top (popped first): pop the stage in ascending-weight
// order, then push onto the stack highest weight first so the smallest
// lands last (on top).
func (h *HeuristicStack) flush() {
	var ascending []NodeID
	for h.stage.Len() > 0 {
		ascending = append(ascending, heap.Pop(&h.stage).(heapEntry).id)
	}
	for i := len(ascending) - 1; i >= 0; i-- {
		h.stack = append(h.stack, ascending[i])
	}
}

func (h *HeuristicStack) Next() (NodeID, bool) {
	if h.stage.Len() > 0 {
		h.flush()
	}
	n := len(h.stack)
	if n == 0 {
		return 0, false
	}
	id := h.stack[n-1]
	h.stack = h.stack[:n-1]
	return id, true
}

func (h *HeuristicStack) Size() int { return h.stage.Len() + len(h.stack) }

// Random and RandomStack are identical to Heuristic and HeuristicStack
// except weights are drawn from the PRNG passed to their constructor rather
// than the query weight visitor (spec §4.G). The PRNG is owned exclusively by the search
// kernel that constructs these strategies (spec §5's single-threaded
// ownership model), so a plain *rand.Rand needs no synchronization.

// Random is the randomised priority-queue variant.
type Random struct {
	pq  nodeHeap
	rng *rand.Rand
}

// NewRandom returns an empty Random waiting list drawing tie-break weights
// from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Add(id NodeID) {
	heap.Push(&r.pq, heapEntry{id: id, weight: r.rng.Int()})
}

func (r *Random) Next() (NodeID, bool) {
	if r.pq.Len() == 0 {
		return 0, false
	}
	return heap.Pop(&r.pq).(heapEntry).id, true
}

func (r *Random) Size() int { return r.pq.Len() }

// RandomStack is the randomised heuristic-stack variant.
type RandomStack struct {
	inner HeuristicStack
	rng   *rand.Rand
}

// NewRandomStack returns an empty RandomStack waiting list drawing
// tie-break weights from rng.
func NewRandomStack(rng *rand.Rand) *RandomStack {
	return &RandomStack{rng: rng}
}

func (rs *RandomStack) Add(id NodeID) {
	heap.Push(&rs.inner.stage, heapEntry{id: id, weight: rs.rng.Int()})
}

func (rs *RandomStack) Next() (NodeID, bool) { return rs.inner.Next() }
func (rs *RandomStack) Size() int            { return rs.inner.Size() }
