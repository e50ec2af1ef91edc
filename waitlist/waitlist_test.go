package waitlist_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/waitlist"
)

func TestArenaTraceReturnsRootFirstOrder(t *testing.T) {
	a := waitlist.NewArena()
	root := a.Alloc(marking.New(1).Add(0, 0, 1), 0, false)
	mid := a.Alloc(marking.New(1).Add(0, 1, 1), root, true)
	leaf := a.Alloc(marking.New(1).Add(0, 2, 1), mid, true)

	trace := a.Trace(leaf)
	require.Len(t, trace, 3)
	assert.Equal(t, 0, trace[0].TokensIn(0)[0].Age)
	assert.Equal(t, 1, trace[1].TokensIn(0)[0].Age)
	assert.Equal(t, 2, trace[2].TokensIn(0)[0].Age)
}

func TestPassedSetStableUnderEquality(t *testing.T) {
	a := waitlist.NewArena()
	ps := waitlist.NewPassedSet(a)

	m1 := marking.New(2).Add(0, 1, 2).Add(1, 0, 1)
	m2 := marking.New(2).Add(1, 0, 1).Add(0, 1, 2) // same multiset, built in different order

	_, isNew := ps.Insert(m1, 0, false)
	assert.True(t, isNew)

	_, isNew2 := ps.Insert(m2, 0, false)
	assert.False(t, isNew2, "inserting an equal marking must not be new")

	_, found := ps.Lookup(m2)
	assert.True(t, found)
	assert.Equal(t, 1, ps.Size())
}

func TestFIFOOrdersBreadthFirst(t *testing.T) {
	q := waitlist.NewFIFO()
	q.Add(1)
	q.Add(2)
	q.Add(3)
	var order []waitlist.NodeID
	for q.Size() > 0 {
		id, _ := q.Next()
		order = append(order, id)
	}
	assert.Equal(t, []waitlist.NodeID{1, 2, 3}, order)
}

func TestLIFOOrdersDepthFirst(t *testing.T) {
	s := waitlist.NewLIFO()
	s.Add(1)
	s.Add(2)
	s.Add(3)
	var order []waitlist.NodeID
	for s.Size() > 0 {
		id, _ := s.Next()
		order = append(order, id)
	}
	assert.Equal(t, []waitlist.NodeID{3, 2, 1}, order)
}

func TestHeuristicOrdersByWeightAscending(t *testing.T) {
	weights := map[waitlist.NodeID]int{1: 5, 2: 1, 3: 3}
	h := waitlist.NewHeuristic(func(id waitlist.NodeID) int { return weights[id] })
	h.Add(1)
	h.Add(2)
	h.Add(3)
	var order []waitlist.NodeID
	for h.Size() > 0 {
		id, _ := h.Next()
		order = append(order, id)
	}
	assert.Equal(t, []waitlist.NodeID{2, 3, 1}, order)
}

func TestHeuristicStackPopsLowestWeightOfEachBurstFirst(t *testing.T) {
	weights := map[waitlist.NodeID]int{1: 5, 2: 1, 3: 3}
	h := waitlist.NewHeuristicStack(func(id waitlist.NodeID) int { return weights[id] })
	h.Add(1)
	h.Add(2)
	h.Add(3)
	// First burst: ascending weight is 2,3,1 -> lowest (2) ends on top of stack.
	id, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, waitlist.NodeID(2), id)

	// Next burst continues draining the same staged burst in weight order.
	id, _ = h.Next()
	assert.Equal(t, waitlist.NodeID(3), id)
	id, _ = h.Next()
	assert.Equal(t, waitlist.NodeID(1), id)
	assert.Equal(t, 0, h.Size())
}

func TestRandomDrainsEveryAddedItemExactlyOnce(t *testing.T) {
	r := waitlist.NewRandom(rand.New(rand.NewSource(42)))
	for i := waitlist.NodeID(0); i < 10; i++ {
		r.Add(i)
	}
	seen := make(map[waitlist.NodeID]bool)
	for r.Size() > 0 {
		id, _ := r.Next()
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}

func TestRandomStackDrainsEveryAddedItemExactlyOnce(t *testing.T) {
	rs := waitlist.NewRandomStack(rand.New(rand.NewSource(7)))
	for i := waitlist.NodeID(0); i < 10; i++ {
		rs.Add(i)
	}
	seen := make(map[waitlist.NodeID]bool)
	for rs.Size() > 0 {
		id, _ := rs.Next()
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}

func TestEmptyWaitingListsReportFalse(t *testing.T) {
	lists := []waitlist.WaitingList{
		waitlist.NewFIFO(),
		waitlist.NewLIFO(),
		waitlist.NewHeuristic(func(waitlist.NodeID) int { return 0 }),
		waitlist.NewHeuristicStack(func(waitlist.NodeID) int { return 0 }),
		waitlist.NewRandom(rand.New(rand.NewSource(1))),
		waitlist.NewRandomStack(rand.New(rand.NewSource(1))),
	}
	for _, l := range lists {
		_, ok := l.Next()
		assert.False(t, ok)
		assert.Equal(t, 0, l.Size())
	}
}
