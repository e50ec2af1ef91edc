// Package waitlist implements the passed set and pluggable waiting-list
// strategies of spec §4.G: a deduplicated set of explored markings and a
// frontier of pending ones, ordered by one of FIFO/LIFO/Heuristic/
// HeuristicStack/Random/RandomStack.
//
// Per the spec §9 design note ("weak back-references in the marking DAG"),
// markings never hold a parent pointer themselves: every marking lives in
// an Arena, a dense vector owned by one search kernel for its lifetime, and
// parent links are NodeID indices into that same arena. This makes the DAG
// of explored states ownership-free (an index, not a pointer) and its
// teardown O(1) — discarding the Arena discards everything at once.
//
// Every node's payload field is named Item (spec §9's other open question:
// "unify on a single field and reject mixed usage at compile time" — Node
// has exactly one payload field, so there is nothing left to mix up).
package waitlist

import "github.com/katalvlaran/tapnverify/marking"

// NodeID indexes a node within an Arena. Arena.Alloc returns IDs starting
// at 0, so the zero value is also the first allocated node; callers
// distinguish "no parent" via the separate HasParent flag on Node rather
// than relying on NodeID's zero value.
type NodeID int

// Node is one arena-resident entry: a marking and its trace back-link.
type Node struct {
	Item      marking.Marking
	Parent    NodeID
	HasParent bool
	Depth     int
}

// Arena is the dense, append-only store of every marking reached during one
// search kernel's lifetime. It is owned exclusively by that kernel (spec
// §5: "single-threaded and cooperative... the search kernel... owns the
// entire passed set, waiting list"), so no synchronization is needed.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc appends a new node and returns its ID. parent/hasParent record the
// trace back-link (spec §3: "a back-reference to its parent... such links
// form a DAG that outlives individual markings only via a central store").
func (a *Arena) Alloc(item marking.Marking, parent NodeID, hasParent bool) NodeID {
	depth := 0
	if hasParent {
		depth = a.nodes[parent].Depth + 1
	}
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{Item: item, Parent: parent, HasParent: hasParent, Depth: depth})
	return id
}

// Get returns the node stored at id.
func (a *Arena) Get(id NodeID) Node {
	return a.nodes[id]
}

// Len reports how many nodes have been allocated.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Trace walks the parent chain from id back to the root and returns the
// markings in forward (root-first) order, for verdict trace reconstruction
// (spec §4.H "Verdict... trace").
func (a *Arena) Trace(id NodeID) []marking.Marking {
	var rev []marking.Marking
	cur := id
	for {
		n := a.nodes[cur]
		rev = append(rev, n.Item)
		if !n.HasParent {
			break
		}
		cur = n.Parent
	}
	out := make([]marking.Marking, len(rev))
	for i, m := range rev {
		out[len(rev)-1-i] = m
	}
	return out
}
