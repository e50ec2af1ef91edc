package waitlist

import "github.com/katalvlaran/tapnverify/marking"

// PassedSet is the deduplicated set of explored markings of spec §4.G:
// insert-or-lookup by fingerprint, stable under marking equality —
// inserting M then querying any M' with M == M' reports IsNew=false and
// returns M's canonical node.
//
// A fingerprint may collide for unequal markings (marking.Hash is a 64-bit
// hash, not a canonical key), so each bucket keeps every NodeID that
// hashed there and PassedSet.Lookup/Insert fall back to marking.Equals to
// disambiguate — this is the same bucket-of-candidates shape the teacher
// uses for its adjacency maps (core stores multiple parallel edges under
// one vertex-pair key).
type PassedSet struct {
	arena   *Arena
	buckets map[uint64][]NodeID
}

// NewPassedSet returns an empty passed set backed by arena.
func NewPassedSet(arena *Arena) *PassedSet {
	return &PassedSet{arena: arena, buckets: make(map[uint64][]NodeID)}
}

// Lookup returns the canonical NodeID for a marking equal to m, if any.
func (s *PassedSet) Lookup(m marking.Marking) (NodeID, bool) {
	for _, id := range s.buckets[m.Hash()] {
		if s.arena.Get(id).Item.Equals(m) {
			return id, true
		}
	}
	return 0, false
}

// Insert records item as explored, with the given parent trace link,
// unless an equal marking is already present. Returns the canonical
// NodeID and whether it was freshly inserted (spec §4.G: "returns
// (is_new, canonical_ptr)").
func (s *PassedSet) Insert(item marking.Marking, parent NodeID, hasParent bool) (id NodeID, isNew bool) {
	if existing, ok := s.Lookup(item); ok {
		return existing, false
	}
	id = s.arena.Alloc(item, parent, hasParent)
	h := item.Hash()
	s.buckets[h] = append(s.buckets[h], id)
	return id, true
}

// Size reports how many distinct markings have been inserted.
func (s *PassedSet) Size() int {
	total := 0
	for _, ids := range s.buckets {
		total += len(ids)
	}
	return total
}
