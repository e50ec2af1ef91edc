// Package succ implements the successor generator of spec §4.E: given a
// marking and a transition, the (possibly empty) set of markings reachable
// by firing that transition once at the marking's current ages.
//
// The spec describes the per-arc combinatorial choice as a "modification
// vector" over token indices, incremented odometer-style. Because tokens
// of equal age are coalesced (marking.Marking never stores two entries at
// the same age), the index-level view collapses to an equivalent and
// simpler one: for each arc, how many tokens to take *at each eligible
// age*, summing to the arc's multiplicity. This file enumerates exactly
// that, arc by arc, threading a single shared per-place remaining-token
// pool through the recursion — which is what correctly produces exactly
// one successor (not a spurious duplicate) when two arcs of the same
// transition draw from the same place, as spec §8 scenario S4 requires:
// both arcs see the same shared pool, so there is only one way to account
// for two indistinguishable same-age tokens, never two.
//
// Grounded on flow/dinic.go's staged, numbered-step algorithm structure
// and dalzilio-nets' Pre/Delta/Inhib atom model for per-arc enabling.
package succ

import (
	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/tapn"
)

// ageCount is one (age, available-count) bucket within a place's eligible
// tokens for a particular arc.
type ageCount struct {
	age, count int
}

// arcSpec is the uniform view succ enumerates over: a source place, the
// arc's interval, multiplicity, and — for transport arcs — a destination
// place to move consumed tokens into (dest < 0 for plain input arcs).
type arcSpec struct {
	source   int
	interval tapn.Interval
	mult     int
	dest     int // -1 for input arcs
}

// Successors returns every marking reachable by firing transition t once
// in m. It never mutates m (spec §8 property 4) and never errors: firing
// simply yields zero or more markings (spec §4.E "generation is pure").
func Successors(net *tapn.TAPN, m marking.Marking, t int) []marking.Marking {
	tr := net.Transitions[t]

	// Step 1: inhibitor check.
	for _, inh := range tr.Inhibitors {
		if m.Count(inh.Place) >= inh.Weight {
			return nil
		}
	}

	// Step 2: build the uniform arc list (inputs then transports, in
	// their definition order) and, per arc, its eligible (age, count)
	// buckets. Bail out immediately if any arc cannot meet its
	// multiplicity at all.
	arcs := make([]arcSpec, 0, len(tr.Inputs)+len(tr.Transports))
	for _, a := range tr.Inputs {
		arcs = append(arcs, arcSpec{source: a.Place, interval: a.Interval, mult: a.Mult, dest: -1})
	}
	for _, a := range tr.Transports {
		arcs = append(arcs, arcSpec{source: a.Source, interval: a.Interval, mult: a.Mult, dest: a.Dest})
	}

	// Shared remaining-token pool per place, populated lazily the first
	// time any arc touches that place, so two arcs reading the same
	// place see (and jointly deplete) the same pool.
	pools := make(map[int][]ageCount)
	poolOf := func(place int) []ageCount {
		if p, ok := pools[place]; ok {
			return p
		}
		toks := m.TokensIn(place)
		p := make([]ageCount, len(toks))
		for i, tok := range toks {
			p[i] = ageCount{age: tok.Age, count: tok.Count}
		}
		pools[place] = p
		return p
	}

	for _, a := range arcs {
		eligible := eligibleBuckets(poolOf(a.source), a.interval, destFilter(net, a.dest))
		if totalAvailable(eligible) < a.mult {
			return nil
		}
	}

	// Step 3+4: enumerate joint combinations across all arcs and, for
	// each, build the resulting marking.
	var out []marking.Marking
	var consumption []map[int]int // per-arc index -> age -> count chosen

	var recurse func(idx int)
	recurse = func(idx int) {
		if idx == len(arcs) {
			out = append(out, apply(m, tr, arcs, consumption))
			return
		}
		a := arcs[idx]
		eligible := eligibleBuckets(poolOf(a.source), a.interval, destFilter(net, a.dest))
		enumerateCombinations(eligible, a.mult, func(choice map[int]int) {
			deplete(pools, a.source, choice)
			consumption = append(consumption, choice)
			recurse(idx + 1)
			consumption = consumption[:len(consumption)-1]
			replenish(pools, a.source, choice)
		})
	}
	recurse(0)
	return out
}

// Enabled reports whether transition t has at least one legal firing in m.
// It checks each arc's token count without materializing successors,
// except when two or more of t's arcs draw from the same place: their
// joint demand is then settled by Successors. Used by dart's urgency check
// and by smc's choice of enabled transitions.
func Enabled(net *tapn.TAPN, m marking.Marking, t int) bool {
	tr := net.Transitions[t]
	for _, inh := range tr.Inhibitors {
		if m.Count(inh.Place) >= inh.Weight {
			return false
		}
	}
	for _, a := range tr.Inputs {
		toks := m.TokensIn(a.Place)
		if totalInInterval(toks, a.Interval, nil) < a.Mult {
			return false
		}
	}
	for _, a := range tr.Transports {
		toks := m.TokensIn(a.Source)
		if totalInInterval(toks, a.Interval, destFilter(net, a.Dest)) < a.Mult {
			return false
		}
	}
	// Arcs sharing a source place compete for its tokens, which the
	// per-arc counts above cannot see; settle that case exactly.
	seen := make(map[int]bool, len(tr.Inputs)+len(tr.Transports))
	for _, a := range tr.Inputs {
		if seen[a.Place] {
			return len(Successors(net, m, t)) > 0
		}
		seen[a.Place] = true
	}
	for _, a := range tr.Transports {
		if seen[a.Source] {
			return len(Successors(net, m, t)) > 0
		}
		seen[a.Source] = true
	}
	return true
}

func totalInInterval(toks []marking.Token, iv tapn.Interval, extra func(int) bool) int {
	total := 0
	for _, tok := range toks {
		if !iv.Contains(tok.Age) {
			continue
		}
		if extra != nil && !extra(tok.Age) {
			continue
		}
		total += tok.Count
	}
	return total
}

// destFilter returns a predicate an eligible age must additionally satisfy
// for a transport arc (the destination place's invariant), or nil for a
// plain input arc (dest < 0).
func destFilter(net *tapn.TAPN, dest int) func(age int) bool {
	if dest < 0 {
		return nil
	}
	inv := net.Places[dest].Invariant
	return func(age int) bool { return inv.Holds(age) }
}

// eligibleBuckets filters pool to ages within iv (and, if extra is
// non-nil, also satisfying extra), preserving ascending order.
func eligibleBuckets(pool []ageCount, iv tapn.Interval, extra func(int) bool) []ageCount {
	out := make([]ageCount, 0, len(pool))
	for _, b := range pool {
		if b.count <= 0 {
			continue
		}
		if !iv.Contains(b.age) {
			continue
		}
		if extra != nil && !extra(b.age) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func totalAvailable(buckets []ageCount) int {
	total := 0
	for _, b := range buckets {
		total += b.count
	}
	return total
}

// enumerateCombinations calls emit once per distinct way to choose exactly
// total tokens from buckets (ascending age order), respecting each
// bucket's count. Scans low age to high, advancing the rightmost position
// first and carrying left — the odometer tie-break of spec §4.E.3,
// expressed directly over (age, count) buckets instead of token indices.
func enumerateCombinations(buckets []ageCount, total int, emit func(choice map[int]int)) {
	if total == 0 {
		emit(map[int]int{})
		return
	}
	var rec func(i, remaining int, acc map[int]int)
	rec = func(i, remaining int, acc map[int]int) {
		if remaining == 0 {
			cp := make(map[int]int, len(acc))
			for k, v := range acc {
				cp[k] = v
			}
			emit(cp)
			return
		}
		if i >= len(buckets) {
			return
		}
		// Remaining capacity in buckets[i:] must be able to cover `remaining`.
		capRest := 0
		for j := i; j < len(buckets); j++ {
			capRest += buckets[j].count
		}
		if capRest < remaining {
			return
		}
		maxTake := buckets[i].count
		if maxTake > remaining {
			maxTake = remaining
		}
		for take := maxTake; take >= 0; take-- {
			if take > 0 {
				acc[buckets[i].age] = take
			}
			rec(i+1, remaining-take, acc)
			delete(acc, buckets[i].age)
		}
	}
	rec(0, total, map[int]int{})
}

func deplete(pools map[int][]ageCount, place int, choice map[int]int) {
	pool := pools[place]
	for i := range pool {
		if n, ok := choice[pool[i].age]; ok {
			pool[i].count -= n
		}
	}
}

func replenish(pools map[int][]ageCount, place int, choice map[int]int) {
	pool := pools[place]
	for i := range pool {
		if n, ok := choice[pool[i].age]; ok {
			pool[i].count += n
		}
	}
}

// apply builds the successor marking for one full joint combination:
// remove consumed input-arc tokens, move transport-arc tokens to their
// destinations preserving age, and add fresh age-0 output tokens.
func apply(m marking.Marking, tr tapn.Transition, arcs []arcSpec, consumption []map[int]int) marking.Marking {
	out := m.Clone()
	for i, a := range arcs {
		for age, cnt := range consumption[i] {
			var err error
			out, err = out.Remove(a.source, age, cnt)
			if err != nil {
				panic("succ: internal combinatorics selected more tokens than available")
			}
			if a.dest >= 0 {
				out = out.Add(a.dest, age, cnt)
			}
		}
	}
	for _, o := range tr.Outputs {
		out = out.Add(o.Place, 0, o.Mult)
	}
	return out
}
