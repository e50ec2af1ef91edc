// Package dart implements the time-dart state-compression generator of
// spec §4.F: for a marking M, it computes maxDelay(M) — the largest delay
// that leaves the enabled-transition set unchanged and violates no
// invariant — and emits discrete firings only at the two extremal points
// of [0, maxDelay], instead of a successor per discrete time unit.
//
// Because maxDelay is computed as the tightest per-(place,arc) bound at
// which *any* transition's enabledness could change, the full enabled-set
// is constant across the whole interval by construction: so whether an
// urgent transition is enabled is itself constant over [0, maxDelay], and
// the urgency rule collapses to a single check at w=0 (spec §4.F: "if any
// urgent transition is enabled at some delay w* <= maxDelay, no w > w*
// need ever be explored from this dart").
package dart

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/succ"
	"github.com/katalvlaran/tapnverify/tapn"
)

// Unbounded is the MaxDelay sentinel meaning no finite delay would ever
// change enabledness or violate an invariant from this marking.
const Unbounded = math.MaxInt

// errInvalidPassage indicates a requested passage-continuation wait falls
// outside (d.Wait, maxDelay].
var errInvalidPassage = errors.New("dart: passage continuation wait out of range")

// Dart is the compressed state (base marking, wait) of spec §3.
type Dart struct {
	Base marking.Marking
	Wait int
}

// MaxDelay computes the largest dt (possibly Unbounded) such that
// m.Delay(w) for every w in [0, dt] enables exactly the transitions
// enabled at m.Delay(0) and violates no place invariant.
func MaxDelay(net *tapn.TAPN, m marking.Marking) int {
	bound := Unbounded

	// Invariant headroom: no token may be delayed past its place's bound.
	for p, place := range net.Places {
		if place.Invariant.Inf {
			continue
		}
		for _, tok := range m.TokensIn(p) {
			room := place.Invariant.MaxAge() - tok.Age
			if room < bound {
				bound = room
			}
		}
	}

	// Arc-interval headroom: no eligible token may age out of an arc's
	// interval, and no ineligible (too-young) token may age into one,
	// before dt reaches bound.
	for _, tr := range net.Transitions {
		for _, a := range tr.Inputs {
			boundIntervalArc(m, a.Place, a.Interval, &bound)
		}
		for _, a := range tr.Transports {
			boundIntervalArc(m, a.Source, a.Interval, &bound)
			// A transport arc also loses an eligible token once its age
			// outgrows the destination place's invariant.
			if dst := net.Places[a.Dest].Invariant; !dst.Inf {
				for _, tok := range m.TokensIn(a.Source) {
					if a.Interval.Contains(tok.Age) && dst.Holds(tok.Age) {
						if room := dst.MaxAge() - tok.Age; room < bound {
							bound = room
						}
					}
				}
			}
		}
	}

	if bound < 0 {
		bound = 0
	}
	return bound
}

func boundIntervalArc(m marking.Marking, place int, iv tapn.Interval, bound *int) {
	for _, tok := range m.TokensIn(place) {
		switch {
		case iv.Contains(tok.Age):
			if !iv.HiInf {
				if room := iv.Hi - tok.Age; room < *bound {
					*bound = room
				}
			}
		case tok.Age < iv.Lo:
			if room := iv.Lo - tok.Age - 1; room < *bound {
				*bound = room
			}
		default:
			// Already past Hi: aging only increases age, so this token
			// never re-enters the interval. No constraint.
		}
	}
}

// AnyUrgentEnabled reports whether some urgent transition is enabled in m.
func AnyUrgentEnabled(net *tapn.TAPN, m marking.Marking) bool {
	for i, tr := range net.Transitions {
		if tr.Urgent && succ.Enabled(net, m, i) {
			return true
		}
	}
	return false
}

// Firing is one discrete successor produced from a dart: the transition
// fired, the delay at which it fired, and the resulting marking.
type Firing struct {
	Transition int
	Delay      int
	Result     marking.Marking
}

// Discrete returns the discrete firings of a dart rooted at m: every
// successor of every transition, fired at w=0 and, unless an urgent
// transition is enabled at w=0 or maxDelay is 0 or Unbounded, also at
// w=maxDelay.
// Delaying m by w first (per spec §4.F: "every successor produced by 4.E
// applied to M.delay(w)").
//
// The second return value is the number of candidate delays dropped
// because m.Delay(w, chk) violated a place invariant at that boundary
// (spec §7: "every dropped successor increments a counter exposed in
// statistics") — the caller is expected to fold it into its own Stats.
func Discrete(net *tapn.TAPN, m marking.Marking, chk marking.InvariantChecker) ([]Firing, int, error) {
	maxDelay := MaxDelay(net, m)

	ws := []int{0}
	if !AnyUrgentEnabled(net, m) && maxDelay > 0 && maxDelay != Unbounded {
		ws = append(ws, maxDelay)
	}

	var out []Firing
	dropped := 0
	for _, w := range ws {
		delayed, err := m.Delay(w, chk)
		if err != nil {
			// Invariant violation at this boundary: spec §4.E treats this
			// as "no successor here", dropped but counted (§7).
			dropped++
			continue
		}
		for t := range net.Transitions {
			for _, succM := range succ.Successors(net, delayed, t) {
				out = append(out, Firing{Transition: t, Delay: w, Result: succM})
			}
		}
	}
	return out, dropped, nil
}

// PassageContinuation returns the dart (m, wPrime) representing "wait
// strictly longer than w before firing anything", for wPrime in
// (w, maxDelay]. This edge is only materialized on demand by a caller
// (spec §4.F: "an edge to (M, w') with w' > w only when required by
// liveness queries"); dart itself never auto-expands it, and
// search.Engine does not call it in any mode.
func PassageContinuation(net *tapn.TAPN, d Dart, wPrime int) (Dart, error) {
	maxDelay := MaxDelay(net, d.Base)
	if wPrime <= d.Wait {
		return Dart{}, errInvalidPassage
	}
	if maxDelay != Unbounded && wPrime > maxDelay {
		return Dart{}, errInvalidPassage
	}
	return Dart{Base: d.Base, Wait: wPrime}, nil
}
