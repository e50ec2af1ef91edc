// Package tapn defines the immutable description of a Timed-Arc Petri Net:
// places, transitions, and the four arc variants (input, output, transport,
// inhibitor), each with its interval/multiplicity/weight, plus per-place
// invariants and per-transition urgency and SMC firing metadata.
//
// A TAPN is built incrementally via AddPlace/AddTransition/AddXArc and then
// frozen with Freeze; every exported mutator returns ErrFrozen once the net
// is frozen. This mirrors the teacher's (lvlath/core) pattern of a mutable
// builder phase followed by read-only use, but drops the RWMutex: per the
// concurrency model, a TAPN is read by exactly one search kernel at a time
// (spec §5), so no internal locking is required.
package tapn

import (
	"math"

	"github.com/pkg/errors"
)

// Sentinel errors for TAPN construction and lookup.
var (
	// ErrFrozen indicates a mutating call was made on a net after Freeze.
	ErrFrozen = errors.New("tapn: net is frozen")

	// ErrUnknownPlace indicates a place index outside [0, len(Places)).
	ErrUnknownPlace = errors.New("tapn: unknown place index")

	// ErrUnknownTransition indicates a transition index outside [0, len(Transitions)).
	ErrUnknownTransition = errors.New("tapn: unknown transition index")

	// ErrBadMultiplicity indicates a non-positive arc multiplicity.
	ErrBadMultiplicity = errors.New("tapn: multiplicity must be >= 1")

	// ErrBadInterval indicates a negative lower bound, or lo > hi on a
	// finite interval.
	ErrBadInterval = errors.New("tapn: interval lower bound exceeds upper bound")

	// ErrBadInvariant indicates a negative invariant bound.
	ErrBadInvariant = errors.New("tapn: invariant bound must be >= 0")
)

// PlaceKind classifies a place. Dead places are peripheral markers a
// client (e.g. the workflow soundness classifier) may retype to Standard
// before running an analysis that does not understand Dead places; the
// TAPN is never mutated in place for this — callers clone first.
type PlaceKind uint8

const (
	// Standard is an ordinary place.
	Standard PlaceKind = iota
	// Dead marks a place as structurally inert for some external analysis.
	Dead
)

// Invariant is a place's per-token age upper bound: either unbounded (Inf)
// or an integer bound with a Strict (<) or non-strict (<=) comparison.
type Invariant struct {
	Inf    bool // true => no upper bound; Bound/Strict are ignored.
	Bound  int  // upper age bound, meaningful only when !Inf.
	Strict bool // true => age < Bound; false => age <= Bound.
}

// InfInvariant is the unbounded invariant (age ≤ ∞), the default for a
// place that was not given an explicit bound.
var InfInvariant = Invariant{Inf: true}

// Holds reports whether age satisfies the invariant.
func (iv Invariant) Holds(age int) bool {
	if iv.Inf {
		return true
	}
	if iv.Strict {
		return age < iv.Bound
	}
	return age <= iv.Bound
}

// MaxAge returns the largest age the invariant admits, or math.MaxInt if
// unbounded. Used by delay-bound computations in dart.
func (iv Invariant) MaxAge() int {
	if iv.Inf {
		return math.MaxInt
	}
	if iv.Strict {
		return iv.Bound - 1
	}
	return iv.Bound
}

// Place is an immutable place description identified by a stable integer
// Index (its position in TAPN.Places).
type Place struct {
	Index     int
	Name      string
	Invariant Invariant
	Kind      PlaceKind
}

// Interval is an arc's time window [Lo, Hi] (Hi may be unbounded via
// HiInf). Both bounds are inclusive, discrete, non-negative integers.
type Interval struct {
	Lo    int
	Hi    int
	HiInf bool
}

// Unbounded is the interval [0, ∞).
var Unbounded = Interval{Lo: 0, HiInf: true}

// Contains reports whether age lies within the interval.
func (iv Interval) Contains(age int) bool {
	if age < iv.Lo {
		return false
	}
	if iv.HiInf {
		return true
	}
	return age <= iv.Hi
}

// InputArc is an (place -> transition) arc: tokens aged within Interval
// are eligible for consumption, Mult of them per firing.
type InputArc struct {
	Place    int
	Interval Interval
	Mult     int
}

// OutputArc is a (transition -> place) arc producing Mult fresh age-0
// tokens per firing.
type OutputArc struct {
	Place int
	Mult  int
}

// TransportArc moves a single logical token from Source to Dest, age
// preserved, subject to both the arc Interval and the destination place's
// invariant.
type TransportArc struct {
	Source   int
	Dest     int
	Interval Interval
	Mult     int
}

// InhibitorArc blocks firing of its transition whenever the source place
// holds at least Weight tokens.
type InhibitorArc struct {
	Place  int
	Weight int
}

// Distribution kinds recognised for SMC firing-time sampling (spec §4.I).
// Transition stores the kind tag plus the raw parameters that smc.Sample
// reads directly, without tapn depending on smc (smc depends on tapn, not
// vice versa).
type DistKind uint8

const (
	// DistConstant is a fixed point mass; the default when unspecified.
	DistConstant DistKind = iota
	DistUniform
	DistExponential
	DistNormal
	DistGamma
)

// FiringDist describes a transition's stochastic firing-delay distribution
// for SMC. The zero value is Constant(0); DefaultFiringDist (Constant(1))
// is what AddTransition assigns.
type FiringDist struct {
	Kind     DistKind
	A, B     float64 // meaning depends on Kind: Constant{A=value}, Uniform{A=lo,B=hi}, Exponential{A=lambda}, Normal{A=mu,B=sigma}, Gamma{A=k,B=theta}.
	Discrete bool
}

// DefaultFiringDist is Constant(1), the spec's fallback for transitions
// with no configured distribution.
var DefaultFiringDist = FiringDist{Kind: DistConstant, A: 1}

// Transition is a named transition with its preset/postset/transport/
// inhibitor arcs and SMC/urgency flags.
type Transition struct {
	Index      int
	Name       string
	Inputs     []InputArc
	Outputs    []OutputArc
	Transports []TransportArc
	Inhibitors []InhibitorArc
	Urgent     bool
	Dist       FiringDist
	Weight     float64 // SMC tie-break weight; must be >= 0.
}

// TAPN is the immutable (after Freeze) description of a net: places and
// transitions indexed by position, consistent with spec §3's "initial
// marking's place indices are a subset of the TAPN's place indices".
type TAPN struct {
	Places      []Place
	Transitions []Transition
	frozen      bool
}

// New returns an empty, mutable TAPN.
func New() *TAPN {
	return &TAPN{}
}

// Frozen reports whether Freeze has been called.
func (n *TAPN) Frozen() bool { return n.frozen }

// Freeze marks the net read-only; subsequent mutators return ErrFrozen.
func (n *TAPN) Freeze() { n.frozen = true }

// Place returns the place at idx, or an error if idx is out of range.
func (n *TAPN) Place(idx int) (Place, error) {
	if idx < 0 || idx >= len(n.Places) {
		return Place{}, errors.Wrapf(ErrUnknownPlace, "index %d", idx)
	}
	return n.Places[idx], nil
}

// Transition returns the transition at idx, or an error if idx is out of range.
func (n *TAPN) Transition(idx int) (Transition, error) {
	if idx < 0 || idx >= len(n.Transitions) {
		return Transition{}, errors.Wrapf(ErrUnknownTransition, "index %d", idx)
	}
	return n.Transitions[idx], nil
}

// NumPlaces and NumTransitions report the size of the net.
func (n *TAPN) NumPlaces() int      { return len(n.Places) }
func (n *TAPN) NumTransitions() int { return len(n.Transitions) }
