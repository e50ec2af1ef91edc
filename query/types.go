// Package query implements the small temporal query language of spec §3/§4.C:
// EF/AG quantifiers over boolean combinations of place-count comparisons,
// a negation-normal-form normaliser, an evaluator, and the weight visitors
// used by the heuristic waiting-list strategies (spec §4.D).
//
// Per the design note in spec §9 ("re-architect as a sum type over AST
// node shapes with match-dispatched functions; no dynamic dispatch is
// required"), Formula is one struct tagged by Kind rather than an
// interface hierarchy; every consumer (Normalise, Eval, Weight,
// LivenessWeight) is an ordinary recursive function over that tag, not a
// visitor method set.
package query

import "github.com/pkg/errors"

// ErrInvalidQuery indicates an Atomic formula references a place index
// outside the net it will be evaluated against (spec §6 error surface).
// This is the one "exceptional, fatal" error of spec §7: reported before
// the search loop starts, never recovered locally.
var ErrInvalidQuery = errors.New("query: place index out of range")

// Quantifier selects EF (exists a reachable state where body holds) or AG
// (body holds in every reachable state).
type Quantifier uint8

const (
	EF Quantifier = iota
	AG
)

// Op is an atomic comparison operator.
type Op uint8

const (
	Lt Op = iota
	Le
	Eq
	Ge
	Gt
)

// Complement returns the operator whose truth value is the negation of op
// for ALL operators except Eq, which has no single-operator complement in
// this 5-operator set — negating an Eq atom instead yields an Or of two
// atoms (Lt, Gt); see Normalise. Complement must not be called with Eq.
func (o Op) Complement() Op {
	switch o {
	case Lt:
		return Ge
	case Le:
		return Gt
	case Ge:
		return Lt
	case Gt:
		return Le
	default:
		panic("query: Eq has no single-operator complement")
	}
}

// Kind tags which variant of Formula is populated.
type Kind uint8

const (
	KAtomic Kind = iota
	KAnd
	KOr
	KNot
)

// Formula is a node in the query AST. Exactly the fields relevant to Kind
// are meaningful; see the Atomic/And/Or/Not constructors.
type Formula struct {
	Kind  Kind
	Place int
	Op    Op
	N     int
	Left  *Formula
	Right *Formula
	Child *Formula
}

// Atomic builds a leaf `place ⋈ n` proposition.
func Atomic(place int, op Op, n int) *Formula {
	return &Formula{Kind: KAtomic, Place: place, Op: op, N: n}
}

// And builds a conjunction.
func And(l, r *Formula) *Formula { return &Formula{Kind: KAnd, Left: l, Right: r} }

// Or builds a disjunction.
func Or(l, r *Formula) *Formula { return &Formula{Kind: KOr, Left: l, Right: r} }

// Not builds a negation.
func Not(f *Formula) *Formula { return &Formula{Kind: KNot, Child: f} }

// Query pairs a quantifier with its body formula.
type Query struct {
	Quantifier Quantifier
	Body       *Formula
}

// Validate walks f and reports ErrInvalidQuery if any Atomic references a
// place index outside [0, numPlaces).
func Validate(f *Formula, numPlaces int) error {
	if f == nil {
		return nil
	}
	switch f.Kind {
	case KAtomic:
		if f.Place < 0 || f.Place >= numPlaces {
			return errors.Wrapf(ErrInvalidQuery, "place %d (net has %d places)", f.Place, numPlaces)
		}
		return nil
	case KNot:
		return Validate(f.Child, numPlaces)
	case KAnd, KOr:
		if err := Validate(f.Left, numPlaces); err != nil {
			return err
		}
		return Validate(f.Right, numPlaces)
	}
	return nil
}
