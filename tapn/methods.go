package tapn

import "github.com/pkg/errors"

// AddPlace appends a new place with the given name and invariant, returning
// its index. Complexity: O(1) amortized.
func (n *TAPN) AddPlace(name string, inv Invariant) (int, error) {
	if n.frozen {
		return 0, ErrFrozen
	}
	if !inv.Inf && inv.Bound < 0 {
		return 0, ErrBadInvariant
	}
	idx := len(n.Places)
	n.Places = append(n.Places, Place{Index: idx, Name: name, Invariant: inv, Kind: Standard})
	return idx, nil
}

// AddTransition appends a new transition with the given name, returning its
// index. Arcs and flags are attached afterward via the AddXArc/SetX calls.
func (n *TAPN) AddTransition(name string) (int, error) {
	if n.frozen {
		return 0, ErrFrozen
	}
	idx := len(n.Transitions)
	n.Transitions = append(n.Transitions, Transition{Index: idx, Name: name, Dist: DefaultFiringDist})
	return idx, nil
}

// checkTransition, checkPlace and checkInterval are the shared arc
// preconditions: transition exists, place exists, interval is well-formed.
func (n *TAPN) checkTransition(t int) error {
	if t < 0 || t >= len(n.Transitions) {
		return errors.Wrapf(ErrUnknownTransition, "index %d", t)
	}
	return nil
}

func (n *TAPN) checkPlace(p int) error {
	if p < 0 || p >= len(n.Places) {
		return errors.Wrapf(ErrUnknownPlace, "index %d", p)
	}
	return nil
}

func checkInterval(iv Interval) error {
	if iv.Lo < 0 {
		return ErrBadInterval
	}
	if !iv.HiInf && iv.Hi < iv.Lo {
		return ErrBadInterval
	}
	return nil
}

// AddInputArc attaches an input arc (place -> t) to transition t.
func (n *TAPN) AddInputArc(place, t int, interval Interval, mult int) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkPlace(place); err != nil {
		return err
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	if mult < 1 {
		return ErrBadMultiplicity
	}
	if err := checkInterval(interval); err != nil {
		return err
	}
	n.Transitions[t].Inputs = append(n.Transitions[t].Inputs, InputArc{Place: place, Interval: interval, Mult: mult})
	return nil
}

// AddOutputArc attaches an output arc (t -> place) to transition t.
func (n *TAPN) AddOutputArc(t, place int, mult int) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	if err := n.checkPlace(place); err != nil {
		return err
	}
	if mult < 1 {
		return ErrBadMultiplicity
	}
	n.Transitions[t].Outputs = append(n.Transitions[t].Outputs, OutputArc{Place: place, Mult: mult})
	return nil
}

// AddTransportArc attaches a transport arc (source ->t-> dest) to transition t.
func (n *TAPN) AddTransportArc(source, t, dest int, interval Interval, mult int) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkPlace(source); err != nil {
		return err
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	if err := n.checkPlace(dest); err != nil {
		return err
	}
	if mult < 1 {
		return ErrBadMultiplicity
	}
	if err := checkInterval(interval); err != nil {
		return err
	}
	n.Transitions[t].Transports = append(n.Transitions[t].Transports, TransportArc{Source: source, Dest: dest, Interval: interval, Mult: mult})
	return nil
}

// AddInhibitorArc attaches an inhibitor arc (place -| t) to transition t.
func (n *TAPN) AddInhibitorArc(place, t int, weight int) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkPlace(place); err != nil {
		return err
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	if weight < 1 {
		return ErrBadMultiplicity
	}
	n.Transitions[t].Inhibitors = append(n.Transitions[t].Inhibitors, InhibitorArc{Place: place, Weight: weight})
	return nil
}

// SetUrgent marks transition t urgent (spec §3, §4.F urgency rule).
func (n *TAPN) SetUrgent(t int, urgent bool) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	n.Transitions[t].Urgent = urgent
	return nil
}

// SetFiringDist sets transition t's SMC firing-delay distribution.
func (n *TAPN) SetFiringDist(t int, dist FiringDist) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	n.Transitions[t].Dist = dist
	return nil
}

// SetWeight sets transition t's SMC tie-break weight (must be >= 0).
func (n *TAPN) SetWeight(t int, weight float64) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkTransition(t); err != nil {
		return err
	}
	if weight < 0 {
		return errors.New("tapn: weight must be >= 0")
	}
	n.Transitions[t].Weight = weight
	return nil
}

// RetypePlace changes a place's Kind. Per DESIGN.md's Open Question
// resolution, callers that need a retyped view for analysis (e.g. the
// workflow soundness classifier) must call CloneRetyped instead of
// mutating a shared net in place once other code may be holding it; this
// setter remains for net-construction time only and is rejected after
// Freeze like every other mutator.
func (n *TAPN) RetypePlace(p int, kind PlaceKind) error {
	if n.frozen {
		return ErrFrozen
	}
	if err := n.checkPlace(p); err != nil {
		return err
	}
	n.Places[p].Kind = kind
	return nil
}

// CloneRetyped returns a deep, frozen copy of n with every place of kind
// `from` retyped to `to`. The receiver is never mutated.
func (n *TAPN) CloneRetyped(from, to PlaceKind) *TAPN {
	out := &TAPN{
		Places:      make([]Place, len(n.Places)),
		Transitions: make([]Transition, len(n.Transitions)),
		frozen:      true,
	}
	copy(out.Places, n.Places)
	for i := range out.Places {
		if out.Places[i].Kind == from {
			out.Places[i].Kind = to
		}
	}
	for i, t := range n.Transitions {
		nt := t
		nt.Inputs = append([]InputArc(nil), t.Inputs...)
		nt.Outputs = append([]OutputArc(nil), t.Outputs...)
		nt.Transports = append([]TransportArc(nil), t.Transports...)
		nt.Inhibitors = append([]InhibitorArc(nil), t.Inhibitors...)
		out.Transitions[i] = nt
	}
	return out
}
