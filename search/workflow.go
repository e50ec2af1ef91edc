package search

import "github.com/katalvlaran/tapnverify/tapn"

// Classification is the workflow-soundness flavor returned by
// ClassifyWorkflow (spec §4.H / scenario S6).
type Classification uint8

const (
	// NotAWorkflow means the net does not have exactly one source and one
	// sink place (e.g. two places with no incoming arcs).
	NotAWorkflow Classification = iota
	// MTAWFN is a "monotonic" timed-arc workflow net: no urgent
	// transitions, no finite place invariants, no inhibitor arcs.
	MTAWFN
	// ETAWFN is an "extended" timed-arc workflow net: at least one of
	// urgency, a finite invariant, or an inhibitor arc is present.
	ETAWFN
)

func (c Classification) String() string {
	switch c {
	case MTAWFN:
		return "MTAWFN"
	case ETAWFN:
		return "ETAWFN"
	default:
		return "NotAWorkflow"
	}
}

// ClassifyWorkflow performs the structural check of spec scenario S6:
// exactly one source place (no place feeds it structurally, i.e. it is
// never an output-arc or transport-dest target) and exactly one sink
// place (never the source of an input/transport/inhibitor arc) are
// required for the net to be a workflow net at all; otherwise
// NotAWorkflow. Among workflow nets, presence of urgency, a finite
// invariant, or an inhibitor arc anywhere promotes the classification
// from MTAWFN to ETAWFN.
//
// This is a purely structural check; whether every run actually reaches
// the sink with no dead states (soundness proper) is tracked separately
// by Engine.Run in Workflow mode via Stats.DeadMarkings and
// Stats.AllRunsReachSink, using the same sink set SinkPlaces computes.
func ClassifyWorkflow(net *tapn.TAPN) Classification {
	hasIncoming := incomingMask(net)
	hasOutgoing := outgoingMask(net)
	extended := false

	for _, tr := range net.Transitions {
		if tr.Urgent || len(tr.Inhibitors) > 0 {
			extended = true
		}
	}

	sources, sinks := 0, 0
	for p, place := range net.Places {
		if !place.Invariant.Inf {
			extended = true
		}
		if !hasIncoming[p] {
			sources++
		}
		if !hasOutgoing[p] {
			sinks++
		}
	}

	if sources != 1 || sinks != 1 {
		return NotAWorkflow
	}
	if extended {
		return ETAWFN
	}
	return MTAWFN
}

// outgoingMask reports, per place index, whether some arc structurally
// leaves it (input, transport source, or inhibitor arc).
func outgoingMask(net *tapn.TAPN) []bool {
	out := make([]bool, net.NumPlaces())
	for _, tr := range net.Transitions {
		for _, a := range tr.Inputs {
			out[a.Place] = true
		}
		for _, a := range tr.Transports {
			out[a.Source] = true
		}
		for _, a := range tr.Inhibitors {
			out[a.Place] = true
		}
	}
	return out
}

// incomingMask reports, per place index, whether some arc structurally
// enters it (output, or transport destination).
func incomingMask(net *tapn.TAPN) []bool {
	in := make([]bool, net.NumPlaces())
	for _, tr := range net.Transitions {
		for _, a := range tr.Outputs {
			in[a.Place] = true
		}
		for _, a := range tr.Transports {
			in[a.Dest] = true
		}
	}
	return in
}

// SinkPlaces returns every place index with no structurally outgoing arc
// (spec scenario S6's sink place, generalized to the set form so a net
// with multiple terminal places still gets a usable completion check).
// Engine uses this in Workflow mode to distinguish a terminal marking
// that reached the workflow's sink (sound completion) from one that
// didn't (a genuine dead marking).
func SinkPlaces(net *tapn.TAPN) []int {
	out := outgoingMask(net)
	var sinks []int
	for p := range net.Places {
		if !out[p] {
			sinks = append(sinks, p)
		}
	}
	return sinks
}
