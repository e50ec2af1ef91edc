// Package search implements the exhaustive verification kernel of spec
// §4.H: a waiting-list-driven main loop over the passed set and frontier
// of package waitlist, pulling discrete firings from package dart and
// evaluating the normalised query of package query against each popped
// marking.
//
// Grounded on flow/dinic.go's context-cancellable, staged main loop (a
// for{} checking ctx.Err() at the top of every iteration) and builder's
// functional-options-resolve-then-run shape.
package search

import (
	"time"

	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/query"
)

// Verdict is the three-valued outcome of spec §3/§4.H.
type Verdict uint8

const (
	Unknown Verdict = iota
	Holds
	Fails
)

func (v Verdict) String() string {
	switch v {
	case Holds:
		return "Holds"
	case Fails:
		return "Fails"
	default:
		return "Unknown"
	}
}

// Reason discriminates why a Result carries Unknown (spec §7: "return
// Verdict::Unknown with a discriminator code; never propagate as
// exceptions").
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCancelled
	ReasonBudgetExhausted
)

// Mode selects the verification mode of spec §6 (smc is handled by the
// independent package smc, not here).
type Mode uint8

const (
	Reachability Mode = iota
	Liveness
	Workflow
)

func (m Mode) String() string {
	switch m {
	case Liveness:
		return "Liveness"
	case Workflow:
		return "Workflow"
	default:
		return "Reachability"
	}
}

// Strategy selects the waiting-list discipline of spec §4.G.
type Strategy uint8

const (
	StrategyFIFO Strategy = iota
	StrategyLIFO
	StrategyHeuristic
	StrategyHeuristicStack
	StrategyRandom
	StrategyRandomStack
)

func (s Strategy) String() string {
	switch s {
	case StrategyLIFO:
		return "LIFO"
	case StrategyHeuristic:
		return "Heuristic"
	case StrategyHeuristicStack:
		return "HeuristicStack"
	case StrategyRandom:
		return "Random"
	case StrategyRandomStack:
		return "RandomStack"
	default:
		return "FIFO"
	}
}

// Step is one edge of a witness trace: the transition fired, the delay it
// fired at, and the marking it produced (spec §6: "sequence of
// (transition, delay, successor marking) tuples").
type Step struct {
	Transition int
	Delay      int
	Result     marking.Marking
}

// Stats reports the counters of spec §6 ("transitions fired, markings
// explored, per-transition firing counts") plus the dropped-successor
// counter spec §7 requires ("every dropped successor increments a counter
// exposed in statistics") and the per-run workflow-soundness tracking of
// spec §4.H ("the kernel additionally tracks per-run whether every run
// reaches out and whether any dead non-terminal marking is observed").
type Stats struct {
	MarkingsExplored     int
	TransitionsFired     int
	PerTransitionFirings map[int]int

	// DroppedSuccessors counts candidate delays dart.Discrete discarded
	// because the resulting delayed marking violated a place invariant
	// (spec §7).
	DroppedSuccessors int

	// DeadMarkings counts terminal markings (no discrete successor)
	// reached in Workflow mode that are not sound completions: no token in
	// any of the net's sink places, or tokens left in other places (see
	// WithKeepDeadTokens for Dead-kind places).
	DeadMarkings int

	// SinkReached counts terminal markings reached in Workflow mode that
	// are sound completions: a token in a sink place and no token left in
	// any other place (Dead-kind places exempt unless WithKeepDeadTokens).
	SinkReached int

	// AllRunsReachSink is Workflow mode's per-run soundness verdict: true
	// iff every terminal marking explored during the run was a sound
	// completion, i.e. DeadMarkings stayed at 0. Meaningless outside
	// Workflow mode (it stays true, since no terminal-marking
	// classification runs).
	AllRunsReachSink bool
}

// Result is what Run returns: the verdict, why it is Unknown (if it is),
// the witness trace when one exists, and accumulated statistics.
type Result struct {
	Verdict Verdict
	Reason  Reason
	Trace   []Step
	Stats   Stats
}

// Query pairs the quantifier+body of package query with nothing extra;
// re-exported here so callers only need to import search for the common
// case. Equivalent to query.Query.
type Query = query.Query

// defaultWallClock is the zero value for WithWallClockBudget, meaning "no
// wall-clock budget".
const defaultWallClock = time.Duration(0)
