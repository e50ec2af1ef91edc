// Package tapnverify is a verification engine for Timed-Arc Petri Nets
// (TAPN): places hold aged tokens, arcs carry time intervals, transport
// arcs move a token between places while preserving its age, and
// inhibitor arcs block firing above a token count.
//
// What is tapnverify?
//
//	A single-threaded, cooperative reachability and statistical
//	model-checking engine:
//
//	  • Exhaustive search: waiting-list driven state-space exploration
//	    (DFS/BFS/heuristic/random) deciding EF/AG queries over place-count
//	    comparisons.
//	  • Time-dart compression: collapses time-equivalent markings into a
//	    base marking plus a canonical wait-time offset.
//	  • Statistical model checking: sampled stochastic runs decided by
//	    SPRT or confidence-interval estimation.
//
// Everything is organized under focused subpackages:
//
//	tapn/     — immutable net model: places, transitions, arcs, intervals
//	marking/  — aged-token multisets and delay/invariant semantics
//	query/    — EF/AG query AST, negation-normal-form normaliser, evaluator
//	succ/     — successor generation (arc enabling + odometer enumeration)
//	dart/     — time-dart generation (state compression over delay)
//	waitlist/ — passed set + pluggable waiting-list strategies
//	search/   — the exploration kernel, verdicts, traces, statistics
//	smc/      — stochastic run sampling, SPRT, confidence intervals
//	builder/  — deterministic net construction for tests and fixtures
//
// Loading XML/PNML nets or queries, command-line plumbing, and the query
// text grammar are left to external collaborators; see SPEC_FULL.md for
// the full rationale.
//
//	go get github.com/katalvlaran/tapnverify
package tapnverify
