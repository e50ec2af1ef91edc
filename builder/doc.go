// Package builder provides deterministic TAPN fixture constructors, adapted
// from the teacher (lvlath/builder) BuildGraph orchestrator: a Constructor
// closure type, a functional-options-resolved builderConfig, and a single
// public entry point (BuildTAPN) that applies constructors in order.
//
// Where the teacher composed core.Graph topologies (Cycle, Star, Grid, ...)
// this package composes tapn.TAPN fixtures that recur across the
// specification's worked scenarios (§8): a linear chain of timed
// transitions, a self-loop producer/consumer, a fork-join workflow net, and
// a fan-out net for multiplicity/inhibitor testing. Determinism is
// preserved exactly as in the teacher: same inputs, options, and
// constructor order always yield the same net.
package builder
