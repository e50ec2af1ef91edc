package smc

import (
	"math/rand"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/succ"
	"github.com/katalvlaran/tapnverify/tapn"
)

// RunOptions bounds a single sampled run (spec §4.I "run termination":
// "time bound reached, step bound reached, a dead marking is produced").
type RunOptions struct {
	TimeBound float64 // <= 0 means unbounded
	StepBound int     // <= 0 means unbounded

	// Logger receives a message at run start, one for each cause of a dead
	// run, and a summary at run end (no per-step messages), mirroring
	// search/options.go's WithLogger. The zero value (unset) behaves as
	// zerolog.Nop(): SampleRun never requires a caller to wire one up.
	Logger zerolog.Logger
}

// effectiveLogger substitutes zerolog.Nop() for an unset Logger, the same
// default search.defaultConfig() resolves to.
func (o RunOptions) effectiveLogger() zerolog.Logger {
	if reflect.DeepEqual(o.Logger, zerolog.Logger{}) {
		return zerolog.Nop()
	}
	return o.Logger
}

// Event is one fired step of a sampled run.
type Event struct {
	Transition int
	Delay      float64
	Time       float64 // cumulative time at which this transition fired
}

// RunResult is the outcome of one SampleRun call.
type RunResult struct {
	Steps   int
	Elapsed float64
	Dead    bool // true if the run ended because no transition was enabled,
	// a sampled delay would have violated an invariant, or the chosen
	// transition had no successor
	History []Event
	Final   marking.Marking
}

func invariantChecker(net *tapn.TAPN) marking.InvariantChecker {
	return func(place, age int) bool {
		p, err := net.Place(place)
		if err != nil {
			return false
		}
		return p.Invariant.Holds(age)
	}
}

// SampleRun drives a single stochastic run from m0 per spec §4.I: at each
// step, every enabled transition draws a candidate delay from its
// distribution; the transition with the smallest delay fires, ties broken
// by weighted choice among the tied transitions (spec §9's open question
// on simultaneous-minimal-delay ties — resolved here as a single
// deterministic weighted draw among the tied set, not a re-sample of
// delays, so a run is a pure function of (net, m0, rng) with no retries).
func SampleRun(net *tapn.TAPN, m0 marking.Marking, rng *rand.Rand, opts RunOptions) RunResult {
	chk := invariantChecker(net)
	m := m0
	res := RunResult{}
	logger := opts.effectiveLogger()

	logger.Debug().
		Int("stepBound", opts.StepBound).
		Float64("timeBound", opts.TimeBound).
		Msg("smc: starting sampled run")

	for {
		if opts.StepBound > 0 && res.Steps >= opts.StepBound {
			break
		}
		if opts.TimeBound > 0 && res.Elapsed >= opts.TimeBound {
			break
		}

		enabled := make([]int, 0, net.NumTransitions())
		for t := range net.Transitions {
			if succ.Enabled(net, m, t) {
				enabled = append(enabled, t)
			}
		}
		if len(enabled) == 0 {
			res.Dead = true
			logger.Debug().Int("step", res.Steps).Msg("smc: run died, no transition enabled")
			break
		}

		delays := make(map[int]float64, len(enabled))
		minDelay := -1.0
		for _, t := range enabled {
			d := Sample(net.Transitions[t].Dist, rng)
			delays[t] = d
			if minDelay < 0 || d < minDelay {
				minDelay = d
			}
		}

		var tied []int
		for _, t := range enabled {
			if delays[t] == minDelay {
				tied = append(tied, t)
			}
		}
		chosen := tied[0]
		if len(tied) > 1 {
			chosen = weightedChoice(rng, net, tied)
		}

		if opts.TimeBound > 0 && res.Elapsed+minDelay > opts.TimeBound {
			break // the run would exceed its time bound before firing again
		}

		delayed, err := m.Delay(roundDelay(minDelay), chk)
		if err != nil {
			res.Dead = true
			logger.Debug().Int("step", res.Steps).Msg("smc: run died, invariant violated on delay")
			break
		}

		successors := succ.Successors(net, delayed, chosen)
		if len(successors) == 0 {
			res.Dead = true
			logger.Debug().Int("step", res.Steps).Int("transition", chosen).Msg("smc: run died, no successor")
			break
		}
		m = successors[rng.Intn(len(successors))]

		res.Elapsed += minDelay
		res.Steps++
		res.History = append(res.History, Event{Transition: chosen, Delay: minDelay, Time: res.Elapsed})
	}

	res.Final = m
	logger.Info().
		Int("steps", res.Steps).
		Float64("elapsed", res.Elapsed).
		Bool("dead", res.Dead).
		Msg("smc: sampled run finished")
	return res
}

// roundDelay converts a continuous sampled delay into the discrete age
// advance marking.Delay expects; the TAPN's age domain is integral (spec
// §3: intervals and invariants are "discrete, non-negative integers"),
// so every sampled delay is rounded to its integer age step.
func roundDelay(d float64) int {
	n := int(d + 0.5)
	if n < 0 {
		n = 0
	}
	return n
}

// weightedChoice picks one transition among tied (all sharing the
// minimal sampled delay) with probability proportional to its SMC
// weight, via a single PRNG draw — no re-sampling of delays.
func weightedChoice(rng *rand.Rand, net *tapn.TAPN, tied []int) int {
	total := 0.0
	for _, t := range tied {
		w := net.Transitions[t].Weight
		if w <= 0 {
			w = 1
		}
		total += w
	}
	r := rng.Float64() * total
	for _, t := range tied {
		w := net.Transitions[t].Weight
		if w <= 0 {
			w = 1
		}
		if r < w {
			return t
		}
		r -= w
	}
	return tied[len(tied)-1]
}
