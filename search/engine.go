package search

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tapnverify/dart"
	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/query"
	"github.com/katalvlaran/tapnverify/tapn"
	"github.com/katalvlaran/tapnverify/waitlist"
)

// Engine is the exhaustive verification kernel of spec §4.H. It owns its
// arena, passed set, and waiting list exclusively for its lifetime (spec
// §5: "the search kernel... owns the entire passed set, waiting list, and
// PRNG"); nothing inside it is safe to share across goroutines.
type Engine struct {
	net        *tapn.TAPN
	body       *query.Formula // normalised
	quant      query.Quantifier
	cfg        config
	arena      *waitlist.Arena
	passed     *waitlist.PassedSet
	initial    waitlist.NodeID
	sinkPlaces []int // Workflow mode only; see SinkPlaces.
}

// New validates q against net (spec §7: InvalidQuery "is reported to the
// caller before the search loop starts and aborts construction") and
// builds an Engine ready to Run. The initial marking is inserted into the
// passed set here; it is added to the waiting list at the start of Run.
func New(net *tapn.TAPN, initial marking.Marking, q query.Query, opts ...Option) (*Engine, error) {
	if err := query.Validate(q.Body, net.NumPlaces()); err != nil {
		return nil, errors.Wrap(err, "search: invalid query")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	arena := waitlist.NewArena()
	passed := waitlist.NewPassedSet(arena)
	id, _ := passed.Insert(initial, 0, false)

	e := &Engine{
		net:     net,
		body:    query.Normalise(q.Body),
		quant:   q.Quantifier,
		cfg:     cfg,
		arena:   arena,
		passed:  passed,
		initial: id,
	}
	if cfg.mode == Workflow {
		e.sinkPlaces = SinkPlaces(net)
	}
	return e, nil
}

func (e *Engine) countFuncFor(m marking.Marking) query.CountFunc {
	return func(place int) int { return m.Count(place) }
}

func (e *Engine) invariantChecker() marking.InvariantChecker {
	return func(place, age int) bool {
		p, err := e.net.Place(place)
		if err != nil {
			return false
		}
		return p.Invariant.Holds(age)
	}
}

func (e *Engine) newWaitingList() waitlist.WaitingList {
	weightFor := func(id waitlist.NodeID) int {
		m := e.arena.Get(id).Item
		if e.cfg.mode != Reachability && e.cfg.strategy == StrategyHeuristicStack {
			return query.LivenessWeight(e.body, e.countFuncFor(m))
		}
		return query.Weight(e.body, e.countFuncFor(m))
	}
	switch e.cfg.strategy {
	case StrategyLIFO:
		return waitlist.NewLIFO()
	case StrategyHeuristic:
		return waitlist.NewHeuristic(weightFor)
	case StrategyHeuristicStack:
		return waitlist.NewHeuristicStack(weightFor)
	case StrategyRandom:
		return waitlist.NewRandom(newRNG(e.cfg.seed))
	case StrategyRandomStack:
		return waitlist.NewRandomStack(newRNG(e.cfg.seed))
	default:
		return waitlist.NewFIFO()
	}
}

// terminates reports whether m satisfies the quantifier's termination
// condition (spec §4.H: "for EF... atomic formula satisfied; for AG...
// its negation satisfied").
func (e *Engine) terminates(m marking.Marking) bool {
	count := e.countFuncFor(m)
	if e.quant == query.EF {
		return query.Eval(e.body, count)
	}
	return query.Eval(query.Not(e.body), count)
}

// reachedSink reports whether m holds a token in one of the net's sink
// places (spec §4.H's "out" place for workflow nets).
func (e *Engine) reachedSink(m marking.Marking) bool {
	for _, p := range e.sinkPlaces {
		if m.Count(p) > 0 {
			return true
		}
	}
	return false
}

// isSoundCompletion reports whether a terminal marking m in Workflow mode
// represents a sound completion: it reached a sink place, and every other
// place is empty. Dead-classified places (spec §3's PlaceKind) are
// exempted from the "every other place is empty" half of that check
// unless WithKeepDeadTokens(true) was set (spec §6: "keep_dead_tokens").
func (e *Engine) isSoundCompletion(m marking.Marking) bool {
	if !e.reachedSink(m) {
		return false
	}
	isSink := make(map[int]bool, len(e.sinkPlaces))
	for _, p := range e.sinkPlaces {
		isSink[p] = true
	}
	for p := 0; p < e.net.NumPlaces(); p++ {
		if isSink[p] || m.Count(p) == 0 {
			continue
		}
		place, err := e.net.Place(p)
		if err == nil && place.Kind == tapn.Dead && !e.cfg.keepDeadToken {
			continue
		}
		return false
	}
	return true
}

// verdictFor returns the verdict meaning "the quantifier's termination
// condition was met", and the verdict meaning "the loop ran out of work
// without ever meeting it" (spec §4.H's two tail branches).
func (e *Engine) verdictFor() (met, exhausted Verdict) {
	if e.quant == query.EF {
		return Holds, Fails
	}
	return Fails, Holds
}

// Run executes the main loop of spec §4.H until the verdict is decided,
// the waiting list is exhausted, ctx is cancelled, or a configured budget
// is exceeded.
func (e *Engine) Run(ctx context.Context) Result {
	w := e.newWaitingList()
	w.Add(e.initial)

	stats := Stats{PerTransitionFirings: make(map[int]int)}
	start := time.Now()
	chk := e.invariantChecker()

	var witness waitlist.NodeID
	haveWitness := false

	met, exhausted := e.verdictFor()
	verdict := Unknown
	reason := ReasonNone
	stats.AllRunsReachSink = true

	e.cfg.logger.Debug().Str("strategy", e.cfg.strategy.String()).Str("mode", e.cfg.mode.String()).Msg("search: starting run")

loop:
	for w.Size() > 0 && verdict == Unknown {
		select {
		case <-ctx.Done():
			reason = ReasonCancelled
			break loop
		default:
		}
		if e.cfg.stepBudget > 0 && stats.MarkingsExplored >= e.cfg.stepBudget {
			reason = ReasonBudgetExhausted
			break loop
		}
		if e.cfg.wallClock > 0 && time.Since(start) >= e.cfg.wallClock {
			reason = ReasonBudgetExhausted
			break loop
		}

		id, _ := w.Next()
		node := e.arena.Get(id)
		stats.MarkingsExplored++

		if e.terminates(node.Item) {
			verdict = met
			witness = id
			haveWitness = true
			break
		}

		firings, dropped, _ := dart.Discrete(e.net, node.Item, chk)
		stats.DroppedSuccessors += dropped
		if e.cfg.mode == Workflow && len(firings) == 0 {
			if e.isSoundCompletion(node.Item) {
				stats.SinkReached++
			} else {
				stats.DeadMarkings++
				stats.AllRunsReachSink = false
				e.cfg.logger.Debug().Int("markingsExplored", stats.MarkingsExplored).Msg("search: dead marking")
			}
		}
		for _, f := range firings {
			childID, isNew := e.passed.Insert(f.Result, id, true)
			if isNew {
				stats.TransitionsFired++
				stats.PerTransitionFirings[f.Transition]++
				w.Add(childID)
			}
		}
	}

	if verdict == Unknown && reason == ReasonNone {
		verdict = exhausted
	}

	logEvt := e.cfg.logger.Info().
		Str("verdict", verdict.String()).
		Int("markingsExplored", stats.MarkingsExplored).
		Int("transitionsFired", stats.TransitionsFired).
		Dur("elapsed", time.Since(start))
	if e.cfg.mode == Workflow {
		logEvt = logEvt.Bool("allRunsReachSink", stats.AllRunsReachSink).Int("deadMarkings", stats.DeadMarkings)
	}
	logEvt.Msg("search: run finished")

	result := Result{Verdict: verdict, Reason: reason, Stats: stats}
	if haveWitness && e.cfg.traceEnabled {
		result.Trace = e.buildTrace(witness)
	}
	return result
}

// buildTrace walks the arena's parent chain to the witness and re-derives
// each step's (transition, delay) by re-running the successor generator —
// the arena itself only stores markings, not the edge labels that
// produced them, per the spec §9 "weak back-references" note: the DAG is
// markings-only, so edge metadata is recomputed, not stored twice.
func (e *Engine) buildTrace(witness waitlist.NodeID) []Step {
	markings := e.arena.Trace(witness)
	if len(markings) < 2 {
		return nil
	}
	chk := e.invariantChecker()
	steps := make([]Step, 0, len(markings)-1)
	for i := 0; i+1 < len(markings); i++ {
		from, to := markings[i], markings[i+1]
		firings, _, _ := dart.Discrete(e.net, from, chk)
		for _, f := range firings {
			if f.Result.Equals(to) {
				steps = append(steps, Step{Transition: f.Transition, Delay: f.Delay, Result: to})
				break
			}
		}
	}
	return steps
}
