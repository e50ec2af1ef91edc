package search

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// config is the resolved, immutable option set an Engine runs with.
// Unexported: callers only ever see the Option functions, mirroring the
// teacher's builder.builderConfig / flow.FlowOptions discipline.
type config struct {
	mode          Mode
	strategy      Strategy
	stepBudget    int // 0 => unbounded
	wallClock     time.Duration
	traceEnabled  bool
	keepDeadToken bool
	seed          int64
	logger        zerolog.Logger
}

func defaultConfig() config {
	return config{
		mode:         Reachability,
		strategy:     StrategyFIFO,
		traceEnabled: true,
		logger:       zerolog.Nop(),
	}
}

// Option customizes Engine construction. Mirrors the teacher's functional-
// options pattern (builder.BuilderOption, dijkstra.Option): each Option
// mutates a private config, resolved once at New.
type Option func(*config)

// WithMode selects the verification mode (spec §6).
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithStrategy selects the waiting-list discipline (spec §4.G).
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithStepBudget bounds the number of markings explored before the kernel
// reports Unknown/ReasonBudgetExhausted. n <= 0 means unbounded.
func WithStepBudget(n int) Option {
	return func(c *config) { c.stepBudget = n }
}

// WithWallClockBudget bounds wall-clock time before the kernel reports
// Unknown/ReasonBudgetExhausted. d <= 0 means unbounded.
func WithWallClockBudget(d time.Duration) Option {
	return func(c *config) { c.wallClock = d }
}

// WithTraceEnabled controls whether a witness trace is recorded (spec §6:
// "trace_enabled"). Enabled by default; disable to save the arena-walk
// cost on large runs that only need the verdict.
func WithTraceEnabled(enabled bool) Option {
	return func(c *config) { c.traceEnabled = enabled }
}

// WithKeepDeadTokens controls how Workflow mode's terminal (sink-reached)
// check treats tokens left behind in Dead-classified places (spec §3's
// PlaceKind) when a run ends. By default (false) a leftover token in a
// Dead place is ignored — it does not by itself turn a sink-reaching
// terminal marking into a dead one. Set true to require Dead places be
// empty too, exactly like ordinary places (spec §6: "keep_dead_tokens").
func WithKeepDeadTokens(keep bool) Option {
	return func(c *config) { c.keepDeadToken = keep }
}

// WithSeed seeds the PRNG backing the Random/RandomStack waiting-list
// strategies (spec §4.G, §9 "PRNG for SMC" applies equally here: one PRNG
// per run, never shared globally). Each Run builds a fresh PRNG from this
// seed; seed 0 is treated as 1.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithLogger attaches a zerolog.Logger for structural progress messages
// (run start, each dead marking in Workflow mode, and a run-finished
// summary with the verdict and counters). Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}
