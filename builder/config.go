package builder

import (
	"math/rand"

	"github.com/katalvlaran/tapnverify/tapn"
)

// BuilderOption customizes a builderConfig before a Constructor runs.
// As a rule, option constructors never panic and ignore nil/zero inputs
// that would otherwise leave the config in an inconsistent state.
type BuilderOption func(cfg *builderConfig)

// builderConfig holds the parameters shared by every TAPN constructor in
// this package: an optional RNG for seeded variants, the default arc
// interval and firing distribution new arcs/transitions are given unless a
// constructor overrides them, and a default place invariant.
type builderConfig struct {
	rng       *rand.Rand
	interval  tapn.Interval
	dist      tapn.FiringDist
	invariant tapn.Invariant
}

// newBuilderConfig returns defaults (nil RNG, Unbounded interval, the
// spec's default Constant(1) firing distribution, InfInvariant), then
// applies opts in order; later options override earlier ones.
func newBuilderConfig(opts ...BuilderOption) *builderConfig {
	cfg := &builderConfig{
		rng:       nil,
		interval:  tapn.Unbounded,
		dist:      tapn.DefaultFiringDist,
		invariant: tapn.InfInvariant,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSeed seeds a deterministic RNG for constructors that need randomness
// (FanOut perturbs each branch's output-arc multiplicity by a seeded
// ±1 jitter, clamped to >= 1; constructors that don't need randomness
// ignore cfg.rng entirely). nil until set, so every constructor is fully
// deterministic by default.
func WithSeed(seed int64) BuilderOption {
	return func(cfg *builderConfig) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithInterval overrides the default arc interval used by a constructor.
func WithInterval(iv tapn.Interval) BuilderOption {
	return func(cfg *builderConfig) { cfg.interval = iv }
}

// WithDist overrides the default firing distribution assigned to generated
// transitions (meaningful only for fixtures consumed by package smc).
func WithDist(d tapn.FiringDist) BuilderOption {
	return func(cfg *builderConfig) { cfg.dist = d }
}

// WithInvariant overrides the default place invariant.
func WithInvariant(iv tapn.Invariant) BuilderOption {
	return func(cfg *builderConfig) { cfg.invariant = iv }
}
