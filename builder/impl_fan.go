package builder

import (
	"fmt"

	"github.com/katalvlaran/tapnverify/tapn"
)

// FanOut builds a single transition "t" consuming mult tokens (per
// cfg.interval) from place "p" and producing fresh tokens into each of n
// sink places "out0".."out(n-1)" — useful for exercising multiplicity and
// combinatorial successor enumeration (spec §8 scenario S4's "shared pool"
// family) against a net larger than the hand-built test fixtures.
//
// When cfg.rng is set (via WithSeed), each branch's output-arc multiplicity
// is mult perturbed by a seeded jitter in {-1, 0, +1}, clamped to >= 1, so
// branches are not forced to carry identical weight — otherwise every
// branch gets exactly mult, matching prior (un-seeded) behavior.
//
// Returns ErrTooFewElements if n < 1 or mult < 1.
func FanOut(n, mult int) Constructor {
	return func(net *tapn.TAPN, cfg *builderConfig) error {
		if n < 1 || mult < 1 {
			return fmt.Errorf("FanOut: n=%d mult=%d: %w", n, mult, ErrTooFewElements)
		}

		p, err := net.AddPlace("p", cfg.invariant)
		if err != nil {
			return err
		}
		tr, err := net.AddTransition("t")
		if err != nil {
			return err
		}
		if err := net.AddInputArc(p, tr, cfg.interval, mult); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			out, err := net.AddPlace(fmt.Sprintf("out%d", i), cfg.invariant)
			if err != nil {
				return err
			}
			branchMult := mult
			if cfg.rng != nil {
				branchMult += cfg.rng.Intn(3) - 1 // jitter in {-1, 0, +1}
				if branchMult < 1 {
					branchMult = 1
				}
			}
			if err := net.AddOutputArc(tr, out, branchMult); err != nil {
				return err
			}
		}
		return net.SetFiringDist(tr, cfg.dist)
	}
}

// InhibitedSelfLoop is SelfLoop extended with an inhibitor arc from a
// second place "guard" onto "t": firing is blocked whenever "guard" holds
// at least weight tokens (spec §8 scenario S2's inhibitor shape, scaled to
// a reusable fixture).
func InhibitedSelfLoop(weight int) Constructor {
	return func(net *tapn.TAPN, cfg *builderConfig) error {
		p, err := net.AddPlace("p", cfg.invariant)
		if err != nil {
			return err
		}
		guard, err := net.AddPlace("guard", cfg.invariant)
		if err != nil {
			return err
		}
		tr, err := net.AddTransition("t")
		if err != nil {
			return err
		}
		if err := net.AddInputArc(p, tr, cfg.interval, 1); err != nil {
			return err
		}
		if err := net.AddOutputArc(tr, p, 1); err != nil {
			return err
		}
		if err := net.AddInhibitorArc(guard, tr, weight); err != nil {
			return err
		}
		return net.SetFiringDist(tr, cfg.dist)
	}
}
