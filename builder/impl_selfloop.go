package builder

import (
	"github.com/katalvlaran/tapnverify/tapn"
)

// SelfLoop builds the spec §8 scenario S5 shape: a single place "p" whose
// only transition "t" consumes one token (per cfg.interval) and produces
// one fresh token back into "p", carrying cfg.dist as its SMC firing
// distribution. Used by package smc's tests to drive unbounded stochastic
// runs.
func SelfLoop() Constructor {
	return func(net *tapn.TAPN, cfg *builderConfig) error {
		p, err := net.AddPlace("p", cfg.invariant)
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
		return net.SetFiringDist(tr, cfg.dist)
	}
}
