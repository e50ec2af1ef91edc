package builder

import (
	"fmt"

	"github.com/katalvlaran/tapnverify/tapn"
)

// Chain builds a linear net p0 --t0--> p1 --t1--> ... --t(n-2)--> p(n-1):
// n places joined by n-1 transitions, each transition's single input arc
// using cfg.interval and each transition carrying cfg.dist. This is the
// shape of spec §8 scenario S1 generalized to n places.
//
// Returns ErrTooFewElements if n < 2 (a chain needs at least one hop).
func Chain(n int) Constructor {
	return func(net *tapn.TAPN, cfg *builderConfig) error {
		if n < 2 {
			return fmt.Errorf("Chain: n=%d: %w", n, ErrTooFewElements)
		}

		places := make([]int, n)
		for i := 0; i < n; i++ {
			p, err := net.AddPlace(fmt.Sprintf("p%d", i), cfg.invariant)
			if err != nil {
				return err
			}
			places[i] = p
		}

		for i := 0; i < n-1; i++ {
			tr, err := net.AddTransition(fmt.Sprintf("t%d", i))
			if err != nil {
				return err
			}
			if err := net.AddInputArc(places[i], tr, cfg.interval, 1); err != nil {
				return err
			}
			if err := net.AddOutputArc(tr, places[i+1], 1); err != nil {
				return err
			}
			if err := net.SetFiringDist(tr, cfg.dist); err != nil {
				return err
			}
		}
		return nil
	}
}
