package builder

import (
	"fmt"

	"github.com/katalvlaran/tapnverify/tapn"
)

// Workflow builds a fork-join net with exactly one source and one sink
// place, the shape search.ClassifyWorkflow (spec scenario S6) expects:
// source --fork--> branch_0..branch_{k-1} --join--> sink. fork produces one
// fresh token per branch; join requires one token from every branch
// (synchronizing) before producing a single sink token.
//
// Returns ErrTooFewElements if branches < 1.
func Workflow(branches int) Constructor {
	return func(net *tapn.TAPN, cfg *builderConfig) error {
		if branches < 1 {
			return fmt.Errorf("Workflow: branches=%d: %w", branches, ErrTooFewElements)
		}

		source, err := net.AddPlace("source", cfg.invariant)
		if err != nil {
			return err
		}
		sink, err := net.AddPlace("sink", cfg.invariant)
		if err != nil {
			return err
		}

		fork, err := net.AddTransition("fork")
		if err != nil {
			return err
		}
		if err := net.AddInputArc(source, fork, cfg.interval, 1); err != nil {
			return err
		}

		join, err := net.AddTransition("join")
		if err != nil {
			return err
		}
		if err := net.AddOutputArc(join, sink, 1); err != nil {
			return err
		}

		for i := 0; i < branches; i++ {
			b, err := net.AddPlace(fmt.Sprintf("branch%d", i), cfg.invariant)
			if err != nil {
				return err
			}
			if err := net.AddOutputArc(fork, b, 1); err != nil {
				return err
			}
			if err := net.AddInputArc(b, join, cfg.interval, 1); err != nil {
				return err
			}
		}

		if err := net.SetFiringDist(fork, cfg.dist); err != nil {
			return err
		}
		return net.SetFiringDist(join, cfg.dist)
	}
}
