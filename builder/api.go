// api.go - thin public entry-point for the builder package, mirroring the
// teacher's BuildGraph(gopts, bopts, cons...) contract:
//   - One orchestrator: BuildTAPN(bopts, cons...). Creates a net, resolves
//     cfg, runs cons in order, freezes the result.
//   - Functional options (BuilderOption) resolve into an immutable
//     builderConfig (no global state).
//   - Determinism: same options and constructor order => identical nets.
//   - Safety: constructors never panic; they return sentinel-wrapped errors.
package builder

import (
	"fmt"

	"github.com/katalvlaran/tapnverify/tapn"
)

// Constructor applies a deterministic mutation to net using the resolved
// builderConfig. Constructors MUST validate parameters early, return
// sentinel errors, and preserve determinism for a given config.
type Constructor func(net *tapn.TAPN, cfg *builderConfig) error

// BuildTAPN creates a new TAPN, resolves the builder configuration from
// bopts, applies each constructor in order, and freezes the result before
// returning it. Any constructor error is wrapped with "BuildTAPN: %w" and
// returned immediately; no partial cleanup is attempted, matching the
// teacher's BuildGraph contract.
func BuildTAPN(bopts []BuilderOption, cons ...Constructor) (*tapn.TAPN, error) {
	net := tapn.New()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildTAPN: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(net, cfg); err != nil {
			return nil, fmt.Errorf("BuildTAPN: %w", err)
		}
	}

	net.Freeze()
	return net, nil
}
