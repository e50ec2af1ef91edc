// errors.go — sentinel errors for the builder package, carried over from
// the teacher's error policy: only package-level sentinels, never wrapped
// with formatted strings at definition site; callers branch with errors.Is.
package builder

import "errors"

// ErrTooFewElements indicates a constructor's size parameter (chain length,
// branch count, ...) is below the minimum the topology requires.
var ErrTooFewElements = errors.New("builder: parameter too small")

// ErrConstructFailed indicates BuildTAPN was given a nil constructor. An
// error from a constructor's own net mutation is not mapped to this
// sentinel: BuildTAPN returns it wrapped with %w, so errors.Is finds the
// underlying tapn sentinel.
var ErrConstructFailed = errors.New("builder: construction failed")
