// Package smc implements the statistical model checker of spec §4.I: an
// independent sampler that drives single stochastic runs of a TAPN,
// drawing firing delays from each transition's attached distribution, and
// decides P(φ) ⋈ p queries via SPRT or confidence-interval estimation.
//
// Distribution reuses tapn.FiringDist directly rather than declaring a
// parallel type — tapn.Transition already carries exactly the kind tag
// and raw parameters smc needs to reconstruct a sampler, by design (see
// tapn/types.go's FiringDist doc comment), so there is nothing to unify.
package smc

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/tapnverify/tapn"
)

// Sample draws one firing delay from dist using rng, per spec §4.I:
// "truncated below at 0, rounded if the distribution is flagged
// discrete". Gamma sampling uses the Marsaglia–Tsang method (no
// third-party statistics library appears anywhere in the retrieval pack;
// math/rand is the teacher's own RNG dependency — see tsp/rng.go — so the
// algorithm is implemented directly on top of it rather than introduced
// as a new, ungrounded dependency).
func Sample(dist tapn.FiringDist, rng *rand.Rand) float64 {
	var x float64
	switch dist.Kind {
	case tapn.DistConstant:
		x = dist.A
	case tapn.DistUniform:
		lo, hi := dist.A, dist.B
		if hi < lo {
			lo, hi = hi, lo
		}
		x = lo + rng.Float64()*(hi-lo)
	case tapn.DistExponential:
		lambda := dist.A
		if lambda <= 0 {
			lambda = 1
		}
		x = rng.ExpFloat64() / lambda
	case tapn.DistNormal:
		x = dist.A + dist.B*rng.NormFloat64()
	case tapn.DistGamma:
		x = sampleGamma(dist.A, dist.B, rng)
	default:
		x = dist.A
	}

	if x < 0 {
		x = 0
	}
	if dist.Discrete {
		x = math.Round(x)
	}
	return x
}

// sampleGamma draws from Gamma(shape k, scale theta) via Marsaglia–Tsang.
// For k < 1 it uses the standard boosting trick: sample Gamma(k+1, 1) and
// scale by U^(1/k).
func sampleGamma(k, theta float64, rng *rand.Rand) float64 {
	if k <= 0 {
		return 0
	}
	if k < 1 {
		g := sampleGamma(k+1, 1, rng)
		u := rng.Float64()
		return g * math.Pow(u, 1/k) * theta
	}

	d := k - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if math.Log(u) < 0.5*x*x+d-d*v+d*math.Log(v) {
			return d * v * theta
		}
	}
}
