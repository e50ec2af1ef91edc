package smc

import (
	"math"
	"math/rand"
)

// Trial runs one sample and reports whether the property of interest
// held. The caller closes over net/m0/opts and whatever predicate (step
// count, time bound, reachability of a place) the query asks about;
// package smc's decision procedures only ever see this boolean outcome.
type Trial func(rng *rand.Rand) bool

// SPRTResult is the outcome of a sequential probability ratio test.
type SPRTResult struct {
	AcceptH1  bool // true: accept "probability >= indifference region upper bound"
	Runs      int
	LogLambda float64
}

// defaultMaxRuns backstops the "almost surely terminates" guarantee of
// spec §8 property 9 against a misconfigured indifference region that
// would otherwise never cross a threshold; not part of the SPRT
// algorithm itself, just a safety valve.
const defaultMaxRuns = 1_000_000

// SPRT runs Wald's sequential probability ratio test (spec §4.I): H0 is
// "true probability <= p0", H1 is "true probability >= p1" (p0 < p1
// defines the indifference region). trial is invoked with a fresh,
// independently-seeded PRNG per run (package-level RunRNG) until the
// log-likelihood ratio crosses ln((1-beta)/alpha) (accept H1) or
// ln(beta/(1-alpha)) (accept H0).
func SPRT(trial Trial, p0, p1, alpha, beta float64, masterSeed int64) SPRTResult {
	upper := math.Log((1 - beta) / alpha)
	lower := math.Log(beta / (1 - alpha))

	logL1p0 := math.Log(p1 / p0)
	logL1p0Comp := math.Log((1 - p1) / (1 - p0))

	var logLambda float64
	for run := 0; run < defaultMaxRuns; run++ {
		rng := RunRNG(masterSeed, uint64(run))
		if trial(rng) {
			logLambda += logL1p0
		} else {
			logLambda += logL1p0Comp
		}
		if logLambda >= upper {
			return SPRTResult{AcceptH1: true, Runs: run + 1, LogLambda: logLambda}
		}
		if logLambda <= lower {
			return SPRTResult{AcceptH1: false, Runs: run + 1, LogLambda: logLambda}
		}
	}
	// Indifference region misconfigured (p0 >= p1 or similarly degenerate):
	// report whatever side the ratio leans toward rather than loop forever.
	return SPRTResult{AcceptH1: logLambda > 0, Runs: defaultMaxRuns, LogLambda: logLambda}
}

// ConfidenceIntervalResult is the outcome of confidence-interval estimation.
type ConfidenceIntervalResult struct {
	Estimate   float64
	Lo, Hi     float64
	Runs       int
	Confidence float64
}

// zFor converts a two-sided confidence level (e.g. 0.95) into its normal
// quantile via the stdlib's math.Erfinv — no statistics library appears
// anywhere in the retrieval pack, and math.Erfinv is the exact closed-form
// relationship between the normal quantile and the error function, so
// this is the precise computation, not an approximation standing in for
// a missing dependency.
func zFor(confidence float64) float64 {
	return math.Sqrt2 * math.Erfinv(confidence)
}

// ConfidenceInterval runs trial repeatedly (spec §4.I: "run until the
// c-confidence interval of the sample mean narrows below w") and returns
// the sample-mean probability estimate with its confidence interval. While
// every run so far has succeeded, or every run has failed, the interval
// has zero width and is not taken as narrow enough; such a sample runs on
// to maxRuns.
func ConfidenceInterval(trial Trial, confidence, width float64, masterSeed int64, maxRuns int) ConfidenceIntervalResult {
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}
	z := zFor(confidence)
	successes := 0
	n := 0
	for n < maxRuns {
		rng := RunRNG(masterSeed, uint64(n))
		if trial(rng) {
			successes++
		}
		n++

		phat := float64(successes) / float64(n)
		halfWidth := z * math.Sqrt(phat*(1-phat)/float64(n))
		if successes > 0 && successes < n && 2*halfWidth < width {
			return ConfidenceIntervalResult{
				Estimate: phat, Lo: clamp01(phat - halfWidth), Hi: clamp01(phat + halfWidth),
				Runs: n, Confidence: confidence,
			}
		}
	}
	phat := float64(successes) / float64(n)
	halfWidth := z * math.Sqrt(phat*(1-phat)/float64(n))
	return ConfidenceIntervalResult{
		Estimate: phat, Lo: clamp01(phat - halfWidth), Hi: clamp01(phat + halfWidth),
		Runs: n, Confidence: confidence,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
