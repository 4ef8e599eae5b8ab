package dist

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/optimize"

	"gostats/domain/core"
)

// bound is an inclusive search interval for one free parameter.
type bound struct {
	lo, hi float64
}

// Fit estimates the family's free parameters from observations by bounded
// maximum likelihood and returns a new Distribution; the receiver is left
// untouched. Location bounds are [min(obs), max(obs)] and scale bounds are
// [range/10000, range*10], guarding against degenerate and runaway scale
// estimates. A non-nil guess (typically the receiver's own parameters) seeds
// the optimizer; otherwise family-appropriate moment estimates are used.
func (d Distribution) Fit(observations []float64, guess map[string]float64) (Distribution, error) {
	if len(observations) == 0 {
		return Distribution{}, core.NewInvalidObservationError("no observations to fit")
	}
	if d.Kind() == Discrete {
		for _, v := range observations {
			if v != math.Trunc(v) || math.IsNaN(v) {
				return Distribution{}, core.NewInvalidObservationError("discrete fit requires integer observations")
			}
		}
		return d.fitDiscrete(observations)
	}
	return d.fitContinuous(observations, guess)
}

func (d Distribution) fitContinuous(obs []float64, guess map[string]float64) (Distribution, error) {
	lo, _ := stats.Min(obs)
	hi, _ := stats.Max(obs)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Distribution{}, core.NewInvalidObservationError("observations contain NaN")
	}
	rng := hi - lo
	if rng == 0 {
		return Distribution{}, core.NewInvalidObservationError("observations have zero range")
	}
	locBound := bound{lo, hi}
	scaleBound := bound{rng / 10000, rng * 10}

	mean, _ := stats.Mean(obs)
	sd, _ := stats.StandardDeviation(obs)

	var names []string
	var bounds []bound
	var x0 []float64
	switch d.family {
	case Normal:
		names = []string{ParamLoc, ParamScale}
		bounds = []bound{locBound, scaleBound}
		x0 = []float64{mean, sd}
	case Uniform:
		// The uniform MLE is the sample extremes; both land inside the
		// location/scale bounds, so no search is needed.
		return Construct(Uniform, map[string]float64{ParamLoc: lo, ParamScale: rng})
	case Exponential:
		if lo < 0 {
			return Distribution{}, core.NewInvalidObservationError("exponential fit requires non-negative observations")
		}
		names = []string{ParamScale}
		bounds = []bound{scaleBound}
		x0 = []float64{mean}
	case Gamma:
		if lo <= 0 {
			return Distribution{}, core.NewInvalidObservationError("gamma fit requires positive observations")
		}
		variance := sd * sd
		names = []string{ParamA, ParamScale}
		bounds = []bound{{1e-3, 1e3}, scaleBound}
		x0 = []float64{mean * mean / variance, variance / mean}
	case Beta:
		if lo <= 0 || hi >= 1 {
			return Distribution{}, core.NewInvalidObservationError("beta fit requires observations in (0, 1)")
		}
		variance := sd * sd
		common := mean*(1-mean)/variance - 1
		names = []string{ParamA, ParamB}
		bounds = []bound{{1e-2, 1e2}, {1e-2, 1e2}}
		x0 = []float64{mean * common, (1 - mean) * common}
	case Cauchy:
		median, _ := stats.Median(obs)
		iqr, err := stats.InterQuartileRange(obs)
		if err != nil || iqr == 0 {
			iqr = rng / 2
		}
		names = []string{ParamLoc, ParamScale}
		bounds = []bound{locBound, scaleBound}
		x0 = []float64{median, iqr / 2}
	case StudentT:
		names = []string{ParamDF}
		bounds = []bound{{1e-2, 1e3}}
		x0 = []float64{5}
	default:
		return Distribution{}, core.NewUnsupportedOperationError("fit", "unhandled family "+string(d.family))
	}

	if guess != nil {
		for i, name := range names {
			if v, ok := guess[name]; ok {
				x0[i] = v
			}
		}
	}
	for i := range x0 {
		x0[i] = clamp(x0[i], bounds[i].lo, bounds[i].hi)
	}

	nll := func(x []float64) float64 {
		params := make(map[string]float64, len(names))
		for i, name := range names {
			if x[i] < bounds[i].lo || x[i] > bounds[i].hi || math.IsNaN(x[i]) {
				return math.Inf(1)
			}
			params[name] = x[i]
		}
		cand := Distribution{family: d.family, params: params}
		total := 0.0
		for _, v := range obs {
			lp := cand.logProb(v)
			if math.IsNaN(lp) {
				return math.Inf(1)
			}
			total -= lp
		}
		return total
	}

	settings := &optimize.Settings{
		MajorIterations: 2000,
		FuncEvaluations: 10000,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 200},
	}
	result, err := optimize.Minimize(optimize.Problem{Func: nll}, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return Distribution{}, core.NewFitConvergenceError(string(d.family), err.Error())
	}
	switch result.Status {
	case optimize.Failure, optimize.NotTerminated, optimize.IterationLimit, optimize.FunctionEvaluationLimit:
		return Distribution{}, core.NewFitConvergenceError(string(d.family), "optimizer stopped: "+result.Status.String())
	}
	if math.IsInf(result.F, 1) || math.IsNaN(result.F) {
		return Distribution{}, core.NewFitConvergenceError(string(d.family), "no finite likelihood inside bounds")
	}

	fitted := make(map[string]float64, len(names))
	for i, name := range names {
		fitted[name] = clamp(result.X[i], bounds[i].lo, bounds[i].hi)
	}
	return Construct(d.family, fitted)
}

// fitDiscrete uses bounded closed-form estimators; for the binomial the
// support bound n is searched over a bounded integer grid with p profiled
// out at its conditional MLE.
func (d Distribution) fitDiscrete(obs []float64) (Distribution, error) {
	mean, _ := stats.Mean(obs)
	lo, _ := stats.Min(obs)
	hi, _ := stats.Max(obs)
	switch d.family {
	case Poisson:
		if lo < 0 {
			return Distribution{}, core.NewInvalidObservationError("poisson fit requires non-negative counts")
		}
		if mean <= 0 {
			return Distribution{}, core.NewInvalidObservationError("poisson fit requires a positive mean count")
		}
		return Construct(Poisson, map[string]float64{ParamMu: mean})
	case Geometric:
		if lo < 1 {
			return Distribution{}, core.NewInvalidObservationError("geometric fit requires observations >= 1")
		}
		return Construct(Geometric, map[string]float64{ParamP: 1 / mean})
	case Binomial:
		if lo < 0 {
			return Distribution{}, core.NewInvalidObservationError("binomial fit requires non-negative counts")
		}
		if hi == 0 {
			return Construct(Binomial, map[string]float64{ParamN: 0, ParamP: 0})
		}
		nLo := int(hi)
		nHi := 2 * nLo
		bestN, bestP, bestLL := nLo, mean/hi, math.Inf(-1)
		for n := nLo; n <= nHi; n++ {
			p := mean / float64(n)
			cand := Distribution{family: Binomial, params: map[string]float64{ParamN: float64(n), ParamP: p}}
			ll := 0.0
			for _, v := range obs {
				ll += cand.logProb(v)
			}
			if ll > bestLL {
				bestN, bestP, bestLL = n, p, ll
			}
		}
		return Construct(Binomial, map[string]float64{ParamN: float64(bestN), ParamP: bestP})
	}
	return Distribution{}, core.NewUnsupportedOperationError("fit", "unhandled family "+string(d.family))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
