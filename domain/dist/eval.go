package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gostats/domain/core"
)

// PDF evaluates the probability density function at x. Calling PDF on a
// discrete family is a programming error.
func (d Distribution) PDF(x float64) (float64, error) {
	if d.Kind() != Continuous {
		return 0, core.NewUnsupportedOperationError("pdf", "family "+string(d.family)+" is discrete")
	}
	switch d.family {
	case Normal:
		return distuv.Normal{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale]}.Prob(x), nil
	case Uniform:
		return distuv.Uniform{Min: d.params[ParamLoc], Max: d.params[ParamLoc] + d.params[ParamScale]}.Prob(x), nil
	case Exponential:
		return distuv.Exponential{Rate: 1 / d.params[ParamScale]}.Prob(x), nil
	case Gamma:
		return distuv.Gamma{Alpha: d.params[ParamA], Beta: 1 / d.params[ParamScale]}.Prob(x), nil
	case Beta:
		return distuv.Beta{Alpha: d.params[ParamA], Beta: d.params[ParamB]}.Prob(x), nil
	case Cauchy:
		z := (x - d.params[ParamLoc]) / d.params[ParamScale]
		return 1 / (math.Pi * d.params[ParamScale] * (1 + z*z)), nil
	case StudentT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.params[ParamDF]}.Prob(x), nil
	}
	return 0, core.NewUnsupportedOperationError("pdf", "unhandled family "+string(d.family))
}

// PMF evaluates the probability mass function at k. The mass is defined on
// the family's integer support; off-support points have zero mass. Calling
// PMF on a continuous family is a programming error.
func (d Distribution) PMF(k float64) (float64, error) {
	if d.Kind() != Discrete {
		return 0, core.NewUnsupportedOperationError("pmf", "family "+string(d.family)+" is continuous")
	}
	if k != math.Trunc(k) {
		return 0, nil
	}
	switch d.family {
	case Binomial:
		if k < 0 || k > d.params[ParamN] {
			return 0, nil
		}
		return distuv.Binomial{N: d.params[ParamN], P: d.params[ParamP]}.Prob(k), nil
	case Poisson:
		if k < 0 {
			return 0, nil
		}
		return distuv.Poisson{Lambda: d.params[ParamMu]}.Prob(k), nil
	case Geometric:
		if k < 1 {
			return 0, nil
		}
		p := d.params[ParamP]
		return p * math.Pow(1-p, k-1), nil
	}
	return 0, core.NewUnsupportedOperationError("pmf", "unhandled family "+string(d.family))
}

// CDF evaluates the cumulative distribution function at x.
func (d Distribution) CDF(x float64) float64 {
	switch d.family {
	case Normal:
		return distuv.Normal{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale]}.CDF(x)
	case Uniform:
		return distuv.Uniform{Min: d.params[ParamLoc], Max: d.params[ParamLoc] + d.params[ParamScale]}.CDF(x)
	case Exponential:
		return distuv.Exponential{Rate: 1 / d.params[ParamScale]}.CDF(x)
	case Gamma:
		return distuv.Gamma{Alpha: d.params[ParamA], Beta: 1 / d.params[ParamScale]}.CDF(x)
	case Beta:
		return distuv.Beta{Alpha: d.params[ParamA], Beta: d.params[ParamB]}.CDF(x)
	case Cauchy:
		return 0.5 + math.Atan((x-d.params[ParamLoc])/d.params[ParamScale])/math.Pi
	case StudentT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.params[ParamDF]}.CDF(x)
	case Binomial:
		k := math.Floor(x)
		n := d.params[ParamN]
		if k < 0 {
			return 0
		}
		if k >= n {
			return 1
		}
		return distuv.Binomial{N: n, P: d.params[ParamP]}.CDF(k)
	case Poisson:
		k := math.Floor(x)
		if k < 0 {
			return 0
		}
		return distuv.Poisson{Lambda: d.params[ParamMu]}.CDF(k)
	case Geometric:
		k := math.Floor(x)
		if k < 1 {
			return 0
		}
		return 1 - math.Pow(1-d.params[ParamP], k)
	}
	return math.NaN()
}

// Quantile evaluates the inverse CDF at p in [0, 1]. For discrete families
// it returns the smallest supported integer k with CDF(k) >= p.
func (d Distribution) Quantile(p float64) float64 {
	if p < 0 || p > 1 || math.IsNaN(p) {
		panic("dist: quantile probability out of [0, 1]")
	}
	switch d.family {
	case Normal:
		return distuv.Normal{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale]}.Quantile(p)
	case Uniform:
		return distuv.Uniform{Min: d.params[ParamLoc], Max: d.params[ParamLoc] + d.params[ParamScale]}.Quantile(p)
	case Exponential:
		return distuv.Exponential{Rate: 1 / d.params[ParamScale]}.Quantile(p)
	case Gamma:
		if p == 0 {
			return 0
		}
		if p == 1 {
			return math.Inf(1)
		}
		g := distuv.Gamma{Alpha: d.params[ParamA], Beta: 1 / d.params[ParamScale]}
		hi := g.Mean() + 1
		for g.CDF(hi) < p {
			hi *= 2
		}
		return bisectQuantile(p, g.CDF, 0, hi)
	case Beta:
		if p == 0 {
			return 0
		}
		if p == 1 {
			return 1
		}
		b := distuv.Beta{Alpha: d.params[ParamA], Beta: d.params[ParamB]}
		return bisectQuantile(p, b.CDF, 0, 1)
	case Cauchy:
		if p == 0 {
			return math.Inf(-1)
		}
		if p == 1 {
			return math.Inf(1)
		}
		return d.params[ParamLoc] + d.params[ParamScale]*math.Tan(math.Pi*(p-0.5))
	case StudentT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.params[ParamDF]}.Quantile(p)
	case Binomial:
		return searchDiscreteQuantile(p, d.CDF, 0, d.params[ParamN])
	case Poisson:
		hi := math.Max(1, d.params[ParamMu])
		for d.CDF(hi) < p && p < 1 {
			hi *= 2
		}
		return searchDiscreteQuantile(p, d.CDF, 0, hi)
	case Geometric:
		pr := d.params[ParamP]
		if p == 0 || pr == 1 {
			return 1
		}
		if p == 1 {
			return math.Inf(1)
		}
		k := math.Ceil(math.Log1p(-p) / math.Log1p(-pr))
		return math.Max(1, k)
	}
	return math.NaN()
}

// bisectQuantile inverts a continuous CDF on a bracketing interval.
func bisectQuantile(p float64, cdf func(float64) float64, lo, hi float64) float64 {
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if mid == lo || mid == hi {
			break
		}
		if cdf(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// searchDiscreteQuantile finds the smallest integer k in [lo, hi] with
// cdf(k) >= p.
func searchDiscreteQuantile(p float64, cdf func(float64) float64, lo, hi float64) float64 {
	if p == 0 {
		return lo
	}
	for lo < hi {
		mid := math.Floor((lo + hi) / 2)
		if cdf(mid) < p {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// logProb is the internal kind-free log density/mass used by fitting.
func (d Distribution) logProb(x float64) float64 {
	switch d.family {
	case Normal:
		return distuv.Normal{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale]}.LogProb(x)
	case Uniform:
		return distuv.Uniform{Min: d.params[ParamLoc], Max: d.params[ParamLoc] + d.params[ParamScale]}.LogProb(x)
	case Exponential:
		return distuv.Exponential{Rate: 1 / d.params[ParamScale]}.LogProb(x)
	case Gamma:
		return distuv.Gamma{Alpha: d.params[ParamA], Beta: 1 / d.params[ParamScale]}.LogProb(x)
	case Beta:
		return distuv.Beta{Alpha: d.params[ParamA], Beta: d.params[ParamB]}.LogProb(x)
	case Cauchy:
		z := (x - d.params[ParamLoc]) / d.params[ParamScale]
		return -math.Log(math.Pi * d.params[ParamScale] * (1 + z*z))
	case StudentT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.params[ParamDF]}.LogProb(x)
	case Binomial, Poisson, Geometric:
		m, _ := d.PMF(x)
		return math.Log(m)
	}
	return math.Inf(-1)
}
