package htest

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	"gostats/domain/core"
)

// studentizedRangeCDF returns P(Q <= q) where Q is the studentized range of
// k groups with df error degrees of freedom. A non-positive or infinite df
// selects the known-variance (infinite df) form.
func studentizedRangeCDF(q float64, k int, df float64) float64 {
	if q <= 0 {
		return 0
	}
	if df <= 0 || math.IsInf(df, 1) || df > 2000 {
		return rangeCDFNormal(q, k)
	}
	// Integrate over the scale factor u = s/sigma, whose density is the
	// chi distribution with df degrees of freedom scaled by 1/sqrt(df).
	lgamma, _ := math.Lgamma(df / 2)
	logConst := math.Ln2 + (df/2)*math.Log(df/2) - lgamma
	density := func(u float64) float64 {
		if u <= 0 {
			return 0
		}
		return math.Exp(logConst + (df-1)*math.Log(u) - df*u*u/2)
	}
	upper := 1 + 12/math.Sqrt(df)
	p := quad.Fixed(func(u float64) float64 {
		return density(u) * rangeCDFNormal(q*u, k)
	}, 0, upper, 128, nil, 0)
	return clampUnit(p)
}

// rangeCDFNormal is P(range of k iid standard normals <= q).
func rangeCDFNormal(q float64, k int) float64 {
	if q <= 0 {
		return 0
	}
	kf := float64(k)
	p := kf * quad.Fixed(func(z float64) float64 {
		return distuv.UnitNormal.Prob(z) * math.Pow(distuv.UnitNormal.CDF(z)-distuv.UnitNormal.CDF(z-q), kf-1)
	}, -9, 9, 201, nil, 0)
	return clampUnit(p)
}

func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// tukeyHSDPair computes the Tukey-Kramer p-value for groups i and j given
// the pooled within-group variance s2 with df degrees of freedom.
func tukeyHSDPair(gi, gj []float64, s2, df float64, k int) float64 {
	mi := sampleMean(gi)
	mj := sampleMean(gj)
	ni, nj := float64(len(gi)), float64(len(gj))
	se := math.Sqrt(s2 / 2 * (1/ni + 1/nj))
	q := math.Abs(mi-mj) / se
	return 1 - studentizedRangeCDF(q, k, df)
}

// pooledWithinVariance returns the pooled within-group variance and its
// degrees of freedom across all groups.
func pooledWithinVariance(groups [][]float64) (s2, df float64, err error) {
	total := 0
	ss := 0.0
	for _, g := range groups {
		if len(g) < 2 {
			return 0, 0, core.NewInvalidObservationError("each group needs at least two values")
		}
		m := sampleMean(g)
		for _, v := range g {
			d := v - m
			ss += d * d
		}
		total += len(g)
	}
	df = float64(total - len(groups))
	s2 = ss / df
	if s2 == 0 {
		return 0, 0, core.NewInvalidObservationError("groups have zero within-group variance")
	}
	return s2, df, nil
}

// steelDwassPair computes the Steel-Dwass p-value for one pair of groups
// out of k, following the Dwass-Steel-Critchlow-Fligner construction: the
// smaller Mann-Whitney U is standardized with tie correction and referred
// to the studentized range with infinite degrees of freedom.
func steelDwassPair(gi, gj []float64, k int) (float64, error) {
	ni, nj := float64(len(gi)), float64(len(gj))
	if len(gi) == 0 || len(gj) == 0 {
		return 0, core.NewInvalidObservationError("each group must be non-empty")
	}
	combined := make([]float64, 0, len(gi)+len(gj))
	combined = append(combined, gi...)
	combined = append(combined, gj...)
	ranks, tieSum := midranks(combined)

	ri := 0.0
	for _, r := range ranks[:len(gi)] {
		ri += r
	}
	u1 := ri - ni*(ni+1)/2
	u2 := ni*nj - u1
	u := math.Min(u1, u2)

	n := ni + nj
	sigma2 := ni * nj / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		return 0, core.NewInvalidObservationError("pair carries no rank information")
	}
	t := (u - ni*nj/2) / math.Sqrt(sigma2)
	return 1 - studentizedRangeCDF(math.Sqrt2*math.Abs(t), k, math.Inf(1)), nil
}

func sampleMean(xs []float64) float64 {
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
