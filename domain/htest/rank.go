package htest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"gostats/domain/core"
)

// midranks assigns 1-based ranks with ties sharing their average rank. It
// also returns the tie-correction term, the sum of t^3 - t over tie groups.
func midranks(xs []float64) (ranks []float64, tieSum float64) {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// Average of positions i+1 .. j (1-based)
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		t := float64(j - i)
		tieSum += t*t*t - t
		i = j
	}
	return ranks, tieSum
}

// mannWhitneyU runs the independent-sample rank test using the tie- and
// continuity-corrected normal approximation. The statistic is U of the
// first sample.
func mannWhitneyU(a, b []float64, alt Alternative) (TestResult, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) == 0 || len(b) == 0 {
		return TestResult{}, core.NewInvalidObservationError("both samples must be non-empty")
	}
	combined := make([]float64, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	ranks, tieSum := midranks(combined)

	r1 := 0.0
	for _, r := range ranks[:len(a)] {
		r1 += r
	}
	u1 := r1 - n1*(n1+1)/2
	n := n1 + n2
	mu := n1 * n2 / 2
	sigma2 := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		return TestResult{}, core.NewInvalidObservationError("all values are identical")
	}
	sigma := math.Sqrt(sigma2)

	p := normalApproxP(u1, mu, sigma, alt)
	return TestResult{Method: MannWhitneyU, Alternative: normalizeAlt(alt), Statistic: u1, PValue: p}, nil
}

// wilcoxonSignedRank runs the paired rank test. Zero differences are
// dropped before ranking. The reported statistic is min(W+, W-) for the
// two-sided alternative and W+ otherwise.
func wilcoxonSignedRank(a, b []float64, alt Alternative) (TestResult, error) {
	if len(a) != len(b) {
		return TestResult{}, core.NewSampleSizeMismatchError(len(a), len(b))
	}
	absDiffs := make([]float64, 0, len(a))
	positive := make([]bool, 0, len(a))
	for i := range a {
		d := a[i] - b[i]
		if d == 0 {
			continue
		}
		absDiffs = append(absDiffs, math.Abs(d))
		positive = append(positive, d > 0)
	}
	if len(absDiffs) == 0 {
		return TestResult{}, core.NewInvalidObservationError("all paired differences are zero")
	}
	n := float64(len(absDiffs))
	ranks, tieSum := midranks(absDiffs)

	wPlus := 0.0
	for i, r := range ranks {
		if positive[i] {
			wPlus += r
		}
	}
	wMinus := n*(n+1)/2 - wPlus
	mu := n * (n + 1) / 4
	sigma2 := n*(n+1)*(2*n+1)/24 - tieSum/48
	if sigma2 <= 0 {
		return TestResult{}, core.NewInvalidObservationError("differences carry no rank information")
	}
	sigma := math.Sqrt(sigma2)

	p := normalApproxP(wPlus, mu, sigma, alt)
	statistic := wPlus
	if normalizeAlt(alt) == TwoSided {
		statistic = math.Min(wPlus, wMinus)
	}
	return TestResult{Method: WilcoxonSignedRank, Alternative: normalizeAlt(alt), Statistic: statistic, PValue: p}, nil
}

// normalApproxP converts a rank statistic to a p-value via the standard
// normal with a 0.5 continuity correction.
func normalApproxP(stat, mu, sigma float64, alt Alternative) float64 {
	switch alt {
	case Greater:
		return 1 - distuv.UnitNormal.CDF((stat-mu-0.5)/sigma)
	case Less:
		return distuv.UnitNormal.CDF((stat - mu + 0.5) / sigma)
	default:
		z := (math.Abs(stat-mu) - 0.5) / sigma
		if z < 0 {
			z = 0
		}
		p := 2 * (1 - distuv.UnitNormal.CDF(z))
		if p > 1 {
			p = 1
		}
		return p
	}
}
