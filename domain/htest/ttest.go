package htest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gostats/domain/core"
)

// Runner executes two-sample significance tests. Each invocation is
// stateless; the struct only carries tuning knobs.
type Runner struct {
	// FThreshold drives AutoT: when the preliminary F-test p-value falls
	// below it, Student's test is selected, otherwise Welch's. This
	// mapping is deliberate: it reproduces the documented behavior of the
	// system being modeled, even though it inverts the textbook
	// convention.
	FThreshold float64
}

// NewRunner creates a runner with the default F-threshold of 0.05.
func NewRunner() *Runner {
	return &Runner{FThreshold: 0.05}
}

// TwoSample runs the requested two-sample test. sameSizeRequired enforces
// len(a) == len(b) up front; paired methods enforce it regardless.
func (r *Runner) TwoSample(a, b []float64, method Method, alt Alternative, sameSizeRequired bool) (TestResult, error) {
	if sameSizeRequired && len(a) != len(b) {
		return TestResult{}, core.NewSampleSizeMismatchError(len(a), len(b))
	}
	switch method {
	case StudentT:
		return studentTTest(a, b, alt)
	case WelchT:
		return welchTTest(a, b, alt)
	case PairedT:
		return pairedTTest(a, b, alt)
	case AutoT:
		return r.autoTTest(a, b, alt)
	case WilcoxonSignedRank:
		return wilcoxonSignedRank(a, b, alt)
	case MannWhitneyU:
		return mannWhitneyU(a, b, alt)
	}
	return TestResult{}, core.NewUnsupportedOperationError("two-sample test", "unknown method "+string(method))
}

// VarianceFTest runs the two-sided variance-ratio F-test for equality of
// variances between a and b.
func (r *Runner) VarianceFTest(a, b []float64) (TestResult, error) {
	n1, _, v1, err := moments(a)
	if err != nil {
		return TestResult{}, err
	}
	n2, _, v2, err := moments(b)
	if err != nil {
		return TestResult{}, err
	}
	if v2 == 0 {
		return TestResult{}, core.NewInvalidObservationError("second sample has zero variance")
	}
	f := v1 / v2
	fDist := distuv.F{D1: n1 - 1, D2: n2 - 1}
	cdf := fDist.CDF(f)
	p := 2 * math.Min(cdf, 1-cdf)
	if p > 1 {
		p = 1
	}
	df := n1 - 1
	return TestResult{Method: "f", Alternative: TwoSided, Statistic: f, PValue: p, DF: &df}, nil
}

// autoTTest picks Student's or Welch's test from a preliminary F-test: an
// F p-value below the threshold selects Student, otherwise Welch. The
// selected method is recorded on the result.
func (r *Runner) autoTTest(a, b []float64, alt Alternative) (TestResult, error) {
	threshold := r.FThreshold
	if threshold == 0 {
		threshold = 0.05
	}
	fRes, err := r.VarianceFTest(a, b)
	if err != nil {
		return TestResult{}, err
	}
	if fRes.PValue < threshold {
		return studentTTest(a, b, alt)
	}
	return welchTTest(a, b, alt)
}

func studentTTest(a, b []float64, alt Alternative) (TestResult, error) {
	n1, m1, v1, err := moments(a)
	if err != nil {
		return TestResult{}, err
	}
	n2, m2, v2, err := moments(b)
	if err != nil {
		return TestResult{}, err
	}
	if v1 == 0 && v2 == 0 {
		return TestResult{}, core.NewInvalidObservationError("both samples have zero variance")
	}
	df := n1 + n2 - 2
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	t := (m1 - m2) / math.Sqrt(pooled*(1/n1+1/n2))
	return tResult(StudentT, t, df, alt), nil
}

func welchTTest(a, b []float64, alt Alternative) (TestResult, error) {
	n1, m1, v1, err := moments(a)
	if err != nil {
		return TestResult{}, err
	}
	n2, m2, v2, err := moments(b)
	if err != nil {
		return TestResult{}, err
	}
	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		return TestResult{}, core.NewInvalidObservationError("both samples have zero variance")
	}
	t := (m1 - m2) / math.Sqrt(se2)
	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / ((v1/n1)*(v1/n1)/(n1-1) + (v2/n2)*(v2/n2)/(n2-1))
	return tResult(WelchT, t, df, alt), nil
}

func pairedTTest(a, b []float64, alt Alternative) (TestResult, error) {
	if len(a) != len(b) {
		return TestResult{}, core.NewSampleSizeMismatchError(len(a), len(b))
	}
	diffs := make([]float64, len(a))
	for i := range a {
		diffs[i] = a[i] - b[i]
	}
	n, m, v, err := moments(diffs)
	if err != nil {
		return TestResult{}, err
	}
	if v == 0 {
		return TestResult{}, core.NewInvalidObservationError("paired differences have zero variance")
	}
	t := m / math.Sqrt(v/n)
	return tResult(PairedT, t, n-1, alt), nil
}

// tResult converts a t-statistic into a TestResult under the alternative.
func tResult(method Method, t, df float64, alt Alternative) TestResult {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	var p float64
	switch alt {
	case Less:
		p = dist.CDF(t)
	case Greater:
		p = 1 - dist.CDF(t)
	default:
		p = 2 * (1 - dist.CDF(math.Abs(t)))
	}
	return TestResult{Method: method, Alternative: normalizeAlt(alt), Statistic: t, PValue: p, DF: &df}
}

func normalizeAlt(alt Alternative) Alternative {
	switch alt {
	case Less, Greater:
		return alt
	default:
		return TwoSided
	}
}

// moments returns the size, mean, and unbiased variance of a sample,
// requiring at least two elements.
func moments(xs []float64) (n, mean, variance float64, err error) {
	if len(xs) < 2 {
		return 0, 0, 0, core.NewInvalidObservationError("sample needs at least two values")
	}
	n = float64(len(xs))
	for _, v := range xs {
		mean += v
	}
	mean /= n
	for _, v := range xs {
		d := v - mean
		variance += d * d
	}
	variance /= n - 1
	return n, mean, variance, nil
}
