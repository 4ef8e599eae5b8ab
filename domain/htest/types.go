// Package htest runs two-sample significance tests and all-pairs multiple
// comparisons over named samples.
package htest

// Alternative is the alternative hypothesis of a two-sample test.
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// Method identifies a two-sample test procedure.
type Method string

const (
	// StudentT is the pooled-variance independent two-sample t-test.
	StudentT Method = "student"
	// WelchT is the unequal-variance independent two-sample t-test.
	WelchT Method = "welch"
	// PairedT is the paired-sample t-test; it requires equal sizes.
	PairedT Method = "paired"
	// AutoT selects Student or Welch from a preliminary F-test on the
	// sample variances (see Runner.FThreshold).
	AutoT Method = "auto"
	// WilcoxonSignedRank is the paired non-parametric rank test; it
	// requires equal sizes.
	WilcoxonSignedRank Method = "wilcoxon"
	// MannWhitneyU is the independent non-parametric rank test.
	MannWhitneyU Method = "mann-whitney"
)

// MultiMethod identifies an all-pairs multiple-comparison procedure.
type MultiMethod string

const (
	// TukeyHSD assumes equal variances; appropriate for comparable group
	// sizes and spreads.
	TukeyHSD MultiMethod = "tukey-hsd"
	// SteelDwass is the rank-based alternative for heterogeneous or
	// non-normal groups.
	SteelDwass MultiMethod = "steel-dwass"
)

// TestResult is the outcome of a single significance test. Method records
// the test actually run, which for AutoT is the selected sub-test. DF is nil
// for rank-based tests.
type TestResult struct {
	Method      Method      `json:"method"`
	Alternative Alternative `json:"alternative"`
	Statistic   float64     `json:"statistic"`
	PValue      float64     `json:"p_value"`
	DF          *float64    `json:"df,omitempty"`
}

// Asterisks returns the significance tier of the result's p-value.
func (r TestResult) Asterisks() string {
	return PValueAsterisks(r.PValue)
}

// PValueAsterisks maps a p-value to its tiered textual code. Boundaries are
// exclusive lower bounds: p exactly at a boundary falls into the next tier.
func PValueAsterisks(p float64) string {
	switch {
	case p > 0.05:
		return "n.s."
	case p > 0.01:
		return "*"
	case p > 0.001:
		return "**"
	case p > 0.0001:
		return "***"
	default:
		return "****"
	}
}

// PValueMatrix is the labeled (n+1) x (n+1) display table of an all-pairs
// comparison. Row 0 and column 0 hold group labels, the diagonal holds the
// literal "1.0", cells below the diagonal hold asterisk codes, and cells
// above it hold the same p-values formatted to five significant digits.
type PValueMatrix struct {
	Method MultiMethod `json:"method"`
	Labels []string    `json:"labels"`
	Cells  [][]string  `json:"cells"`
	// Raw holds the underlying pairwise p-values: Raw[i][j] is the
	// p-value for groups i and j, symmetric with a unit diagonal.
	Raw [][]float64 `json:"raw"`
}
