package htest

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"gostats/domain/core"
	"gostats/domain/table"
)

// MultiEngine runs all-pairs multiple comparisons across named groups and
// assembles the labeled asymmetric-display p-value matrix.
type MultiEngine struct{}

// NewMultiEngine creates a multiple-comparison engine.
func NewMultiEngine() *MultiEngine {
	return &MultiEngine{}
}

// AllPairs compares every unordered pair of the input samples with the
// requested method and arranges the p-values into a PValueMatrix. Pairs are
// independent of each other and are computed concurrently.
func (e *MultiEngine) AllPairs(samples []table.NamedSample, method MultiMethod) (PValueMatrix, error) {
	k := len(samples)
	if k < 2 {
		return PValueMatrix{}, core.NewInvalidObservationError(fmt.Sprintf("need at least two groups, got %d", k))
	}
	groups := make([][]float64, k)
	labels := make([]string, k)
	for i, s := range samples {
		if len(s.Values) == 0 {
			return PValueMatrix{}, core.NewInvalidObservationError("group " + s.Name + " is empty")
		}
		groups[i] = s.Values
		labels[i] = s.Name
	}

	raw := make([][]float64, k)
	for i := range raw {
		raw[i] = make([]float64, k)
		raw[i][i] = 1
	}

	var g errgroup.Group
	switch method {
	case TukeyHSD:
		s2, df, err := pooledWithinVariance(groups)
		if err != nil {
			return PValueMatrix{}, err
		}
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				g.Go(func() error {
					p := tukeyHSDPair(groups[i], groups[j], s2, df, k)
					raw[i][j], raw[j][i] = p, p
					return nil
				})
			}
		}
	case SteelDwass:
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				g.Go(func() error {
					p, err := steelDwassPair(groups[i], groups[j], k)
					if err != nil {
						return fmt.Errorf("groups %q and %q: %w", labels[i], labels[j], err)
					}
					raw[i][j], raw[j][i] = p, p
					return nil
				})
			}
		}
	default:
		return PValueMatrix{}, core.NewUnsupportedOperationError("all-pairs comparison", "unknown method "+string(method))
	}
	if err := g.Wait(); err != nil {
		return PValueMatrix{}, err
	}

	return PValueMatrix{
		Method: method,
		Labels: labels,
		Cells:  assembleCells(labels, raw),
		Raw:    raw,
	}, nil
}

// assembleCells builds the (n+1) x (n+1) display table: labels on row 0 and
// column 0, "1.0" on the diagonal, asterisk codes below it, and p-values
// formatted to five significant digits above it.
func assembleCells(labels []string, raw [][]float64) [][]string {
	k := len(labels)
	cells := make([][]string, k+1)
	for i := range cells {
		cells[i] = make([]string, k+1)
	}
	for j, label := range labels {
		cells[0][j+1] = label
		cells[j+1][0] = label
	}
	for i := 1; i <= k; i++ {
		for j := 1; j <= k; j++ {
			switch {
			case i > j:
				cells[i][j] = PValueAsterisks(raw[i-1][j-1])
			case i == j:
				cells[i][j] = "1.0"
			default:
				cells[i][j] = FormatPValue(raw[i-1][j-1])
			}
		}
	}
	return cells
}

// FormatPValue renders a p-value with five significant digits, the format
// used throughout result tables.
func FormatPValue(p float64) string {
	if math.IsNaN(p) {
		return "nan"
	}
	return fmt.Sprintf("%.5g", p)
}
