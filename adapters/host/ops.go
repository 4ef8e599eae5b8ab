// Package host translates host-application configuration records into calls
// against the core: distribution construction, fitting, sampling, rendering,
// and the test suite. Every operation returns its raw typed value wrapped in
// the generic result container.
package host

import (
	"fmt"
	"strconv"

	"gostats/domain/artifact"
	"gostats/domain/dist"
	"gostats/domain/htest"
	"gostats/domain/table"
	"gostats/internal/plotseries"
)

// DistConfig configures distribution construction.
type DistConfig struct {
	Family dist.Family
	Params map[string]float64
	Title  string
}

// ConstructDistribution builds a distribution from a family identifier and
// named parameters.
func ConstructDistribution(cfg DistConfig) (artifact.Model, error) {
	d, err := dist.Construct(cfg.Family, cfg.Params)
	if err != nil {
		return artifact.Model{}, err
	}
	title := cfg.Title
	if title == "" {
		title = string(cfg.Family)
	}
	return artifact.New(d, artifact.TypeDistribution, title), nil
}

// FitConfig binds a fit operation to a data selection.
type FitConfig struct {
	Source       table.Source
	Observations *table.SelectionSpec
	// UseParamsAsGuess seeds the optimizer with the current parameters.
	UseParamsAsGuess bool
	Title            string
}

// FitDistribution re-fits a distribution to the selected observations and
// returns the fitted copy.
func FitDistribution(d dist.Distribution, cfg FitConfig) (artifact.Model, error) {
	dtype := table.Float64
	if d.Kind() == dist.Discrete {
		dtype = table.Int64
	}
	obs, err := table.NewExtractor().Extract(cfg.Source, cfg.Observations, dtype)
	if err != nil {
		return artifact.Model{}, err
	}
	var guess map[string]float64
	if cfg.UseParamsAsGuess {
		guess = d.Params()
	}
	fitted, err := d.Fit(obs.Values, guess)
	if err != nil {
		return artifact.Model{}, err
	}
	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("%s fitted", d.Family())
	}
	return artifact.New(fitted, artifact.TypeDistribution, title), nil
}

// SampleConfig configures random sampling from a distribution.
type SampleConfig struct {
	Shape []int
	Seed  *uint64
	Title string
}

// SampleDistribution draws a shaped sample array.
func SampleDistribution(d dist.Distribution, cfg SampleConfig) (artifact.Model, error) {
	samples, err := d.Sample(cfg.Shape, cfg.Seed)
	if err != nil {
		return artifact.Model{}, err
	}
	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("Samples from %s", d.Family())
	}
	return artifact.New(samples, artifact.TypeArray, title), nil
}

// RenderConfig configures the data series handed to a visualization sink.
type RenderConfig struct {
	// Observations, when present, widen the inferred domain and populate
	// the histogram.
	Observations []float64
	CurvePoints  int
	HistogramBin int
	Title        string
}

// DistributionView is the drawable description of a distribution: a density
// curve or mass outline plus the parameter panel text and an optional
// observation histogram.
type DistributionView struct {
	Series     plotseries.Series `json:"series"`
	ParamsText string            `json:"params_text"`
	HistEdges  []float64         `json:"hist_edges,omitempty"`
	HistCounts []float64         `json:"hist_counts,omitempty"`
}

// RenderDistribution produces the view data for a distribution. Domain
// inference is pure; widening to cover observations happens here, on the
// caller's side of that boundary.
func RenderDistribution(d dist.Distribution, cfg RenderConfig) (artifact.Model, error) {
	lo, hi := dist.InferDomain(d)
	for _, v := range cfg.Observations {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	points := cfg.CurvePoints
	if points == 0 {
		points = 100
	}
	var series plotseries.Series
	var err error
	if d.Kind() == dist.Continuous {
		series, err = plotseries.Curve(d, lo, hi, points)
	} else {
		series, err = plotseries.MassOutline(d, lo, hi)
	}
	if err != nil {
		return artifact.Model{}, err
	}
	view := DistributionView{Series: series, ParamsText: d.Describe()}
	if len(cfg.Observations) > 0 {
		bins := cfg.HistogramBin
		if bins == 0 {
			bins = 20
		}
		view.HistEdges, view.HistCounts = plotseries.Histogram(cfg.Observations, bins)
	}
	title := cfg.Title
	if title == "" {
		title = string(d.Family())
	}
	return artifact.New(view, artifact.TypePlot, title), nil
}

// TestConfig configures a two-sample test over two selections of a source.
type TestConfig struct {
	Source      table.Source
	A, B        *table.SelectionSpec
	Method      htest.Method
	Alternative htest.Alternative
	FThreshold  float64
	Title       string
}

// RunTwoSampleTest extracts both selections and runs the configured test,
// returning the result table in display form.
func RunTwoSampleTest(cfg TestConfig) (artifact.Model, error) {
	x := table.NewExtractor()
	a, err := x.Extract(cfg.Source, cfg.A, table.Float64)
	if err != nil {
		return artifact.Model{}, err
	}
	b, err := x.Extract(cfg.Source, cfg.B, table.Float64)
	if err != nil {
		return artifact.Model{}, err
	}
	runner := htest.NewRunner()
	if cfg.FThreshold != 0 {
		runner.FThreshold = cfg.FThreshold
	}
	sameSize := cfg.Method == htest.PairedT || cfg.Method == htest.WilcoxonSignedRank
	res, err := runner.TwoSample(a.Values, b.Values, cfg.Method, cfg.Alternative, sameSize)
	if err != nil {
		return artifact.Model{}, err
	}
	rows := resultRows(res)
	rows = append(rows, []string{"comparison", fmt.Sprintf("%s vs %s", a.Name, b.Name)})
	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("%s test result", res.Method)
	}
	return artifact.New(rows, artifact.TypeTable, title), nil
}

// resultRows renders a TestResult as the standard result-table rows:
// p-value, its asterisk tier, the statistic, and degrees of freedom when the
// test has them, plus the method actually run.
func resultRows(res htest.TestResult) [][]string {
	rows := [][]string{
		{"p-value", htest.FormatPValue(res.PValue)},
		{"", res.Asterisks()},
		{"statistic", htest.FormatPValue(res.Statistic)},
	}
	if res.DF != nil {
		rows = append(rows, []string{"degrees of freedom", strconv.Itoa(int(*res.DF))})
	}
	rows = append(rows, []string{"kind", string(res.Method)})
	return rows
}

// MultiConfig configures an all-pairs comparison. Either Values lists one
// selection per group, or Groups pairs a label column with a single value
// column to partition.
type MultiConfig struct {
	Source table.Source
	Values []*table.SelectionSpec
	Groups *table.SelectionSpec
	Method htest.MultiMethod
	Title  string
}

// RunMultipleComparison extracts the groups and assembles the labeled
// p-value matrix.
func RunMultipleComparison(cfg MultiConfig) (artifact.Model, error) {
	x := table.NewExtractor()
	var samples []table.NamedSample
	if cfg.Groups != nil {
		if len(cfg.Values) != 1 {
			return artifact.Model{}, fmt.Errorf("grouped comparison requires exactly one value selection, got %d", len(cfg.Values))
		}
		grouped, err := x.ExtractGrouped(cfg.Source, cfg.Groups, cfg.Values[0])
		if err != nil {
			return artifact.Model{}, err
		}
		samples = grouped
	} else {
		for _, sel := range cfg.Values {
			s, err := x.Extract(cfg.Source, sel, table.Float64)
			if err != nil {
				return artifact.Model{}, err
			}
			samples = append(samples, s)
		}
	}
	matrix, err := htest.NewMultiEngine().AllPairs(samples, cfg.Method)
	if err != nil {
		return artifact.Model{}, err
	}
	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("%s test result", cfg.Method)
	}
	return artifact.New(matrix, artifact.TypeTable, title), nil
}
