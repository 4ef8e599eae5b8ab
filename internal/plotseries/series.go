// Package plotseries produces the data series a visualization sink needs to
// draw a distribution: a sampled density curve for continuous families, a
// step outline for discrete mass functions, and histogram bins for raw
// observations. It never draws anything itself.
package plotseries

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gostats/domain/core"
	"gostats/domain/dist"
)

// Series is an (x, y) paired sequence.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Curve samples a continuous density at n evenly spaced points on [lo, hi].
func Curve(d dist.Distribution, lo, hi float64, n int) (Series, error) {
	if n < 2 {
		n = 2
	}
	x := floats.Span(make([]float64, n), lo, hi)
	y := make([]float64, n)
	for i, xi := range x {
		v, err := d.PDF(xi)
		if err != nil {
			return Series{}, err
		}
		y[i] = v
	}
	return Series{X: x, Y: y}, nil
}

// MassOutline renders a discrete mass function on the integers of [lo, hi]
// as a bar-style step outline: each support point k becomes a box from
// k-0.5 to k+0.5 at height pmf(k), dropping to zero between boxes.
func MassOutline(d dist.Distribution, lo, hi float64) (Series, error) {
	start := math.Ceil(lo)
	stop := math.Floor(hi)
	support := make([]float64, 0, int(stop-start)+1)
	for k := start; k <= stop; k++ {
		support = append(support, k)
	}
	if len(support) == 0 {
		support = append(support, start)
	}
	masses := make([]float64, len(support))
	for i, k := range support {
		m, err := d.PMF(k)
		if err != nil {
			return Series{}, err
		}
		masses[i] = m
	}

	// Each edge value appears three times so the outline rises from zero,
	// holds the bar height, and falls back; trimming one point at each end
	// leaves 3*(len+1)-2 points.
	edges := make([]float64, len(support)+1)
	for i, k := range support {
		edges[i] = k - 0.5
	}
	edges[len(support)] = support[len(support)-1] + 0.5

	x := make([]float64, 0, 3*len(edges)-2)
	y := make([]float64, 0, 3*len(edges)-2)
	for i, e := range edges {
		for rep := 0; rep < 3; rep++ {
			if (i == 0 && rep == 0) || (i == len(edges)-1 && rep == 2) {
				continue
			}
			x = append(x, e)
		}
	}
	for i := range x {
		if i%3 == 0 {
			y = append(y, 0)
		} else {
			y = append(y, masses[i/3])
		}
	}
	return Series{X: x, Y: y}, nil
}

// Histogram bins observations into count equal-width bins and returns the
// dividers (count+1 edges) alongside the per-bin counts.
func Histogram(obs []float64, count int) (dividers, counts []float64) {
	if len(obs) == 0 || count < 1 {
		return nil, nil
	}
	sorted := make([]float64, len(obs))
	copy(sorted, obs)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		hi = lo + 1
	}
	dividers = floats.Span(make([]float64, count+1), lo, hi)
	// Open the last divider slightly so the maximum lands in the top bin.
	dividers[count] = math.Nextafter(hi, math.Inf(1))
	counts = stat.Histogram(make([]float64, count), dividers, sorted, nil)
	return dividers, counts
}

// SampleSeries flattens a sampled array into the histogram input form.
func SampleSeries(a core.Array, bins int) (dividers, counts []float64) {
	return Histogram(a.Data, bins)
}
