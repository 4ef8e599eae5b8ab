package plotseries

import (
	"math"
	"testing"

	"gostats/domain/core"
	"gostats/domain/dist"
)

func TestCurve(t *testing.T) {
	d := dist.MustConstruct(dist.Normal, nil)
	s, err := Curve(d, -3, 3, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.X) != 101 || len(s.Y) != 101 {
		t.Fatalf("got %d x %d points", len(s.X), len(s.Y))
	}
	if s.X[0] != -3 || s.X[100] != 3 {
		t.Errorf("endpoints = (%v, %v)", s.X[0], s.X[100])
	}
	// Standard normal peaks at 1/sqrt(2*pi).
	if math.Abs(s.Y[50]-0.3989422804) > 1e-9 {
		t.Errorf("peak = %v", s.Y[50])
	}
	if math.Abs(s.Y[0]-s.Y[100]) > 1e-12 {
		t.Errorf("symmetric density should match at mirrored endpoints: %v vs %v", s.Y[0], s.Y[100])
	}
}

func TestCurveRejectsDiscrete(t *testing.T) {
	if _, err := Curve(dist.MustConstruct(dist.Poisson, nil), 0, 10, 50); !core.IsUnsupportedOperationError(err) {
		t.Errorf("got %v, want unsupported operation", err)
	}
}

func TestMassOutline(t *testing.T) {
	d := dist.MustConstruct(dist.Binomial, map[string]float64{"n": 3, "p": 0.5})
	s, err := MassOutline(d, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	// Four support points give five edges and 3*5-2 = 13 outline points.
	if len(s.X) != 13 || len(s.Y) != 13 {
		t.Fatalf("got %d x %d points, want 13", len(s.X), len(s.Y))
	}
	if s.X[0] != -0.5 || s.X[12] != 3.5 {
		t.Errorf("outline spans (%v, %v), want (-0.5, 3.5)", s.X[0], s.X[12])
	}
	for i := 0; i < len(s.Y); i += 3 {
		if s.Y[i] != 0 {
			t.Errorf("outline should touch zero at index %d, got %v", i, s.Y[i])
		}
	}
	// Bar heights carry the masses: pmf(0) = 0.125, pmf(1) = 0.375.
	if math.Abs(s.Y[1]-0.125) > 1e-12 || math.Abs(s.Y[2]-0.125) > 1e-12 {
		t.Errorf("first bar = (%v, %v), want 0.125", s.Y[1], s.Y[2])
	}
	if math.Abs(s.Y[4]-0.375) > 1e-12 {
		t.Errorf("second bar = %v, want 0.375", s.Y[4])
	}
}

func TestMassOutlineRejectsContinuous(t *testing.T) {
	if _, err := MassOutline(dist.MustConstruct(dist.Normal, nil), -3, 3); !core.IsUnsupportedOperationError(err) {
		t.Errorf("got %v, want unsupported operation", err)
	}
}

func TestHistogram(t *testing.T) {
	obs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	dividers, counts := Histogram(obs, 5)
	if len(dividers) != 6 || len(counts) != 5 {
		t.Fatalf("got %d dividers and %d counts", len(dividers), len(counts))
	}
	total := 0.0
	for i, c := range counts {
		if c != 2 {
			t.Errorf("bin %d = %v, want 2", i, c)
		}
		total += c
	}
	if total != 10 {
		t.Errorf("counts sum to %v, want 10", total)
	}
	if dividers[0] != 0 {
		t.Errorf("first divider = %v, want 0", dividers[0])
	}
	// The top edge is opened so the maximum lands inside the last bin.
	if dividers[5] <= 9 {
		t.Errorf("last divider = %v, should exceed the maximum", dividers[5])
	}
}

func TestHistogramConstantObservations(t *testing.T) {
	dividers, counts := Histogram([]float64{4, 4, 4}, 3)
	if len(dividers) != 4 || len(counts) != 3 {
		t.Fatalf("got %d dividers and %d counts", len(dividers), len(counts))
	}
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total != 3 {
		t.Errorf("counts sum to %v, want 3", total)
	}
}

func TestHistogramDegenerateInputs(t *testing.T) {
	if d, c := Histogram(nil, 5); d != nil || c != nil {
		t.Error("no observations should yield no bins")
	}
	if d, c := Histogram([]float64{1, 2}, 0); d != nil || c != nil {
		t.Error("zero bins should yield nothing")
	}
}

func TestSampleSeries(t *testing.T) {
	a, _ := core.NewArray(2, 5)
	copy(a.Data, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	dividers, counts := SampleSeries(a, 5)
	if len(dividers) != 6 || len(counts) != 5 {
		t.Fatalf("got %d dividers and %d counts", len(dividers), len(counts))
	}
}
