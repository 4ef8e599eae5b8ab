package dist

import (
	"math"
	"testing"

	"gostats/domain/core"
)

func continuousCases() []Distribution {
	return []Distribution{
		MustConstruct(Normal, map[string]float64{"loc": 5, "scale": 2}),
		MustConstruct(Uniform, map[string]float64{"loc": -1, "scale": 3}),
		MustConstruct(Exponential, map[string]float64{"scale": 2.5}),
		MustConstruct(Gamma, map[string]float64{"a": 2, "scale": 1.5}),
		MustConstruct(Beta, map[string]float64{"a": 2, "b": 3}),
		MustConstruct(Cauchy, map[string]float64{"loc": 1, "scale": 2}),
		MustConstruct(StudentT, map[string]float64{"df": 5}),
	}
}

func discreteCases() []Distribution {
	return []Distribution{
		MustConstruct(Binomial, map[string]float64{"n": 12, "p": 0.3}),
		MustConstruct(Poisson, map[string]float64{"mu": 5}),
		MustConstruct(Geometric, map[string]float64{"p": 0.25}),
	}
}

func TestQuantileCDFRoundTripContinuous(t *testing.T) {
	probs := []float64{0.001, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 0.999}
	for _, d := range continuousCases() {
		t.Run(string(d.Family()), func(t *testing.T) {
			for _, p := range probs {
				x := d.Quantile(p)
				got := d.CDF(x)
				if math.Abs(got-p) > 1e-6 {
					t.Errorf("CDF(Quantile(%v)) = %v", p, got)
				}
			}
		})
	}
}

func TestQuantileCDFRoundTripDiscrete(t *testing.T) {
	probs := []float64{0.001, 0.1, 0.5, 0.9, 0.999}
	for _, d := range discreteCases() {
		t.Run(string(d.Family()), func(t *testing.T) {
			for _, p := range probs {
				k := d.Quantile(p)
				if k != math.Trunc(k) {
					t.Fatalf("Quantile(%v) = %v is not an integer", p, k)
				}
				if d.CDF(k) < p {
					t.Errorf("CDF(Quantile(%v)) = %v < %v", p, d.CDF(k), p)
				}
				if d.CDF(k-1) >= p && d.CDF(k-1) > 0 {
					t.Errorf("Quantile(%v) = %v is not minimal: CDF(%v) = %v", p, k, k-1, d.CDF(k-1))
				}
			}
		})
	}
}

// densityIntegral integrates the pdf by trapezoids on a quantile-spaced grid,
// which keeps the grid dense where the mass is even for heavy tails.
func densityIntegral(t *testing.T, d Distribution, n int) float64 {
	t.Helper()
	pLo, pHi := 1e-4, 1-1e-4
	total := 0.0
	prevX := d.Quantile(pLo)
	prevF, err := d.PDF(prevX)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	for i := 1; i < n; i++ {
		p := pLo + (pHi-pLo)*float64(i)/float64(n-1)
		x := d.Quantile(p)
		f, err := d.PDF(x)
		if err != nil {
			t.Fatalf("PDF: %v", err)
		}
		total += (x - prevX) * (f + prevF) / 2
		prevX, prevF = x, f
	}
	return total
}

func TestDensityIntegratesToOne(t *testing.T) {
	for _, d := range continuousCases() {
		t.Run(string(d.Family()), func(t *testing.T) {
			got := densityIntegral(t, d, 10001)
			if math.Abs(got-1) > 0.01 {
				t.Errorf("integral of pdf = %v, want about 1", got)
			}
		})
	}
}

func TestMassSumsToOne(t *testing.T) {
	for _, d := range discreteCases() {
		t.Run(string(d.Family()), func(t *testing.T) {
			total := 0.0
			for k := 0.0; k <= 500; k++ {
				m, err := d.PMF(k)
				if err != nil {
					t.Fatalf("PMF: %v", err)
				}
				total += m
			}
			if math.Abs(total-1) > 1e-9 {
				t.Errorf("sum of pmf = %v, want 1", total)
			}
		})
	}
}

func TestKindMismatchErrors(t *testing.T) {
	if _, err := MustConstruct(Poisson, nil).PDF(1); !core.IsUnsupportedOperationError(err) {
		t.Errorf("PDF on discrete family: got %v", err)
	}
	if _, err := MustConstruct(Normal, nil).PMF(1); !core.IsUnsupportedOperationError(err) {
		t.Errorf("PMF on continuous family: got %v", err)
	}
}

func TestMassOffSupport(t *testing.T) {
	b := MustConstruct(Binomial, map[string]float64{"n": 4, "p": 0.5})
	for _, k := range []float64{-1, 1.5, 5} {
		if m, _ := b.PMF(k); m != 0 {
			t.Errorf("binomial PMF(%v) = %v, want 0", k, m)
		}
	}
	g := MustConstruct(Geometric, map[string]float64{"p": 0.5})
	if m, _ := g.PMF(0); m != 0 {
		t.Error("geometric mass starts at k = 1")
	}
	if m, _ := g.PMF(2); math.Abs(m-0.25) > 1e-12 {
		t.Errorf("geometric PMF(2) = %v, want 0.25", m)
	}
}

func TestCDFOutsideSupport(t *testing.T) {
	b := MustConstruct(Binomial, map[string]float64{"n": 4, "p": 0.5})
	if b.CDF(-0.5) != 0 {
		t.Error("CDF below support should be 0")
	}
	if b.CDF(4) != 1 || b.CDF(10) != 1 {
		t.Error("CDF at and above n should be 1")
	}
	g := MustConstruct(Geometric, map[string]float64{"p": 0.5})
	if g.CDF(0.9) != 0 {
		t.Error("geometric CDF below 1 should be 0")
	}
	if math.Abs(g.CDF(1)-0.5) > 1e-12 {
		t.Errorf("geometric CDF(1) = %v, want 0.5", g.CDF(1))
	}
}

func TestCauchyClosedForms(t *testing.T) {
	d := MustConstruct(Cauchy, map[string]float64{"loc": 1, "scale": 2})
	if got := d.Quantile(0.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("median = %v, want 1", got)
	}
	if got := d.Quantile(0.75); math.Abs(got-3) > 1e-12 {
		t.Errorf("upper quartile = %v, want loc+scale = 3", got)
	}
	// Peak density is 1/(pi*scale).
	if got, _ := d.PDF(1); math.Abs(got-1/(math.Pi*2)) > 1e-12 {
		t.Errorf("peak density = %v", got)
	}
	if !math.IsInf(d.Quantile(1), 1) || !math.IsInf(d.Quantile(0), -1) {
		t.Error("extreme quantiles should be infinite")
	}
}

func TestQuantilePanicsOutsideUnitInterval(t *testing.T) {
	d := MustConstruct(Normal, nil)
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Quantile(%v) should panic", p)
				}
			}()
			d.Quantile(p)
		}()
	}
}

func TestInferDomain(t *testing.T) {
	d := MustConstruct(Normal, map[string]float64{"loc": 10, "scale": 3})
	lo, hi := InferDomain(d)
	if lo >= hi {
		t.Fatalf("lo = %v should be below hi = %v", lo, hi)
	}
	if math.Abs(d.CDF(lo)-0.001) > 1e-9 || math.Abs(d.CDF(hi)-0.999) > 1e-9 {
		t.Errorf("domain endpoints at CDF %v and %v, want 0.001 and 0.999", d.CDF(lo), d.CDF(hi))
	}

	p := MustConstruct(Poisson, map[string]float64{"mu": 5})
	plo, phi := InferDomain(p)
	if plo != math.Trunc(plo) || phi != math.Trunc(phi) {
		t.Errorf("discrete domain should be integral, got (%v, %v)", plo, phi)
	}
	if p.CDF(plo) < 0.001 || p.CDF(phi) < 0.999 {
		t.Errorf("discrete domain endpoints too tight: (%v, %v)", plo, phi)
	}
}
