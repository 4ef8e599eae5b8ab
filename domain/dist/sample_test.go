package dist

import (
	"math"
	"testing"

	"gostats/domain/core"
)

func seedPtr(s uint64) *uint64 { return &s }

func TestSampleShape(t *testing.T) {
	d := MustConstruct(Normal, nil)
	a, err := d.Sample([]int{4, 25}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Rank() != 2 || a.Shape[0] != 4 || a.Shape[1] != 25 || a.Len() != 100 {
		t.Errorf("got shape %v with %d elements", a.Shape, a.Len())
	}

	if _, err := d.Sample([]int{2, -1}, nil); !core.IsInvalidParameterError(err) {
		t.Errorf("negative dimension: got %v", err)
	}
}

func TestSampleSeedReproducibility(t *testing.T) {
	d := MustConstruct(Gamma, map[string]float64{"a": 2, "scale": 1.5})
	a, err := d.Sample([]int{50}, seedPtr(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Sample([]int{50}, seedPtr(7))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a.Data[i], b.Data[i])
		}
	}

	c, err := d.Sample([]int{50}, seedPtr(8))
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.Data {
		if a.Data[i] != c.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestSampleUnseededVaries(t *testing.T) {
	d := MustConstruct(Normal, nil)
	a, _ := d.Sample([]int{20}, nil)
	b, _ := d.Sample([]int{20}, nil)
	same := true
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("unseeded draws repeated; the default source must not be reseeded")
	}
}

func TestSampleDiscreteIsIntegral(t *testing.T) {
	for _, d := range discreteCases() {
		t.Run(string(d.Family()), func(t *testing.T) {
			a, err := d.Sample([]int{200}, seedPtr(11))
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range a.Data {
				if v != math.Trunc(v) {
					t.Fatalf("discrete draw %v is not an integer", v)
				}
			}
		})
	}
}

func TestSampleRespectsSupport(t *testing.T) {
	beta, _ := MustConstruct(Beta, map[string]float64{"a": 2, "b": 3}).Sample([]int{500}, seedPtr(3))
	for _, v := range beta.Data {
		if v <= 0 || v >= 1 {
			t.Fatalf("beta draw %v outside (0, 1)", v)
		}
	}
	geo, _ := MustConstruct(Geometric, map[string]float64{"p": 0.4}).Sample([]int{500}, seedPtr(3))
	for _, v := range geo.Data {
		if v < 1 {
			t.Fatalf("geometric draw %v below support", v)
		}
	}
	bin, _ := MustConstruct(Binomial, map[string]float64{"n": 6, "p": 0.5}).Sample([]int{500}, seedPtr(3))
	for _, v := range bin.Data {
		if v < 0 || v > 6 {
			t.Fatalf("binomial draw %v outside [0, 6]", v)
		}
	}
}

func TestSampleSeededMeanIsPlausible(t *testing.T) {
	d := MustConstruct(Normal, map[string]float64{"loc": 5, "scale": 2})
	a, err := d.Sample([]int{20000}, seedPtr(42))
	if err != nil {
		t.Fatal(err)
	}
	mean := 0.0
	for _, v := range a.Data {
		mean += v
	}
	mean /= float64(a.Len())
	if math.Abs(mean-5) > 0.1 {
		t.Errorf("sample mean = %v, want about 5", mean)
	}
}
