package dist

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"gostats/domain/core"
)

// lockedSource serializes access to a rand source so unseeded draws are safe
// across concurrent operations.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// defaultSource is the process-local generator behind unseeded draws. It is
// initialized once at startup and never reseeded, so unseeded calls stay
// statistically independent of each other.
var defaultSource rand.Source = &lockedSource{src: rand.NewPCG(rand.Uint64(), rand.Uint64())}

// Sample draws independent variates arranged row-major in the given shape.
// Discrete families produce integer-valued elements. A nil seed draws from
// the process-local generator; a non-nil seed fixes the pseudo-random stream
// for reproducibility.
func (d Distribution) Sample(shape []int, seed *uint64) (core.Array, error) {
	out, err := core.NewArray(shape...)
	if err != nil {
		return core.Array{}, err
	}
	src := defaultSource
	if seed != nil {
		src = rand.NewPCG(*seed, *seed<<32|1)
	}
	draw := d.variateFunc(src)
	for i := range out.Data {
		out.Data[i] = draw()
	}
	return out, nil
}

// variateFunc returns a single-draw closure bound to the given source.
func (d Distribution) variateFunc(src rand.Source) func() float64 {
	switch d.family {
	case Normal:
		v := distuv.Normal{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale], Src: src}
		return v.Rand
	case Uniform:
		v := distuv.Uniform{Min: d.params[ParamLoc], Max: d.params[ParamLoc] + d.params[ParamScale], Src: src}
		return v.Rand
	case Exponential:
		v := distuv.Exponential{Rate: 1 / d.params[ParamScale], Src: src}
		return v.Rand
	case Gamma:
		v := distuv.Gamma{Alpha: d.params[ParamA], Beta: 1 / d.params[ParamScale], Src: src}
		return v.Rand
	case Beta:
		v := distuv.Beta{Alpha: d.params[ParamA], Beta: d.params[ParamB], Src: src}
		return v.Rand
	case Cauchy:
		// A Cauchy variate is a Student's t with one degree of freedom.
		v := distuv.StudentsT{Mu: d.params[ParamLoc], Sigma: d.params[ParamScale], Nu: 1, Src: src}
		return v.Rand
	case StudentT:
		v := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.params[ParamDF], Src: src}
		return v.Rand
	case Binomial:
		v := distuv.Binomial{N: d.params[ParamN], P: d.params[ParamP], Src: src}
		return v.Rand
	case Poisson:
		v := distuv.Poisson{Lambda: d.params[ParamMu], Src: src}
		return v.Rand
	case Geometric:
		// Inverse-transform draw on the k = 1, 2, ... support.
		p := d.params[ParamP]
		rnd := rand.New(src)
		return func() float64 {
			if p == 1 {
				return 1
			}
			u := rnd.Float64()
			return math.Max(1, math.Ceil(math.Log1p(-u)/math.Log1p(-p)))
		}
	}
	return func() float64 { return math.NaN() }
}
