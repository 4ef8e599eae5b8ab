// Package dist models parametric probability distributions: construction
// from a family identifier and named parameters, density/mass/cumulative/
// quantile evaluation, shaped random sampling, and bounded maximum-likelihood
// fitting against observed data.
package dist

// Kind tags a family as continuous or discrete. Density is defined for
// continuous families, mass for discrete ones; requesting the wrong
// evaluation is a programming error.
type Kind string

const (
	Continuous Kind = "continuous"
	Discrete   Kind = "discrete"
)

// Family identifies a parametric distribution family. The set is closed:
// each family carries a fixed parameter schema and domain constraints.
type Family string

const (
	Normal      Family = "normal"
	Uniform     Family = "uniform"
	Exponential Family = "exponential"
	Gamma       Family = "gamma"
	Beta        Family = "beta"
	Cauchy      Family = "cauchy"
	StudentT    Family = "t"
	Binomial    Family = "binomial"
	Poisson     Family = "poisson"
	Geometric   Family = "geometric"
)

// Canonical parameter names shared across families.
const (
	ParamLoc   = "loc"
	ParamScale = "scale"
	ParamA     = "a"
	ParamB     = "b"
	ParamDF    = "df"
	ParamN     = "n"
	ParamP     = "p"
	ParamMu    = "mu"
)

// ParamSpec describes one parameter of a family's schema.
type ParamSpec struct {
	Name       string
	Default    float64
	Constraint string // human-readable domain constraint
	Integer    bool
	Valid      func(v float64) bool
}

type familySchema struct {
	kind   Kind
	params []ParamSpec
}

func positive(v float64) bool     { return v > 0 }
func anyValue(v float64) bool     { return v == v } // rejects NaN only
func probability(v float64) bool  { return v >= 0 && v <= 1 }
func probHalfOpen(v float64) bool { return v > 0 && v <= 1 }
func countValue(v float64) bool   { return v >= 0 && v == float64(int64(v)) }

var families = map[Family]familySchema{
	Normal: {Continuous, []ParamSpec{
		{ParamLoc, 0, "any real", false, anyValue},
		{ParamScale, 1, "scale > 0", false, positive},
	}},
	Uniform: {Continuous, []ParamSpec{
		{ParamLoc, 0, "any real", false, anyValue},
		{ParamScale, 1, "scale > 0", false, positive},
	}},
	Exponential: {Continuous, []ParamSpec{
		{ParamScale, 1, "scale > 0", false, positive},
	}},
	Gamma: {Continuous, []ParamSpec{
		{ParamA, 1, "a > 0", false, positive},
		{ParamScale, 1, "scale > 0", false, positive},
	}},
	Beta: {Continuous, []ParamSpec{
		{ParamA, 2, "a > 0", false, positive},
		{ParamB, 2, "b > 0", false, positive},
	}},
	Cauchy: {Continuous, []ParamSpec{
		{ParamLoc, 0, "any real", false, anyValue},
		{ParamScale, 1, "scale > 0", false, positive},
	}},
	StudentT: {Continuous, []ParamSpec{
		{ParamDF, 1, "df > 0", false, positive},
	}},
	Binomial: {Discrete, []ParamSpec{
		{ParamN, 10, "n >= 0 integer", true, countValue},
		{ParamP, 0.5, "p in [0, 1]", false, probability},
	}},
	Poisson: {Discrete, []ParamSpec{
		{ParamMu, 5, "mu > 0", false, positive},
	}},
	Geometric: {Discrete, []ParamSpec{
		{ParamP, 0.5, "p in (0, 1]", false, probHalfOpen},
	}},
}

// Known reports whether f names a supported family.
func (f Family) Known() bool {
	_, ok := families[f]
	return ok
}

// Kind returns the family's continuity tag.
func (f Family) Kind() Kind {
	return families[f].kind
}

// Params returns the family's parameter schema in canonical order.
func (f Family) Params() []ParamSpec {
	src := families[f].params
	out := make([]ParamSpec, len(src))
	copy(out, src)
	return out
}

// Families lists all supported families in a stable order.
func Families() []Family {
	return []Family{
		Normal, Uniform, Exponential, Gamma, Beta, Cauchy, StudentT,
		Binomial, Poisson, Geometric,
	}
}
