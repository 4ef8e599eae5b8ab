package dist

import (
	"fmt"
	"strings"

	"gostats/domain/core"
)

// Distribution is an immutable parametric distribution: a family plus a
// complete, validated parameter set. Re-fitting produces a new value; the
// original is never mutated.
type Distribution struct {
	family Family
	params map[string]float64
}

// Construct builds a Distribution from a family identifier and named
// parameters. Missing parameters take the family's documented defaults;
// unknown names and domain-constraint violations are rejected.
func Construct(family Family, params map[string]float64) (Distribution, error) {
	if !family.Known() {
		return Distribution{}, fmt.Errorf("%w: unknown family %q", core.ErrInvalidParameter, family)
	}
	schema := family.Params()
	known := make(map[string]bool, len(schema))
	for _, spec := range schema {
		known[spec.Name] = true
	}
	for name := range params {
		if !known[name] {
			return Distribution{}, fmt.Errorf("%w: family %q has no parameter %q", core.ErrInvalidParameter, family, name)
		}
	}
	resolved := make(map[string]float64, len(schema))
	for _, spec := range schema {
		v, ok := params[spec.Name]
		if !ok {
			v = spec.Default
		}
		if !spec.Valid(v) {
			return Distribution{}, core.NewInvalidParameterError(string(family), spec.Name, spec.Constraint, v)
		}
		resolved[spec.Name] = v
	}
	return Distribution{family: family, params: resolved}, nil
}

// MustConstruct is Construct for statically known-good parameters.
func MustConstruct(family Family, params map[string]float64) Distribution {
	d, err := Construct(family, params)
	if err != nil {
		panic(err)
	}
	return d
}

// Family returns the distribution's family identifier.
func (d Distribution) Family() Family {
	return d.family
}

// Kind returns the continuity tag of the distribution's family.
func (d Distribution) Kind() Kind {
	return d.family.Kind()
}

// Params returns a copy of the full parameter set.
func (d Distribution) Params() map[string]float64 {
	out := make(map[string]float64, len(d.params))
	for k, v := range d.params {
		out[k] = v
	}
	return out
}

// Param returns a single parameter value by name.
func (d Distribution) Param(name string) float64 {
	return d.params[name]
}

// Describe renders the family name followed by one "name = value" line per
// parameter in schema order, the form shown in parameter panels.
func (d Distribution) Describe() string {
	var b strings.Builder
	b.WriteString(string(d.family))
	for _, spec := range d.family.Params() {
		fmt.Fprintf(&b, "\n%s = %v", spec.Name, d.params[spec.Name])
	}
	return b.String()
}

// String returns a compact single-line representation.
func (d Distribution) String() string {
	schema := d.family.Params()
	parts := make([]string, 0, len(schema))
	for _, spec := range schema {
		parts = append(parts, fmt.Sprintf("%s=%v", spec.Name, d.params[spec.Name]))
	}
	return fmt.Sprintf("%s(%s)", d.family, strings.Join(parts, ", "))
}
