package dist

// InferDomain returns default evaluation/plotting bounds for a distribution:
// its 0.1st and 99.9th percentiles. Widening the bounds to cover observed
// data is the caller's concern, which keeps this function pure and
// data-independent.
func InferDomain(d Distribution) (low, high float64) {
	return d.Quantile(0.001), d.Quantile(0.999)
}
