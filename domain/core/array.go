package core

import (
	"fmt"
)

// Array is a dense, row-major, n-dimensional numeric array. It is the
// interchange type between sampling output, array data sources, and the
// visualization sink.
type Array struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// NewArray allocates a zero-filled array of the given shape. Every dimension
// must be non-negative.
func NewArray(shape ...int) (Array, error) {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return Array{}, fmt.Errorf("%w: shape dimension %d is negative", ErrInvalidParameter, dim)
		}
		n *= dim
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return Array{Shape: s, Data: make([]float64, n)}, nil
}

// Len returns the total number of elements.
func (a Array) Len() int {
	return len(a.Data)
}

// Rank returns the number of dimensions.
func (a Array) Rank() int {
	return len(a.Shape)
}

// Dims2D resolves the array as a rows x cols table. Vectors resolve to a
// single column; higher ranks are rejected.
func (a Array) Dims2D() (rows, cols int, err error) {
	switch len(a.Shape) {
	case 1:
		return a.Shape[0], 1, nil
	case 2:
		return a.Shape[0], a.Shape[1], nil
	default:
		return 0, 0, fmt.Errorf("%w: rank-%d array is not tabular", ErrInvalidSelection, len(a.Shape))
	}
}

// At2D returns the element at (r, c) under the Dims2D resolution.
func (a Array) At2D(r, c int) float64 {
	if len(a.Shape) == 1 {
		return a.Data[r]
	}
	return a.Data[r*a.Shape[1]+c]
}
