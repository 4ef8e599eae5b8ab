// Package table turns user selections over tabular data sources into
// well-formed numeric samples. Three source kinds are supported: a grid of
// cells, an n-dimensional numeric array, and a column-oriented frame.
package table

import (
	"strconv"
	"strings"

	"gostats/domain/core"
)

// NamedSample carries an ordered numeric sample together with its display
// name (a column header or a group label).
type NamedSample struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Range is a half-open [Start, Stop) index interval.
type Range struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Len returns the number of indices the range covers.
func (r Range) Len() int {
	return r.Stop - r.Start
}

// SelectionSpec selects a rectangular sub-region of a source. A nil Rows or
// Cols range means "all rows" or "all columns"; a nil spec means the whole
// source.
type SelectionSpec struct {
	Rows *Range `json:"rows,omitempty"`
	Cols *Range `json:"cols,omitempty"`
}

// Span selects the half-open ranges [r0, r1) x [c0, c1).
func Span(r0, r1, c0, c1 int) *SelectionSpec {
	return &SelectionSpec{Rows: &Range{r0, r1}, Cols: &Range{c0, c1}}
}

// Column selects every row of a single column.
func Column(c int) *SelectionSpec {
	return &SelectionSpec{Cols: &Range{c, c + 1}}
}

// DType is the target numeric kind of an extraction.
type DType string

const (
	Float64 DType = "float64" // continuous contexts
	Int64   DType = "int64"   // discrete and group-label contexts
)

// Source is a two-dimensional data source resolvable by (row, col) index.
type Source interface {
	// Shape returns the source's extent as rows x cols.
	Shape() (rows, cols int)
	// Value returns the numeric value of a cell; non-numeric cells error.
	Value(r, c int) (float64, error)
	// Label returns the raw string form of a cell, used for group labels
	// and column naming.
	Label(r, c int) string
	// ColumnName returns the display name for a column.
	ColumnName(c int) string
}

// Grid is a table of string-valued cells, e.g. one spreadsheet sheet. All
// rows are expected to have the same width; ragged rows read as empty cells.
type Grid struct {
	Cells [][]string
}

func (g *Grid) Shape() (int, int) {
	cols := 0
	for _, row := range g.Cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(g.Cells), cols
}

func (g *Grid) cell(r, c int) string {
	if r < 0 || r >= len(g.Cells) || c < 0 || c >= len(g.Cells[r]) {
		return ""
	}
	return g.Cells[r][c]
}

func (g *Grid) Value(r, c int) (float64, error) {
	raw := strings.TrimSpace(g.cell(r, c))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewInvalidSelectionError("cell (" + strconv.Itoa(r) + ", " + strconv.Itoa(c) + ") is not numeric: " + strconv.Quote(raw))
	}
	return v, nil
}

func (g *Grid) Label(r, c int) string {
	return strings.TrimSpace(g.cell(r, c))
}

func (g *Grid) ColumnName(c int) string {
	return "C" + strconv.Itoa(c)
}

// ArraySource exposes a numeric array (vector or matrix) as a source.
type ArraySource struct {
	Array core.Array
}

func (a *ArraySource) Shape() (int, int) {
	rows, cols, err := a.Array.Dims2D()
	if err != nil {
		return 0, 0
	}
	return rows, cols
}

func (a *ArraySource) Value(r, c int) (float64, error) {
	return a.Array.At2D(r, c), nil
}

func (a *ArraySource) Label(r, c int) string {
	return strconv.FormatFloat(a.Array.At2D(r, c), 'g', -1, 64)
}

func (a *ArraySource) ColumnName(c int) string {
	return "C" + strconv.Itoa(c)
}

// FrameColumn is one named column of a Frame.
type FrameColumn struct {
	Name  string
	Cells []string
}

// Frame is a column-oriented source. Extraction against a frame is
// restricted to a single column per call.
type Frame struct {
	Columns []FrameColumn
}

func (f *Frame) Shape() (int, int) {
	rows := 0
	for _, col := range f.Columns {
		if len(col.Cells) > rows {
			rows = len(col.Cells)
		}
	}
	return rows, len(f.Columns)
}

func (f *Frame) cell(r, c int) string {
	if c < 0 || c >= len(f.Columns) || r < 0 || r >= len(f.Columns[c].Cells) {
		return ""
	}
	return f.Columns[c].Cells[r]
}

func (f *Frame) Value(r, c int) (float64, error) {
	raw := strings.TrimSpace(f.cell(r, c))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewInvalidSelectionError("column " + strconv.Quote(f.ColumnName(c)) + " row " + strconv.Itoa(r) + " is not numeric: " + strconv.Quote(raw))
	}
	return v, nil
}

func (f *Frame) Label(r, c int) string {
	return strings.TrimSpace(f.cell(r, c))
}

func (f *Frame) ColumnName(c int) string {
	if c < 0 || c >= len(f.Columns) {
		return "C" + strconv.Itoa(c)
	}
	return f.Columns[c].Name
}
