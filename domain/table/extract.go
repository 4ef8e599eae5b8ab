package table

import (
	"fmt"
	"math"

	"gostats/domain/core"
)

// Extractor resolves selections against sources. The zero value requires
// extracted samples to be non-empty; set AllowEmpty to lift that constraint.
type Extractor struct {
	AllowEmpty bool
}

// NewExtractor creates an extractor with the default (non-empty) constraint.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// resolve validates a selection against the source shape and returns the
// concrete row and column ranges. A nil selection means the whole source.
func resolve(src Source, sel *SelectionSpec) (rows, cols Range, err error) {
	nr, nc := src.Shape()
	rows, cols = Range{0, nr}, Range{0, nc}
	if sel != nil {
		if sel.Rows != nil {
			rows = *sel.Rows
		}
		if sel.Cols != nil {
			cols = *sel.Cols
		}
	}
	if rows.Start < 0 || rows.Stop > nr || rows.Start > rows.Stop {
		return rows, cols, core.NewInvalidSelectionError(fmt.Sprintf("row range [%d, %d) outside source with %d rows", rows.Start, rows.Stop, nr))
	}
	if cols.Start < 0 || cols.Stop > nc || cols.Start > cols.Stop {
		return rows, cols, core.NewInvalidSelectionError(fmt.Sprintf("column range [%d, %d) outside source with %d columns", cols.Start, cols.Stop, nc))
	}
	return rows, cols, nil
}

// Extract resolves a selection into a single numeric sample cast to dtype.
// Frame sources accept only single-column selections. Multi-column
// selections over grid and array sources are flattened row-major.
func (x *Extractor) Extract(src Source, sel *SelectionSpec, dtype DType) (NamedSample, error) {
	rows, cols, err := resolve(src, sel)
	if err != nil {
		return NamedSample{}, err
	}
	if _, ok := src.(*Frame); ok && cols.Len() != 1 {
		return NamedSample{}, core.NewInvalidSelectionError(fmt.Sprintf("frame sources require a single-column selection, got %d columns", cols.Len()))
	}
	values := make([]float64, 0, rows.Len()*cols.Len())
	for r := rows.Start; r < rows.Stop; r++ {
		for c := cols.Start; c < cols.Stop; c++ {
			v, err := src.Value(r, c)
			if err != nil {
				return NamedSample{}, err
			}
			if dtype == Int64 && v != math.Trunc(v) {
				return NamedSample{}, core.NewInvalidSelectionError(fmt.Sprintf("cell (%d, %d) = %v is not an integer", r, c, v))
			}
			values = append(values, v)
		}
	}
	if len(values) == 0 && !x.AllowEmpty {
		return NamedSample{}, core.NewInvalidSelectionError("selection is empty")
	}
	name := "selection"
	if cols.Len() == 1 {
		name = src.ColumnName(cols.Start)
	}
	return NamedSample{Name: name, Values: values}, nil
}

// ExtractGrouped partitions the value column by the distinct labels of the
// group column, preserving the order in which each label is first
// encountered. Each returned sample is named by its group label.
func (x *Extractor) ExtractGrouped(src Source, groupSel, valueSel *SelectionSpec) ([]NamedSample, error) {
	gRows, gCols, err := resolve(src, groupSel)
	if err != nil {
		return nil, err
	}
	if gCols.Len() != 1 {
		return nil, core.NewInvalidSelectionError(fmt.Sprintf("group selection must be a single column, got %d", gCols.Len()))
	}
	values, err := x.Extract(src, valueSel, Float64)
	if err != nil {
		return nil, err
	}
	if gRows.Len() != len(values.Values) {
		return nil, core.NewInvalidSelectionError(fmt.Sprintf("group column has %d entries but value column has %d", gRows.Len(), len(values.Values)))
	}

	order := make([]string, 0)
	groups := make(map[string][]float64)
	for i, r := 0, gRows.Start; r < gRows.Stop; i, r = i+1, r+1 {
		label := src.Label(r, gCols.Start)
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] = append(groups[label], values.Values[i])
	}

	out := make([]NamedSample, 0, len(order))
	for _, label := range order {
		out = append(out, NamedSample{Name: label, Values: groups[label]})
	}
	return out, nil
}
