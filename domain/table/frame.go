package table

import (
	"mpf/internal/errors"
)

// Frame is a flat table of typed values with named columns. All
// transformations produce new frames; a frame is never mutated once handed
// to a consumer.
type Frame struct {
	Columns []string
	Rows    [][]Value
}

// NewFrame creates an empty frame with the given column names.
func NewFrame(columns ...string) *Frame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Frame{Columns: cols}
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (f *Frame) ColumnIndex(name string) int {
	for i, col := range f.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the column exists.
func (f *Frame) HasColumn(name string) bool {
	return f.ColumnIndex(name) >= 0
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.Rows)
}

// Append adds a row. Short rows are padded with missing values.
func (f *Frame) Append(row []Value) {
	padded := make([]Value, len(f.Columns))
	for i := range padded {
		if i < len(row) {
			padded[i] = row[i]
		} else {
			padded[i] = NewMissingValue()
		}
	}
	f.Rows = append(f.Rows, padded)
}

// Value returns the cell at a row and named column. Unknown columns read as
// missing.
func (f *Frame) Value(row int, column string) Value {
	j := f.ColumnIndex(column)
	if j < 0 || row < 0 || row >= len(f.Rows) {
		return NewMissingValue()
	}
	return f.Rows[row][j]
}

// Set replaces the cell at a row and named column, ignoring unknown columns.
func (f *Frame) Set(row int, column string, v Value) {
	j := f.ColumnIndex(column)
	if j < 0 || row < 0 || row >= len(f.Rows) {
		return
	}
	f.Rows[row][j] = v
}

// AddColumn appends a new column filled with missing values. Existing columns
// are left untouched.
func (f *Frame) AddColumn(name string) {
	if f.HasColumn(name) {
		return
	}
	f.Columns = append(f.Columns, name)
	for i := range f.Rows {
		f.Rows[i] = append(f.Rows[i], NewMissingValue())
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.Columns...)
	for _, row := range f.Rows {
		cp := make([]Value, len(row))
		copy(cp, row)
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// Cast coerces every cell of the named columns to the declared kind.
// Cells that cannot be converted become missing. Casting an already
// conforming frame is a no-op.
func (f *Frame) Cast(kinds map[string]Kind) {
	for name, kind := range kinds {
		j := f.ColumnIndex(name)
		if j < 0 {
			continue
		}
		for i := range f.Rows {
			f.Rows[i][j] = Coerce(f.Rows[i][j], kind)
		}
	}
}

// Concat stacks frames vertically, taking the union of their columns in
// encounter order. Cells absent from a source frame read as missing.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, errors.ValidationError("concat requires at least one frame")
	}

	var columns []string
	seen := map[string]bool{}
	for _, fr := range frames {
		for _, col := range fr.Columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	out := NewFrame(columns...)
	for _, fr := range frames {
		for i := range fr.Rows {
			row := make([]Value, len(columns))
			for j, col := range columns {
				row[j] = fr.Value(i, col)
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
