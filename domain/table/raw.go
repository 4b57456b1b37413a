package table

import (
	"strings"

	"mpf/internal/errors"
)

// ColumnKey identifies a raw column by its (section, field) header pair.
type ColumnKey struct {
	Section string
	Field   string
}

// Raw holds the two-level spreadsheet grid as fetched: string cells keyed by
// (section, field) columns. Empty cells represent missing values.
type Raw struct {
	Columns []ColumnKey
	Rows    [][]string
}

// BuildColumnIndex merges the two header rows into column keys. Blank entries
// in the section row inherit the nearest preceding non-blank label, matching
// the merged-cell layout of the source sheet. When the field row is longer,
// trailing fields take the last known section label. The output length is
// max(len(row0), len(row1)).
func BuildColumnIndex(row0, row1 []string) ([]ColumnKey, error) {
	if len(row0) == 0 {
		return nil, errors.ValidationError("section header row is empty")
	}
	if strings.TrimSpace(row0[0]) == "" {
		return nil, errors.ValidationError("section header row starts with a blank cell")
	}

	n := len(row0)
	if len(row1) > n {
		n = len(row1)
	}

	keys := make([]ColumnKey, n)
	last := ""
	for i := 0; i < n; i++ {
		if i < len(row0) && strings.TrimSpace(row0[i]) != "" {
			last = strings.TrimSpace(row0[i])
		}
		field := ""
		if i < len(row1) {
			field = strings.TrimSpace(row1[i])
		}
		keys[i] = ColumnKey{Section: last, Field: field}
	}
	return keys, nil
}

// NewRaw builds a raw table from sheet values: the first two rows are the
// section and field headers, data starts at the third row.
func NewRaw(values [][]string) (*Raw, error) {
	if len(values) < 2 {
		return nil, errors.ValidationError("sheet data requires two header rows")
	}
	columns, err := BuildColumnIndex(values[0], values[1])
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(values)-2)
	for _, src := range values[2:] {
		row := make([]string, len(columns))
		for j := range columns {
			if j < len(src) {
				row[j] = strings.TrimSpace(src[j])
			}
		}
		rows = append(rows, row)
	}
	return &Raw{Columns: columns, Rows: rows}, nil
}

// IsEmpty reports whether the table has no data rows.
func (r *Raw) IsEmpty() bool {
	return r == nil || len(r.Rows) == 0
}

// NumRows returns the number of data rows.
func (r *Raw) NumRows() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// ColumnIndex returns the position of a column key, or -1 when absent.
func (r *Raw) ColumnIndex(key ColumnKey) int {
	for i, col := range r.Columns {
		if col == key {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the column key exists.
func (r *Raw) HasColumn(key ColumnKey) bool {
	return r.ColumnIndex(key) >= 0
}

// Cell returns the raw cell for a row and column key. The second return is
// false when the column is absent or the cell is empty.
func (r *Raw) Cell(row int, key ColumnKey) (string, bool) {
	j := r.ColumnIndex(key)
	if j < 0 || row < 0 || row >= len(r.Rows) {
		return "", false
	}
	cell := r.Rows[row][j]
	if cell == "" {
		return "", false
	}
	return cell, true
}
