// Package normalize reshapes the raw two-level sheet into the canonical
// admin and footwear tables.
package normalize

import (
	"fmt"
	"strings"

	"mpf/domain/schema"
	"mpf/domain/table"
	"mpf/internal/errors"
)

// Section extracts and cleans one section of the raw table into a flat frame:
// kept columns only, canonical names, all-missing rows dropped, Size_Hi
// synthesized or back-filled from Size_Lo, and Section and ID columns
// attached. Each column is cast to its declared semantic type; cells that
// fail the cast become missing.
func Section(raw *table.Raw, sec schema.Section) (*table.Frame, error) {
	if raw == nil {
		return nil, errors.ValidationError("raw table is nil")
	}
	fields := schema.Fields(sec)
	if len(fields) == 0 {
		return nil, errors.ValidationError(fmt.Sprintf("unknown section %q", string(sec)))
	}

	columns := make([]string, 0, len(fields)+3)
	for _, f := range fields {
		columns = append(columns, f.Name)
	}

	hasSizeLo := containsColumn(columns, schema.ColSizeLo)
	hasSizeHi := containsColumn(columns, schema.ColSizeHi)
	if hasSizeLo && !hasSizeHi {
		columns = append(columns, schema.ColSizeHi)
	}
	columns = append(columns, schema.ColSection, schema.ColID)

	frame := table.NewFrame(columns...)
	for i := 0; i < raw.NumRows(); i++ {
		values := make([]table.Value, 0, len(columns))
		empty := true
		for _, f := range fields {
			cell, ok := raw.Cell(i, table.ColumnKey{Section: string(sec), Field: f.Raw})
			if !ok {
				values = append(values, table.NewMissingValue())
				continue
			}
			empty = false
			values = append(values, table.NewStringValue(cell))
		}
		if empty {
			continue
		}

		frame.Append(values)
		r := frame.NumRows() - 1

		if hasSizeLo {
			if hi := frame.Value(r, schema.ColSizeHi); hi.IsMissing() {
				frame.Set(r, schema.ColSizeHi, frame.Value(r, schema.ColSizeLo))
			}
		}

		frame.Set(r, schema.ColSection, table.NewCategoryValue(string(sec)))
		if id, ok := raw.Cell(i, schema.IDSource); ok {
			frame.Set(r, schema.ColID, table.ParseCell(id, table.KindInteger))
		}
	}

	kinds := schema.Kinds(sec)
	if hasSizeLo {
		kinds[schema.ColSizeHi] = table.KindFloat
	}
	kinds[schema.ColSection] = table.KindCategory
	kinds[schema.ColID] = table.KindInteger
	frame.Cast(kinds)

	return frame, nil
}

// AdminTable builds the one-row-per-case table from the ADMIN section. The
// admin data is physically repeated once per footwear observation in the raw
// sheet, so exact duplicate rows collapse to one. A non-unique identifier
// after deduplication means the source data is structurally broken and is a
// fatal data-integrity error.
func AdminTable(raw *table.Raw) (*table.Frame, error) {
	if raw == nil {
		return nil, errors.ValidationError("raw table is nil")
	}
	fields := schema.Fields(schema.Admin)

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	frame := table.NewFrame(columns...)

	seen := map[string]bool{}
	for i := 0; i < raw.NumRows(); i++ {
		cells := make([]string, len(fields))
		empty := true
		for j, f := range fields {
			cell, ok := raw.Cell(i, table.ColumnKey{Section: string(schema.Admin), Field: f.Raw})
			if ok {
				cells[j] = cell
				empty = false
			}
		}
		if empty {
			continue
		}
		key := strings.Join(cells, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true

		values := make([]table.Value, len(cells))
		for j, cell := range cells {
			values[j] = table.NewStringValue(cell)
		}
		frame.Append(values)
	}

	frame.Cast(schema.Kinds(schema.Admin))

	ids := map[int64]bool{}
	for i := 0; i < frame.NumRows(); i++ {
		id, ok := frame.Value(i, schema.ColID).AsInt()
		if !ok {
			return nil, errors.DataIntegrity(fmt.Sprintf("admin row %d has no usable case identifier", i))
		}
		if ids[id] {
			return nil, errors.DataIntegrity(fmt.Sprintf("case identifier %d is not unique, admin data likely not properly duplicated", id))
		}
		ids[id] = true
	}

	return frame, nil
}

// FootwearTable builds the long-format observation table: the three footwear
// sections normalized independently and stacked, with category codes decoded
// to labels.
func FootwearTable(raw *table.Raw) (*table.Frame, error) {
	frames := make([]*table.Frame, 0, 3)
	for _, sec := range schema.FootwearSections() {
		frame, err := Section(raw, sec)
		if err != nil {
			return nil, errors.Wrapf(err, "normalizing section %s", string(sec))
		}
		frames = append(frames, frame)
	}

	footwear, err := table.Concat(frames...)
	if err != nil {
		return nil, err
	}

	DecodeCategory(footwear, schema.ColType, schema.FootwearTypeCodes)
	DecodeCategory(footwear, schema.ColSubtype, schema.FootwearSubtypeCodes)
	DecodeCategory(footwear, schema.ColSizeType, schema.SizeTypeCodes)

	return footwear, nil
}

// DecodeCategory rewrites cells exactly matching a short code to the decoded
// label. Cells matching no code pass through unchanged, missing cells stay
// missing.
func DecodeCategory(f *table.Frame, column string, codes []schema.Code) {
	j := f.ColumnIndex(column)
	if j < 0 {
		return
	}
	for i := range f.Rows {
		text, ok := f.Rows[i][j].AsText()
		if !ok {
			continue
		}
		for _, code := range codes {
			if text == code.Code {
				f.Rows[i][j] = table.NewCategoryValue(code.Label)
				break
			}
		}
	}
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
