// Package backup persists the raw two-level table to a local CSV cache with
// the same two header rows as the source sheet.
package backup

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"mpf/domain/table"
	"mpf/internal/errors"
)

// Store reads and writes the backup file at a fixed path.
type Store struct {
	Path string
}

// NewStore creates a store for the given path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Save writes the raw table, overwriting any previous backup. The first row
// carries section labels, the second field labels, then the data rows.
// Missing cells are written as empty strings.
func (s *Store) Save(raw *table.Raw) error {
	if raw == nil {
		return errors.ValidationError("raw table is nil")
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.StorageError("creating backup directory", err)
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return errors.StorageError("creating backup file", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	sections := make([]string, len(raw.Columns))
	fields := make([]string, len(raw.Columns))
	for i, col := range raw.Columns {
		sections[i] = col.Section
		fields[i] = col.Field
	}
	if err := w.Write(sections); err != nil {
		return errors.StorageError("writing backup header", err)
	}
	if err := w.Write(fields); err != nil {
		return errors.StorageError("writing backup header", err)
	}
	for _, row := range raw.Rows {
		if err := w.Write(row); err != nil {
			return errors.StorageError("writing backup row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.StorageError("flushing backup file", err)
	}
	return nil
}

// Load reads the backup file back into a raw table with the usual
// empty-string-to-missing normalization.
func (s *Store) Load() (*table.Raw, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("backup file")
		}
		return nil, errors.StorageError("opening backup file", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.StorageError("reading backup file", err)
	}

	raw, err := table.NewRaw(rows)
	if err != nil {
		return nil, errors.Wrap(err, "building raw table from backup")
	}
	return raw, nil
}
