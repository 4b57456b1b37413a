// Package store persists each processed run — the normalized tables and the
// accuracy summaries — to a local SQLite database.
package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"mpf/domain/accuracy"
	"mpf/domain/schema"
	"mpf/domain/table"
	"mpf/internal/errors"
)

const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	fetched_at TIMESTAMP NOT NULL,
	source     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cases (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	case_id INTEGER NOT NULL,
	state   TEXT,
	country TEXT,
	date    TIMESTAMP,
	lpb     TEXT
);
CREATE TABLE IF NOT EXISTS observations (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	case_id   INTEGER,
	section   TEXT NOT NULL,
	type      TEXT,
	subtype   TEXT,
	color     TEXT,
	brand     TEXT,
	size_lo   REAL,
	size_hi   REAL,
	size_type TEXT,
	dist_lo   REAL,
	dist_hi   REAL
);
CREATE TABLE IF NOT EXISTS accuracy (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	metric    TEXT NOT NULL,
	report    TEXT NOT NULL,
	correct   INTEGER NOT NULL,
	incorrect INTEGER NOT NULL
);
`

// Run identifies one processed ingestion.
type Run struct {
	ID        string    `db:"id"`
	FetchedAt time.Time `db:"fetched_at"`
	Source    string    `db:"source"`
}

// Store wraps the SQLite database holding processed runs.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the processed database at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.StorageError("creating database directory", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.StorageError("opening processed database", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, errors.StorageError("creating schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes a run with its admin table, footwear table, and accuracy
// entries in one transaction.
func (s *Store) SaveRun(run Run, admin, footwear *table.Frame, entries []accuracy.Entry) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.StorageError("starting transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, fetched_at, source) VALUES (?, ?, ?)`,
		run.ID, run.FetchedAt, run.Source,
	); err != nil {
		return errors.StorageError("inserting run", err)
	}

	for i := 0; i < admin.NumRows(); i++ {
		if _, err := tx.Exec(
			`INSERT INTO cases (run_id, case_id, state, country, date, lpb) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID,
			toArg(admin.Value(i, schema.ColID)),
			toArg(admin.Value(i, schema.ColState)),
			toArg(admin.Value(i, schema.ColCountry)),
			toArg(admin.Value(i, schema.ColDate)),
			toArg(admin.Value(i, schema.ColLPB)),
		); err != nil {
			return errors.StorageError("inserting case", err)
		}
	}

	for i := 0; i < footwear.NumRows(); i++ {
		if _, err := tx.Exec(
			`INSERT INTO observations
			 (run_id, case_id, section, type, subtype, color, brand, size_lo, size_hi, size_type, dist_lo, dist_hi)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			toArg(footwear.Value(i, schema.ColID)),
			toArg(footwear.Value(i, schema.ColSection)),
			toArg(footwear.Value(i, schema.ColType)),
			toArg(footwear.Value(i, schema.ColSubtype)),
			toArg(footwear.Value(i, schema.ColColor)),
			toArg(footwear.Value(i, schema.ColBrand)),
			toArg(footwear.Value(i, schema.ColSizeLo)),
			toArg(footwear.Value(i, schema.ColSizeHi)),
			toArg(footwear.Value(i, schema.ColSizeType)),
			toArg(footwear.Value(i, schema.ColDistLo)),
			toArg(footwear.Value(i, schema.ColDistHi)),
		); err != nil {
			return errors.StorageError("inserting observation", err)
		}
	}

	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO accuracy (run_id, metric, report, correct, incorrect) VALUES (?, ?, ?, ?, ?)`,
			run.ID, e.Metric, string(e.Report), e.Correct, e.Incorrect,
		); err != nil {
			return errors.StorageError("inserting accuracy entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.StorageError("committing run", err)
	}
	return nil
}

// CaseCount returns the number of cases stored for a run.
func (s *Store) CaseCount(runID string) (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM cases WHERE run_id = ?`, runID)
	return n, err
}

// ObservationCount returns the number of observations stored for a run.
func (s *Store) ObservationCount(runID string) (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM observations WHERE run_id = ?`, runID)
	return n, err
}

// AccuracyEntries reads back the accuracy summaries of a run.
func (s *Store) AccuracyEntries(runID string) ([]accuracy.Entry, error) {
	rows, err := s.db.Queryx(
		`SELECT metric, report, correct, incorrect FROM accuracy WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.StorageError("querying accuracy entries", err)
	}
	defer rows.Close()

	var entries []accuracy.Entry
	for rows.Next() {
		var metric, report string
		var correct, incorrect int
		if err := rows.Scan(&metric, &report, &correct, &incorrect); err != nil {
			return nil, errors.StorageError("scanning accuracy entry", err)
		}
		entries = append(entries, accuracy.Entry{
			Metric:    metric,
			Report:    schema.Section(report),
			Correct:   correct,
			Incorrect: incorrect,
		})
	}
	return entries, rows.Err()
}

// toArg converts a table value to a driver argument, mapping missing to NULL.
func toArg(v table.Value) interface{} {
	if v.IsMissing() {
		return nil
	}
	if n, ok := v.AsInt(); ok {
		return n
	}
	if f, ok := v.AsFloat(); ok {
		return f
	}
	if t, ok := v.AsTime(); ok {
		return t
	}
	if s, ok := v.AsText(); ok {
		return s
	}
	return nil
}
