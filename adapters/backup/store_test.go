package backup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpf/domain/table"
	"mpf/internal/errors"
)

func TestRoundTrip(t *testing.T) {
	raw, err := table.NewRaw([][]string{
		{"ADMINISTRATIVE", "", "REPORTED"},
		{"DBnum", "Date", "RepType"},
		{"1", "2021-06-01", "s"},
		{"2", "", "b"},
	})
	require.NoError(t, err)

	store := NewStore(filepath.Join(t.TempDir(), "nested", "data.csv"))
	require.NoError(t, store.Save(raw))

	loaded, err := store.Load()
	require.NoError(t, err)

	require.Equal(t, raw.Columns, loaded.Columns)
	require.Equal(t, raw.NumRows(), loaded.NumRows())
	for i, row := range raw.Rows {
		assert.Equal(t, row, loaded.Rows[i], "row %d", i)
	}

	// Missing cells survive the round trip as missing.
	_, ok := loaded.Cell(1, table.ColumnKey{Section: "ADMINISTRATIVE", Field: "Date"})
	assert.False(t, ok)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	store := NewStore(path)

	first, err := table.NewRaw([][]string{{"A"}, {"x"}, {"1"}, {"2"}})
	require.NoError(t, err)
	require.NoError(t, store.Save(first))

	second, err := table.NewRaw([][]string{{"A"}, {"x"}, {"9"}})
	require.NoError(t, err)
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, loaded.NumRows())
	v, ok := loaded.Cell(0, table.ColumnKey{Section: "A", Field: "x"})
	require.True(t, ok)
	assert.Equal(t, "9", v)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.csv"))
	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
