package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpf/domain/schema"
	"mpf/domain/table"
)

func str(s string) table.Value { return table.NewStringValue(s) }
func missing() table.Value     { return table.NewMissingValue() }

func TestCorrectType(t *testing.T) {
	tests := []struct {
		reported string
		found    table.Value
		expected bool
	}{
		{"Shoes", str("Unshod"), false},
		{"Shoes", str("Shoes"), true},
		{"Shoes", str("shoes"), true},
		{"Shoes", missing(), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CorrectType(tt.reported, tt.found),
			"reported=%s found=%v", tt.reported, tt.found)
	}
}

func TestCorrectBrand(t *testing.T) {
	tests := []struct {
		reported string
		found    table.Value
		expected bool
	}{
		{"NIKE", str("nike"), true},
		{"Nike", str("nike"), true},
		{"nike", str("crocs"), false},
		{"nike", missing(), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CorrectBrand(tt.reported, tt.found),
			"reported=%s found=%v", tt.reported, tt.found)
	}
}

func TestCorrectColor(t *testing.T) {
	tests := []struct {
		reported string
		found    table.Value
		expected bool
	}{
		{"black/white", str("black/white"), true},
		{"black/white", str("black"), true},
		{"black/white", str("white"), true},
		{"black/white", str("orange"), false},
		{"brown", str("tan"), false},
		{"black", str("black"), true},
		{"black", missing(), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CorrectColor(tt.reported, tt.found),
			"reported=%s found=%v", tt.reported, tt.found)
	}
}

func TestCorrectSize(t *testing.T) {
	tests := []struct {
		reported  [2]float64
		found     []float64
		tolerance float64
		expected  bool
	}{
		{[2]float64{5, 6}, []float64{4.5, 4.5}, 0, false},
		{[2]float64{5, 6}, []float64{5, 5}, 0, true},
		{[2]float64{5, 6}, []float64{5.5, 5.5}, 0, true},
		{[2]float64{5, 6}, []float64{6, 6}, 0, true},
		{[2]float64{5, 6}, []float64{6.5, 6.5}, 0, false},
		{[2]float64{5, 6}, []float64{6.5, 6.5}, 0.5, true},
	}
	for _, tt := range tests {
		got, err := CorrectSize(tt.reported, tt.found, tt.tolerance)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got,
			"reported=%v found=%v tol=%v", tt.reported, tt.found, tt.tolerance)
	}
}

func TestCorrectSizeRejectsBadPair(t *testing.T) {
	_, err := CorrectSize([2]float64{5, 6}, []float64{5}, 0)
	require.Error(t, err)

	_, err = CorrectSize([2]float64{5, 6}, []float64{5, 5, 5}, 0)
	require.Error(t, err)
}

// buildFootwear assembles a minimal footwear frame: one row per
// (case, section) pair carrying a single attribute.
func buildFootwear(column string, reports []map[schema.Section]string) *table.Frame {
	f := table.NewFrame(schema.ColID, schema.ColSection, column)
	for i, report := range reports {
		for _, sec := range []schema.Section{schema.Reported, schema.Found, schema.Separate} {
			value, ok := report[sec]
			if !ok {
				continue
			}
			f.Append([]table.Value{
				table.NewIntValue(int64(i)),
				table.NewCategoryValue(string(sec)),
				table.NewCategoryValue(value),
			})
		}
	}
	return f
}

func TestTypeSummary(t *testing.T) {
	footwear := buildFootwear(schema.ColType, []map[schema.Section]string{
		{schema.Reported: "Shoes", schema.Found: "Shoes"},
		{schema.Reported: "Shoes", schema.Found: "Boots"},
		{schema.Reported: "Boots", schema.Found: "Boots"},
	})

	entries := TypeSummary(footwear)
	require.Len(t, entries, 2)

	assert.Equal(t, schema.Found, entries[0].Report)
	assert.Equal(t, 2, entries[0].Correct)
	assert.Equal(t, 1, entries[0].Incorrect)

	// No separate observations: the SEPARATE comparison scores nothing.
	assert.Equal(t, schema.Separate, entries[1].Report)
	assert.Equal(t, 0, entries[1].Total())
}

func TestTypeSummaryKeepsSeparateApart(t *testing.T) {
	footwear := buildFootwear(schema.ColType, []map[schema.Section]string{
		{schema.Reported: "Shoes", schema.Separate: "Shoes"},
		{schema.Reported: "Shoes", schema.Found: "Boots", schema.Separate: "Shoes"},
	})

	entries := TypeSummary(footwear)
	require.Len(t, entries, 2)

	// Case 0 has no FOUND observation, so only case 1 scores there.
	assert.Equal(t, 0, entries[0].Correct)
	assert.Equal(t, 1, entries[0].Incorrect)

	// Both cases score against SEPARATE.
	assert.Equal(t, schema.Separate, entries[1].Report)
	assert.Equal(t, 2, entries[1].Correct)
	assert.Equal(t, 0, entries[1].Incorrect)
}

func TestBrandSummaryTreatsSeparateAsFound(t *testing.T) {
	footwear := buildFootwear(schema.ColBrand, []map[schema.Section]string{
		{schema.Reported: "nike", schema.Found: "nike"},
		{schema.Reported: "nike", schema.Separate: "croc"},
		{schema.Reported: "croc", schema.Separate: "croc"},
	})

	entries := BrandSummary(footwear)
	require.Len(t, entries, 1)
	assert.Equal(t, schema.Found, entries[0].Report)
	assert.Equal(t, 2, entries[0].Correct)
	assert.Equal(t, 1, entries[0].Incorrect)
}

func TestBrandSummaryFoundWinsOverSeparate(t *testing.T) {
	// When a case has both a found and a separate observation, the found
	// value is encountered first and wins the pivot.
	footwear := buildFootwear(schema.ColBrand, []map[schema.Section]string{
		{schema.Reported: "nike", schema.Found: "nike", schema.Separate: "croc"},
	})

	entries := BrandSummary(footwear)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Correct)
	assert.Equal(t, 0, entries[0].Incorrect)
}

func TestColorSummary(t *testing.T) {
	footwear := buildFootwear(schema.ColColor, []map[schema.Section]string{
		{schema.Reported: "black/white", schema.Found: "black"},
		{schema.Reported: "brown", schema.Found: "tan"},
	})

	entries := ColorSummary(footwear)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Correct)
	assert.Equal(t, 1, entries[0].Incorrect)
}

func TestSizeSummary(t *testing.T) {
	f := table.NewFrame(schema.ColID, schema.ColSection, schema.ColSizeLo, schema.ColSizeHi)
	addSize := func(id int64, sec schema.Section, lo, hi float64) {
		f.Append([]table.Value{
			table.NewIntValue(id),
			table.NewCategoryValue(string(sec)),
			table.NewFloatValue(lo),
			table.NewFloatValue(hi),
		})
	}
	addSize(1, schema.Reported, 5, 6)
	addSize(1, schema.Found, 6.5, 6.5)
	addSize(2, schema.Reported, 8, 8)
	addSize(2, schema.Separate, 8, 8)
	// Case 3 has no recovered size and scores nothing.
	addSize(3, schema.Reported, 7, 7)

	entries, err := SizeSummary(f, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Correct)
	assert.Equal(t, 1, entries[0].Incorrect)

	// The default tolerance widens the interval enough for case 1.
	entries, err = SizeSummary(f, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, entries[0].Correct)
	assert.Equal(t, 0, entries[0].Incorrect)
}

func TestPercentages(t *testing.T) {
	entries := []Entry{
		{Metric: "Type", Report: schema.Found, Correct: 3, Incorrect: 1},
		{Metric: "Brand", Report: schema.Found, Correct: 1, Incorrect: 3},
		{Metric: "Color", Report: schema.Separate, Correct: 0, Incorrect: 0},
	}

	percents := Percentages(entries)
	require.Len(t, percents, 3)

	// Each group normalizes against its own total, not the global one.
	assert.InDelta(t, 75.0, percents[0].CorrectPct, 1e-9)
	assert.InDelta(t, 25.0, percents[0].IncorrectPct, 1e-9)
	assert.InDelta(t, 25.0, percents[1].CorrectPct, 1e-9)
	assert.Zero(t, percents[2].CorrectPct)
	assert.Zero(t, percents[2].IncorrectPct)
}
