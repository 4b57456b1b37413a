package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpf/domain/accuracy"
	"mpf/domain/profile"
	"mpf/domain/schema"
	"mpf/domain/table"
)

func sampleData() Data {
	admin := table.NewFrame(schema.ColID)
	admin.Append([]table.Value{table.NewIntValue(1)})

	footwear := table.NewFrame(schema.ColID, schema.ColSection, schema.ColType)
	footwear.Append([]table.Value{
		table.NewIntValue(1),
		table.NewCategoryValue(string(schema.Reported)),
		table.NewCategoryValue("Shoes"),
	})

	entries := []accuracy.Entry{
		{Metric: "Type", Report: schema.Found, Correct: 3, Incorrect: 1},
	}

	return Data{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Source:      "IMPFDcurrent",
		Admin:       admin,
		Footwear:    footwear,
		Entries:     entries,
		Percents:    accuracy.Percentages(entries),
		Distances:   profile.DistanceProfile{Count: 2, Excluded: 1, Min: 5, Max: 30, Mean: 17.5, Median: 17.5, P90: 30},
		Sizes:       []profile.SizeProfile{{Section: schema.Reported, Count: 1, Mean: 9}},
		TypeTab: profile.CrossTab{
			ReportedLabels: []string{"Shoes"},
			FoundLabels:    []string{"Boots", "Shoes"},
			Counts:         [][]float64{{1, 2}},
		},
		Mismatches: []profile.BrandMismatch{{ID: 1, Reported: "Nike", Found: "Crocs"}},
	}
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleData()))

	assert.Contains(t, md, "run-1")
	assert.Contains(t, md, "| Type | FOUND | 3 | 1 | 75.0 |")
	assert.Contains(t, md, "## Separate Recovery Distances")
	assert.Contains(t, md, "| Shoes | 1 | 2 |")
	assert.Contains(t, md, "| 1 | Nike | Crocs |")
}

func TestMarkdownEmptySections(t *testing.T) {
	d := sampleData()
	d.Distances = profile.DistanceProfile{}
	d.TypeTab = profile.CrossTab{}
	d.Mismatches = nil

	md := string(Markdown(d))
	assert.Contains(t, md, "No usable distance pairs.")
	assert.Contains(t, md, "No paired type observations.")
	assert.Contains(t, md, "None.")
}

func TestHTML(t *testing.T) {
	html := string(HTML(Markdown(sampleData())))
	assert.True(t, strings.Contains(html, "<table>"), "accuracy table should render as HTML table")
	assert.Contains(t, html, "Missing-Person Footwear Report")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2026-08-30")
	require.NoError(t, Write(dir, sampleData()))

	for _, name := range []string{"report.md", "report.html"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
