// Package report renders the per-run summary document: table shapes,
// accuracy summaries, and descriptive profiles, as markdown and HTML.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"mpf/domain/accuracy"
	"mpf/domain/profile"
	"mpf/domain/table"
	"mpf/internal/errors"
)

// Data bundles everything the report renders.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Source      string
	Admin       *table.Frame
	Footwear    *table.Frame
	Entries     []accuracy.Entry
	Percents    []accuracy.Percent
	Distances   profile.DistanceProfile
	Sizes       []profile.SizeProfile
	TypeTab     profile.CrossTab
	Mismatches  []profile.BrandMismatch
}

// Markdown renders the report as a markdown document.
func Markdown(d Data) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Missing-Person Footwear Report\n\n")
	fmt.Fprintf(&b, "- Run: %s\n", d.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", d.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Source: %s\n", d.Source)
	fmt.Fprintf(&b, "- Cases: %d\n", d.Admin.NumRows())
	fmt.Fprintf(&b, "- Observations: %d\n\n", d.Footwear.NumRows())

	b.WriteString("## Reported vs Found Accuracy\n\n")
	b.WriteString("| Metric | Report | Correct | Incorrect | Correct % |\n")
	b.WriteString("|---|---|---|---|---|\n")
	percents := map[string]accuracy.Percent{}
	for _, p := range d.Percents {
		percents[p.Metric+"/"+string(p.Report)] = p
	}
	for _, e := range d.Entries {
		p := percents[e.Metric+"/"+string(e.Report)]
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %.1f |\n",
			e.Metric, string(e.Report), e.Correct, e.Incorrect, p.CorrectPct)
	}
	b.WriteString("\n")

	b.WriteString("## Separate Recovery Distances\n\n")
	if d.Distances.Count == 0 {
		b.WriteString("No usable distance pairs.\n\n")
	} else {
		fmt.Fprintf(&b, "- Samples: %d (excluded %d at or below threshold)\n", d.Distances.Count, d.Distances.Excluded)
		fmt.Fprintf(&b, "- Range: %.1f m to %.1f m\n", d.Distances.Min, d.Distances.Max)
		fmt.Fprintf(&b, "- Mean: %.1f m, Median: %.1f m, P90: %.1f m\n\n",
			d.Distances.Mean, d.Distances.Median, d.Distances.P90)
	}

	b.WriteString("## Size Distributions\n\n")
	b.WriteString("| Section | Count | Mean | Std Dev |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, s := range d.Sizes {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f |\n", string(s.Section), s.Count, s.Mean, s.StdDev)
	}
	b.WriteString("\n")

	b.WriteString("## Reported vs Found Type\n\n")
	writeCrossTab(&b, d.TypeTab)

	b.WriteString("## Brand Mismatches\n\n")
	if len(d.Mismatches) == 0 {
		b.WriteString("None.\n")
	} else {
		b.WriteString("| ID | Reported | Found |\n")
		b.WriteString("|---|---|---|\n")
		for _, m := range d.Mismatches {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", m.ID, m.Reported, m.Found)
		}
	}

	return []byte(b.String())
}

func writeCrossTab(b *strings.Builder, tab profile.CrossTab) {
	if len(tab.ReportedLabels) == 0 {
		b.WriteString("No paired type observations.\n\n")
		return
	}

	b.WriteString("| Reported \\ Found |")
	for _, label := range tab.FoundLabels {
		fmt.Fprintf(b, " %s |", label)
	}
	b.WriteString("\n|---|")
	for range tab.FoundLabels {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, label := range tab.ReportedLabels {
		fmt.Fprintf(b, "| %s |", label)
		for j := range tab.FoundLabels {
			fmt.Fprintf(b, " %.0f |", tab.Counts[i][j])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// HTML renders the markdown report to a standalone HTML page.
func HTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: "Missing-Person Footwear Report",
	})
	return markdown.Render(doc, renderer)
}

// Write renders and writes report.md and report.html into dir.
func Write(dir string, d Data) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.StorageError("creating report directory", err)
	}

	md := Markdown(d)
	if err := os.WriteFile(filepath.Join(dir, "report.md"), md, 0o644); err != nil {
		return errors.StorageError("writing report.md", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.html"), HTML(md), 0o644); err != nil {
		return errors.StorageError("writing report.html", err)
	}
	return nil
}
