// Package profile computes the descriptive summaries behind the report:
// recovery distance distributions, size distributions, the reported-vs-found
// type cross-tabulation, and the brand mismatch listing.
package profile

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"mpf/domain/schema"
	"mpf/domain/table"
)

// DistanceProfile summarizes how far separately-recovered footwear was found
// from the subject.
type DistanceProfile struct {
	Count    int
	Excluded int
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
	P90      float64
}

// Distances profiles the separate-recovery distance pairs. Rows need both a
// close and a far distance to contribute; values at or below the threshold
// are excluded and counted, which filters footwear recovered essentially on
// the subject.
func Distances(footwear *table.Frame, threshold float64) DistanceProfile {
	var values []float64
	excluded := 0
	for i := 0; i < footwear.NumRows(); i++ {
		lo, okLo := footwear.Value(i, schema.ColDistLo).AsFloat()
		hi, okHi := footwear.Value(i, schema.ColDistHi).AsFloat()
		if !okLo || !okHi {
			continue
		}
		for _, d := range []float64{lo, hi} {
			if d > threshold {
				values = append(values, d)
			} else {
				excluded++
			}
		}
	}

	profile := DistanceProfile{Count: len(values), Excluded: excluded}
	if len(values) == 0 {
		return profile
	}

	data := stats.Float64Data(values)
	profile.Min, _ = data.Min()
	profile.Max, _ = data.Max()
	profile.Mean, _ = data.Mean()
	profile.Median, _ = data.Median()
	profile.P90, _ = data.Percentile(90)
	return profile
}

// SizeProfile summarizes the size-low distribution of one section.
type SizeProfile struct {
	Section schema.Section
	Count   int
	Mean    float64
	StdDev  float64
}

// Sizes profiles reported, found, and separate size distributions.
func Sizes(footwear *table.Frame) []SizeProfile {
	out := make([]SizeProfile, 0, 3)
	for _, sec := range schema.FootwearSections() {
		var values []float64
		for i := 0; i < footwear.NumRows(); i++ {
			s, ok := footwear.Value(i, schema.ColSection).AsText()
			if !ok || s != string(sec) {
				continue
			}
			if lo, ok := footwear.Value(i, schema.ColSizeLo).AsFloat(); ok {
				values = append(values, lo)
			}
		}
		profile := SizeProfile{Section: sec, Count: len(values)}
		if len(values) > 0 {
			profile.Mean, profile.StdDev = stat.MeanStdDev(values, nil)
		}
		out = append(out, profile)
	}
	return out
}

// MixedCaseIDs returns the identifiers of cases with more than one footwear
// row in the given section, sorted ascending.
func MixedCaseIDs(footwear *table.Frame, sec schema.Section) []int64 {
	counts := map[int64]int{}
	for i := 0; i < footwear.NumRows(); i++ {
		s, ok := footwear.Value(i, schema.ColSection).AsText()
		if !ok || s != string(sec) {
			continue
		}
		if id, ok := footwear.Value(i, schema.ColID).AsInt(); ok {
			counts[id]++
		}
	}

	var ids []int64
	for id, n := range counts {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CrossTab is a reported-vs-found contingency table of footwear type labels.
type CrossTab struct {
	ReportedLabels []string
	FoundLabels    []string
	// Counts[i][j] pairs ReportedLabels[i] with FoundLabels[j]. Values are
	// percentages of the grand total when built in percent mode.
	Counts [][]float64
}

// TypeCrossTab cross-tabulates reported footwear type against found type,
// one cell per case. Minimal subtypes promote to their own type label, cases
// with multiple rows in a section count as Mixed, missing types read as
// Unknown, and separate recovery folds into found.
func TypeCrossTab(footwear *table.Frame, percent bool) CrossTab {
	type cell struct {
		reported string
		found    string
	}

	mixed := map[schema.Section]map[int64]bool{
		schema.Reported: idSet(MixedCaseIDs(footwear, schema.Reported)),
		schema.Found:    idSet(foldedMixedFoundIDs(footwear)),
	}

	var ids []int64
	reportedByID := map[int64]string{}
	foundByID := map[int64]string{}
	for i := 0; i < footwear.NumRows(); i++ {
		id, ok := footwear.Value(i, schema.ColID).AsInt()
		if !ok {
			continue
		}
		secText, ok := footwear.Value(i, schema.ColSection).AsText()
		if !ok {
			continue
		}
		sec := schema.Section(secText)
		if sec == schema.Separate {
			sec = schema.Found
		}

		label, ok := footwear.Value(i, schema.ColType).AsText()
		if !ok {
			label = schema.LabelUnknown
		}
		if sub, ok := footwear.Value(i, schema.ColSubtype).AsText(); ok && sub == schema.TypeMinimal {
			label = schema.TypeMinimal
		}
		if mixed[sec][id] {
			label = schema.TypeMixed
		}

		byID := reportedByID
		if sec == schema.Found {
			byID = foundByID
		}
		if _, seen := byID[id]; !seen {
			byID[id] = label
			if !containsID(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	counts := map[cell]int{}
	total := 0
	for _, id := range ids {
		rep, okRep := reportedByID[id]
		found, okFound := foundByID[id]
		if !okRep || !okFound {
			continue
		}
		counts[cell{reported: rep, found: found}]++
		total++
	}

	tab := CrossTab{}
	repSeen, foundSeen := map[string]bool{}, map[string]bool{}
	for c := range counts {
		if !repSeen[c.reported] {
			repSeen[c.reported] = true
			tab.ReportedLabels = append(tab.ReportedLabels, c.reported)
		}
		if !foundSeen[c.found] {
			foundSeen[c.found] = true
			tab.FoundLabels = append(tab.FoundLabels, c.found)
		}
	}
	sort.Strings(tab.ReportedLabels)
	sort.Strings(tab.FoundLabels)

	tab.Counts = make([][]float64, len(tab.ReportedLabels))
	for i, rep := range tab.ReportedLabels {
		tab.Counts[i] = make([]float64, len(tab.FoundLabels))
		for j, found := range tab.FoundLabels {
			n := float64(counts[cell{reported: rep, found: found}])
			if percent && total > 0 {
				n = 100 * n / float64(total)
			}
			tab.Counts[i][j] = n
		}
	}
	return tab
}

// BrandMismatch is one case where the reported brand disagrees with what was
// recovered.
type BrandMismatch struct {
	ID       int64
	Reported string
	Found    string
}

// BrandMismatches lists every case whose reported and found brands differ,
// case-insensitively, with separate recovery folded into found.
func BrandMismatches(footwear *table.Frame) []BrandMismatch {
	var ids []int64
	reportedByID := map[int64]string{}
	foundByID := map[int64]string{}

	for i := 0; i < footwear.NumRows(); i++ {
		id, ok := footwear.Value(i, schema.ColID).AsInt()
		if !ok {
			continue
		}
		sec, ok := footwear.Value(i, schema.ColSection).AsText()
		if !ok {
			continue
		}
		if sec == string(schema.Separate) {
			sec = string(schema.Found)
		}
		brand, ok := footwear.Value(i, schema.ColBrand).AsText()
		if !ok {
			continue
		}

		byID := reportedByID
		if sec == string(schema.Found) {
			byID = foundByID
		} else if sec != string(schema.Reported) {
			continue
		}
		if _, seen := byID[id]; !seen {
			byID[id] = brand
			if !containsID(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	var out []BrandMismatch
	for _, id := range ids {
		rep, okRep := reportedByID[id]
		found, okFound := foundByID[id]
		if !okRep || !okFound {
			continue
		}
		if !strings.EqualFold(rep, found) {
			out = append(out, BrandMismatch{ID: id, Reported: rep, Found: found})
		}
	}
	return out
}

// foldedMixedFoundIDs counts found-section multiplicity with separate rows
// folded in, matching how the cross-tabulation sees the data.
func foldedMixedFoundIDs(footwear *table.Frame) []int64 {
	counts := map[int64]int{}
	for i := 0; i < footwear.NumRows(); i++ {
		s, ok := footwear.Value(i, schema.ColSection).AsText()
		if !ok || (s != string(schema.Found) && s != string(schema.Separate)) {
			continue
		}
		if id, ok := footwear.Value(i, schema.ColID).AsInt(); ok {
			counts[id]++
		}
	}
	var ids []int64
	for id, n := range counts {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
