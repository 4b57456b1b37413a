// Package accuracy scores how well reported footwear attributes match what
// was recovered, per case and per comparison kind.
package accuracy

import (
	"strings"

	"mpf/domain/schema"
	"mpf/domain/table"
	"mpf/internal/errors"
)

// Entry summarizes one attribute against one comparison kind.
type Entry struct {
	Metric    string
	Report    schema.Section
	Correct   int
	Incorrect int
}

// Total returns the number of scored cases.
func (e Entry) Total() int {
	return e.Correct + e.Incorrect
}

// Percent holds an entry's counts normalized to percentages within its own
// (attribute, comparison kind) group, so attributes with different sample
// sizes compare visually on equal footing.
type Percent struct {
	Metric       string
	Report       schema.Section
	CorrectPct   float64
	IncorrectPct float64
}

// CorrectType reports whether a reported footwear type matches the found
// value. Case-insensitive; a missing or non-string found value never matches.
func CorrectType(reported string, found table.Value) bool {
	text, ok := found.AsText()
	if !ok {
		return false
	}
	return strings.EqualFold(reported, text)
}

// CorrectBrand reports whether a reported brand matches the found value.
// Case-insensitive; a missing or non-string found value never matches.
func CorrectBrand(reported string, found table.Value) bool {
	text, ok := found.AsText()
	if !ok {
		return false
	}
	return strings.EqualFold(reported, text)
}

// CorrectColor reports whether a reported color matches the found value.
// Both sides split on "/" into sets of sub-colors; one shared color is
// enough. This is deliberately lenient: "black/white" matches "black".
func CorrectColor(reported string, found table.Value) bool {
	text, ok := found.AsText()
	if !ok {
		return false
	}
	reportedSet := colorSet(reported)
	for _, color := range colorSet(text) {
		for _, rep := range reportedSet {
			if color == rep {
				return true
			}
		}
	}
	return false
}

func colorSet(s string) []string {
	parts := strings.Split(strings.ToLower(s), "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CorrectSize reports whether the found size falls within the reported
// [low, high] interval widened by the tolerance on both ends. The found pair
// carries the same value twice, a redundancy from concatenating size-low and
// size-high uniformly across sections; a found pair of any other length is a
// caller-contract violation.
func CorrectSize(reported [2]float64, found []float64, tolerance float64) (bool, error) {
	if len(found) != 2 {
		return false, errors.ValidationError("found size must be a pair of length 2")
	}
	return reported[0]-tolerance <= found[0] && found[0] <= reported[1]+tolerance, nil
}

// TypeSummary scores the Type attribute. Separately-recovered footwear keeps
// its own comparison kind since recovery context changes the semantics.
func TypeSummary(footwear *table.Frame) []Entry {
	return summarize(footwear, schema.ColType, CorrectType, false)
}

// BrandSummary scores the Brand attribute, treating separate recovery as
// found.
func BrandSummary(footwear *table.Frame) []Entry {
	return summarize(footwear, schema.ColBrand, CorrectBrand, true)
}

// ColorSummary scores the Color attribute, treating separate recovery as
// found.
func ColorSummary(footwear *table.Frame) []Entry {
	return summarize(footwear, schema.ColColor, CorrectColor, true)
}

// SizeSummary scores the size interval attribute, treating separate recovery
// as found.
func SizeSummary(footwear *table.Frame, tolerance float64) ([]Entry, error) {
	pairs := pivotSizes(footwear)

	correct, incorrect := 0, 0
	for _, id := range pairs.ids {
		p := pairs.byID[id]
		if p.reported == nil || p.compared == nil {
			continue
		}
		ok, err := CorrectSize([2]float64{p.reported[0], p.reported[1]}, p.compared, tolerance)
		if err != nil {
			return nil, err
		}
		if ok {
			correct++
		} else {
			incorrect++
		}
	}

	return []Entry{{Metric: "Size", Report: schema.Found, Correct: correct, Incorrect: incorrect}}, nil
}

// Summaries unions every attribute summary in a fixed order.
func Summaries(footwear *table.Frame, tolerance float64) ([]Entry, error) {
	entries := TypeSummary(footwear)
	entries = append(entries, BrandSummary(footwear)...)
	entries = append(entries, ColorSummary(footwear)...)

	sizes, err := SizeSummary(footwear, tolerance)
	if err != nil {
		return nil, err
	}
	return append(entries, sizes...), nil
}

// Percentages normalizes each entry's counts within its own group. Groups
// with no scored cases yield zero percentages.
func Percentages(entries []Entry) []Percent {
	out := make([]Percent, 0, len(entries))
	for _, e := range entries {
		p := Percent{Metric: e.Metric, Report: e.Report}
		if total := e.Total(); total > 0 {
			p.CorrectPct = 100 * float64(e.Correct) / float64(total)
			p.IncorrectPct = 100 * float64(e.Incorrect) / float64(total)
		}
		out = append(out, p)
	}
	return out
}

// pairing tracks the first value seen per case for each side of a
// comparison.
type pairing struct {
	reported table.Value
	compared table.Value
	hasRep   bool
	hasCmp   bool
}

// summarize pivots the footwear table to one row per case with the reported
// and compared values of one attribute, keeping the first value per case per
// section and dropping cases missing either side, then applies the equality
// rule. With sepAsFound, SEPARATE rows fold into FOUND and only the FOUND
// entry is emitted; otherwise a second entry scores REPORTED against
// SEPARATE.
func summarize(footwear *table.Frame, column string, eq func(string, table.Value) bool, sepAsFound bool) []Entry {
	entries := []Entry{scoreAgainst(footwear, column, eq, schema.Found, sepAsFound)}
	if !sepAsFound {
		entries = append(entries, scoreAgainst(footwear, column, eq, schema.Separate, false))
	}
	return entries
}

func scoreAgainst(footwear *table.Frame, column string, eq func(string, table.Value) bool, compared schema.Section, sepAsFound bool) Entry {
	var ids []int64
	byID := map[int64]*pairing{}

	for i := 0; i < footwear.NumRows(); i++ {
		id, ok := footwear.Value(i, schema.ColID).AsInt()
		if !ok {
			continue
		}
		sec, ok := footwear.Value(i, schema.ColSection).AsText()
		if !ok {
			continue
		}
		if sepAsFound && sec == string(schema.Separate) {
			sec = string(schema.Found)
		}

		value := footwear.Value(i, column)
		if value.IsMissing() {
			continue
		}

		p := byID[id]
		if p == nil {
			p = &pairing{}
			byID[id] = p
			ids = append(ids, id)
		}
		switch sec {
		case string(schema.Reported):
			if !p.hasRep {
				p.reported, p.hasRep = value, true
			}
		case string(compared):
			if !p.hasCmp {
				p.compared, p.hasCmp = value, true
			}
		}
	}

	entry := Entry{Metric: column, Report: compared}
	for _, id := range ids {
		p := byID[id]
		if !p.hasRep || !p.hasCmp {
			continue
		}
		text, ok := p.reported.AsText()
		if !ok {
			continue
		}
		if eq(text, p.compared) {
			entry.Correct++
		} else {
			entry.Incorrect++
		}
	}
	return entry
}

// sizePairing tracks the first [low, high] size pair per case per side.
type sizePairing struct {
	reported []float64
	compared []float64
}

type sizePivot struct {
	ids  []int64
	byID map[int64]*sizePairing
}

// pivotSizes collects size pairs with separate recovery folded into found.
// Rows without a size-low value contribute nothing; size-high is filled from
// size-low during normalization so a surviving row always yields a full pair.
func pivotSizes(footwear *table.Frame) sizePivot {
	pivot := sizePivot{byID: map[int64]*sizePairing{}}

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

		lo, ok := footwear.Value(i, schema.ColSizeLo).AsFloat()
		if !ok {
			continue
		}
		hi, ok := footwear.Value(i, schema.ColSizeHi).AsFloat()
		if !ok {
			hi = lo
		}

		p := pivot.byID[id]
		if p == nil {
			p = &sizePairing{}
			pivot.byID[id] = p
			pivot.ids = append(pivot.ids, id)
		}
		switch sec {
		case string(schema.Reported):
			if p.reported == nil {
				p.reported = []float64{lo, hi}
			}
		case string(schema.Found):
			if p.compared == nil {
				p.compared = []float64{lo, lo}
			}
		}
	}
	return pivot
}
