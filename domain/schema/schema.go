// Package schema declares the fixed layout of the missing-person footwear
// sheet: the four record sections, the kept fields per section with their
// canonical names and semantic types, and the category code tables.
package schema

import (
	"mpf/domain/table"
)

// Section is one of the four record groups in the source sheet.
type Section string

const (
	Admin    Section = "ADMINISTRATIVE"
	Reported Section = "REPORTED"
	Found    Section = "FOUND"
	Separate Section = "SEPARATE"
)

// FootwearSections returns the observation sections in concatenation order.
func FootwearSections() []Section {
	return []Section{Reported, Found, Separate}
}

// Canonical column names.
const (
	ColID       = "ID"
	ColState    = "State"
	ColCountry  = "Country"
	ColDate     = "Date"
	ColLPB      = "LPB"
	ColType     = "Type"
	ColSubtype  = "Subtype"
	ColColor    = "Color"
	ColBrand    = "Brand"
	ColSizeLo   = "Size_Lo"
	ColSizeHi   = "Size_Hi"
	ColSizeType = "SizeType"
	ColDistLo   = "Dist_Lo"
	ColDistHi   = "Dist_Hi"
	ColSection  = "Section"
)

// IDSource is the raw column carrying the unique case identifier.
var IDSource = table.ColumnKey{Section: string(Admin), Field: "DBnum"}

// Field maps a raw sheet column to its canonical name and semantic type.
// Raw columns without a descriptor are dropped during normalization.
type Field struct {
	Raw  string
	Name string
	Kind table.Kind
}

var sectionFields = map[Section][]Field{
	Admin: {
		{Raw: "DBnum", Name: ColID, Kind: table.KindInteger},
		{Raw: "State", Name: ColState, Kind: table.KindCategory},
		{Raw: "Country", Name: ColCountry, Kind: table.KindCategory},
		{Raw: "Date", Name: ColDate, Kind: table.KindDatetime},
		{Raw: "LPB", Name: ColLPB, Kind: table.KindCategory},
	},
	Reported: {
		{Raw: "RepType", Name: ColType, Kind: table.KindCategory},
		{Raw: "RepSub", Name: ColSubtype, Kind: table.KindCategory},
		{Raw: "RepColor", Name: ColColor, Kind: table.KindString},
		{Raw: "RepBrand", Name: ColBrand, Kind: table.KindCategory},
		{Raw: "RepSizeLo", Name: ColSizeLo, Kind: table.KindFloat},
		{Raw: "RepSizeHi", Name: ColSizeHi, Kind: table.KindFloat},
		{Raw: "rMWY", Name: ColSizeType, Kind: table.KindCategory},
	},
	Found: {
		{Raw: "FoundType", Name: ColType, Kind: table.KindCategory},
		{Raw: "FoundSub", Name: ColSubtype, Kind: table.KindCategory},
		{Raw: "FoundColor", Name: ColColor, Kind: table.KindString},
		{Raw: "FoundBrand", Name: ColBrand, Kind: table.KindCategory},
		{Raw: "FoundSize", Name: ColSizeLo, Kind: table.KindFloat},
		{Raw: "fMWY", Name: ColSizeType, Kind: table.KindCategory},
	},
	Separate: {
		{Raw: "SepDistClose", Name: ColDistLo, Kind: table.KindFloat},
		{Raw: "SepDistFar", Name: ColDistHi, Kind: table.KindFloat},
		{Raw: "SepType", Name: ColType, Kind: table.KindCategory},
		{Raw: "SepSub", Name: ColSubtype, Kind: table.KindCategory},
		{Raw: "SepColor", Name: ColColor, Kind: table.KindString},
		{Raw: "SepBrand", Name: ColBrand, Kind: table.KindCategory},
		{Raw: "SepSize", Name: ColSizeLo, Kind: table.KindFloat},
		{Raw: "SepMWY", Name: ColSizeType, Kind: table.KindCategory},
	},
}

// Fields returns the kept field descriptors for a section in sheet order.
func Fields(sec Section) []Field {
	fields := sectionFields[sec]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Kinds returns the canonical-name to semantic-type mapping for a section.
func Kinds(sec Section) map[string]table.Kind {
	kinds := make(map[string]table.Kind, len(sectionFields[sec]))
	for _, f := range sectionFields[sec] {
		kinds[f.Name] = f.Kind
	}
	return kinds
}
