package schema

// Code pairs a short sheet code with its decoded, title-cased label.
// Decoding matches whole cells only.
type Code struct {
	Code  string
	Label string
}

// LabelUnknown replaces missing category values in presentation views.
const LabelUnknown = "Unknown"

// Decoded type labels referenced by consumers.
const (
	TypeShoes   = "Shoes"
	TypeBoots   = "Boots"
	TypeUnshod  = "Unshod"
	TypeOther   = "Other"
	TypeMixed   = "Mixed"
	TypeMinimal = "Minimal"
)

// FootwearTypeCodes decode the Type column.
var FootwearTypeCodes = []Code{
	{Code: "s", Label: TypeShoes},
	{Code: "b", Label: TypeBoots},
	{Code: "u", Label: TypeUnshod},
	{Code: "o", Label: TypeOther},
}

// FootwearSubtypeCodes decode the Subtype column. The empty code marks
// regular footwear and never matches a cell, since empty cells are missing.
var FootwearSubtypeCodes = []Code{
	{Code: "mn", Label: TypeMinimal},
	{Code: "b", Label: "Barefoot"},
	{Code: "s", Label: "Socked"},
	{Code: "md", Label: "Medical"},
	{Code: "u", Label: TypeUnshod},
	{Code: "", Label: "Regular"},
	{Code: "bs", Label: TypeMixed},
}

// SizeTypeCodes decode the SizeType column.
var SizeTypeCodes = []Code{
	{Code: "m", Label: "Mens"},
	{Code: "w", Label: "Womens"},
	{Code: "y", Label: "Youth"},
}
