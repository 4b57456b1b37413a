package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind defines the semantic type of a column or value.
type Kind string

const (
	KindCategory Kind = "category"
	KindDatetime Kind = "datetime"
	KindFloat    Kind = "float"
	KindInteger  Kind = "integer"
	KindString   Kind = "string"
	KindMissing  Kind = "missing"
)

// Value represents a typed cell with an explicit missing state.
type Value struct {
	Kind    Kind
	Str     *string
	Num     *float64
	Int     *int64
	Time    *time.Time
	Missing bool
}

// NewStringValue creates a string value; empty strings become missing.
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Kind: KindString, Str: &s}
}

// NewCategoryValue creates a category value; empty strings become missing.
func NewCategoryValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Kind: KindCategory, Str: &s}
}

// NewFloatValue creates a float value
func NewFloatValue(n float64) Value {
	return Value{Kind: KindFloat, Num: &n}
}

// NewIntValue creates an integer value
func NewIntValue(n int64) Value {
	return Value{Kind: KindInteger, Int: &n}
}

// NewTimeValue creates a datetime value
func NewTimeValue(t time.Time) Value {
	return Value{Kind: KindDatetime, Time: &t}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Kind: KindMissing, Missing: true}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return v.Missing || v.Kind == KindMissing
}

// AsText returns the textual content for string and category values.
func (v Value) AsText() (string, bool) {
	if v.IsMissing() || v.Str == nil {
		return "", false
	}
	if v.Kind != KindString && v.Kind != KindCategory {
		return "", false
	}
	return *v.Str, true
}

// AsFloat returns the numeric content for float values.
func (v Value) AsFloat() (float64, bool) {
	if v.IsMissing() {
		return 0, false
	}
	switch v.Kind {
	case KindFloat:
		if v.Num != nil {
			return *v.Num, true
		}
	case KindInteger:
		if v.Int != nil {
			return float64(*v.Int), true
		}
	}
	return 0, false
}

// AsInt returns the integer content for integer values.
func (v Value) AsInt() (int64, bool) {
	if v.IsMissing() || v.Int == nil || v.Kind != KindInteger {
		return 0, false
	}
	return *v.Int, true
}

// AsTime returns the timestamp content for datetime values.
func (v Value) AsTime() (time.Time, bool) {
	if v.IsMissing() || v.Time == nil || v.Kind != KindDatetime {
		return time.Time{}, false
	}
	return *v.Time, true
}

// String renders the value for display and serialization.
// Missing values render as the empty string.
func (v Value) String() string {
	if v.IsMissing() {
		return ""
	}
	switch v.Kind {
	case KindString, KindCategory:
		if v.Str != nil {
			return *v.Str
		}
	case KindFloat:
		if v.Num != nil {
			return strconv.FormatFloat(*v.Num, 'f', -1, 64)
		}
	case KindInteger:
		if v.Int != nil {
			return strconv.FormatInt(*v.Int, 10)
		}
	case KindDatetime:
		if v.Time != nil {
			return v.Time.Format(time.RFC3339)
		}
	}
	return ""
}

// Equal compares two values by kind and content.
func (v Value) Equal(other Value) bool {
	if v.IsMissing() || other.IsMissing() {
		return v.IsMissing() && other.IsMissing()
	}
	if v.Kind != other.Kind {
		return false
	}
	return v.String() == other.String()
}

// dateLayouts are the accepted spreadsheet date formats.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
}

// Coerce converts a value to the target kind. Values already of the target
// kind pass through unchanged, so coercion is idempotent. A value that cannot
// be converted becomes missing rather than an error; downstream consumers
// handle missing values explicitly.
func Coerce(v Value, kind Kind) Value {
	if v.IsMissing() {
		return NewMissingValue()
	}
	if v.Kind == kind {
		return v
	}

	switch kind {
	case KindString:
		return NewStringValue(v.String())
	case KindCategory:
		return NewCategoryValue(v.String())
	case KindFloat:
		if n, ok := v.AsFloat(); ok {
			return NewFloatValue(n)
		}
		if s, ok := v.AsText(); ok {
			if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return NewFloatValue(n)
			}
		}
	case KindInteger:
		if n, ok := v.AsInt(); ok {
			return NewIntValue(n)
		}
		if f, ok := v.AsFloat(); ok && f == float64(int64(f)) {
			return NewIntValue(int64(f))
		}
		if s, ok := v.AsText(); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return NewIntValue(n)
			}
		}
	case KindDatetime:
		if t, ok := v.AsTime(); ok {
			return NewTimeValue(t)
		}
		if s, ok := v.AsText(); ok {
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
					return NewTimeValue(t)
				}
			}
		}
	}
	return NewMissingValue()
}

// ParseCell converts a raw spreadsheet cell to a typed value.
func ParseCell(cell string, kind Kind) Value {
	return Coerce(NewStringValue(strings.TrimSpace(cell)), kind)
}

func (k Kind) String() string {
	return string(k)
}

// Validate reports whether the kind is one of the declared semantic types.
func (k Kind) Validate() error {
	switch k {
	case KindCategory, KindDatetime, KindFloat, KindInteger, KindString:
		return nil
	}
	return fmt.Errorf("unknown kind %q", string(k))
}
