package infer

import "fmt"

// ConversionError reports a value that failed to parse under the column's
// committed type and pattern. It is fatal: the commitment was wrong for this
// column, so continuing would produce silently wrong data.
type ConversionError struct {
	Column  string   // column label, for diagnostics
	Value   string   // the offending (normalized) value
	Type    DataType // the committed data type
	Pattern string   // the committed parse pattern (temporal types only)
	Err     error    // underlying parse error
}

func (e *ConversionError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("column %s: value %q does not parse as %s with pattern %q: %v",
			label(e.Column), e.Value, e.Type, e.Pattern, e.Err)
	}
	return fmt.Sprintf("column %s: value %q does not parse as %s: %v",
		label(e.Column), e.Value, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// UnresolvedFormatError reports a temporal column whose input ended before
// enough evidence accumulated to pin a parse pattern. There is no best-guess
// output for such a column; the caller must be told explicitly.
type UnresolvedFormatError struct {
	Column string
	Type   DataType
}

func (e *UnresolvedFormatError) Error() string {
	return fmt.Sprintf("column %s: no adequate %s format found from the values seen",
		label(e.Column), e.Type)
}

func label(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
