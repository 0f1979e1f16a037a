package infer

// normalize.go provides the stateless value-normalization helpers: sentinel
// mapping, whitespace trimming, and separator canonicalization for date- and
// time-shaped tokens. Canonicalization gives pattern detection one shape to
// recognize instead of N separator variants.

import (
	"regexp"
	"strings"
)

// defaultAbsentTokens are the sentinel strings that map to an absent value.
// Matching is case-insensitive; callers may extend the set per column.
var defaultAbsentTokens = []string{"none", "null", ""}

var (
	// timeShape matches an HH:MM core; seconds, fractions, and AM/PM markers
	// may follow but are not required for detection. Only ":" counts here; a
	// "." between digit pairs is a date separator, not a time separator.
	timeShape = regexp.MustCompile(`[0-2][0-9]:[0-5][0-9]`)

	// dateShape matches three separator-joined numeric components where the
	// outer components may be 2- or 4-digit.
	dateShape = regexp.MustCompile(`[0-9]{2,4}[-/.][0-9]{2}[-/.][0-9]{2,4}`)
)

func hasTimeShape(s string) bool { return timeShape.MatchString(s) }
func hasDateShape(s string) bool { return dateShape.MatchString(s) }

// canonicalizeDate rewrites the separators of a date token to "-".
func canonicalizeDate(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// canonicalizeTime rewrites dot-separated times ("13.45.30") to colon form.
// A dot in a token that already contains ":" separates fractional seconds
// and is left alone.
func canonicalizeTime(s string) string {
	if strings.Contains(s, ":") {
		return s
	}
	return strings.ReplaceAll(s, ".", ":")
}

// meridiem returns the uppercased AM/PM marker, or "" if s is not one.
func meridiem(s string) string {
	switch strings.ToUpper(s) {
	case "AM", "PM":
		return strings.ToUpper(s)
	}
	return ""
}
