package infer

// convert.go holds the single conversion routine shared by the immediate and
// deferred (fix-up) paths. A converter is selected once, when the column's
// type and pattern commit, and is never re-dispatched per value.

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// convertFunc turns a normalized raw string into a typed pgtype value.
type convertFunc func(string) (any, error)

// strftime tokens to Go reference-time layout fragments. Patterns are kept in
// strftime form because that is the vocabulary the narrowing algorithm works
// in; the translation happens once per column.
var layoutReplacer = strings.NewReplacer(
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%I", "03",
	"%M", "04",
	"%S", "05",
	"%f", "999999",
	"%p", "PM",
)

func layoutFor(pattern string) string {
	return layoutReplacer.Replace(pattern)
}

// converterFor returns the conversion function for a committed (type,
// pattern) pair. Integer, Float, and String need no pattern.
func converterFor(dt DataType, pattern string) convertFunc {
	layout := layoutFor(pattern)

	switch dt {
	case Integer:
		return func(s string) (any, error) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, err
			}
			return pgtype.Int8{Int64: n, Valid: true}, nil
		}
	case Float:
		return func(s string) (any, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, err
			}
			return pgtype.Float8{Float64: f, Valid: true}, nil
		}
	case String:
		return func(s string) (any, error) {
			return pgtype.Text{String: s, Valid: true}, nil
		}
	case Date:
		return func(s string) (any, error) {
			t, err := time.Parse(layout, s)
			if err != nil {
				return nil, err
			}
			return pgtype.Date{Time: t, Valid: true}, nil
		}
	case Time:
		return func(s string) (any, error) {
			t, err := time.Parse(layout, s)
			if err != nil {
				return nil, err
			}
			return pgtype.Time{Microseconds: microsSinceMidnight(t), Valid: true}, nil
		}
	case DateTime:
		return func(s string) (any, error) {
			t, err := time.Parse(layout, s)
			if err != nil {
				return nil, err
			}
			return pgtype.Timestamp{Time: t, Valid: true}, nil
		}
	}
	return nil
}

func microsSinceMidnight(t time.Time) int64 {
	return int64(t.Hour())*3600_000_000 +
		int64(t.Minute())*60_000_000 +
		int64(t.Second())*1_000_000 +
		int64(t.Nanosecond())/1000
}
