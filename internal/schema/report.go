// Package schema turns a finished scan into an inferred-schema report: one
// entry per column with its committed type, resolved pattern, and a suggested
// PostgreSQL column type sized from the data actually seen.
package schema

import (
	"fmt"
	"strconv"

	"github.com/colscan/colscan/internal/infer"
	"github.com/colscan/colscan/internal/scan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// maxSamples is how many converted values each column entry carries.
const maxSamples = 5

// Column is one inferred column in a report.
type Column struct {
	Name         string   `json:"name"`
	Position     int      `json:"position"`
	DataType     string   `json:"dataType"`
	Pattern      string   `json:"pattern,omitempty"`
	MaxCharLen   int      `json:"maxCharLen"`
	PostgresType string   `json:"postgresType"`
	Samples      []string `json:"samples,omitempty"`
}

// Report is the complete outcome of scanning one source.
type Report struct {
	ScanID  string   `json:"scanId"`
	Source  string   `json:"source"`
	Rows    int      `json:"rows"`
	Columns []Column `json:"columns"`
}

// Build assembles a report from a completed scan result.
func Build(sourceName string, res *scan.Result) *Report {
	rep := &Report{
		ScanID:  uuid.NewString(),
		Source:  sourceName,
		Rows:    res.Rows,
		Columns: make([]Column, 0, len(res.Columns)),
	}
	for i, col := range res.Columns {
		rep.Columns = append(rep.Columns, Column{
			Name:         col.Name(),
			Position:     i,
			DataType:     col.DataType().String(),
			Pattern:      col.Pattern(),
			MaxCharLen:   col.MaxCharLen(),
			PostgresType: PostgresType(col),
			Samples:      sampleValues(col),
		})
	}
	return rep
}

// PostgresType suggests a column type for loading the data into PostgreSQL.
// String columns are sized from the longest value seen.
func PostgresType(col *infer.Column) string {
	switch col.DataType() {
	case infer.Integer:
		return "bigint"
	case infer.Float:
		return "double precision"
	case infer.Date:
		return "date"
	case infer.Time:
		return "time"
	case infer.DateTime:
		return "timestamp"
	case infer.String:
		if n := col.MaxCharLen(); n > 0 {
			return fmt.Sprintf("varchar(%d)", n)
		}
		return "text"
	}
	// Unknown: the column held nothing but absent values.
	return "text"
}

// sampleValues formats the first non-absent converted values for display.
func sampleValues(col *infer.Column) []string {
	var samples []string
	for _, v := range col.Values() {
		if v == nil {
			continue
		}
		samples = append(samples, FormatValue(v))
		if len(samples) == maxSamples {
			break
		}
	}
	return samples
}

// FormatValue renders a converted cell value as text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case pgtype.Int8:
		return strconv.FormatInt(t.Int64, 10)
	case pgtype.Float8:
		return strconv.FormatFloat(t.Float64, 'g', -1, 64)
	case pgtype.Text:
		return t.String
	case pgtype.Date:
		return t.Time.Format("2006-01-02")
	case pgtype.Timestamp:
		return t.Time.Format("2006-01-02 15:04:05")
	case pgtype.Time:
		us := t.Microseconds
		return fmt.Sprintf("%02d:%02d:%02d",
			us/3600_000_000, us/60_000_000%60, us/1_000_000%60)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
