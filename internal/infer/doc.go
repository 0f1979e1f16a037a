// Package infer implements per-column type and format inference for tabular
// data.
//
// One Column instance is created per source column. The owner feeds raw cell
// values in row order through ProcessValue, then calls FixUpRawValues once
// after the last row. The column commits to a data type on the first
// non-absent value it sees and never changes it; temporal columns additionally
// narrow an ambiguous date/time parse pattern as more evidence arrives,
// buffering raw values until the pattern is pinned and converting them
// retroactively during fix-up.
//
// Converted values are pgtype values (pgtype.Int8, pgtype.Float8, pgtype.Text,
// pgtype.Date, pgtype.Time, pgtype.Timestamp) so they can be handed directly
// to a PostgreSQL loader. Absent cells are nil entries, preserved at their
// original positions.
package infer
