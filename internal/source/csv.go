package source

import (
	"encoding/csv"
	"io"
)

// CSVReader streams rows from a delimited-text input. The underlying reader
// is wrapped so that a UTF-8 BOM is skipped and invalid UTF-8 sequences are
// replaced before the CSV parser sees them, keeping user-exported files from
// Windows tooling readable.
type CSVReader struct {
	reader *csv.Reader
}

// NewCSVReader creates a reader over r. Rows are allowed to have varying
// field counts; the inference layer treats missing trailing cells as absent.
func NewCSVReader(r io.Reader) *CSVReader {
	cr := csv.NewReader(NewUTF8Sanitizer(NewBOMSkippingReader(r)))
	cr.FieldsPerRecord = -1
	return &CSVReader{reader: cr}
}

// Next returns the next row, or io.EOF after the last one.
func (c *CSVReader) Next() ([]string, error) {
	return c.reader.Read()
}

// Close implements Reader. CSV inputs hold no resources of their own.
func (c *CSVReader) Close() error { return nil }
