package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader streams rows from one worksheet of an Office Open XML workbook.
// Cell values arrive as their formatted strings, which is what the inference
// engine expects to reason over.
type XLSXReader struct {
	file *excelize.File
	rows *excelize.Rows
}

// NewXLSXReader opens the workbook in r and positions a row iterator on the
// requested sheet. An empty sheet name selects the workbook's active sheet.
func NewXLSXReader(r io.Reader, sheet string) (*XLSXReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open sheet %q: %w", sheet, err)
	}

	return &XLSXReader{file: f, rows: rows}, nil
}

// Next returns the next row, or io.EOF after the last one.
func (x *XLSXReader) Next() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return x.rows.Columns()
}

// Close releases the row iterator and the workbook.
func (x *XLSXReader) Close() error {
	rowsErr := x.rows.Close()
	if err := x.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
