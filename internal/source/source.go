// Package source provides row-oriented readers for tabular inputs. A Reader
// hands the inference layer one row of raw cell strings at a time; all
// format-specific concerns (CSV quirks, workbook sheets, BOMs, broken
// encodings) stay here.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reader iterates the rows of one tabular source in order. Next returns
// io.EOF after the last row. Rows may be ragged: short rows simply omit
// trailing cells.
type Reader interface {
	Next() ([]string, error)
	Close() error
}

// Open returns a Reader for the named input. The format is chosen by file
// extension: .csv (and .txt) streams through the CSV reader, .xlsx and
// friends through the workbook reader. The sheet selector applies to
// workbooks only; empty means the active sheet.
func Open(name string, r io.Reader, sheet string) (Reader, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt", "":
		return NewCSVReader(r), nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return NewXLSXReader(r, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}
