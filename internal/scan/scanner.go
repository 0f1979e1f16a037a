// Package scan drives per-column inference over a tabular source: it creates
// one infer.Column per source column, feeds every cell in row order, and
// finalizes the columns once the source is exhausted.
package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/colscan/colscan/internal/infer"
	"github.com/colscan/colscan/internal/logging"
	"github.com/colscan/colscan/internal/source"
)

// DefaultCheckInterval is how often (in rows) the scanner checks for context
// cancellation. Checking every row is wasted work; every N rows keeps
// cancellation responsive at no measurable cost.
const DefaultCheckInterval = 100

// Options configures a scan.
type Options struct {
	// HasHeader consumes the first row as column labels (used only for
	// diagnostics and the report).
	HasHeader bool

	// RowLimit truncates the scan after this many data rows. 0 means all.
	RowLimit int

	// NullTokens are sentinel strings mapped to absent, in addition to the
	// engine's defaults.
	NullTokens []string

	// ForceFormatThreshold overrides the time-format commit threshold.
	// 0 keeps the engine default.
	ForceFormatThreshold int

	// CheckInterval overrides DefaultCheckInterval. 0 keeps the default.
	CheckInterval int
}

// Result is the outcome of one scan.
type Result struct {
	Columns []*infer.Column
	Rows    int // data rows consumed, excluding the header
}

// Scanner runs scans with a fixed set of options. It is stateless across
// Scan calls and safe to reuse.
type Scanner struct {
	opts Options
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	return &Scanner{opts: opts}
}

// Scan consumes src to completion. Rows are fed strictly in order; columns
// that first appear mid-stream are backfilled with absent entries so every
// column's value sequence stays index-aligned with the input. The first
// conversion or resolution failure aborts the scan.
func (s *Scanner) Scan(ctx context.Context, src source.Reader) (*Result, error) {
	var columns []*infer.Column
	rows := 0

	if s.opts.HasHeader {
		header, err := src.Next()
		if err == io.EOF {
			return &Result{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for _, name := range header {
			columns = append(columns, s.newColumn(cleanHeader(name)))
		}
	}

	for {
		if rows%s.opts.CheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if s.opts.RowLimit > 0 && rows >= s.opts.RowLimit {
			break
		}

		row, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}

		// A row wider than anything seen so far introduces unnamed columns;
		// they are padded with absent entries for the rows they missed.
		for len(columns) < len(row) {
			col := s.newColumn("")
			for i := 0; i < rows; i++ {
				if err := col.ProcessValue(""); err != nil {
					return nil, err
				}
			}
			columns = append(columns, col)
		}

		for i, col := range columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if err := col.ProcessValue(cell); err != nil {
				return nil, fmt.Errorf("row %d: %w", rows+1, err)
			}
		}
		rows++
	}

	for _, col := range columns {
		if err := col.FixUpRawValues(); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).Debug("scan complete",
		"columns", len(columns),
		"rows", rows,
	)
	return &Result{Columns: columns, Rows: rows}, nil
}

// newColumn builds a column with the scanner's per-column options applied.
func (s *Scanner) newColumn(name string) *infer.Column {
	var opts []infer.Option
	if len(s.opts.NullTokens) > 0 {
		opts = append(opts, infer.WithAbsentTokens(s.opts.NullTokens...))
	}
	if s.opts.ForceFormatThreshold > 0 {
		opts = append(opts, infer.WithForceFormatThreshold(s.opts.ForceFormatThreshold))
	}
	return infer.NewColumn(name, opts...)
}

// cleanHeader strips all whitespace from a header label so that labels match
// downstream identifier use.
func cleanHeader(name string) string {
	return strings.Join(strings.Fields(name), "")
}
