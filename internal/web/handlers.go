package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/colscan/colscan/internal/logging"
	"github.com/colscan/colscan/internal/scan"
	"github.com/colscan/colscan/internal/schema"
	"github.com/colscan/colscan/internal/source"
)

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScan infers a column schema from an uploaded file.
//
// Multipart form fields:
//   - file: the CSV or XLSX file (required)
//   - sheet: worksheet name for XLSX files (default: active sheet)
//   - headers: whether the first row is column labels (default: true)
//   - limit: maximum data rows to scan (default: config)
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	report, err := s.runScan(w, r)
	if err != nil {
		return // runScan already responded
	}
	writeJSON(w, report)
}

// handleScanDDL runs the same scan but responds with a CREATE TABLE
// statement sized from the inferred schema.
func (s *Server) handleScanDDL(w http.ResponseWriter, r *http.Request) {
	report, err := s.runScan(w, r)
	if err != nil {
		return
	}

	table := strings.TrimSpace(r.FormValue("table"))
	if table == "" {
		table = "imported_data"
	}

	writeJSON(w, map[string]string{
		"scanId": report.ScanID,
		"table":  table,
		"sql":    report.CreateTableSQL(table),
	})
}

// runScan parses the multipart request, runs the scanner, and builds the
// report. On failure it writes the error response and returns a non-nil
// error so the caller can bail out.
func (s *Server) runScan(w http.ResponseWriter, r *http.Request) (*schema.Report, error) {
	maxSize := s.cfg.Scan.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
		return nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return nil, err
	}
	defer file.Close()

	opts, err := s.scanOptions(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return nil, err
	}

	src, err := source.Open(header.Filename, file, r.FormValue("sheet"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return nil, err
	}
	defer src.Close()

	res, err := scan.New(opts).Scan(r.Context(), src)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return nil, err
	}

	report := schema.Build(header.Filename, res)

	logging.FromContext(r.Context()).Info("scan complete",
		"scan_id", report.ScanID,
		"source", header.Filename,
		"rows", res.Rows,
		"columns", len(res.Columns),
	)

	return report, nil
}

// scanOptions builds scan options from config defaults and form overrides.
func (s *Server) scanOptions(r *http.Request) (scan.Options, error) {
	opts := scan.Options{
		HasHeader:            true,
		RowLimit:             s.cfg.Scan.DefaultRowLimit,
		NullTokens:           s.cfg.Scan.NullTokens,
		ForceFormatThreshold: s.cfg.Scan.ForceFormatThreshold,
	}

	if v := r.FormValue("headers"); v != "" {
		hasHeader, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errBadField("headers", v)
		}
		opts.HasHeader = hasHeader
	}

	if v := r.FormValue("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return opts, errBadField("limit", v)
		}
		opts.RowLimit = limit
	}

	return opts, nil
}

type fieldError struct {
	field string
	value string
}

func errBadField(field, value string) error {
	return &fieldError{field: field, value: value}
}

func (e *fieldError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for form field " + strconv.Quote(e.field)
}
