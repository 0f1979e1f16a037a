package web

// errors.go provides unified error response handling for the web layer.
//
// Technical errors are logged server-side with the request ID for
// correlation; clients receive a structured JSON body with a stable code.
// Inference failures carry the offending column, value, and pattern so a
// caller can point at the exact cell that broke the scan.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/colscan/colscan/internal/infer"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Type    string `json:"dataType,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// respondError logs the technical error and writes a JSON error response.
// Inference failures are mapped to 422 with cell-level detail; everything
// else keeps the status the handler chose.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	resp := ErrorResponse{
		Error: err.Error(),
		Code:  "INTERNAL",
	}

	switch statusCode {
	case http.StatusBadRequest:
		resp.Code = "BAD_REQUEST"
	case http.StatusRequestEntityTooLarge:
		resp.Code = "FILE_TOO_LARGE"
	}

	var convErr *infer.ConversionError
	var fmtErr *infer.UnresolvedFormatError
	switch {
	case errors.As(err, &convErr):
		statusCode = http.StatusUnprocessableEntity
		resp.Code = "CONVERSION_FAILED"
		resp.Column = convErr.Column
		resp.Value = convErr.Value
		resp.Type = convErr.Type.String()
		resp.Pattern = convErr.Pattern
	case errors.As(err, &fmtErr):
		statusCode = http.StatusUnprocessableEntity
		resp.Code = "UNRESOLVED_FORMAT"
		resp.Column = fmtErr.Column
		resp.Type = fmtErr.Type.String()
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", resp.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	respondErrorJSON(w, statusCode, resp)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
