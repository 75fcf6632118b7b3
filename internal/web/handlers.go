package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"tablecast/internal/convert"
	"tablecast/internal/logging"

	"github.com/google/uuid"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleCSVToJSON converts a CSV request body to a pretty-printed JSON document.
//
// Query parameters: delimiter (single character, defaults to the configured
// delimiter), has-headers (default true), trim (default false), array-format
// (default false).
func (s *Server) handleCSVToJSON(w http.ResponseWriter, r *http.Request) {
	convID := uuid.NewString()
	logger := logging.WithFields(r.Context(), "conversion_id", convID, "direction", "csv-to-json")

	delimiter, err := s.queryDelimiter(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	hasHeaders, err := queryBool(r, "has-headers", true)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	trim, err := queryBool(r, "trim", false)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	arrayFormat, err := queryBool(r, "array-format", false)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	opts := convert.CSVOptions{
		Delimiter:   delimiter,
		HasHeaders:  hasHeaders,
		Trim:        trim,
		ArrayFormat: arrayFormat,
	}

	// Buffer the result so a mid-conversion failure never leaks a partial body.
	var out bytes.Buffer
	body := http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxInputSize)
	if err := convert.CSVToJSON(body, &out, opts); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger.Info("conversion complete", "bytes", out.Len())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Conversion-ID", convID)
	w.Write(out.Bytes())
}

// handleJSONToCSV converts a JSON request body to delimited text.
//
// Query parameters: delimiter (single character, defaults to the configured
// delimiter), quote-all (default false). When non-record elements were
// skipped in records mode, the skip count is reported via the
// X-Skipped-Elements response header.
func (s *Server) handleJSONToCSV(w http.ResponseWriter, r *http.Request) {
	convID := uuid.NewString()
	logger := logging.WithFields(r.Context(), "conversion_id", convID, "direction", "json-to-csv")

	delimiter, err := s.queryDelimiter(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	quoteAll, err := queryBool(r, "quote-all", false)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	opts := convert.JSONOptions{Delimiter: delimiter, QuoteAll: quoteAll}

	var out bytes.Buffer
	body := http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxInputSize)
	res, err := convert.JSONToCSV(body, &out, opts)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if res.Skipped > 0 {
		logger.Warn("skipped non-record elements", "skipped", res.Skipped)
		w.Header().Set("X-Skipped-Elements", strconv.Itoa(res.Skipped))
	}
	logger.Info("conversion complete", "rows", res.Rows)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("X-Conversion-ID", convID)
	w.Write(out.Bytes())
}

// queryDelimiter resolves the delimiter query parameter, falling back to the
// configured default.
func (s *Server) queryDelimiter(r *http.Request) (byte, error) {
	raw := r.URL.Query().Get("delimiter")
	if raw == "" {
		raw = s.cfg.Convert.Delimiter
	}
	return convert.ParseDelimiter(raw)
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %q", name, raw)
	}
	return v, nil
}
