package web

// errors.go provides unified error response handling for the web layer.
// Technical detail is logged server-side with the request ID; clients get a
// single descriptive message.

import (
	"encoding/json"
	"errors"
	"net/http"

	"tablecast/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// respondError logs the error with request context and writes a JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
		Code:  statusCode,
	})
}

// statusFor maps a conversion error to an HTTP status. Request bodies are
// client input, so decode and shape failures are client errors; an oversized
// body gets its dedicated status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
