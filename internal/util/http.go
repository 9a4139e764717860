package util

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// =============================================================================
// HTTP Response Helpers
// =============================================================================

// SetHTMLHeaders sets standard headers for HTML responses.
// maxAge is the Cache-Control max-age value in seconds (as string).
func SetHTMLHeaders(w http.ResponseWriter, maxAge string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age="+maxAge)
}

// WriteHTML writes an HTML string to the response writer.
// Returns any write error (usually safe to ignore for HTTP handlers).
func WriteHTML(w http.ResponseWriter, html string) error {
	_, err := w.Write([]byte(html))
	return err
}

// RespondJSON encodes v as the response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	RespondJSONAs(w, status, "application/json", v)
}

// RespondJSONAs is RespondJSON with a custom media type, e.g. application/vnd.siren+json.
func RespondJSONAs(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write JSON response", "error", err)
	}
}

// =============================================================================
// HTTP Error Helpers
// =============================================================================

// RespondBadRequest sends a 400 Bad Request error response.
func RespondBadRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

// RespondInternalError sends a 500 Internal Server Error response.
func RespondInternalError(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusInternalServerError)
}

// RespondBadGateway sends a 502 Bad Gateway error response.
func RespondBadGateway(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadGateway)
}
