// Package httputil centralizes JSON response writing so every handler emits
// the same envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "regportal/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description,omitempty"`
	Details     []string `json:"details,omitempty"`
}

// WriteError translates a domain error into the JSON error envelope.
// Internal error descriptions are suppressed so storage details never leak to
// clients; everything else keeps its message and, for validation failures,
// the per-field message list.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	env := errorEnvelope{Error: string(code)}

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		env.Error = string(de.Code)
		if de.Code != dErrors.CodeInternal {
			env.Description = de.Message
			env.Details = de.Details
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(env)
}

// DecodeAndPrepare decodes a JSON request body into T. On failure it writes a
// bad_request response and returns ok=false; handlers just return.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "invalid request body", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		var zero T
		return zero, false
	}
	return req, true
}
