package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// resultBody is the envelope every trip endpoint responds with:
// {result: true, ...} on success, {result: false, error: "..."} on failure.
type resultBody struct {
	Result bool   `json:"result"`
	Error  string `json:"error,omitempty"`
}

// writeJSON serializes v with the given status code. Encoding failures are
// ignored — the status line is already on the wire at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {result:false, error} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, resultBody{Result: false, Error: message})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripComposer.Compose: validation error: budget must
// not be negative" → "budget must not be negative".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
