// Package httputil centralizes JSON encoding and domain-error translation so
// every handler emits the same response envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"doseguard/pkg/derrors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error envelope. Internal
// errors omit the description; everything else echoes it so clients can see
// what to fix.
func WriteError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	var de *derrors.Error
	if errors.As(err, &de) && code != derrors.CodeInternal {
		body["error_description"] = de.Description
	}
	WriteJSON(w, derrors.ToHTTPStatus(code), body)
}

// Decode parses the request body into T, rejecting unknown fields. A false
// return means the error response has already been written.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return v, false
	}
	return v, true
}
