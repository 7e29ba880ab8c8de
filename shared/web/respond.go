// Package web provides JSON response helpers for the mutation
// endpoints, which report their outcome through HTTP status codes.
package web

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with status OK plus any extra payload fields.
func OK(w http.ResponseWriter, extra map[string]any) {
	payload := map[string]any{"status": "OK"}
	for k, v := range extra {
		payload[k] = v
	}
	JSON(w, http.StatusOK, payload)
}

// Fail writes an error response with the given status code.
func Fail(w http.ResponseWriter, code int, message string) {
	JSON(w, code, map[string]any{"error": message})
}

// MethodNotAllowed rejects a request whose method does not match the
// endpoint's contract.
func MethodNotAllowed(w http.ResponseWriter) {
	Fail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
