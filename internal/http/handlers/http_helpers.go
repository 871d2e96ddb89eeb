package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/inventory-suite/product-catalog/internal/auth"
)

// requesterUsername resolves the authenticated caller's username from the
// bearer token, or "" when unavailable.
func requesterUsername(r *http.Request) string {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	if username, ok := claims["username"].(string); ok {
		return username
	}
	return ""
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}
