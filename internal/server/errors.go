package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/output"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var fetchErr *engine.FetchError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		output.Logger.Error("Failed to encode response", "error", err)
	}
}
