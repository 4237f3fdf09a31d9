// Package handlers provides the uniform JSON response envelope shared by all
// HTTP endpoints: {success, data?, error?, pagination?}.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/promptstash/promptstash/pkg/pagination"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Error      string           `json:"error,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// RespondData writes a success envelope with the given payload.
func RespondData(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Success: true, Data: data})
}

// RespondPage writes a success envelope with page items and pagination metadata.
func RespondPage[T any](w http.ResponseWriter, status int, result *pagination.PageResult[T]) {
	write(w, status, Response{
		Success:    true,
		Data:       result.Items,
		Pagination: &result.Meta,
	})
}

// RespondError writes a failure envelope with the error's message and logs it.
// Callers must pass an error whose message is safe to surface.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	write(w, status, Response{Success: false, Error: err.Error()})
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
