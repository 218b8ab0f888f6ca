package api

import (
	"encoding/json"
	"net/http"

	"phoneaddr/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.CodeOf(err)),
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteServiceError writes a domain error with automatic status code mapping
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, err, StatusForCode(errors.CodeOf(err)))
}

// StatusForCode maps service error codes to HTTP status codes
func StatusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.NotFound:
		return http.StatusNotFound // 404
	case errors.AlreadyExists:
		return http.StatusConflict // 409
	case errors.ValidationFailed:
		return http.StatusUnprocessableEntity // 422
	case errors.InvalidBody:
		return http.StatusBadRequest // 400
	case errors.StoreUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.InternalError, message), http.StatusInternalServerError)
}
