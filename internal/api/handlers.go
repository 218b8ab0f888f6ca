package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"phoneaddr/internal/errors"
)

// Field limits enforced at the boundary before the record service runs
const (
	minPhoneLen   = 3
	maxPhoneLen   = 64
	maxAddressLen = 1024
)

// CreateRequest is the request body for POST /phone-addresses
type CreateRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateRequest is the request body for PUT /phone-addresses/:phone
type UpdateRequest struct {
	Address string `json:"address"`
}

// handleCollection dispatches requests to the collection path
func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.handleCreate(w, r)
}

// handleRecord dispatches requests addressed to a single phone number
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimPrefix(r.URL.Path, s.prefix+"/phone-addresses/")
	if phone == "" || strings.Contains(phone, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r, phone)
	case http.MethodPut:
		s.handleUpdate(w, r, phone)
	case http.MethodDelete:
		s.handleDelete(w, r, phone)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet handles GET /phone-addresses/:phone
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, phone string) {
	rec, err := s.records.Get(r.Context(), phone)
	if err != nil {
		s.writeRecordError(w, r, err)
		return
	}

	WriteJSON(w, rec, http.StatusOK)
}

// handleCreate handles POST /phone-addresses
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteServiceError(w, errors.New(errors.InvalidBody, "invalid JSON body"))
		return
	}

	if err := validatePhone(req.Phone); err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := validateAddress(req.Address); err != nil {
		WriteServiceError(w, err)
		return
	}

	rec, err := s.records.Create(r.Context(), req.Phone, req.Address)
	if err != nil {
		s.writeRecordError(w, r, err)
		return
	}

	WriteJSON(w, rec, http.StatusCreated)
}

// handleUpdate handles PUT /phone-addresses/:phone
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, phone string) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteServiceError(w, errors.New(errors.InvalidBody, "invalid JSON body"))
		return
	}

	if err := validateAddress(req.Address); err != nil {
		WriteServiceError(w, err)
		return
	}

	rec, err := s.records.Update(r.Context(), phone, req.Address)
	if err != nil {
		s.writeRecordError(w, r, err)
		return
	}

	WriteJSON(w, rec, http.StatusOK)
}

// handleDelete handles DELETE /phone-addresses/:phone
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, phone string) {
	if err := s.records.Delete(r.Context(), phone); err != nil {
		s.writeRecordError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeRecordError maps a record service error to an HTTP response,
// logging infrastructure failures on the way out.
func (s *Server) writeRecordError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsCode(err, errors.StoreUnavailable) {
		s.logger.Error("Store operation failed", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"error":     err.Error(),
			"requestID": GetRequestID(r.Context()),
		})
	}
	WriteServiceError(w, err)
}

func validatePhone(phone string) error {
	if phone == "" {
		return errors.New(errors.ValidationFailed, "phone must not be empty")
	}
	if len(phone) < minPhoneLen || len(phone) > maxPhoneLen {
		return errors.New(errors.ValidationFailed, "phone must be between 3 and 64 characters")
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return errors.New(errors.ValidationFailed, "address must not be empty")
	}
	if len(address) > maxAddressLen {
		return errors.New(errors.ValidationFailed, "address must be at most 1024 characters")
	}
	return nil
}
