package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phoneaddr/internal/config"
	"phoneaddr/internal/errors"
	"phoneaddr/internal/logging"
	"phoneaddr/internal/record"
	"phoneaddr/internal/store"
)

// newTestServer creates a server backed by an in-memory store
func newTestServer(t *testing.T) (*Server, *store.MemStore) {
	t.Helper()

	cfg := config.DefaultConfig()

	logger := logging.NewLogger(logging.Config{
		Level:  logging.ErrorLevel,
		Format: logging.JSONFormat,
		Output: io.Discard,
	})

	kv := store.NewMemStore()
	records := record.NewService(kv)

	return NewServer(cfg, records, kv, logger), kv
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestCreateRecord(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses",
		`{"phone":"+7 999 000-00-01","address":"Moscow, Test street 1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["phone"] != "+7 999 000-00-01" {
		t.Errorf("phone = %v, want the request value", body["phone"])
	}
	if body["address"] != "Moscow, Test street 1" {
		t.Errorf("address = %v, want the request value", body["address"])
	}
}

func TestCreateRecordConflict(t *testing.T) {
	server, _ := newTestServer(t)

	w1 := doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses", `{"phone":"111","address":"Addr1"}`)
	if w1.Code != http.StatusCreated {
		t.Fatalf("First create: expected 201, got %d", w1.Code)
	}

	w2 := doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses", `{"phone":"111","address":"Addr2"}`)
	if w2.Code != http.StatusConflict {
		t.Fatalf("Second create: expected 409, got %d", w2.Code)
	}
	if decodeBody(t, w2)["code"] != string(errors.AlreadyExists) {
		t.Errorf("Conflict body should carry the ALREADY_EXISTS code")
	}

	// The losing create must not alter the stored address
	wGet := doJSON(t, server, http.MethodGet, "/api/v1/phone-addresses/111", "")
	if decodeBody(t, wGet)["address"] != "Addr1" {
		t.Error("Conflicting create altered the stored address")
	}
}

func TestGetRecordNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/phone-addresses/not-exists", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if decodeBody(t, w)["code"] != string(errors.NotFound) {
		t.Error("404 body should carry the NOT_FOUND code")
	}
}

func TestUpdateRecord(t *testing.T) {
	server, _ := newTestServer(t)

	doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses", `{"phone":"333","address":"Old"}`)

	w := doJSON(t, server, http.MethodPut, "/api/v1/phone-addresses/333", `{"address":"New Address"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["phone"] != "333" || body["address"] != "New Address" {
		t.Errorf("Update response = %v", body)
	}

	wGet := doJSON(t, server, http.MethodGet, "/api/v1/phone-addresses/333", "")
	if decodeBody(t, wGet)["address"] != "New Address" {
		t.Error("Get after update should return the new address")
	}
}

func TestUpdateRecordNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPut, "/api/v1/phone-addresses/unknown", `{"address":"Addr"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	server, _ := newTestServer(t)

	doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses", `{"phone":"444","address":"Addr"}`)

	w := doJSON(t, server, http.MethodDelete, "/api/v1/phone-addresses/444", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("204 response should have an empty body, got %q", w.Body.String())
	}

	// Repeating the delete is 404, not 204
	w2 := doJSON(t, server, http.MethodDelete, "/api/v1/phone-addresses/444", "")
	if w2.Code != http.StatusNotFound {
		t.Errorf("Second delete: expected 404, got %d", w2.Code)
	}
}

func TestFullLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	const path = "/api/v1/phone-addresses/+1-202-555-0000"

	w := doJSON(t, server, http.MethodPost, "/api/v1/phone-addresses",
		`{"phone":"+1-202-555-0000","address":"1600 Pennsylvania Ave"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST: expected 201, got %d", w.Code)
	}

	w = doJSON(t, server, http.MethodGet, path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["address"] != "1600 Pennsylvania Ave" {
		t.Error("GET should echo the created address")
	}

	w = doJSON(t, server, http.MethodPut, path, `{"address":"700 Capitol St"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["address"] != "700 Capitol St" {
		t.Error("PUT should return the updated address")
	}

	w = doJSON(t, server, http.MethodDelete, path, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE: expected 204, got %d", w.Code)
	}

	w = doJSON(t, server, http.MethodGet, path, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET after DELETE: expected 404, got %d", w.Code)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty address on create", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"555","address":""}`, http.StatusUnprocessableEntity},
		{"missing address on create", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"555"}`, http.StatusUnprocessableEntity},
		{"empty phone on create", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"","address":"Addr"}`, http.StatusUnprocessableEntity},
		{"phone too short", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"12","address":"Addr"}`, http.StatusUnprocessableEntity},
		{"phone too long", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"` + strings.Repeat("9", 65) + `","address":"Addr"}`, http.StatusUnprocessableEntity},
		{"address too long", http.MethodPost, "/api/v1/phone-addresses", `{"phone":"555","address":"` + strings.Repeat("a", 1025) + `"}`, http.StatusUnprocessableEntity},
		{"malformed json on create", http.MethodPost, "/api/v1/phone-addresses", `{"phone":`, http.StatusBadRequest},
		{"empty address on update", http.MethodPut, "/api/v1/phone-addresses/555", `{"address":""}`, http.StatusUnprocessableEntity},
		{"malformed json on update", http.MethodPut, "/api/v1/phone-addresses/555", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, kv := newTestServer(t)
			w := doJSON(t, server, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			// Rejected input must never reach the store
			if kv.Len() != 0 {
				t.Errorf("Store should be untouched, has %d keys", kv.Len())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPatch, "/api/v1/phone-addresses/111", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH on record path: expected 405, got %d", w.Code)
	}

	w = doJSON(t, server, http.MethodGet, "/api/v1/phone-addresses", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on collection path: expected 405, got %d", w.Code)
	}
}

func TestStoreFailureSurfacesAs503(t *testing.T) {
	server, kv := newTestServer(t)
	kv.FailWith = io.ErrUnexpectedEOF

	w := doJSON(t, server, http.MethodGet, "/api/v1/phone-addresses/111", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 when the store is down, got %d", w.Code)
	}
	if decodeBody(t, w)["code"] != string(errors.StoreUnavailable) {
		t.Error("503 body should carry the STORE_UNAVAILABLE code")
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" || body["store"] != "ok" {
		t.Errorf("Health body = %v", body)
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	server, kv := newTestServer(t)
	kv.FailWith = io.ErrUnexpectedEOF

	w := doJSON(t, server, http.MethodGet, "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 when the store ping fails, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "degraded" || body["store"] != "unavailable" {
		t.Errorf("Health body = %v", body)
	}
}

func TestRootEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["name"] != "Phone Address Service" {
		t.Errorf("name = %v, want the configured service name", body["name"])
	}
	if _, ok := body["endpoints"]; !ok {
		t.Error("Root response should list endpoints")
	}
}

func TestUnknownPathReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
