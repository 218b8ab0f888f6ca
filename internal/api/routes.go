package api

import (
	"net/http"

	"phoneaddr/internal/version"
)

// registerRoutes registers all API routes under the configured prefix
func (s *Server) registerRoutes() {
	// Record operations
	s.router.HandleFunc(s.prefix+"/phone-addresses", s.handleCollection) // POST
	s.router.HandleFunc(s.prefix+"/phone-addresses/", s.handleRecord)    // GET/PUT/DELETE /:phone

	// Health check
	s.router.HandleFunc("/health", s.handleHealth)

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    s.name,
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET " + s.prefix + "/phone-addresses/:phone - Get address by phone number",
			"POST " + s.prefix + "/phone-addresses - Create phone-address record",
			"PUT " + s.prefix + "/phone-addresses/:phone - Update address for a phone number",
			"DELETE " + s.prefix + "/phone-addresses/:phone - Delete phone-address record",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
