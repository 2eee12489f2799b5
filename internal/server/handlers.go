package server

import (
	"net/http"
	"time"

	"github.com/MeKo-Tech/barkit/internal/version"
)

// rootHandler returns the API banner. It doubles as the 404 handler for
// unregistered paths since it is bound to "/".
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "Not Found",
			"detail": "Endpoint not found",
		})
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, _, _ := version.Info()
	writeJSON(w, http.StatusOK, RootResponse{
		Message:          "Barcode Generator API",
		Version:          v,
		SupportedFormats: s.registry.IDs(),
		Endpoints: map[string]string{
			"generate":       "/generate",
			"generate_image": "/generate/image",
			"generate_quick": "/generate/quick",
			"generate_batch": "/generate/batch",
			"create_qr_code": "/create-qr-code",
			"scan_image":     "/scan-image",
			"formats":        "/formats",
			"health":         "/health",
			"metrics":        "/metrics",
		},
	})
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, _, _ := version.Info()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "barkit",
		Version: v,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// formatsHandler lists the registry contents.
func (s *Server) formatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := s.registry.Entries()
	details := make(map[string]string, len(entries))
	for _, e := range entries {
		details[e.ID] = e.Description
	}
	writeJSON(w, http.StatusOK, FormatsResponse{
		SupportedFormats: s.registry.IDs(),
		FormatDetails:    details,
	})
}
