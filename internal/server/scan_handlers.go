package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MeKo-Tech/barkit/internal/scan"
)

// scanImageHandler decodes barcode/QR symbols from an uploaded image.
func (s *Server) scanImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "too large") {
			s.writeScanValidationError(w, "File too large", http.StatusRequestEntityTooLarge)
		} else {
			s.writeScanValidationError(w, "Failed to parse form data", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeScanValidationError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	// Reject non-image uploads before touching the bytes.
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		s.writeScanValidationError(w, "file must be an image", http.StatusBadRequest)
		return
	}

	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		scanRequestsTotal.WithLabelValues("internal_error").Inc()
		writeJSON(w, http.StatusInternalServerError, ScanResponse{
			Success: false,
			Results: []scan.Result{},
			Error:   "Failed to read image data",
		})
		return
	}

	report, err := s.scanner.ScanBytes(data, scan.Options{TryHarder: s.tryHarder})
	if err != nil {
		s.handleScanError(w, err)
		return
	}

	scanRequestsTotal.WithLabelValues("ok").Inc()
	scanSymbolsFound.Observe(float64(report.Count))
	writeJSON(w, http.StatusOK, ScanResponse{
		Success:    true,
		CodesFound: report.Count,
		Results:    report.Results,
		Message:    scanMessage(report.Count),
	})
}

func (s *Server) writeScanValidationError(w http.ResponseWriter, message string, status int) {
	scanRequestsTotal.WithLabelValues("validation_error").Inc()
	writeJSON(w, status, ScanResponse{Success: false, Results: []scan.Result{}, Error: message})
}

func scanMessage(count int) string {
	switch count {
	case 0:
		return "No barcodes found"
	case 1:
		return "Found 1 barcode"
	default:
		return fmt.Sprintf("Found %d barcodes", count)
	}
}
