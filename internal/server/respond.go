package server

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MeKo-Tech/barkit/internal/generate"
	"github.com/MeKo-Tech/barkit/internal/scan"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeErrorResponse writes a JSON error response in the generate shape.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, GenerateResponse{Success: false, Error: message})
}

// handleGenerateError maps the error taxonomy onto HTTP statuses. Validation
// and encoding failures carry their message to the client; anything else is a
// sanitized 500 with the detail logged server-side only.
func (s *Server) handleGenerateError(w http.ResponseWriter, format string, err error) {
	var ve *generate.ValidationError
	var ee *generate.EncodingError
	switch {
	case errors.As(err, &ve):
		generateRequestsTotal.WithLabelValues(format, "validation_error").Inc()
		s.writeErrorResponse(w, ve.Error(), http.StatusBadRequest)
	case errors.As(err, &ee):
		generateRequestsTotal.WithLabelValues(format, "encoding_error").Inc()
		s.writeErrorResponse(w, ee.Error(), http.StatusBadRequest)
	default:
		generateRequestsTotal.WithLabelValues(format, "internal_error").Inc()
		slog.Error("Barcode generation failed", "format", format, "error", err)
		s.writeErrorResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleScanError maps scan failures onto HTTP statuses.
func (s *Server) handleScanError(w http.ResponseWriter, err error) {
	var de *scan.DecodingError
	if errors.As(err, &de) {
		scanRequestsTotal.WithLabelValues("decoding_error").Inc()
		writeJSON(w, http.StatusBadRequest, ScanResponse{Success: false, Results: []scan.Result{}, Error: de.Error()})
		return
	}
	scanRequestsTotal.WithLabelValues("internal_error").Inc()
	slog.Error("Scan failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, ScanResponse{Success: false, Results: []scan.Result{}, Error: "Internal server error"})
}

func encodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// writeInlineImage embeds the PNG as base64 in the JSON response shape.
func writeInlineImage(w http.ResponseWriter, format, data string, png []byte) {
	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:     true,
		Format:      format,
		Data:        data,
		ImageBase64: encodeBase64(png),
		Message:     "Barcode generated successfully",
	})
}

// writeImageAttachment streams the PNG with a download filename.
func writeImageAttachment(w http.ResponseWriter, filename string, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if _, err := w.Write(png); err != nil {
		slog.Error("Failed to write image response", "error", err)
	}
}

// downloadFilename builds barcode_<format>_<data>.png, substituting a stable
// digest when the payload is unsafe in a filename. QR payloads always use the
// digest form.
func downloadFilename(format, data string) string {
	name := data
	if !filenameSafe(data) {
		name = contentDigest(data)
	}
	return fmt.Sprintf("barcode_%s_%s.png", format, name)
}

func qrDownloadFilename(data string) string {
	return fmt.Sprintf("qrcode_%s.png", contentDigest(data))
}

// contentDigest is a fixed-width deterministic digest of the payload, stable
// across processes and library versions.
func contentDigest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:8])
}

func filenameSafe(s string) bool {
	if len(s) == 0 || len(s) > 64 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
