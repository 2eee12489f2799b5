package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MeKo-Tech/barkit/internal/generate"
	"github.com/MeKo-Tech/barkit/internal/registry"
)

// generateHandler produces a barcode and returns it base64-embedded in JSON,
// or as a PNG attachment when return_format is "file".
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	s.serveGenerated(w, req, req.ReturnFormat == generate.ReturnFile)
}

// generateImageHandler always streams the PNG attachment.
func (s *Server) generateImageHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	s.serveGenerated(w, req, true)
}

// quickGenerateHandler is the GET convenience path with defaulted styling.
func (s *Server) quickGenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	req := &generate.Request{
		Data:   q.Get("data"),
		Format: q.Get("format"),
	}
	if req.Format == "" {
		req.Format = "code128"
	}
	s.serveGenerated(w, req, q.Get("return_image") == "true")
}

func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*generate.Request, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	var req generate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (s *Server) serveGenerated(w http.ResponseWriter, req *generate.Request, asFile bool) {
	start := time.Now()
	png, err := s.encoder.Encode(req)
	if err != nil {
		s.handleGenerateError(w, req.Format, err)
		return
	}
	generateDuration.WithLabelValues(req.Format).Observe(time.Since(start).Seconds())
	generateRequestsTotal.WithLabelValues(req.Format, "ok").Inc()

	if asFile {
		writeImageAttachment(w, downloadFilename(req.Format, req.Data), png)
		return
	}
	writeInlineImage(w, req.Format, req.Data, png)
}

// qrHandler produces a QR code; the response format field is fixed to "qrcode".
func (s *Server) qrHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generate.QRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	png, err := s.encoder.EncodeQR(&req)
	if err != nil {
		s.handleGenerateError(w, registry.QRCode, err)
		return
	}
	generateDuration.WithLabelValues(registry.QRCode).Observe(time.Since(start).Seconds())
	generateRequestsTotal.WithLabelValues(registry.QRCode, "ok").Inc()

	if req.ReturnFormat == generate.ReturnFile {
		// The payload may be unsafe in a filename, so QR downloads always get
		// the digest form.
		writeImageAttachment(w, qrDownloadFilename(req.Data), png)
		return
	}
	writeInlineImage(w, registry.QRCode, req.Data, png)
}

// Batch generation, bounded per request.

const maxBatchSize = 16

type BatchGenerateRequest struct {
	Items []generate.Request `json:"items"`
}

type BatchGenerateResult struct {
	Index    int    `json:"index"`
	Success  bool   `json:"success"`
	Format   string `json:"format,omitempty"`
	Data     string `json:"data,omitempty"`
	Image    string `json:"image_base64,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration float64 `json:"duration_seconds"`
}

type BatchGenerateResponse struct {
	Success bool                  `json:"success"`
	Results []BatchGenerateResult `json:"results"`
	Summary BatchSummary          `json:"summary"`
}

type BatchSummary struct {
	TotalItems    int     `json:"total_items"`
	Successful    int     `json:"successful"`
	Failed        int     `json:"failed"`
	TotalDuration float64 `json:"total_duration_seconds"`
}

// generateBatchHandler renders several barcodes in one call, reporting
// per-item outcomes.
func (s *Server) generateBatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		s.writeErrorResponse(w, "No items provided in batch request", http.StatusBadRequest)
		return
	}
	if len(req.Items) > maxBatchSize {
		s.writeErrorResponse(w, "Batch size too large (maximum 16 items)", http.StatusBadRequest)
		return
	}

	start := time.Now()
	results := make([]BatchGenerateResult, 0, len(req.Items))
	summary := BatchSummary{TotalItems: len(req.Items)}

	for i := range req.Items {
		item := &req.Items[i]
		itemStart := time.Now()
		png, err := s.encoder.Encode(item)
		res := BatchGenerateResult{
			Index:    i,
			Format:   item.Format,
			Data:     item.Data,
			Duration: time.Since(itemStart).Seconds(),
		}
		if err != nil {
			generateRequestsTotal.WithLabelValues(item.Format, "batch_error").Inc()
			res.Error = err.Error()
			summary.Failed++
		} else {
			generateRequestsTotal.WithLabelValues(item.Format, "ok").Inc()
			res.Success = true
			res.Image = encodeBase64(png)
			summary.Successful++
		}
		results = append(results, res)
	}

	summary.TotalDuration = time.Since(start).Seconds()
	writeJSON(w, http.StatusOK, BatchGenerateResponse{
		Success: summary.Failed == 0,
		Results: results,
		Summary: summary,
	})
}
