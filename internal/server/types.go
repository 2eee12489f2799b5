package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/barkit/internal/generate"
	"github.com/MeKo-Tech/barkit/internal/registry"
	"github.com/MeKo-Tech/barkit/internal/scan"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	registry    *registry.Registry
	encoder     *generate.Encoder
	scanner     *scan.Decoder
	corsOrigin  string
	maxUploadMB int64
	tryHarder   bool
	rateLimiter *RateLimiter
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
	TryHarder   bool
	RateLimit   RateLimitConfig
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type RootResponse struct {
	Message          string            `json:"message"`
	Version          string            `json:"version"`
	SupportedFormats []string          `json:"supported_formats"`
	Endpoints        map[string]string `json:"endpoints"`
}

type FormatsResponse struct {
	SupportedFormats []string          `json:"supported_formats"`
	FormatDetails    map[string]string `json:"format_details"`
}

type GenerateResponse struct {
	Success     bool   `json:"success"`
	Format      string `json:"format,omitempty"`
	Data        string `json:"data,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

type ScanResponse struct {
	Success    bool          `json:"success"`
	CodesFound int           `json:"codes_found"`
	Results    []scan.Result `json:"results"`
	Message    string        `json:"message,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// NewServer creates a new barcode server instance. The registry is built once
// here and shared read-only across all request handlers.
func NewServer(config Config) (*Server, error) {
	reg := registry.New()

	s := &Server{
		registry:    reg,
		encoder:     generate.NewEncoder(reg),
		scanner:     scan.New(),
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		tryHarder:   config.TryHarder,
	}
	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxRequestsPerDay,
			config.RateLimit.MaxDataPerDay,
		)
	}
	return s, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.corsMiddleware(s.rootHandler))
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/formats", s.corsMiddleware(s.formatsHandler))
	mux.HandleFunc("/supported-formats", s.corsMiddleware(s.formatsHandler))
	mux.HandleFunc("/generate", s.corsMiddleware(s.rateLimitMiddleware(s.generateHandler)))
	mux.HandleFunc("/generate/image", s.corsMiddleware(s.rateLimitMiddleware(s.generateImageHandler)))
	mux.HandleFunc("/generate/quick", s.corsMiddleware(s.rateLimitMiddleware(s.quickGenerateHandler)))
	mux.HandleFunc("/generate/batch", s.corsMiddleware(s.rateLimitMiddleware(s.generateBatchHandler)))
	mux.HandleFunc("/create-qr-code", s.corsMiddleware(s.rateLimitMiddleware(s.qrHandler)))
	mux.HandleFunc("/scan-image", s.corsMiddleware(s.rateLimitMiddleware(s.scanImageHandler)))
	mux.HandleFunc("/ws/scan", s.scanWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
