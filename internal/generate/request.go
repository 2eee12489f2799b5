package generate

import (
	"strings"

	"github.com/MeKo-Tech/barkit/internal/registry"
)

// Return format values accepted by both request types.
const (
	ReturnInline = "inline"
	ReturnFile   = "file"
)

// Styling defaults, matching the writer defaults of the original service.
const (
	DefaultModuleWidth  = 2.0
	DefaultModuleHeight = 15.0
	DefaultQuietZone    = 6.5
	DefaultFontSize     = 10
	DefaultTextDistance = 5.0
	DefaultBackground   = "white"
	DefaultForeground   = "black"

	DefaultQRBoxSize = 10
	DefaultQRBorder  = 4
)

// Request describes a 1D barcode generation request. Optional numeric fields
// are pointers so that an explicit zero is rejected rather than silently
// replaced by the default.
type Request struct {
	Data         string   `json:"data"`
	Format       string   `json:"format"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	QuietZone    *float64 `json:"quiet_zone,omitempty"`
	FontSize     *int     `json:"font_size,omitempty"`
	TextDistance *float64 `json:"text_distance,omitempty"`
	Background   string   `json:"background,omitempty"`
	Foreground   string   `json:"foreground,omitempty"`
	ReturnFormat string   `json:"return_format,omitempty"`
}

// QRRequest describes a QR code generation request. A nil Version selects the
// smallest version that fits the payload.
type QRRequest struct {
	Data            string `json:"data"`
	Version         *int   `json:"version,omitempty"`
	ErrorCorrection string `json:"error_correction,omitempty"`
	BoxSize         *int   `json:"box_size,omitempty"`
	Border          *int   `json:"border,omitempty"`
	Background      string `json:"background,omitempty"`
	Foreground      string `json:"foreground,omitempty"`
	ReturnFormat    string `json:"return_format,omitempty"`
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func validateReturnFormat(rf string) error {
	switch rf {
	case "", ReturnInline, ReturnFile:
		return nil
	}
	return newValidationError("return_format", "must be %q or %q", ReturnInline, ReturnFile)
}

// Validate checks the request against the registry and the styling bounds.
// Data is trimmed in place; the trimmed value is what gets encoded and echoed.
func (r *Request) Validate(reg *registry.Registry) error {
	r.Data = strings.TrimSpace(r.Data)
	if r.Data == "" {
		return newValidationError("data", "data cannot be empty")
	}

	entry, ok := reg.Lookup(r.Format)
	if !ok {
		return newValidationError("format", "unsupported format")
	}
	if entry.ID == registry.QRCode {
		return newValidationError("format", "use the QR endpoint for qrcode generation")
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"width", r.Width},
		{"height", r.Height},
		{"quiet_zone", r.QuietZone},
		{"text_distance", r.TextDistance},
	} {
		if f.value != nil && *f.value <= 0 {
			return newValidationError(f.name, "must be positive")
		}
	}
	if r.FontSize != nil && (*r.FontSize < 1 || *r.FontSize > 100) {
		return newValidationError("font_size", "must be between 1 and 100")
	}

	if entry.RequiredLength > 0 {
		if len(r.Data) != entry.RequiredLength || !isDigits(r.Data) {
			return newValidationError("data", "invalid data length/format for %s: expected %d digits",
				r.Format, entry.RequiredLength)
		}
	}

	return validateReturnFormat(r.ReturnFormat)
}

// Validate checks QR-specific bounds.
func (r *QRRequest) Validate() error {
	r.Data = strings.TrimSpace(r.Data)
	if r.Data == "" {
		return newValidationError("data", "data cannot be empty")
	}
	// Version 0 selects automatically, same as omitting the field.
	if r.Version != nil && (*r.Version < 0 || *r.Version > 40) {
		return newValidationError("version", "must be between 1 and 40")
	}
	switch r.ErrorCorrection {
	case "", "L", "M", "Q", "H":
	default:
		return newValidationError("error_correction", "must be one of L, M, Q, H")
	}
	if r.BoxSize != nil && *r.BoxSize < 1 {
		return newValidationError("box_size", "must be at least 1")
	}
	if r.Border != nil && *r.Border < 0 {
		return newValidationError("border", "must not be negative")
	}
	return validateReturnFormat(r.ReturnFormat)
}
