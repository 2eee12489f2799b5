// Package generate validates generation requests and dispatches them to the
// symbology and QR encoders, returning finished PNG buffers.
package generate

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/MeKo-Tech/barkit/internal/registry"
	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// Encoder turns validated requests into PNG images. It is stateless apart
// from the shared read-only registry and safe for concurrent use.
type Encoder struct {
	reg *registry.Registry
}

func NewEncoder(reg *registry.Registry) *Encoder {
	return &Encoder{reg: reg}
}

// Registry exposes the format table the encoder dispatches on.
func (e *Encoder) Registry() *registry.Registry { return e.reg }

// Encode validates the request, renders the barcode and returns PNG bytes.
// Failures are *ValidationError or *EncodingError.
func (e *Encoder) Encode(req *Request) ([]byte, error) {
	if err := req.Validate(e.reg); err != nil {
		return nil, err
	}
	st, err := resolveStyle(req)
	if err != nil {
		return nil, err
	}

	entry, _ := e.reg.Lookup(req.Format)
	bc, err := entry.Encode(req.Data)
	if err != nil {
		return nil, &EncodingError{Format: req.Format, Data: req.Data, Err: err}
	}

	img, err := renderBarcode(bc, req.Data, st)
	if err != nil {
		return nil, &EncodingError{Format: req.Format, Data: req.Data, Err: err}
	}
	return encodePNG(img)
}

// EncodeQR validates the request and renders the QR code as PNG bytes.
func (e *Encoder) EncodeQR(req *QRRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bg, fg := req.Background, req.Foreground
	if bg == "" {
		bg = DefaultBackground
	}
	if fg == "" {
		fg = DefaultForeground
	}
	bgCol, err := parseColor("background", bg)
	if err != nil {
		return nil, err
	}
	fgCol, err := parseColor("foreground", fg)
	if err != nil {
		return nil, err
	}

	var q *qrcode.QRCode
	if req.Version != nil && *req.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(req.Data, *req.Version, recoveryLevel(req.ErrorCorrection))
	} else {
		q, err = qrcode.New(req.Data, recoveryLevel(req.ErrorCorrection))
	}
	if err != nil {
		return nil, &EncodingError{Format: registry.QRCode, Data: req.Data, Err: err}
	}
	q.BackgroundColor = bgCol
	q.ForegroundColor = fgCol
	q.DisableBorder = true

	boxSize := DefaultQRBoxSize
	if req.BoxSize != nil {
		boxSize = *req.BoxSize
	}
	border := DefaultQRBorder
	if req.Border != nil {
		border = *req.Border
	}

	img := q.Image(-boxSize)
	if border > 0 {
		pad := border * boxSize
		b := img.Bounds()
		canvas := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, bgCol)
		img = imaging.Paste(canvas, img, image.Pt(pad, pad))
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func recoveryLevel(ec string) qrcode.RecoveryLevel {
	switch ec {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
