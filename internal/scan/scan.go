// Package scan decodes barcode and QR symbols from raster images using the
// gozxing format readers.
package scan

import (
	"bytes"
	"fmt"
	"image"
	"unicode/utf8"

	// Register the decoders accepted for scan uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/makiuchi-d/gozxing/oned"
	"golang.org/x/text/unicode/norm"
)

// Point is a polygon vertex in image pixel coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Result is one detected symbol, normalized from the reader's raw output.
type Result struct {
	Data    string  `json:"data"`
	Type    string  `json:"type"`
	Quality *int    `json:"quality,omitempty"`
	Polygon []Point `json:"polygon"`
}

// Report is the outcome of scanning a single image. Zero detections is a
// successful outcome, not an error.
type Report struct {
	Count   int      `json:"count"`
	Results []Result `json:"results"`
}

// Options controls detection behavior.
type Options struct {
	// TryHarder spends more time searching (slower, more robust).
	TryHarder bool
}

// DecodingError reports image bytes that could not be decoded, or a detected
// payload that is not valid text.
type DecodingError struct {
	Message string
	Err     error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DecodingError) Unwrap() error { return e.Err }

// Decoder runs the format readers. It holds no mutable state and is safe for
// concurrent use.
type Decoder struct{}

func New() *Decoder { return &Decoder{} }

// ScanBytes decodes the raw upload into a raster and scans it.
func (d *Decoder) ScanBytes(data []byte, opts Options) (*Report, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodingError{Message: "invalid image format", Err: err}
	}
	return d.Scan(img, opts)
}

// Scan runs every format reader over the image and aggregates their
// detections. gozxing ships no generic multi-format reader, so QR symbols go
// through the dedicated multi reader and each 1D symbology through its own
// reader; a reader that finds nothing contributes nothing.
func (d *Decoder) Scan(img image.Image, opts Options) (*Report, error) {
	// Single-channel input keeps the binarizer behavior independent of the
	// upload's color space.
	gray := imaging.Grayscale(img)

	bitmap, err := gozxing.NewBinaryBitmapFromImage(gray)
	if err != nil {
		return nil, &DecodingError{Message: "invalid image format", Err: err}
	}

	var hints map[gozxing.DecodeHintType]interface{}
	if opts.TryHarder {
		hints = map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		}
	}

	var results []Result
	seen := make(map[string]bool)

	add := func(r *gozxing.Result) error {
		res, err := normalizeResult(r)
		if err != nil {
			return err
		}
		key := res.Type + "|" + res.Data
		if seen[key] {
			return nil
		}
		seen[key] = true
		results = append(results, res)
		return nil
	}

	// QR first; the multi reader finds every QR symbol in the frame.
	if raw, err := multiqr.NewQRCodeMultiReader().DecodeMultiple(bitmap, hints); err == nil {
		for _, r := range raw {
			if err := add(r); err != nil {
				return nil, err
			}
		}
	}

	// EAN-13 before UPC-A: a UPC-A symbol is an EAN-13 symbol with a leading
	// zero, so both readers decode it and the second reading is dropped below.
	readers := []gozxing.Reader{
		oned.NewEAN13Reader(),
		oned.NewUPCAReader(),
		oned.NewEAN8Reader(),
		oned.NewCode128Reader(),
		oned.NewCode39Reader(),
		oned.NewITFReader(),
	}
	for _, reader := range readers {
		r, err := reader.Decode(bitmap, hints)
		if err != nil {
			// Nothing this reader recognizes; the aggregate may still be
			// non-empty from the other readers.
			continue
		}
		if r.GetBarcodeFormat() == gozxing.BarcodeFormat_UPC_A &&
			seen[gozxing.BarcodeFormat_EAN_13.String()+"|0"+r.GetText()] {
			continue
		}
		if err := add(r); err != nil {
			return nil, err
		}
	}

	if results == nil {
		results = []Result{}
	}
	return &Report{Count: len(results), Results: results}, nil
}

func normalizeResult(r *gozxing.Result) (Result, error) {
	text := r.GetText()
	if !utf8.ValidString(text) {
		return Result{}, &DecodingError{
			Message: fmt.Sprintf("symbol payload is not valid text (%s)", r.GetBarcodeFormat()),
		}
	}

	pts := r.GetResultPoints()
	polygon := make([]Point, 0, len(pts))
	for _, p := range pts {
		polygon = append(polygon, Point{X: int(p.GetX()), Y: int(p.GetY())})
	}

	// gozxing reports no calibrated quality metric; the field stays unset.
	return Result{
		Data:    norm.NFC.String(text),
		Type:    r.GetBarcodeFormat().String(),
		Polygon: polygon,
	}, nil
}
