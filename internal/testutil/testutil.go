// Package testutil renders synthetic barcode and QR images for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/barkit/internal/generate"
	"github.com/MeKo-Tech/barkit/internal/registry"
)

// RenderSymbol renders a scanner-friendly 1D barcode: wide modules, tall bars
// and a generous quiet zone so detectors find it reliably.
func RenderSymbol(t *testing.T, format, data string) []byte {
	t.Helper()

	enc := generate.NewEncoder(registry.New())
	width, height, quiet := 3.0, 60.0, 30.0
	out, err := enc.Encode(&generate.Request{
		Data:      data,
		Format:    format,
		Width:     &width,
		Height:    &height,
		QuietZone: &quiet,
	})
	require.NoError(t, err)
	return out
}

// RenderQR renders a QR code with default styling.
func RenderQR(t *testing.T, data string) []byte {
	t.Helper()

	enc := generate.NewEncoder(registry.New())
	out, err := enc.EncodeQR(&generate.QRRequest{Data: data})
	require.NoError(t, err)
	return out
}

// BlankPNG returns a plain white PNG with no symbols in it.
func BlankPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(width, height, color.White)))
	return buf.Bytes()
}

// ComposeHorizontal pastes the given PNG images side by side on a white
// canvas, separated and surrounded by the given margin.
func ComposeHorizontal(t *testing.T, margin int, images ...[]byte) []byte {
	t.Helper()

	decoded := make([]image.Image, 0, len(images))
	totalW, maxH := margin, 0
	for _, data := range images {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		decoded = append(decoded, img)
		totalW += img.Bounds().Dx() + margin
		if h := img.Bounds().Dy(); h > maxH {
			maxH = h
		}
	}

	canvas := imaging.New(totalW, maxH+2*margin, color.White)
	x := margin
	for _, img := range decoded {
		canvas = imaging.Paste(canvas, img, image.Pt(x, margin))
		x += img.Bounds().Dx() + margin
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, canvas))
	return buf.Bytes()
}
