package generate

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/barkit/internal/registry"
)

func newTestEncoder() *Encoder {
	return NewEncoder(registry.New())
}

func decodePNG(t *testing.T, data []byte) {
	t.Helper()
	_, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "output should be a valid PNG")
}

func TestEncodeAllFormats(t *testing.T) {
	enc := newTestEncoder()

	tests := []struct {
		format string
		data   string
	}{
		{"code128", "HELLO-123"},
		{"code39", "ABC-123"},
		{"ean8", "1234567"},
		{"ean13", "123456789012"},
		{"ean14", "1234567890123"},
		{"jan", "490123456789"},
		{"upc", "12345678901"},
		{"isbn10", "097522980"},
		{"isbn13", "978316148410"},
		{"issn", "0317-8471"},
		{"itf", "1234567890"},
		{"pzn", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := enc.Encode(&Request{Data: tt.data, Format: tt.format})
			require.NoError(t, err)
			require.NotEmpty(t, out)
			decodePNG(t, out)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	enc := newTestEncoder()
	req := func() *Request { return &Request{Data: "HELLO-123", Format: "code128"} }

	first, err := enc.Encode(req())
	require.NoError(t, err)
	second, err := enc.Encode(req())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same request must produce identical bytes")
}

func TestEncodeAppliesStyling(t *testing.T) {
	enc := newTestEncoder()

	small, err := enc.Encode(&Request{Data: "HELLO", Format: "code128", Width: floatPtr(1), Height: floatPtr(10)})
	require.NoError(t, err)
	large, err := enc.Encode(&Request{Data: "HELLO", Format: "code128", Width: floatPtr(4), Height: floatPtr(60)})
	require.NoError(t, err)

	smallImg, err := png.Decode(bytes.NewReader(small))
	require.NoError(t, err)
	largeImg, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)

	assert.Greater(t, largeImg.Bounds().Dx(), smallImg.Bounds().Dx())
	assert.Greater(t, largeImg.Bounds().Dy(), smallImg.Bounds().Dy())
}

func TestEncodeBackgroundColor(t *testing.T) {
	enc := newTestEncoder()

	out, err := enc.Encode(&Request{Data: "HELLO", Format: "code128", Background: "red"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// The top-left corner lies in the quiet zone.
	r, g, b, _ := color.RGBAModel.Convert(img.At(0, 0)).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestEncodeValidationFailure(t *testing.T) {
	enc := newTestEncoder()

	_, err := enc.Encode(&Request{Data: "12345", Format: "ean13"})
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestEncodeEncodingFailure(t *testing.T) {
	enc := newTestEncoder()

	// Passes the format pre-check (no RequiredLength for itf) but the
	// symbology rejects non-numeric payloads.
	_, err := enc.Encode(&Request{Data: "NOTDIGITS!", Format: "itf"})
	require.Error(t, err)
	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "itf", ee.Format)
}

func TestEncodeQRDefaults(t *testing.T) {
	enc := newTestEncoder()

	out, err := enc.EncodeQR(&QRRequest{Data: "https://example.com"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy(), "QR output is square")
	assert.Positive(t, b.Dx())
}

func TestEncodeQRForcedVersionSize(t *testing.T) {
	enc := newTestEncoder()

	// Version 5 is 37 modules; 10 px per module plus a 4-module border on
	// each side gives 450 px.
	out, err := enc.EncodeQR(&QRRequest{Data: "payload", Version: intPtr(5)})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 450, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())
}

func TestEncodeQRBorderZero(t *testing.T) {
	enc := newTestEncoder()

	withBorder, err := enc.EncodeQR(&QRRequest{Data: "payload", Version: intPtr(5)})
	require.NoError(t, err)
	without, err := enc.EncodeQR(&QRRequest{Data: "payload", Version: intPtr(5), Border: intPtr(0)})
	require.NoError(t, err)

	withImg, err := png.Decode(bytes.NewReader(withBorder))
	require.NoError(t, err)
	withoutImg, err := png.Decode(bytes.NewReader(without))
	require.NoError(t, err)

	assert.Equal(t, withImg.Bounds().Dx()-2*DefaultQRBorder*DefaultQRBoxSize, withoutImg.Bounds().Dx())
}

func TestEncodeQRColors(t *testing.T) {
	enc := newTestEncoder()

	out, err := enc.EncodeQR(&QRRequest{Data: "payload", Background: "yellow"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// The border region carries the background color.
	r, g, b, _ := color.RGBAModel.Convert(img.At(0, 0)).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Zero(t, b)
}

func TestEncodeQRInvalidColor(t *testing.T) {
	enc := newTestEncoder()

	_, err := enc.EncodeQR(&QRRequest{Data: "payload", Foreground: "notacolor"})
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestEncodeQRVersionTooSmall(t *testing.T) {
	enc := newTestEncoder()

	// Version 1 at medium error correction cannot hold this payload.
	long := bytes.Repeat([]byte("0123456789"), 20)
	_, err := enc.EncodeQR(&QRRequest{Data: string(long), Version: intPtr(1)})
	require.Error(t, err)
	var ee *EncodingError
	assert.ErrorAs(t, err, &ee)
}
