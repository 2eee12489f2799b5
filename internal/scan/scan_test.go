package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/barkit/internal/generate"
	"github.com/MeKo-Tech/barkit/internal/registry"
	"github.com/MeKo-Tech/barkit/internal/testutil"
)

func TestScanRoundTripCode128(t *testing.T) {
	img := testutil.RenderSymbol(t, "code128", "HELLO-123")

	report, err := New().ScanBytes(img, Options{TryHarder: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, "HELLO-123", res.Data)
	assert.Equal(t, "CODE_128", res.Type)
	assert.NotEmpty(t, res.Polygon)
	assert.Nil(t, res.Quality)
}

func TestScanRoundTripQR(t *testing.T) {
	payload := "https://example.com/item/42"
	img := testutil.RenderQR(t, payload)

	report, err := New().ScanBytes(img, Options{TryHarder: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)

	res := report.Results[0]
	assert.Equal(t, payload, res.Data)
	assert.Equal(t, "QR_CODE", res.Type)
}

func TestScanRoundTripEAN13(t *testing.T) {
	enc := generate.NewEncoder(registry.New())
	width, height, quiet := 3.0, 80.0, 30.0
	img, err := enc.Encode(&generate.Request{
		Data:      "123456789012",
		Format:    "ean13",
		Width:     &width,
		Height:    &height,
		QuietZone: &quiet,
	})
	require.NoError(t, err)

	report, err := New().ScanBytes(img, Options{TryHarder: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)

	res := report.Results[0]
	assert.Equal(t, "EAN_13", res.Type)
	// The symbol carries the computed check digit.
	assert.Len(t, res.Data, 13)
	assert.Equal(t, "123456789012", res.Data[:12])
}

func TestScanMultipleSymbols(t *testing.T) {
	composed := testutil.ComposeHorizontal(t, 60,
		testutil.RenderQR(t, "first payload"),
		testutil.RenderQR(t, "second payload"),
	)

	report, err := New().ScanBytes(composed, Options{TryHarder: true})
	require.NoError(t, err)
	require.Equal(t, 2, report.Count)

	payloads := []string{report.Results[0].Data, report.Results[1].Data}
	assert.ElementsMatch(t, []string{"first payload", "second payload"}, payloads)
}

func TestScanUPCAReportedOnce(t *testing.T) {
	// A UPC-A symbol is also decodable as EAN-13 with a leading zero; the
	// report must carry the symbol once, not once per reader.
	img := testutil.RenderSymbol(t, "upc", "03600029145")

	report, err := New().ScanBytes(img, Options{TryHarder: true})
	require.NoError(t, err)
	require.Equal(t, 1, report.Count)
	assert.Contains(t, report.Results[0].Data, "03600029145")
}

func TestScanBlankImage(t *testing.T) {
	report, err := New().ScanBytes(testutil.BlankPNG(t, 200, 120), Options{TryHarder: true})
	require.NoError(t, err, "zero detections is a success, not an error")
	assert.Equal(t, 0, report.Count)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
}

func TestScanInvalidImageBytes(t *testing.T) {
	_, err := New().ScanBytes([]byte("this is not an image"), Options{})
	require.Error(t, err)

	var de *DecodingError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Error(), "invalid image format")
}

func TestScanEmptyBytes(t *testing.T) {
	_, err := New().ScanBytes(nil, Options{})

	var de *DecodingError
	require.ErrorAs(t, err, &de)
}
