package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/barkit/internal/testutil"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := GetRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "barkit version")
	assert.Contains(t, out, "Commit:")
}

func TestFormatsCommand(t *testing.T) {
	out, err := executeCommand(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "code128")
	assert.Contains(t, out, "ean13")
	assert.Contains(t, out, "qrcode")
	assert.Contains(t, out, "QR Code")
}

func TestGenerateCommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "code.png")

	out, err := executeCommand(t, "generate",
		"--data", "HELLO-123",
		"--format", "code128",
		"--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "output file should be a valid PNG")
}

func TestGenerateCommandQR(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "qr.png")

	_, err := executeCommand(t, "generate",
		"--data", "https://example.com",
		"--format", "qrcode",
		"--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestGenerateCommandMissingData(t *testing.T) {
	_, err := executeCommand(t, "generate", "--format", "code128", "--data", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data provided")
}

func TestScanCommand(t *testing.T) {
	// Render a symbol to scan back.
	img := testutil.RenderSymbol(t, "code128", "CLI-SCAN-1")

	path := filepath.Join(t.TempDir(), "symbol.png")
	require.NoError(t, os.WriteFile(path, img, 0o600))

	out, err := executeCommand(t, "scan", "--json", path)
	require.NoError(t, err)

	var reports []struct {
		File    string `json:"file"`
		Count   int    `json:"count"`
		Results []struct {
			Data string `json:"data"`
			Type string `json:"type"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, path, reports[0].File)
	require.Equal(t, 1, reports[0].Count)
	assert.Equal(t, "CLI-SCAN-1", reports[0].Results[0].Data)
	assert.Equal(t, "CODE_128", reports[0].Results[0].Type)
}

func TestScanCommandMissingFile(t *testing.T) {
	_, err := executeCommand(t, "scan", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
