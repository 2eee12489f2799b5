package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEncodesAllFormats(t *testing.T) {
	reg := New()

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
			entry, ok := reg.Lookup(tt.format)
			require.True(t, ok, "format should be registered")
			require.NotNil(t, entry.Encode)

			bc, err := entry.Encode(tt.data)
			require.NoError(t, err)
			assert.Positive(t, bc.Bounds().Dx())
		})
	}
}

func TestRegistryQREntry(t *testing.T) {
	reg := New()

	entry, ok := reg.Lookup(QRCode)
	require.True(t, ok)
	assert.Nil(t, entry.Encode, "QR entry is dispatched to the QR encoder")
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg := New()

	_, ok := reg.Lookup("datamatrix")
	assert.False(t, ok)
}

func TestRegistryIDsOrder(t *testing.T) {
	reg := New()

	ids := reg.IDs()
	require.Len(t, ids, 13)
	assert.Equal(t, "code128", ids[0])
	assert.Equal(t, QRCode, ids[len(ids)-1])

	entries := reg.Entries()
	require.Len(t, entries, len(ids))
	for i, e := range entries {
		assert.Equal(t, ids[i], e.ID)
		assert.NotEmpty(t, e.Description)
	}
}

func TestRegistryEncodeRejectsBadPayloads(t *testing.T) {
	reg := New()

	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"ean14 too short", "ean14", "123"},
		{"ean14 non-numeric", "ean14", "123456789012X"},
		{"jan wrong prefix", "jan", "123456789012"},
		{"isbn13 wrong prefix", "isbn13", "123456789012"},
		{"issn wrong length", "issn", "12345"},
		{"issn non-numeric", "issn", "031784AB"},
		{"pzn wrong length", "pzn", "12345678"},
		{"pzn non-numeric", "pzn", "12345X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := reg.Lookup(tt.format)
			require.True(t, ok)

			_, err := entry.Encode(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestGTINCheckDigit(t *testing.T) {
	// Reference values from GS1 check digit tables.
	tests := []struct {
		digits string
		want   byte
	}{
		{"629104150021", '3'},
		{"03600029145", '2'},
		{"1234567890123", '1'},
	}

	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(gtinCheckDigit(tt.digits)), "digits %s", tt.digits)
	}
}
