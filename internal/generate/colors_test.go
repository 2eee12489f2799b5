package generate

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorNames(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"white", color.RGBA{255, 255, 255, 255}},
		{"black", color.RGBA{0, 0, 0, 255}},
		{"RED", color.RGBA{255, 0, 0, 255}},
		{" green ", color.RGBA{0, 128, 0, 255}},
		{"grey", color.RGBA{128, 128, 128, 255}},
		{"gray", color.RGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseColor("background", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestParseColorHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#FF8000", color.RGBA{255, 128, 0, 255}},
		{"00ff00", color.RGBA{0, 255, 0, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#abc", color.RGBA{170, 187, 204, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseColor("foreground", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestParseColorRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "mauve", "#12345", "#gggggg", "#12"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseColor("background", in)
			require.Error(t, err)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Equal(t, "background", ve.Field)
		})
	}
}
