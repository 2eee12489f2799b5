package generate

import (
	"fmt"
	"image/color"
	"strings"
)

// namedColors covers the color names the original service accepted for
// barcode styling.
var namedColors = map[string]color.RGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"brown":   {165, 42, 42, 255},
}

// parseColor accepts a named color or "#RGB"/"#RRGGBB" hex notation.
func parseColor(field, s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if c := parseHexColor(name); c != nil {
		return c, nil
	}
	return nil, newValidationError(field, "unknown color %q", s)
}

// parseHexColor parses colors like "#RRGGBB", "RRGGBB" or "#RGB".
func parseHexColor(s string) color.Color {
	if s == "" {
		return nil
	}
	if s[0] == '#' {
		s = s[1:]
	}
	var rv, gv, bv int
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
			return nil
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &rv, &gv, &bv); err != nil {
			return nil
		}
		rv, gv, bv = rv*17, gv*17, bv*17
	default:
		return nil
	}
	return color.RGBA{uint8(rv), uint8(gv), uint8(bv), 255} //nolint:gosec // G115: values are bounded by the scan width
}
