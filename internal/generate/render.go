package generate

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/boombuler/barcode"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// style is a fully resolved set of rendering options with defaults applied
// and colors parsed.
type style struct {
	moduleWidth  float64
	moduleHeight float64
	quietZone    float64
	fontSize     int
	textDistance float64
	background   color.Color
	foreground   color.Color
}

func resolveStyle(r *Request) (style, error) {
	st := style{
		moduleWidth:  DefaultModuleWidth,
		moduleHeight: DefaultModuleHeight,
		quietZone:    DefaultQuietZone,
		fontSize:     DefaultFontSize,
		textDistance: DefaultTextDistance,
	}
	if r.Width != nil {
		st.moduleWidth = *r.Width
	}
	if r.Height != nil {
		st.moduleHeight = *r.Height
	}
	if r.QuietZone != nil {
		st.quietZone = *r.QuietZone
	}
	if r.FontSize != nil {
		st.fontSize = *r.FontSize
	}
	if r.TextDistance != nil {
		st.textDistance = *r.TextDistance
	}

	bg, fg := r.Background, r.Foreground
	if bg == "" {
		bg = DefaultBackground
	}
	if fg == "" {
		fg = DefaultForeground
	}
	var err error
	if st.background, err = parseColor("background", bg); err != nil {
		return style{}, err
	}
	if st.foreground, err = parseColor("foreground", fg); err != nil {
		return style{}, err
	}
	return st, nil
}

var captionFont = func() *opentype.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("parsing embedded caption font: %v", err))
	}
	return f
}()

// renderBarcode scales the 1px-high barcode matrix to the requested module
// size, surrounds it with the quiet zone and draws the human-readable payload
// underneath.
func renderBarcode(bc barcode.Barcode, caption string, st style) (image.Image, error) {
	modules := bc.Bounds().Dx()

	barW := int(math.Round(float64(modules) * st.moduleWidth))
	if barW < modules {
		barW = modules
	}
	barH := int(math.Round(st.moduleHeight))
	if barH < 1 {
		barH = 1
	}
	scaled, err := barcode.Scale(bc, barW, barH)
	if err != nil {
		return nil, fmt.Errorf("scaling barcode: %w", err)
	}

	face, err := opentype.NewFace(captionFont, &opentype.FaceOptions{
		Size:    float64(st.fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("sizing caption font: %w", err)
	}
	defer func() { _ = face.Close() }()

	metrics := face.Metrics()
	textDist := int(math.Round(st.textDistance))
	capH := textDist + metrics.Height.Ceil()

	quiet := int(math.Round(st.quietZone))
	canvas := imaging.New(barW+2*quiet, quiet+barH+capH+quiet, st.background)

	// Blit the scaled matrix, mapping dark modules to the foreground color.
	sb := scaled.Bounds()
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			if isDark(scaled.At(x, y)) {
				canvas.Set(quiet+x-sb.Min.X, quiet+y-sb.Min.Y, st.foreground)
			}
		}
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(st.foreground),
		Face: face,
	}
	textW := d.MeasureString(caption).Ceil()
	x := (canvas.Bounds().Dx() - textW) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.P(x, quiet+barH+textDist+metrics.Ascent.Ceil())
	d.DrawString(caption)

	return canvas, nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	// Rec. 601 luma on 16-bit channels.
	return (299*r+587*g+114*b)/1000 < 0x8000
}
