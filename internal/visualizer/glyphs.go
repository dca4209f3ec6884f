package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/phinze/pointerflow/internal/pointer"
)

// 24x24 outline glyphs, stroked with currentColor.
const (
	glyphMouseSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><rect x="6" y="3" width="12" height="18" rx="6"/><path d="M12 7v4"/></svg>`
	glyphPenSVG   = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M17 3l4 4L7 21H3v-4z"/><path d="M15 5l4 4"/></svg>`
	glyphTouchSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="4"/><circle cx="12" cy="12" r="9"/></svg>`
)

var (
	colorMouse = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	colorPen   = color.NRGBA{R: 0xff, G: 0xb7, B: 0x4d, A: 0xff}
	colorTouch = color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff}
	colorOther = color.NRGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff}
)

func typeStyle(t pointer.Type) (string, color.NRGBA) {
	switch t {
	case pointer.Mouse:
		return glyphMouseSVG, colorMouse
	case pointer.Pen:
		return glyphPenSVG, colorPen
	case pointer.Touch:
		return glyphTouchSVG, colorTouch
	}
	return glyphTouchSVG, colorOther
}

// renderGlyph rasterizes an SVG glyph at size x size in col.
func renderGlyph(svg string, size int, col color.Color) (*image.RGBA, error) {
	r, g, b, _ := col.RGBA()
	svg = strings.ReplaceAll(svg, "currentColor", fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parsing glyph: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Transparent}, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}
