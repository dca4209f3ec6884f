// Package visualizer draws recent pointer events: a fading trail of contact
// discs, a glyph for every pointer still in contact and a one-line HUD.
package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/kataras/golog"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/pointer"
)

// DefaultTrail is the number of events kept when New is given a
// non-positive limit.
const DefaultTrail = 256

const (
	minRadius = 4.0
	glyphSize = 20
)

var (
	colorBackground = color.RGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff}
	colorText       = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

type pointerKey struct {
	window pointer.WindowID
	id     pointer.ID
}

// Visualizer is a consumer that keeps a bounded trail of events.
type Visualizer struct {
	mu     sync.Mutex
	limit  int
	trail  []pointer.WindowEvent
	active map[pointerKey]pointer.Event
	total  int
	last   pointer.WindowEvent

	glyphs map[pointer.Type]*image.RGBA
	log    *golog.Logger
}

// New returns a visualizer keeping at most limit events.
func New(limit int) *Visualizer {
	if limit <= 0 {
		limit = DefaultTrail
	}
	return &Visualizer{
		limit:  limit,
		active: make(map[pointerKey]pointer.Event),
		glyphs: make(map[pointer.Type]*image.RGBA),
		log:    logging.For("visualizer"),
	}
}

// ID identifies the visualizer as a consumer.
func (v *Visualizer) ID() string { return "visualizer" }

// Consume appends evs to the trail, dropping the oldest beyond the limit.
func (v *Visualizer) Consume(evs []pointer.WindowEvent) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, ev := range evs {
		k := pointerKey{ev.Window, ev.Pointer.ID}
		if ev.Pointer.Phase == pointer.Up {
			delete(v.active, k)
		} else {
			v.active[k] = ev.Pointer
		}
	}
	if len(evs) > 0 {
		v.last = evs[len(evs)-1]
	}
	v.total += len(evs)

	v.trail = append(v.trail, evs...)
	if over := len(v.trail) - v.limit; over > 0 {
		v.trail = append(v.trail[:0], v.trail[over:]...)
	}
	return nil
}

// Active returns the number of pointers currently in contact or hovering.
func (v *Visualizer) Active() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.active)
}

// Render clears dst and draws the current state. Logical positions are
// multiplied by scale to reach dst pixels.
func (v *Visualizer) Render(dst *image.RGBA, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	filler := rasterx.NewFiller(w, h, scanner)

	n := len(v.trail)
	for i, ev := range v.trail {
		_, base := typeStyle(ev.Pointer.Type)
		// Older events fade towards transparent.
		alpha := 0.2 + 0.8*float64(i+1)/float64(n)
		col := base
		col.A = uint8(float64(base.A) * alpha)

		// The scanner offsets by the target origin itself.
		x := ev.Pointer.Position.X * scale
		y := ev.Pointer.Position.Y * scale
		filler.Clear()
		rasterx.AddCircle(x, y, radius(ev.Pointer, scale), filler)
		filler.SetColor(col)
		filler.Draw()
	}

	for _, p := range v.active {
		glyph := v.glyph(p.Type)
		if glyph == nil {
			continue
		}
		x := b.Min.X + int(p.Position.X*scale) + glyphSize/2
		y := b.Min.Y + int(p.Position.Y*scale) - glyphSize - glyphSize/2
		r := image.Rect(x, y, x+glyphSize, y+glyphSize)
		draw.Draw(dst, r, glyph, image.Point{}, draw.Over)
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorText),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Min.Y + 16)},
	}
	d.DrawString(v.hud())
}

// RenderStrip draws the state into a new image the size of rect at scale 1.
func (v *Visualizer) RenderStrip(rect image.Rectangle) image.Image {
	img := image.NewRGBA(rect)
	v.Render(img, 1)
	return img
}

func (v *Visualizer) hud() string {
	if v.total == 0 {
		return "waiting for pointer input"
	}
	p := v.last.Pointer
	s := fmt.Sprintf("%d events  %d active  #%d %s %s (%.0f, %.0f)",
		v.total, len(v.active), p.ID, p.Type, p.Phase, p.Position.X, p.Position.Y)
	if p.Pressure > 0 {
		s += fmt.Sprintf("  p=%.2f", p.Pressure)
	}
	if p.Modifiers != 0 {
		s += "  " + p.Modifiers.String()
	}
	return s
}

func (v *Visualizer) glyph(t pointer.Type) *image.RGBA {
	if g, ok := v.glyphs[t]; ok {
		return g
	}
	svg, col := typeStyle(t)
	g, err := renderGlyph(svg, glyphSize, col)
	if err != nil {
		v.log.Warnf("glyph for %s: %v", t, err)
	}
	v.glyphs[t] = g
	return g
}

// radius derives the disc radius from the contact size, grown by pressure.
func radius(p pointer.Event, scale float64) float64 {
	r := math.Max(p.Size.Width, p.Size.Height) / 2
	if r < minRadius {
		r = minRadius
	}
	if p.Pressure > 0 {
		r *= 0.5 + p.Pressure
	}
	return r * scale
}
