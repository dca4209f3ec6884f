// Package emulator hosts the pointer pipeline in an ebiten window: input is
// polled every frame, delivered through a binding into the window's sink and
// drained straight back out to the visualizer and any other consumers.
package emulator

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kataras/golog"

	"github.com/phinze/pointerflow/internal/binding"
	"github.com/phinze/pointerflow/internal/coordinator"
	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/source/poll"
	"github.com/phinze/pointerflow/internal/visualizer"
	"github.com/phinze/pointerflow/internal/window"
)

// Options configures an Emulator.
type Options struct {
	Window *window.Window
	Title  string
	// Width and Height are the initial window size in logical pixels.
	Width, Height int
	// FixedScale keeps the window's scale factor instead of following the
	// monitor.
	FixedScale bool

	// Strip, when set, is shown along the bottom edge and receives presses
	// made on it.
	Strip *device.Virtual

	// Consumers receive every drained batch after the visualizer.
	Consumers []coordinator.Consumer
}

// Emulator implements ebiten.Game.
type Emulator struct {
	opts    Options
	tracker *poll.Tracker
	state   poll.EbitenState
	binding *binding.Binding
	vis     *visualizer.Visualizer

	canvas *image.RGBA

	stopCh   chan struct{}
	stopOnce sync.Once
	log      *golog.Logger
}

// New creates an emulator for opts.Window.
func New(opts Options) *Emulator {
	if opts.Title == "" {
		opts.Title = "pointerflow"
	}
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 640
	}
	return &Emulator{
		opts:    opts,
		tracker: poll.NewTracker(),
		binding: binding.New(opts.Window, nil),
		vis:     visualizer.New(0),
		stopCh:  make(chan struct{}),
		log:     logging.For("emulator"),
	}
}

// Run opens the window and blocks until it is closed or Stop is called. It
// must be called from the main goroutine.
func (e *Emulator) Run() error {
	ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	ebiten.SetWindowTitle(e.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	e.log.Infof("window %d open (%dx%d)", e.opts.Window.ID(), e.opts.Width, e.opts.Height)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("running emulator: %w", err)
	}
	return nil
}

// Stop ends the game loop at the next frame.
func (e *Emulator) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// Update polls input, delivers it, and drains the window.
func (e *Emulator) Update() error {
	select {
	case <-e.stopCh:
		return ebiten.Termination
	default:
	}

	if !e.opts.FixedScale {
		e.opts.Window.SetScaleFactor(ebiten.Monitor().DeviceScaleFactor())
	}

	e.binding.Deliver(e.tracker.Poll(&e.state))
	e.handleStrip()
	return e.drain()
}

func (e *Emulator) drain() error {
	evs, err := e.opts.Window.Events().Drain()
	if err != nil {
		return fmt.Errorf("window %d: %w", e.opts.Window.ID(), err)
	}
	if len(evs) == 0 {
		return nil
	}
	e.vis.Consume(evs)
	for _, c := range e.opts.Consumers {
		if err := c.Consume(evs); err != nil {
			e.log.Warnf("consumer %s: %v", c.ID(), err)
		}
	}
	return nil
}

// handleStrip forwards left-button presses inside the strip band to the
// virtual strip, which classifies them into taps and swipes.
func (e *Emulator) handleStrip() {
	strip := e.opts.Strip
	if strip == nil || e.canvas == nil {
		return
	}
	band := e.stripBand()
	mx, my := ebiten.CursorPosition()
	at := image.Pt(mx, my).Sub(band.Min)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && image.Pt(mx, my).In(band) {
		strip.Press(at, time.Now())
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && strip.Pressed() {
		strip.Release(clampTo(at, image.Rect(0, 0, device.VirtualStripWidth, device.VirtualStripHeight)), time.Now())
	}
}

// stripBand is the strip's rectangle in canvas pixels.
func (e *Emulator) stripBand() image.Rectangle {
	h := e.canvas.Bounds().Dy()
	return image.Rect(0, h-device.VirtualStripHeight, device.VirtualStripWidth, h)
}

// Draw renders the visualizer and the strip band.
func (e *Emulator) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if e.canvas == nil || e.canvas.Bounds().Size() != b.Size() {
		e.canvas = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	e.vis.Render(e.canvas, e.opts.Window.ScaleFactor())

	if e.opts.Strip != nil {
		band := e.stripBand()
		draw.Draw(e.canvas, band, e.opts.Strip.StripImage(), image.Point{}, draw.Src)
	}
	screen.WritePixels(e.canvas.Pix)
}

// Layout works in device pixels so that cursor and touch positions arrive
// physical and the normalizer divides by the scale factor.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := e.opts.Window.ScaleFactor()
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}

func clampTo(p image.Point, r image.Rectangle) image.Point {
	p.X = min(max(p.X, r.Min.X), r.Max.X-1)
	p.Y = min(max(p.Y, r.Min.Y), r.Max.Y-1)
	return p
}
