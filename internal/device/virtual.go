package device

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"
)

// Virtual strip dimensions match the Stream Deck Plus.
const (
	VirtualStripWidth  = 800
	VirtualStripHeight = 100
)

// Gesture thresholds used to classify a press/release pair.
const (
	swipeDistance = 20
	longTouch     = 500 * time.Millisecond
)

// Virtual is an in-process touch strip. Hosts feed it raw presses and
// releases; it classifies them into taps and swipes the same way the hardware
// firmware does and runs the registered handlers on the caller's goroutine.
type Virtual struct {
	mu sync.RWMutex

	open       bool
	brightness byte
	stripImage *image.RGBA

	touchHandlers []TouchStripTouchHandler
	swipeHandlers []TouchStripSwipeHandler

	errCh  chan error
	stopCh chan struct{}

	pressed   bool
	dragStart image.Point
	dragAt    time.Time
}

var _ Device = (*Virtual)(nil)

// NewVirtual creates a closed virtual strip.
func NewVirtual() *Virtual {
	return &Virtual{
		brightness: 80,
		stripImage: image.NewRGBA(image.Rect(0, 0, VirtualStripWidth, VirtualStripHeight)),
	}
}

// Open initializes the strip.
func (v *Virtual) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.open {
		return fmt.Errorf("virtual strip: already open")
	}
	v.open = true
	v.stopCh = make(chan struct{})
	return nil
}

// Close releases any Listen call.
func (v *Virtual) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return ErrNotOpen
	}
	v.open = false
	close(v.stopCh)
	return nil
}

func (v *Virtual) IsOpen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.open
}

func (v *Virtual) GetModelName() string         { return "Virtual Touch Strip" }
func (v *Virtual) GetTouchStripSupported() bool { return true }

func (v *Virtual) GetTouchStripImageRectangle() (image.Rectangle, error) {
	return v.stripImage.Bounds(), nil
}

func (v *Virtual) SetBrightness(perc byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if perc > 100 {
		perc = 100
	}
	v.brightness = perc
	return nil
}

// SetTouchStripImage copies img onto the strip.
func (v *Virtual) SetTouchStripImage(img image.Image) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return ErrNotOpen
	}
	draw.Draw(v.stripImage, v.stripImage.Bounds(), img, img.Bounds().Min, draw.Src)
	return nil
}

// StripImage returns a copy of the current strip image.
func (v *Virtual) StripImage() *image.RGBA {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := image.NewRGBA(v.stripImage.Bounds())
	copy(out.Pix, v.stripImage.Pix)
	return out
}

func (v *Virtual) AddTouchStripTouchHandler(fn TouchStripTouchHandler) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touchHandlers = append(v.touchHandlers, fn)
	return nil
}

func (v *Virtual) AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.swipeHandlers = append(v.swipeHandlers, fn)
	return nil
}

// Listen blocks until the strip is closed. Handler errors are sent to errCh
// when it has room.
func (v *Virtual) Listen(errCh chan error) error {
	v.mu.Lock()
	if !v.open {
		v.mu.Unlock()
		return ErrNotOpen
	}
	v.errCh = errCh
	stop := v.stopCh
	v.mu.Unlock()

	<-stop
	return nil
}

// Press records the start of a contact at p.
func (v *Virtual) Press(p image.Point, at time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pressed = true
	v.dragStart = p
	v.dragAt = at
}

// Pressed reports whether a contact is in progress.
func (v *Virtual) Pressed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pressed
}

// Release ends the current contact at p and fires a tap or swipe. A release
// without a press is ignored.
func (v *Virtual) Release(p image.Point, at time.Time) {
	v.mu.Lock()
	if !v.pressed || !v.open {
		v.pressed = false
		v.mu.Unlock()
		return
	}
	v.pressed = false
	start, held := v.dragStart, at.Sub(v.dragAt)
	v.mu.Unlock()

	d := p.Sub(start)
	if d.X*d.X+d.Y*d.Y < swipeDistance*swipeDistance {
		kind := TOUCH_STRIP_TOUCH_TYPE_SHORT
		if held > longTouch {
			kind = TOUCH_STRIP_TOUCH_TYPE_LONG
		}
		v.Touch(kind, start)
		return
	}
	v.Swipe(start, p)
}

// Touch fires the tap handlers.
func (v *Virtual) Touch(kind TouchStripTouchType, p image.Point) {
	v.mu.RLock()
	handlers := v.touchHandlers
	v.mu.RUnlock()
	for _, h := range handlers {
		v.report(h(v, kind, p))
	}
}

// Swipe fires the swipe handlers.
func (v *Virtual) Swipe(origin, destination image.Point) {
	v.mu.RLock()
	handlers := v.swipeHandlers
	v.mu.RUnlock()
	for _, h := range handlers {
		v.report(h(v, origin, destination))
	}
}

func (v *Virtual) report(err error) {
	if err == nil {
		return
	}
	v.mu.RLock()
	ch := v.errCh
	v.mu.RUnlock()
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
