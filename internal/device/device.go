// Package device abstracts the touch strip of a Stream Deck as a pointer
// surface.
package device

import (
	"errors"
	"image"
)

var (
	// ErrNoTouchStrip is returned when a device has no touch strip.
	ErrNoTouchStrip = errors.New("device: no touch strip")
	// ErrNotOpen is returned when a closed device is used.
	ErrNotOpen = errors.New("device: not open")
)

// Device is the part of a Stream Deck the pointer pipeline uses.
// Both the hardware adapter and the virtual strip implement it.
type Device interface {
	// Lifecycle
	Open() error
	Close() error
	IsOpen() bool

	// Device info
	GetModelName() string
	GetTouchStripSupported() bool
	GetTouchStripImageRectangle() (image.Rectangle, error)

	// Display
	SetBrightness(perc byte) error
	SetTouchStripImage(img image.Image) error

	// Event handlers
	AddTouchStripTouchHandler(fn TouchStripTouchHandler) error
	AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error

	// Event loop
	Listen(errCh chan error) error
}

// TouchStripTouchType represents the type of touch on the strip.
type TouchStripTouchType byte

// Touch strip touch types
const (
	TOUCH_STRIP_TOUCH_TYPE_SHORT TouchStripTouchType = iota + 1
	TOUCH_STRIP_TOUCH_TYPE_LONG
)

func (t TouchStripTouchType) String() string {
	switch t {
	case TOUCH_STRIP_TOUCH_TYPE_SHORT:
		return "short"
	case TOUCH_STRIP_TOUCH_TYPE_LONG:
		return "long"
	}
	return "unknown"
}

type (
	// TouchStripTouchHandler is called when the touch strip is tapped.
	TouchStripTouchHandler func(d Device, t TouchStripTouchType, p image.Point) error

	// TouchStripSwipeHandler is called when the touch strip is swiped.
	TouchStripSwipeHandler func(d Device, origin, destination image.Point) error
)
