package device

import (
	"fmt"
	"image"
	"time"

	"rafaelmartins.com/p/streamdeck"
)

// HardwareDevice wraps a streamdeck.Device.
type HardwareDevice struct {
	dev *streamdeck.Device
}

var _ Device = (*HardwareDevice)(nil)

// NewHardware creates a new hardware device wrapper.
func NewHardware(dev *streamdeck.Device) *HardwareDevice {
	return &HardwareDevice{dev: dev}
}

// OpenHardware finds the first attached Stream Deck with a touch strip and
// opens it. The USB stack can hang in a bad state, so the probe gives up after
// timeout.
func OpenHardware(serial string, timeout time.Duration) (*HardwareDevice, error) {
	type result struct {
		dev *streamdeck.Device
		err error
	}
	ch := make(chan result, 1)

	go func() {
		dev, err := streamdeck.GetDevice(serial)
		if err != nil {
			ch <- result{nil, err}
			return
		}
		if err := dev.Open(); err != nil {
			ch <- result{nil, err}
			return
		}
		ch <- result{dev, nil}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("opening stream deck: %w", r.err)
		}
		h := NewHardware(r.dev)
		if !h.GetTouchStripSupported() {
			r.dev.Close()
			return nil, fmt.Errorf("%s: %w", h.GetModelName(), ErrNoTouchStrip)
		}
		return h, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("opening stream deck: timed out after %s", timeout)
	}
}

func (h *HardwareDevice) Open() error  { return h.dev.Open() }
func (h *HardwareDevice) Close() error { return h.dev.Close() }
func (h *HardwareDevice) IsOpen() bool { return h.dev.IsOpen() }

// GetModelName returns the device model name.
func (h *HardwareDevice) GetModelName() string {
	return h.dev.GetModelName()
}

// GetTouchStripSupported returns whether the device has a touch strip.
func (h *HardwareDevice) GetTouchStripSupported() bool {
	return h.dev.GetTouchStripSupported()
}

// GetTouchStripImageRectangle returns the dimensions for the touch strip image.
func (h *HardwareDevice) GetTouchStripImageRectangle() (image.Rectangle, error) {
	return h.dev.GetTouchStripImageRectangle()
}

// SetBrightness sets the device brightness.
func (h *HardwareDevice) SetBrightness(perc byte) error {
	return h.dev.SetBrightness(perc)
}

// SetTouchStripImage sets the touch strip image.
func (h *HardwareDevice) SetTouchStripImage(img image.Image) error {
	return h.dev.SetTouchStripImage(img)
}

// AddTouchStripTouchHandler adds a handler for touch strip touches.
func (h *HardwareDevice) AddTouchStripTouchHandler(fn TouchStripTouchHandler) error {
	return h.dev.AddTouchStripTouchHandler(func(d *streamdeck.Device, t streamdeck.TouchStripTouchType, p image.Point) error {
		return fn(h, TouchStripTouchType(t), p)
	})
}

// AddTouchStripSwipeHandler adds a handler for touch strip swipes.
func (h *HardwareDevice) AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error {
	return h.dev.AddTouchStripSwipeHandler(func(d *streamdeck.Device, origin, destination image.Point) error {
		return fn(h, origin, destination)
	})
}

// Listen starts the device event loop.
func (h *HardwareDevice) Listen(errCh chan error) error {
	return h.dev.Listen(errCh)
}
