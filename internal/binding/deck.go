package binding

import (
	"fmt"
	"image"

	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/source/deck"
	"github.com/phinze/pointerflow/internal/window"
)

// RegisterDeck routes touch strip gestures from dev into w. Strip
// coordinates are device pixels at scale 1.
func RegisterDeck(dev device.Device, w *window.Window) error {
	if !dev.GetTouchStripSupported() {
		return fmt.Errorf("%s: %w", dev.GetModelName(), device.ErrNoTouchStrip)
	}
	b := New(w, normalize.ClientSpace(1))

	if err := dev.AddTouchStripTouchHandler(func(_ device.Device, _ device.TouchStripTouchType, p image.Point) error {
		b.Deliver(deck.Tap(p))
		return nil
	}); err != nil {
		return fmt.Errorf("registering touch handler: %w", err)
	}
	if err := dev.AddTouchStripSwipeHandler(func(_ device.Device, origin, destination image.Point) error {
		b.Deliver(deck.Swipe(origin, destination))
		return nil
	}); err != nil {
		return fmt.Errorf("registering swipe handler: %w", err)
	}
	return nil
}
