// Package window holds the per-window context the pointer pipeline needs:
// identity, scale factor and the owned event sink.
package window

import (
	"math"
	"sync/atomic"

	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/sink"
)

// Window is the context shared between a window's bindings and its consumer.
type Window struct {
	id     pointer.WindowID
	scale  atomic.Uint64
	events *sink.Sink
}

// New creates a window context with its own empty sink.
func New(id pointer.WindowID, scale float64) *Window {
	w := &Window{id: id, events: sink.New()}
	w.SetScaleFactor(scale)
	return w
}

// ID returns the window identifier events are tagged with.
func (w *Window) ID() pointer.WindowID {
	return w.id
}

// ScaleFactor returns the current DPI scale factor.
func (w *Window) ScaleFactor() float64 {
	return math.Float64frombits(w.scale.Load())
}

// SetScaleFactor updates the scale factor, e.g. after the window moved to a
// monitor with a different DPI. Non-positive values are stored as 1.
func (w *Window) SetScaleFactor(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	w.scale.Store(math.Float64bits(scale))
}

// Events returns the window's sink.
func (w *Window) Events() *sink.Sink {
	return w.events
}
