// Package binding attaches platform pointer sources to a window. Every
// native notification is expanded into samples, normalized and appended to
// the window's sink as one contiguous batch tagged with the window's ID.
package binding

import (
	"github.com/kataras/golog"

	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/window"
)

// Binding delivers samples into one window.
type Binding struct {
	window *window.Window
	space  normalize.Space
	log    *golog.Logger
}

// New returns a binding for w. A nil space means samples are already client
// relative and scaled by the window's current scale factor.
func New(w *window.Window, sp normalize.Space) *Binding {
	if sp == nil {
		sp = WindowSpace{w}
	}
	return &Binding{window: w, space: sp, log: logging.For("binding")}
}

// Window returns the bound window.
func (b *Binding) Window() *window.Window {
	return b.window
}

// Deliver normalizes samples and appends them in order. A poisoned sink is
// unrecoverable and panics after logging.
func (b *Binding) Deliver(samples []normalize.Sample) {
	if len(samples) == 0 {
		return
	}
	id := b.window.ID()
	evs := make([]pointer.WindowEvent, len(samples))
	for i, s := range samples {
		evs[i] = pointer.WindowEvent{Window: id, Pointer: normalize.Normalize(s, b.space)}
	}
	if err := b.window.Events().AppendAll(evs); err != nil {
		b.log.Errorf("window %d: dropping %d events: %v", id, len(evs), err)
		panic(err)
	}
}

// WindowSpace treats sample locations as client pixels and reads the scale
// factor from the window on every call, so DPI changes apply immediately.
type WindowSpace struct {
	W *window.Window
}

func (s WindowSpace) ScaleFactor() float64 { return s.W.ScaleFactor() }

func (WindowSpace) ToClient(_ uintptr, x, y float64) (float64, float64) { return x, y }
