//go:build js && wasm

package binding

import (
	"syscall/js"

	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/source/coalesced"
	"github.com/phinze/pointerflow/internal/window"
)

var domPhases = []struct {
	event string
	phase pointer.Phase
}{
	{"pointerdown", pointer.Down},
	{"pointermove", pointer.Move},
	{"pointerup", pointer.Up},
}

// RegisterDOM listens for pointer events on target and delivers them into w.
// The returned func removes the listeners and releases their callbacks.
func RegisterDOM(target js.Value, w *window.Window) (release func()) {
	b := New(w, cssSpace{w})

	funcs := make([]js.Func, len(domPhases))
	for i, p := range domPhases {
		funcs[i] = js.FuncOf(func(this js.Value, args []js.Value) any {
			b.Deliver(coalesced.Samples(coalesced.Wrap(args[0]), p.phase))
			return nil
		})
		target.Call("addEventListener", p.event, funcs[i])
	}

	return func() {
		for i, p := range domPhases {
			target.Call("removeEventListener", p.event, funcs[i])
			funcs[i].Release()
		}
	}
}

// cssSpace maps CSS pixel offsets onto device pixels so normalizing by the
// window's devicePixelRatio returns them to logical units.
type cssSpace struct {
	w *window.Window
}

func (s cssSpace) ScaleFactor() float64 { return s.w.ScaleFactor() }

func (s cssSpace) ToClient(_ uintptr, x, y float64) (float64, float64) {
	k := s.w.ScaleFactor()
	return x * k, y * k
}
