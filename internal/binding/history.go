package binding

import (
	"github.com/kataras/golog"

	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/source/history"
)

// Pointer window messages.
const (
	WMPointerUpdate = 0x0245
	WMPointerDown   = 0x0246
	WMPointerUp     = 0x0247
)

// PhaseForMessage maps a pointer window message to its phase.
func PhaseForMessage(msg uint32) (pointer.Phase, bool) {
	switch msg {
	case WMPointerDown:
		return pointer.Down, true
	case WMPointerUpdate:
		return pointer.Move, true
	case WMPointerUp:
		return pointer.Up, true
	}
	return 0, false
}

// PointerIDFromWParam extracts the pointer ID from the low word of wParam.
func PointerIDFromWParam(wParam uintptr) pointer.ID {
	return pointer.ID(wParam & 0xffff)
}

// History delivers the buffered history of a pointer on every notification.
type History struct {
	binding *Binding
	reader  *history.Reader
	log     *golog.Logger
}

// NewHistory returns a history handler reading from api.
func NewHistory(b *Binding, api history.API) *History {
	return &History{binding: b, reader: history.NewReader(api), log: logging.For("history")}
}

// Handle delivers every sample buffered for id. A failed native query drops
// the notification.
func (h *History) Handle(id pointer.ID, phase pointer.Phase, mods pointer.Modifiers) {
	samples, err := h.reader.Samples(id, phase, mods)
	if err != nil {
		h.log.Errorf("window %d: %v", h.binding.Window().ID(), err)
		return
	}
	h.binding.Deliver(samples)
}

