//go:build windows

package binding

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/source/history"
	"github.com/phinze/pointerflow/internal/window"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procGetKeyState    = user32.NewProc("GetKeyState")
	procScreenToClient = user32.NewProc("ScreenToClient")
)

const (
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
	vkRWin    = 0x5C
)

// Win32 handles pointer messages for one window procedure.
type Win32 struct {
	history *History
}

// NewWin32 binds w to the user32 pointer history API.
func NewWin32(w *window.Window) *Win32 {
	b := New(w, screenSpace{w})
	return &Win32{history: NewHistory(b, history.User32{})}
}

// HandleMessage processes WM_POINTERDOWN, WM_POINTERUPDATE and WM_POINTERUP
// and reports whether msg was one of them. Other messages are left to the
// caller's default handling.
func (h *Win32) HandleMessage(hwnd windows.HWND, msg uint32, wParam, lParam uintptr) bool {
	phase, ok := PhaseForMessage(msg)
	if !ok {
		return false
	}
	h.history.Handle(PointerIDFromWParam(wParam), phase, keyboardModifiers())
	return true
}

func keyboardModifiers() pointer.Modifiers {
	return pointer.ModifiersOf(
		keyDown(vkShift),
		keyDown(vkControl),
		keyDown(vkMenu),
		keyDown(vkLWin) || keyDown(vkRWin),
	)
}

func keyDown(vk uintptr) bool {
	r, _, _ := procGetKeyState.Call(vk)
	return int16(r) < 0
}

// screenSpace converts screen pixels to the target window's client area.
type screenSpace struct {
	w *window.Window
}

func (s screenSpace) ScaleFactor() float64 { return s.w.ScaleFactor() }

// ToClient panics when the conversion fails; a pointer message for a window
// that cannot map its own coordinates is unrecoverable.
func (s screenSpace) ToClient(target uintptr, x, y float64) (float64, float64) {
	pt := history.Point{X: int32(x), Y: int32(y)}
	r, _, err := procScreenToClient.Call(target, uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		panic(fmt.Sprintf("ScreenToClient(%#x): %v", target, err))
	}
	return float64(pt.X), float64(pt.Y)
}
