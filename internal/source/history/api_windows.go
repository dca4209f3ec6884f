//go:build windows

package history

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procGetPointerType             = user32.NewProc("GetPointerType")
	procGetPointerInfoHistory      = user32.NewProc("GetPointerInfoHistory")
	procGetPointerTouchInfoHistory = user32.NewProc("GetPointerTouchInfoHistory")
	procGetPointerPenInfoHistory   = user32.NewProc("GetPointerPenInfoHistory")
)

// User32 is the API implemented by the Windows pointer functions.
type User32 struct{}

var _ API = User32{}

// PointerType calls GetPointerType.
func (User32) PointerType(id uint32) (InputType, error) {
	var typ InputType
	r, _, err := procGetPointerType.Call(uintptr(id), uintptr(unsafe.Pointer(&typ)))
	if r == 0 {
		return 0, callError("GetPointerType", err)
	}
	return typ, nil
}

// PointerInfoHistory calls GetPointerInfoHistory.
func (User32) PointerInfoHistory(id uint32, count *uint32, buf []PointerInfo) error {
	return historyCall(procGetPointerInfoHistory, id, count, bufPtr(buf))
}

// TouchInfoHistory calls GetPointerTouchInfoHistory.
func (User32) TouchInfoHistory(id uint32, count *uint32, buf []TouchInfo) error {
	return historyCall(procGetPointerTouchInfoHistory, id, count, bufPtr(buf))
}

// PenInfoHistory calls GetPointerPenInfoHistory.
func (User32) PenInfoHistory(id uint32, count *uint32, buf []PenInfo) error {
	return historyCall(procGetPointerPenInfoHistory, id, count, bufPtr(buf))
}

func bufPtr[T any](buf []T) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}

func historyCall(proc *windows.LazyProc, id uint32, count *uint32, buf unsafe.Pointer) error {
	if buf != nil && *count == 0 {
		return errors.New("history buffer with zero capacity")
	}
	r, _, err := proc.Call(uintptr(id), uintptr(unsafe.Pointer(count)), uintptr(buf))
	if r == 0 {
		// A size query may report failure while still writing the count.
		if buf == nil && *count > 0 {
			return nil
		}
		return callError(proc.Name, err)
	}
	return nil
}

func callError(name string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return fmt.Errorf("%s: %w", name, errno)
	}
	return fmt.Errorf("%s failed", name)
}
