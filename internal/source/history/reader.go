// Package history reads buffered pointer samples from a history-based native
// pointer API (the Win32 GetPointer*InfoHistory family).
package history

import (
	"fmt"
	"slices"

	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
)

// API is the native surface the reader needs. The *History calls follow the
// count-then-fill convention: called with a nil buffer they store the number
// of buffered entries in count; called with a buffer they fill at most
// len(buf) entries and store the number actually written in count.
type API interface {
	PointerType(id uint32) (InputType, error)
	PointerInfoHistory(id uint32, count *uint32, buf []PointerInfo) error
	TouchInfoHistory(id uint32, count *uint32, buf []TouchInfo) error
	PenInfoHistory(id uint32, count *uint32, buf []PenInfo) error
}

// Reader expands one pointer notification into every sample buffered for
// that pointer since the previous notification.
type Reader struct {
	api API
}

// NewReader returns a reader backed by api.
func NewReader(api API) *Reader {
	return &Reader{api: api}
}

// Samples returns the buffered samples for pointer id, oldest first, each
// tagged with phase and mods. An empty history yields an empty slice.
//
// Touchpad pointers are not implemented and panic. A generic or unknown
// pointer type means the native side broke its contract and also panics.
func (r *Reader) Samples(id pointer.ID, phase pointer.Phase, mods pointer.Modifiers) ([]normalize.Sample, error) {
	typ, err := r.api.PointerType(uint32(id))
	if err != nil {
		return nil, fmt.Errorf("get pointer type for %d: %w", id, err)
	}

	var samples []normalize.Sample
	switch typ {
	case TypeTouch:
		infos, err := fetch(uint32(id), r.api.TouchInfoHistory)
		if err != nil {
			return nil, fmt.Errorf("touch history for %d: %w", id, err)
		}
		samples = make([]normalize.Sample, 0, len(infos))
		for _, ti := range infos {
			samples = append(samples, touchSample(ti))
		}
	case TypePen:
		infos, err := fetch(uint32(id), r.api.PenInfoHistory)
		if err != nil {
			return nil, fmt.Errorf("pen history for %d: %w", id, err)
		}
		samples = make([]normalize.Sample, 0, len(infos))
		for _, pi := range infos {
			samples = append(samples, penSample(pi))
		}
	case TypeMouse:
		infos, err := fetch(uint32(id), r.api.PointerInfoHistory)
		if err != nil {
			return nil, fmt.Errorf("pointer history for %d: %w", id, err)
		}
		samples = make([]normalize.Sample, 0, len(infos))
		for _, pi := range infos {
			samples = append(samples, mouseSample(pi))
		}
	case TypeTouchpad:
		panic("history: touchpad pointers are not implemented")
	case TypePointer:
		panic("history: generic pointer type cannot appear in a pointer message")
	default:
		panic(fmt.Sprintf("history: unknown pointer input type %d", typ))
	}

	// The native history lists the newest entry first.
	slices.Reverse(samples)
	for i := range samples {
		samples[i].ID = id
		samples[i].Phase = phase
		samples[i].Modifiers = mods
	}
	return samples, nil
}

// fetch runs the two-call history query. The count written by the second
// call is authoritative and bounds the usable prefix of the buffer.
func fetch[T any](id uint32, query func(uint32, *uint32, []T) error) ([]T, error) {
	var count uint32
	if err := query(id, &count, nil); err != nil {
		return nil, fmt.Errorf("query entry count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	buf := make([]T, count)
	filled := count
	if err := query(id, &filled, buf); err != nil {
		return nil, fmt.Errorf("fill %d entries: %w", count, err)
	}
	if int(filled) < len(buf) {
		buf = buf[:filled]
	}
	return buf, nil
}

func baseSample(pi PointerInfo, typ pointer.Type) normalize.Sample {
	return normalize.Sample{
		Type:   typ,
		Target: pi.HwndTarget,
		X:      float64(pi.PixelLocation.X),
		Y:      float64(pi.PixelLocation.Y),
		// History queries do not surface the primary flag.
		Primary:       false,
		PressureRange: normalize.PressureRange,
	}
}

func touchSample(ti TouchInfo) normalize.Sample {
	s := baseSample(ti.PointerInfo, pointer.Touch)
	if ti.TouchMask&TouchMaskContactArea != 0 {
		s.Mask |= normalize.HasContact
		s.Contact = normalize.Rect{
			Left:   float64(ti.Contact.Left),
			Top:    float64(ti.Contact.Top),
			Right:  float64(ti.Contact.Right),
			Bottom: float64(ti.Contact.Bottom),
		}
	}
	if ti.TouchMask&TouchMaskPressure != 0 {
		s.Mask |= normalize.HasPressure
		s.Pressure = float64(ti.Pressure)
	}
	if ti.TouchMask&TouchMaskOrientation != 0 {
		s.Mask |= normalize.HasRotation
		s.Rotation = float64(ti.Orientation)
	}
	return s
}

func penSample(pi PenInfo) normalize.Sample {
	s := baseSample(pi.PointerInfo, pointer.Pen)
	if pi.PenMask&PenMaskPressure != 0 {
		s.Mask |= normalize.HasPressure
		s.Pressure = float64(pi.Pressure)
	}
	if pi.PenMask&PenMaskTiltX != 0 {
		s.Mask |= normalize.HasTiltX
		s.TiltX = float64(pi.TiltX)
	}
	if pi.PenMask&PenMaskTiltY != 0 {
		s.Mask |= normalize.HasTiltY
		s.TiltY = float64(pi.TiltY)
	}
	if pi.PenMask&PenMaskRotation != 0 {
		s.Mask |= normalize.HasRotation
		s.Rotation = float64(pi.Rotation)
	}
	return s
}

func mouseSample(pi PointerInfo) normalize.Sample {
	return baseSample(pi, pointer.Mouse)
}
