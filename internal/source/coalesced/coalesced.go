// Package coalesced turns browser PointerEvents, including the intermediate
// samples the browser coalesces between frames, into raw samples.
package coalesced

import (
	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
)

// Event exposes the PointerEvent attributes the pipeline reads.
type Event interface {
	PointerID() int
	PointerType() string
	IsPrimary() bool

	// OffsetX and OffsetY are relative to the target element, in CSS pixels.
	OffsetX() float64
	OffsetY() float64
	Width() float64
	Height() float64

	Pressure() float64
	TangentialPressure() float64
	TiltX() float64
	TiltY() float64
	Twist() float64

	ShiftKey() bool
	CtrlKey() bool
	AltKey() bool
	MetaKey() bool

	// CoalescedEvents returns the buffered sub-events of a pointermove, or
	// nil when the browser does not support coalescing.
	CoalescedEvents() []Event
}

// domMask lists the fields a PointerEvent always carries.
const domMask = normalize.HasContact | normalize.HasPressure | normalize.HasTangentialPressure |
	normalize.HasTiltX | normalize.HasTiltY | normalize.HasRotation

// Samples expands one notification. Move notifications yield every coalesced
// sub-event in browser order, falling back to the notification itself; Down
// and Up notifications yield exactly one sample.
func Samples(ev Event, phase pointer.Phase) []normalize.Sample {
	if phase == pointer.Move {
		if subs := ev.CoalescedEvents(); len(subs) > 0 {
			out := make([]normalize.Sample, 0, len(subs))
			for _, sub := range subs {
				out = append(out, Sample(sub, phase))
			}
			return out
		}
	}
	return []normalize.Sample{Sample(ev, phase)}
}

// Sample converts a single PointerEvent. An unknown pointerType tag panics.
func Sample(ev Event, phase pointer.Phase) normalize.Sample {
	return normalize.Sample{
		ID:        pointer.ID(ev.PointerID()),
		Type:      pointer.MustParseType(ev.PointerType()),
		Phase:     phase,
		Modifiers: pointer.ModifiersOf(ev.ShiftKey(), ev.CtrlKey(), ev.AltKey(), ev.MetaKey()),
		Primary:   ev.IsPrimary(),
		X:         ev.OffsetX(),
		Y:         ev.OffsetY(),
		Mask:      domMask,
		Contact: normalize.Rect{
			Right:  ev.Width(),
			Bottom: ev.Height(),
		},
		Pressure:           ev.Pressure(),
		PressureRange:      normalize.UnitPressureRange,
		TangentialPressure: ev.TangentialPressure(),
		TiltX:              ev.TiltX(),
		TiltY:              ev.TiltY(),
		Rotation:           ev.Twist(),
	}
}
