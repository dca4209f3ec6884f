// Package normalize converts raw platform pointer samples into canonical
// pointer events.
package normalize

import (
	"math"

	"github.com/phinze/pointerflow/internal/pointer"
)

// Mask records which optional fields a sample actually measured.
type Mask uint16

const (
	HasContact Mask = 1 << iota
	HasPressure
	HasTangentialPressure
	HasTiltX
	HasTiltY
	HasRotation
)

// Unit conversion constants.
const (
	// PressureRange is the full-scale pressure reported by native pen and
	// touch digitizers.
	PressureRange = 1024.0
	// UnitPressureRange is used by sources that already report 0..1.
	UnitPressureRange = 1.0

	tiltRange = 90.0
	fullTurn  = 360.0
)

// Rect is a pixel rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Sample is one raw sample as a platform source reported it. The Phase field
// is set by the adapter for the native callback the sample came from.
type Sample struct {
	ID        pointer.ID
	Type      pointer.Type
	Phase     pointer.Phase
	Modifiers pointer.Modifiers
	Primary   bool

	// Target is the native surface the location is relative to. Its meaning
	// is owned by the Space used to normalize the sample.
	Target uintptr
	X, Y   float64

	Mask    Mask
	Contact Rect

	// Pressure is in device units out of PressureRange.
	Pressure      float64
	PressureRange float64

	TangentialPressure float64

	// TiltX, TiltY and Rotation are in degrees.
	TiltX, TiltY float64
	Rotation     float64
}

// Space converts sample locations into the window's client area and supplies
// the window scale factor.
type Space interface {
	ScaleFactor() float64
	ToClient(target uintptr, x, y float64) (float64, float64)
}

// ClientSpace is a Space for samples already relative to the client area.
type ClientSpace float64

// ScaleFactor returns the scale factor.
func (s ClientSpace) ScaleFactor() float64 { return float64(s) }

// ToClient returns the location unchanged.
func (ClientSpace) ToClient(_ uintptr, x, y float64) (float64, float64) { return x, y }

// Normalize builds the canonical event for s. Fields whose flag is missing
// from s.Mask take their zero default. The button is never reported.
func Normalize(s Sample, sp Space) pointer.Event {
	cx, cy := sp.ToClient(s.Target, s.X, s.Y)

	ev := pointer.Event{
		ID:        s.ID,
		Position:  pointer.FromPhysical(cx, cy, sp.ScaleFactor()),
		Modifiers: s.Modifiers,
		Phase:     s.Phase,
		Primary:   s.Primary,
		Type:      s.Type,
		Button:    pointer.NoButton,
	}

	if s.Mask&HasContact != 0 {
		ev.Size = pointer.LogicalSize{
			Width:  math.Abs(s.Contact.Right - s.Contact.Left),
			Height: math.Abs(s.Contact.Top - s.Contact.Bottom),
		}
	}
	if s.Mask&HasPressure != 0 {
		ev.Pressure = Pressure(s.Pressure, s.PressureRange)
	}
	if s.Mask&HasTangentialPressure != 0 {
		ev.TangentialPressure = s.TangentialPressure
	}
	if s.Mask&HasTiltX != 0 {
		ev.TiltX = Tilt(s.TiltX)
	}
	if s.Mask&HasTiltY != 0 {
		ev.TiltY = Tilt(s.TiltY)
	}
	if s.Mask&HasRotation != 0 {
		ev.Twist = Twist(s.Rotation)
	}
	return ev
}

// Pressure scales a raw pressure reading. A zero range means PressureRange.
func Pressure(raw, full float64) float64 {
	if full == 0 {
		full = PressureRange
	}
	return raw / full
}

// Tilt maps degrees onto roughly -1..1.
func Tilt(deg float64) float64 {
	return deg / tiltRange
}

// Twist converts a 0..360 degree rotation to radians.
func Twist(deg float64) float64 {
	return deg / fullTurn * (2 * math.Pi)
}

// DegreesFromTwist is the inverse of Twist.
func DegreesFromTwist(rad float64) float64 {
	return rad / (2 * math.Pi) * fullTurn
}
