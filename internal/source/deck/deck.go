// Package deck converts Stream Deck touch strip gestures into raw samples.
//
// The strip reports completed gestures rather than live contacts, so each
// gesture expands into a full Down..Up lifecycle.
package deck

import (
	"image"

	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
)

// StripID is the pointer ID used for strip contacts. The strip is single
// touch, so one ID is enough.
const StripID pointer.ID = 1

// Tap expands a tap at p into Down and Up.
func Tap(p image.Point) []normalize.Sample {
	return []normalize.Sample{
		sample(p, pointer.Down),
		sample(p, pointer.Up),
	}
}

// Swipe expands a swipe into Down at origin, then Move and Up at destination.
func Swipe(origin, destination image.Point) []normalize.Sample {
	return []normalize.Sample{
		sample(origin, pointer.Down),
		sample(destination, pointer.Move),
		sample(destination, pointer.Up),
	}
}

func sample(p image.Point, phase pointer.Phase) normalize.Sample {
	return normalize.Sample{
		ID:      StripID,
		Type:    pointer.Touch,
		Phase:   phase,
		Primary: true,
		X:       float64(p.X),
		Y:       float64(p.Y),
	}
}
