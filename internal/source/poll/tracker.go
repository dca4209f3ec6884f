// Package poll derives pointer samples from frame-polled input state, as
// exposed by game-loop style windowing libraries.
package poll

import (
	"slices"

	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
)

const (
	// MouseID is the pointer ID reported for the mouse.
	MouseID pointer.ID = 1
	// TouchIDBase offsets touch IDs so they never collide with MouseID.
	TouchIDBase pointer.ID = 0x100
)

// State is a snapshot view of the current frame's input.
type State interface {
	// TouchIDs returns the active touch IDs.
	TouchIDs() []int
	// TouchPosition returns a touch location in client pixels.
	TouchPosition(id int) (int, int)
	// CursorPosition returns the mouse location in client pixels.
	CursorPosition() (int, int)
	MousePressed() bool
	Modifiers() pointer.Modifiers
}

type position struct {
	x, y int
}

// Tracker diffs consecutive frames into Down, Move and Up samples.
type Tracker struct {
	touches map[int]position
	// order keeps touch IDs in arrival order so the first one is primary.
	order []int

	mouseSeen    bool
	mousePos     position
	mousePressed bool
}

// NewTracker returns a tracker with no active pointers.
func NewTracker() *Tracker {
	return &Tracker{touches: make(map[int]position)}
}

// Poll compares st against the previous frame and returns the samples that
// describe the difference, in a stable order: released touches, then
// existing touches, then new touches, then the mouse.
func (t *Tracker) Poll(st State) []normalize.Sample {
	mods := st.Modifiers()
	var out []normalize.Sample

	current := make(map[int]position)
	for _, id := range st.TouchIDs() {
		x, y := st.TouchPosition(id)
		current[id] = position{x, y}
	}

	primary := -1
	if len(t.order) > 0 {
		primary = t.order[0]
	}

	kept := t.order[:0]
	for _, id := range t.order {
		last := t.touches[id]
		now, ok := current[id]
		if !ok {
			out = append(out, touchSample(id, last, pointer.Up, mods, id == primary))
			delete(t.touches, id)
			continue
		}
		kept = append(kept, id)
		if now != last {
			out = append(out, touchSample(id, now, pointer.Move, mods, id == primary))
			t.touches[id] = now
		}
	}
	t.order = kept

	var added []int
	for id := range current {
		if _, ok := t.touches[id]; !ok {
			added = append(added, id)
		}
	}
	slices.Sort(added)
	for _, id := range added {
		if len(t.order) == 0 {
			primary = id
		}
		t.order = append(t.order, id)
		t.touches[id] = current[id]
		out = append(out, touchSample(id, current[id], pointer.Down, mods, id == primary))
	}

	out = append(out, t.pollMouse(st, mods)...)
	return out
}

func (t *Tracker) pollMouse(st State, mods pointer.Modifiers) []normalize.Sample {
	x, y := st.CursorPosition()
	now := position{x, y}
	pressed := st.MousePressed()

	var out []normalize.Sample
	moved := !t.mouseSeen || now != t.mousePos
	switch {
	case pressed && !t.mousePressed:
		if moved && t.mouseSeen {
			out = append(out, mouseSample(now, pointer.Move, mods))
		}
		out = append(out, mouseSample(now, pointer.Down, mods))
	case !pressed && t.mousePressed:
		if moved {
			out = append(out, mouseSample(now, pointer.Move, mods))
		}
		out = append(out, mouseSample(now, pointer.Up, mods))
	case moved && t.mouseSeen:
		out = append(out, mouseSample(now, pointer.Move, mods))
	}

	t.mouseSeen = true
	t.mousePos = now
	t.mousePressed = pressed
	return out
}

func touchSample(id int, p position, phase pointer.Phase, mods pointer.Modifiers, primary bool) normalize.Sample {
	return normalize.Sample{
		ID:        TouchIDBase + pointer.ID(id),
		Type:      pointer.Touch,
		Phase:     phase,
		Modifiers: mods,
		Primary:   primary,
		X:         float64(p.x),
		Y:         float64(p.y),
	}
}

func mouseSample(p position, phase pointer.Phase, mods pointer.Modifiers) normalize.Sample {
	return normalize.Sample{
		ID:        MouseID,
		Type:      pointer.Mouse,
		Phase:     phase,
		Modifiers: mods,
		Primary:   true,
		X:         float64(p.x),
		Y:         float64(p.y),
	}
}
