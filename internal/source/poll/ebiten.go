package poll

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phinze/pointerflow/internal/pointer"
)

// EbitenState reads the current frame's input from ebiten. It must only be
// used from the game's Update method.
type EbitenState struct {
	ids []ebiten.TouchID
}

var _ State = (*EbitenState)(nil)

// TouchIDs returns the active touch IDs.
func (s *EbitenState) TouchIDs() []int {
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	out := make([]int, len(s.ids))
	for i, id := range s.ids {
		out[i] = int(id)
	}
	return out
}

// TouchPosition returns the position of touch id.
func (s *EbitenState) TouchPosition(id int) (int, int) {
	return ebiten.TouchPosition(ebiten.TouchID(id))
}

// CursorPosition returns the mouse cursor position.
func (s *EbitenState) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// MousePressed reports whether the left mouse button is held.
func (s *EbitenState) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Modifiers returns the held keyboard modifiers.
func (s *EbitenState) Modifiers() pointer.Modifiers {
	return pointer.ModifiersOf(
		ebiten.IsKeyPressed(ebiten.KeyShift),
		ebiten.IsKeyPressed(ebiten.KeyControl),
		ebiten.IsKeyPressed(ebiten.KeyAlt),
		ebiten.IsKeyPressed(ebiten.KeyMeta),
	)
}
