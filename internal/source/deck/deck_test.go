package deck

import (
	"image"
	"testing"

	"github.com/phinze/pointerflow/internal/pointer"
)

func TestTap(t *testing.T) {
	got := Tap(image.Pt(120, 40))
	want := []pointer.Phase{pointer.Down, pointer.Up}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i, s := range got {
		if s.Phase != want[i] || s.X != 120 || s.Y != 40 {
			t.Errorf("sample %d: %+v", i, s)
		}
		if s.ID != StripID || s.Type != pointer.Touch || !s.Primary {
			t.Errorf("sample %d has wrong identity: %+v", i, s)
		}
	}
}

func TestSwipe(t *testing.T) {
	got := Swipe(image.Pt(10, 50), image.Pt(700, 60))
	tests := []struct {
		phase pointer.Phase
		x, y  float64
	}{
		{pointer.Down, 10, 50},
		{pointer.Move, 700, 60},
		{pointer.Up, 700, 60},
	}
	if len(got) != len(tests) {
		t.Fatalf("expected %d samples, got %d", len(tests), len(got))
	}
	for i, tt := range tests {
		s := got[i]
		if s.Phase != tt.phase || s.X != tt.x || s.Y != tt.y {
			t.Errorf("sample %d: got %v at (%v,%v), want %v at (%v,%v)", i, s.Phase, s.X, s.Y, tt.phase, tt.x, tt.y)
		}
	}
}
