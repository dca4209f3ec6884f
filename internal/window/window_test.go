package window

import (
	"math"
	"testing"
)

func TestScaleFactor(t *testing.T) {
	w := New(3, 1.25)
	if w.ID() != 3 {
		t.Fatalf("expected id 3, got %d", w.ID())
	}
	if w.ScaleFactor() != 1.25 {
		t.Fatalf("expected 1.25, got %v", w.ScaleFactor())
	}

	for _, bad := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		w.SetScaleFactor(bad)
		if w.ScaleFactor() != 1 {
			t.Errorf("SetScaleFactor(%v): expected fallback 1, got %v", bad, w.ScaleFactor())
		}
	}

	w.SetScaleFactor(2)
	if w.ScaleFactor() != 2 {
		t.Fatalf("expected 2, got %v", w.ScaleFactor())
	}
	if w.Events() == nil || w.Events().Len() != 0 {
		t.Fatal("expected an empty sink")
	}
}
