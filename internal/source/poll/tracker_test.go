package poll

import (
	"testing"

	"github.com/phinze/pointerflow/internal/normalize"
	"github.com/phinze/pointerflow/internal/pointer"
)

type fakeState struct {
	touches map[int]position
	ids     []int
	cursor  position
	pressed bool
	mods    pointer.Modifiers
}

func (s *fakeState) TouchIDs() []int                 { return s.ids }
func (s *fakeState) TouchPosition(id int) (int, int) { p := s.touches[id]; return p.x, p.y }
func (s *fakeState) CursorPosition() (int, int)      { return s.cursor.x, s.cursor.y }
func (s *fakeState) MousePressed() bool              { return s.pressed }
func (s *fakeState) Modifiers() pointer.Modifiers    { return s.mods }

func (s *fakeState) touch(id, x, y int) {
	if s.touches == nil {
		s.touches = make(map[int]position)
	}
	if _, ok := s.touches[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.touches[id] = position{x, y}
}

func (s *fakeState) release(id int) {
	delete(s.touches, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

type step struct {
	id    pointer.ID
	phase pointer.Phase
	x, y  float64
}

func steps(samples []normalize.Sample) []step {
	out := make([]step, len(samples))
	for i, s := range samples {
		out[i] = step{s.ID, s.Phase, s.X, s.Y}
	}
	return out
}

func expectSteps(t *testing.T, got []normalize.Sample, want ...step) {
	t.Helper()
	g := steps(got)
	if len(g) != len(want) {
		t.Fatalf("expected %d samples, got %d: %+v", len(want), len(g), g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Errorf("sample %d: got %+v, want %+v", i, g[i], want[i])
		}
	}
}

func TestTouchLifecycle(t *testing.T) {
	tr := NewTracker()
	st := &fakeState{}

	// First frame establishes the mouse position without emitting anything.
	expectSteps(t, tr.Poll(st))

	id := TouchIDBase + 7
	st.touch(7, 10, 20)
	expectSteps(t, tr.Poll(st), step{id, pointer.Down, 10, 20})

	expectSteps(t, tr.Poll(st))

	st.touch(7, 15, 25)
	expectSteps(t, tr.Poll(st), step{id, pointer.Move, 15, 25})

	st.release(7)
	expectSteps(t, tr.Poll(st), step{id, pointer.Up, 15, 25})

	expectSteps(t, tr.Poll(st))
}

func TestFirstTouchIsPrimary(t *testing.T) {
	tr := NewTracker()
	st := &fakeState{}
	tr.Poll(st)

	st.touch(2, 0, 0)
	st.touch(1, 5, 5)
	got := tr.Poll(st)
	if len(got) != 2 {
		t.Fatalf("expected 2 downs, got %d", len(got))
	}
	// New touches arrive sorted by ID; the lowest becomes primary.
	if !got[0].Primary || got[0].ID != TouchIDBase+1 {
		t.Errorf("expected touch 1 primary, got %+v", got[0])
	}
	if got[1].Primary {
		t.Errorf("expected touch 2 non-primary, got %+v", got[1])
	}

	st.touch(2, 1, 1)
	got = tr.Poll(st)
	if len(got) != 1 || got[0].Primary {
		t.Fatalf("expected a non-primary move for touch 2, got %+v", got)
	}
}

func TestReleaseOrderedBeforeDown(t *testing.T) {
	tr := NewTracker()
	st := &fakeState{}
	tr.Poll(st)

	st.touch(1, 0, 0)
	tr.Poll(st)

	st.release(1)
	st.touch(2, 3, 3)
	expectSteps(t, tr.Poll(st),
		step{TouchIDBase + 1, pointer.Up, 0, 0},
		step{TouchIDBase + 2, pointer.Down, 3, 3},
	)
}

func TestMouseLifecycle(t *testing.T) {
	tr := NewTracker()
	st := &fakeState{cursor: position{1, 1}}
	expectSteps(t, tr.Poll(st))

	st.cursor = position{4, 4}
	expectSteps(t, tr.Poll(st), step{MouseID, pointer.Move, 4, 4})

	st.pressed = true
	expectSteps(t, tr.Poll(st), step{MouseID, pointer.Down, 4, 4})

	st.cursor = position{6, 4}
	expectSteps(t, tr.Poll(st), step{MouseID, pointer.Move, 6, 4})

	st.cursor = position{8, 4}
	st.pressed = false
	expectSteps(t, tr.Poll(st),
		step{MouseID, pointer.Move, 8, 4},
		step{MouseID, pointer.Up, 8, 4},
	)
}

func TestMouseSamplesCarryTypeAndModifiers(t *testing.T) {
	tr := NewTracker()
	st := &fakeState{mods: pointer.ModCtrl}
	tr.Poll(st)

	st.pressed = true
	got := tr.Poll(st)
	if len(got) != 1 {
		t.Fatalf("expected one sample, got %d", len(got))
	}
	s := got[0]
	if s.Type != pointer.Mouse || !s.Primary || s.Modifiers != pointer.ModCtrl {
		t.Fatalf("unexpected mouse sample %+v", s)
	}
}
