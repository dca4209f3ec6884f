package sink

import (
	"errors"
	"sync"
	"testing"

	"github.com/phinze/pointerflow/internal/pointer"
)

func ev(id pointer.ID, phase pointer.Phase) pointer.WindowEvent {
	return pointer.WindowEvent{Window: 1, Pointer: pointer.Event{ID: id, Phase: phase}}
}

func TestAppendDrainPreservesOrder(t *testing.T) {
	s := New()
	if err := s.Append(ev(1, pointer.Down)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendAll([]pointer.WindowEvent{ev(1, pointer.Move), ev(1, pointer.Move), ev(1, pointer.Up)}); err != nil {
		t.Fatalf("append all: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 queued, got %d", s.Len())
	}

	got, err := s.Drain()
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	want := []pointer.Phase{pointer.Down, pointer.Move, pointer.Move, pointer.Up}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, p := range want {
		if got[i].Pointer.Phase != p {
			t.Errorf("event %d: expected %v, got %v", i, p, got[i].Pointer.Phase)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty sink after drain, got %d", s.Len())
	}
}

func TestPop(t *testing.T) {
	s := New()
	if _, ok, err := s.Pop(); ok || err != nil {
		t.Fatalf("pop on empty sink: ok=%v err=%v", ok, err)
	}
	s.Append(ev(1, pointer.Down))
	s.Append(ev(2, pointer.Down))

	first, ok, err := s.Pop()
	if !ok || err != nil || first.Pointer.ID != 1 {
		t.Fatalf("expected pointer 1 first, got %+v ok=%v err=%v", first, ok, err)
	}
	second, ok, _ := s.Pop()
	if !ok || second.Pointer.ID != 2 {
		t.Fatalf("expected pointer 2 second, got %+v", second)
	}
}

func TestAppendAllEmptyDoesNotSignal(t *testing.T) {
	s := New()
	if err := s.AppendAll(nil); err != nil {
		t.Fatalf("append nil: %v", err)
	}
	select {
	case <-s.Ready():
		t.Fatal("empty append should not signal readiness")
	default:
	}
}

func TestReadySignalsAfterAppend(t *testing.T) {
	s := New()
	s.Append(ev(1, pointer.Down))
	s.Append(ev(1, pointer.Up))
	select {
	case <-s.Ready():
	default:
		t.Fatal("expected ready signal")
	}
}

func TestPanicPoisonsSink(t *testing.T) {
	s := New()
	s.Append(ev(1, pointer.Down))

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		s.locked(func() { panic("producer crashed") })
	}()

	if err := s.Append(ev(1, pointer.Up)); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("append after poison: expected ErrPoisoned, got %v", err)
	}
	if _, err := s.Drain(); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("drain after poison: expected ErrPoisoned, got %v", err)
	}
	if _, _, err := s.Pop(); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("pop after poison: expected ErrPoisoned, got %v", err)
	}
}

func TestConcurrentAppendAndDrainConservesEvents(t *testing.T) {
	const (
		producers   = 2
		perProducer = 5000
	)
	s := New()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id pointer.ID) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				batch := []pointer.WindowEvent{ev(id, pointer.Move), ev(id, pointer.Move)}
				batch[0].Pointer.Position.X = float64(2 * i)
				batch[1].Pointer.Position.X = float64(2*i + 1)
				if err := s.AppendAll(batch); err != nil {
					t.Errorf("append: %v", err)
					return
				}
			}
		}(pointer.ID(p + 1))
	}

	done := make(chan struct{})
	finished := stopped(&wg)
	var drained []pointer.WindowEvent
	go func() {
		defer close(done)
		for {
			select {
			case <-s.Ready():
			case <-finished:
				rest, _ := s.Drain()
				drained = append(drained, rest...)
				return
			}
			batch, err := s.Drain()
			if err != nil {
				t.Errorf("drain: %v", err)
				return
			}
			drained = append(drained, batch...)
		}
	}()
	<-done

	if len(drained) != producers*perProducer*2 {
		t.Fatalf("expected %d events, got %d", producers*perProducer*2, len(drained))
	}

	// Per producer, positions must come out strictly increasing with no gaps.
	next := map[pointer.ID]float64{}
	for _, e := range drained {
		id := e.Pointer.ID
		if e.Pointer.Position.X != next[id] {
			t.Fatalf("pointer %d: expected position %v, got %v", id, next[id], e.Pointer.Position.X)
		}
		next[id]++
	}
}

// stopped returns a channel closed once wg reaches zero.
func stopped(wg *sync.WaitGroup) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()
	return ch
}
