package coordinator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/sink"
)

type collector struct {
	id string

	mu     sync.Mutex
	events []pointer.WindowEvent
	err    error
}

func (c *collector) ID() string { return c.id }

func (c *collector) Consume(evs []pointer.WindowEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evs...)
	return c.err
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func moves(n int) []pointer.WindowEvent {
	out := make([]pointer.WindowEvent, n)
	for i := range out {
		out[i] = pointer.WindowEvent{Window: 1, Pointer: pointer.Event{
			ID:       1,
			Phase:    pointer.Move,
			Position: pointer.LogicalPosition{X: float64(i)},
		}}
	}
	return out
}

func TestFanOutPreservesOrder(t *testing.T) {
	s := sink.New()
	c := New(s, nil, time.Hour)
	a, b := &collector{id: "a"}, &collector{id: "b", err: errors.New("disk full")}
	c.Register(a)
	c.Register(b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	if err := s.AppendAll(moves(3)); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendAll(moves(2)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return a.count() == 5 && b.count() == 5 })
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []float64{0, 1, 2, 0, 1}
	for i, ev := range a.events {
		if ev.Pointer.Position.X != want[i] {
			t.Errorf("event %d: x=%v, want %v", i, ev.Pointer.Position.X, want[i])
		}
	}
}

func TestStopFlushesQueuedEvents(t *testing.T) {
	s := sink.New()
	c := New(s, nil, time.Hour)
	con := &collector{id: "c"}
	c.Register(con)

	s.AppendAll(moves(4))
	if err := c.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if con.count() != 4 {
		t.Fatalf("expected 4 flushed events, got %d", con.count())
	}
}

type poisonedSource struct {
	ready chan struct{}
}

func (p poisonedSource) Ready() <-chan struct{} { return p.ready }

func (poisonedSource) Drain() ([]pointer.WindowEvent, error) {
	return nil, sink.ErrPoisoned
}

func TestPoisonedSinkEndsStart(t *testing.T) {
	src := poisonedSource{ready: make(chan struct{}, 1)}
	src.ready <- struct{}{}
	c := New(src, nil, time.Hour)

	err := c.Start(context.Background())
	if !errors.Is(err, sink.ErrPoisoned) {
		t.Fatalf("expected ErrPoisoned, got %v", err)
	}
	c.Stop()
}

func TestRegisterRejectsNil(t *testing.T) {
	c := New(sink.New(), nil, 0)
	if err := c.Register(nil); err == nil {
		t.Fatal("expected error for nil consumer")
	}
	if c.interval != DefaultDrainInterval {
		t.Fatalf("expected default interval, got %v", c.interval)
	}
}

type stripPainter struct {
	collector
}

func (p *stripPainter) RenderStrip(rect image.Rectangle) image.Image {
	return image.NewUniform(color.RGBA{G: 255, A: 255})
}

func TestDeviceStripRendering(t *testing.T) {
	dev := device.NewVirtual()
	if err := dev.Open(); err != nil {
		t.Fatal(err)
	}
	c := New(sink.New(), dev, time.Hour)
	c.Register(&stripPainter{collector{id: "strip"}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	waitFor(t, func() bool { return dev.StripImage().RGBAAt(10, 10).G == 255 })

	cancel()
	<-done
	c.Stop()
	dev.Close()
}

func TestDeviceCloseEndsStart(t *testing.T) {
	dev := device.NewVirtual()
	dev.Open()
	c := New(sink.New(), dev, time.Hour)

	done := make(chan error, 1)
	go func() { done <- c.Start(context.Background()) }()

	// Give Listen a moment to block before closing the device.
	waitFor(t, func() bool { return dev.IsOpen() })
	time.Sleep(10 * time.Millisecond)
	dev.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error when the listener stops")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("start did not return after device close")
	}
	c.Stop()
}
