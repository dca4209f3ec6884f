package device

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

type recorded struct {
	kind          string
	touch         TouchStripTouchType
	origin, point image.Point
}

func openVirtual(t *testing.T) (*Virtual, *[]recorded) {
	t.Helper()
	v := NewVirtual()
	if err := v.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	var got []recorded
	v.AddTouchStripTouchHandler(func(_ Device, kind TouchStripTouchType, p image.Point) error {
		got = append(got, recorded{kind: "touch", touch: kind, point: p})
		return nil
	})
	v.AddTouchStripSwipeHandler(func(_ Device, o, d image.Point) error {
		got = append(got, recorded{kind: "swipe", origin: o, point: d})
		return nil
	})
	return v, &got
}

func TestVirtualGestures(t *testing.T) {
	t0 := time.Unix(0, 0)
	tests := []struct {
		name     string
		from, to image.Point
		held     time.Duration
		want     recorded
	}{
		{
			name: "short tap",
			from: image.Pt(100, 50), to: image.Pt(105, 52),
			held: 100 * time.Millisecond,
			want: recorded{kind: "touch", touch: TOUCH_STRIP_TOUCH_TYPE_SHORT, point: image.Pt(100, 50)},
		},
		{
			name: "long tap",
			from: image.Pt(10, 10), to: image.Pt(10, 10),
			held: time.Second,
			want: recorded{kind: "touch", touch: TOUCH_STRIP_TOUCH_TYPE_LONG, point: image.Pt(10, 10)},
		},
		{
			name: "swipe",
			from: image.Pt(100, 50), to: image.Pt(300, 50),
			held: 200 * time.Millisecond,
			want: recorded{kind: "swipe", origin: image.Pt(100, 50), point: image.Pt(300, 50)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, got := openVirtual(t)
			v.Press(tt.from, t0)
			v.Release(tt.to, t0.Add(tt.held))
			if len(*got) != 1 || (*got)[0] != tt.want {
				t.Fatalf("got %+v, want %+v", *got, tt.want)
			}
			if v.Pressed() {
				t.Error("expected contact to be released")
			}
		})
	}
}

func TestVirtualReleaseWithoutPress(t *testing.T) {
	v, got := openVirtual(t)
	v.Release(image.Pt(1, 1), time.Now())
	if len(*got) != 0 {
		t.Fatalf("expected no gesture, got %+v", *got)
	}
}

func TestVirtualListenReportsHandlerErrors(t *testing.T) {
	v := NewVirtual()
	v.Open()
	boom := errors.New("boom")
	v.AddTouchStripTouchHandler(func(Device, TouchStripTouchType, image.Point) error { return boom })

	errCh := make(chan error, 1)
	done := make(chan error, 1)
	go func() { done <- v.Listen(errCh) }()

	// Listen registers errCh before blocking; wait for it.
	deadline := time.After(time.Second)
	for {
		v.mu.RLock()
		ready := v.errCh != nil
		v.mu.RUnlock()
		if ready {
			break
		}
		select {
		case <-deadline:
			t.Fatal("listen never started")
		case <-time.After(time.Millisecond):
		}
	}

	v.Touch(TOUCH_STRIP_TOUCH_TYPE_SHORT, image.Pt(0, 0))
	if err := <-errCh; !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	v.Close()
	if err := <-done; err != nil {
		t.Fatalf("listen: %v", err)
	}
}

func TestVirtualStripImage(t *testing.T) {
	v := NewVirtual()
	if err := v.SetTouchStripImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	v.Open()

	src := image.NewUniform(color.RGBA{R: 200, A: 255})
	img := image.NewRGBA(image.Rect(0, 0, VirtualStripWidth, VirtualStripHeight))
	for y := 0; y < VirtualStripHeight; y++ {
		for x := 0; x < VirtualStripWidth; x++ {
			img.Set(x, y, src.C)
		}
	}
	if err := v.SetTouchStripImage(img); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if got := v.StripImage().RGBAAt(400, 50); got.R != 200 {
		t.Fatalf("expected red strip, got %v", got)
	}
}
