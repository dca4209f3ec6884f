package pointer

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		tag  string
		want Type
		ok   bool
	}{
		{"pen", Pen, true},
		{"mouse", Mouse, true},
		{"touch", Touch, true},
		{"", 0, false},
		{"Touch", 0, false},
		{"stylus", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.tag)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseType(%q) = %v, %v; want %v, %v", tt.tag, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMustParseTypePanicsOnUnknownTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown pointer type")
		}
	}()
	MustParseType("trackball")
}

func TestModifiersOf(t *testing.T) {
	m := ModifiersOf(true, false, true, false)
	if !m.Contain(ModShift | ModAlt) {
		t.Fatalf("expected shift|alt, got %q", m)
	}
	if m.Contain(ModCtrl) || m.Contain(ModMeta) {
		t.Fatalf("unexpected modifiers in %q", m)
	}
	if ModifiersOf(false, false, false, false) != 0 {
		t.Fatal("expected empty modifier set")
	}
}

func TestTextEncodings(t *testing.T) {
	var p Phase
	if err := p.UnmarshalText([]byte("move")); err != nil || p != Move {
		t.Fatalf("phase: got %v, %v", p, err)
	}
	if _, err := Phase(9).MarshalText(); err == nil {
		t.Fatal("expected error for invalid phase")
	}

	var b Button
	if err := b.UnmarshalText([]byte("other(5)")); err != nil {
		t.Fatalf("button: %v", err)
	}
	if b != OtherButton(5) {
		t.Fatalf("expected other(5), got %v", b)
	}
	if err := b.UnmarshalText([]byte("other(x)")); err == nil {
		t.Fatal("expected error for malformed button")
	}

	var m Modifiers
	if err := m.UnmarshalText([]byte("ctrl|meta")); err != nil {
		t.Fatalf("modifiers: %v", err)
	}
	if m != ModCtrl|ModMeta {
		t.Fatalf("expected ctrl|meta, got %q", m)
	}
	text, _ := m.MarshalText()
	if string(text) != "ctrl|meta" {
		t.Fatalf("unexpected modifier text %q", text)
	}
}

func TestFromPhysical(t *testing.T) {
	got := FromPhysical(300, 150, 1.5)
	if got.X != 200 || got.Y != 100 {
		t.Fatalf("got %+v", got)
	}
	got = FromPhysical(10, 20, 0)
	if got.X != 10 || got.Y != 20 {
		t.Fatalf("zero scale should behave as 1, got %+v", got)
	}
}
