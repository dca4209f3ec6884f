// Package pointer defines the canonical, platform-independent pointer event
// that every platform source produces.
package pointer

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a physical pointer or contact. It is unique among the
// currently active pointers of one platform only.
type ID uint32

// WindowID identifies the window an event is routed to.
type WindowID uint64

// Phase is the lifecycle stage of a sample within a contact.
type Phase uint8

const (
	// Down starts a contact.
	Down Phase = iota + 1
	// Move reports an intermediate sample, including coalesced history.
	Move
	// Up ends a contact.
	Up
)

// Type is the physical device class of a pointer.
type Type uint8

const (
	Mouse Type = iota + 1
	Pen
	Touch
)

// ButtonKind distinguishes the button variants.
type ButtonKind uint8

const (
	ButtonNone ButtonKind = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonOther
)

// Button is the pointer button associated with a sample. Sources currently
// always report NoButton.
type Button struct {
	Kind ButtonKind
	// N is the platform button number, only meaningful for ButtonOther.
	N uint16
}

// NoButton is the zero Button.
var NoButton = Button{}

// OtherButton returns the Other(n) button variant.
func OtherButton(n uint16) Button {
	return Button{Kind: ButtonOther, N: n}
}

// Modifiers is the set of keyboard modifiers held at sample time.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// ModifiersOf builds a modifier set from individual key states.
func ModifiersOf(shift, ctrl, alt, meta bool) Modifiers {
	var m Modifiers
	if shift {
		m |= ModShift
	}
	if ctrl {
		m |= ModCtrl
	}
	if alt {
		m |= ModAlt
	}
	if meta {
		m |= ModMeta
	}
	return m
}

// Event is one normalized pointer sample. Events are values; once built they
// are never modified and hold no reference to the native sample or window.
type Event struct {
	ID        ID              `json:"id"`
	Position  LogicalPosition `json:"position"`
	Modifiers Modifiers       `json:"modifiers"`
	Phase     Phase           `json:"phase"`

	// Primary is only reliable where the platform reports it.
	Primary bool `json:"primary"`
	Type    Type `json:"type"`

	// Size is the contact area, zero when unsupported.
	Size LogicalSize `json:"size"`

	// Pressure is roughly 0..1, zero when unsupported.
	Pressure           float64 `json:"pressure"`
	TangentialPressure float64 `json:"tangential_pressure"`

	// TiltX and TiltY are roughly -1..1.
	TiltX float64 `json:"tilt_x"`
	TiltY float64 `json:"tilt_y"`

	// Twist is the rotation in radians.
	Twist float64 `json:"twist"`

	Button Button `json:"button"`
}

// WindowEvent is a pointer event tagged with its destination window. It is
// the element type of a window's event sink.
type WindowEvent struct {
	Window  WindowID `json:"window"`
	Pointer Event    `json:"pointer"`
}

// ParseType maps a DOM-style pointer type tag to a Type.
func ParseType(tag string) (Type, bool) {
	switch tag {
	case "pen":
		return Pen, true
	case "mouse":
		return Mouse, true
	case "touch":
		return Touch, true
	}
	return 0, false
}

// MustParseType is like ParseType but panics on an unknown tag. Platforms
// document exactly the three tags above, so anything else is a broken
// contract with the native side.
func MustParseType(tag string) Type {
	t, ok := ParseType(tag)
	if !ok {
		panic(fmt.Sprintf("pointer: unknown pointer type %q", tag))
	}
	return t
}

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	switch p {
	case Down, Move, Up:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("pointer: invalid phase %d", p)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "down":
		*p = Down
	case "move":
		*p = Move
	case "up":
		*p = Up
	default:
		return fmt.Errorf("pointer: invalid phase %q", b)
	}
	return nil
}

func (t Type) String() string {
	switch t {
	case Mouse:
		return "mouse"
	case Pen:
		return "pen"
	case Touch:
		return "touch"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	switch t {
	case Mouse, Pen, Touch:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("pointer: invalid type %d", t)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, ok := ParseType(string(b))
	if !ok {
		return fmt.Errorf("pointer: invalid type %q", b)
	}
	*t = v
	return nil
}

func (b Button) String() string {
	switch b.Kind {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonOther:
		return "other(" + strconv.Itoa(int(b.N)) + ")"
	default:
		return "ButtonKind(" + strconv.Itoa(int(b.Kind)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	s := string(text)
	switch s {
	case "none":
		*b = NoButton
	case "left":
		*b = Button{Kind: ButtonLeft}
	case "middle":
		*b = Button{Kind: ButtonMiddle}
	case "right":
		*b = Button{Kind: ButtonRight}
	default:
		inner, ok := strings.CutPrefix(s, "other(")
		if !ok || !strings.HasSuffix(inner, ")") {
			return fmt.Errorf("pointer: invalid button %q", s)
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(inner, ")"), 10, 16)
		if err != nil {
			return fmt.Errorf("pointer: invalid button %q: %w", s, err)
		}
		*b = OtherButton(uint16(n))
	}
	return nil
}

func (m Modifiers) String() string {
	if m == 0 {
		return ""
	}
	var names []string
	if m.Contain(ModShift) {
		names = append(names, "shift")
	}
	if m.Contain(ModCtrl) {
		names = append(names, "ctrl")
	}
	if m.Contain(ModAlt) {
		names = append(names, "alt")
	}
	if m.Contain(ModMeta) {
		names = append(names, "meta")
	}
	return strings.Join(names, "|")
}

// MarshalText implements encoding.TextMarshaler.
func (m Modifiers) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Modifiers) UnmarshalText(b []byte) error {
	var out Modifiers
	if len(b) > 0 {
		for _, name := range strings.Split(string(b), "|") {
			switch name {
			case "shift":
				out |= ModShift
			case "ctrl":
				out |= ModCtrl
			case "alt":
				out |= ModAlt
			case "meta":
				out |= ModMeta
			default:
				return fmt.Errorf("pointer: invalid modifier %q", name)
			}
		}
	}
	*m = out
	return nil
}
