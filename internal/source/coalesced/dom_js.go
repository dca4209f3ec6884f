//go:build js && wasm

package coalesced

import "syscall/js"

// DOMEvent wraps a JavaScript PointerEvent.
type DOMEvent struct {
	v js.Value
}

var _ Event = DOMEvent{}

// Wrap returns the Event view of a PointerEvent value.
func Wrap(v js.Value) DOMEvent {
	return DOMEvent{v: v}
}

func (e DOMEvent) PointerID() int              { return e.v.Get("pointerId").Int() }
func (e DOMEvent) PointerType() string         { return e.v.Get("pointerType").String() }
func (e DOMEvent) IsPrimary() bool             { return e.v.Get("isPrimary").Bool() }
func (e DOMEvent) OffsetX() float64            { return e.v.Get("offsetX").Float() }
func (e DOMEvent) OffsetY() float64            { return e.v.Get("offsetY").Float() }
func (e DOMEvent) Width() float64              { return e.v.Get("width").Float() }
func (e DOMEvent) Height() float64             { return e.v.Get("height").Float() }
func (e DOMEvent) Pressure() float64           { return e.v.Get("pressure").Float() }
func (e DOMEvent) TangentialPressure() float64 { return e.v.Get("tangentialPressure").Float() }
func (e DOMEvent) TiltX() float64              { return e.v.Get("tiltX").Float() }
func (e DOMEvent) TiltY() float64              { return e.v.Get("tiltY").Float() }
func (e DOMEvent) Twist() float64              { return e.v.Get("twist").Float() }
func (e DOMEvent) ShiftKey() bool              { return e.v.Get("shiftKey").Bool() }
func (e DOMEvent) CtrlKey() bool               { return e.v.Get("ctrlKey").Bool() }
func (e DOMEvent) AltKey() bool                { return e.v.Get("altKey").Bool() }
func (e DOMEvent) MetaKey() bool               { return e.v.Get("metaKey").Bool() }

// CoalescedEvents calls getCoalescedEvents when the browser provides it.
func (e DOMEvent) CoalescedEvents() []Event {
	fn := e.v.Get("getCoalescedEvents")
	if fn.Type() != js.TypeFunction {
		return nil
	}
	list := e.v.Call("getCoalescedEvents")
	n := list.Length()
	out := make([]Event, n)
	for i := 0; i < n; i++ {
		out[i] = DOMEvent{v: list.Index(i)}
	}
	return out
}
