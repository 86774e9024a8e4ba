// Package touch classifies raw touch, pointer, mouse, and wheel input into
// discrete gesture events (tap, double-tap, drag, pinch, rotate, pan,
// triple-tap).
package touch

// EventKind identifies the raw input event type delivered by a surface.
type EventKind string

const (
	TouchStart    EventKind = "touchstart"
	TouchMove     EventKind = "touchmove"
	TouchEnd      EventKind = "touchend"
	TouchCancel   EventKind = "touchcancel"
	PointerDown   EventKind = "pointerdown"
	PointerMove   EventKind = "pointermove"
	PointerUp     EventKind = "pointerup"
	PointerCancel EventKind = "pointercancel"
	MouseDown     EventKind = "mousedown"
	MouseMove     EventKind = "mousemove"
	MouseUp       EventKind = "mouseup"
	Wheel         EventKind = "wheel"

	// Native platform gesture events. The recognizer claims these so the
	// host's built-in pinch/rotate handling does not fire alongside ours.
	GestureStart  EventKind = "gesturestart"
	GestureChange EventKind = "gesturechange"
	GestureEnd    EventKind = "gestureend"
)

// PointerType identifies the input device behind a contact.
type PointerType string

const (
	PointerTouch PointerType = "touch"
	PointerPen   PointerType = "pen"
	PointerMouse PointerType = "mouse"
)

// Touch is one contact reported by a touch event. For start events it lists
// contacts that just landed, for move events contacts that moved, and for
// end/cancel events contacts that just lifted.
type Touch struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Force float64 `json:"force,omitempty"`
}

// Event is a raw input event as delivered by a surface. Touch events carry
// the changed contacts in Touches; pointer and mouse events use the flat
// coordinate fields. Time is milliseconds; when zero the recognizer stamps
// the event on arrival.
type Event struct {
	Kind        EventKind   `json:"kind"`
	Touches     []Touch     `json:"touches,omitempty"`
	PointerID   int         `json:"pointerId,omitempty"`
	PointerType PointerType `json:"pointerType,omitempty"`
	X           float64     `json:"x,omitempty"`
	Y           float64     `json:"y,omitempty"`
	Force       float64     `json:"force,omitempty"`
	DeltaY      float64     `json:"deltaY,omitempty"`
	Time        int64       `json:"time,omitempty"`
}

// ContactPoint is one active finger, stylus, or mouse contact tracked by the
// recognizer. Identifiers are unique within the live set; once a contact
// lifts its identifier may be reused by the input system for a later,
// unrelated contact.
type ContactPoint struct {
	ID          int
	X           float64
	Y           float64
	Force       float64
	PointerType PointerType
	Time        int64 // last update, milliseconds
	Started     int64 // contact start, milliseconds
}

// Position returns the contact's current surface coordinates.
func (c *ContactPoint) Position() Point {
	return Point{X: c.X, Y: c.Y}
}
