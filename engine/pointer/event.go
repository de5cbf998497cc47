// Package pointer turns mouse and touch input into assembly rotation and camera zoom.
package pointer

import "math"

// Kind identifies a pointer event.
type Kind int

const (
	// KindPress is a primary mouse button press.
	KindPress Kind = iota
	// KindMove is a mouse cursor move.
	KindMove
	// KindRelease is a primary mouse button release.
	KindRelease
	// KindLeave is the cursor leaving the surface.
	KindLeave
	// KindDoubleClick is a double click or double tap.
	KindDoubleClick
	// KindTouchStart is a new finger touching the surface.
	KindTouchStart
	// KindTouchMove is any touching finger moving.
	KindTouchMove
	// KindTouchEnd is a finger lifting from the surface.
	KindTouchEnd
	// KindTouchCancel is the platform aborting the touch sequence.
	KindTouchCancel
)

var kindNames = [...]string{
	KindPress:       "press",
	KindMove:        "move",
	KindRelease:     "release",
	KindLeave:       "leave",
	KindDoubleClick: "double-click",
	KindTouchStart:  "touch-start",
	KindTouchMove:   "touch-move",
	KindTouchEnd:    "touch-end",
	KindTouchCancel: "touch-cancel",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Source yields the position that drives a drag.
type Source interface {
	Position() (x, y float64)
}

// Mouse is a cursor position in surface pixels.
type Mouse struct {
	X, Y float64
}

// Position returns the cursor position.
func (m Mouse) Position() (x, y float64) {
	return m.X, m.Y
}

// Touch is one finger's position in surface pixels.
type Touch struct {
	X, Y float64
}

// Touches is the set of fingers currently on the surface, in platform order.
type Touches []Touch

// Position returns the first finger's position, or the origin if no finger is down.
func (t Touches) Position() (x, y float64) {
	if len(t) == 0 {
		return 0, 0
	}
	return t[0].X, t[0].Y
}

// Spread returns the distance between the first two fingers.
//
// Returns:
//   - float64: the finger separation
//   - bool: false unless exactly two fingers are down
func (t Touches) Spread() (float64, bool) {
	if len(t) != 2 {
		return 0, false
	}
	return math.Hypot(t[0].X-t[1].X, t[0].Y-t[1].Y), true
}

// Event is one pointer input.
type Event struct {
	Kind   Kind
	Source Source
	// Touches holds the fingers still on the surface after the event; empty for mouse events.
	Touches Touches
}

// MouseEvent builds a mouse event at (x, y).
//
// Parameters:
//   - kind: the event kind
//   - x, y: the cursor position
//
// Returns:
//   - Event: the event
func MouseEvent(kind Kind, x, y float64) Event {
	return Event{Kind: kind, Source: Mouse{X: x, Y: y}}
}

// TouchEvent builds a touch event from the fingers remaining on the surface.
//
// Parameters:
//   - kind: the event kind
//   - touches: the fingers on the surface after the event
//
// Returns:
//   - Event: the event
func TouchEvent(kind Kind, touches ...Touch) Event {
	t := Touches(touches)
	return Event{Kind: kind, Source: t, Touches: t}
}
