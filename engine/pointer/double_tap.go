package pointer

import (
	"math"
	"time"
)

const (
	// DefaultDoubleTapWindow is the longest gap between two presses that still counts as a double tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultDoubleTapSlop is the farthest apart, in pixels, two presses may land.
	DefaultDoubleTapSlop = 4.0
)

// DoubleTapDetector recognizes double clicks from a stream of presses, for input surfaces that
// only report single presses.
type DoubleTapDetector struct {
	Window time.Duration
	Slop   float64

	last   time.Time
	lastX  float64
	lastY  float64
	primed bool
}

// NewDoubleTapDetector creates a detector with the default window and slop.
//
// Returns:
//   - *DoubleTapDetector: the detector
func NewDoubleTapDetector() *DoubleTapDetector {
	return &DoubleTapDetector{
		Window: DefaultDoubleTapWindow,
		Slop:   DefaultDoubleTapSlop,
	}
}

// Press records a press and reports whether it completes a double tap. A completed double tap
// is consumed, so a third quick press starts a new pair.
//
// Parameters:
//   - at: when the press happened
//   - x, y: where the press landed
//
// Returns:
//   - bool: true if this press is the second of a double tap
func (d *DoubleTapDetector) Press(at time.Time, x, y float64) bool {
	if d.primed && at.Sub(d.last) <= d.Window && math.Hypot(x-d.lastX, y-d.lastY) <= d.Slop {
		d.primed = false
		return true
	}
	d.primed = true
	d.last = at
	d.lastX, d.lastY = x, y
	return false
}
