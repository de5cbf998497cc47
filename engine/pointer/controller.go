package pointer

import "sync"

const (
	// DefaultSensitivity is the rotation in radians per pixel of drag.
	DefaultSensitivity = 0.01
)

// State is the drag state of a Controller.
type State int

const (
	// StateIdle ignores moves.
	StateIdle State = iota
	// StateDragging rotates the assembly on every move.
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Rotator receives drag rotation.
type Rotator interface {
	Rotate(dYaw, dPitch float64)
}

// Zoomer receives pinch and double-click zoom.
type Zoomer interface {
	AdjustTargetDistance(delta float64)
	ToggleTargetDistance()
}

// Controller is the single drag state machine shared by mouse and touch input.
type Controller interface {
	// Handle applies one pointer event.
	//
	// Parameters:
	//   - ev: the event
	Handle(ev Event)

	// State returns the current drag state.
	State() State
}

type controller struct {
	mu *sync.Mutex

	rotation Rotator
	zoom     Zoomer

	sensitivity float64

	state        State
	lastX, lastY float64

	pinchBaseline float64
	hasBaseline   bool
}

var _ Controller = &controller{}

// NewController creates an idle controller. Both collaborators are required and
// NewController panics if either is nil.
//
// Parameters:
//   - rotation: the assembly to rotate
//   - zoom: the camera controller to zoom
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(rotation Rotator, zoom Zoomer, options ...ControllerBuilderOption) Controller {
	if rotation == nil {
		panic("pointer: NewController requires a non-nil Rotator")
	}
	if zoom == nil {
		panic("pointer: NewController requires a non-nil Zoomer")
	}
	c := &controller{
		mu:          &sync.Mutex{},
		rotation:    rotation,
		zoom:        zoom,
		sensitivity: DefaultSensitivity,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controller) Handle(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case KindPress:
		c.start(ev.Source)
	case KindTouchStart:
		if len(ev.Touches) > 0 {
			c.start(ev.Source)
		}
	case KindMove:
		c.move(ev.Source)
	case KindTouchMove:
		if len(ev.Touches) > 0 {
			c.move(ev.Source)
		}
		c.pinch(ev.Touches)
	case KindRelease, KindLeave:
		c.state = StateIdle
	case KindTouchEnd, KindTouchCancel:
		c.state = StateIdle
		if len(ev.Touches) < 2 {
			c.hasBaseline = false
		}
	case KindDoubleClick:
		c.zoom.ToggleTargetDistance()
	}
}

func (c *controller) start(src Source) {
	if src == nil {
		return
	}
	c.state = StateDragging
	c.lastX, c.lastY = src.Position()
}

func (c *controller) move(src Source) {
	if c.state != StateDragging || src == nil {
		return
	}
	x, y := src.Position()
	c.rotation.Rotate((x-c.lastX)*c.sensitivity, (y-c.lastY)*c.sensitivity)
	c.lastX, c.lastY = x, y
}

// pinch zooms by the change in finger spread. The first two-finger frame only records the baseline.
func (c *controller) pinch(t Touches) {
	spread, ok := t.Spread()
	if !ok {
		return
	}
	if c.hasBaseline {
		c.zoom.AdjustTargetDistance(-(spread - c.pinchBaseline))
	}
	c.pinchBaseline = spread
	c.hasBaseline = true
}
