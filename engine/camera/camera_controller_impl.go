package camera

import (
	"sync"

	"github.com/Carmen-Shannon/pixel-morph/common"
)

const (
	// DefaultDistance is the initial and "far" toggle distance.
	DefaultDistance = 400.0
	// DefaultNearDistance is the "near" toggle distance.
	DefaultNearDistance = 200.0
	// DefaultMinDistance is the closest the target distance may be set.
	DefaultMinDistance = 50.0
	// DefaultMaxDistance is the farthest the target distance may be set.
	DefaultMaxDistance = 1000.0
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	distance       float64
	targetDistance float64

	minDistance float64
	maxDistance float64

	farToggle  float64
	nearToggle float64
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a zoom controller starting at DefaultDistance with the default bounds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:             &sync.Mutex{},
		distance:       DefaultDistance,
		targetDistance: DefaultDistance,
		minDistance:    DefaultMinDistance,
		maxDistance:    DefaultMaxDistance,
		farToggle:      DefaultDistance,
		nearToggle:     DefaultNearDistance,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.minDistance > cc.maxDistance {
		cc.minDistance, cc.maxDistance = cc.maxDistance, cc.minDistance
	}
	cc.targetDistance = common.Clamp(cc.targetDistance, cc.minDistance, cc.maxDistance)
	return cc
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return 0, 0, float32(cc.distance)
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	return 0, 0, 0
}

func (cc *cameraControllerImpl) Distance() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.distance
}

func (cc *cameraControllerImpl) TargetDistance() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.targetDistance
}

func (cc *cameraControllerImpl) SetTargetDistance(d float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.targetDistance = common.Clamp(d, cc.minDistance, cc.maxDistance)
}

func (cc *cameraControllerImpl) AdjustTargetDistance(delta float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.targetDistance = common.Clamp(cc.targetDistance+delta, cc.minDistance, cc.maxDistance)
}

func (cc *cameraControllerImpl) ToggleTargetDistance() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	next := cc.farToggle
	if cc.targetDistance == cc.farToggle {
		next = cc.nearToggle
	}
	cc.targetDistance = common.Clamp(next, cc.minDistance, cc.maxDistance)
}

func (cc *cameraControllerImpl) Step(k float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.distance = common.Approach(cc.distance, cc.targetDistance, k)
}

func (cc *cameraControllerImpl) MinDistance() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minDistance
}

func (cc *cameraControllerImpl) MaxDistance() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxDistance
}
