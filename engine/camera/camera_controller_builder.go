package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithDistance sets the initial current and target distance.
// The target is clamped to the zoom bounds once all options are applied; the current distance is not.
//
// Parameters:
//   - d: the starting distance
//
// Returns:
//   - CameraControllerOption: functional option to set the distance
func WithDistance(d float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.distance = d
		cc.targetDistance = d
	}
}

// WithDistanceBounds sets the closed range the target distance is clamped to.
//
// Parameters:
//   - minDistance: the closest allowed target distance
//   - maxDistance: the farthest allowed target distance
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom bounds
func WithDistanceBounds(minDistance, maxDistance float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minDistance = minDistance
		cc.maxDistance = maxDistance
	}
}

// WithToggleDistances sets the two distances ToggleTargetDistance alternates between.
//
// Parameters:
//   - far: the distance toggled away from, and the fallback for any other target
//   - near: the distance far toggles to
//
// Returns:
//   - CameraControllerOption: functional option to set the toggle distances
func WithToggleDistances(far, near float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.farToggle = far
		cc.nearToggle = near
	}
}
