package camera

// CameraController owns the camera's zoom state. The camera sits on the +Z axis looking at the
// origin; only its distance changes. The current distance eases toward a target distance that
// input handlers set and the motion step consumes.
type CameraController interface {
	// Position returns the camera's world-space position (0, 0, Distance()).
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point, always the origin.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// Distance returns the current, rendered camera distance.
	//
	// Returns:
	//   - float64: the current distance
	Distance() float64

	// TargetDistance returns the distance the camera is easing toward.
	//
	// Returns:
	//   - float64: the target distance, always within [MinDistance(), MaxDistance()]
	TargetDistance() float64

	// SetTargetDistance sets the target distance, clamped to [MinDistance(), MaxDistance()].
	//
	// Parameters:
	//   - d: the requested distance
	SetTargetDistance(d float64)

	// AdjustTargetDistance adds delta to the target distance and clamps the result.
	// Negative deltas zoom in.
	//
	// Parameters:
	//   - delta: the change in distance
	AdjustTargetDistance(delta float64)

	// ToggleTargetDistance switches the target between the far and near toggle distances.
	// A target equal to the far distance becomes the near distance; any other value becomes the far distance.
	ToggleTargetDistance()

	// Step advances the current distance toward the target by the fraction k of the gap.
	//
	// Parameters:
	//   - k: the smoothing factor
	Step(k float64)

	// MinDistance returns the lower zoom bound.
	//
	// Returns:
	//   - float64: minimum target distance
	MinDistance() float64

	// MaxDistance returns the upper zoom bound.
	//
	// Returns:
	//   - float64: maximum target distance
	MaxDistance() float64
}
