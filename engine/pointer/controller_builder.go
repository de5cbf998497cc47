package pointer

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(c *controller)

// WithSensitivity sets the drag rotation in radians per pixel.
//
// Parameters:
//   - s: radians per pixel
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSensitivity(s float64) ControllerBuilderOption {
	return func(c *controller) {
		c.sensitivity = s
	}
}
