package motion

// IntegratorBuilderOption is a functional option for configuring an Integrator.
type IntegratorBuilderOption func(in *integrator)

// WithParticleRate sets the per-frame particle smoothing factor.
//
// Parameters:
//   - k: fraction of the gap closed per frame, in (0, 1]
//
// Returns:
//   - IntegratorBuilderOption: option function to apply
func WithParticleRate(k float64) IntegratorBuilderOption {
	return func(in *integrator) {
		in.particleRate = k
	}
}

// WithZoomRate sets the per-frame camera distance smoothing factor.
//
// Parameters:
//   - k: fraction of the gap closed per frame, in (0, 1]
//
// Returns:
//   - IntegratorBuilderOption: option function to apply
func WithZoomRate(k float64) IntegratorBuilderOption {
	return func(in *integrator) {
		in.zoomRate = k
	}
}

// WithDrift sets the idle rotation added every frame. Zero values stop the drift.
//
// Parameters:
//   - yaw: radians of yaw per frame
//   - pitch: radians of pitch per frame
//
// Returns:
//   - IntegratorBuilderOption: option function to apply
func WithDrift(yaw, pitch float64) IntegratorBuilderOption {
	return func(in *integrator) {
		in.yawDrift = yaw
		in.pitchDrift = pitch
	}
}
