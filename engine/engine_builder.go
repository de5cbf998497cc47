package engine

import (
	"time"

	"github.com/Carmen-Shannon/pixel-morph/engine/camera"
	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/motion"
	"github.com/Carmen-Shannon/pixel-morph/engine/particle"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the frame rate of Run in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithStoreOptions forwards options to the particle store.
//
// Parameters:
//   - options: particle store options (count, seed, workers, chunk size)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStoreOptions(options ...particle.StoreBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.storeOptions = append(e.storeOptions, options...)
	}
}

// WithCameraControllerOptions forwards options to the zoom controller.
//
// Parameters:
//   - options: zoom controller options (distance, bounds, toggle distances)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraControllerOptions(options ...camera.CameraControllerOption) EngineBuilderOption {
	return func(e *engine) {
		e.controllerOptions = append(e.controllerOptions, options...)
	}
}

// WithCameraOptions forwards options to the camera.
//
// Parameters:
//   - options: camera options (fov, aspect, clip planes)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraOptions(options ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOptions = append(e.cameraOptions, options...)
	}
}

// WithMotionOptions forwards options to the motion integrator.
//
// Parameters:
//   - options: integrator options (rates, drift)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMotionOptions(options ...motion.IntegratorBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.motionOptions = append(e.motionOptions, options...)
	}
}

// WithPointerOptions forwards options to the pointer controller.
//
// Parameters:
//   - options: pointer controller options (sensitivity)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPointerOptions(options ...pointer.ControllerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.pointerOptions = append(e.pointerOptions, options...)
	}
}

// WithDisplays replaces the default alternate display entries.
//
// Parameters:
//   - entries: the entries, in match order
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDisplays(entries ...display.Entry) EngineBuilderOption {
	return func(e *engine) {
		e.displayEntries = entries
	}
}
