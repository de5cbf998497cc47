// Package motion advances the per-frame easing and idle drift of the scene.
package motion

const (
	// DefaultParticleRate is the fraction of the remaining gap each particle closes per frame.
	DefaultParticleRate = 0.02
	// DefaultZoomRate is the fraction of the remaining gap the camera distance closes per frame.
	DefaultZoomRate = 0.05
	// DefaultYawDrift is the idle yaw added per frame, radians.
	DefaultYawDrift = 0.002
	// DefaultPitchDrift is the idle pitch added per frame, radians.
	DefaultPitchDrift = 0.001
)

// Approacher moves current positions toward their targets.
type Approacher interface {
	Approach(k float64)
}

// Zoomer eases the camera distance toward its target.
type Zoomer interface {
	Step(k float64)
}

// Rotator accumulates assembly rotation.
type Rotator interface {
	Rotate(dYaw, dPitch float64)
}

// Integrator applies one frame of motion. It has no terminal state: particles approach their
// targets asymptotically and the drift never stops.
type Integrator interface {
	// Step advances particles, camera distance and assembly rotation by one frame.
	Step()

	// Frames returns the number of steps taken.
	Frames() uint64
}

type integrator struct {
	particles Approacher
	zoom      Zoomer
	rotation  Rotator

	particleRate float64
	zoomRate     float64
	yawDrift     float64
	pitchDrift   float64

	frames uint64
}

var _ Integrator = &integrator{}

// NewIntegrator creates an integrator over the given collaborators. zoom and rotation are required
// and NewIntegrator panics if either is nil. A nil particles skips the particle step, which is how an
// empty cloud behaves.
//
// Parameters:
//   - particles: the particle store
//   - zoom: the camera controller
//   - rotation: the assembly
//   - options: functional options to override the per-frame rates
//
// Returns:
//   - Integrator: the newly created integrator
func NewIntegrator(particles Approacher, zoom Zoomer, rotation Rotator, options ...IntegratorBuilderOption) Integrator {
	if zoom == nil {
		panic("motion: NewIntegrator requires a non-nil Zoomer")
	}
	if rotation == nil {
		panic("motion: NewIntegrator requires a non-nil Rotator")
	}
	in := &integrator{
		particles:    particles,
		zoom:         zoom,
		rotation:     rotation,
		particleRate: DefaultParticleRate,
		zoomRate:     DefaultZoomRate,
		yawDrift:     DefaultYawDrift,
		pitchDrift:   DefaultPitchDrift,
	}
	for _, option := range options {
		option(in)
	}
	return in
}

func (in *integrator) Step() {
	if in.particles != nil {
		in.particles.Approach(in.particleRate)
	}
	in.zoom.Step(in.zoomRate)
	in.rotation.Rotate(in.yawDrift, in.pitchDrift)
	in.frames++
}

func (in *integrator) Frames() uint64 {
	return in.frames
}
