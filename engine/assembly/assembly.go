// Package assembly holds the shared orientation of everything drawn in the scene and whether the
// particle cloud is part of it.
package assembly

import (
	"sync"

	"github.com/Carmen-Shannon/pixel-morph/common"
)

// Assembly is the root transform of the scene. The particle cloud and every alternate display
// rotate together under it. Yaw and pitch are unbounded and accumulate drift and drag input.
type Assembly interface {
	// Yaw returns the rotation about the Y axis in radians.
	Yaw() float64

	// Pitch returns the rotation about the X axis in radians.
	Pitch() float64

	// Rotate adds the given deltas to yaw and pitch.
	//
	// Parameters:
	//   - dYaw: change in yaw, radians
	//   - dPitch: change in pitch, radians
	Rotate(dYaw, dPitch float64)

	// SetRotation overwrites yaw and pitch.
	//
	// Parameters:
	//   - yaw: rotation about Y, radians
	//   - pitch: rotation about X, radians
	SetRotation(yaw, pitch float64)

	// CloudVisible reports whether the particle cloud is shown.
	CloudVisible() bool

	// SetCloudVisible shows or hides the particle cloud.
	//
	// Parameters:
	//   - visible: the new visibility
	SetCloudVisible(visible bool)

	// ModelMatrix returns the column-major model matrix for the current pitch and yaw.
	//
	// Returns:
	//   - [16]float32: the rotation matrix
	ModelMatrix() [16]float32
}

type assemblyImpl struct {
	mu *sync.Mutex

	yaw          float64
	pitch        float64
	cloudVisible bool
}

var _ Assembly = &assemblyImpl{}

// NewAssembly creates an unrotated assembly with the cloud visible.
//
// Returns:
//   - Assembly: the newly created assembly
func NewAssembly() Assembly {
	return &assemblyImpl{
		mu:           &sync.Mutex{},
		cloudVisible: true,
	}
}

func (a *assemblyImpl) Yaw() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.yaw
}

func (a *assemblyImpl) Pitch() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pitch
}

func (a *assemblyImpl) Rotate(dYaw, dPitch float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.yaw += dYaw
	a.pitch += dPitch
}

func (a *assemblyImpl) SetRotation(yaw, pitch float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.yaw = yaw
	a.pitch = pitch
}

func (a *assemblyImpl) CloudVisible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cloudVisible
}

func (a *assemblyImpl) SetCloudVisible(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cloudVisible = visible
}

func (a *assemblyImpl) ModelMatrix() [16]float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var m [16]float32
	common.RotationXYZ(m[:], float32(a.pitch), float32(a.yaw), 0)
	return m
}
