package camera

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController()
	assert.Equal(t, 400.0, cc.Distance())
	assert.Equal(t, 400.0, cc.TargetDistance())
	assert.Equal(t, 50.0, cc.MinDistance())
	assert.Equal(t, 1000.0, cc.MaxDistance())

	x, y, z := cc.Position()
	assert.Equal(t, [3]float32{0, 0, 400}, [3]float32{x, y, z})
}

func TestSetTargetDistanceClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 300, 300},
		{"below", 10, 50},
		{"above", 5000, 1000},
		{"lower bound", 50, 50},
		{"upper bound", 1000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			cc.SetTargetDistance(tt.in)
			assert.Equal(t, tt.want, cc.TargetDistance())
		})
	}
}

func TestAdjustTargetDistanceStaysInBounds(t *testing.T) {
	cc := NewCameraController()
	rng := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		cc.AdjustTargetDistance((rng.Float64() - 0.5) * 400)
		d := cc.TargetDistance()
		require.GreaterOrEqual(t, d, 50.0)
		require.LessOrEqual(t, d, 1000.0)
	}
}

func TestToggleTargetDistance(t *testing.T) {
	cc := NewCameraController()
	cc.ToggleTargetDistance()
	assert.Equal(t, 200.0, cc.TargetDistance())
	cc.ToggleTargetDistance()
	assert.Equal(t, 400.0, cc.TargetDistance())

	cc.SetTargetDistance(730)
	cc.ToggleTargetDistance()
	assert.Equal(t, 400.0, cc.TargetDistance(), "anything but far goes back to far")
}

func TestStepConverges(t *testing.T) {
	cc := NewCameraController()
	cc.SetTargetDistance(200)
	prev := cc.Distance() - cc.TargetDistance()
	for range 200 {
		cc.Step(0.05)
		gap := cc.Distance() - cc.TargetDistance()
		assert.Less(t, gap, prev)
		assert.Greater(t, gap, 0.0)
		prev = gap
	}
	cc.Step(1)
	assert.Equal(t, 200.0, cc.Distance())
}

func TestControllerOptions(t *testing.T) {
	cc := NewCameraController(
		WithDistance(2000),
		WithDistanceBounds(100, 800),
		WithToggleDistances(600, 150),
	)
	assert.Equal(t, 2000.0, cc.Distance())
	assert.Equal(t, 800.0, cc.TargetDistance())

	cc.SetTargetDistance(600)
	cc.ToggleTargetDistance()
	assert.Equal(t, 150.0, cc.TargetDistance())
}

func TestCameraMatricesFollowController(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera(WithController(cc), WithAspect(2))

	assert.InDelta(t, DefaultFov, float64(cam.Fov()), 1e-6)
	assert.Equal(t, float32(0.1), cam.Near())
	assert.Equal(t, float32(5000), cam.Far())

	// The origin sits 400 units in front of the camera.
	view := cam.ViewMatrix()
	_, _, vz, _ := common.TransformPoint(view[:], 0, 0, 0)
	assert.InDelta(t, -400, vz, 1e-3)

	cc.SetTargetDistance(100)
	cc.Step(1)
	cam.Update()
	view = cam.ViewMatrix()
	_, _, vz, _ = common.TransformPoint(view[:], 0, 0, 0)
	assert.InDelta(t, -100, vz, 1e-3)

	// The origin projects to the center of clip space, inside the depth range.
	vp := cam.ViewProjectionMatrix()
	cx, cy, cz, cw := common.TransformPoint(vp[:], 0, 0, 0)
	assert.InDelta(t, 0, cx/cw, 1e-6)
	assert.InDelta(t, 0, cy/cw, 1e-6)
	assert.Greater(t, cz/cw, float32(0))
	assert.Less(t, cz/cw, float32(1))

	f := common.ExtractFrustumFromMatrix(vp[:])
	assert.True(t, f.Contains(0, 0, 0))
	assert.False(t, f.Contains(0, 0, 200), "behind the camera")
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	cam := NewCamera()
	cam.SetAspect(0)
	assert.Equal(t, float32(1), cam.Aspect())
	cam.SetAspect(1.5)
	assert.Equal(t, float32(1.5), cam.Aspect())
	require.NotNil(t, cam.Controller())
}
