package assembly

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/stretchr/testify/assert"
)

func TestNewAssembly(t *testing.T) {
	a := NewAssembly()
	assert.Zero(t, a.Yaw())
	assert.Zero(t, a.Pitch())
	assert.True(t, a.CloudVisible())

	m := a.ModelMatrix()
	var id [16]float32
	common.Identity(id[:])
	assert.Equal(t, id, m)
}

func TestRotateAccumulates(t *testing.T) {
	a := NewAssembly()
	a.Rotate(0.1, 0.05)
	a.Rotate(0.002, 0.001)
	assert.InDelta(t, 0.102, a.Yaw(), 1e-12)
	assert.InDelta(t, 0.051, a.Pitch(), 1e-12)

	// Unbounded: no wrapping past 2π.
	a.SetRotation(10*math.Pi, -7)
	assert.Equal(t, 10*math.Pi, a.Yaw())
	assert.Equal(t, -7.0, a.Pitch())
}

func TestCloudVisibility(t *testing.T) {
	a := NewAssembly()
	a.SetCloudVisible(false)
	assert.False(t, a.CloudVisible())
	a.SetCloudVisible(true)
	assert.True(t, a.CloudVisible())
}

func TestModelMatrixRotations(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		in, want   [3]float32
	}{
		// Yaw turns +X toward -Z.
		{"yaw quarter turn", math.Pi / 2, 0, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		// Pitch turns +Y toward +Z.
		{"pitch quarter turn", 0, math.Pi / 2, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"half yaw", math.Pi, 0, [3]float32{0, 0, 5}, [3]float32{0, 0, -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssembly()
			a.SetRotation(tt.yaw, tt.pitch)
			m := a.ModelMatrix()
			x, y, z, w := common.TransformPoint(m[:], tt.in[0], tt.in[1], tt.in[2])
			assert.InDelta(t, tt.want[0], x, 1e-5)
			assert.InDelta(t, tt.want[1], y, 1e-5)
			assert.InDelta(t, tt.want[2], z, 1e-5)
			assert.Equal(t, float32(1), w)
		})
	}
}
