package particle

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreStartsAsSphere(t *testing.T) {
	s := NewStore(WithCount(500), WithSeed(1))
	defer s.Close()

	require.Equal(t, 500, s.Len())
	assert.Equal(t, shape.ShapeSphere, s.Shape())
	for i := 0; i < s.Len(); i++ {
		p := s.Particle(i)
		assert.Equal(t, p.Target, p.Current)
		assert.InDelta(t, 120.0, p.Current.Norm(), 1e-9)
	}
}

func TestColorsFixedSaturation(t *testing.T) {
	s := NewStore(WithCount(200), WithSeed(3))
	defer s.Close()

	colors := s.Colors()
	require.Len(t, colors, 600)
	for i := 0; i < s.Len(); i++ {
		h, sat, l := s.Particle(i).Color.Hsl()
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 360.0)
		assert.InDelta(t, 0.8, sat, 1e-6)
		assert.InDelta(t, 0.6, l, 1e-6)
	}
}

func TestSetTargetsLeavesCurrent(t *testing.T) {
	s := NewStore(WithCount(1000), WithSeed(5))
	defer s.Close()

	before := make([]Particle, s.Len())
	for i := range before {
		before[i] = s.Particle(i)
	}
	s.SetTargets(shape.ShapeCube)
	assert.Equal(t, shape.ShapeCube, s.Shape())
	for i := range before {
		p := s.Particle(i)
		assert.Equal(t, before[i].Current, p.Current)
		assert.Equal(t, before[i].Color, p.Color)
		want, _ := shape.Generate(shape.ShapeCube, i, s.Len(), nil)
		assert.Equal(t, want, p.Target)
	}
}

func TestSetTargetsIdempotentForDeterministicShapes(t *testing.T) {
	s := NewStore(WithCount(1000), WithSeed(5))
	defer s.Close()

	for _, sh := range []shape.Shape{shape.ShapeSphere, shape.ShapeCube, shape.ShapePyramid, shape.ShapeSquare} {
		s.SetTargets(sh)
		first := make([]Particle, s.Len())
		for i := range first {
			first[i] = s.Particle(i)
		}
		s.SetTargets(sh)
		for i := range first {
			assert.Equal(t, first[i].Target, s.Particle(i).Target, sh.String())
		}
	}
}

func TestPyramidLeftoversKeepStaleTarget(t *testing.T) {
	s := NewStore(WithCount(1010), WithSeed(9))
	defer s.Close()

	s.SetTargets(shape.ShapeCube)
	cubeTail := s.Particle(1005).Target

	s.SetTargets(shape.ShapePyramid)
	assert.Equal(t, cubeTail, s.Particle(1005).Target)
	want, _ := shape.Generate(shape.ShapePyramid, 999, 1010, nil)
	assert.Equal(t, want, s.Particle(999).Target)
}

func TestSeededStoresMatch(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
	}{
		{"inline", 100000},
		{"pooled", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewStore(WithCount(3000), WithSeed(42), WithChunkSize(tt.chunkSize), WithWorkers(4))
			b := NewStore(WithCount(3000), WithSeed(42), WithChunkSize(tt.chunkSize), WithWorkers(2))
			defer a.Close()
			defer b.Close()

			for _, sh := range []shape.Shape{shape.ShapeTorus, shape.ShapeHeart, shape.ShapeCone} {
				a.SetTargets(sh)
				b.SetTargets(sh)
				for i := 0; i < a.Len(); i++ {
					assert.Equal(t, a.Particle(i).Target, b.Particle(i).Target)
				}
			}
		})
	}
}

func TestPooledSetTargetsCoversEverySlot(t *testing.T) {
	s := NewStore(WithCount(5000), WithSeed(2), WithChunkSize(333), WithWorkers(3))
	defer s.Close()

	s.SetTargets(shape.ShapeCylinder)
	for i := 0; i < s.Len(); i++ {
		p := s.Particle(i)
		assert.InDelta(t, 80.0, math.Hypot(p.Target.X, p.Target.Y), 1e-9, "slot %d", i)
	}
}

func TestApproachConvergesMonotonically(t *testing.T) {
	s := NewStore(WithCount(300), WithSeed(11))
	defer s.Close()

	s.SetTargets(shape.ShapeSquare)
	prev := make([]float64, s.Len())
	for i := range prev {
		p := s.Particle(i)
		prev[i] = p.Target.Sub(p.Current).Norm()
	}
	for step := 0; step < 50; step++ {
		s.Approach(0.02)
		for i := range prev {
			p := s.Particle(i)
			d := p.Target.Sub(p.Current).Norm()
			assert.LessOrEqual(t, d, prev[i])
			prev[i] = d
		}
	}
}

func TestApproachExactStep(t *testing.T) {
	s := NewStore(WithCount(10), WithSeed(1))
	defer s.Close()

	s.SetTargets(shape.ShapeSquare)
	before := s.Particle(4)
	s.Approach(0.5)
	after := s.Particle(4)
	mid := before.Current.Add(before.Target).Mul(0.5)
	assert.InDelta(t, mid.X, after.Current.X, 1e-9)
	assert.InDelta(t, mid.Y, after.Current.Y, 1e-9)
	assert.InDelta(t, mid.Z, after.Current.Z, 1e-9)
}

func TestEmptyStoreIsNoOp(t *testing.T) {
	s := NewStore(WithCount(0))
	defer s.Close()

	assert.Equal(t, 0, s.Len())
	assert.NotPanics(t, func() {
		s.SetTargets(shape.ShapeTorus)
		s.Approach(0.02)
	})
	assert.Empty(t, s.Positions(nil))
	assert.Empty(t, s.Colors())
}

func TestPositionsReusesBuffer(t *testing.T) {
	s := NewStore(WithCount(100), WithSeed(1))
	defer s.Close()

	buf := make([]float32, 0, 300)
	out := s.Positions(buf)
	require.Len(t, out, 300)
	assert.Same(t, &buf[:1][0], &out[0])

	p := s.Particle(7).Current
	assert.Equal(t, float32(p.X), out[21])
	assert.Equal(t, float32(p.Y), out[22])
	assert.Equal(t, float32(p.Z), out[23])
}

func TestWithCountNegativePanics(t *testing.T) {
	assert.Panics(t, func() { NewStore(WithCount(-1)) })
}
