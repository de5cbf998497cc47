package shape

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultCount = 15625

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"sphere", ShapeSphere, true},
		{"CUBE", ShapeCube, true},
		{"  torus ", ShapeTorus, true},
		{"square", ShapeSquare, true},
		{"dodecahedron", ShapeSphere, false},
		{"", ShapeSphere, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestShapesRoundTrip(t *testing.T) {
	all := Shapes()
	require.Len(t, all, 8)
	for _, s := range all {
		got, ok := Parse(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	assert.Equal(t, "unknown", Shape(99).String())
	assert.False(t, Shape(-1).Valid())
}

func TestCapabilitySplit(t *testing.T) {
	deterministic := map[Shape]bool{
		ShapeSphere:   true,
		ShapeCube:     true,
		ShapePyramid:  true,
		ShapeSquare:   true,
		ShapeCone:     false,
		ShapeCylinder: false,
		ShapeTorus:    false,
		ShapeHeart:    false,
	}
	for s, want := range deterministic {
		g := For(s)
		assert.Equal(t, s, g.Shape())
		assert.Equal(t, want, g.Deterministic(), s.String())
		if want {
			_, ok := g.(DeterministicGenerator)
			assert.True(t, ok, s.String())
		} else {
			_, ok := g.(StochasticGenerator)
			assert.True(t, ok, s.String())
		}
	}
	assert.Equal(t, ShapeSphere, For(Shape(42)).Shape())
}

func TestSphereRadius(t *testing.T) {
	for _, count := range []int{1, 2, 7, 1000, defaultCount} {
		for i := 0; i < count; i++ {
			p, ok := Generate(ShapeSphere, i, count, nil)
			require.True(t, ok)
			assert.InDelta(t, 120.0, p.Norm(), 1e-9)
		}
	}
}

func TestSpherePointsDistinct(t *testing.T) {
	const count = 500
	seen := make(map[r3.Vector]bool, count)
	for i := 0; i < count; i++ {
		p, _ := Generate(ShapeSphere, i, count, nil)
		assert.False(t, seen[p], "duplicate point at %d", i)
		seen[p] = true
	}
}

func TestCubeBounds(t *testing.T) {
	for _, count := range []int{1, 8, 9, 1000, defaultCount} {
		for i := 0; i < count; i++ {
			p, ok := Generate(ShapeCube, i, count, nil)
			require.True(t, ok)
			for _, v := range []float64{p.X, p.Y, p.Z} {
				assert.GreaterOrEqual(t, v, -100.0)
				assert.LessOrEqual(t, v, 100.0)
			}
		}
	}
}

func TestCubeGridExact(t *testing.T) {
	// 15625 = 25^3, so the grid side must be exactly 25 and spacing 8.
	p, _ := Generate(ShapeCube, 0, defaultCount, nil)
	assert.Equal(t, r3.Vector{X: -100, Y: -100, Z: -100}, p)

	p, _ = Generate(ShapeCube, 26, defaultCount, nil)
	assert.Equal(t, r3.Vector{X: -92, Y: -92, Z: -100}, p)

	p, _ = Generate(ShapeCube, defaultCount-1, defaultCount, nil)
	assert.Equal(t, r3.Vector{X: 92, Y: 92, Z: 92}, p)
}

func TestSquareBounds(t *testing.T) {
	for _, count := range []int{1, 3, 100, 101, defaultCount} {
		for i := 0; i < count; i++ {
			p, ok := Generate(ShapeSquare, i, count, nil)
			require.True(t, ok)
			assert.GreaterOrEqual(t, p.X, -100.0)
			assert.LessOrEqual(t, p.X, 100.0)
			assert.GreaterOrEqual(t, p.Y, -100.0)
			assert.LessOrEqual(t, p.Y, 100.0)
			assert.Equal(t, 0.0, p.Z)
		}
	}
}

func TestPyramidLayers(t *testing.T) {
	const count = defaultCount // 625 per layer, 25x25 sub-grid
	base, ok := Generate(ShapePyramid, 0, count, nil)
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: -125, Y: -125, Z: -125}, base)

	top, ok := Generate(ShapePyramid, 24*625, count, nil)
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: -5, Y: -5, Z: 115}, top)

	for i := 0; i < count; i++ {
		p, ok := Generate(ShapePyramid, i, count, nil)
		require.True(t, ok)
		layer := i / 625
		half := float64(25-layer) * 10 / 2
		assert.GreaterOrEqual(t, p.X, -half)
		assert.Less(t, p.X, half)
		assert.InDelta(t, float64(layer)*10-125, p.Z, 1e-12)
	}
}

func TestPyramidTruncation(t *testing.T) {
	const count = 1010 // 40 per layer, 1000 placed, last 10 left alone
	for i := 0; i < 1000; i++ {
		_, ok := Generate(ShapePyramid, i, count, nil)
		assert.True(t, ok, "slot %d", i)
	}
	for i := 1000; i < count; i++ {
		_, ok := Generate(ShapePyramid, i, count, nil)
		assert.False(t, ok, "slot %d", i)
	}

	_, ok := Generate(ShapePyramid, 3, 24, nil)
	assert.False(t, ok, "fewer particles than layers places nothing")
}

func TestZeroCount(t *testing.T) {
	for _, s := range Shapes() {
		_, ok := Generate(s, 0, 0, seeded(1))
		assert.False(t, ok, s.String())
	}
	_, ok := Generate(ShapeCube, 5, 5, nil)
	assert.False(t, ok, "index out of range")
	_, ok = Generate(ShapeTorus, 0, 5, nil)
	assert.False(t, ok, "stochastic shape without a random source")
}

func TestConeDistribution(t *testing.T) {
	rng := seeded(7)
	for i := 0; i < 5000; i++ {
		p, ok := Generate(ShapeCone, i, 5000, rng)
		require.True(t, ok)
		layer := math.Round((p.Z + 100) / 10)
		assert.GreaterOrEqual(t, layer, 0.0)
		assert.LessOrEqual(t, layer, 19.0)
		r := math.Hypot(p.X, p.Y)
		assert.InDelta(t, (20-layer)*6, r, 1e-9)
	}
}

func TestCylinderDistribution(t *testing.T) {
	rng := seeded(11)
	var sumZ float64
	const n = 20000
	for i := 0; i < n; i++ {
		p, ok := Generate(ShapeCylinder, i, n, rng)
		require.True(t, ok)
		assert.InDelta(t, 80.0, math.Hypot(p.X, p.Y), 1e-9)
		assert.GreaterOrEqual(t, p.Z, -100.0)
		assert.Less(t, p.Z, 100.0)
		sumZ += p.Z
	}
	assert.InDelta(t, 0.0, sumZ/n, 3.0, "height should be centered")
}

func TestTorusSurface(t *testing.T) {
	rng := seeded(13)
	for i := 0; i < 5000; i++ {
		p, ok := Generate(ShapeTorus, i, 5000, rng)
		require.True(t, ok)
		// Distance from the tube's center circle is the minor radius.
		ring := math.Hypot(p.X, p.Y) - 100
		assert.InDelta(t, 30.0, math.Hypot(ring, p.Z), 1e-9)
	}
}

func TestHeartOutline(t *testing.T) {
	const count = 1000
	rng := seeded(17)
	for _, i := range []int{0, 1, 137, 500, 999} {
		p, ok := Generate(ShapeHeart, i, count, rng)
		require.True(t, ok)
		tt := float64(i) / count * 8 * math.Pi
		wantX := 16 * math.Pow(math.Sin(tt), 3) * 12
		wantY := -(13*math.Cos(tt) - 5*math.Cos(2*tt) - 2*math.Cos(3*tt) - math.Cos(4*tt)) * 12
		assert.InDelta(t, wantX, p.X, 1e-9)
		assert.InDelta(t, wantY, p.Y, 1e-9)
		assert.GreaterOrEqual(t, p.Z, -30.0)
		assert.Less(t, p.Z, 30.0)
	}

	// Slot 0 sits at t=0: x=0, y=-(13-5-2-1)*12.
	p, _ := Generate(ShapeHeart, 0, count, rng)
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, -60.0, p.Y, 1e-12)
}

func TestStochasticSeedReproducible(t *testing.T) {
	for _, s := range []Shape{ShapeCone, ShapeCylinder, ShapeTorus, ShapeHeart} {
		a, b := seeded(99), seeded(99)
		for i := 0; i < 100; i++ {
			pa, _ := Generate(s, i, 100, a)
			pb, _ := Generate(s, i, 100, b)
			assert.Equal(t, pa, pb, s.String())
		}
	}
}
