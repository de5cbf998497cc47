package shape

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/golang/geo/r3"
)

const (
	sphereRadius = 120.0

	// gridExtent is the side length of the cube and square grids, centered on the origin.
	gridExtent = 200.0

	pyramidLayers    = 25
	pyramidLayerStep = 10.0

	coneLayers      = 20
	coneRadiusStep  = 6.0
	coneLayerHeight = 10.0

	cylinderRadius = 80.0
	cylinderHeight = 200.0

	torusMajor = 100.0
	torusMinor = 30.0

	heartTurns = 8 * math.Pi
	heartScale = 12.0
	heartDepth = 60.0
)

// Deterministic generators.

type sphere struct{}

func (sphere) Shape() Shape        { return ShapeSphere }
func (sphere) Deterministic() bool { return true }

// Point places slot i on a Fibonacci lattice so the surface is covered near-uniformly.
func (sphere) Point(i, count int) (r3.Vector, bool) {
	k := float64(i) + 0.5
	phi := math.Acos(1 - 2*k/float64(count))
	theta := math.Pi * (1 + math.Sqrt(5)) * k
	return r3.Vector{
		X: sphereRadius * math.Sin(phi) * math.Cos(theta),
		Y: sphereRadius * math.Sin(phi) * math.Sin(theta),
		Z: sphereRadius * math.Cos(phi),
	}, true
}

type cube struct{}

func (cube) Shape() Shape        { return ShapeCube }
func (cube) Deterministic() bool { return true }

func (cube) Point(i, count int) (r3.Vector, bool) {
	grid := common.CeilRoot(count, 3)
	spacing := gridExtent / float64(grid)
	layer := i / (grid * grid)
	row := (i / grid) % grid
	col := i % grid
	half := gridExtent / 2
	return r3.Vector{
		X: float64(col)*spacing - half,
		Y: float64(row)*spacing - half,
		Z: float64(layer)*spacing - half,
	}, true
}

type pyramid struct{}

func (pyramid) Shape() Shape        { return ShapePyramid }
func (pyramid) Deterministic() bool { return true }

// Point lays slot i on its layer's square sub-grid. Slots past layers*perLayer are not placed.
func (pyramid) Point(i, count int) (r3.Vector, bool) {
	perLayer := count / pyramidLayers
	if perLayer == 0 {
		return r3.Vector{}, false
	}
	layer := i / perLayer
	if layer >= pyramidLayers {
		return r3.Vector{}, false
	}
	indexInLayer := i % perLayer
	gridLayer := common.CeilRoot(perLayer, 2)
	side := float64(pyramidLayers-layer) * pyramidLayerStep
	cell := side / float64(gridLayer)
	row := indexInLayer / gridLayer
	col := indexInLayer % gridLayer
	return r3.Vector{
		X: float64(col)*cell - side/2,
		Y: float64(row)*cell - side/2,
		Z: float64(layer)*pyramidLayerStep - pyramidLayers*pyramidLayerStep/2,
	}, true
}

type square struct{}

func (square) Shape() Shape        { return ShapeSquare }
func (square) Deterministic() bool { return true }

func (square) Point(i, count int) (r3.Vector, bool) {
	grid := common.CeilRoot(count, 2)
	cell := gridExtent / float64(grid)
	row := i / grid
	col := i % grid
	return r3.Vector{
		X: float64(col)*cell - gridExtent/2,
		Y: float64(row)*cell - gridExtent/2,
		Z: 0,
	}, true
}

// Stochastic generators.

type cone struct{}

func (cone) Shape() Shape        { return ShapeCone }
func (cone) Deterministic() bool { return false }

func (cone) Sample(_, _ int, rng *rand.Rand) (r3.Vector, bool) {
	layer := rng.IntN(coneLayers)
	radius := float64(coneLayers-layer) * coneRadiusStep
	angle := rng.Float64() * 2 * math.Pi
	return r3.Vector{
		X: radius * math.Cos(angle),
		Y: radius * math.Sin(angle),
		Z: float64(layer)*coneLayerHeight - coneLayers*coneLayerHeight/2,
	}, true
}

type cylinder struct{}

func (cylinder) Shape() Shape        { return ShapeCylinder }
func (cylinder) Deterministic() bool { return false }

func (cylinder) Sample(_, _ int, rng *rand.Rand) (r3.Vector, bool) {
	angle := rng.Float64() * 2 * math.Pi
	return r3.Vector{
		X: cylinderRadius * math.Cos(angle),
		Y: cylinderRadius * math.Sin(angle),
		Z: rng.Float64()*cylinderHeight - cylinderHeight/2,
	}, true
}

type torus struct{}

func (torus) Shape() Shape        { return ShapeTorus }
func (torus) Deterministic() bool { return false }

func (torus) Sample(_, _ int, rng *rand.Rand) (r3.Vector, bool) {
	a := rng.Float64() * 2 * math.Pi
	b := rng.Float64() * 2 * math.Pi
	ring := torusMajor + torusMinor*math.Cos(b)
	return r3.Vector{
		X: ring * math.Cos(a),
		Y: ring * math.Sin(a),
		Z: torusMinor * math.Sin(b),
	}, true
}

type heart struct{}

func (heart) Shape() Shape        { return ShapeHeart }
func (heart) Deterministic() bool { return false }

// Sample sweeps the heart curve by slot index. The x term is sin^3(t) with no cosine amplitude,
// which distorts the outline; only the depth is random.
func (heart) Sample(i, count int, rng *rand.Rand) (r3.Vector, bool) {
	t := float64(i) / float64(count) * heartTurns
	s := math.Sin(t)
	return r3.Vector{
		X: 16 * s * s * s * heartScale,
		Y: -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)) * heartScale,
		Z: (rng.Float64() - 0.5) * heartDepth,
	}, true
}
