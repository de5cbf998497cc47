// Package shape generates target positions for every supported particle silhouette.
package shape

import (
	"math/rand/v2"
	"strings"

	"github.com/golang/geo/r3"
)

// Shape identifies one of the procedural silhouettes a particle cloud can morph into.
type Shape int

const (
	// ShapeSphere is a Fibonacci-lattice sphere of radius 120. It is the fallback shape.
	ShapeSphere Shape = iota
	// ShapeCube is a regular 3D grid spanning [-100, 100] on every axis.
	ShapeCube
	// ShapePyramid is a stack of 25 shrinking square layers tapering toward +z.
	ShapePyramid
	// ShapeCone is a randomly sampled stack of 20 shrinking disks.
	ShapeCone
	// ShapeCylinder is a randomly sampled open cylinder of radius 80 and height 200.
	ShapeCylinder
	// ShapeTorus is a randomly sampled torus with major radius 100 and minor radius 30.
	ShapeTorus
	// ShapeHeart is a parametric heart outline with random depth jitter.
	ShapeHeart
	// ShapeSquare is a flat 2D grid spanning [-100, 100] in x and y.
	ShapeSquare
)

var shapeNames = [...]string{
	ShapeSphere:   "sphere",
	ShapeCube:     "cube",
	ShapePyramid:  "pyramid",
	ShapeCone:     "cone",
	ShapeCylinder: "cylinder",
	ShapeTorus:    "torus",
	ShapeHeart:    "heart",
	ShapeSquare:   "square",
}

// String returns the lower-case keyword for the shape.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Valid reports whether s is one of the enumerated shapes.
func (s Shape) Valid() bool {
	return s >= 0 && int(s) < len(shapeNames)
}

// Shapes returns every shape in declaration order.
//
// Returns:
//   - []Shape: all enumerated shapes
func Shapes() []Shape {
	out := make([]Shape, len(shapeNames))
	for i := range shapeNames {
		out[i] = Shape(i)
	}
	return out
}

// Parse maps an exact (case-insensitive) shape keyword to its Shape.
// Unrecognized names fall back to ShapeSphere with ok=false.
//
// Parameters:
//   - name: the keyword to look up
//
// Returns:
//   - Shape: the matching shape, or ShapeSphere
//   - bool: true if the name matched a shape
func Parse(name string) (Shape, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeSphere, false
}

// Generator places a single particle slot for one shape.
// Every Generator is exactly one of DeterministicGenerator or StochasticGenerator.
type Generator interface {
	// Shape returns the silhouette this generator produces.
	Shape() Shape

	// Deterministic reports whether repeated calls with the same inputs yield the same point.
	Deterministic() bool
}

// DeterministicGenerator is a grid or lattice generator whose output depends only on (i, count).
type DeterministicGenerator interface {
	Generator

	// Point returns the target for slot i of count.
	//
	// Parameters:
	//   - i: slot index in [0, count)
	//   - count: total number of particles (> 0)
	//
	// Returns:
	//   - r3.Vector: the target position
	//   - bool: false if the generator places no point for this slot
	Point(i, count int) (r3.Vector, bool)
}

// StochasticGenerator samples its output from a random source.
type StochasticGenerator interface {
	Generator

	// Sample returns a random target for slot i of count.
	//
	// Parameters:
	//   - i: slot index in [0, count)
	//   - count: total number of particles (> 0)
	//   - rng: the random source to draw from
	//
	// Returns:
	//   - r3.Vector: the target position
	//   - bool: false if the generator places no point for this slot
	Sample(i, count int, rng *rand.Rand) (r3.Vector, bool)
}

var generators = [...]Generator{
	ShapeSphere:   sphere{},
	ShapeCube:     cube{},
	ShapePyramid:  pyramid{},
	ShapeCone:     cone{},
	ShapeCylinder: cylinder{},
	ShapeTorus:    torus{},
	ShapeHeart:    heart{},
	ShapeSquare:   square{},
}

// For returns the generator registered for s, falling back to the sphere generator.
//
// Parameters:
//   - s: the shape to look up
//
// Returns:
//   - Generator: the shape's generator
func For(s Shape) Generator {
	if !s.Valid() {
		return generators[ShapeSphere]
	}
	return generators[s]
}

// Generate computes the target position of slot i of count for the given shape.
// A nil rng is only permitted for deterministic shapes. Returns ok=false when count <= 0,
// i is out of range, or the shape places nothing at this slot; callers keep the stale target.
//
// Parameters:
//   - s: the shape to generate
//   - i: slot index
//   - count: total number of particles
//   - rng: random source for stochastic shapes
//
// Returns:
//   - r3.Vector: the target position
//   - bool: whether a position was produced
func Generate(s Shape, i, count int, rng *rand.Rand) (r3.Vector, bool) {
	if count <= 0 || i < 0 || i >= count {
		return r3.Vector{}, false
	}
	switch g := For(s).(type) {
	case DeterministicGenerator:
		return g.Point(i, count)
	case StochasticGenerator:
		if rng == nil {
			return r3.Vector{}, false
		}
		return g.Sample(i, count, rng)
	}
	return r3.Vector{}, false
}
