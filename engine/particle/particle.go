// Package particle holds the fixed-size particle cloud and rewrites its targets when the shape changes.
package particle

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultCount is the number of particles in a default cloud (25^3).
	DefaultCount = 15625

	// DefaultChunkSize is the number of slots handed to one worker task during SetTargets.
	DefaultChunkSize = 2048

	colorSaturation = 0.8
	colorLightness  = 0.6
)

// Particle is one point of the cloud.
type Particle struct {
	// Current is the rendered position.
	Current r3.Vector
	// Target is the position Current converges toward.
	Target r3.Vector
	// Color is assigned once at construction and never changes.
	Color colorful.Color
}

// Store is the ordered, fixed-size collection of particles.
// Slot indices are stable for the lifetime of the store.
type Store interface {
	// Len returns the number of particles.
	Len() int

	// Particle returns a copy of the particle at slot i.
	//
	// Parameters:
	//   - i: the slot index in [0, Len())
	//
	// Returns:
	//   - Particle: the particle at slot i
	Particle(i int) Particle

	// Shape returns the shape most recently passed to SetTargets (sphere before any call).
	Shape() shape.Shape

	// SetTargets recomputes every particle's target for the given shape. Current positions are untouched.
	// Slots the shape does not place keep their previous target. All work is complete when SetTargets returns.
	//
	// Parameters:
	//   - s: the shape to morph toward
	SetTargets(s shape.Shape)

	// Approach moves every current position toward its target by the fraction k of the remaining gap.
	//
	// Parameters:
	//   - k: the smoothing factor in (0, 1]
	Approach(k float64)

	// Positions appends the current positions as flat x, y, z float32 triples to dst[:0].
	//
	// Parameters:
	//   - dst: a buffer to reuse, may be nil
	//
	// Returns:
	//   - []float32: the filled buffer (3 * Len() elements)
	Positions(dst []float32) []float32

	// Colors returns the particle colors as flat r, g, b float32 triples.
	// The slice is built once and shared; callers must not modify it.
	Colors() []float32

	// Close stops the store's worker pool, if it started one.
	Close()
}

type store struct {
	mu *sync.RWMutex

	particles []Particle
	colors    []float32
	shape     shape.Shape

	seed       uint64
	generation uint64

	workers   int
	chunkSize int
	pool      worker.DynamicWorkerPool
}

var _ Store = &store{}

// NewStore creates a particle store initialized to the sphere silhouette with current = target,
// and a random hue per particle.
// NewStore panics if the configured count is negative.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the newly created store
func NewStore(options ...StoreBuilderOption) Store {
	s := &store{
		mu:        &sync.RWMutex{},
		shape:     shape.ShapeSphere,
		seed:      uint64(time.Now().UnixNano()),
		workers:   max(runtime.NumCPU()-1, 1),
		chunkSize: DefaultChunkSize,
		particles: make([]Particle, DefaultCount),
	}

	for _, option := range options {
		option(s)
	}

	count := len(s.particles)
	rng := rand.New(rand.NewPCG(s.seed, 0))
	s.colors = make([]float32, 0, count*3)
	for i := range s.particles {
		p := &s.particles[i]
		p.Color = colorful.Hsl(rng.Float64()*360, colorSaturation, colorLightness)
		p.Target, _ = shape.Generate(shape.ShapeSphere, i, count, nil)
		p.Current = p.Target
		s.colors = append(s.colors, float32(p.Color.R), float32(p.Color.G), float32(p.Color.B))
	}

	// Small clouds are faster inline than through the pool.
	if count > s.chunkSize {
		s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	}

	return s
}

func (s *store) Len() int {
	return len(s.particles)
}

func (s *store) Particle(i int) Particle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.particles[i]
}

func (s *store) Shape() shape.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shape
}

func (s *store) SetTargets(sh shape.Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sh.Valid() {
		sh = shape.ShapeSphere
	}
	s.shape = sh
	s.generation++

	count := len(s.particles)
	if count == 0 {
		return
	}

	if s.pool == nil {
		s.fillChunk(sh, 0, 0, count)
		return
	}

	// Each chunk draws from its own stream keyed on (seed, generation, chunk) so the result
	// does not depend on which worker runs which chunk.
	var wg sync.WaitGroup
	chunk := 0
	for start := 0; start < count; start += s.chunkSize {
		end := min(start+s.chunkSize, count)
		wg.Add(1)
		id, lo, hi := chunk, start, end
		chunk++
		s.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				s.fillChunk(sh, id, lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// fillChunk writes targets for slots [lo, hi). Callers hold the write lock.
func (s *store) fillChunk(sh shape.Shape, chunk, lo, hi int) {
	var rng *rand.Rand
	if !shape.For(sh).Deterministic() {
		rng = rand.New(rand.NewPCG(s.seed^s.generation, uint64(chunk)))
	}
	count := len(s.particles)
	for i := lo; i < hi; i++ {
		if t, ok := shape.Generate(sh, i, count, rng); ok {
			s.particles[i].Target = t
		}
	}
}

func (s *store) Approach(k float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.particles {
		p := &s.particles[i]
		p.Current = p.Current.Add(p.Target.Sub(p.Current).Mul(k))
	}
}

func (s *store) Positions(dst []float32) []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dst = dst[:0]
	for i := range s.particles {
		c := s.particles[i].Current
		dst = append(dst, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return dst
}

func (s *store) Colors() []float32 {
	return s.colors
}

func (s *store) Close() {
	if s.pool != nil {
		s.pool.Stop()
	}
}
