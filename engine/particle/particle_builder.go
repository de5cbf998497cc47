package particle

// StoreBuilderOption is a functional option for configuring a Store.
// Use the With* functions to create options.
type StoreBuilderOption func(s *store)

// WithCount sets the fixed number of particles. Defaults to DefaultCount.
// A count of 0 produces an empty store on which every operation is a no-op.
//
// Parameters:
//   - count: the number of particles (must not be negative)
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithCount(count int) StoreBuilderOption {
	return func(s *store) {
		if count < 0 {
			panic("particle: WithCount requires a non-negative count")
		}
		s.particles = make([]Particle, count)
	}
}

// WithSeed fixes the seed for particle colors and stochastic shape sampling.
// Two stores built with the same seed and count receive the same sequence of targets.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithSeed(seed uint64) StoreBuilderOption {
	return func(s *store) {
		s.seed = seed
	}
}

// WithWorkers sets the number of goroutines used by SetTargets. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithWorkers(n int) StoreBuilderOption {
	return func(s *store) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithChunkSize sets the number of slots per worker task. Stores no larger than one chunk
// compute targets inline and never start a worker pool.
//
// Parameters:
//   - n: slots per chunk (minimum 1)
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithChunkSize(n int) StoreBuilderOption {
	return func(s *store) {
		if n < 1 {
			n = 1
		}
		s.chunkSize = n
	}
}
