package jsplib

import "math/rand"

const (
	defaultSeed        int64 = 1
	defaultMaxDuration       = 10
)

type randomConfig struct {
	rng         *rand.Rand
	maxDuration int
}

// RandomOption configures Random.
type RandomOption func(*randomConfig)

// WithSeed draws from a fresh deterministic stream; seed 0 selects the
// default stream.
func WithSeed(seed int64) RandomOption {
	return func(c *randomConfig) {
		if seed == 0 {
			seed = defaultSeed
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand draws from r, which must not be shared across goroutines.
func WithRand(r *rand.Rand) RandomOption {
	return func(c *randomConfig) { c.rng = r }
}

// WithMaxDuration bounds processing times to [1, d]. Values below 1 are
// ignored.
func WithMaxDuration(d int) RandomOption {
	return func(c *randomConfig) {
		if d >= 1 {
			c.maxDuration = d
		}
	}
}

// Random returns a shop of the given size where every job visits the
// machines in a random order with random durations. It panics on a
// non-positive size.
func Random(jobs, machines int, opts ...RandomOption) *Shop {
	if jobs < 1 || machines < 1 {
		panic("jsplib: Random needs at least one job and one machine")
	}
	cfg := randomConfig{maxDuration: defaultMaxDuration}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(defaultSeed))
	}

	s := &Shop{Jobs: make([][]Op, jobs)}
	for j := range s.Jobs {
		order := cfg.rng.Perm(machines)
		job := make([]Op, machines)
		for i, mach := range order {
			job[i] = Op{Machine: mach, Duration: 1 + cfg.rng.Intn(cfg.maxDuration)}
		}
		s.Jobs[j] = job
	}

	return s
}
