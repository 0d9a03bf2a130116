package renderer

import (
	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width      int    // Image width in pixels
	Height     int    // Image height in pixels
	Subsamples int    // Subsamples per pixel axis
	AOSamples  int    // Occlusion sample grid side
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       int64  // Base seed; each row derives its own
	Sampler    string // Random generator kind, see core.NewSampler
}

// DefaultConfig returns the classic AO benchmark settings
func DefaultConfig() Config {
	return Config{
		Width:      256,
		Height:     256,
		Subsamples: 2,
		AOSamples:  integrator.DefaultAOSamples,
		NumWorkers: 0,
		Seed:       42,
		Sampler:    core.SamplerMath,
	}
}
