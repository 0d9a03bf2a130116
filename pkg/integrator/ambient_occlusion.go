package integrator

import "github.com/df07/go-ao-renderer/pkg/core"

const (
	// DefaultAOSamples is the default sample grid side (64 hemisphere rays)
	DefaultAOSamples = 8

	// DefaultAOEpsilon offsets occlusion rays off the surface to avoid re-hitting it
	DefaultAOEpsilon = 1.0e-4
)

// AmbientOcclusion estimates the unoccluded fraction of the hemisphere above a
// surface point by casting Samples × Samples cosine-weighted rays.
// It holds no per-call state and is safe for concurrent use as long as each
// goroutine passes its own sampler.
type AmbientOcclusion struct {
	Samples int     // Sample grid side (ntheta = nphi)
	Epsilon float64 // Origin offset along the normal
}

// NewAmbientOcclusion creates an estimator with a samples × samples grid
func NewAmbientOcclusion(samples int) *AmbientOcclusion {
	return &AmbientOcclusion{
		Samples: max(1, samples),
		Epsilon: DefaultAOEpsilon,
	}
}

// RaysPerShade returns the number of occlusion rays cast per surface hit
func (ao *AmbientOcclusion) RaysPerShade() int {
	return ao.Samples * ao.Samples
}

// Occlusion returns the fraction of occlusion rays from isect that escape the
// world, in [0, 1] where 1 is fully unoccluded.
func (ao *AmbientOcclusion) Occlusion(world core.World, isect core.Intersection, sampler core.Sampler) float64 {
	origin := isect.Point.Add(isect.Normal.Multiply(ao.Epsilon))
	basis := core.NewOrthoBasis(isect.Normal)

	total := ao.RaysPerShade()
	occluded := 0

	for j := 0; j < ao.Samples; j++ {
		for i := 0; i < ao.Samples; i++ {
			local := core.SampleCosineHemisphere(sampler.Get2D())
			ray := core.NewRay(origin, basis.ToWorld(local))

			if world.Intersect(ray).Hit {
				occluded++
			}
		}
	}

	return float64(total-occluded) / float64(total)
}

// Shade returns the occlusion estimate as a gray color
func (ao *AmbientOcclusion) Shade(world core.World, isect core.Intersection, sampler core.Sampler) core.Vec3 {
	occlusion := ao.Occlusion(world, isect, sampler)
	return core.NewVec3(occlusion, occlusion, occlusion)
}
