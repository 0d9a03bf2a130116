package renderer

import (
	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/integrator"
)

// Raytracer renders individual pixels and rows. It holds no mutable state and
// may be shared by any number of workers, each passing its own sampler.
type Raytracer struct {
	world      core.World
	camera     *Camera
	integrator integrator.Integrator
	width      int
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world core.World, camera *Camera, integratorInst integrator.Integrator, width int) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
	}
}

// RenderPixel averages all subsamples of pixel (x, y) and quantizes the result.
// Subsamples that miss all geometry contribute black.
func (rt *Raytracer) RenderPixel(x, y int, sampler core.Sampler, stats *RenderStats) core.RGB {
	var ps PixelStats
	n := rt.camera.Subsamples()

	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			ray := rt.camera.GetRay(x, y, u, v)

			isect := rt.world.Intersect(ray)
			if !isect.Hit {
				ps.AddSample(core.Vec3{}, false)
				continue
			}
			ps.AddSample(rt.integrator.Shade(rt.world, isect, sampler), true)
		}
	}

	if stats != nil {
		stats.TotalPixels++
		stats.TotalSamples += ps.SampleCount
		stats.HitSamples += ps.HitCount
		stats.OcclusionRays += ps.HitCount * rt.integrator.RaysPerShade()
	}

	return core.QuantizeColor(ps.GetColor())
}

// RenderRow renders row y left to right
func (rt *Raytracer) RenderRow(y int, sampler core.Sampler) ([]core.RGB, RenderStats) {
	var stats RenderStats
	row := make([]core.RGB, rt.width)
	for x := range row {
		row[x] = rt.RenderPixel(x, y, sampler, &stats)
	}
	return row, stats
}
