package integrator

import "github.com/df07/go-ao-renderer/pkg/core"

// Integrator shades a surface hit found by a primary ray
type Integrator interface {
	// Shade returns the color seen at isect, drawing any randomness from sampler
	Shade(world core.World, isect core.Intersection, sampler core.Sampler) core.Vec3

	// RaysPerShade returns how many secondary rays one Shade call casts
	RaysPerShade() int
}
