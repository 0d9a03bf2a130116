package geometry

import (
	"math"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// parallelEpsilon is the largest |direction·normal| treated as a ray parallel to the plane
const parallelEpsilon = 1.0e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) Plane {
	return Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// Intersect returns the closer of best and this plane's hit along ray.
// Rays parallel to the plane leave best untouched.
func (p Plane) Intersect(ray core.Ray, best core.Intersection) core.Intersection {
	d := -p.Point.Dot(p.Normal)
	v := ray.Direction.Dot(p.Normal)

	if math.Abs(v) < parallelEpsilon {
		return best
	}

	t := -(ray.Origin.Dot(p.Normal) + d) / v
	if !best.Accepts(t) {
		return best
	}

	return core.Intersection{
		T:      t,
		Point:  ray.At(t),
		Normal: p.Normal,
		Hit:    true,
	}
}
