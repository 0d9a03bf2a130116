package geometry

import (
	"math"

	"github.com/df07/go-ao-renderer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect returns the closer of best and this sphere's hit along ray.
// Only the near root of the quadratic is considered, so a ray starting inside
// the sphere never hits it.
func (s Sphere) Intersect(ray core.Ray, best core.Intersection) core.Intersection {
	// Vector from sphere center to ray origin
	rs := ray.Origin.Subtract(s.Center)

	b := rs.Dot(ray.Direction)
	c := rs.Dot(rs) - s.Radius*s.Radius
	discriminant := b*b - c

	if discriminant <= 0 {
		return best
	}

	t := -b - math.Sqrt(discriminant)
	if !best.Accepts(t) {
		return best
	}

	point := ray.At(t)
	return core.Intersection{
		T:      t,
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
		Hit:    true,
	}
}
