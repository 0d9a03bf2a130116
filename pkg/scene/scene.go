package scene

import (
	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/geometry"
)

// SphereCount is the fixed number of spheres in a scene
const SphereCount = 3

// Scene is a fixed set of primitives: three spheres and a ground plane.
// It is immutable once built and safe to share between render workers.
type Scene struct {
	Spheres [SphereCount]geometry.Sphere
	Plane   geometry.Plane

	shapes []core.Shape // fold order, built once by NewScene
}

// NewScene creates a scene from its spheres and ground plane
func NewScene(spheres [SphereCount]geometry.Sphere, plane geometry.Plane) *Scene {
	s := &Scene{Spheres: spheres, Plane: plane}
	s.shapes = s.Shapes()
	return s
}

// Shapes returns the primitives in their fixed test order: spheres first, then the plane
func (s *Scene) Shapes() []core.Shape {
	shapes := make([]core.Shape, 0, SphereCount+1)
	for _, sphere := range s.Spheres {
		shapes = append(shapes, sphere)
	}
	return append(shapes, s.Plane)
}

// Intersect returns the nearest hit of ray against every primitive.
// The result does not depend on the order primitives are tested in.
func (s *Scene) Intersect(ray core.Ray) core.Intersection {
	shapes := s.shapes
	if shapes == nil {
		shapes = s.Shapes()
	}

	isect := core.NewIntersection()
	for _, shape := range shapes {
		isect = shape.Intersect(ray, isect)
	}
	return isect
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return SphereCount + 1
}
