package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape is a primitive that can be folded into a nearest-hit query.
// Intersect returns best unchanged unless the ray hits the shape strictly
// in front of its origin and strictly closer than best.T.
type Shape interface {
	Intersect(ray Ray, best Intersection) Intersection
}

// World answers nearest-hit queries against a whole scene
type World interface {
	Intersect(ray Ray) Intersection
}
