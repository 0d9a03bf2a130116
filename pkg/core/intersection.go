package core

// NoHitDistance is the sentinel distance of a record that has not hit anything yet
const NoHitDistance = 1.0e30

// Intersection records the nearest hit found so far along a ray
type Intersection struct {
	T      float64 // Parametric distance along the ray
	Point  Vec3    // Hit point
	Normal Vec3    // Surface normal at the hit point
	Hit    bool    // Whether any surface was hit
}

// NewIntersection returns an empty record with the sentinel distance
func NewIntersection() Intersection {
	return Intersection{T: NoHitDistance}
}

// Accepts reports whether a candidate distance t would replace this record:
// it must lie strictly in front of the ray origin and strictly closer than the current best.
func (isect Intersection) Accepts(t float64) bool {
	return t > 0.0 && t < isect.T
}
