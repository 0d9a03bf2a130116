package scene

import (
	"github.com/df07/go-ao-renderer/pkg/core"
	"github.com/df07/go-ao-renderer/pkg/geometry"
)

// NewDefaultScene creates the classic AO benchmark scene: three unit-diameter
// spheres in a row in front of the camera, resting on a ground plane at y = -0.5.
func NewDefaultScene() *Scene {
	return NewScene(
		[SphereCount]geometry.Sphere{
			geometry.NewSphere(core.NewVec3(-2.0, 0.0, -3.5), 0.5),
			geometry.NewSphere(core.NewVec3(-0.5, 0.0, -3.0), 0.5),
			geometry.NewSphere(core.NewVec3(1.0, 0.0, -2.2), 0.5),
		},
		geometry.NewPlane(core.NewVec3(0.0, -0.5, 0.0), core.NewVec3(0.0, 1.0, 0.0)),
	)
}
