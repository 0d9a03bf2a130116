package renderer

import (
	"github.com/df07/go-ao-renderer/pkg/core"
)

// Camera generates primary rays from a fixed eye at the origin looking down -Z.
// Each pixel is split into subsamples × subsamples regular sub-positions.
type Camera struct {
	origin     core.Vec3
	width      int
	height     int
	subsamples int
}

// NewCamera creates a camera for a width × height image
func NewCamera(width, height, subsamples int) *Camera {
	return &Camera{
		origin:     core.NewVec3(0, 0, 0),
		width:      width,
		height:     height,
		subsamples: max(1, subsamples),
	}
}

// Subsamples returns the number of sub-positions per pixel axis
func (c *Camera) Subsamples() int {
	return c.subsamples
}

// ScreenPoint maps sub-position (u, v) of pixel (x, y) to normalized device
// coordinates in [-1, 1]. Y is flipped so row 0 is the top of the image.
func (c *Camera) ScreenPoint(x, y, u, v int) (px, py float64) {
	n := float64(c.subsamples)
	halfWidth := float64(c.width) / 2.0
	halfHeight := float64(c.height) / 2.0

	px = (float64(x) + float64(u)/n - halfWidth) / halfWidth
	py = -(float64(y) + float64(v)/n - halfHeight) / halfHeight
	return px, py
}

// GetRay returns the normalized primary ray through sub-position (u, v) of pixel (x, y)
func (c *Camera) GetRay(x, y, u, v int) core.Ray {
	px, py := c.ScreenPoint(x, y, u, v)
	direction := core.NewVec3(px, py, -1.0).Normalize()
	return core.NewRay(c.origin, direction)
}
