package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
)

// Camera projects world coordinates onto the dot grid with a simple
// perspective divide. Extent is the world radius mapped to the screen at
// zoom 1; Distance is the eye offset along +Z after rotation.
type Camera struct {
	Extent           float64
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera frames a scene of the given world radius. The initial pitch
// looks straight down since the stock scenes orbit in the xz-plane.
func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{
		Extent:   extent,
		Distance: extent * 3,
		RotX:     math.Pi / 2,
		Zoom:     1.0,
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies the camera's X, Y, Z rotations in that order.
func (c *Camera) RotatePoint(p body.Vec3) body.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to dot coordinates on a sw x sh grid.
// Points behind the eye report not visible.
func (c *Camera) Project(p body.Vec3, sw, sh int) (int, int, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance*0.95 {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)

	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := minDim / (2.2 * c.Extent)

	sx := int(rot.X*persp*scale) + sw/2
	sy := int(-rot.Y*persp*scale) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
