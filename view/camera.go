package view

import "github.com/plus3/cubekiller/vmath"

// Camera projects the XZ plane onto a screen, centred on a followed point
// and turned so that the followed heading points up.
type Camera struct {
	Center vmath.Vec3
	Yaw    float64

	// Scale is screen units per world unit.
	Scale float64
	// Elevation is how far up the screen one unit of height moves a point.
	Elevation float64
	// Aspect scales the vertical axis; zero means 1.
	Aspect float64

	Width, Height float64
}

// Follow centres the camera on pos, facing yaw.
func (c *Camera) Follow(pos vmath.Vec3, yaw float64) {
	c.Center = pos
	c.Yaw = yaw
}

// Project maps a world position to screen coordinates.
func (c Camera) Project(p vmath.Vec3) (x, y float64) {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	d := vmath.YawOnly(-c.Yaw).Rotate(p.Sub(c.Center))
	x = c.Width/2 + d.X*c.Scale
	y = c.Height/2 + (d.Z*c.Scale-(p.Y-c.Center.Y)*c.Elevation)*aspect
	return x, y
}

// Visible reports whether a screen point lies inside the viewport, with margin.
func (c Camera) Visible(x, y, margin float64) bool {
	return x >= -margin && y >= -margin && x <= c.Width+margin && y <= c.Height+margin
}
