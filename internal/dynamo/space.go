package dynamo

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// RotateY turns v about the vertical axis by a radians.
func (v Vec3) RotateY(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

// RotateX turns v about the horizontal screen axis by a radians.
func (v Vec3) RotateX(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

// Camera distance limits for the orbit camera.
const (
	MinCameraDistance = 50.0
	MaxCameraDistance = 500.0

	maxPitch = math.Pi/2 - 0.01
)

// Camera orbits the origin. It is written by pointer handlers and read by
// renderers; it never draws anything itself.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	FOV      float64
}

func DefaultCamera() Camera {
	return Camera{Yaw: 0.5, Pitch: 0.45, Distance: 260, FOV: math.Pi / 4}
}

// Drag rotates the camera by a pointer delta measured in pixels.
func (c *Camera) Drag(dx, dy float64) {
	const sensitivity = 0.008
	c.Yaw = NormalizeAngle(c.Yaw + dx*sensitivity)
	c.Pitch = clamp(c.Pitch+dy*sensitivity, -maxPitch, maxPitch)
}

// Zoom applies wheel notches; positive moves the camera closer.
func (c *Camera) Zoom(notches float64) {
	c.Distance = clamp(c.Distance*math.Pow(0.9, notches), MinCameraDistance, MaxCameraDistance)
}

// Clamp forces the camera back into its legal ranges.
func (c *Camera) Clamp() {
	if c.Distance == 0 {
		c.Distance = DefaultCamera().Distance
	}
	if c.FOV <= 0 {
		c.FOV = math.Pi / 4
	}
	c.Yaw = NormalizeAngle(c.Yaw)
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.Distance = clamp(c.Distance, MinCameraDistance, MaxCameraDistance)
}

// Eye is the camera position in world space.
func (c Camera) Eye() Vec3 {
	sp, cp := math.Sincos(c.Pitch)
	sy, cy := math.Sincos(c.Yaw)
	return Vec3{c.Distance * cp * sy, c.Distance * sp, c.Distance * cp * cy}
}

// Project converts world coordinates to screen coordinates for a w×h surface.
// Returns x, y, depth along the view axis, and whether the point is in front
// of the camera.
func (c Camera) Project(p Vec3, w, h float64) (float64, float64, float64, bool) {
	eye := c.Eye()
	forward := eye.Scale(-1).Normalize()
	right := forward.Cross(Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)

	rel := p.Sub(eye)
	depth := rel.Dot(forward)
	if depth <= 0.1 {
		return 0, 0, depth, false
	}
	fov := c.FOV
	if fov <= 0 {
		fov = math.Pi / 4
	}
	focal := (h / 2) / math.Tan(fov/2)
	sx := w/2 + rel.Dot(right)*focal/depth
	sy := h/2 - rel.Dot(up)*focal/depth
	return sx, sy, depth, true
}

// Facing reports whether a surface point with outward normal n is visible
// from the camera.
func (c Camera) Facing(p, n Vec3) bool {
	return n.Dot(c.Eye().Sub(p)) > 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
