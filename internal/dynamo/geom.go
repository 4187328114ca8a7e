package dynamo

import "math"

// Point is a 2D position or direction.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{x, y} }

// Point methods.
func (p Point) Add(o Point) Point     { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point     { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(o Point) float64   { return p.X*o.X + p.Y*o.Y }
func (p Point) Cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Perp() Point           { return Point{-p.Y, p.X} }
func (p Point) Dist(o Point) float64  { return p.Sub(o).Len() }
func (p Point) IsFinite() bool        { return Finite(p.X, p.Y) }

func (p Point) Lerp(o Point, t float64) Point {
	return Point{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t}
}

func (p Point) Normalize() Point {
	if l := p.Len(); l != 0 {
		return p.Scale(1 / l)
	}
	return Point{}
}

// Rotate turns p counter-clockwise by a radians about the origin.
func (p Point) Rotate(a float64) Point {
	s, c := math.Sincos(a)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Polar builds a point from radius and angle.
func Polar(r, a float64) Point {
	s, c := math.Sincos(a)
	return Point{r * c, r * s}
}

// Transform is a 2D affine matrix:
//
//	x' = A·x + C·y + E
//	y' = B·x + D·y + F
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{A: 1, D: 1} }

// Translation returns a pure translation.
func Translation(tx, ty float64) Transform { return Transform{A: 1, D: 1, E: tx, F: ty} }

// Rotation returns a rotation by a radians about the origin.
func Rotation(a float64) Transform {
	s, c := math.Sincos(a)
	return Transform{A: c, B: s, C: -s, D: c}
}

// Scaling returns an axis-aligned scale.
func Scaling(sx, sy float64) Transform { return Transform{A: sx, D: sy} }

// Mul returns the transform that applies o first and then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// Translate appends a translation in local coordinates.
func (t Transform) Translate(tx, ty float64) Transform { return t.Mul(Translation(tx, ty)) }

// Rotate appends a rotation in local coordinates.
func (t Transform) Rotate(a float64) Transform { return t.Mul(Rotation(a)) }

// Scale appends a scale in local coordinates.
func (t Transform) Scale(sx, sy float64) Transform { return t.Mul(Scaling(sx, sy)) }

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{t.A*p.X + t.C*p.Y + t.E, t.B*p.X + t.D*p.Y + t.F}
}

// ScaleFactor is the geometric mean scale, used for line widths and radii.
func (t Transform) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(t.A*t.D - t.B*t.C))
}
