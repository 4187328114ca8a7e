package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// Element is an optical element on the principal axis.
type Element string

const (
	ConcaveMirror  Element = "concave-mirror"
	ConvexMirror   Element = "convex-mirror"
	PlaneMirror    Element = "plane-mirror"
	ConvergingLens Element = "converging-lens"
	DivergingLens  Element = "diverging-lens"
)

// Elements lists the optical elements in control order.
var Elements = []string{
	string(ConcaveMirror), string(ConvexMirror), string(PlaneMirror),
	string(ConvergingLens), string(DivergingLens),
}

// IsMirror reports whether light is reflected back toward the object.
func (e Element) IsMirror() bool {
	return e == ConcaveMirror || e == ConvexMirror || e == PlaneMirror
}

// focalEpsilon is how close u may get to f before the image is treated as
// being at infinity.
const focalEpsilon = 1e-6

// Optics is the parameter set of a single-element imaging setup. Distances
// are positive magnitudes; the element decides the sign of f.
type Optics struct {
	Element        Element
	Focal          float64
	ObjectDistance float64
	ObjectHeight   float64
}

// SignedFocal applies the real-is-positive convention: f > 0 for concave
// mirrors and converging lenses, f < 0 for convex mirrors and diverging
// lenses.
func (o Optics) SignedFocal() float64 {
	f := math.Abs(o.Focal)
	switch o.Element {
	case ConvexMirror, DivergingLens:
		return -f
	}
	return f
}

// ImageDistance solves 1/v = 1/f − 1/u. ok is false when the object sits
// at the focal point and the image is at infinity.
func ImageDistance(f, u float64) (v float64, ok bool) {
	if math.Abs(u-f) < focalEpsilon {
		return 0, false
	}
	return u * f / (u - f), true
}

// Magnification is m = v/u; the image height is −m·h, so a real image
// (v > 0) is inverted.
func Magnification(v, u float64) float64 {
	if u == 0 {
		return 0
	}
	return v / u
}

// Ray is one drawn ray segment in element coordinates: the element sits at
// x = 0, the object at x = −u, the axis on y = 0, y up.
type Ray struct {
	From, To dynamo.Point
	// Virtual marks a dashed construction line behind the element.
	Virtual bool
}

// OpticsResult is the imaging solution for one frame.
type OpticsResult struct {
	Element     Element
	U           float64
	F           float64
	V           float64
	M           float64
	ObjectH     float64
	ImageH      float64
	Real        bool
	AtInfinity  bool
	ImageX      float64
	Rays        []Ray
	FocalPoints []dynamo.Point
	err         error
}

func (r OpticsResult) Valid() bool { return r.err == nil }
func (r OpticsResult) Err() error  { return r.err }

func (r OpticsResult) Quantities() []dynamo.Quantity {
	q := []dynamo.Quantity{
		{Name: "u", Label: "Object distance", Unit: "cm", Value: r.U},
		{Name: "f", Label: "Focal length", Unit: "cm", Value: r.F},
	}
	if !r.Valid() {
		return q
	}
	return append(q,
		dynamo.Quantity{Name: "v", Label: "Image distance", Unit: "cm", Value: r.V},
		dynamo.Quantity{Name: "m", Label: "Magnification", Value: r.M},
		dynamo.Quantity{Name: "image_height", Label: "Image height", Unit: "cm", Value: r.ImageH},
	)
}

// Nature describes the image in words for the info panel.
func (r OpticsResult) Nature() string {
	if r.AtInfinity {
		return "no image (at infinity)"
	}
	kind := "virtual"
	if r.Real {
		kind = "real"
	}
	orient := "upright"
	if r.ImageH*r.ObjectH < 0 {
		orient = "inverted"
	}
	size := "same size"
	switch am := math.Abs(r.M); {
	case am > 1+1e-9:
		size = "magnified"
	case am < 1-1e-9:
		size = "diminished"
	}
	return fmt.Sprintf("%s, %s, %s", kind, orient, size)
}

// Solve computes image distance, magnification and the principal rays.
// An object at the focal point yields an invalid result carrying
// dynamo.ErrImageAtInfinity; the parallel rays are still returned.
func (o Optics) Solve(rayLength float64) OpticsResult {
	u, h := o.ObjectDistance, o.ObjectHeight
	res := OpticsResult{Element: o.Element, U: u, ObjectH: h}
	if u <= 0 {
		res.err = fmt.Errorf("%w: object distance must be positive", dynamo.ErrInvalidConfig)
		return res
	}

	if o.Element == PlaneMirror {
		res.V, res.M = -u, -1
		res.ImageH = h
		res.ImageX = u
		res.Rays = planeMirrorRays(u, h, rayLength)
		return res
	}

	switch o.Element {
	case ConcaveMirror, ConvexMirror, ConvergingLens, DivergingLens:
	default:
		res.err = fmt.Errorf("%w: element %q", dynamo.ErrInvalidConfig, o.Element)
		return res
	}

	f := o.SignedFocal()
	res.F = f
	if f == 0 {
		res.err = fmt.Errorf("%w: focal length must be non-zero", dynamo.ErrInvalidConfig)
		return res
	}
	side := 1.0
	if o.Element.IsMirror() {
		side = -1
	}
	res.FocalPoints = []dynamo.Point{dynamo.Pt(side*f, 0), dynamo.Pt(-side*f, 0)}

	v, ok := ImageDistance(f, u)
	if !ok {
		res.AtInfinity = true
		res.err = dynamo.ErrImageAtInfinity
		res.Rays = principalRays(o.Element.IsMirror(), f, u, h, rayLength, false, dynamo.Point{})
		return res
	}
	res.V = v
	res.M = Magnification(v, u)
	res.ImageH = -res.M * h
	res.Real = v > 0
	res.ImageX = side * v
	if !dynamo.Finite(res.V, res.M, res.ImageH) {
		res.err = dynamo.ErrNonFinite
		return res
	}
	res.Rays = principalRays(o.Element.IsMirror(), f, u, h, rayLength, !res.Real, dynamo.Pt(res.ImageX, res.ImageH))
	return res
}

// principalRays traces the parallel, central and focal rays from the top
// of the object. Outgoing rays run rayLength from the element; for a
// virtual image each gets a dashed extension back to the image point.
func principalRays(mirror bool, f, u, h, rayLength float64, virtual bool, image dynamo.Point) []Ray {
	top := dynamo.Pt(-u, h)
	sf := 1.0
	if f < 0 {
		sf = -1
	}

	type leg struct {
		hit dynamo.Point
		out dynamo.Point
	}
	var legs []leg

	// Parallel ray, bent through (or away from) the focal point.
	if mirror {
		legs = append(legs, leg{dynamo.Pt(0, h), dynamo.Pt(-math.Abs(f), -h*sf)})
	} else {
		legs = append(legs, leg{dynamo.Pt(0, h), dynamo.Pt(math.Abs(f), -h*sf)})
	}

	// Ray to the centre of the element: straight through a lens, mirrored
	// about the axis by a mirror.
	if mirror {
		legs = append(legs, leg{dynamo.Pt(0, 0), dynamo.Pt(-u, -h)})
	} else {
		legs = append(legs, leg{dynamo.Pt(0, 0), dynamo.Pt(u, -h)})
	}

	// Focal ray, leaving parallel to the axis.
	if math.Abs(u-f) >= focalEpsilon {
		y0 := -h * f / (u - f)
		dir := dynamo.Pt(1, 0)
		if mirror {
			dir = dynamo.Pt(-1, 0)
		}
		legs = append(legs, leg{dynamo.Pt(0, y0), dir})
	}

	rays := make([]Ray, 0, 2*len(legs))
	for _, l := range legs {
		rays = append(rays, Ray{From: top, To: l.hit})
		out := l.hit.Add(l.out.Normalize().Scale(rayLength))
		rays = append(rays, Ray{From: l.hit, To: out})
		if virtual {
			rays = append(rays, Ray{From: l.hit, To: image, Virtual: true})
		}
	}
	return rays
}

func planeMirrorRays(u, h, rayLength float64) []Ray {
	top := dynamo.Pt(-u, h)
	image := dynamo.Pt(u, h)
	var rays []Ray
	for _, hit := range []dynamo.Point{dynamo.Pt(0, h), dynamo.Pt(0, 0)} {
		in := hit.Sub(top)
		out := dynamo.Pt(-in.X, in.Y).Normalize().Scale(rayLength)
		rays = append(rays,
			Ray{From: top, To: hit},
			Ray{From: hit, To: hit.Add(out)},
			Ray{From: hit, To: image, Virtual: true},
		)
	}
	return rays
}

// Refract applies Snell's law n₁ sin i = n₂ sin r. Angles are measured
// from the surface normal. tir is true when no refracted ray exists.
func Refract(incidence, n1, n2 float64) (refraction float64, tir bool) {
	if n2 <= 0 {
		return 0, true
	}
	s := n1 / n2 * math.Sin(incidence)
	if math.Abs(s) > 1 {
		return 0, true
	}
	return math.Asin(s), false
}

// Reflect returns the angle of reflection, equal to the angle of incidence.
func Reflect(incidence float64) float64 { return incidence }

// CriticalAngle is asin(n₂/n₁), defined only when n₁ > n₂.
func CriticalAngle(n1, n2 float64) (float64, bool) {
	if n1 <= n2 || n1 <= 0 {
		return 0, false
	}
	return math.Asin(n2 / n1), true
}

// Reflectance is Schlick's approximation to the fraction of light
// reflected at a boundary. It returns 1 under total internal reflection.
func Reflectance(incidence, n1, n2 float64) float64 {
	if _, tir := Refract(incidence, n1, n2); tir {
		return 1
	}
	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-math.Cos(incidence), 5)
}

// Surface materials for the reflection simulation.
type Material string

const (
	Mirror Material = "mirror"
	Glass  Material = "glass"
	Water  Material = "water"
	Rough  Material = "rough"
)

// Materials lists the surfaces in control order.
var Materials = []string{string(Mirror), string(Glass), string(Water), string(Rough)}

// Index is the refractive index of the material; mirror and rough
// surfaces do not transmit.
func (m Material) Index() float64 {
	switch m {
	case Glass:
		return 1.5
	case Water:
		return 1.33
	}
	return 0
}

// Boundary is the parameter set of the reflection simulation.
type Boundary struct {
	Material  Material
	Incidence float64 // radians from the normal, [0, π/2)
	// FromInside sends the ray from the denser medium toward air.
	FromInside bool
}

// BoundaryResult describes what happens at the surface.
type BoundaryResult struct {
	Material    Material
	Incidence   float64
	Reflection  float64
	Refraction  float64
	Transmits   bool
	TIR         bool
	Critical    float64
	HasCritical bool
	Reflectance float64
	// Scatter holds the diffuse reflection directions of a rough surface,
	// as angles from the normal.
	Scatter []float64
	err     error
}

func (r BoundaryResult) Valid() bool { return r.err == nil }
func (r BoundaryResult) Err() error  { return r.err }

func (r BoundaryResult) Quantities() []dynamo.Quantity {
	toDeg := 180 / math.Pi
	q := []dynamo.Quantity{
		{Name: "incidence", Label: "Angle of incidence", Unit: "°", Value: r.Incidence * toDeg},
		{Name: "reflection", Label: "Angle of reflection", Unit: "°", Value: r.Reflection * toDeg},
	}
	if r.Transmits {
		q = append(q, dynamo.Quantity{Name: "refraction", Label: "Angle of refraction", Unit: "°", Value: r.Refraction * toDeg})
	}
	if r.HasCritical {
		q = append(q, dynamo.Quantity{Name: "critical", Label: "Critical angle", Unit: "°", Value: r.Critical * toDeg})
	}
	return append(q, dynamo.Quantity{Name: "reflectance", Label: "Reflected", Unit: "%", Value: r.Reflectance * 100})
}

// Solve evaluates reflection and refraction at the boundary.
func (b Boundary) Solve() BoundaryResult {
	i := b.Incidence
	res := BoundaryResult{Material: b.Material, Incidence: i, Reflection: Reflect(i)}
	if i < 0 || i >= math.Pi/2 {
		res.err = fmt.Errorf("%w: incidence must be in [0, 90°)", dynamo.ErrInvalidConfig)
		return res
	}

	switch b.Material {
	case Mirror:
		res.Reflectance = 1
		return res
	case Rough:
		res.Reflectance = 1
		for k := -3; k <= 3; k++ {
			res.Scatter = append(res.Scatter, float64(k)*math.Pi/9)
		}
		return res
	case Glass, Water:
	default:
		res.err = fmt.Errorf("%w: material %q", dynamo.ErrInvalidConfig, b.Material)
		return res
	}

	n1, n2 := 1.0, b.Material.Index()
	if b.FromInside {
		n1, n2 = n2, n1
	}
	res.Critical, res.HasCritical = CriticalAngle(n1, n2)
	r, tir := Refract(i, n1, n2)
	res.TIR = tir
	res.Transmits = !tir
	res.Refraction = r
	res.Reflectance = Reflectance(i, n1, n2)
	return res
}
