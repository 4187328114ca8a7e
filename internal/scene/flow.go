package scene

import (
	"math"

	"github.com/san-kum/scisim/internal/dynamo"
)

// FlowFraction is the arc-length fraction of particle k of n at time t:
// (k/n + frac(t·speed)) mod 1.
func FlowFraction(k, n int, t, speed float64) float64 {
	if n <= 0 {
		return 0
	}
	phase := t * speed
	phase -= math.Floor(phase)
	f := float64(k)/float64(n) + phase
	return f - math.Floor(f)
}

// Path is a fixed polyline that particles travel along.
type Path []dynamo.Point

// Length is the total arc length.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p); i++ {
		l += p[i].Dist(p[i-1])
	}
	return l
}

// PointAt returns the point at arc-length fraction f in [0, 1].
func (p Path) PointAt(f float64) dynamo.Point {
	switch len(p) {
	case 0:
		return dynamo.Point{}
	case 1:
		return p[0]
	}
	target := math.Max(0, math.Min(1, f)) * p.Length()
	for i := 1; i < len(p); i++ {
		seg := p[i].Dist(p[i-1])
		if target <= seg {
			if seg == 0 {
				return p[i]
			}
			return p[i-1].Lerp(p[i], target/seg)
		}
		target -= seg
	}
	return p[len(p)-1]
}

// FlowPoints samples n particles along the path at time t.
func (p Path) FlowPoints(n int, t, speed float64) []dynamo.Point {
	pts := make([]dynamo.Point, n)
	for k := range pts {
		pts[k] = p.PointAt(FlowFraction(k, n, t, speed))
	}
	return pts
}
