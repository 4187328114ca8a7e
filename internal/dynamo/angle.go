package dynamo

import "math"

// TwoPi is one full revolution in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle maps x into [0, 2π).
func NormalizeAngle(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	x = math.Mod(x, TwoPi)
	if x < 0 {
		x += TwoPi
	}
	// math.Mod of a tiny negative number plus 2π rounds up to 2π.
	if x >= TwoPi {
		x = 0
	}
	return x
}

// AngleDiff returns the signed shortest rotation from a to b in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b - a)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}

// SignedAngle maps x into (-π, π].
func SignedAngle(x float64) float64 {
	return AngleDiff(0, x)
}
