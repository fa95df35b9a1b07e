package units

import "math"

// Degrees converts degrees to radians.
func Degrees(v float64) float64 { return v * math.Pi / 180 }

// InDegrees converts radians to degrees.
func InDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// WrapAngle folds an angle in radians into (-π, π].
func WrapAngle(rad float64) float64 {
	w := math.Atan2(math.Sin(rad), math.Cos(rad))
	if w == -math.Pi {
		return math.Pi
	}
	return w
}
