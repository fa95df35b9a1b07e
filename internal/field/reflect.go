package field

import (
	"math"

	"github.com/team4099/robot2023/internal/geometry"
)

// Reflect moves a canonical-frame point to the given alliance's side of the
// field. Points are returned unchanged for the blue alliance.
func Reflect(p geometry.Point2D, a Alliance) geometry.Point2D {
	if !a.Mirrored() {
		return p
	}
	return geometry.Point2D{X: FieldLength - p.X, Y: p.Y}
}

// ReflectPose is Reflect for poses. For the red alliance the heading vector
// is also mirrored across the field's vertical axis.
func ReflectPose(p geometry.Pose2D, a Alliance) geometry.Pose2D {
	if !a.Mirrored() {
		return p
	}
	return geometry.Pose2D{
		X:       FieldLength - p.X,
		Y:       p.Y,
		Heading: math.Atan2(math.Sin(p.Heading), -math.Cos(p.Heading)),
	}
}

// ReflectAll applies Reflect to every point, preserving order. The input is
// never modified.
func ReflectAll(points []geometry.Point2D, a Alliance) []geometry.Point2D {
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = Reflect(p, a)
	}
	return out
}

// ReflectAll3D is ReflectAll for points that carry a height.
func ReflectAll3D(points []geometry.Point3D, a Alliance) []geometry.Point3D {
	out := make([]geometry.Point3D, len(points))
	for i, p := range points {
		xy := Reflect(p.ToPoint2D(), a)
		out[i] = geometry.Point3D{X: xy.X, Y: xy.Y, Z: p.Z}
	}
	return out
}
