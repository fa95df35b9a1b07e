package field

import (
	"math"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// tagPose builds a marker pose from inch coordinates and a yaw in radians.
func tagPose(x, y, z, yaw float64) geometry.Pose3D {
	return geometry.Pose3D{
		Translation: geometry.Point3D{X: units.Inches(x), Y: units.Inches(y), Z: units.Inches(z)},
		Rotation:    geometry.Rotation3D{Yaw: yaw},
	}
}

func newAprilTags() map[int]geometry.Pose3D {
	return map[int]geometry.Pose3D{
		1: tagPose(610.77, 42.19, 18.22, math.Pi),
		2: tagPose(610.77, 108.19, 18.22, math.Pi),
		3: tagPose(610.77, 174.19, 18.22, math.Pi), // FIRST's diagram has a typo (it says 147.19)
		4: tagPose(636.96, 265.74, 27.38, math.Pi),
		5: tagPose(14.25, 265.74, 27.38, 0),
		6: tagPose(40.45, 174.19, 18.22, 0), // FIRST's diagram has a typo (it says 147.19)
		7: tagPose(40.45, 108.19, 18.22, 0),
		8: tagPose(40.45, 42.19, 18.22, 0),
	}
}
