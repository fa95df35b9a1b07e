package drivetrain

import "math"

// Sensor conversions between motor encoder counts and mechanism units. The
// gear ratios are mechanism rotations per motor rotation.

// DriveCountsToMeters converts drive encoder counts to wheel travel.
func (c Constants) DriveCountsToMeters(counts float64) float64 {
	return counts / float64(c.DriveSensorCPR) * c.DriveSensorGearRatio * math.Pi * c.WheelDiameter
}

// MetersToDriveCounts converts wheel travel to drive encoder counts.
func (c Constants) MetersToDriveCounts(meters float64) float64 {
	return meters / (math.Pi * c.WheelDiameter) / c.DriveSensorGearRatio * float64(c.DriveSensorCPR)
}

// DriveVelocityToMetersPerSecond converts a native controller velocity
// (counts per 100ms) to m/s.
func (c Constants) DriveVelocityToMetersPerSecond(countsPer100ms float64) float64 {
	return c.DriveCountsToMeters(countsPer100ms) * 10
}

// MetersPerSecondToDriveVelocity converts m/s to counts per 100ms.
func (c Constants) MetersPerSecondToDriveVelocity(mps float64) float64 {
	return c.MetersToDriveCounts(mps) / 10
}

// SteeringCountsToRadians converts steering encoder counts to module angle.
func (c Constants) SteeringCountsToRadians(counts float64) float64 {
	return counts / float64(c.SteeringSensorCPR) * c.SteeringSensorGearRatio * 2 * math.Pi
}

// RadiansToSteeringCounts converts a module angle to steering encoder counts.
func (c Constants) RadiansToSteeringCounts(rad float64) float64 {
	return rad / (2 * math.Pi) / c.SteeringSensorGearRatio * float64(c.SteeringSensorCPR)
}
