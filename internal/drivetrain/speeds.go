package drivetrain

import "github.com/team4099/robot2023/internal/units"

// SpeedLimits are the translational velocity limits expressed in one speed
// unit.
type SpeedLimits struct {
	Units            string  `json:"units"`
	DriveSetpointMax float64 `json:"drive_setpoint_max"`
	SlowAutoVel      float64 `json:"slow_auto_vel"`
	MaxAutoVel       float64 `json:"max_auto_vel"`
	MaxAutoBrakeVel  float64 `json:"max_auto_brake_vel"`
}

// SpeedLimits converts the velocity limits to unit. Unknown units fall back
// to meters per second.
func (c Constants) SpeedLimits(unit string) SpeedLimits {
	if !units.IsValidSpeed(unit) {
		unit = units.MPS
	}
	return SpeedLimits{
		Units:            unit,
		DriveSetpointMax: units.ConvertSpeed(c.DriveSetpointMax, unit),
		SlowAutoVel:      units.ConvertSpeed(c.SlowAutoVel, unit),
		MaxAutoVel:       units.ConvertSpeed(c.MaxAutoVel, unit),
		MaxAutoBrakeVel:  units.ConvertSpeed(c.MaxAutoBrakeVel, unit),
	}
}
