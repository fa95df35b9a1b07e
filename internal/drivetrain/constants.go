// Package drivetrain holds the swerve drivetrain constant table: physical
// dimensions, gear ratios, motion limits, current limits and control gains.
//
// Values are stored in SI units (meters, radians, seconds, volts, amps).
// The motor controllers and command code that consume them live elsewhere.
package drivetrain

import (
	"fmt"
	"math"
	"time"

	"github.com/team4099/robot2023/internal/units"
)

// Module identifies one swerve module.
type Module int

const (
	FrontLeft Module = iota
	FrontRight
	BackRight
	BackLeft
)

func (m Module) String() string {
	switch m {
	case FrontLeft:
		return "front_left"
	case FrontRight:
		return "front_right"
	case BackRight:
		return "back_right"
	case BackLeft:
		return "back_left"
	default:
		return fmt.Sprintf("Module(%d)", int(m))
	}
}

// Constants is the drivetrain table.
type Constants struct {
	MinimizeSkew bool `json:"minimize_skew"`

	WheelCount       int     `json:"wheel_count"`
	WheelDiameter    float64 `json:"wheel_diameter"`
	DrivetrainLength float64 `json:"drivetrain_length"`
	DrivetrainWidth  float64 `json:"drivetrain_width"`

	DriveSetpointMax float64 `json:"drive_setpoint_max"` // m/s
	TurnSetpointMax  float64 `json:"turn_setpoint_max"`  // rad/s

	// cruise velocity and accel for the steering motor
	SteeringVelMax   float64 `json:"steering_vel_max"`
	SteeringAccelMax float64 `json:"steering_accel_max"`

	// TODO: measure the gyro drift rate; zero disables compensation.
	GyroRateCoefficient float64 `json:"gyro_rate_coefficient"`

	SlowAutoVel       float64 `json:"slow_auto_vel"`
	SlowAutoAccel     float64 `json:"slow_auto_accel"`
	MaxAutoVel        float64 `json:"max_auto_vel"`
	MaxAutoAccel      float64 `json:"max_auto_accel"`
	MaxAutoBrakeVel   float64 `json:"max_auto_brake_vel"`
	MaxAutoBrakeAccel float64 `json:"max_auto_brake_accel"`

	DriveSensorCPR          int     `json:"drive_sensor_cpr"`
	SteeringSensorCPR       int     `json:"steering_sensor_cpr"`
	DriveSensorGearRatio    float64 `json:"drive_sensor_gear_ratio"`
	SteeringSensorGearRatio float64 `json:"steering_sensor_gear_ratio"`

	AllowedSteeringAngleError float64 `json:"allowed_steering_angle_error"`

	SteeringSupplyCurrentLimit       float64       `json:"steering_supply_current_limit"`
	DriveSupplyCurrentLimit          float64       `json:"drive_supply_current_limit"`
	DriveThresholdCurrentLimit       float64       `json:"drive_threshold_current_limit"`
	DriveTriggerThresholdTime        time.Duration `json:"drive_trigger_threshold_time"`
	DriveStatorCurrentLimit          float64       `json:"drive_stator_current_limit"`
	DriveStatorThresholdCurrentLimit float64       `json:"drive_stator_threshold_current_limit"`
	DriveStatorTriggerThresholdTime  time.Duration `json:"drive_stator_trigger_threshold_time"`

	// ModuleZeros is indexed by Module.
	ModuleZeros [4]float64 `json:"module_zeros"`

	SteeringCompensationVoltage float64 `json:"steering_compensation_voltage"`
	DriveCompensationVoltage    float64 `json:"drive_compensation_voltage"`

	Gains Gains `json:"gains"`
}

// Gains are the closed loop and feedforward constants.
type Gains struct {
	AutoPosKP float64 `json:"auto_pos_kp"` // (m/s)/m
	AutoPosKI float64 `json:"auto_pos_ki"`
	AutoPosKD float64 `json:"auto_pos_kd"`

	AutoThetaKP float64 `json:"auto_theta_kp"` // (rad/s)/rad
	AutoThetaKI float64 `json:"auto_theta_ki"`
	AutoThetaKD float64 `json:"auto_theta_kd"`

	MaxAutoAngularVel   float64 `json:"max_auto_angular_vel"`
	MaxAutoAngularAccel float64 `json:"max_auto_angular_accel"`

	SteeringKP  float64 `json:"steering_kp"` // V/rad
	SteeringKI  float64 `json:"steering_ki"`
	SteeringKD  float64 `json:"steering_kd"`
	SteeringKFF float64 `json:"steering_kff"`

	DriveKP  float64 `json:"drive_kp"` // V/(m/s)
	DriveKI  float64 `json:"drive_ki"`
	DriveKD  float64 `json:"drive_kd"`
	DriveKFF float64 `json:"drive_kff"`

	DriveKS float64 `json:"drive_ks"` // V
	DriveKV float64 `json:"drive_kv"` // V/(m/s)
	DriveKA float64 `json:"drive_ka"` // V/(m/s²)

	SimDriveKS float64 `json:"sim_drive_ks"`
	SimDriveKV float64 `json:"sim_drive_kv"`
	SimDriveKP float64 `json:"sim_drive_kp"`
	SimDriveKI float64 `json:"sim_drive_ki"`
	SimDriveKD float64 `json:"sim_drive_kd"`

	SimSteeringKP float64 `json:"sim_steering_kp"`
	SimSteeringKI float64 `json:"sim_steering_ki"`
	SimSteeringKD float64 `json:"sim_steering_kd"`
}

// Defaults returns the compiled-in drivetrain table.
func Defaults() Constants {
	c := Constants{
		MinimizeSkew: true,

		WheelCount:       4,
		WheelDiameter:    units.Inches(3.785),
		DrivetrainLength: units.Inches(22.750),
		DrivetrainWidth:  units.Inches(22.750),

		DriveSetpointMax: units.FeetPerSecond(15),

		SteeringVelMax:   units.Degrees(1393.2),
		SteeringAccelMax: units.Degrees(13932),

		SlowAutoVel:       2,
		SlowAutoAccel:     2,
		MaxAutoVel:        3,
		MaxAutoAccel:      3,
		MaxAutoBrakeVel:   0.5,
		MaxAutoBrakeAccel: 0.5,

		DriveSensorCPR:          2048,
		SteeringSensorCPR:       2048,
		DriveSensorGearRatio:    (14.0 / 50.0) * (27.0 / 17.0) * (15.0 / 45.0),
		SteeringSensorGearRatio: 7.0 / 150.0,

		AllowedSteeringAngleError: units.Degrees(1),

		SteeringSupplyCurrentLimit:       20,
		DriveSupplyCurrentLimit:          35,
		DriveThresholdCurrentLimit:       60,
		DriveTriggerThresholdTime:        100 * time.Millisecond,
		DriveStatorCurrentLimit:          65,
		DriveStatorThresholdCurrentLimit: 80,
		DriveStatorTriggerThresholdTime:  time.Second,

		ModuleZeros: [4]float64{
			FrontLeft:  2.687684,
			FrontRight: 3.274,
			BackRight:  4.608515,
			BackLeft:   5.204072,
		},

		SteeringCompensationVoltage: 10,
		DriveCompensationVoltage:    12,

		Gains: Gains{
			AutoPosKP: 2.0,
			AutoPosKD: 0.75,

			AutoThetaKP: 7.6,

			MaxAutoAngularVel:   units.Degrees(270),
			MaxAutoAngularAccel: units.Degrees(600),

			SteeringKP: 8.043569323 / units.Degrees(45),

			DriveKP: 2.6829,

			DriveKS: 0.23677,
			DriveKV: 2.2678,
			DriveKA: 0.40499,

			SimDriveKS: 0.116970,
			SimDriveKV: 0.133240,
			SimDriveKP: 0.9,

			SimSteeringKP: 0.4 / units.Degrees(1),
		},
	}
	c.TurnSetpointMax = TurnSetpointMax(c.DriveSetpointMax, c.DrivetrainLength)
	return c
}

// TurnSetpointMax is the fastest the robot can spin when every module runs
// at driveMax, for a square frame of the given side length.
func TurnSetpointMax(driveMax, length float64) float64 {
	return driveMax / length / 2 * math.Sqrt2
}

// ModuleZero returns the absolute encoder offset for a module.
func (c Constants) ModuleZero(m Module) (float64, error) {
	if m < FrontLeft || m > BackLeft {
		return 0, fmt.Errorf("unknown swerve module %d", int(m))
	}
	return c.ModuleZeros[m], nil
}
