package drivetrain

import (
	"github.com/team4099/robot2023/internal/config"
	"github.com/team4099/robot2023/internal/monitoring"
)

func override(name string, dst *float64, v *float64) {
	if v == nil {
		return
	}
	monitoring.Logf("drivetrain: %s %g -> %g", name, *dst, *v)
	*dst = *v
}

// FromTuning returns Defaults with every field set in cfg applied on top.
// A nil cfg yields Defaults.
func FromTuning(cfg *config.TuningConfig) Constants {
	c := Defaults()
	if cfg == nil {
		return c
	}
	g := &c.Gains
	override("drive_kp", &g.DriveKP, cfg.DriveKP)
	override("drive_ki", &g.DriveKI, cfg.DriveKI)
	override("drive_kd", &g.DriveKD, cfg.DriveKD)
	override("drive_ks", &g.DriveKS, cfg.DriveKS)
	override("drive_kv", &g.DriveKV, cfg.DriveKV)
	override("drive_ka", &g.DriveKA, cfg.DriveKA)
	override("steering_kp", &g.SteeringKP, cfg.SteeringKP)
	override("steering_ki", &g.SteeringKI, cfg.SteeringKI)
	override("steering_kd", &g.SteeringKD, cfg.SteeringKD)
	override("steering_kff", &g.SteeringKFF, cfg.SteeringKFF)
	override("auto_pos_kp", &g.AutoPosKP, cfg.AutoPosKP)
	override("auto_theta_kp", &g.AutoThetaKP, cfg.AutoThetaKP)

	override("max_auto_vel", &c.MaxAutoVel, cfg.MaxAutoVel)
	override("max_auto_accel", &c.MaxAutoAccel, cfg.MaxAutoAcc)
	override("steering_supply_current_limit", &c.SteeringSupplyCurrentLimit, cfg.SteeringSupplyCurrentLimit)
	override("drive_supply_current_limit", &c.DriveSupplyCurrentLimit, cfg.DriveSupplyCurrentLimit)
	override("drive_stator_current_limit", &c.DriveStatorCurrentLimit, cfg.DriveStatorCurrentLimit)
	return c
}
