package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// It mirrors the compiled-in drivetrain table and is kept in sync by tests.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds drivetrain values that may be retuned without a
// rebuild. Every field is optional; nil means "use the compiled-in value".
//
// Gains are in SI units: volts per m/s for drive, volts per radian for
// steering, m/s per meter for the auto position loop.
type TuningConfig struct {
	// Drive velocity loop
	DriveKP *float64 `json:"drive_kp,omitempty" yaml:"drive_kp,omitempty"`
	DriveKI *float64 `json:"drive_ki,omitempty" yaml:"drive_ki,omitempty"`
	DriveKD *float64 `json:"drive_kd,omitempty" yaml:"drive_kd,omitempty"`

	// Drive feedforward
	DriveKS *float64 `json:"drive_ks,omitempty" yaml:"drive_ks,omitempty"`
	DriveKV *float64 `json:"drive_kv,omitempty" yaml:"drive_kv,omitempty"`
	DriveKA *float64 `json:"drive_ka,omitempty" yaml:"drive_ka,omitempty"`

	// Steering position loop
	SteeringKP  *float64 `json:"steering_kp,omitempty" yaml:"steering_kp,omitempty"`
	SteeringKI  *float64 `json:"steering_ki,omitempty" yaml:"steering_ki,omitempty"`
	SteeringKD  *float64 `json:"steering_kd,omitempty" yaml:"steering_kd,omitempty"`
	SteeringKFF *float64 `json:"steering_kff,omitempty" yaml:"steering_kff,omitempty"`

	// Auto path following
	AutoPosKP   *float64 `json:"auto_pos_kp,omitempty" yaml:"auto_pos_kp,omitempty"`
	AutoThetaKP *float64 `json:"auto_theta_kp,omitempty" yaml:"auto_theta_kp,omitempty"`
	MaxAutoVel  *float64 `json:"max_auto_vel,omitempty" yaml:"max_auto_vel,omitempty"`     // m/s
	MaxAutoAcc  *float64 `json:"max_auto_accel,omitempty" yaml:"max_auto_accel,omitempty"` // m/s²

	// Current limits (amps)
	SteeringSupplyCurrentLimit *float64 `json:"steering_supply_current_limit,omitempty" yaml:"steering_supply_current_limit,omitempty"`
	DriveSupplyCurrentLimit    *float64 `json:"drive_supply_current_limit,omitempty" yaml:"drive_supply_current_limit,omitempty"`
	DriveStatorCurrentLimit    *float64 `json:"drive_stator_current_limit,omitempty" yaml:"drive_stator_current_limit,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON or YAML file.
// The file must have a .json, .yaml or .yml extension and be under the max
// file size. Fields omitted from the file stay nil, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	gains := []struct {
		name string
		v    *float64
	}{
		{"drive_kp", c.DriveKP}, {"drive_ki", c.DriveKI}, {"drive_kd", c.DriveKD},
		{"drive_ks", c.DriveKS}, {"drive_kv", c.DriveKV}, {"drive_ka", c.DriveKA},
		{"steering_kp", c.SteeringKP}, {"steering_ki", c.SteeringKI},
		{"steering_kd", c.SteeringKD}, {"steering_kff", c.SteeringKFF},
		{"auto_pos_kp", c.AutoPosKP}, {"auto_theta_kp", c.AutoThetaKP},
	}
	for _, g := range gains {
		if g.v != nil && *g.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", g.name, *g.v)
		}
	}

	positives := []struct {
		name string
		v    *float64
	}{
		{"max_auto_vel", c.MaxAutoVel},
		{"max_auto_accel", c.MaxAutoAcc},
		{"steering_supply_current_limit", c.SteeringSupplyCurrentLimit},
		{"drive_supply_current_limit", c.DriveSupplyCurrentLimit},
		{"drive_stator_current_limit", c.DriveStatorCurrentLimit},
	}
	for _, p := range positives {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	if c.DriveSupplyCurrentLimit != nil && c.DriveStatorCurrentLimit != nil &&
		*c.DriveStatorCurrentLimit < *c.DriveSupplyCurrentLimit {
		return fmt.Errorf("drive_stator_current_limit (%f) must not be below drive_supply_current_limit (%f)",
			*c.DriveStatorCurrentLimit, *c.DriveSupplyCurrentLimit)
	}

	return nil
}

// IsEmpty reports whether no field is set.
func (c *TuningConfig) IsEmpty() bool {
	return *c == TuningConfig{}
}
