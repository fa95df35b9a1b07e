package units

import (
	"fmt"
	"slices"
	"strings"
)

// Speed unit constants
const (
	MPS = "mps"
	FPS = "fps"
	MPH = "mph"
)

// ValidSpeedUnits contains all valid speed unit values
var ValidSpeedUnits = []string{MPS, FPS, MPH}

// IsValidSpeed checks if the given unit is in the list of valid speed units
func IsValidSpeed(unit string) bool { return slices.Contains(ValidSpeedUnits, unit) }

// ParseSpeed normalises a user supplied speed unit name.
func ParseSpeed(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if !IsValidSpeed(u) {
		return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownUnit, unit, strings.Join(ValidSpeedUnits, ", "))
	}
	return u, nil
}

// FeetPerSecond converts a speed in ft/s to m/s.
func FeetPerSecond(v float64) float64 { return v * MetersPerFoot }

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case FPS:
		return speedMPS / MetersPerFoot
	case MPH:
		return speedMPS * 2.2369362920544
	default:
		return speedMPS
	}
}
