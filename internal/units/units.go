// Package units provides shared constants, conversions and validation for the
// length units used by the field drawings and the robot code.
//
// Everything inside the module is stored in meters; inches and feet only
// appear when literal constants are authored and when values are displayed.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Length unit constants
const (
	M  = "m"
	CM = "cm"
	MM = "mm"
	IN = "in"
	FT = "ft"
)

// Length conversion factors, usable in constant expressions.
const (
	MetersPerInch = 0.0254
	MetersPerFoot = 12 * MetersPerInch
)

// ErrUnknownUnit is returned when a unit name is not one of ValidUnits.
var ErrUnknownUnit = errors.New("unknown unit")

// ValidUnits contains all valid length unit values
var ValidUnits = []string{M, CM, MM, IN, FT}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// Parse normalises a user supplied unit name.
func Parse(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "meters", "meter":
		u = M
	case "inches", "inch":
		u = IN
	case "feet", "foot":
		u = FT
	}
	if !IsValid(u) {
		return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownUnit, unit, GetValidUnitsString())
	}
	return u, nil
}

// Inches converts a length in inches to meters.
func Inches(v float64) float64 { return v * MetersPerInch }

// Feet converts a length in feet to meters.
func Feet(v float64) float64 { return v * MetersPerFoot }

// InInches converts meters to inches.
func InInches(m float64) float64 { return m / MetersPerInch }

// ConvertLength converts a length from meters to the target units.
// Unknown units fall back to meters.
func ConvertLength(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case CM:
		return meters * 100
	case MM:
		return meters * 1000
	case IN:
		return meters / MetersPerInch
	case FT:
		return meters / MetersPerFoot
	default:
		return meters
	}
}

// ToMeters converts a length expressed in unit back to meters.
func ToMeters(v float64, unit string) float64 {
	switch unit {
	case CM:
		return v / 100
	case MM:
		return v / 1000
	case IN:
		return Inches(v)
	case FT:
		return Feet(v)
	default:
		return v
	}
}
