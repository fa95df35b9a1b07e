package units

import (
	"errors"
	"math"
	"testing"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		units    string
		expected float64
	}{
		{"1 m to cm", 1.0, CM, 100.0},
		{"1 m to mm", 1.0, MM, 1000.0},
		{"1 m to in", 1.0, IN, 39.3701},
		{"1 m to ft", 1.0, FT, 3.28084},
		{"1 m to m", 1.0, M, 1.0},
		{"unknown units default to m", 2.5, "furlong", 2.5},
		{"field length to in", 16.54175, IN, 651.25},
		{"zero", 0.0, FT, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertLength(tt.meters, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertLength(%f, %s) = %f, want %f", tt.meters, tt.units, result, tt.expected)
			}
		})
	}
}

func TestToMetersRoundTrip(t *testing.T) {
	for _, u := range ValidUnits {
		t.Run(u, func(t *testing.T) {
			const v = 3.785
			got := ConvertLength(ToMeters(v, u), u)
			if math.Abs(got-v) > 1e-12 {
				t.Errorf("round trip through %s = %v, want %v", u, got, v)
			}
		})
	}
}

func TestInchesAndFeet(t *testing.T) {
	if got := Inches(12); math.Abs(got-Feet(1)) > 1e-15 {
		t.Errorf("Inches(12) = %v, Feet(1) = %v", got, Feet(1))
	}
	if got := Inches(1); got != 0.0254 {
		t.Errorf("Inches(1) = %v, want 0.0254", got)
	}
	if got := InInches(Inches(651.25)); math.Abs(got-651.25) > 1e-9 {
		t.Errorf("InInches(Inches(651.25)) = %v", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid m", M, true},
		{"valid cm", CM, true},
		{"valid mm", MM, true},
		{"valid in", IN, true},
		{"valid ft", FT, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "IN", false},
		{"speed unit is not a length", MPS, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "m, cm, mm, in, ft"
	result := GetValidUnitsString()
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"m", M, false},
		{" IN ", IN, false},
		{"inches", IN, false},
		{"Feet", FT, false},
		{"meter", M, false},
		{"yards", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownUnit) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownUnit", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
