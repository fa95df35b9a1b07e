package field

import (
	"slices"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// LoadingZone holds the dimensions for the loading zone and substations,
// including the tape.
type LoadingZone struct {
	Width  float64
	InnerX float64
	MidX   float64
	OuterX float64
	LeftY  float64
	MidY   float64
	RightY float64

	// RegionCorners starts at the lower left, next to the border with the
	// opponent's community.
	RegionCorners []geometry.Point2D

	DoubleSubstationLength float64
	DoubleSubstationX      float64
	DoubleSubstationShelfZ float64

	SingleSubstationWidth       float64
	SingleSubstationLeftX       float64
	SingleSubstationCenterX     float64
	SingleSubstationRightX      float64
	SingleSubstationTranslation geometry.Point2D
	SingleSubstationHeight      float64
	SingleSubstationLowZ        float64
	SingleSubstationCenterZ     float64
	SingleSubstationHighZ       float64
}

func newLoadingZone() LoadingZone {
	lz := LoadingZone{
		Width:  units.Inches(99.0),
		InnerX: FieldLength,
		MidX:   FieldLength - units.Inches(132.25),
		OuterX: FieldLength - units.Inches(264.25),
		LeftY:  FieldWidth,
	}
	lz.MidY = lz.LeftY - units.Inches(50.5)
	lz.RightY = lz.LeftY - lz.Width
	lz.RegionCorners = []geometry.Point2D{
		geometry.Pt(lz.MidX, lz.RightY),
		geometry.Pt(lz.MidX, lz.MidY),
		geometry.Pt(lz.OuterX, lz.MidY),
		geometry.Pt(lz.OuterX, lz.LeftY),
		geometry.Pt(lz.InnerX, lz.LeftY),
		geometry.Pt(lz.InnerX, lz.RightY),
	}

	lz.DoubleSubstationLength = units.Inches(14.0)
	lz.DoubleSubstationX = lz.InnerX - lz.DoubleSubstationLength
	lz.DoubleSubstationShelfZ = units.Inches(37.375)

	lz.SingleSubstationWidth = units.Inches(22.75)
	lz.SingleSubstationLeftX = FieldLength - lz.DoubleSubstationLength - units.Inches(88.77)
	lz.SingleSubstationCenterX = lz.SingleSubstationLeftX + lz.SingleSubstationWidth/2
	lz.SingleSubstationRightX = lz.SingleSubstationLeftX + lz.SingleSubstationWidth
	lz.SingleSubstationTranslation = geometry.Pt(lz.SingleSubstationCenterX, lz.LeftY)
	lz.SingleSubstationHeight = units.Inches(18.0)
	lz.SingleSubstationLowZ = units.Inches(27.125)
	lz.SingleSubstationCenterZ = lz.SingleSubstationLowZ + lz.SingleSubstationHeight/2
	lz.SingleSubstationHighZ = lz.SingleSubstationLowZ + lz.SingleSubstationHeight
	return lz
}

func (lz LoadingZone) clone() LoadingZone {
	lz.RegionCorners = slices.Clone(lz.RegionCorners)
	return lz
}
