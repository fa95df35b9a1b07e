package field

import (
	"slices"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// Community holds the dimensions for the community and charging station,
// including the tape.
type Community struct {
	InnerX float64
	MidX   float64 // tape to the left of the charging station
	OuterX float64 // tape to the right of the charging station
	LeftY  float64
	MidY   float64
	RightY float64

	RegionCorners []geometry.Point2D

	ChargingStationLength  float64
	ChargingStationWidth   float64
	ChargingStationOuterX  float64
	ChargingStationInnerX  float64
	ChargingStationLeftY   float64
	ChargingStationRightY  float64
	ChargingStationCorners []geometry.Point2D

	CableBumpInnerX  float64
	CableBumpOuterX  float64
	CableBumpCorners []geometry.Point2D
}

func newCommunity(grids Grids) Community {
	c := Community{
		InnerX: 0,
		MidX:   units.Inches(132.375),
		OuterX: units.Inches(193.25),
		LeftY:  units.Feet(18),
		RightY: 0,
	}
	c.MidY = c.LeftY - units.Inches(59.39) + TapeWidth
	c.RegionCorners = []geometry.Point2D{
		geometry.Pt(c.InnerX, c.RightY),
		geometry.Pt(c.InnerX, c.LeftY),
		geometry.Pt(c.MidX, c.LeftY),
		geometry.Pt(c.MidX, c.MidY),
		geometry.Pt(c.OuterX, c.MidY),
		geometry.Pt(c.OuterX, c.RightY),
	}

	c.ChargingStationLength = units.Inches(76.125)
	c.ChargingStationWidth = units.Inches(97.25)
	c.ChargingStationOuterX = c.OuterX - TapeWidth
	c.ChargingStationInnerX = c.ChargingStationOuterX - c.ChargingStationLength
	c.ChargingStationLeftY = c.MidY - TapeWidth
	c.ChargingStationRightY = c.ChargingStationLeftY - c.ChargingStationWidth
	c.ChargingStationCorners = []geometry.Point2D{
		geometry.Pt(c.ChargingStationInnerX, c.ChargingStationRightY),
		geometry.Pt(c.ChargingStationInnerX, c.ChargingStationLeftY),
		geometry.Pt(c.ChargingStationOuterX, c.ChargingStationRightY),
		geometry.Pt(c.ChargingStationOuterX, c.ChargingStationLeftY),
	}

	c.CableBumpInnerX = c.InnerX + grids.OuterX + units.Inches(95.25)
	c.CableBumpOuterX = c.CableBumpInnerX + units.Inches(7)
	c.CableBumpCorners = []geometry.Point2D{
		geometry.Pt(c.CableBumpInnerX, 0),
		geometry.Pt(c.CableBumpInnerX, c.ChargingStationRightY),
		geometry.Pt(c.CableBumpOuterX, 0),
		geometry.Pt(c.CableBumpOuterX, c.ChargingStationRightY),
	}
	return c
}

func (c Community) clone() Community {
	c.RegionCorners = slices.Clone(c.RegionCorners)
	c.ChargingStationCorners = slices.Clone(c.ChargingStationCorners)
	c.CableBumpCorners = slices.Clone(c.CableBumpCorners)
	return c
}
