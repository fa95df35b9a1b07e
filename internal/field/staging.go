package field

import (
	"slices"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// StagedPieceCount is the number of game pieces staged on each side of the
// centerline.
const StagedPieceCount = 4

// StagingLocations holds the locations of staged game pieces.
type StagingLocations struct {
	CenterOffsetX float64
	PositionX     float64
	FirstY        float64
	SeparationY   float64
	Translations  []geometry.Point2D
}

func newStagingLocations() StagingLocations {
	s := StagingLocations{
		CenterOffsetX: units.Inches(47.36),
		FirstY:        units.Inches(36.19),
		SeparationY:   units.Inches(48.0),
	}
	s.PositionX = FieldLength/2 - s.CenterOffsetX
	s.Translations = rows(StagedPieceCount, func(i int) geometry.Point2D {
		return geometry.Pt(s.PositionX, s.FirstY+s.SeparationY*float64(i))
	})
	return s
}

func (s StagingLocations) clone() StagingLocations {
	s.Translations = slices.Clone(s.Translations)
	return s
}
