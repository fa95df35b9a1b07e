// Package field contains the 2023 field dimensions and reference points.
//
// All translations and poses are stored in meters with the origin at the
// rightmost point on the BLUE ALLIANCE wall. Sets of region corners start in
// the lower left and move clockwise. Use Reflect and ReflectPose to move
// values to the red alliance's side; the caller always says which alliance
// it is playing for.
package field

import (
	"maps"
	"slices"
	"sync"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// Field dimensions in inches, from the field drawings.
const (
	fieldLengthIn = 651.25
	fieldWidthIn  = 315.5
	tapeWidthIn   = 2.0
)

// Field dimensions in meters, including the tape on the field edges.
const (
	FieldLength = fieldLengthIn * units.MetersPerInch
	FieldWidth  = fieldWidthIn * units.MetersPerInch
	TapeWidth   = tapeWidthIn * units.MetersPerInch
)

// Field is the immutable field catalog. Accessors return copies so callers
// can never change what other readers see.
type Field struct {
	length    float64
	width     float64
	tapeWidth float64

	tags        map[int]geometry.Pose3D
	community   Community
	grids       Grids
	loadingZone LoadingZone
	staging     StagingLocations
}

var defaultField = sync.OnceValue(New)

// Default returns the shared catalog, building it on first use.
func Default() *Field { return defaultField() }

// New builds the catalog from the field drawing constants.
func New() *Field {
	grids := newGrids()
	return &Field{
		length:      FieldLength,
		width:       FieldWidth,
		tapeWidth:   TapeWidth,
		tags:        newAprilTags(),
		community:   newCommunity(grids),
		grids:       grids,
		loadingZone: newLoadingZone(),
		staging:     newStagingLocations(),
	}
}

// Length is the field length along X in meters.
func (f *Field) Length() float64 { return f.length }

// Width is the field width along Y in meters.
func (f *Field) Width() float64 { return f.width }

// TapeWidth is the width of the tape lines on the field edges in meters.
func (f *Field) TapeWidth() float64 { return f.tapeWidth }

// Tags returns the AprilTag catalog keyed by tag ID. Tag poses are physical
// marker locations and are never reflected.
func (f *Field) Tags() map[int]geometry.Pose3D { return maps.Clone(f.tags) }

// Tag looks up a single AprilTag.
func (f *Field) Tag(id int) (geometry.Pose3D, bool) {
	p, ok := f.tags[id]
	return p, ok
}

// TagIDs returns the catalog's tag IDs in ascending order.
func (f *Field) TagIDs() []int { return slices.Sorted(maps.Keys(f.tags)) }

// Community returns the community and charging station geometry.
func (f *Field) Community() Community { return f.community.clone() }

// Grids returns the scoring grid geometry.
func (f *Field) Grids() Grids { return f.grids.clone() }

// LoadingZone returns the loading zone and substation geometry.
func (f *Field) LoadingZone() LoadingZone { return f.loadingZone.clone() }

// StagingLocations returns where game pieces are staged at the start of a match.
func (f *Field) StagingLocations() StagingLocations { return f.staging.clone() }
