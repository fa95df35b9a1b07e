package field

import "github.com/team4099/robot2023/internal/geometry"

// RegionKind says how a region's points should be read.
type RegionKind string

const (
	// KindPolygon is a cyclic boundary; the last point joins the first.
	KindPolygon RegionKind = "polygon"
	// KindCorners are the four corners of an axis-aligned rectangle, listed
	// inner edge first.
	KindCorners RegionKind = "corners"
	// KindNodes are independent positions indexed by row.
	KindNodes RegionKind = "nodes"
)

// Region names used by Regions and the catalog export.
const (
	RegionCommunity        = "community"
	RegionChargingStation  = "charging_station"
	RegionCableBump        = "cable_bump"
	RegionGridLow          = "grid_low"
	RegionGridMid          = "grid_mid"
	RegionGridHigh         = "grid_high"
	RegionGridComplexLow   = "grid_complex_low"
	RegionLoadingZone      = "loading_zone"
	RegionSingleSubstation = "single_substation"
	RegionStaging          = "staging"
)

// Region is a named, ordered list of points. Points without a meaningful
// height have Z == 0.
type Region struct {
	Name   string             `json:"name"`
	Kind   RegionKind         `json:"kind"`
	Points []geometry.Point3D `json:"points"`
}

func flat(points []geometry.Point2D) []geometry.Point3D {
	out := make([]geometry.Point3D, len(points))
	for i, p := range points {
		out[i] = geometry.Point3D{X: p.X, Y: p.Y}
	}
	return out
}

// Regions lists every region and node set in the catalog in a fixed order,
// in the canonical frame. The returned slices are owned by the caller.
func (f *Field) Regions() []Region {
	c, g, lz, s := f.community, f.grids, f.loadingZone, f.staging
	return []Region{
		{Name: RegionCommunity, Kind: KindPolygon, Points: flat(c.RegionCorners)},
		{Name: RegionChargingStation, Kind: KindCorners, Points: flat(c.ChargingStationCorners)},
		{Name: RegionCableBump, Kind: KindCorners, Points: flat(c.CableBumpCorners)},
		{Name: RegionGridLow, Kind: KindNodes, Points: flat(g.LowTranslations)},
		{Name: RegionGridMid, Kind: KindNodes, Points: append([]geometry.Point3D(nil), g.Mid3dTranslations...)},
		{Name: RegionGridHigh, Kind: KindNodes, Points: append([]geometry.Point3D(nil), g.High3dTranslations...)},
		{Name: RegionGridComplexLow, Kind: KindNodes, Points: flat(g.ComplexLowTranslations)},
		{Name: RegionLoadingZone, Kind: KindPolygon, Points: flat(lz.RegionCorners)},
		{Name: RegionSingleSubstation, Kind: KindNodes, Points: []geometry.Point3D{{
			X: lz.SingleSubstationTranslation.X,
			Y: lz.SingleSubstationTranslation.Y,
			Z: lz.SingleSubstationCenterZ,
		}}},
		{Name: RegionStaging, Kind: KindNodes, Points: flat(s.Translations)},
	}
}

// Region returns one named region.
func (f *Field) Region(name string) (Region, bool) {
	for _, r := range f.Regions() {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// RegionsFor returns Regions moved to the given alliance's side of the field.
func (f *Field) RegionsFor(a Alliance) []Region {
	regions := f.Regions()
	if !a.Mirrored() {
		return regions
	}
	for i := range regions {
		regions[i].Points = ReflectAll3D(regions[i].Points, a)
	}
	return regions
}
