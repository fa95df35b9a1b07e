package field

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() returned different catalogs")
	}
}

func TestTagCatalog(t *testing.T) {
	f := New()
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8}, f.TagIDs()); diff != "" {
		t.Errorf("TagIDs mismatch (-want +got):\n%s", diff)
	}
	for id, pose := range f.Tags() {
		if pose.Translation.Z < 0 {
			t.Errorf("tag %d has negative height %v", id, pose.Translation.Z)
		}
	}
	if _, ok := f.Tag(9); ok {
		t.Error("Tag(9) found, want absent")
	}
	if _, ok := f.Tag(0); ok {
		t.Error("Tag(0) found, want absent")
	}
}

func TestTagPoses(t *testing.T) {
	f := New()
	tests := []struct {
		id      int
		x, y, z float64
		yaw     float64
	}{
		{1, 610.77, 42.19, 18.22, math.Pi},
		{3, 610.77, 174.19, 18.22, math.Pi},
		{4, 636.96, 265.74, 27.38, math.Pi},
		{5, 14.25, 265.74, 27.38, 0},
		{8, 40.45, 42.19, 18.22, 0},
	}
	for _, tt := range tests {
		got, ok := f.Tag(tt.id)
		if !ok {
			t.Fatalf("tag %d missing", tt.id)
		}
		want := geometry.Pose3D{
			Translation: geometry.Point3D{X: units.Inches(tt.x), Y: units.Inches(tt.y), Z: units.Inches(tt.z)},
			Rotation:    geometry.Rotation3D{Yaw: tt.yaw},
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("tag %d mismatch (-want +got):\n%s", tt.id, diff)
		}
	}
}

func TestTagsAreSymmetric(t *testing.T) {
	// Tags 1-4 mirror tags 8-5 across the centerline.
	f := New()
	pairs := [][2]int{{1, 8}, {2, 7}, {3, 6}, {4, 5}}
	for _, p := range pairs {
		a, _ := f.Tag(p[0])
		b, _ := f.Tag(p[1])
		mirrored := Reflect(a.Translation.ToPoint2D(), Red)
		if !mirrored.ApproxEqual(b.Translation.ToPoint2D(), units.Inches(0.05)) {
			t.Errorf("tag %d reflected to %v, tag %d is at %v", p[0], mirrored, p[1], b.Translation.ToPoint2D())
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := New()

	tags := f.Tags()
	delete(tags, 1)
	tags[99] = geometry.Pose3D{}
	if _, ok := f.Tag(1); !ok {
		t.Error("deleting from Tags() result removed tag 1 from the catalog")
	}
	if _, ok := f.Tag(99); ok {
		t.Error("adding to Tags() result changed the catalog")
	}

	g := f.Grids()
	g.LowTranslations[0] = geometry.Pt(-1, -1)
	if f.Grids().LowTranslations[0] == geometry.Pt(-1, -1) {
		t.Error("writing to Grids() result changed the catalog")
	}

	c := f.Community()
	c.RegionCorners[0] = geometry.Pt(-1, -1)
	if f.Community().RegionCorners[0] == geometry.Pt(-1, -1) {
		t.Error("writing to Community() result changed the catalog")
	}

	lz := f.LoadingZone()
	lz.RegionCorners[0] = geometry.Pt(-1, -1)
	if f.LoadingZone().RegionCorners[0] == geometry.Pt(-1, -1) {
		t.Error("writing to LoadingZone() result changed the catalog")
	}

	s := f.StagingLocations()
	s.Translations[0] = geometry.Pt(-1, -1)
	if f.StagingLocations().Translations[0] == geometry.Pt(-1, -1) {
		t.Error("writing to StagingLocations() result changed the catalog")
	}
}

func TestGridNodeRows(t *testing.T) {
	g := New().Grids()
	sep := units.Inches(22.0)

	for name, nodes := range map[string][]geometry.Point2D{
		"low":         g.LowTranslations,
		"mid":         g.MidTranslations,
		"high":        g.HighTranslations,
		"complex low": g.ComplexLowTranslations,
	} {
		if len(nodes) != NodeRowCount {
			t.Errorf("%s has %d nodes, want %d", name, len(nodes), NodeRowCount)
		}
		for i := 1; i < len(nodes); i++ {
			if nodes[i].Y <= nodes[i-1].Y {
				t.Errorf("%s Y not increasing at row %d", name, i)
			}
		}
	}

	for name, nodes := range map[string][]geometry.Point2D{
		"low":  g.LowTranslations,
		"mid":  g.MidTranslations,
		"high": g.HighTranslations,
	} {
		for i := 1; i < len(nodes); i++ {
			if d := nodes[i].Y - nodes[i-1].Y; math.Abs(d-sep) > tol {
				t.Errorf("%s spacing at row %d = %v, want %v", name, i, d, sep)
			}
			if nodes[i].X != nodes[0].X {
				t.Errorf("%s column X differs at row %d", name, i)
			}
		}
	}

	if math.Abs(g.LowTranslations[0].Y-units.Inches(20.19)) > tol {
		t.Errorf("first row Y = %v", g.LowTranslations[0].Y)
	}
	if math.Abs(g.HighX-units.Inches(14.5)) > tol {
		t.Errorf("HighX = %v, want 14.5in", g.HighX)
	}
}

func TestGrid3DHeights(t *testing.T) {
	g := New().Grids()
	if len(g.Mid3dTranslations) != NodeRowCount || len(g.High3dTranslations) != NodeRowCount {
		t.Fatalf("3d arrays have %d/%d rows", len(g.Mid3dTranslations), len(g.High3dTranslations))
	}
	for i := 0; i < NodeRowCount; i++ {
		wantMid, wantHigh := g.MidConeZ, g.HighConeZ
		if IsCubeRow(i) {
			wantMid, wantHigh = g.MidCubeZ, g.HighCubeZ
		}
		if g.Mid3dTranslations[i].Z != wantMid {
			t.Errorf("mid row %d Z = %v, want %v", i, g.Mid3dTranslations[i].Z, wantMid)
		}
		if g.High3dTranslations[i].Z != wantHigh {
			t.Errorf("high row %d Z = %v, want %v", i, g.High3dTranslations[i].Z, wantHigh)
		}
		if g.Mid3dTranslations[i].ToPoint2D() != g.MidTranslations[i] {
			t.Errorf("mid row %d 3d/2d mismatch", i)
		}
		if g.High3dTranslations[i].ToPoint2D() != g.HighTranslations[i] {
			t.Errorf("high row %d 3d/2d mismatch", i)
		}
	}
	if math.Abs(g.MidCubeZ-units.Inches(20.5)) > tol || math.Abs(g.HighCubeZ-units.Inches(32.5)) > tol {
		t.Errorf("cube heights = %v/%v", g.MidCubeZ, g.HighCubeZ)
	}
}

func TestComplexLowLayout(t *testing.T) {
	g := New().Grids()
	nodes := g.ComplexLowTranslations
	for i, n := range nodes {
		want := g.ComplexLowXCones
		if IsCubeRow(i) {
			want = g.ComplexLowXCubes
		}
		if n.X != want {
			t.Errorf("row %d X = %v, want %v", i, n.X, want)
		}
	}
	if math.Abs(nodes[0].Y-(g.NodeFirstY-g.ComplexLowOuterYOffset)) > tol {
		t.Errorf("first row Y = %v", nodes[0].Y)
	}
	last := g.NodeFirstY + g.NodeSeparationY*8 + g.ComplexLowOuterYOffset
	if math.Abs(nodes[8].Y-last) > tol {
		t.Errorf("last row Y = %v, want %v", nodes[8].Y, last)
	}
	if math.Abs(nodes[4].Y-g.MidTranslations[4].Y) > tol {
		t.Errorf("middle row shifted: %v", nodes[4].Y)
	}
}

func TestCommunityGeometry(t *testing.T) {
	c := New().Community()
	if len(c.RegionCorners) != 6 {
		t.Fatalf("community has %d corners", len(c.RegionCorners))
	}
	if math.Abs(c.MidY-units.Inches(158.61)) > tol {
		t.Errorf("MidY = %vin, want 158.61in", units.InInches(c.MidY))
	}
	if math.Abs(c.CableBumpInnerX-units.Inches(149.5)) > tol {
		t.Errorf("CableBumpInnerX = %vin, want 149.5in", units.InInches(c.CableBumpInnerX))
	}
	if math.Abs(c.ChargingStationOuterX-c.ChargingStationInnerX-c.ChargingStationLength) > tol {
		t.Error("charging station length does not match its corners")
	}
	if math.Abs(c.ChargingStationLeftY-c.ChargingStationRightY-c.ChargingStationWidth) > tol {
		t.Error("charging station width does not match its corners")
	}
	want := []geometry.Point2D{
		geometry.Pt(0, 0),
		geometry.Pt(0, units.Feet(18)),
		geometry.Pt(c.MidX, units.Feet(18)),
		geometry.Pt(c.MidX, c.MidY),
		geometry.Pt(c.OuterX, c.MidY),
		geometry.Pt(c.OuterX, 0),
	}
	if diff := cmp.Diff(want, c.RegionCorners); diff != "" {
		t.Errorf("community corners (-want +got):\n%s", diff)
	}
}

func TestLoadingZoneGeometry(t *testing.T) {
	lz := New().LoadingZone()
	if len(lz.RegionCorners) != 6 {
		t.Fatalf("loading zone has %d corners", len(lz.RegionCorners))
	}
	if math.Abs(lz.MidX-units.Inches(519)) > tol {
		t.Errorf("MidX = %vin, want 519in", units.InInches(lz.MidX))
	}
	if math.Abs(lz.RightY-units.Inches(216.5)) > tol {
		t.Errorf("RightY = %vin, want 216.5in", units.InInches(lz.RightY))
	}
	if lz.RegionCorners[0] != geometry.Pt(lz.MidX, lz.RightY) {
		t.Errorf("first corner = %v", lz.RegionCorners[0])
	}
	if lz.SingleSubstationTranslation.Y != FieldWidth {
		t.Errorf("single substation sits at Y %v, want field width", lz.SingleSubstationTranslation.Y)
	}
	if math.Abs(lz.SingleSubstationHighZ-lz.SingleSubstationLowZ-lz.SingleSubstationHeight) > tol {
		t.Error("single substation height mismatch")
	}
	if math.Abs(lz.DoubleSubstationShelfZ-units.Inches(37.375)) > tol {
		t.Errorf("double substation shelf = %v", lz.DoubleSubstationShelfZ)
	}
}

func TestStagingLocations(t *testing.T) {
	s := New().StagingLocations()
	if len(s.Translations) != StagedPieceCount {
		t.Fatalf("%d staged pieces, want %d", len(s.Translations), StagedPieceCount)
	}
	for i, p := range s.Translations {
		wantY := units.Inches(36.19 + 48.0*float64(i))
		if math.Abs(p.Y-wantY) > tol || p.X != s.PositionX {
			t.Errorf("staged piece %d at %v, want (%v, %v)", i, p, s.PositionX, wantY)
		}
	}
	if math.Abs(s.PositionX-(FieldLength/2-units.Inches(47.36))) > tol {
		t.Errorf("PositionX = %v", s.PositionX)
	}
}

func TestRegions(t *testing.T) {
	f := New()
	regions := f.Regions()
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
		if len(r.Points) == 0 {
			t.Errorf("region %s is empty", r.Name)
		}
	}
	want := []string{
		RegionCommunity, RegionChargingStation, RegionCableBump,
		RegionGridLow, RegionGridMid, RegionGridHigh, RegionGridComplexLow,
		RegionLoadingZone, RegionSingleSubstation, RegionStaging,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("region names (-want +got):\n%s", diff)
	}

	mid, ok := f.Region(RegionGridMid)
	if !ok {
		t.Fatal("grid_mid missing")
	}
	if diff := cmp.Diff(f.Grids().Mid3dTranslations, mid.Points); diff != "" {
		t.Errorf("grid_mid points (-want +got):\n%s", diff)
	}
	if _, ok := f.Region("moat"); ok {
		t.Error("unknown region found")
	}
}

func TestRegionsFor(t *testing.T) {
	f := New()
	blue := f.RegionsFor(Blue)
	red := f.RegionsFor(Red)
	if diff := cmp.Diff(f.Regions(), blue); diff != "" {
		t.Errorf("blue regions differ from canonical (-want +got):\n%s", diff)
	}
	for i := range red {
		for j, p := range red[i].Points {
			b := blue[i].Points[j]
			if math.Abs(p.X-(FieldLength-b.X)) > tol || p.Y != b.Y || p.Z != b.Z {
				t.Errorf("%s[%d] red = %+v, blue = %+v", red[i].Name, j, p, b)
			}
		}
	}
}

func TestFingerprint(t *testing.T) {
	a, b := New().Fingerprint(), New().Fingerprint()
	if a != b {
		t.Errorf("fingerprint not stable: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("fingerprint %q has length %d, want 16", a, len(a))
	}
}

func TestDefaultIsReadOnly(t *testing.T) {
	f := Default()
	want := New().Fingerprint()

	tags := f.Tags()
	tags[1] = geometry.Pose3D{}
	delete(tags, 2)
	c := f.Community()
	c.RegionCorners[0] = geometry.Pt(-1, -1)
	g := f.Grids()
	g.High3dTranslations[0].Z = 100
	g.LowTranslations[0] = geometry.Pt(-1, -1)
	lz := f.LoadingZone()
	lz.RegionCorners[0] = geometry.Pt(-1, -1)
	s := f.StagingLocations()
	s.Translations[0] = geometry.Pt(-1, -1)
	for _, r := range f.Regions() {
		r.Points[0].X = -1
	}
	for _, r := range f.RegionsFor(Red) {
		r.Points[0].X = -1
	}
	ids := f.TagIDs()
	ids[0] = 99

	if got := f.Fingerprint(); got != want {
		t.Errorf("Default() fingerprint changed to %s, want %s", got, want)
	}
	if f.Length() != FieldLength || f.Width() != FieldWidth || f.TapeWidth() != TapeWidth {
		t.Errorf("dimensions = %v x %v (tape %v), want %v x %v (tape %v)",
			f.Length(), f.Width(), f.TapeWidth(), FieldLength, FieldWidth, TapeWidth)
	}
	if math.Abs(units.InInches(f.Length())-651.25) > 1e-9 || math.Abs(units.InInches(f.Width())-315.5) > 1e-9 {
		t.Errorf("dimensions in inches = %v x %v", units.InInches(f.Length()), units.InInches(f.Width()))
	}
	if _, ok := f.Tag(2); !ok {
		t.Error("tag 2 removed from the shared catalog")
	}
}

func TestParseAlliance(t *testing.T) {
	tests := []struct {
		in      string
		want    Alliance
		wantErr bool
	}{
		{"blue", Blue, false},
		{"RED", Red, false},
		{" Red ", Red, false},
		{"green", Blue, true},
		{"", Blue, true},
	}
	for _, tt := range tests {
		got, err := ParseAlliance(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownAlliance) {
				t.Errorf("ParseAlliance(%q) err = %v, want ErrUnknownAlliance", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAlliance(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if !Red.Mirrored() || Blue.Mirrored() {
		t.Error("only red should be mirrored")
	}
	if s := Alliance(7).String(); s != "Alliance(7)" {
		t.Errorf("String() = %q", s)
	}
}

func TestAllianceJSON(t *testing.T) {
	type payload struct {
		Alliance Alliance `json:"alliance"`
	}
	data, err := json.Marshal(payload{Alliance: Red})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"alliance":"red"}` {
		t.Errorf("marshal = %s", data)
	}
	var p payload
	if err := json.Unmarshal([]byte(`{"alliance":"Blue"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Alliance != Blue {
		t.Errorf("unmarshal = %v", p.Alliance)
	}
	if err := json.Unmarshal([]byte(`{"alliance":"purple"}`), &p); err == nil {
		t.Error("expected error for unknown alliance")
	}
}
