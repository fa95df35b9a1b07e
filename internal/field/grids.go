package field

import (
	"slices"

	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// NodeRowCount is the number of node rows in each grid column.
const NodeRowCount = 9

// Grids holds the dimensions for the scoring grids and nodes. All nodes in
// the same column share an X coordinate and all nodes in the same row share
// a Y coordinate; row 0 is closest to the field's right wall.
type Grids struct {
	// X layout
	OuterX float64
	LowX   float64 // centered when under cube nodes
	MidX   float64
	HighX  float64

	// Y layout
	NodeRowCount    int
	NodeFirstY      float64
	NodeSeparationY float64

	// Z layout
	CubeEdgeHigh float64
	HighCubeZ    float64
	MidCubeZ     float64
	HighConeZ    float64
	MidConeZ     float64

	LowTranslations    []geometry.Point2D
	MidTranslations    []geometry.Point2D
	Mid3dTranslations  []geometry.Point3D
	HighTranslations   []geometry.Point2D
	High3dTranslations []geometry.Point3D

	// Complex low layout, shifted to account for cube vs cone rows and the
	// wide edge nodes.
	ComplexLowXCones       float64 // centered X under cone nodes
	ComplexLowXCubes       float64 // centered X under cube nodes
	ComplexLowOuterYOffset float64
	ComplexLowTranslations []geometry.Point2D
}

// IsCubeRow reports whether node row i takes cubes rather than cones.
func IsCubeRow(i int) bool { return i == 1 || i == 4 || i == 7 }

// rows builds an n-element sequence from its index.
func rows[T any](n int, at func(i int) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func newGrids() Grids {
	g := Grids{
		OuterX:          units.Inches(54.25),
		NodeRowCount:    NodeRowCount,
		NodeFirstY:      units.Inches(20.19),
		NodeSeparationY: units.Inches(22.0),
		CubeEdgeHigh:    units.Inches(3.0),
		HighConeZ:       units.Inches(46.0),
		MidConeZ:        units.Inches(34.0),
	}
	g.LowX = g.OuterX - units.Inches(14.25)/2
	g.MidX = g.OuterX - units.Inches(22.75)
	g.HighX = g.OuterX - units.Inches(39.75)
	g.HighCubeZ = units.Inches(35.5) - g.CubeEdgeHigh
	g.MidCubeZ = units.Inches(23.5) - g.CubeEdgeHigh

	rowY := func(i int) float64 { return g.NodeFirstY + g.NodeSeparationY*float64(i) }
	midZ := func(i int) float64 {
		if IsCubeRow(i) {
			return g.MidCubeZ
		}
		return g.MidConeZ
	}
	highZ := func(i int) float64 {
		if IsCubeRow(i) {
			return g.HighCubeZ
		}
		return g.HighConeZ
	}

	g.LowTranslations = rows(NodeRowCount, func(i int) geometry.Point2D {
		return geometry.Pt(g.LowX, rowY(i))
	})
	g.MidTranslations = rows(NodeRowCount, func(i int) geometry.Point2D {
		return geometry.Pt(g.MidX, rowY(i))
	})
	g.HighTranslations = rows(NodeRowCount, func(i int) geometry.Point2D {
		return geometry.Pt(g.HighX, rowY(i))
	})
	g.Mid3dTranslations = rows(NodeRowCount, func(i int) geometry.Point3D {
		return geometry.Point3D{X: g.MidX, Y: rowY(i), Z: midZ(i)}
	})
	g.High3dTranslations = rows(NodeRowCount, func(i int) geometry.Point3D {
		return geometry.Point3D{X: g.HighX, Y: rowY(i), Z: highZ(i)}
	})

	g.ComplexLowXCones = g.OuterX - units.Inches(16.0)/2
	g.ComplexLowXCubes = g.LowX
	g.ComplexLowOuterYOffset = g.NodeFirstY - units.Inches(3.0) - units.Inches(25.75)/2
	g.ComplexLowTranslations = rows(NodeRowCount, func(i int) geometry.Point2D {
		x := g.ComplexLowXCones
		if IsCubeRow(i) {
			x = g.ComplexLowXCubes
		}
		y := rowY(i)
		switch i {
		case 0:
			y -= g.ComplexLowOuterYOffset
		case NodeRowCount - 1:
			y += g.ComplexLowOuterYOffset
		}
		return geometry.Pt(x, y)
	})
	return g
}

func (g Grids) clone() Grids {
	g.LowTranslations = slices.Clone(g.LowTranslations)
	g.MidTranslations = slices.Clone(g.MidTranslations)
	g.Mid3dTranslations = slices.Clone(g.Mid3dTranslations)
	g.HighTranslations = slices.Clone(g.HighTranslations)
	g.High3dTranslations = slices.Clone(g.High3dTranslations)
	g.ComplexLowTranslations = slices.Clone(g.ComplexLowTranslations)
	return g
}
