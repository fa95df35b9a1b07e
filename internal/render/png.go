package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/units"
)

// Options controls the static map.
type Options struct {
	// Width and Height of the image. Zero picks a size with the field's
	// aspect ratio.
	Width, Height vg.Length
	// Units is the axis length unit; empty means meters.
	Units string
	// Title overrides the default plot title.
	Title string
}

func (o Options) withDefaults(f *field.Field) Options {
	if o.Width == 0 {
		o.Width = 14 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = o.Width * vg.Length(f.Width()/f.Length())
	}
	if o.Units == "" {
		o.Units = units.M
	}
	return o
}

// tagArrowLength is how far a tag's facing arrow reaches into the field.
var tagArrowLength = units.Inches(24)

func xy(pts []geometry.Point3D, unit string) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: units.ConvertLength(p.X, unit), Y: units.ConvertLength(p.Y, unit)}
	}
	return out
}

// facingArrow runs from a tag along the direction it faces, projected onto
// the field plane.
func facingArrow(pose geometry.Pose3D, unit string) plotter.XYs {
	facing := pose.Facing()
	base := pose.Translation.ToPoint2D()
	tip := base.Add(geometry.FromVec(r2.Vec{X: facing.X, Y: facing.Y}).Scale(tagArrowLength))
	return xy([]geometry.Point3D{{X: base.X, Y: base.Y}, {X: tip.X, Y: tip.Y}}, unit)
}

// box returns the closed axis-aligned rectangle spanning pts.
func box(pts plotter.XYs) plotter.XYs {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return plotter.XYs{{X: minX, Y: minY}, {X: minX, Y: maxY}, {X: maxX, Y: maxY}, {X: maxX, Y: minY}}
}

// Plot builds the field map for one alliance's view.
func Plot(f *field.Field, alliance field.Alliance, o Options) (*plot.Plot, error) {
	o = o.withDefaults(f)
	if !units.IsValid(o.Units) {
		return nil, fmt.Errorf("%w %q", units.ErrUnknownUnit, o.Units)
	}

	p := plot.New()
	p.Title.Text = o.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("2023 field (%s alliance)", alliance)
	}
	p.X.Label.Text = fmt.Sprintf("X (%s)", o.Units)
	p.Y.Label.Text = fmt.Sprintf("Y (%s)", o.Units)
	p.X.Min, p.X.Max = 0, units.ConvertLength(f.Length(), o.Units)
	p.Y.Min, p.Y.Max = 0, units.ConvertLength(f.Width(), o.Units)
	p.Add(plotter.NewGrid())

	outline, err := plotter.NewPolygon(box(plotter.XYs{{X: p.X.Min, Y: p.Y.Min}, {X: p.X.Max, Y: p.Y.Max}}))
	if err != nil {
		return nil, err
	}
	outline.Color = nil
	outline.LineStyle.Width = vg.Points(2)
	p.Add(outline)

	regions := f.RegionsFor(alliance)
	colors := palette(len(regions))
	for i, r := range regions {
		pts := xy(r.Points, o.Units)
		switch r.Kind {
		case field.KindPolygon, field.KindCorners:
			if r.Kind == field.KindCorners {
				pts = box(pts)
			}
			poly, err := plotter.NewPolygon(pts)
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", r.Name, err)
			}
			c := color.RGBAModel.Convert(colors[i]).(color.RGBA)
			poly.LineStyle.Color = c
			poly.LineStyle.Width = vg.Points(1)
			c.A = 64
			poly.Color = c
			p.Add(poly)
			p.Legend.Add(r.Name, poly)
		default:
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", r.Name, err)
			}
			sc.GlyphStyle.Color = colors[i]
			sc.GlyphStyle.Radius = vg.Points(3)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			p.Legend.Add(r.Name, sc)
		}
	}

	// Tags are drawn where they physically are for either alliance.
	ids := f.TagIDs()
	tagPts := make([]geometry.Point3D, len(ids))
	labels := make([]string, len(ids))
	for i, id := range ids {
		pose, _ := f.Tag(id)
		tagPts[i] = pose.Translation
		labels[i] = fmt.Sprintf("tag %d", id)
	}
	tagXY := xy(tagPts, o.Units)
	tags, err := plotter.NewScatter(tagXY)
	if err != nil {
		return nil, err
	}
	tags.GlyphStyle.Shape = draw.SquareGlyph{}
	tags.GlyphStyle.Radius = vg.Points(4)
	p.Add(tags)
	p.Legend.Add("apriltags", tags)

	for _, id := range ids {
		pose, _ := f.Tag(id)
		arrow, err := plotter.NewLine(facingArrow(pose, o.Units))
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", id, err)
		}
		arrow.LineStyle.Width = vg.Points(1.5)
		p.Add(arrow)
	}

	tagLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: tagXY, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(tagLabels)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// PNG writes the field map for alliance to w.
func PNG(w io.Writer, f *field.Field, alliance field.Alliance, o Options) error {
	p, err := Plot(f, alliance, o)
	if err != nil {
		return err
	}
	o = o.withDefaults(f)
	wt, err := p.WriterTo(o.Width, o.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
