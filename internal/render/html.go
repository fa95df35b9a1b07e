package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/units"
)

// AssetsHost is where the page loads echarts from. Empty uses the
// go-echarts default CDN.
var AssetsHost = ""

func scatterData(xs, ys []float64, label string) []opts.ScatterData {
	data := make([]opts.ScatterData, len(xs))
	for i := range xs {
		data[i] = opts.ScatterData{Name: fmt.Sprintf("%s[%d]", label, i), Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

// HTML writes an interactive scatter view of the field for alliance to w,
// with one series per region plus the AprilTags. Axes use unit.
func HTML(w io.Writer, f *field.Field, alliance field.Alliance, unit string) error {
	if unit == "" {
		unit = units.M
	}
	if !units.IsValid(unit) {
		return fmt.Errorf("%w %q", units.ErrUnknownUnit, unit)
	}
	conv := func(v float64) float64 { return units.ConvertLength(v, unit) }

	init := opts.Initialization{PageTitle: "2023 Field", Width: "1200px", Height: "640px"}
	if AssetsHost != "" {
		init.AssetsHost = AssetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: "2023 Field", Subtitle: fmt.Sprintf("alliance=%s fingerprint=%s", alliance, f.Fingerprint())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: conv(f.Length()), Name: fmt.Sprintf("X (%s)", unit), NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: conv(f.Width()), Name: fmt.Sprintf("Y (%s)", unit), NameLocation: "middle", NameGap: 30}),
	)

	regions := f.RegionsFor(alliance)
	colors := palette(len(regions))
	for i, r := range regions {
		xs := make([]float64, len(r.Points))
		ys := make([]float64, len(r.Points))
		for j, p := range r.Points {
			xs[j], ys[j] = conv(p.X), conv(p.Y)
		}
		scatter.AddSeries(r.Name, scatterData(xs, ys, r.Name),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}

	ids := f.TagIDs()
	xs := make([]float64, len(ids))
	ys := make([]float64, len(ids))
	for i, id := range ids {
		pose, _ := f.Tag(id)
		xs[i], ys[i] = conv(pose.Translation.X), conv(pose.Translation.Y)
	}
	tags := scatterData(xs, ys, "tag")
	for i := range tags {
		tags[i].Name = fmt.Sprintf("tag %d", ids[i])
		tags[i].Symbol = "rect"
	}
	scatter.AddSeries("apriltags", tags, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render field page: %w", err)
	}
	return nil
}
