package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/team4099/robot2023/internal/api"
	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/render"
	"github.com/team4099/robot2023/internal/security"
	"github.com/team4099/robot2023/internal/units"
	"github.com/team4099/robot2023/internal/version"
)

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", fs.Name(), fs.Args())
	}
	return nil
}

// finite rejects NaN and infinite coordinate flags.
func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid -%s %v: not a finite number", name, v)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runTags(_ context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("tags", stdout)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tags := api.Tags(field.Default(), g.units)
	if *asJSON {
		return writeJSON(stdout, tags)
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tX (%[1]s)\tY (%[1]s)\tZ (%[1]s)\tYAW (deg)\n", g.units)
	for _, t := range tags {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.1f\n", t.ID, t.X, t.Y, t.Z, units.InDegrees(t.Yaw))
	}
	return tw.Flush()
}

func runReflect(_ context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("reflect", stdout)
	x := fs.Float64("x", 0, "X in the global -units")
	y := fs.Float64("y", 0, "Y in the global -units")
	heading := fs.String("heading", "", "optional heading in degrees; reflects a pose instead of a point")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := errors.Join(finite("x", *x), finite("y", *y)); err != nil {
		return err
	}

	p := geometry.Pt(units.ToMeters(*x, g.units), units.ToMeters(*y, g.units))
	if *heading == "" {
		r := field.Reflect(p, g.alliance)
		_, err := fmt.Fprintf(stdout, "%s: (%.4f, %.4f) %s\n", g.alliance,
			units.ConvertLength(r.X, g.units), units.ConvertLength(r.Y, g.units), g.units)
		return err
	}

	deg, err := strconv.ParseFloat(*heading, 64)
	if err != nil {
		return fmt.Errorf("invalid heading %q: %w", *heading, err)
	}
	if err := finite("heading", deg); err != nil {
		return err
	}
	r := field.ReflectPose(geometry.Pose2D{X: p.X, Y: p.Y, Heading: units.Degrees(deg)}, g.alliance)
	_, err = fmt.Fprintf(stdout, "%s: (%.4f, %.4f) %s heading %.2f deg\n", g.alliance,
		units.ConvertLength(r.X, g.units), units.ConvertLength(r.Y, g.units), g.units,
		units.InDegrees(r.Heading))
	return err
}

func runRegions(_ context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("regions", stdout)
	name := fs.String("name", "", "print only this region")
	asJSON := fs.Bool("json", false, "print JSON instead of a listing")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	regions := api.Regions(field.Default(), g.alliance, g.units)
	if *name != "" {
		var match []api.Region
		for _, r := range regions {
			if r.Name == *name {
				match = append(match, r)
			}
		}
		if len(match) == 0 {
			return fmt.Errorf("no region %q", *name)
		}
		regions = match
	}
	if *asJSON {
		return writeJSON(stdout, regions)
	}
	for _, r := range regions {
		fmt.Fprintf(stdout, "%s (%s, %d points, %s)\n", r.Name, r.Kind, len(r.Points), g.units)
		for i, p := range r.Points {
			fmt.Fprintf(stdout, "  [%d] %.3f %.3f %.3f\n", i, p[0], p[1], p[2])
		}
	}
	return nil
}

func runDrivetrain(_ context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("drivetrain", stdout)
	speedUnits := fs.String("speed-units", "", "print only the velocity limits in these units ("+strings.Join(units.ValidSpeedUnits, ", ")+")")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	c, err := g.drivetrainConstants()
	if err != nil {
		return err
	}
	if *speedUnits == "" {
		return writeJSON(stdout, c)
	}
	u, err := units.ParseSpeed(*speedUnits)
	if err != nil {
		return err
	}
	return writeJSON(stdout, c.SpeedLimits(u))
}

func runPlot(_ context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("plot", stdout)
	out := fs.String("o", "field.png", "output file; the extension picks the format (.png or .html)")
	title := fs.String("title", "", "plot title")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := security.ValidateOutputPath(*out); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(*out))
	if ext != ".png" && ext != ".html" {
		return fmt.Errorf("unsupported plot format %q (use .png or .html)", ext)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	if ext == ".png" {
		err = render.PNG(f, field.Default(), g.alliance, render.Options{Units: g.units, Title: *title})
	} else {
		err = render.HTML(f, field.Default(), g.alliance, g.units)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s\n", *out)
	return err
}

func runVersion(_ context.Context, _ globals, args []string, stdout io.Writer) error {
	if err := parseFlags(newFlagSet("version", stdout), args); err != nil {
		return err
	}
	_, err := fmt.Fprintln(stdout, version.String())
	return err
}
