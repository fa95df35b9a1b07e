// Command fieldgeom prints, exports, plots and serves the 2023 field
// geometry catalog and drivetrain constants.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/team4099/robot2023/internal/config"
	"github.com/team4099/robot2023/internal/drivetrain"
	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/units"
)

// errUsage is returned when the command line could not be understood; the
// usage text has already been printed.
var errUsage = errors.New("usage error")

// globals are the flags accepted before the subcommand name.
type globals struct {
	units    string
	alliance field.Alliance
	tuning   string
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, g globals, args []string, stdout io.Writer) error
}

var commands = []command{
	{"tags", "print the AprilTag catalog", runTags},
	{"reflect", "move a point or pose to an alliance's side", runReflect},
	{"regions", "print field regions and node positions", runRegions},
	{"drivetrain", "print drivetrain constants with tuning applied", runDrivetrain},
	{"export", "write a catalog snapshot to SQLite", runExport},
	{"snapshots", "list snapshots stored in SQLite", runSnapshots},
	{"plot", "render the field to a .png or .html file", runPlot},
	{"serve", "serve the catalog over HTTP", runServe},
	{"migrate", "manage the export database schema (up|down|status)", runMigrate},
	{"version", "print build information", runVersion},
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: fieldgeom [flags] <command> [command flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.usage)
	}
	if fs == nil {
		return
	}
	fmt.Fprintf(w, "\nFlags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func parseGlobals(args []string, stderr io.Writer) (globals, []string, error) {
	fs := flag.NewFlagSet("fieldgeom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	unitFlag := fs.String("units", units.M, "length units for input and output ("+units.GetValidUnitsString()+")")
	allianceFlag := fs.String("alliance", "blue", "alliance whose side of the field to use (blue|red)")
	tuning := fs.String("tuning", "", "optional tuning config (.json, .yaml) applied to drivetrain defaults")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return globals{}, nil, errUsage
	}
	u, err := units.Parse(*unitFlag)
	if err != nil {
		return globals{}, nil, err
	}
	a, err := field.ParseAlliance(*allianceFlag)
	if err != nil {
		return globals{}, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return globals{}, nil, errUsage
	}
	return globals{units: u, alliance: a, tuning: *tuning}, fs.Args(), nil
}

// drivetrainConstants loads the tuning file named by -tuning, if any.
func (g globals) drivetrainConstants() (drivetrain.Constants, error) {
	if g.tuning == "" {
		return drivetrain.Defaults(), nil
	}
	cfg, err := config.LoadTuningConfig(g.tuning)
	if err != nil {
		return drivetrain.Constants{}, err
	}
	return drivetrain.FromTuning(cfg), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	g, rest, err := parseGlobals(args, stderr)
	if err != nil {
		return err
	}
	name, rest := rest[0], rest[1:]
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, g, rest, stdout)
		}
	}
	fmt.Fprintf(stderr, "Unknown command: %s\n\n", name)
	usage(stderr, nil)
	return errUsage
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatalf("fieldgeom: %v", err)
	}
}
