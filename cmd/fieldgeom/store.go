package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/fieldstore"
	"github.com/team4099/robot2023/internal/security"
)

const defaultDBFile = "field_catalog.db"

func runExport(ctx context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("export", stdout)
	dbPath := fs.String("db", defaultDBFile, "SQLite database file")
	notes := fs.String("notes", "", "free-text notes stored with the snapshot")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := security.ValidateOutputPath(*dbPath); err != nil {
		return err
	}
	db, err := fieldstore.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *dbPath, err)
	}
	defer db.Close()

	snap, err := db.WriteSnapshot(ctx, field.Default(), g.alliance, *notes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "snapshot %s (%s alliance, fingerprint %s) written to %s\n",
		snap.ID, snap.Alliance, snap.Fingerprint, *dbPath)
	return err
}

func runSnapshots(ctx context.Context, _ globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("snapshots", stdout)
	dbPath := fs.String("db", defaultDBFile, "SQLite database file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	db, err := fieldstore.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *dbPath, err)
	}
	defer db.Close()

	list, err := db.Snapshots(ctx)
	if err != nil {
		return err
	}
	current := field.Default().Fingerprint()
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tALLIANCE\tVERSION\tSTALE\tNOTES")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", s.ID, s.CreatedAt.Format(time.RFC3339),
			s.Alliance, s.Version, s.Fingerprint != current, s.Notes)
	}
	return tw.Flush()
}

func runMigrate(_ context.Context, _ globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("migrate", stdout)
	dbPath := fs.String("db", defaultDBFile, "SQLite database file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, "Usage: fieldgeom migrate [-db file] up|down|status")
		return errUsage
	}

	// Open without migrating; the schema is what this command manages.
	db, err := fieldstore.OpenDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *dbPath, err)
	}
	defer db.Close()

	switch action := fs.Arg(0); action {
	case "up":
		if err := db.MigrateUp(); err != nil {
			return err
		}
	case "down":
		if err := db.MigrateDown(); err != nil {
			return err
		}
	case "status":
	default:
		fmt.Fprintf(stdout, "Unknown migrate action: %s\n", action)
		return errUsage
	}

	v, dirty, err := db.MigrateVersion()
	if err != nil {
		return err
	}
	latest, err := fieldstore.LatestMigrationVersion()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "schema version %d of %d (dirty=%t)\n", v, latest, dirty)
	return err
}
