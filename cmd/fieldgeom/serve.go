package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/team4099/robot2023/internal/api"
	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/fieldstore"
	"github.com/team4099/robot2023/internal/monitoring"
)

func runServe(ctx context.Context, g globals, args []string, stdout io.Writer) error {
	fs := newFlagSet("serve", stdout)
	listen := fs.String("listen", ":8080", "listen address")
	dbPath := fs.String("db", "", "optional SQLite export database; enables /snapshots and /debug/")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *listen == "" {
		return errors.New("listen address is required")
	}

	drive, err := g.drivetrainConstants()
	if err != nil {
		return err
	}
	server := api.NewServer(field.Default(), drive, g.units)

	var db *fieldstore.DB
	if *dbPath != "" {
		db, err = fieldstore.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", *dbPath, err)
		}
		defer db.Close()
		server.WithStore(db)
	}

	mux := server.ServeMux()
	if db != nil {
		if err := db.AttachAdminRoutes(mux); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", *listen, err)
	}
	return serve(ctx, ln, api.LoggingMiddleware(mux), stdout)
}

// serve runs h on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler, stdout io.Writer) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	fmt.Fprintf(stdout, "serving field catalog on http://%s\n", ln.Addr())

	errc := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := srv.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	monitoring.Logf("Graceful shutdown complete")
	return nil
}
