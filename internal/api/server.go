// Package api serves the field catalog, the drivetrain table and the
// alliance reflection functions over HTTP as JSON.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/team4099/robot2023/internal/drivetrain"
	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/fieldstore"
	"github.com/team4099/robot2023/internal/monitoring"
	"github.com/team4099/robot2023/internal/units"
)

// ANSI escape codes for request log coloring
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

type Server struct {
	field *field.Field
	drive drivetrain.Constants
	units string
	store *fieldstore.DB
}

// NewServer returns a server over f and drive. Lengths in requests and
// responses use units; an unknown unit falls back to meters.
func NewServer(f *field.Field, drive drivetrain.Constants, unit string) *Server {
	if !units.IsValid(unit) {
		unit = units.M
	}
	return &Server{field: f, drive: drive, units: unit}
}

// WithStore enables the snapshot endpoints backed by db.
func (s *Server) WithStore(db *fieldstore.DB) *Server {
	s.store = db
	return s
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	code := strconv.Itoa(statusCode)
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + code + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + code + colorReset
	case statusCode >= 400:
		return colorBoldRed + code + colorReset
	default:
		return code
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/tags", s.listTags)
	mux.HandleFunc("/tags/{id}", s.showTag)
	mux.HandleFunc("/regions", s.listRegions)
	mux.HandleFunc("/regions/{name}", s.showRegion)
	mux.HandleFunc("/reflect", s.reflect)
	mux.HandleFunc("/drivetrain", s.showDrivetrain)
	mux.HandleFunc("/drivetrain/speeds", s.showSpeedLimits)
	mux.HandleFunc("/fingerprint", s.showFingerprint)
	mux.HandleFunc("/config", s.showConfig)
	mux.HandleFunc("/field.html", s.fieldHTML)
	mux.HandleFunc("/field.png", s.fieldPNG)
	if s.store != nil {
		mux.HandleFunc("/snapshots", s.snapshots)
		mux.HandleFunc("/snapshots/{id}", s.snapshot)
		mux.HandleFunc("/snapshots/{id}/tags", s.snapshotTags)
		mux.HandleFunc("/snapshots/{id}/regions/{name}", s.snapshotRegion)
	}
	return mux
}
