package api

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/httputil"
	"github.com/team4099/robot2023/internal/render"
	"github.com/team4099/robot2023/internal/units"
)

// Tag is the wire form of one AprilTag. Lengths are in the server's units,
// angles in radians.
type Tag struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Region is the wire form of field.Region in the server's units.
type Region struct {
	Name   string           `json:"name"`
	Kind   field.RegionKind `json:"kind"`
	Points [][3]float64     `json:"points"`
}

// ReflectResult is returned by /reflect.
type ReflectResult struct {
	Alliance field.Alliance `json:"alliance"`
	Units    string         `json:"units"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Heading  *float64       `json:"heading,omitempty"`
}

func (s *Server) conv(m float64) float64 { return units.ConvertLength(m, s.units) }

// NewTag converts a tag pose to its wire form with lengths in unit.
func NewTag(id int, p geometry.Pose3D, unit string) Tag {
	conv := func(m float64) float64 { return units.ConvertLength(m, unit) }
	return Tag{
		ID: id,
		X:  conv(p.Translation.X), Y: conv(p.Translation.Y), Z: conv(p.Translation.Z),
		Roll: p.Rotation.Roll, Pitch: p.Rotation.Pitch, Yaw: p.Rotation.Yaw,
	}
}

// NewRegion converts a region to its wire form with lengths in unit.
func NewRegion(r field.Region, unit string) Region {
	out := Region{Name: r.Name, Kind: r.Kind, Points: make([][3]float64, len(r.Points))}
	for i, p := range r.Points {
		out.Points[i] = [3]float64{
			units.ConvertLength(p.X, unit),
			units.ConvertLength(p.Y, unit),
			units.ConvertLength(p.Z, unit),
		}
	}
	return out
}

// Tags lists every tag of f in ID order.
func Tags(f *field.Field, unit string) []Tag {
	ids := f.TagIDs()
	tags := make([]Tag, len(ids))
	for i, id := range ids {
		p, _ := f.Tag(id)
		tags[i] = NewTag(id, p, unit)
	}
	return tags
}

// Regions lists every region of f on the alliance's side.
func Regions(f *field.Field, a field.Alliance, unit string) []Region {
	regions := f.RegionsFor(a)
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = NewRegion(r, unit)
	}
	return out
}

// alliance reads the alliance query parameter, defaulting to blue.
func alliance(r *http.Request) (field.Alliance, error) {
	v := r.URL.Query().Get("alliance")
	if v == "" {
		return field.Blue, nil
	}
	return field.ParseAlliance(v)
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, Tags(s.field, s.units))
}

func (s *Server) showTag(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid tag id %q", r.PathValue("id")))
		return
	}
	p, ok := s.field.Tag(id)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("no tag %d", id))
		return
	}
	httputil.WriteJSONOK(w, NewTag(id, p, s.units))
}

func (s *Server) listRegions(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	a, err := alliance(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, Regions(s.field, a, s.units))
}

func (s *Server) showRegion(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	a, err := alliance(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	name := r.PathValue("name")
	for _, reg := range s.field.RegionsFor(a) {
		if reg.Name == name {
			httputil.WriteJSONOK(w, NewRegion(reg, s.units))
			return
		}
	}
	httputil.NotFound(w, fmt.Sprintf("no region %q", name))
}

func floatParam(r *http.Request, name string, required bool) (float64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		if required {
			return 0, false, fmt.Errorf("missing %q parameter", name)
		}
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %q parameter: %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("invalid %q parameter: %s is not finite", name, v)
	}
	return f, true, nil
}

// reflect moves a point or pose to the requested alliance's side. x and y
// are in the server's units, heading in radians.
func (s *Server) reflect(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	a, err := alliance(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	x, _, errX := floatParam(r, "x", true)
	y, _, errY := floatParam(r, "y", true)
	heading, hasHeading, errH := floatParam(r, "heading", false)
	if err := errors.Join(errX, errY, errH); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	res := ReflectResult{Alliance: a, Units: s.units}
	pose := geometry.Pose2D{X: units.ToMeters(x, s.units), Y: units.ToMeters(y, s.units), Heading: heading}
	if hasHeading {
		pose = field.ReflectPose(pose, a)
		res.Heading = &pose.Heading
		res.X, res.Y = s.conv(pose.X), s.conv(pose.Y)
	} else {
		p := field.Reflect(pose.Translation(), a)
		res.X, res.Y = s.conv(p.X), s.conv(p.Y)
	}
	httputil.WriteJSONOK(w, res)
}

func (s *Server) showDrivetrain(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, s.drive)
}

// showSpeedLimits serves the velocity limits in the speed unit named by the
// units query parameter, m/s by default.
func (s *Server) showSpeedLimits(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	unit := units.MPS
	if v := r.URL.Query().Get("units"); v != "" {
		var err error
		if unit, err = units.ParseSpeed(v); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
	}
	httputil.WriteJSONOK(w, s.drive.SpeedLimits(unit))
}

func (s *Server) showFingerprint(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"fingerprint": s.field.Fingerprint()})
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"units":        s.units,
		"field_length": s.conv(s.field.Length()),
		"field_width":  s.conv(s.field.Width()),
		"snapshots":    s.store != nil,
	})
}

func (s *Server) fieldHTML(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	a, err := alliance(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, s.field, a, s.units); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fieldPNG(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	a, err := alliance(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(&buf, s.field, a, render.Options{Units: s.units}); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
