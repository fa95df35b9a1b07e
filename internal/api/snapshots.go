package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/team4099/robot2023/internal/fieldstore"
	"github.com/team4099/robot2023/internal/httputil"
)

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, fieldstore.ErrSnapshotNotFound) {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}

// snapshots lists stored snapshots on GET and exports the served catalog on
// POST, storing the notes query parameter with it.
func (s *Server) snapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.store.Snapshots(r.Context())
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if list == nil {
			list = []fieldstore.Snapshot{}
		}
		httputil.WriteJSONOK(w, list)
	case http.MethodPost:
		a, err := alliance(r)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		snap, err := s.store.WriteSnapshot(r.Context(), s.field, a, r.URL.Query().Get("notes"))
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, snap)
	default:
		w.Header().Set("Allow", "GET, POST")
		httputil.MethodNotAllowed(w)
	}
}

// snapshot shows one snapshot on GET, replaces its notes from the notes
// query parameter on PUT, and removes it on DELETE.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.showSnapshot(w, r)
	case http.MethodPut:
		if err := s.store.SetSnapshotNotes(r.Context(), id, r.URL.Query().Get("notes")); err != nil {
			s.writeStoreError(w, err)
			return
		}
		s.showSnapshot(w, r)
	case http.MethodDelete:
		if err := s.store.DeleteSnapshot(r.Context(), id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, HEAD, PUT, DELETE")
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) showSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"snapshot": snap,
		"stale":    snap.Fingerprint != s.field.Fingerprint(),
	})
}

func (s *Server) snapshotTags(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	rows, err := s.store.SnapshotTags(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	tags := make([]Tag, len(rows))
	for i, row := range rows {
		tags[i] = NewTag(row.ID, row.Pose, s.units)
	}
	httputil.WriteJSONOK(w, tags)
}

func (s *Server) snapshotRegion(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireGET(w, r) {
		return
	}
	id, name := r.PathValue("id"), r.PathValue("name")
	region, ok, err := s.store.SnapshotRegion(r.Context(), id, name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("snapshot %s has no region %q", id, name))
		return
	}
	httputil.WriteJSONOK(w, NewRegion(region, s.units))
}
