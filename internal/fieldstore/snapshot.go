package fieldstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/geometry"
	"github.com/team4099/robot2023/internal/version"
)

// ErrSnapshotNotFound is returned when a snapshot ID has no row.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes one exported copy of the catalog.
type Snapshot struct {
	ID          string         `json:"snapshot_id"`
	Fingerprint string         `json:"fingerprint"`
	Alliance    field.Alliance `json:"alliance"`
	Version     string         `json:"version"`
	GitSHA      string         `json:"git_sha"`
	FieldLength float64        `json:"field_length"`
	FieldWidth  float64        `json:"field_width"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TagRow is one AprilTag as stored in a snapshot.
type TagRow struct {
	ID   int             `json:"id"`
	Pose geometry.Pose3D `json:"pose"`
}

// WriteSnapshot stores every tag and region of f, along with notes, in a
// single transaction. Region points are moved to the alliance's side; tag
// poses are physical markers and are stored as-is.
func (db *DB) WriteSnapshot(ctx context.Context, f *field.Field, alliance field.Alliance, notes string) (Snapshot, error) {
	snap := Snapshot{
		ID:          uuid.NewString(),
		Fingerprint: f.Fingerprint(),
		Alliance:    alliance,
		Version:     version.Version,
		GitSHA:      version.GitSHA,
		FieldLength: f.Length(),
		FieldWidth:  f.Width(),
		Notes:       notes,
		CreatedAt:   db.Clock.Now().UTC().Truncate(time.Second),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (snapshot_id, fingerprint, alliance, version, git_sha, field_length, field_width, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Fingerprint, alliance.String(), snap.Version, snap.GitSHA,
		snap.FieldLength, snap.FieldWidth, snap.Notes, snap.CreatedAt.Unix(),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	tagStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO apriltags (snapshot_id, tag_id, x, y, z, roll, pitch, yaw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("prepare tag insert: %w", err)
	}
	defer tagStmt.Close()

	for _, id := range f.TagIDs() {
		pose, _ := f.Tag(id)
		t, r := pose.Translation, pose.Rotation
		if _, err := tagStmt.ExecContext(ctx, snap.ID, id, t.X, t.Y, t.Z, r.Roll, r.Pitch, r.Yaw); err != nil {
			return Snapshot{}, fmt.Errorf("insert tag %d: %w", id, err)
		}
	}

	pointStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO field_points (snapshot_id, region, kind, idx, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("prepare point insert: %w", err)
	}
	defer pointStmt.Close()

	for _, region := range f.RegionsFor(alliance) {
		for i, p := range region.Points {
			if _, err := pointStmt.ExecContext(ctx, snap.ID, region.Name, string(region.Kind), i, p.X, p.Y, p.Z); err != nil {
				return Snapshot{}, fmt.Errorf("insert %s[%d]: %w", region.Name, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

const snapshotColumns = `snapshot_id, fingerprint, alliance, version, git_sha, field_length, field_width, notes, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		s        Snapshot
		alliance string
		created  int64
	)
	err := row.Scan(&s.ID, &s.Fingerprint, &alliance, &s.Version, &s.GitSHA,
		&s.FieldLength, &s.FieldWidth, &s.Notes, &created)
	if err != nil {
		return Snapshot{}, err
	}
	if s.Alliance, err = field.ParseAlliance(alliance); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", s.ID, err)
	}
	s.CreatedAt = time.Unix(created, 0).UTC()
	return s, nil
}

// Snapshot returns one snapshot by ID.
func (db *DB) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	row := db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE snapshot_id = ?`, id)
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query snapshot %s: %w", id, err)
	}
	return s, nil
}

// Snapshots lists every snapshot, newest first.
func (db *DB) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY created_at DESC, snapshot_id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetSnapshotNotes replaces the free-text notes on a snapshot.
func (db *DB) SetSnapshotNotes(ctx context.Context, id, notes string) error {
	res, err := db.ExecContext(ctx, `UPDATE snapshots SET notes = ? WHERE snapshot_id = ?`, notes, id)
	if err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	}
	return nil
}

// DeleteSnapshot removes a snapshot and its rows.
func (db *DB) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM snapshots WHERE snapshot_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	}
	return nil
}

// SnapshotTags returns the tags stored with a snapshot, ordered by ID.
func (db *DB) SnapshotTags(ctx context.Context, id string) ([]TagRow, error) {
	if _, err := db.Snapshot(ctx, id); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT tag_id, x, y, z, roll, pitch, yaw
		FROM apriltags WHERE snapshot_id = ? ORDER BY tag_id`, id)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var out []TagRow
	for rows.Next() {
		var tr TagRow
		t, r := &tr.Pose.Translation, &tr.Pose.Rotation
		if err := rows.Scan(&tr.ID, &t.X, &t.Y, &t.Z, &r.Roll, &r.Pitch, &r.Yaw); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// SnapshotRegion returns one region of a snapshot with its points in stored
// order. The second result is false if the snapshot has no such region.
func (db *DB) SnapshotRegion(ctx context.Context, id, name string) (field.Region, bool, error) {
	if _, err := db.Snapshot(ctx, id); err != nil {
		return field.Region{}, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT kind, x, y, z FROM field_points
		WHERE snapshot_id = ? AND region = ? ORDER BY idx`, id, name)
	if err != nil {
		return field.Region{}, false, fmt.Errorf("query region %s: %w", name, err)
	}
	defer rows.Close()

	region := field.Region{Name: name}
	for rows.Next() {
		var (
			kind string
			p    geometry.Point3D
		)
		if err := rows.Scan(&kind, &p.X, &p.Y, &p.Z); err != nil {
			return field.Region{}, false, err
		}
		region.Kind = field.RegionKind(kind)
		region.Points = append(region.Points, p)
	}
	if err := rows.Err(); err != nil {
		return field.Region{}, false, err
	}
	return region, len(region.Points) > 0, nil
}
