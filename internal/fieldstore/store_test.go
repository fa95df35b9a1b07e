package fieldstore

import (
	"compress/gzip"
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team4099/robot2023/internal/field"
	"github.com/team4099/robot2023/internal/monitoring"
	"github.com/team4099/robot2023/internal/timeutil"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

var exportTime = time.Date(2023, 3, 4, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "fieldstore.db"))
	require.NoError(t, err)
	db.Clock = timeutil.NewMockClock(exportTime)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPragmasApplied(t *testing.T) {
	db := newTestDB(t)

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout, synchronous, tempStore, foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.NoError(t, db.QueryRow("PRAGMA synchronous").Scan(&synchronous))
	require.NoError(t, db.QueryRow("PRAGMA temp_store").Scan(&tempStore))
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 5000, busyTimeout)
	assert.Equal(t, 1, synchronous) // NORMAL
	assert.Equal(t, 2, tempStore)   // MEMORY
	assert.Equal(t, 1, foreignKeys)
}

func TestMigrations(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer db.Close()

	v, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
	assert.False(t, dirty)

	latest, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), latest)

	require.NoError(t, db.MigrateUp())
	v, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, latest, v)

	// Running again is a no-op.
	require.NoError(t, db.MigrateUp())

	require.NoError(t, db.MigrateDown())
	v, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	require.NoError(t, db.MigrateTo(2))
	v, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)

	require.NoError(t, db.MigrateDown())
	require.NoError(t, db.MigrateDown())
	v, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'snapshots'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWriteSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := field.Default()

	snap, err := db.WriteSnapshot(ctx, f, field.Blue, "")
	require.NoError(t, err)
	_, err = uuid.Parse(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Fingerprint(), snap.Fingerprint)
	assert.Equal(t, exportTime, snap.CreatedAt)

	got, err := db.Snapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	tags, err := db.SnapshotTags(ctx, snap.ID)
	require.NoError(t, err)
	require.Len(t, tags, len(f.TagIDs()))
	for _, tr := range tags {
		want, ok := f.Tag(tr.ID)
		require.True(t, ok)
		assert.Equal(t, want, tr.Pose)
	}

	for _, want := range f.Regions() {
		region, ok, err := db.SnapshotRegion(ctx, snap.ID, want.Name)
		require.NoError(t, err)
		require.True(t, ok, want.Name)
		assert.Equal(t, want, region)
	}

	_, ok, err := db.SnapshotRegion(ctx, snap.ID, "no_such_region")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteSnapshotRed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := field.Default()

	snap, err := db.WriteSnapshot(ctx, f, field.Red, "")
	require.NoError(t, err)
	assert.Equal(t, field.Red, snap.Alliance)

	blue, _ := f.Region(field.RegionStaging)
	red, ok, err := db.SnapshotRegion(ctx, snap.ID, field.RegionStaging)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, red.Points, len(blue.Points))
	for i := range red.Points {
		assert.InDelta(t, f.Length()-blue.Points[i].X, red.Points[i].X, 1e-12)
		assert.Equal(t, blue.Points[i].Y, red.Points[i].Y)
	}

	// Tags are physical markers and never move.
	tags, err := db.SnapshotTags(ctx, snap.ID)
	require.NoError(t, err)
	tag1, _ := f.Tag(1)
	assert.Equal(t, tag1, tags[0].Pose)
}

func TestSnapshotsListAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clock := db.Clock.(*timeutil.MockClock)

	first, err := db.WriteSnapshot(ctx, field.Default(), field.Blue, "")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := db.WriteSnapshot(ctx, field.Default(), field.Red, "")
	require.NoError(t, err)

	list, err := db.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, db.SetSnapshotNotes(ctx, first.ID, "pre-event check"))
	got, err := db.Snapshot(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "pre-event check", got.Notes)

	require.NoError(t, db.DeleteSnapshot(ctx, first.ID))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM field_points WHERE snapshot_id = ?`, first.ID).Scan(&n))
	assert.Equal(t, 0, n, "points should cascade")

	assert.ErrorIs(t, db.DeleteSnapshot(ctx, first.ID), ErrSnapshotNotFound)
	assert.ErrorIs(t, db.SetSnapshotNotes(ctx, first.ID, "x"), ErrSnapshotNotFound)
}

func TestWriteSnapshotNotes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	snap, err := db.WriteSnapshot(ctx, field.Default(), field.Blue, "week 2 recheck")
	require.NoError(t, err)
	assert.Equal(t, "week 2 recheck", snap.Notes)

	got, err := db.Snapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestWriteSnapshotRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	_, err := db.Exec(`
		CREATE TRIGGER reject_staging BEFORE INSERT ON field_points
		WHEN NEW.region = 'staging'
		BEGIN SELECT RAISE(ABORT, 'staging rejected'); END`)
	require.NoError(t, err)

	_, err = db.WriteSnapshot(ctx, field.Default(), field.Blue, "should not survive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging rejected")

	list, err := db.Snapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	for _, table := range []string{"apriltags", "field_points"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}

func TestSnapshotNotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	missing := uuid.NewString()

	_, err := db.Snapshot(ctx, missing)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = db.SnapshotTags(ctx, missing)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, _, err = db.SnapshotRegion(ctx, missing, field.RegionCommunity)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
}

func TestWriteSnapshotCancelled(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.WriteSnapshot(ctx, field.Default(), field.Blue, "")
	require.Error(t, err)

	list, err := db.Snapshots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServeBackup(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	snap, err := db.WriteSnapshot(ctx, field.Default(), field.Blue, "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	db.serveBackup(rec, httptest.NewRequest(http.MethodGet, "/debug/backup", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fieldstore-")

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	restored := filepath.Join(t.TempDir(), "restored.db")
	out, err := os.Create(restored)
	require.NoError(t, err)
	_, err = io.Copy(out, gz)
	require.NoError(t, err)
	require.NoError(t, out.Close())

	back, err := OpenDB(restored)
	require.NoError(t, err)
	defer back.Close()
	got, err := back.Snapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Fingerprint, got.Fingerprint)
}

func TestAttachAdminRoutes(t *testing.T) {
	db := newTestDB(t)
	mux := http.NewServeMux()
	require.NoError(t, db.AttachAdminRoutes(mux))
}
