package sqlitestorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/database"
	"github.com/rocksandvoids/console/internal/model"
	"github.com/rocksandvoids/console/internal/model/core"
)

func testSession() *core.Session {
	return &core.Session{
		ID:        uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000001"),
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		FrameTime: 0.1,
		ArenaSize: 1000,
		BaseSize:  10,
	}
}

func TestCloseWritesDump(t *testing.T) {
	dir := t.TempDir()
	b, err := New(Config{OutputDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())

	require.NoError(t, b.StartSession(testSession()))
	require.NoError(t, b.RecordSamples([]core.ObjectSample{
		{Step: 1, Name: "sun", Kind: core.KindObject, Behavior: "still"},
		{Step: 1, Name: "camera", Kind: core.KindCamera, Behavior: "none"},
	}))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Line: "start", Command: "start", Success: true}))
	require.NoError(t, b.Close())

	want := filepath.Join(dir, "rocksandvoids_20260301_120000_6f1c2a9e.db")
	assert.Equal(t, want, b.ExportedFilePath())
	assert.FileExists(t, want)

	db, err := database.OpenSQLite(want, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	var samples int64
	require.NoError(t, db.Model(&model.ObjectSample{}).Count(&samples).Error)
	assert.Equal(t, int64(2), samples)

	var cmd model.CommandEntry
	require.NoError(t, db.First(&cmd).Error)
	assert.Equal(t, "start", cmd.Line)
}

func TestNoOutputDir(t *testing.T) {
	b, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.StartSession(testSession()))

	require.NoError(t, b.Close())
	assert.Empty(t, b.ExportedFilePath())
}

func TestDumpLoop(t *testing.T) {
	dir := t.TempDir()
	b, err := New(Config{OutputDir: dir, DumpInterval: 10 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.StartSession(testSession()))

	assert.Eventually(t, func() bool { return b.ExportedFilePath() != "" }, 2*time.Second, 10*time.Millisecond)
}
