package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/config"
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

func samplesAt(step uint64) []core.ObjectSample {
	return []core.ObjectSample{
		{Step: step, SimTime: float64(step) / 10, Name: "sun", Kind: core.KindObject, Shape: "sphere", Color: "yellow", Behavior: "still", Lit: true, LightIntensity: 1},
		{Step: step, SimTime: float64(step) / 10, Name: "earth", Kind: core.KindObject, Shape: "sphere", Color: "blue", Position: core.Position3D{X: 100}, Behavior: "still"},
		{Step: step, SimTime: float64(step) / 10, Name: "camera", Kind: core.KindCamera, Position: core.Position3D{Y: 50, Z: 100}, Behavior: "none"},
	}
}

func TestRecordBeforeSession(t *testing.T) {
	b := New(config.MemoryConfig{})
	assert.ErrorIs(t, b.RecordSamples(samplesAt(1)), ErrNoSession)
	assert.ErrorIs(t, b.RecordCommand(&core.CommandEntry{}), ErrNoSession)
	_, ok := b.Session()
	assert.False(t, ok)
}

func TestRecordSamples_GroupsTracks(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	require.NoError(t, b.StartSession(testSession()))

	require.NoError(t, b.RecordSamples(samplesAt(10)))
	require.NoError(t, b.RecordSamples(samplesAt(20)))

	earth, ok := b.Track(core.KindObject, "earth")
	require.True(t, ok)
	require.Len(t, earth, 2)
	assert.Equal(t, uint64(20), earth[1].Step)

	camera, ok := b.Track(core.KindCamera, "camera")
	require.True(t, ok)
	assert.Len(t, camera, 2)

	_, ok = b.Track(core.KindObject, "camera")
	assert.False(t, ok)
}

func TestStartSession_Resets(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(testSession()))
	require.NoError(t, b.RecordSamples(samplesAt(10)))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Line: "start"}))

	require.NoError(t, b.StartSession(testSession()))

	_, ok := b.Track(core.KindObject, "sun")
	assert.False(t, ok)
	assert.Empty(t, b.Commands())
}

func TestClose_NoOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(testSession()))
	require.NoError(t, b.Close())
	assert.Empty(t, b.ExportedFilePath())
}

func TestClose_ExportsJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.StartSession(testSession()))
	require.NoError(t, b.RecordSamples(samplesAt(10)))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Step: 3, SimTime: 0.3, Line: "start", Command: "start", Success: true}))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Step: 5, SimTime: 0.5, Line: "warp", Command: "warp", Error: "Unknown command: warp"}))

	require.NoError(t, b.Close())

	want := filepath.Join(dir, "rocksandvoids_20260301_120000_6f1c2a9e.json")
	assert.Equal(t, want, b.ExportedFilePath())

	data, err := os.ReadFile(want)
	require.NoError(t, err)

	var export SessionExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "6f1c2a9e-0000-4000-8000-000000000001", export.SessionID)
	assert.Equal(t, uint64(10), export.EndStep)
	require.Len(t, export.Tracks, 3)
	assert.Equal(t, "sun", export.Tracks[0].Name)
	assert.Equal(t, "camera", export.Tracks[2].Kind)
	require.Len(t, export.Tracks[1].Positions, 1)
	assert.Equal(t, 100.0, export.Tracks[1].Positions[0][2])
	assert.Equal(t, 1.0, export.Tracks[0].Positions[0][9])

	require.Len(t, export.Commands, 2)
	assert.Equal(t, "warp", export.Commands[1][2])
	assert.Equal(t, false, export.Commands[1][3])
}

func TestClose_ExportsGzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.StartSession(testSession()))
	require.NoError(t, b.RecordSamples(samplesAt(1)))
	require.NoError(t, b.Close())

	path := b.ExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var export SessionExport
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Len(t, export.Tracks, 3)
}
