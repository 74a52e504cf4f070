package influxstorage

import (
	"bufio"
	"compress/gzip"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/model/core"
)

var sampleTime = time.Date(2026, 3, 1, 12, 0, 4, 0, time.UTC)

func unreachable(dir string) config.InfluxConfig {
	return config.InfluxConfig{
		Host:      "127.0.0.1",
		Port:      "1",
		Protocol:  "http",
		Org:       "rocksandvoids",
		Bucket:    "trajectories",
		BackupDir: dir,
	}
}

func readBackup(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var lines []string
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestURL(t *testing.T) {
	b := New(config.InfluxConfig{Protocol: "https", Host: "influx.local", Port: "8086"}, zerolog.Nop())
	assert.Equal(t, "https://influx.local:8086", b.URL())
}

func TestRecordBeforeInit(t *testing.T) {
	b := New(config.InfluxConfig{}, zerolog.Nop())
	err := b.RecordCommand(&core.CommandEntry{Line: "start"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, b.Close())
}

func TestBackupWhenUnreachable(t *testing.T) {
	dir := t.TempDir()
	b := New(unreachable(dir), zerolog.Nop())
	require.NoError(t, b.Init())
	assert.False(t, b.Valid())

	require.NoError(t, b.StartSession(&core.Session{ID: uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000001")}))
	require.NoError(t, b.RecordSamples([]core.ObjectSample{{
		Step:     40,
		SimTime:  4,
		Time:     sampleTime,
		Name:     "earth",
		Kind:     core.KindObject,
		Position: core.Position3D{X: 100},
		Behavior: "still",
	}}))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Line: "stop", Command: "stop", Success: true, Time: sampleTime}))
	require.NoError(t, b.Close())

	path := b.ExportedFilePath()
	require.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(path, dir))

	lines := readBackup(t, path)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "object_state,kind=object,name=earth,session=6f1c2a9e-0000-4000-8000-000000000001 "), lines[0])
	assert.Contains(t, lines[0], "x=100")
	assert.Contains(t, lines[0], "step=40i")
	assert.True(t, strings.HasSuffix(lines[0], " 1772366404000000000"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "command,command=stop,session="), lines[1])
	assert.Contains(t, lines[1], `line="stop"`)
}

func TestSamplePoint(t *testing.T) {
	p := SamplePoint("s1", core.ObjectSample{Name: "camera", Kind: core.KindCamera, Lit: false, Time: sampleTime})

	assert.Equal(t, MeasurementObjectState, p.Name())
	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"session": "s1", "name": "camera", "kind": "camera"}, tags)
	assert.Equal(t, sampleTime, p.Time())
}

func TestCommandPoint(t *testing.T) {
	p := CommandPoint("s1", core.CommandEntry{Command: "warp", Error: "Unknown command: warp"})

	assert.Equal(t, MeasurementCommand, p.Name())
	fields := map[string]any{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.Equal(t, "Unknown command: warp", fields["error"])
	assert.Equal(t, int64(0), fields["step"])
}
