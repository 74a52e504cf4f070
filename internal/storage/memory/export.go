package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionExport is the root JSON structure
type SessionExport struct {
	SessionID string      `json:"sessionId"`
	StartedAt time.Time   `json:"startedAt"`
	FrameTime float64     `json:"frameTime"`
	ArenaSize float64     `json:"arenaSize"`
	BaseSize  float64     `json:"baseSize"`
	EndStep   uint64      `json:"endStep"`
	Tracks    []TrackJSON `json:"tracks"`
	// Commands rows are [step, simTime, line, success, error].
	Commands [][]any `json:"commands"`
}

// TrackJSON represents an object or the camera.
type TrackJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Shape string `json:"shape,omitempty"`
	Color string `json:"color,omitempty"`
	// Positions rows are [step, simTime, x, y, z, vx, vy, vz, behavior, lit, intensity].
	Positions [][]any `json:"positions"`
}

// exportJSON writes the session to a JSON file, gzipped when configured.
// The caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	timestamp := b.session.StartedAt.Format("20060102_150405")
	filename := fmt.Sprintf("rocksandvoids_%s_%s.json", timestamp, b.session.ID.String()[:8])
	if b.cfg.CompressOutput {
		filename += ".gz"
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() SessionExport {
	export := SessionExport{
		SessionID: b.session.ID.String(),
		StartedAt: b.session.StartedAt,
		FrameTime: b.session.FrameTime,
		ArenaSize: b.session.ArenaSize,
		BaseSize:  b.session.BaseSize,
		Tracks:    make([]TrackJSON, 0, len(b.order)),
		Commands:  make([][]any, 0, len(b.commands)),
	}

	for _, key := range b.order {
		record := b.tracks[key]
		track := TrackJSON{
			Name:      record.Name,
			Kind:      string(record.Kind),
			Shape:     record.Shape,
			Color:     record.Color,
			Positions: make([][]any, 0, len(record.Samples)),
		}
		for _, s := range record.Samples {
			track.Positions = append(track.Positions, []any{
				s.Step,
				s.SimTime,
				s.Position.X, s.Position.Y, s.Position.Z,
				s.Velocity.X, s.Velocity.Y, s.Velocity.Z,
				s.Behavior,
				boolToInt(s.Lit),
				s.LightIntensity,
			})
			if s.Step > export.EndStep {
				export.EndStep = s.Step
			}
		}
		export.Tracks = append(export.Tracks, track)
	}

	for _, c := range b.commands {
		export.Commands = append(export.Commands, []any{c.Step, c.SimTime, c.Line, c.Success, c.Error})
	}

	return export
}

func writeJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(data)
}

func writeGzipJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	return json.NewEncoder(gzWriter).Encode(data)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
