// Package memory implements a storage backend that keeps a session in
// memory and exports it to JSON on Close.
package memory

import (
	"errors"
	"sync"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/model/core"
)

var ErrNoSession = errors.New("no recording session started")

// TrackRecord groups the samples of one object or the camera.
type TrackRecord struct {
	Name    string
	Kind    core.Kind
	Shape   string
	Color   string
	Samples []core.ObjectSample
}

// Backend stores session data in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session

	tracks   map[string]*TrackRecord // keyed by kind and name
	order    []string
	commands []core.CommandEntry

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		tracks: make(map[string]*TrackRecord),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close exports the session when one was started and an output directory
// is configured.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil || b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON()
}

// StartSession begins recording a new session, dropping earlier data.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session = s
	b.tracks = make(map[string]*TrackRecord)
	b.order = nil
	b.commands = nil
	return nil
}

// RecordSamples appends each sample to its track.
func (b *Backend) RecordSamples(samples []core.ObjectSample) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrNoSession
	}
	for _, s := range samples {
		key := string(s.Kind) + "/" + s.Name
		track, ok := b.tracks[key]
		if !ok {
			track = &TrackRecord{Name: s.Name, Kind: s.Kind, Shape: s.Shape, Color: s.Color}
			b.tracks[key] = track
			b.order = append(b.order, key)
		}
		track.Samples = append(track.Samples, s)
	}
	return nil
}

// RecordCommand appends a command entry.
func (b *Backend) RecordCommand(c *core.CommandEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return ErrNoSession
	}
	b.commands = append(b.commands, *c)
	return nil
}

// Session returns the current session, if any.
func (b *Backend) Session() (core.Session, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.session == nil {
		return core.Session{}, false
	}
	return *b.session, true
}

// Track returns a copy of the samples recorded for name and kind.
func (b *Backend) Track(kind core.Kind, name string) ([]core.ObjectSample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	track, ok := b.tracks[string(kind)+"/"+name]
	if !ok {
		return nil, false
	}
	return append([]core.ObjectSample(nil), track.Samples...), true
}

// Commands returns a copy of the recorded command entries.
func (b *Backend) Commands() []core.CommandEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.CommandEntry(nil), b.commands...)
}

// ExportedFilePath returns the path of the last export.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
