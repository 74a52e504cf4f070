// Package sqlitestorage implements the storage.Backend interface using an
// in-memory SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend; the only SQLite-specific concerns are creating
// the in-memory DB and dumping it to disk.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rocksandvoids/console/internal/database"
	"github.com/rocksandvoids/console/internal/model/core"
	gormstorage "github.com/rocksandvoids/console/internal/storage/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	// OutputDir receives the dump files. Empty disables dumping.
	OutputDir    string
	DumpInterval time.Duration
	BatchSize    int
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db       *gorm.DB
	cfg      Config
	log      zerolog.Logger
	stopChan chan struct{}
	done     chan struct{}

	mu       sync.Mutex
	dumpPath string
	lastDump string
}

// New creates a new SQLite storage backend.
func New(cfg Config, log zerolog.Logger) (*Backend, error) {
	db, err := database.OpenSQLite("", log)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:        db,
			Logger:    log,
			BatchSize: cfg.BatchSize,
		}),
		db:  db,
		cfg: cfg,
		log: log,
	}, nil
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.OutputDir != "" {
		if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if b.cfg.OutputDir != "" && b.cfg.DumpInterval > 0 {
		b.stopChan = make(chan struct{})
		b.done = make(chan struct{})
		go b.dumpLoop()
	}

	return nil
}

// StartSession records the session and names the dump file after it.
func (b *Backend) StartSession(s *core.Session) error {
	if err := b.Backend.StartSession(s); err != nil {
		return err
	}
	if b.cfg.OutputDir != "" {
		name := fmt.Sprintf("rocksandvoids_%s_%s.db", s.StartedAt.Format("20060102_150405"), s.ID.String()[:8])
		b.mu.Lock()
		b.dumpPath = filepath.Join(b.cfg.OutputDir, name)
		b.mu.Unlock()
	}
	return nil
}

// Close stops the dump goroutine, flushes the GORM backend, writes a final
// dump and closes the database.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}

	if err := b.Backend.Close(); err != nil {
		b.log.Error().Err(err).Msg("Final flush failed")
	}
	dumpErr := b.dump()
	if err := database.Close(b.db); err != nil {
		return err
	}
	return dumpErr
}

// ExportedFilePath returns the path of the last successful dump.
func (b *Backend) ExportedFilePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastDump
}

// Dump flushes queued rows and writes the database to disk.
func (b *Backend) Dump() error {
	if err := b.Flush(); err != nil {
		return err
	}
	return b.dump()
}

func (b *Backend) dump() error {
	b.mu.Lock()
	path := b.dumpPath
	b.mu.Unlock()
	if path == "" {
		return nil
	}

	if err := database.DumpMemoryToDisk(b.db, path, b.log); err != nil {
		return err
	}

	b.mu.Lock()
	b.lastDump = path
	b.mu.Unlock()
	return nil
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
func (b *Backend) dumpLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error().Err(err).Msg("Error dumping to disk")
			}
		}
	}
}
