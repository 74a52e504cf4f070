// Package postgres implements the storage.Backend interface on PostgreSQL
// through the GORM backend.
package postgres

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/database"
	"github.com/rocksandvoids/console/internal/model/core"
	gormstorage "github.com/rocksandvoids/console/internal/storage/gorm"
)

// ErrNotConnected is returned when recording before a successful Init.
var ErrNotConnected = errors.New("postgres backend not initialized")

// Backend connects on Init and delegates writes to the GORM backend.
type Backend struct {
	cfg       config.DBConfig
	batchSize int
	log       zerolog.Logger

	open func(config.DBConfig, zerolog.Logger) (*gorm.DB, error)
	db   *gorm.DB
	gorm *gormstorage.Backend
}

// New creates a Postgres backend. No connection is made until Init.
func New(cfg config.DBConfig, batchSize int, log zerolog.Logger) *Backend {
	return &Backend{
		cfg:       cfg,
		batchSize: batchSize,
		log:       log,
		open:      database.OpenPostgres,
	}
}

// Init connects, migrates the schema and starts the writer.
func (b *Backend) Init() error {
	db, err := b.open(b.cfg, b.log)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	g := gormstorage.New(gormstorage.Dependencies{DB: db, Logger: b.log, BatchSize: b.batchSize})
	if err := g.Init(); err != nil {
		_ = database.Close(db)
		return err
	}

	b.db = db
	b.gorm = g
	return nil
}

// Close flushes pending rows and closes the connection.
func (b *Backend) Close() error {
	if b.gorm == nil {
		return nil
	}
	err := b.gorm.Close()
	if cerr := database.Close(b.db); cerr != nil && err == nil {
		err = cerr
	}
	b.gorm = nil
	return err
}

func (b *Backend) StartSession(s *core.Session) error {
	if b.gorm == nil {
		return ErrNotConnected
	}
	return b.gorm.StartSession(s)
}

func (b *Backend) RecordSamples(samples []core.ObjectSample) error {
	if b.gorm == nil {
		return ErrNotConnected
	}
	return b.gorm.RecordSamples(samples)
}

func (b *Backend) RecordCommand(c *core.CommandEntry) error {
	if b.gorm == nil {
		return ErrNotConnected
	}
	return b.gorm.RecordCommand(c)
}
