// Package gormstorage implements the storage.Backend interface on any GORM
// database. Rows are queued by the recorder and written in batches by a
// background goroutine.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rocksandvoids/console/internal/model"
	"github.com/rocksandvoids/console/internal/model/convert"
	"github.com/rocksandvoids/console/internal/model/core"
	"github.com/rocksandvoids/console/internal/queue"
)

const (
	defaultBatchSize     = 500
	defaultFlushInterval = time.Second
)

var (
	ErrNoDB      = errors.New("no database connection")
	ErrNoSession = errors.New("no recording session started")
)

// Dependencies holds everything the backend needs.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	// BatchSize caps rows per INSERT. Zero uses 500.
	BatchSize int
	// FlushInterval is the writer period. Zero uses one second.
	FlushInterval time.Duration
}

// Backend writes sessions, samples and commands through GORM.
type Backend struct {
	deps     Dependencies
	samples  *queue.Queue[model.ObjectSample]
	commands *queue.Queue[model.CommandEntry]

	sessionID atomic.Uint64
	flushMu   sync.Mutex
	stopChan  chan struct{}
	done      chan struct{}
}

// New creates a GORM backend. Nothing touches the database until Init.
func New(deps Dependencies) *Backend {
	if deps.BatchSize <= 0 {
		deps.BatchSize = defaultBatchSize
	}
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	return &Backend{
		deps:     deps,
		samples:  queue.New[model.ObjectSample](),
		commands: queue.New[model.CommandEntry](),
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema and starts the writer.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return ErrNoDB
	}
	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.writer()
	return nil
}

// Close stops the writer and flushes whatever is still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}
	if b.deps.DB == nil {
		return nil
	}
	return b.Flush()
}

// StartSession inserts the session row synchronously so later rows can
// reference it.
func (b *Backend) StartSession(s *core.Session) error {
	if b.deps.DB == nil {
		return ErrNoDB
	}
	row := convert.CoreToSession(*s)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.sessionID.Store(uint64(row.ID))
	b.deps.Logger.Info().Str("session", s.ID.String()).Uint("id", row.ID).Msg("Recording session started")
	return nil
}

// SessionID returns the database ID of the current session, or 0.
func (b *Backend) SessionID() uint {
	return uint(b.sessionID.Load())
}

// RecordSamples queues samples for the writer.
func (b *Backend) RecordSamples(samples []core.ObjectSample) error {
	id := b.SessionID()
	if id == 0 {
		return ErrNoSession
	}
	rows := make([]model.ObjectSample, len(samples))
	for i, s := range samples {
		rows[i] = convert.CoreToObjectSample(s)
		rows[i].SessionID = id
	}
	b.samples.Push(rows...)
	return nil
}

// RecordCommand queues a command entry for the writer.
func (b *Backend) RecordCommand(c *core.CommandEntry) error {
	id := b.SessionID()
	if id == 0 {
		return ErrNoSession
	}
	row := convert.CoreToCommandEntry(*c)
	row.SessionID = id
	b.commands.Push(row)
	return nil
}

// Pending returns the number of queued rows.
func (b *Backend) Pending() int {
	return b.samples.Len() + b.commands.Len()
}

// Flush writes all queued rows now. Rows of a failed batch stay queued.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	return errors.Join(
		writeQueue(b.deps.DB, b.samples, b.deps.BatchSize),
		writeQueue(b.deps.DB, b.commands, b.deps.BatchSize),
	)
}

// writeQueue writes all items from a queue to the database in a transaction.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], batchSize int) error {
	items := q.Drain()
	if len(items) == 0 {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&items, batchSize).Error
	})
	if err != nil {
		q.Requeue(items)
		return fmt.Errorf("error writing %d %T rows: %w", len(items), items[0], err)
	}
	return nil
}

// writer periodically drains the queues into the database.
func (b *Backend) writer() {
	defer close(b.done)

	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			pending := b.Pending()
			if pending == 0 {
				continue
			}
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error().Err(err).Msg("DB writer failed")
				continue
			}
			b.deps.Logger.Debug().Int("rows", pending).Dur("duration", time.Since(start)).Msg("DB writer flushed")
		}
	}
}
