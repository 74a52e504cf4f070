package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/database"
	"github.com/rocksandvoids/console/internal/model"
	"github.com/rocksandvoids/console/internal/model/core"
)

// newTestBackend swaps the Postgres connection for in-memory SQLite.
func newTestBackend(t *testing.T) (*Backend, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite("", zerolog.Nop())
	require.NoError(t, err)

	b := New(config.DBConfig{Host: "localhost"}, 10, zerolog.Nop())
	b.open = func(config.DBConfig, zerolog.Logger) (*gorm.DB, error) { return db, nil }
	return b, db
}

func TestRecordBeforeInit(t *testing.T) {
	b := New(config.DBConfig{}, 0, zerolog.Nop())

	assert.ErrorIs(t, b.StartSession(&core.Session{}), ErrNotConnected)
	assert.ErrorIs(t, b.RecordSamples(nil), ErrNotConnected)
	assert.ErrorIs(t, b.RecordCommand(&core.CommandEntry{}), ErrNotConnected)
	assert.NoError(t, b.Close())
}

func TestInit_ConnectionRefused(t *testing.T) {
	b := New(config.DBConfig{Host: "127.0.0.1", Port: "1", Username: "u", Database: "d"}, 0, zerolog.Nop())
	assert.Error(t, b.Init())
}

func TestRecordAndClose(t *testing.T) {
	b, db := newTestBackend(t)
	require.NoError(t, b.Init())

	require.NoError(t, b.StartSession(&core.Session{ID: uuid.New(), StartedAt: time.Now(), FrameTime: 0.1}))
	require.NoError(t, b.RecordSamples([]core.ObjectSample{{Step: 1, Name: "sun", Kind: core.KindObject}}))
	require.NoError(t, b.RecordCommand(&core.CommandEntry{Line: "start", Command: "start", Success: true}))

	require.NoError(t, b.gorm.Flush())
	var samples int64
	require.NoError(t, db.Model(&model.ObjectSample{}).Count(&samples).Error)
	assert.Equal(t, int64(1), samples)

	// Close flushes and then closes the connection.
	require.NoError(t, b.Close())
	assert.Error(t, database.Ping(db))
}
