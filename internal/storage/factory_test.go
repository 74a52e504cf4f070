package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/config"
	influxstorage "github.com/rocksandvoids/console/internal/storage/influx"
	"github.com/rocksandvoids/console/internal/storage/memory"
	pgstorage "github.com/rocksandvoids/console/internal/storage/postgres"
	sqlitestorage "github.com/rocksandvoids/console/internal/storage/sqlite"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		typ  string
		want any
	}{
		{TypeMemory, &memory.Backend{}},
		{TypePostgres, &pgstorage.Backend{}},
		{TypeInflux, &influxstorage.Backend{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			b, err := NewBackend(config.RecorderConfig{Type: tt.typ}, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}
}

func TestNewBackend_SQLite(t *testing.T) {
	b, err := NewBackend(config.RecorderConfig{Type: TypeSQLite}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &sqlitestorage.Backend{}, b)
	require.NoError(t, b.Init())
	assert.NoError(t, b.Close())
}

func TestNewBackend_None(t *testing.T) {
	for _, typ := range []string{TypeNone, ""} {
		b, err := NewBackend(config.RecorderConfig{Type: typ}, zerolog.Nop())
		assert.NoError(t, err)
		assert.Nil(t, b)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(config.RecorderConfig{Type: "mongo"}, zerolog.Nop())
	assert.EqualError(t, err, "unknown storage type: mongo")
}
