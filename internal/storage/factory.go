package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rocksandvoids/console/internal/config"
	gormstorage "github.com/rocksandvoids/console/internal/storage/gorm"
	influxstorage "github.com/rocksandvoids/console/internal/storage/influx"
	"github.com/rocksandvoids/console/internal/storage/memory"
	pgstorage "github.com/rocksandvoids/console/internal/storage/postgres"
	sqlitestorage "github.com/rocksandvoids/console/internal/storage/sqlite"
)

// Backend types accepted in recorder.type.
const (
	TypeNone     = "none"
	TypeMemory   = "memory"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeInflux   = "influx"
)

var (
	_ Backend  = (*gormstorage.Backend)(nil)
	_ Backend  = (*memory.Backend)(nil)
	_ Exporter = (*memory.Backend)(nil)
	_ Backend  = (*sqlitestorage.Backend)(nil)
	_ Exporter = (*sqlitestorage.Backend)(nil)
	_ Backend  = (*pgstorage.Backend)(nil)
	_ Backend  = (*influxstorage.Backend)(nil)
)

// NewBackend creates a storage backend based on configuration. The "none"
// type yields a nil Backend and no error.
func NewBackend(cfg config.RecorderConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case TypeNone, "":
		return nil, nil
	case TypeMemory:
		return memory.New(cfg.Memory), nil
	case TypeSQLite:
		b, err := sqlitestorage.New(sqlitestorage.Config{
			OutputDir:    cfg.SQLite.OutputDir,
			DumpInterval: cfg.SQLite.DumpInterval,
			BatchSize:    cfg.BatchSize,
		}, log.With().Str("backend", TypeSQLite).Logger())
		if err != nil {
			return nil, err
		}
		return b, nil
	case TypePostgres:
		return pgstorage.New(cfg.DB, cfg.BatchSize, log.With().Str("backend", TypePostgres).Logger()), nil
	case TypeInflux:
		return influxstorage.New(cfg.Influx, log.With().Str("backend", TypeInflux).Logger()), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
