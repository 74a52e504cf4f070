// Package influxstorage implements the storage.Backend interface on
// InfluxDB. When the server cannot be reached at Init, points are written as
// gzipped line protocol to a backup file instead.
package influxstorage

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/model/core"
)

// Measurement names.
const (
	MeasurementObjectState = "object_state"
	MeasurementCommand     = "command"
)

const (
	pingTimeout     = 5 * time.Second
	retentionPeriod = 60 * 60 * 24 * 90 // 90 days
)

var ErrNotInitialized = errors.New("influx backend not initialized")

// Backend writes samples and commands as InfluxDB points.
type Backend struct {
	cfg config.InfluxConfig
	log zerolog.Logger

	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	valid  bool

	mu         sync.Mutex
	session    string
	backupFile *os.File
	backup     *gzip.Writer
	backupPath string
}

// New creates an InfluxDB backend. No connection is made until Init.
func New(cfg config.InfluxConfig, log zerolog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// URL returns the server address built from the configuration.
func (b *Backend) URL() string {
	return fmt.Sprintf("%s://%s:%s", b.cfg.Protocol, b.cfg.Host, b.cfg.Port)
}

// Init connects to InfluxDB, or opens the backup file when the server does
// not answer.
func (b *Backend) Init() error {
	b.client = influxdb2.NewClientWithOptions(
		b.URL(),
		b.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	running, err := b.client.Ping(ctx)
	cancel()

	if err != nil || !running {
		b.log.Warn().Err(err).Str("url", b.URL()).Msg("InfluxDB not reachable, writing to backup file")
		return b.openBackup()
	}

	if err := b.setupOrganizationAndBucket(); err != nil {
		return err
	}
	b.createWriter()
	b.valid = true
	b.log.Info().Str("url", b.URL()).Str("bucket", b.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

// Valid reports whether points go to the server rather than the backup.
func (b *Backend) Valid() bool {
	return b.valid
}

func (b *Backend) openBackup() error {
	dir := b.cfg.BackupDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating backup directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("rocksandvoids_%s.lp.gz", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}

	b.mu.Lock()
	b.backupFile = file
	b.backup = gzip.NewWriter(file)
	b.backupPath = path
	b.mu.Unlock()
	return nil
}

func (b *Backend) setupOrganizationAndBucket() error {
	ctx := context.Background()
	orgName := b.cfg.Org

	// ensure org exists
	influxOrg, err := b.client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		b.log.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = b.client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			b.log.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	if _, err := b.client.BucketsAPI().FindBucketByName(ctx, b.cfg.Bucket); err != nil {
		b.log.Info().Str("bucket", b.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = b.client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, b.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: retentionPeriod,
		})
		if err != nil {
			b.log.Error().Err(err).Str("bucket", b.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

func (b *Backend) createWriter() {
	b.writer = b.client.WriteAPI(b.cfg.Org, b.cfg.Bucket)

	errorsCh := b.writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			b.log.Error().Err(writeErr).Str("bucket", b.cfg.Bucket).Msg("Error sending data to InfluxDB")
		}
	}()
}

// Close flushes buffered points and releases the client and backup file.
func (b *Backend) Close() error {
	if b.writer != nil {
		b.writer.Flush()
	}
	if b.client != nil {
		b.client.Close()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backup == nil {
		return nil
	}
	err := errors.Join(b.backup.Close(), b.backupFile.Close())
	b.backup = nil
	return err
}

// ExportedFilePath returns the backup file path when the server was not
// reachable.
func (b *Backend) ExportedFilePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.backupPath
}

// StartSession tags every following point with the session ID.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	b.session = s.ID.String()
	b.mu.Unlock()
	return nil
}

// RecordSamples writes one object_state point per sample.
func (b *Backend) RecordSamples(samples []core.ObjectSample) error {
	for i := range samples {
		if err := b.writePoint(SamplePoint(b.sessionTag(), samples[i])); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommand writes one command point.
func (b *Backend) RecordCommand(c *core.CommandEntry) error {
	return b.writePoint(CommandPoint(b.sessionTag(), *c))
}

func (b *Backend) sessionTag() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// writePoint writes a point to InfluxDB or the backup file.
func (b *Backend) writePoint(point *influxdb2_write.Point) error {
	if b.valid {
		b.writer.WritePoint(point)
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backup == nil {
		return ErrNotInitialized
	}

	lineProtocol := strings.TrimSuffix(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n")
	if _, err := b.backup.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// SamplePoint builds the object_state point for s.
func SamplePoint(session string, s core.ObjectSample) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		MeasurementObjectState,
		map[string]string{
			"session": session,
			"name":    s.Name,
			"kind":    string(s.Kind),
		},
		map[string]any{
			"step":            int64(s.Step),
			"sim_time":        s.SimTime,
			"x":               s.Position.X,
			"y":               s.Position.Y,
			"z":               s.Position.Z,
			"vx":              s.Velocity.X,
			"vy":              s.Velocity.Y,
			"vz":              s.Velocity.Z,
			"shape":           s.Shape,
			"color":           s.Color,
			"behavior":        s.Behavior,
			"lit":             s.Lit,
			"light_intensity": s.LightIntensity,
		},
		s.Time,
	)
}

// CommandPoint builds the command point for c.
func CommandPoint(session string, c core.CommandEntry) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		MeasurementCommand,
		map[string]string{
			"session": session,
			"command": c.Command,
			"success": strconv.FormatBool(c.Success),
		},
		map[string]any{
			"line":     c.Line,
			"error":    c.Error,
			"step":     int64(c.Step),
			"sim_time": c.SimTime,
		},
		c.Time,
	)
}
