// Package storage defines the interface trajectory recorder backends
// implement and the factory that picks one from configuration.
package storage

import "github.com/rocksandvoids/console/internal/model/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// StartSession begins a recording session. It is called once, before
	// any samples or commands.
	StartSession(s *core.Session) error

	// RecordSamples stores the samples taken after one fixed step.
	RecordSamples(samples []core.ObjectSample) error
	// RecordCommand stores one executed command line.
	RecordCommand(c *core.CommandEntry) error
}

// Exporter is an optional interface for backends that write their data to a
// file on Close.
type Exporter interface {
	ExportedFilePath() string
}
