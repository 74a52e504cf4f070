// Package core holds the recorder's storage-neutral record types.
package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/rocksandvoids/console/internal/geo"
)

// Kind distinguishes scene objects from the camera in samples.
type Kind string

const (
	KindObject Kind = "object"
	KindCamera Kind = "camera"
)

// Position3D represents a 3D coordinate in arena space.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromVec converts a vector to a Position3D.
func FromVec(v geo.Vec) Position3D {
	return Position3D{X: v.X, Y: v.Y, Z: v.Z}
}

// Session describes one recorder run.
type Session struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	FrameTime float64   `json:"frameTime"`
	ArenaSize float64   `json:"arenaSize"`
	BaseSize  float64   `json:"baseSize"`
}

// ObjectSample is the state of one object or the camera after a fixed step.
type ObjectSample struct {
	SessionID      uuid.UUID  `json:"sessionId"`
	Step           uint64     `json:"step"`
	SimTime        float64    `json:"simTime"`
	Time           time.Time  `json:"time"`
	Name           string     `json:"name"`
	Kind           Kind       `json:"kind"`
	Shape          string     `json:"shape"`
	Color          string     `json:"color"`
	Position       Position3D `json:"position"`
	Velocity       Position3D `json:"velocity"`
	Behavior       string     `json:"behavior"`
	Lit            bool       `json:"lit"`
	LightIntensity float64    `json:"lightIntensity"`
}

// CommandEntry is one executed command line and its outcome.
type CommandEntry struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Step      uint64            `json:"step"`
	SimTime   float64           `json:"simTime"`
	Time      time.Time         `json:"time"`
	Line      string            `json:"line"`
	Command   string            `json:"command"`
	Args      []string          `json:"args"`
	Flags     map[string]string `json:"flags"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
}
