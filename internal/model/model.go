// Package model defines the GORM tables written by the SQL recorder backends.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema.
var DatabaseModels = []any{
	&Session{},
	&ObjectSample{},
	&CommandEntry{},
}

// Session is one recorder run.
type Session struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt"`
	SessionID string    `json:"sessionId" gorm:"size:36;uniqueIndex"`
	StartedAt time.Time `json:"startedAt"`
	FrameTime float64   `json:"frameTime"`
	ArenaSize float64   `json:"arenaSize"`
	BaseSize  float64   `json:"baseSize"`
}

// ObjectSample is the sampled state of one object or the camera.
type ObjectSample struct {
	ID             uint      `json:"id" gorm:"primarykey;autoIncrement"`
	SessionID      uint      `json:"sessionId" gorm:"index:idx_sample_session_step"`
	Session        Session   `json:"-" gorm:"foreignkey:SessionID"`
	Step           uint64    `json:"step" gorm:"index:idx_sample_session_step"`
	SimTime        float64   `json:"simTime"`
	Time           time.Time `json:"time"`
	Name           string    `json:"name" gorm:"size:127;index"`
	Kind           string    `json:"kind" gorm:"size:16"`
	Shape          string    `json:"shape" gorm:"size:32"`
	Color          string    `json:"color" gorm:"size:32"`
	PositionX      float64   `json:"positionX"`
	PositionY      float64   `json:"positionY"`
	PositionZ      float64   `json:"positionZ"`
	VelocityX      float64   `json:"velocityX"`
	VelocityY      float64   `json:"velocityY"`
	VelocityZ      float64   `json:"velocityZ"`
	Behavior       string    `json:"behavior" gorm:"size:255"`
	Lit            bool      `json:"lit"`
	LightIntensity float64   `json:"lightIntensity"`
}

// CommandEntry is one executed command line.
type CommandEntry struct {
	ID        uint           `json:"id" gorm:"primarykey;autoIncrement"`
	SessionID uint           `json:"sessionId" gorm:"index"`
	Session   Session        `json:"-" gorm:"foreignkey:SessionID"`
	Step      uint64         `json:"step"`
	SimTime   float64        `json:"simTime"`
	Time      time.Time      `json:"time"`
	Line      string         `json:"line" gorm:"size:2048"`
	Command   string         `json:"command" gorm:"size:64;index"`
	Success   bool           `json:"success"`
	Error     string         `json:"error" gorm:"size:1024"`
	Details   datatypes.JSON `json:"details"`
}

func (*Session) TableName() string {
	return "sessions"
}

func (*ObjectSample) TableName() string {
	return "object_samples"
}

func (*CommandEntry) TableName() string {
	return "command_entries"
}
