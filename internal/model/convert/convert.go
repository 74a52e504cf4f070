// Package convert provides functions to convert between core records and
// GORM models.
package convert

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/rocksandvoids/console/internal/model"
	"github.com/rocksandvoids/console/internal/model/core"
)

// commandDetails is the JSON stored in CommandEntry.Details.
type commandDetails struct {
	Args  []string          `json:"args"`
	Flags map[string]string `json:"flags"`
}

// CoreToSession converts a core.Session to a GORM model.Session.
func CoreToSession(s core.Session) model.Session {
	return model.Session{
		SessionID: s.ID.String(),
		StartedAt: s.StartedAt,
		FrameTime: s.FrameTime,
		ArenaSize: s.ArenaSize,
		BaseSize:  s.BaseSize,
	}
}

// CoreToObjectSample converts a core.ObjectSample to a GORM model.ObjectSample.
// SessionID is left for the writer to stamp.
func CoreToObjectSample(s core.ObjectSample) model.ObjectSample {
	return model.ObjectSample{
		Step:           s.Step,
		SimTime:        s.SimTime,
		Time:           s.Time,
		Name:           s.Name,
		Kind:           string(s.Kind),
		Shape:          s.Shape,
		Color:          s.Color,
		PositionX:      s.Position.X,
		PositionY:      s.Position.Y,
		PositionZ:      s.Position.Z,
		VelocityX:      s.Velocity.X,
		VelocityY:      s.Velocity.Y,
		VelocityZ:      s.Velocity.Z,
		Behavior:       s.Behavior,
		Lit:            s.Lit,
		LightIntensity: s.LightIntensity,
	}
}

// CoreToCommandEntry converts a core.CommandEntry to a GORM model.CommandEntry.
// Arguments and flags are kept as JSON details.
func CoreToCommandEntry(c core.CommandEntry) model.CommandEntry {
	args := c.Args
	if args == nil {
		args = []string{}
	}
	flags := c.Flags
	if flags == nil {
		flags = map[string]string{}
	}
	details, err := json.Marshal(commandDetails{Args: args, Flags: flags})
	if err != nil {
		details = []byte("{}")
	}

	return model.CommandEntry{
		Step:    c.Step,
		SimTime: c.SimTime,
		Time:    c.Time,
		Line:    c.Line,
		Command: c.Command,
		Success: c.Success,
		Error:   c.Error,
		Details: datatypes.JSON(details),
	}
}

// ObjectSampleToCore converts a stored sample back to a core.ObjectSample.
// The session UUID is not stored per row and is left zero.
func ObjectSampleToCore(s model.ObjectSample) core.ObjectSample {
	return core.ObjectSample{
		Step:           s.Step,
		SimTime:        s.SimTime,
		Time:           s.Time,
		Name:           s.Name,
		Kind:           core.Kind(s.Kind),
		Shape:          s.Shape,
		Color:          s.Color,
		Position:       core.Position3D{X: s.PositionX, Y: s.PositionY, Z: s.PositionZ},
		Velocity:       core.Position3D{X: s.VelocityX, Y: s.VelocityY, Z: s.VelocityZ},
		Behavior:       s.Behavior,
		Lit:            s.Lit,
		LightIntensity: s.LightIntensity,
	}
}
