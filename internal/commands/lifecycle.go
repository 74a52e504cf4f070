package commands

import (
	"errors"
	"fmt"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/world"
)

type startCmd struct{}

func (startCmd) Name() string                  { return "start" }
func (startCmd) Validate(parser.Command) error { return nil }

func (startCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Start the simulation. Requires a camera to be defined.",
		Syntax:      []string{"start"},
		Examples:    []string{"start"},
	}
}

func (startCmd) Execute(_ parser.Command, ctx *dispatcher.Context) (any, error) {
	if !ctx.Objects.HasCamera() {
		return nil, errors.New(`Cannot start simulation: No camera defined. Use "camera" command first.`)
	}
	if ctx.Simulation.Running() {
		ctx.Messages.Warning("Simulation is already running")
		return nil, nil
	}
	if err := ctx.Simulation.Start(); err != nil {
		return nil, err
	}
	ctx.Messages.Success("Simulation started")
	return nil, nil
}

type stopCmd struct{}

func (stopCmd) Name() string                  { return "stop" }
func (stopCmd) Validate(parser.Command) error { return nil }

func (stopCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Stop (pause) the simulation. Objects retain their current positions.",
		Syntax:      []string{"stop"},
		Examples:    []string{"stop"},
	}
}

func (stopCmd) Execute(_ parser.Command, ctx *dispatcher.Context) (any, error) {
	if !ctx.Simulation.Running() {
		ctx.Messages.Warning("Simulation is not running")
		return nil, nil
	}
	ctx.Simulation.Stop()
	ctx.Messages.Success("Simulation stopped")
	return nil, nil
}

type resetCmd struct{}

func (resetCmd) Name() string                  { return "reset" }
func (resetCmd) Validate(parser.Command) error { return nil }

func (resetCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Reset the simulation. Removes all objects and stops the simulation.",
		Syntax:      []string{"reset"},
		Examples:    []string{"reset"},
	}
}

func (resetCmd) Execute(_ parser.Command, ctx *dispatcher.Context) (any, error) {
	ctx.Simulation.Stop()

	removed := ctx.Objects.Count()
	ctx.Objects.ForEach(func(o *world.Object) {
		if o.Light() != nil {
			ctx.Scene.RemoveLight(o)
		}
		ctx.Scene.RemoveObject(o)
	})
	ctx.Objects.Clear()
	ctx.Simulation.Reset()

	ctx.Messages.Clear()
	if ctx.History != nil {
		ctx.History.Clear()
	}

	logger(ctx).Info("simulation reset", "removed", removed)
	ctx.Messages.Success(fmt.Sprintf("Reset complete. Removed %d object(s).", removed))
	return removed, nil
}

type clearCmd struct{}

func (clearCmd) Name() string                  { return "clear" }
func (clearCmd) Validate(parser.Command) error { return nil }

func (clearCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Clear the status messages and command history display",
		Syntax:      []string{"clear"},
		Examples:    []string{"clear"},
	}
}

func (clearCmd) Execute(_ parser.Command, ctx *dispatcher.Context) (any, error) {
	ctx.Messages.Clear()
	if ctx.History != nil {
		ctx.History.Clear()
	}
	return nil, nil
}
