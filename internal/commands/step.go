package commands

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
)

// maxSteps caps a single step command.
const maxSteps = 100000

type stepCmd struct{}

func (stepCmd) Name() string { return "step" }

func (stepCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Advance a stopped simulation by a number of fixed steps",
		Syntax:      []string{"step [count]"},
		Examples:    []string{"step", "step 10"},
	}
}

func stepCount(cmd parser.Command) (int, error) {
	v, ok := cmd.Arg(0)
	if !ok {
		return 1, nil
	}
	n, ok := v.Float()
	if !ok || n < 1 || n != math.Trunc(n) || n > maxSteps {
		return 0, fmt.Errorf("Step count must be a whole number between 1 and %d", maxSteps)
	}
	return int(n), nil
}

func (stepCmd) Validate(cmd parser.Command) error {
	_, err := stepCount(cmd)
	return err
}

func (stepCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	n, err := stepCount(cmd)
	if err != nil {
		return nil, err
	}
	if ctx.Simulation.Running() {
		return nil, errors.New(`Cannot step while the simulation is running. Use "stop" first.`)
	}
	ctx.Simulation.Step(n)
	ctx.Messages.Success(fmt.Sprintf("Advanced %d step(s) to t=%.2fs", n, ctx.Simulation.SimTime()))
	return n, nil
}
