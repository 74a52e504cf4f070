package commands

import (
	"fmt"
	"strings"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/world"
)

type statusCmd struct{}

func (statusCmd) Name() string                  { return "status" }
func (statusCmd) Validate(parser.Command) error { return nil }

func (statusCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Show the simulation state, or the details of one object",
		Syntax: []string{
			"status          Show simulation, camera and objects",
			"status <name>   Show one object",
		},
		Examples: []string{"status", "status sun", "status camera"},
	}
}

func (statusCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	if target, ok := cmd.Arg(0); ok {
		if o, ok := ctx.Objects.Get(target.Raw); ok {
			ctx.Messages.Help(describeObject(o))
			return o, nil
		}
		if cam := ctx.Objects.Camera(); cam != nil && strings.EqualFold(target.Raw, world.CameraName) {
			ctx.Messages.Help(describeCamera(cam))
			return cam, nil
		}
		return nil, fmt.Errorf("Object %q not found", target.Raw)
	}

	ctx.Messages.Help(overview(ctx))
	return nil, nil
}

func overview(ctx *dispatcher.Context) string {
	sim := ctx.Simulation
	state := "stopped"
	if sim.Running() {
		state = "running"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Simulation: %s\n", state)
	fmt.Fprintf(&b, "  Steps:       %d\n", sim.Steps())
	fmt.Fprintf(&b, "  Sim time:    %.2fs\n", sim.SimTime())
	fmt.Fprintf(&b, "  Frame time:  %ss\n", formatNumber(sim.FrameTime()))

	if cam := ctx.Objects.Camera(); cam != nil {
		fmt.Fprintf(&b, "Camera: %s looking at %s [%s]\n", geo.Format(cam.Position, 1), cam.LookAtTarget(), describeBehavior(&cam.Object))
	} else {
		b.WriteString("Camera: none\n")
	}

	fmt.Fprintf(&b, "Objects (%d):", ctx.Objects.Count())
	ctx.Objects.ForEach(func(o *world.Object) {
		fmt.Fprintf(&b, "\n  %-12s %-6s %-8s %-8s at %s [%s]", o.Name, o.SizeClass, o.Color, o.Shape, geo.Format(o.Position, 1), describeBehavior(o))
		if l := o.Light(); l != nil {
			b.WriteString(" lit")
		}
	})
	return b.String()
}

func describeBehavior(o *world.Object) string {
	if b := o.Behavior(); b != nil {
		return b.Describe()
	}
	return o.BehaviorName()
}

func describeObject(o *world.Object) string {
	lines := []string{
		fmt.Sprintf("Object %q", o.Name),
		fmt.Sprintf("  ID:        %s", o.ID),
		fmt.Sprintf("  Shape:     %s", o.Shape),
		fmt.Sprintf("  Color:     %s", o.Color),
		fmt.Sprintf("  Size:      %s (%sm)", o.SizeClass, formatNumber(o.Size)),
		fmt.Sprintf("  Position:  %s", geo.Format(o.Position, 2)),
		fmt.Sprintf("  Velocity:  %s", geo.Format(o.Velocity, 2)),
		fmt.Sprintf("  Behavior:  %s", describeBehavior(o)),
	}
	if l := o.Light(); l != nil {
		light := fmt.Sprintf("  Light:     intensity %s", formatNumber(l.Intensity))
		if l.Oscillates {
			light += fmt.Sprintf(", oscillating period %ss", formatNumber(l.Period))
		}
		lines = append(lines, light)
	}
	return strings.Join(lines, "\n")
}

func describeCamera(c *world.Camera) string {
	return strings.Join([]string{
		"Camera",
		fmt.Sprintf("  Position:  %s", geo.Format(c.Position, 2)),
		fmt.Sprintf("  Velocity:  %s", geo.Format(c.Velocity, 2)),
		fmt.Sprintf("  Looking:   %s", c.LookAtTarget()),
		fmt.Sprintf("  Behavior:  %s", describeBehavior(&c.Object)),
	}, "\n")
}
