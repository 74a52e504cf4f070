package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocksandvoids/console/internal/behavior"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/world"
)

// Camera behavior defaults differ from object shorthand defaults.
const (
	cameraOrbitPeriod    = 30.0
	cameraFollowDistance = 50.0
)

const errCameraPosition = "Invalid position format. Use: camera position x y z  or  camera position (x,y,z)"

type cameraCmd struct{}

func (cameraCmd) Name() string { return "camera" }

func (cameraCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "Create, position, and configure the camera",
		Syntax: []string{
			"camera                           Create camera with default position",
			"camera position <x> <y> <z>      Set camera position",
			"camera position (x,y,z)          Set camera position (tuple)",
			"camera lookat <object-name>      Look at an object",
			"camera lookat (x,y,z)            Look at a position",
		},
		Flags: []dispatcher.FlagHelp{
			{Name: "still", Description: "Make camera stationary"},
			{Name: "orbits", Description: "Make camera orbit a target (-period <time>, -plane xz|xy|yz)"},
			{Name: "follows", Description: "Make camera follow a target (-distance <min>, -speed <n>)"},
		},
		Examples: []string{
			"camera",
			"camera position 0 500 500",
			"camera position (0,500,500)",
			"camera lookat sun",
			"camera lookat (0,0,0)",
			"camera -orbits sun -period 30s",
		},
	}
}

// cameraRequest is a checked camera command.
type cameraRequest struct {
	subcommand string
	position   geo.Vec
	lookAt     parser.Value

	behaviorTag string
	options     behavior.Options
}

func readCameraRequest(cmd parser.Command) (cameraRequest, error) {
	var req cameraRequest
	pos := cmd.Positional

	if len(pos) > 0 {
		req.subcommand = strings.ToLower(pos[0].Raw)
		switch req.subcommand {
		case "position":
			p, err := readPosition(pos[1:])
			if err != nil {
				return req, err
			}
			req.position = p
		case "lookat":
			if len(pos) < 2 {
				return req, errors.New("Missing look-at target")
			}
			req.lookAt = pos[1]
		default:
			return req, fmt.Errorf("Unknown camera subcommand: %s", req.subcommand)
		}
	}

	switch {
	case cmd.HasFlag(behavior.TagStill):
		req.behaviorTag = behavior.TagStill
	case cmd.HasFlag(behavior.TagOrbits):
		target, err := targetFlag(cmd, behavior.TagOrbits, "orbit")
		if err != nil {
			return req, err
		}
		period, err := numberFlag(cmd, "period", cameraOrbitPeriod)
		if err != nil {
			return req, err
		}
		if period == 0 {
			return req, errors.New("Orbit period must not be zero")
		}
		plane := behavior.PlaneXZ
		if v, ok := cmd.FlagValue("plane"); ok {
			if plane, err = behavior.ParsePlane(v.Raw); err != nil {
				return req, err
			}
		}
		req.behaviorTag = behavior.TagOrbits
		req.options = behavior.Options{Target: target, Period: period, Plane: plane}
	case cmd.HasFlag(behavior.TagFollows):
		target, err := targetFlag(cmd, behavior.TagFollows, "follow")
		if err != nil {
			return req, err
		}
		distance, err := numberFlag(cmd, "distance", cameraFollowDistance)
		if err != nil {
			return req, err
		}
		speed, err := numberFlag(cmd, "speed", behavior.DefaultFollowSpeed)
		if err != nil {
			return req, err
		}
		if distance < 0 {
			return req, errors.New("Follow distance must not be negative")
		}
		if speed <= 0 {
			return req, errors.New("Follow speed must be positive")
		}
		req.behaviorTag = behavior.TagFollows
		req.options = behavior.Options{Target: target, Distance: distance, Speed: speed}
	}

	return req, nil
}

// readPosition accepts either "x y z" or a single "(x,y,z)".
func readPosition(args []parser.Value) (geo.Vec, error) {
	if len(args) >= 3 {
		x, okx := args[0].Float()
		y, oky := args[1].Float()
		z, okz := args[2].Float()
		if okx && oky && okz {
			return geo.V(x, y, z), nil
		}
	}
	if len(args) >= 1 {
		if c, ok := args[0].Coordinate(); ok {
			return c, nil
		}
	}
	return geo.Vec{}, errors.New(errCameraPosition)
}

func (cameraCmd) Validate(cmd parser.Command) error {
	_, err := readCameraRequest(cmd)
	return err
}

func (cameraCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	req, err := readCameraRequest(cmd)
	if err != nil {
		return nil, err
	}

	// Resolve every reference before anything is created or changed.
	if req.subcommand == "lookat" && req.lookAt.Kind != parser.KindCoordinate {
		if !ctx.Objects.Has(req.lookAt.Raw) {
			return nil, fmt.Errorf("Object %q not found", req.lookAt.Raw)
		}
	}
	switch req.behaviorTag {
	case behavior.TagOrbits:
		if !ctx.Objects.Has(req.options.Target) {
			return nil, fmt.Errorf("Orbit target %q not found", req.options.Target)
		}
	case behavior.TagFollows:
		if !ctx.Objects.Has(req.options.Target) {
			return nil, fmt.Errorf("Follow target %q not found", req.options.Target)
		}
	}

	cam := ctx.Objects.Camera()
	created := false
	if cam == nil {
		cam = world.NewCamera(ctx.Defaults.CameraPosition)
		ctx.Objects.SetCamera(cam)
		created = true
	}

	switch req.subcommand {
	case "position":
		cam.SetPosition(req.position)
		ctx.Messages.Success("Camera positioned at " + formatPoint(req.position))
	case "lookat":
		if c, ok := req.lookAt.Coordinate(); ok {
			cam.LookAtPoint(c)
			ctx.Messages.Success("Camera looking at " + formatPoint(c))
		} else {
			cam.LookAtObject(req.lookAt.Raw, ctx.Objects)
			ctx.Messages.Success(fmt.Sprintf("Camera looking at %q", req.lookAt.Raw))
		}
	}

	if req.behaviorTag != "" {
		opts := req.options
		opts.Warn = ctx.Messages.Warning
		b, err := behavior.New(req.behaviorTag, opts)
		if err != nil {
			return nil, err
		}
		cam.SetBehavior(b, ctx.Objects)

		switch req.behaviorTag {
		case behavior.TagStill:
			ctx.Messages.Info("Camera set to stationary")
		case behavior.TagOrbits:
			ctx.Messages.Info(fmt.Sprintf("Camera orbiting %q with period %ss", opts.Target, formatNumber(opts.Period)))
		case behavior.TagFollows:
			ctx.Messages.Info(fmt.Sprintf("Camera following %q at distance %s", opts.Target, formatNumber(opts.Distance)))
		}
	}

	ctx.Scene.SyncCamera(cam)

	if created && len(cmd.Positional) == 0 && len(cmd.Flags) == 0 {
		ctx.Messages.Success("Camera created at default position " + formatPoint(cam.Position))
	}

	return cam, nil
}
