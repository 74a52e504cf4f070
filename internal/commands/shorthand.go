package commands

import (
	"errors"
	"fmt"

	"github.com/rocksandvoids/console/internal/behavior"
	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/world"
)

const flagEmits = "emits"

// Shorthand handles "<object> -still|-orbits|-follows|-emits ..." when the
// first token names an existing object. It reports false otherwise so the
// command falls through to regular dispatch.
func Shorthand(cmd parser.Command, ctx *dispatcher.Context) (dispatcher.Result, bool) {
	obj, ok := ctx.Objects.Get(cmd.Head)
	if !ok {
		return dispatcher.Result{}, false
	}

	var (
		msg string
		err error
	)
	switch {
	case cmd.HasFlag(behavior.TagStill):
		obj.SetBehavior(behavior.NewStill(), ctx.Objects)
		msg = fmt.Sprintf("%q set to stationary", obj.Name)
	case cmd.HasFlag(behavior.TagOrbits):
		msg, err = applyOrbit(cmd, ctx, obj)
	case cmd.HasFlag(behavior.TagFollows):
		msg, err = applyFollow(cmd, ctx, obj)
	case cmd.HasFlag(flagEmits):
		msg, err = applyEmission(cmd, ctx, obj)
	default:
		return dispatcher.Result{}, false
	}

	if err != nil {
		return dispatcher.Failed(err.Error()), true
	}
	logger(ctx).Info("behavior changed", "object", obj.Name, "behavior", describeBehavior(obj))
	ctx.Messages.Success(msg)
	return dispatcher.Ok(obj), true
}

func applyOrbit(cmd parser.Command, ctx *dispatcher.Context, obj *world.Object) (string, error) {
	target, err := targetFlag(cmd, behavior.TagOrbits, "orbit")
	if err != nil {
		return "", err
	}
	if !ctx.Objects.Has(target) {
		return "", fmt.Errorf("Orbit target %q not found", target)
	}
	period, err := numberFlag(cmd, "period", behavior.DefaultOrbitPeriod)
	if err != nil {
		return "", err
	}
	if period == 0 {
		return "", errors.New("Orbit period must not be zero")
	}
	plane := behavior.PlaneXZ
	if v, ok := cmd.FlagValue("plane"); ok {
		if plane, err = behavior.ParsePlane(v.Raw); err != nil {
			return "", err
		}
	}

	b, err := behavior.New(behavior.TagOrbits, behavior.Options{
		Target: target,
		Period: period,
		Plane:  plane,
		Warn:   ctx.Messages.Warning,
	})
	if err != nil {
		return "", err
	}
	obj.SetBehavior(b, ctx.Objects)
	return fmt.Sprintf("%q orbiting %q with period %ss", obj.Name, target, formatNumber(period)), nil
}

func applyFollow(cmd parser.Command, ctx *dispatcher.Context, obj *world.Object) (string, error) {
	target, err := targetFlag(cmd, behavior.TagFollows, "follow")
	if err != nil {
		return "", err
	}
	if !ctx.Objects.Has(target) {
		return "", fmt.Errorf("Follow target %q not found", target)
	}
	distance, err := numberFlag(cmd, "distance", behavior.DefaultFollowDistance)
	if err != nil {
		return "", err
	}
	speed, err := numberFlag(cmd, "speed", behavior.DefaultFollowSpeed)
	if err != nil {
		return "", err
	}
	if distance < 0 {
		return "", errors.New("Follow distance must not be negative")
	}
	if speed <= 0 {
		return "", errors.New("Follow speed must be positive")
	}

	b, err := behavior.New(behavior.TagFollows, behavior.Options{
		Target:   target,
		Distance: distance,
		Speed:    speed,
	})
	if err != nil {
		return "", err
	}
	obj.SetBehavior(b, ctx.Objects)
	return fmt.Sprintf("%q following %q at distance %s", obj.Name, target, formatNumber(distance)), nil
}

func applyEmission(cmd parser.Command, ctx *dispatcher.Context, obj *world.Object) (string, error) {
	f, _ := cmd.Flag(flagEmits)
	if f.HasValue && f.Value.Raw != "light" {
		return "", fmt.Errorf("Unsupported emission %q. Use: -emits light", f.Value.Raw)
	}

	light := obj.Light()
	defaultIntensity := ctx.Defaults.Light.Intensity
	if light != nil {
		defaultIntensity = light.Intensity
	}
	intensity, err := numberFlag(cmd, "intensity", defaultIntensity)
	if err != nil {
		return "", err
	}
	if intensity < 0 {
		return "", errors.New("Light intensity must not be negative")
	}
	period, err := numberFlag(cmd, "period", 0)
	if err != nil {
		return "", err
	}
	if cmd.HasFlag("period") && period <= 0 {
		return "", errors.New("Oscillation period must be positive")
	}
	oscillates := cmd.HasFlag("oscillates")

	if light != nil {
		light.SetIntensity(intensity)
		light.SetOscillation(oscillates, period)
	} else {
		light = world.NewLight(world.LightOptions{
			Color:            catalog.ColorHex(obj.Color),
			Intensity:        intensity,
			DefaultIntensity: intensity,
			Oscillates:       oscillates,
			Period:           period,
			Distance:         ctx.Defaults.Light.Distance,
			Decay:            ctx.Defaults.Light.Decay,
		})
		obj.SetLight(light)
		ctx.Scene.AddLight(obj)
	}

	if oscillates {
		return fmt.Sprintf("%q emitting light (intensity %s, oscillating period %ss)", obj.Name, formatNumber(intensity), formatNumber(light.Period)), nil
	}
	return fmt.Sprintf("%q emitting light (intensity %s)", obj.Name, formatNumber(intensity)), nil
}
