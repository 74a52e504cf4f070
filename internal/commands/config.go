package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/parser"
)

const (
	settingArena     = "arena"
	settingFrameTime = "frametime"
	settingBaseSize  = "basesize"
)

type configCmd struct{}

func (configCmd) Name() string { return "config" }

func (configCmd) Help() dispatcher.Help {
	return dispatcher.Help{
		Description: "View or modify simulation configuration",
		Syntax: []string{
			"config                    Show current configuration",
			"config arena <size>       Set arena size in meters",
			"config frametime <sec>    Set frame time in seconds",
			"config basesize <meters>  Set base object size (medium)",
		},
		Examples: []string{
			"config",
			"config arena 2000",
			"config frametime 0.05",
			"config frametime 50ms",
			"config basesize 20",
		},
	}
}

// readSetting returns the setting name and its new value. An empty name
// means the command only shows the configuration.
func readSetting(cmd parser.Command) (string, float64, error) {
	first, ok := cmd.Arg(0)
	if !ok {
		return "", 0, nil
	}
	setting := strings.ToLower(first.Raw)
	switch setting {
	case settingArena, settingFrameTime, settingBaseSize:
	default:
		return "", 0, fmt.Errorf("Unknown setting: %s. Available: %s, %s, %s", setting, settingArena, settingFrameTime, settingBaseSize)
	}

	raw, ok := cmd.Arg(1)
	if !ok {
		return "", 0, fmt.Errorf("Missing value for %q", setting)
	}
	v, ok := raw.Float()
	if !ok {
		return "", 0, fmt.Errorf("Invalid value for %q: %s", setting, raw.Raw)
	}
	if v <= 0 {
		switch setting {
		case settingArena:
			return "", 0, errors.New("Arena size must be positive")
		case settingFrameTime:
			return "", 0, errors.New("Frame time must be positive")
		default:
			return "", 0, errors.New("Base size must be positive")
		}
	}
	return setting, v, nil
}

func (configCmd) Validate(cmd parser.Command) error {
	_, _, err := readSetting(cmd)
	return err
}

func (configCmd) Execute(cmd parser.Command, ctx *dispatcher.Context) (any, error) {
	setting, v, err := readSetting(cmd)
	if err != nil {
		return nil, err
	}

	rt := ctx.Settings
	switch setting {
	case "":
		ctx.Messages.Help(showConfig(ctx))
		return nil, nil
	case settingArena:
		rt.ArenaSize = v
		ctx.Scene.SetArenaSize(v)
		ctx.Messages.Success(fmt.Sprintf("Arena size set to %sm", formatNumber(v)))
	case settingFrameTime:
		if err := ctx.Simulation.SetFrameTime(v); err != nil {
			return nil, err
		}
		rt.FrameTime = v
		ctx.Messages.Success(fmt.Sprintf("Frame time set to %ss (%.1f FPS)", formatNumber(v), 1/v))
	case settingBaseSize:
		rt.BaseSize = v
		ctx.Messages.Success(fmt.Sprintf("Base object size set to %sm", formatNumber(v)))
		ctx.Messages.Info(fmt.Sprintf("New objects: small=%sm, medium=%sm, large=%sm",
			formatNumber(sizeOf(ctx, catalog.Small)),
			formatNumber(sizeOf(ctx, catalog.Medium)),
			formatNumber(sizeOf(ctx, catalog.Large)),
		))
	}

	logger(ctx).Info("setting changed", "setting", setting, "value", v)
	return *rt, nil
}

func sizeOf(ctx *dispatcher.Context, class catalog.SizeClass) float64 {
	return ctx.Settings.BaseSize * ctx.Defaults.SizeMultipliers.For(class)
}

func showConfig(ctx *dispatcher.Context) string {
	rt := ctx.Settings
	lines := []string{
		"Current Configuration:",
		fmt.Sprintf("  Arena size:  %sm", formatNumber(rt.ArenaSize)),
		fmt.Sprintf("  Frame time:  %ss (%.1f FPS)", formatNumber(rt.FrameTime), 1/rt.FrameTime),
		fmt.Sprintf("  Base size:   %sm", formatNumber(rt.BaseSize)),
		"",
		"Object Sizes:",
		fmt.Sprintf("  Small:  %sm", formatNumber(sizeOf(ctx, catalog.Small))),
		fmt.Sprintf("  Medium: %sm", formatNumber(sizeOf(ctx, catalog.Medium))),
		fmt.Sprintf("  Large:  %sm", formatNumber(sizeOf(ctx, catalog.Large))),
	}
	return strings.Join(lines, "\n")
}
