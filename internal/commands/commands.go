// Package commands holds the console command set and the behavior shorthand
// ("<object> -orbits <target>") that runs ahead of regular dispatch.
package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/parser"
)

// All returns every built-in command.
func All() []dispatcher.Descriptor {
	return []dispatcher.Descriptor{
		placeCmd{},
		cameraCmd{},
		startCmd{},
		stopCmd{},
		resetCmd{},
		clearCmd{},
		configCmd{},
		importCmd{},
		helpCmd{},
		statusCmd{},
		stepCmd{},
	}
}

// Register adds the built-in commands and the behavior shorthand to d.
func Register(d *dispatcher.Dispatcher) {
	for _, desc := range All() {
		d.Register(desc, dispatcher.Logged())
	}
	d.Intercept(Shorthand)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPoint(v geo.Vec) string {
	return fmt.Sprintf("(%s, %s, %s)", formatNumber(v.X), formatNumber(v.Y), formatNumber(v.Z))
}

// numberFlag reads an optional numeric flag. A flag given without a value,
// or with a non-numeric one, is an error.
func numberFlag(cmd parser.Command, name string, fallback float64) (float64, error) {
	f, ok := cmd.Flag(name)
	if !ok {
		return fallback, nil
	}
	if !f.HasValue {
		return 0, fmt.Errorf("Missing value for -%s", name)
	}
	v, ok := f.Value.Float()
	if !ok {
		return 0, fmt.Errorf("Invalid value for -%s: %s", name, f.Value.Raw)
	}
	return v, nil
}

// targetFlag reads the object name given to a flag such as -orbits.
func targetFlag(cmd parser.Command, name, what string) (string, error) {
	v, ok := cmd.FlagValue(name)
	if !ok {
		return "", fmt.Errorf("Missing %s target. Use: -%s <name>", what, name)
	}
	return v.Raw, nil
}

func logger(ctx *dispatcher.Context) *slog.Logger {
	if ctx.Logger != nil {
		return ctx.Logger
	}
	return slog.Default()
}
