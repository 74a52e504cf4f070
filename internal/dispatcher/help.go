package dispatcher

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rocksandvoids/console/internal/config"
)

// FlagHelp documents one flag.
type FlagHelp struct {
	Name        string
	Description string
}

// Help is the documentation a descriptor carries.
type Help struct {
	Description string
	Syntax      []string
	Flags       []FlagHelp
	Examples    []string
}

// FormatHelp renders the detailed help for one command.
func FormatHelp(name string, h Help) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(name))
	b.WriteString("\n\n")
	b.WriteString(h.Description)
	b.WriteString("\n")

	if len(h.Syntax) > 0 {
		b.WriteString("\nSYNTAX:\n")
		for _, s := range h.Syntax {
			fmt.Fprintf(&b, "  %s\n", s)
		}
	}

	if len(h.Flags) > 0 {
		b.WriteString("\nOPTIONS:\n")
		for _, f := range h.Flags {
			fmt.Fprintf(&b, "  -%-15s %s\n", f.Name, f.Description)
		}
	}

	if len(h.Examples) > 0 {
		b.WriteString("\nEXAMPLES:\n")
		for _, ex := range h.Examples {
			fmt.Fprintf(&b, "  %s\n", ex)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Index renders the alphabetical command reference. Object sizes are shown
// for the current base size.
func (d *Dispatcher) Index(ctx *Context) string {
	names := d.Names()
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("ROCKS AND VOIDS - Command Reference\n\n")
	b.WriteString("Available commands:\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-12s %s\n", name, d.commands[name].desc.Help().Description)
	}
	b.WriteString("\nType \"<command> --help\" for detailed help on a specific command.\n\n")
	b.WriteString("COORDINATE SYSTEM:\n")
	b.WriteString("  Y-up, right-handed coordinate system.\n")
	b.WriteString("  Origin (0,0,0) is at the center of the arena.\n")

	defaults := config.Default()
	base := defaults.BaseSize
	mult := defaults.SizeMultipliers
	if ctx != nil {
		if ctx.Settings != nil {
			base = ctx.Settings.BaseSize
		}
		if ctx.Defaults.SizeMultipliers != (config.SizeMultipliers{}) {
			mult = ctx.Defaults.SizeMultipliers
		}
	}
	b.WriteString("\nSIZE REFERENCE:\n")
	fmt.Fprintf(&b, "  small  = %sm\n", formatNumber(base*mult.Small))
	fmt.Fprintf(&b, "  medium = %sm (default)\n", formatNumber(base*mult.Medium))
	fmt.Fprintf(&b, "  large  = %sm", formatNumber(base*mult.Large))

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
