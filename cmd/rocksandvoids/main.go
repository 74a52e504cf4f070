package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rocksandvoids/console/internal/config"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

const appName = "rocksandvoids"

func main() {
	flags := pflag.NewFlagSet(appName, pflag.ExitOnError)
	configDir := flags.String("config", ".", "directory containing "+config.FileName)
	flags.String("script", "", "command file to import before the prompt")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Int("headless-steps", -1, "run the script, advance this many steps, print status and exit")
	showVersion := flags.Bool("version", false, "print the version and exit")
	_ = flags.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("%s %s (built %s)\n", appName, Version, BuildDate)
		return
	}

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := bindFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(appOptions{Out: os.Stdout, SessionStart: time.Now()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	script := viper.GetString("script")
	if steps := viper.GetInt("headlessSteps"); steps >= 0 {
		err = a.RunHeadless(script, steps)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = a.RunInteractive(ctx, script, os.Stdin)
		stop()
	}

	if cerr := a.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Shutdown: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// bindFlags exposes the command-line flags through viper. A flag only
// overrides the config file when it was given.
func bindFlags(flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"logLevel":      "log-level",
		"script":        "script",
		"headlessSteps": "headless-steps",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
