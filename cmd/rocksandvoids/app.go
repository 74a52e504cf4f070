package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/rocksandvoids/console/internal/channel"
	"github.com/rocksandvoids/console/internal/commands"
	"github.com/rocksandvoids/console/internal/config"
	"github.com/rocksandvoids/console/internal/console"
	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/logging"
	intOtel "github.com/rocksandvoids/console/internal/otel"
	"github.com/rocksandvoids/console/internal/recorder"
	"github.com/rocksandvoids/console/internal/scene"
	"github.com/rocksandvoids/console/internal/simulation"
	"github.com/rocksandvoids/console/internal/storage"
	"github.com/rocksandvoids/console/internal/world"
)

const (
	shutdownTimeout = 5 * time.Second
	inputBuffer     = 16
)

type appOptions struct {
	// Out receives console output.
	Out io.Writer
	// LogWriter replaces the log file in logsDir when set.
	LogWriter    io.Writer
	SessionStart time.Time
}

// app wires the simulation, the command layer and the recorder together.
type app struct {
	out      io.Writer
	settings config.Settings

	logManager *logging.SlogManager
	logger     *slog.Logger
	logFile    *os.File
	otel       *intOtel.Provider

	objects    *world.Registry
	scene      *scene.Headless
	sim        *simulation.Scheduler
	dispatcher *dispatcher.Dispatcher
	terminal   *console.Terminal
	console    *console.Console
	recorder   *recorder.Recorder
}

func newApp(opts appOptions) (*app, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.SessionStart.IsZero() {
		opts.SessionStart = time.Now()
	}

	a := &app{
		out:      opts.Out,
		settings: config.Current(),
		objects:  world.NewRegistry(),
	}

	logOut := a.setupLogging(opts)

	var err error
	a.scene = scene.NewHeadless(a.logger, a.settings.ArenaSize)
	a.sim, err = simulation.New(a.objects, a.scene, a.settings.FrameTime, simulation.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	a.dispatcher, err = dispatcher.New(logging.NewDispatcherLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}
	commands.Register(a.dispatcher)

	a.terminal = console.NewTerminal(opts.Out)
	ctx := &dispatcher.Context{
		Objects:    a.objects,
		Simulation: a.sim,
		Scene:      a.scene,
		Messages:   a.terminal,
		Settings:   config.NewRuntime(a.settings),
		Defaults:   a.settings,
		Files:      commands.DiskFiles{},
		Dispatcher: a.dispatcher,
		Logger:     a.logger,
	}
	a.console = console.New(ctx, console.NewHistory(a.settings.HistorySize))

	a.setupRecorder(logOut)

	a.logger.Info("Console ready", "version", Version, "arenaSize", a.settings.ArenaSize, "frameTime", a.settings.FrameTime)
	return a, nil
}

// setupLogging opens the log file, starts OTel when enabled and installs
// the slog logger. It returns the writer storage code should log to.
func (a *app) setupLogging(opts appOptions) io.Writer {
	a.logManager = logging.NewSlogManager()
	a.logManager.SetContextProvider(func() []slog.Attr {
		if a.sim == nil {
			return nil
		}
		return logging.SimulationAttrs(a.sim, a.objects)()
	})

	var logOut io.Writer = opts.LogWriter
	if logOut == nil {
		logOut = a.openLogFile(opts.SessionStart)
	}

	level := viper.GetString("logLevel")

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		p, err := intOtel.New(otelCfg, logOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize OTel provider: %v\n", err)
		} else {
			a.otel = p
		}
	}

	var provider *sdklog.LoggerProvider
	if a.otel != nil {
		provider = a.otel.LoggerProvider()
	}
	a.logManager.Setup(logOut, level, provider)
	a.logger = a.logManager.Logger()
	slog.SetDefault(a.logger)

	if logOut == nil {
		return os.Stdout
	}
	return logOut
}

// openLogFile creates the session log in logsDir. Nil means stdout.
func (a *app) openLogFile(start time.Time) io.Writer {
	dir := viper.GetString("logsDir")
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logs directory: %v\n", err)
		return nil
	}

	path := logging.LogFilePath(dir, appName, start)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create/open log file %s: %v\n", path, err)
		return nil
	}
	a.logFile = f
	return f
}

// setupRecorder starts the configured recorder backend. Failures disable
// recording but never stop the console.
func (a *app) setupRecorder(logOut io.Writer) {
	cfg := config.GetRecorderConfig()
	backend, err := storage.NewBackend(cfg, logging.NewZerolog(logOut, viper.GetString("logLevel")))
	if err != nil {
		a.logger.Error("Failed to create recorder backend", "type", cfg.Type, "error", err)
		return
	}
	if backend == nil {
		a.logger.Debug("Recording disabled")
		return
	}

	rec, err := recorder.New(backend, a.objects,
		recorder.WithSampleEvery(cfg.SampleEvery),
		recorder.WithLogger(a.logger.With("component", "recorder")),
	)
	if err != nil {
		a.logger.Error("Failed to create recorder", "error", err)
		return
	}

	err = rec.Start(recorder.SessionInfo{
		FrameTime: a.settings.FrameTime,
		ArenaSize: a.settings.ArenaSize,
		BaseSize:  a.settings.BaseSize,
	})
	if err != nil {
		a.logger.Error("Failed to start recorder", "type", cfg.Type, "error", err)
		_ = backend.Close()
		return
	}

	rec.Attach(a.sim, a.dispatcher)
	a.recorder = rec
	a.logger.Info("Recorder started", "type", cfg.Type, "session", rec.Session().ID.String())
}

// importLine builds an import command for path, quoting it so spaces
// survive tokenizing.
func importLine(path string) string {
	if strings.Contains(path, `"`) {
		return "import '" + path + "'"
	}
	return `import "` + path + `"`
}

// runScript imports path through the console. An empty path does nothing.
func (a *app) runScript(path string) error {
	if path == "" {
		return nil
	}
	for _, res := range a.console.Execute(importLine(path)) {
		if !res.Success {
			return fmt.Errorf("script %s: %s", path, res.Error)
		}
	}
	return nil
}

// RunHeadless imports the script, advances the simulation by steps fixed
// updates and prints the status.
func (a *app) RunHeadless(script string, steps int) error {
	if err := a.runScript(script); err != nil {
		return err
	}
	if steps > 0 {
		a.sim.Step(steps)
	}
	a.console.Execute("status")
	return nil
}

// RunInteractive reads commands from in until EOF or ctx is done. The
// simulation is ticked at the configured refresh rate between commands.
func (a *app) RunInteractive(ctx context.Context, script string, in io.Reader) error {
	if err := a.runScript(script); err != nil {
		a.logger.Warn("Startup script failed", "error", err)
	}

	lines, wait := channel.Lines(ctx, in, inputBuffer)

	ticker := time.NewTicker(refreshInterval(a.settings.RefreshRate))
	defer ticker.Stop()

	fmt.Fprint(a.out, console.Prompt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines.Receive():
			if !ok {
				return wait()
			}
			a.console.Execute(line)
			fmt.Fprint(a.out, console.Prompt)
		case <-ticker.C:
			a.sim.Tick()
		}
	}
}

func refreshInterval(rate float64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(float64(time.Second) / rate)
}

// Close stops recording and flushes telemetry and logs.
func (a *app) Close() error {
	var errs []error

	a.sim.Stop()
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("recorder: %w", err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.logManager.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush logs: %w", err))
	}
	if err := a.otel.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("otel: %w", err))
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
