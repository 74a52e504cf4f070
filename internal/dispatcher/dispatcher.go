// Package dispatcher routes parsed commands to their descriptors. It turns
// every outcome, including panics, into a Result so failures never escape
// the command boundary.
package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rocksandvoids/console/internal/parser"
)

// HelpCommand is the command name that shows help without --help.
const HelpCommand = "help"

// Descriptor is one command variant.
type Descriptor interface {
	// Name is the command word. It is matched case-insensitively.
	Name() string
	Help() Help
	// Validate checks the command without touching any state.
	Validate(cmd parser.Command) error
	// Execute runs a validated command.
	Execute(cmd parser.Command, ctx *Context) (any, error)
}

// Result is the outcome of one command.
type Result struct {
	Success bool
	Payload any
	Error   string
}

// Ok returns a successful Result.
func Ok(payload any) Result {
	return Result{Success: true, Payload: payload}
}

// Failed returns an error Result.
func Failed(msg string) Result {
	return Result{Error: msg}
}

// Interceptor sees a command before regular dispatch. It reports false when
// it does not handle the command.
type Interceptor func(cmd parser.Command, ctx *Context) (Result, bool)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures descriptor registration.
type Option func(*options)

type options struct {
	logged bool
}

// Logged adds debug logging around execution.
func Logged() Option {
	return func(o *options) {
		o.logged = true
	}
}

type entry struct {
	desc   Descriptor
	logged bool
}

// Dispatcher routes commands to registered descriptors.
type Dispatcher struct {
	commands     map[string]entry
	interceptors []Interceptor
	observers    []func(cmd parser.Command, res Result)
	logger       Logger

	// OTEL metrics
	registered metric.Int64ObservableGauge
	dispatched metric.Int64Counter
	failed     metric.Int64Counter
	count      atomic.Int64
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		commands: make(map[string]entry),
		logger:   logger,
	}

	m := meter()

	var err error

	d.registered, err = m.Int64ObservableGauge(
		"commands.registered",
		metric.WithDescription("Number of registered commands"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registered gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(d.registered, d.count.Load())
			return nil
		},
		d.registered,
	)
	if err != nil {
		return nil, fmt.Errorf("registering command callback: %w", err)
	}

	d.dispatched, err = m.Int64Counter(
		"commands.dispatched",
		metric.WithDescription("Total commands dispatched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatched counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"commands.failed",
		metric.WithDescription("Total commands that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return d, nil
}

// Register adds a descriptor under its lowercased name. Registering a name
// again replaces the earlier descriptor.
func (d *Dispatcher) Register(desc Descriptor, opts ...Option) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}
	d.commands[strings.ToLower(desc.Name())] = entry{desc: desc, logged: cfg.logged}
	d.count.Store(int64(len(d.commands)))
}

// Intercept installs fn ahead of regular dispatch in Run.
func (d *Dispatcher) Intercept(fn Interceptor) {
	d.interceptors = append(d.interceptors, fn)
}

// Observe registers fn to receive every command handled by Run and its
// result.
func (d *Dispatcher) Observe(fn func(cmd parser.Command, res Result)) {
	d.observers = append(d.observers, fn)
}

// HasHandler returns true if a descriptor is registered for the command.
func (d *Dispatcher) HasHandler(name string) bool {
	_, ok := d.commands[strings.ToLower(name)]
	return ok
}

// Lookup returns the descriptor registered for name.
func (d *Dispatcher) Lookup(name string) (Descriptor, bool) {
	e, ok := d.commands[strings.ToLower(name)]
	return e.desc, ok
}

// Names returns the registered command names in no particular order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	return names
}

// Run offers cmd to the interceptors and falls back to Dispatch.
func (d *Dispatcher) Run(cmd parser.Command, ctx *Context) Result {
	res, handled := d.intercept(cmd, ctx)
	if !handled {
		res = d.Dispatch(cmd, ctx)
	}
	for _, fn := range d.observers {
		fn(cmd, res)
	}
	return res
}

func (d *Dispatcher) intercept(cmd parser.Command, ctx *Context) (res Result, handled bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("interceptor panicked", "command", cmd.Head, "panic", r)
			res, handled = Failed(fmt.Sprintf("Error: %v", r)), true
		}
	}()
	for _, fn := range d.interceptors {
		if res, ok := fn(cmd, ctx); ok {
			return res, true
		}
	}
	return Result{}, false
}

// Dispatch resolves and runs a command:
//
//  1. --help shows the command's help, or the index for unknown names.
//  2. "help [name]" shows the index or one command's help.
//  3. Unknown names are an error.
//  4. Validate runs; a failure stops here with no side effects.
//  5. Execute runs and its outcome becomes the Result.
func (d *Dispatcher) Dispatch(cmd parser.Command, ctx *Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked", "command", cmd.Name, "panic", r)
			res = Failed(fmt.Sprintf("Error: %v", r))
		}
		d.record(cmd.Name, res)
	}()

	if cmd.WantsHelp() {
		if e, ok := d.commands[cmd.Name]; ok {
			ctx.Messages.Help(FormatHelp(cmd.Name, e.desc.Help()))
		} else {
			ctx.Messages.Help(d.Index(ctx))
		}
		return Ok(nil)
	}

	if cmd.Name == HelpCommand {
		return d.ShowHelp(cmd, ctx)
	}

	e, ok := d.commands[cmd.Name]
	if !ok {
		return Failed(fmt.Sprintf(`Unknown command: %s. Type "help" for available commands.`, cmd.Name))
	}

	if err := e.desc.Validate(cmd); err != nil {
		return Failed(err.Error())
	}

	var (
		payload any
		err     error
	)
	if e.logged {
		payload, err = d.executeLogged(e.desc, cmd, ctx)
	} else {
		payload, err = e.desc.Execute(cmd, ctx)
	}
	if err != nil {
		return Failed(err.Error())
	}
	return Ok(payload)
}

// ShowHelp handles "help [name]": the index without a name, the command's
// help with one, and an error for an unknown name.
func (d *Dispatcher) ShowHelp(cmd parser.Command, ctx *Context) Result {
	target, ok := cmd.Arg(0)
	if !ok {
		ctx.Messages.Help(d.Index(ctx))
		return Ok(nil)
	}
	name := strings.ToLower(target.Raw)
	e, ok := d.commands[name]
	if !ok {
		return Failed(fmt.Sprintf("Unknown command: %s", target.Raw))
	}
	ctx.Messages.Help(FormatHelp(name, e.desc.Help()))
	return Ok(nil)
}

func (d *Dispatcher) record(name string, res Result) {
	if _, ok := d.commands[name]; !ok && name != HelpCommand {
		name = "unknown"
	}
	attrs := metric.WithAttributes(attribute.String("command", name))
	d.dispatched.Add(context.Background(), 1, attrs)
	if !res.Success {
		d.failed.Add(context.Background(), 1, attrs)
	}
}

func (d *Dispatcher) executeLogged(desc Descriptor, cmd parser.Command, ctx *Context) (any, error) {
	start := time.Now()
	d.logger.Debug("handling command", "command", cmd.Name, "args", len(cmd.Positional), "flags", len(cmd.Flags))

	result, err := desc.Execute(cmd, ctx)

	if err != nil {
		d.logger.Error("command failed", "command", cmd.Name, "duration", time.Since(start), "error", err)
	} else {
		d.logger.Debug("command complete", "command", cmd.Name, "duration", time.Since(start))
	}

	return result, err
}
