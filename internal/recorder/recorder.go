// Package recorder captures object trajectories and executed commands into
// a storage backend. It hooks into the scheduler's step callbacks and the
// dispatcher's observers.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rocksandvoids/console/internal/dispatcher"
	"github.com/rocksandvoids/console/internal/model/core"
	"github.com/rocksandvoids/console/internal/parser"
	"github.com/rocksandvoids/console/internal/simulation"
	"github.com/rocksandvoids/console/internal/storage"
	"github.com/rocksandvoids/console/internal/world"
)

// DefaultSampleEvery is the sampling period in fixed steps.
const DefaultSampleEvery = 10

var (
	ErrNoBackend  = errors.New("recorder has no backend")
	ErrNotStarted = errors.New("recorder not started")
)

// SessionInfo is the configuration captured with a new session.
type SessionInfo struct {
	FrameTime float64
	ArenaSize float64
	BaseSize  float64
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithSampleEvery samples every n fixed steps. Values below 1 are ignored.
func WithSampleEvery(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.sampleEvery = uint64(n)
		}
	}
}

// WithClock sets the wall clock used for timestamps.
func WithClock(c simulation.Clock) Option {
	return func(r *Recorder) {
		r.clock = c
	}
}

// WithLogger sets the logger for backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// Recorder samples the registry after fixed steps and logs command lines.
type Recorder struct {
	backend     storage.Backend
	objects     *world.Registry
	sampleEvery uint64
	clock       simulation.Clock
	logger      *slog.Logger

	session core.Session
	started bool
	step    uint64
	simTime float64

	// OTEL metrics
	samplesRecorded  metric.Int64Counter
	commandsRecorded metric.Int64Counter
	writeFailures    metric.Int64Counter
}

// New creates a Recorder writing to backend. Call Start before use.
func New(backend storage.Backend, objects *world.Registry, opts ...Option) (*Recorder, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	r := &Recorder{
		backend:     backend,
		objects:     objects,
		sampleEvery: DefaultSampleEvery,
		clock:       simulation.SystemClock(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	m := meter()
	var err error

	r.samplesRecorded, err = m.Int64Counter(
		"recorder.samples",
		metric.WithDescription("Object and camera samples handed to the backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples counter: %w", err)
	}

	r.commandsRecorded, err = m.Int64Counter(
		"recorder.commands",
		metric.WithDescription("Command lines handed to the backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating commands counter: %w", err)
	}

	r.writeFailures, err = m.Int64Counter(
		"recorder.write_failures",
		metric.WithDescription("Backend writes that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	return r, nil
}

// Start initializes the backend and opens a session.
func (r *Recorder) Start(info SessionInfo) error {
	if err := r.backend.Init(); err != nil {
		return fmt.Errorf("init recorder backend: %w", err)
	}

	r.session = core.Session{
		ID:        uuid.New(),
		StartedAt: r.clock.Now(),
		FrameTime: info.FrameTime,
		ArenaSize: info.ArenaSize,
		BaseSize:  info.BaseSize,
	}
	if err := r.backend.StartSession(&r.session); err != nil {
		return fmt.Errorf("start recording session: %w", err)
	}
	r.started = true
	r.logger.Info("recording started", "session", r.session.ID.String(), "sampleEvery", r.sampleEvery)
	return nil
}

// Attach registers the recorder's hooks.
func (r *Recorder) Attach(sim *simulation.Scheduler, d *dispatcher.Dispatcher) {
	sim.OnStep(r.OnStep)
	d.Observe(r.OnCommand)
}

// Session returns the current session.
func (r *Recorder) Session() core.Session {
	return r.session
}

// Close flushes and closes the backend.
func (r *Recorder) Close() error {
	if !r.started {
		return ErrNotStarted
	}
	r.started = false
	if err := r.backend.Close(); err != nil {
		return err
	}
	if e, ok := r.backend.(storage.Exporter); ok && e.ExportedFilePath() != "" {
		r.logger.Info("recording saved", "path", e.ExportedFilePath())
	}
	return nil
}

// OnStep samples the registry on every sampleEvery-th step.
func (r *Recorder) OnStep(info simulation.StepInfo) {
	r.step = info.Index
	r.simTime = info.Time
	if !r.started || info.Index%r.sampleEvery != 0 {
		return
	}

	samples := r.Capture()
	if len(samples) == 0 {
		return
	}
	if err := r.backend.RecordSamples(samples); err != nil {
		r.fail("samples", err)
		return
	}
	r.samplesRecorded.Add(context.Background(), int64(len(samples)))
}

// Capture returns one sample per object, in registry order, followed by the
// camera when there is one.
func (r *Recorder) Capture() []core.ObjectSample {
	now := r.clock.Now()
	samples := make([]core.ObjectSample, 0, r.objects.Count()+1)

	r.objects.ForEach(func(o *world.Object) {
		samples = append(samples, r.sample(o, core.KindObject, now))
	})
	if cam := r.objects.Camera(); cam != nil {
		s := r.sample(&cam.Object, core.KindCamera, now)
		s.Behavior = cameraBehavior(cam)
		samples = append(samples, s)
	}
	return samples
}

func (r *Recorder) sample(o *world.Object, kind core.Kind, now time.Time) core.ObjectSample {
	s := core.ObjectSample{
		SessionID: r.session.ID,
		Step:      r.step,
		SimTime:   r.simTime,
		Time:      now,
		Name:      o.Name,
		Kind:      kind,
		Shape:     o.Shape,
		Color:     o.Color,
		Position:  core.FromVec(o.Position),
		Velocity:  core.FromVec(o.Velocity),
		Behavior:  o.BehaviorName(),
	}
	if l := o.Light(); l != nil {
		s.Lit = true
		s.LightIntensity = l.Current()
	}
	return s
}

func cameraBehavior(cam *world.Camera) string {
	b := cam.BehaviorName()
	if target := cam.LookAtTarget(); target != "none" {
		b += ", looking at " + target
	}
	return b
}

// OnCommand records one executed command and its result.
func (r *Recorder) OnCommand(cmd parser.Command, res dispatcher.Result) {
	if !r.started {
		return
	}

	entry := core.CommandEntry{
		SessionID: r.session.ID,
		Step:      r.step,
		SimTime:   r.simTime,
		Time:      r.clock.Now(),
		Line:      cmd.Raw,
		Command:   cmd.Name,
		Success:   res.Success,
		Error:     res.Error,
	}
	for _, v := range cmd.Positional {
		entry.Args = append(entry.Args, v.Raw)
	}
	if len(cmd.Flags) > 0 {
		entry.Flags = make(map[string]string, len(cmd.Flags))
		for name, f := range cmd.Flags {
			entry.Flags[name] = f.String()
		}
	}

	if err := r.backend.RecordCommand(&entry); err != nil {
		r.fail("command", err)
		return
	}
	r.commandsRecorded.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Bool("success", res.Success)))
}

func (r *Recorder) fail(what string, err error) {
	r.writeFailures.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", what)))
	r.logger.Warn("recorder write failed", "kind", what, "step", r.step, "error", err)
}
