// Package simulation advances the world at a fixed time step. Wall time
// between ticks is accumulated and drained in whole steps, so simulated
// state only ever moves in exact multiples of the frame time.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/rocksandvoids/console/internal/scene"
	"github.com/rocksandvoids/console/internal/world"
)

var (
	ErrNoCamera         = errors.New("no camera defined")
	ErrAlreadyRunning   = errors.New("simulation is already running")
	ErrInvalidFrameTime = errors.New("frame time must be positive")
)

// StepInfo describes one completed fixed update.
type StepInfo struct {
	Index uint64
	// Time is the simulated time after the step, in seconds.
	Time float64
	Dt   float64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// Scheduler drives the fixed-step update loop. It is not safe for concurrent
// use; ticks and commands run on the same goroutine.
type Scheduler struct {
	objects *world.Registry
	scene   scene.Scene
	clock   Clock
	logger  *slog.Logger

	frameTime   float64
	running     bool
	accumulator float64
	last        time.Time
	steps       uint64
	simTime     float64
	hooks       []func(StepInfo)

	// OTEL metrics
	stepCounter metric.Int64Counter
	objectGauge metric.Int64ObservableGauge
	objectCount atomic.Int64
}

// New creates a stopped Scheduler with the given frame time in seconds.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(objects *world.Registry, sc scene.Scene, frameTime float64, opts ...Option) (*Scheduler, error) {
	if !(frameTime > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidFrameTime, frameTime)
	}

	s := &Scheduler{
		objects:   objects,
		scene:     sc,
		clock:     SystemClock(),
		logger:    slog.Default(),
		frameTime: frameTime,
	}
	for _, opt := range opts {
		opt(s)
	}

	m := meter()

	var err error

	s.stepCounter, err = m.Int64Counter(
		"simulation.steps",
		metric.WithDescription("Total fixed simulation steps"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating step counter: %w", err)
	}

	s.objectGauge, err = m.Int64ObservableGauge(
		"simulation.objects",
		metric.WithDescription("Objects updated by the last step"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating object gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(s.objectGauge, s.objectCount.Load())
			return nil
		},
		s.objectGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering object callback: %w", err)
	}

	return s, nil
}

// OnStep registers fn to run after every fixed update.
func (s *Scheduler) OnStep(fn func(StepInfo)) {
	s.hooks = append(s.hooks, fn)
}

// Start begins a run. It fails without a camera or when already running.
func (s *Scheduler) Start() error {
	if !s.objects.HasCamera() {
		return ErrNoCamera
	}
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.last = s.clock.Now()
	s.accumulator = 0
	s.logger.Info("simulation started", "frameTime", s.frameTime)
	return nil
}

// Stop pauses the run. Calling it while stopped is harmless.
func (s *Scheduler) Stop() {
	if s.running {
		s.logger.Info("simulation stopped", "steps", s.steps)
	}
	s.running = false
}

// Reset stops the run and clears the accumulator, step counter and
// simulated time.
func (s *Scheduler) Reset() {
	s.Stop()
	s.accumulator = 0
	s.steps = 0
	s.simTime = 0
}

// Running reports whether the scheduler is running.
func (s *Scheduler) Running() bool {
	return s.running
}

// FrameTime returns the fixed step in seconds.
func (s *Scheduler) FrameTime() float64 {
	return s.frameTime
}

// SetFrameTime changes the step for later drains. The accumulator is kept.
func (s *Scheduler) SetFrameTime(seconds float64) error {
	if !(seconds > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidFrameTime, seconds)
	}
	s.frameTime = seconds
	return nil
}

// Accumulator returns the wall time not yet consumed by a step.
func (s *Scheduler) Accumulator() float64 {
	return s.accumulator
}

// Steps returns the number of fixed updates since the last reset.
func (s *Scheduler) Steps() uint64 {
	return s.steps
}

// SimTime returns the simulated seconds since the last reset.
func (s *Scheduler) SimTime() float64 {
	return s.simTime
}

// Tick measures the wall time since the previous tick, drains it in fixed
// steps and requests one render. It does nothing while stopped and returns
// the number of steps run.
func (s *Scheduler) Tick() int {
	if !s.running {
		return 0
	}
	now := s.clock.Now()
	elapsed := now.Sub(s.last).Seconds()
	s.last = now

	n := s.Advance(elapsed)
	s.scene.Render()
	return n
}

// Advance adds elapsed seconds to the accumulator and runs fixed updates
// while a whole step is available.
func (s *Scheduler) Advance(elapsed float64) int {
	s.accumulator += elapsed
	n := 0
	for s.accumulator >= s.frameTime {
		s.update(s.frameTime)
		s.accumulator -= s.frameTime
		n++
	}
	return n
}

// Step runs n fixed updates immediately and renders once.
func (s *Scheduler) Step(n int) {
	for i := 0; i < n; i++ {
		s.update(s.frameTime)
	}
	s.scene.Render()
}

// update runs one fixed pass: every object in insertion order (behavior,
// light, scene sync), then the camera.
func (s *Scheduler) update(dt float64) {
	count := int64(0)
	s.objects.ForEach(func(o *world.Object) {
		o.Step(dt, s.objects)
		s.scene.Sync(o)
		count++
	})

	if cam := s.objects.Camera(); cam != nil {
		cam.Step(dt, s.objects)
		s.scene.SyncCamera(cam)
	}

	s.steps++
	s.simTime += dt
	s.objectCount.Store(count)
	s.stepCounter.Add(context.Background(), 1)

	info := StepInfo{Index: s.steps, Time: s.simTime, Dt: dt}
	for _, fn := range s.hooks {
		fn(info)
	}
}
