package simulation

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/behavior"
	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/scene"
	"github.com/rocksandvoids/console/internal/world"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(t *testing.T) (*Scheduler, *world.Registry, *scene.Headless, *fakeClock) {
	t.Helper()
	r := world.NewRegistry()
	sc := scene.NewHeadless(discard(), 1000)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, err := New(r, sc, 0.1, WithClock(clock), WithLogger(discard()))
	require.NoError(t, err)
	return s, r, sc, clock
}

func TestNewRejectsBadFrameTime(t *testing.T) {
	_, err := New(world.NewRegistry(), scene.NewHeadless(discard(), 1), 0)
	assert.ErrorIs(t, err, ErrInvalidFrameTime)
}

func TestStartRequiresCamera(t *testing.T) {
	s, r, _, _ := newTestScheduler(t)

	assert.ErrorIs(t, s.Start(), ErrNoCamera)
	assert.False(t, s.Running())

	r.SetCamera(world.NewCamera(geo.V(0, 50, 100)))
	require.NoError(t, s.Start())
	assert.True(t, s.Running())

	assert.ErrorIs(t, s.Start(), ErrAlreadyRunning)
}

func TestAdvanceDrainsWholeSteps(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)

	assert.Equal(t, 2, s.Advance(0.25))
	assert.InDelta(t, 0.05, s.Accumulator(), 1e-9)

	assert.Equal(t, 0, s.Advance(0.05))
	assert.Less(t, s.Accumulator(), s.FrameTime())

	assert.Equal(t, 1, s.Advance(0.06))
	assert.Equal(t, uint64(3), s.Steps())
	assert.InDelta(t, 0.3, s.SimTime(), 1e-9)
}

func TestAdvanceLargeDelta(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	assert.Equal(t, 50, s.Advance(5.0001))
	assert.Less(t, s.Accumulator(), 0.1)
	assert.GreaterOrEqual(t, s.Accumulator(), 0.0)
}

func TestTickUsesClock(t *testing.T) {
	s, r, sc, clock := newTestScheduler(t)
	r.SetCamera(world.NewCamera(geo.Vec{}))

	assert.Equal(t, 0, s.Tick(), "stopped scheduler does not tick")
	assert.Equal(t, 0, sc.Frames())

	require.NoError(t, s.Start())
	clock.advance(250 * time.Millisecond)
	assert.Equal(t, 2, s.Tick())
	assert.Equal(t, 1, sc.Frames())

	clock.advance(16 * time.Millisecond)
	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, 2, sc.Frames(), "every tick renders once")
}

func TestStartZeroesAccumulator(t *testing.T) {
	s, r, _, clock := newTestScheduler(t)
	r.SetCamera(world.NewCamera(geo.Vec{}))

	s.Advance(0.05)
	require.NoError(t, s.Start())
	assert.Equal(t, 0.0, s.Accumulator())

	clock.advance(time.Hour)
	s.Stop()
	require.NoError(t, s.Start())
	assert.Equal(t, 0, s.Tick(), "time spent stopped is not simulated")
}

func TestSetFrameTime(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	s.Advance(0.05)

	require.NoError(t, s.SetFrameTime(0.02))
	assert.Equal(t, 0.02, s.FrameTime())
	assert.InDelta(t, 0.05, s.Accumulator(), 1e-9, "accumulator survives a frame time change")

	assert.ErrorIs(t, s.SetFrameTime(0), ErrInvalidFrameTime)
	assert.ErrorIs(t, s.SetFrameTime(-1), ErrInvalidFrameTime)
	assert.Equal(t, 0.02, s.FrameTime())
}

func TestReset(t *testing.T) {
	s, r, _, _ := newTestScheduler(t)
	r.SetCamera(world.NewCamera(geo.Vec{}))
	require.NoError(t, s.Start())
	s.Advance(0.35)

	s.Reset()
	assert.False(t, s.Running())
	assert.Equal(t, 0.0, s.Accumulator())
	assert.Equal(t, uint64(0), s.Steps())
	assert.Equal(t, 0.0, s.SimTime())

	s.Stop()
	s.Reset()
}

func TestUpdateOrderAndSync(t *testing.T) {
	s, r, sc, _ := newTestScheduler(t)

	target := world.NewObject(world.ObjectSpec{Name: "target", Position: geo.Vec{}})
	chaser := world.NewObject(world.ObjectSpec{Name: "chaser", Position: geo.V(0, 0, 100)})
	require.NoError(t, r.Add(target))
	require.NoError(t, r.Add(chaser))
	sc.AddObject(target)
	sc.AddObject(chaser)

	follow, err := behavior.NewFollow(behavior.Options{Target: "target", Distance: 10, Speed: 50})
	require.NoError(t, err)
	chaser.SetBehavior(follow, r)

	cam := world.NewCamera(geo.V(0, 50, 100))
	cam.LookAtObject("chaser", r)
	r.SetCamera(cam)

	var seen []StepInfo
	s.OnStep(func(info StepInfo) { seen = append(seen, info) })

	s.Step(3)

	n, ok := sc.Node("chaser")
	require.True(t, ok)
	assert.InDelta(t, 85.0, n.Position.Z, 1e-9)

	_, focus := sc.CameraView()
	assert.InDelta(t, 85.0, focus.Z, 1e-9, "camera updates after the objects in the same pass")

	require.Len(t, seen, 3)
	assert.Equal(t, uint64(3), seen[2].Index)
	assert.InDelta(t, 0.3, seen[2].Time, 1e-9)
	assert.Equal(t, 1, sc.Frames())
}
