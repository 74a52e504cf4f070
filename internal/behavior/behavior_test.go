package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/world"
)

func place(t *testing.T, r *world.Registry, name string, pos geo.Vec) *world.Object {
	t.Helper()
	o := world.NewObject(world.ObjectSpec{Name: name, Shape: "sphere", Color: "white", Size: 1, Position: pos})
	require.NoError(t, r.Add(o))
	return o
}

func TestNewByTag(t *testing.T) {
	b, err := New("still", Options{})
	require.NoError(t, err)
	assert.Equal(t, TagStill, b.Name())

	b, err = New("ORBITS", Options{Target: "sun"})
	require.NoError(t, err)
	assert.Equal(t, TagOrbits, b.Name())

	b, err = New("follows", Options{Target: "sun", Speed: DefaultFollowSpeed})
	require.NoError(t, err)
	assert.Equal(t, TagFollows, b.Name())

	_, err = New("wobbles", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "follows, orbits, still")
}

func TestStillZeroesVelocity(t *testing.T) {
	r := world.NewRegistry()
	o := place(t, r, "rock", geo.V(1, 2, 3))
	o.Velocity = geo.V(5, 5, 5)

	o.SetBehavior(NewStill(), r)
	o.Step(0.1, r)

	assert.Equal(t, geo.Vec{}, o.Velocity)
	assert.Equal(t, geo.V(1, 2, 3), o.Position)
}

func TestOrbitQuarterPeriod(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "sun", geo.V(0, 0, 0))
	earth := place(t, r, "earth", geo.V(5, 0, 0))

	orbit, err := NewOrbit(Options{Target: "sun", Period: 10})
	require.NoError(t, err)
	earth.SetBehavior(orbit, r)

	start := orbit.Angle()
	for i := 0; i < 25; i++ {
		earth.Step(0.1, r)
	}

	assert.InDelta(t, math.Pi/2, orbit.Angle()-start, 1e-9)
	assert.InDelta(t, 0.0, earth.Position.X, 1e-9)
	assert.InDelta(t, 0.0, earth.Position.Y, 1e-9)
	assert.InDelta(t, 5.0, earth.Position.Z, 1e-9)
	assert.InDelta(t, 5.0, geo.Distance(earth.Position, geo.Vec{}), 1e-9)
}

func TestOrbitPlanes(t *testing.T) {
	tests := []struct {
		plane Plane
		start geo.Vec
		want  func(r float64) geo.Vec
	}{
		{PlaneXZ, geo.V(5, 7, 0), func(r float64) geo.Vec { return geo.V(0, 7, r) }},
		{PlaneXY, geo.V(5, 0, 7), func(r float64) geo.Vec { return geo.V(0, r, 7) }},
		{PlaneYZ, geo.V(7, 5, 0), func(r float64) geo.Vec { return geo.V(7, 0, r) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.plane), func(t *testing.T) {
			r := world.NewRegistry()
			place(t, r, "sun", geo.Vec{})
			o := place(t, r, "o", tt.start)

			b, err := NewOrbit(Options{Target: "sun", Period: 4, Plane: tt.plane})
			require.NoError(t, err)
			o.SetBehavior(b, r)

			radius, ok := b.Radius()
			require.True(t, ok)
			assert.InDelta(t, geo.Distance(tt.start, geo.Vec{}), radius, 1e-9)

			o.Step(1, r)
			want := tt.want(radius)
			assert.InDelta(t, want.X, o.Position.X, 1e-9)
			assert.InDelta(t, want.Y, o.Position.Y, 1e-9)
			assert.InDelta(t, want.Z, o.Position.Z, 1e-9)
		})
	}
}

func TestOrbitFollowsMovingTarget(t *testing.T) {
	r := world.NewRegistry()
	sun := place(t, r, "sun", geo.Vec{})
	moon := place(t, r, "moon", geo.V(2, 0, 0))

	b, err := NewOrbit(Options{Target: "sun", Period: 8})
	require.NoError(t, err)
	moon.SetBehavior(b, r)

	sun.Position = geo.V(100, 0, 0)
	moon.Step(0.5, r)
	assert.InDelta(t, 2.0, geo.Distance(moon.Position, sun.Position), 1e-9)
}

func TestOrbitMissingTargetAtAttach(t *testing.T) {
	r := world.NewRegistry()
	o := place(t, r, "o", geo.V(3, 0, 0))

	var warnings []string
	b, err := NewOrbit(Options{Target: "ghost", Warn: func(m string) { warnings = append(warnings, m) }})
	require.NoError(t, err)
	o.SetBehavior(b, r)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"ghost"`)
	_, ok := b.Radius()
	assert.False(t, ok)

	place(t, r, "ghost", geo.Vec{})
	o.Step(1, r)
	assert.Equal(t, geo.V(3, 0, 0), o.Position, "radius stays unset until attached again")
}

func TestOrbitTargetRemovedHoldsPosition(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "sun", geo.Vec{})
	o := place(t, r, "o", geo.V(4, 0, 0))

	b, err := NewOrbit(Options{Target: "sun", Period: 10})
	require.NoError(t, err)
	o.SetBehavior(b, r)
	o.Step(1, r)
	held := o.Position

	r.Remove("sun")
	o.Step(1, r)
	assert.Equal(t, held, o.Position)
}

func TestOrbitAngleWrap(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "sun", geo.Vec{})
	o := place(t, r, "o", geo.V(1, 0, 0))

	b, err := NewOrbit(Options{Target: "sun", Period: 1})
	require.NoError(t, err)
	o.SetBehavior(b, r)

	for i := 0; i < 30; i++ {
		o.Step(0.1, r)
		assert.LessOrEqual(t, b.Angle(), 2*math.Pi)
	}
}

func TestOrbitNegativePeriodIsNotWrapped(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "sun", geo.Vec{})
	o := place(t, r, "o", geo.V(1, 0, 0))

	b, err := NewOrbit(Options{Target: "sun", Period: -1})
	require.NoError(t, err)
	o.SetBehavior(b, r)

	for i := 0; i < 30; i++ {
		o.Step(0.1, r)
	}
	assert.InDelta(t, -3*2*math.Pi, b.Angle(), 1e-9)
}

func TestOrbitOptions(t *testing.T) {
	_, err := NewOrbit(Options{})
	assert.Error(t, err)

	_, err = NewOrbit(Options{Target: "sun", Plane: "xx"})
	assert.Error(t, err)

	b, err := NewOrbit(Options{Target: "sun"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOrbitPeriod, b.Period)
	assert.Equal(t, PlaneXZ, b.Plane)
	assert.Contains(t, b.Describe(), "radius unset")
}

func TestParsePlane(t *testing.T) {
	p, err := ParsePlane("XY")
	require.NoError(t, err)
	assert.Equal(t, PlaneXY, p)

	_, err = ParsePlane("zz")
	assert.EqualError(t, err, "invalid plane: zz. Use: xz, xy, or yz")
}

func TestFollowConvergesToMinDistance(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "target", geo.Vec{})
	chaser := place(t, r, "chaser", geo.V(100, 0, 0))

	b, err := NewFollow(Options{Target: "target", Distance: 10, Speed: 50})
	require.NoError(t, err)
	chaser.SetBehavior(b, r)

	for i := 0; i < 40; i++ {
		chaser.Step(0.1, r)
		assert.GreaterOrEqual(t, geo.Distance(chaser.Position, geo.Vec{}), 10.0-1e-9)
	}

	assert.InDelta(t, 10.0, geo.Distance(chaser.Position, geo.Vec{}), 1e-9)
	assert.Equal(t, geo.Vec{}, chaser.Velocity)

	parked := chaser.Position
	chaser.Step(0.1, r)
	assert.Equal(t, parked, chaser.Position)
}

func TestFollowVelocity(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "target", geo.Vec{})
	chaser := place(t, r, "chaser", geo.V(0, 0, 100))

	b, err := NewFollow(Options{Target: "target", Distance: 10, Speed: 50})
	require.NoError(t, err)
	chaser.SetBehavior(b, r)

	chaser.Step(0.1, r)
	assert.InDelta(t, 95.0, chaser.Position.Z, 1e-9)
	assert.InDelta(t, -50.0, chaser.Velocity.Z, 1e-9)
}

func TestFollowMissingTarget(t *testing.T) {
	r := world.NewRegistry()
	chaser := place(t, r, "chaser", geo.V(1, 1, 1))
	chaser.Velocity = geo.V(1, 0, 0)

	b, err := NewFollow(Options{Target: "ghost", Speed: 5})
	require.NoError(t, err)
	chaser.SetBehavior(b, r)
	chaser.Step(0.1, r)

	assert.Equal(t, geo.Vec{}, chaser.Velocity)
	assert.Equal(t, geo.V(1, 1, 1), chaser.Position)
}

func TestFollowOptions(t *testing.T) {
	_, err := NewFollow(Options{Speed: 1})
	assert.Error(t, err)

	_, err = NewFollow(Options{Target: "x", Distance: -1, Speed: 1})
	assert.Error(t, err)

	_, err = NewFollow(Options{Target: "x", Distance: 10})
	assert.EqualError(t, err, "follow speed must be positive: 0")

	_, err = NewFollow(Options{Target: "x", Speed: -2})
	assert.Error(t, err)

	b, err := NewFollow(Options{Target: "x", Speed: DefaultFollowSpeed})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.MinDistance)
	assert.Equal(t, `follows "x" (distance 0, speed 50)`, b.Describe())
}

func TestFollowZeroDistanceReachesTarget(t *testing.T) {
	r := world.NewRegistry()
	place(t, r, "target", geo.Vec{})
	chaser := place(t, r, "chaser", geo.V(30, 0, 0))

	b, err := NewFollow(Options{Target: "target", Speed: 50})
	require.NoError(t, err)
	chaser.SetBehavior(b, r)
	for range 10 {
		chaser.Step(0.1, r)
	}

	assert.InDelta(t, 0.0, geo.Distance(chaser.Position, geo.Vec{}), 1e-9)
	assert.Equal(t, geo.Vec{}, chaser.Velocity)
}
