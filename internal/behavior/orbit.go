package behavior

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/world"
)

// Plane names the two axes an orbit moves in. The remaining axis is held
// at the value captured on attach.
type Plane string

const (
	PlaneXZ Plane = "xz"
	PlaneXY Plane = "xy"
	PlaneYZ Plane = "yz"
)

// ParsePlane returns the plane named s.
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(strings.ToLower(s)); p {
	case PlaneXZ, PlaneXY, PlaneYZ:
		return p, nil
	}
	return "", fmt.Errorf("invalid plane: %s. Use: xz, xy, or yz", s)
}

// axes returns the in-plane components of v as (cos axis, sin axis).
func (p Plane) axes(v geo.Vec) (float64, float64) {
	switch p {
	case PlaneXY:
		return v.X, v.Y
	case PlaneYZ:
		return v.Y, v.Z
	default:
		return v.X, v.Z
	}
}

func (p Plane) fixed(v geo.Vec) float64 {
	switch p {
	case PlaneXY:
		return v.Z
	case PlaneYZ:
		return v.X
	default:
		return v.Y
	}
}

func (p Plane) compose(a, b, fixed float64) geo.Vec {
	switch p {
	case PlaneXY:
		return geo.V(a, b, fixed)
	case PlaneYZ:
		return geo.V(fixed, a, b)
	default:
		return geo.V(a, fixed, b)
	}
}

// Orbit circles a target object at the distance it had when attached.
type Orbit struct {
	Target string
	Period float64
	Plane  Plane

	angle     float64
	radius    float64
	hasRadius bool
	fixed     float64
	warn      func(string)
}

// NewOrbit creates an Orbit. A zero period means DefaultOrbitPeriod; negative
// periods orbit the other way.
func NewOrbit(opts Options) (*Orbit, error) {
	if opts.Target == "" {
		return nil, errors.New("orbit target required")
	}
	period := opts.Period
	if period == 0 {
		period = DefaultOrbitPeriod
	}
	plane := opts.Plane
	if plane == "" {
		plane = PlaneXZ
	}
	if _, err := ParsePlane(string(plane)); err != nil {
		return nil, err
	}
	return &Orbit{
		Target: opts.Target,
		Period: period,
		Plane:  plane,
		warn:   opts.Warn,
	}, nil
}

func (b *Orbit) Name() string { return TagOrbits }

func (b *Orbit) Describe() string {
	radius := "unset"
	if b.hasRadius {
		radius = fmt.Sprintf("%.2f", b.radius)
	}
	return fmt.Sprintf("orbits %q (period %gs, radius %s, plane %s)", b.Target, b.Period, radius, b.Plane)
}

// Angle returns the current orbit angle in radians.
func (b *Orbit) Angle() float64 {
	return b.angle
}

// Radius returns the captured radius.
func (b *Orbit) Radius() (float64, bool) {
	return b.radius, b.hasRadius
}

// OnAttach captures radius, start angle and the fixed axis from the current
// positions. A missing target leaves the radius unset and updates do nothing
// until the behavior is attached again.
func (b *Orbit) OnAttach(o *world.Object, l world.Lookup) {
	target, ok := lookup(l, b.Target)
	if !ok {
		if b.warn != nil {
			b.warn(fmt.Sprintf("Orbit target %q not found", b.Target))
		}
		return
	}

	b.radius = geo.Distance(o.Position, target.Position)
	b.hasRadius = true

	oa, ob := b.Plane.axes(o.Position)
	ta, tb := b.Plane.axes(target.Position)
	b.angle = math.Atan2(ob-tb, oa-ta)
	b.fixed = b.Plane.fixed(o.Position)
}

func (b *Orbit) OnDetach(*world.Object) {}

// Update advances the angle by 2π/period·dt and places the object on the
// circle around the target's current position. The angle is only wrapped
// when it exceeds 2π.
func (b *Orbit) Update(o *world.Object, l world.Lookup, dt float64) {
	target, ok := lookup(l, b.Target)
	if !ok || !b.hasRadius {
		return
	}

	b.angle += 2 * math.Pi / b.Period * dt
	if b.angle > 2*math.Pi {
		b.angle -= 2 * math.Pi
	}

	prev := o.Position
	ta, tb := b.Plane.axes(target.Position)
	o.Position = b.Plane.compose(
		ta+b.radius*math.Cos(b.angle),
		tb+b.radius*math.Sin(b.angle),
		b.fixed,
	)
	o.Velocity = geo.Velocity(prev, o.Position, dt)
}

func lookup(l world.Lookup, name string) (*world.Object, bool) {
	if l == nil {
		return nil, false
	}
	return l.Get(name)
}
