package behavior

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/world"
)

// Follow moves an object toward a target and parks it at a minimum
// distance.
type Follow struct {
	Target      string
	MinDistance float64
	Speed       float64
}

// NewFollow creates a Follow. A zero distance parks the object on the
// target; speed must be positive.
func NewFollow(opts Options) (*Follow, error) {
	if opts.Target == "" {
		return nil, errors.New("follow target required")
	}
	if opts.Distance < 0 {
		return nil, fmt.Errorf("follow distance must not be negative: %g", opts.Distance)
	}
	if opts.Speed <= 0 {
		return nil, fmt.Errorf("follow speed must be positive: %g", opts.Speed)
	}
	return &Follow{
		Target:      opts.Target,
		MinDistance: opts.Distance,
		Speed:       opts.Speed,
	}, nil
}

func (b *Follow) Name() string { return TagFollows }

func (b *Follow) Describe() string {
	return fmt.Sprintf("follows %q (distance %g, speed %g)", b.Target, b.MinDistance, b.Speed)
}

func (b *Follow) OnAttach(*world.Object, world.Lookup) {}
func (b *Follow) OnDetach(*world.Object)               {}

// Update moves the object by min(speed·dt, distance - minDistance) along the
// direction to the target, so it never ends up closer than MinDistance.
func (b *Follow) Update(o *world.Object, l world.Lookup, dt float64) {
	target, ok := lookup(l, b.Target)
	if !ok {
		o.Velocity = geo.Vec{}
		return
	}

	distance := geo.Distance(o.Position, target.Position)
	if distance <= b.MinDistance {
		o.Velocity = geo.Vec{}
		return
	}

	move := math.Min(b.Speed*dt, distance-b.MinDistance)
	prev := o.Position
	o.Position = geo.Offset(o.Position, geo.Direction(o.Position, target.Position), move)
	o.Velocity = geo.Velocity(prev, o.Position, dt)
}
