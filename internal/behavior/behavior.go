// Package behavior implements the movement policies an object can carry:
// still, orbits and follows. Targets are kept by name and resolved through
// a world.Lookup on every update.
package behavior

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/world"
)

const (
	TagStill   = "still"
	TagOrbits  = "orbits"
	TagFollows = "follows"
)

// Default tuning used when an option is left at zero.
const (
	DefaultOrbitPeriod    = 10.0
	DefaultFollowDistance = 10.0
	DefaultFollowSpeed    = 50.0
)

// Options carries the union of settings the behaviors accept. Each behavior
// reads only the fields it knows.
type Options struct {
	Target   string
	Period   float64
	Plane    Plane
	Distance float64
	Speed    float64
	// Warn receives attach-time problems such as a missing orbit target.
	Warn func(msg string)
}

// Factory builds a behavior from options.
type Factory func(opts Options) (world.Behavior, error)

var factories = map[string]Factory{
	TagStill:   func(Options) (world.Behavior, error) { return NewStill(), nil },
	TagOrbits:  newOrbitBehavior,
	TagFollows: newFollowBehavior,
}

func newOrbitBehavior(opts Options) (world.Behavior, error) {
	b, err := NewOrbit(opts)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newFollowBehavior(opts Options) (world.Behavior, error) {
	b, err := NewFollow(opts)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// New builds the behavior registered under tag.
func New(tag string, opts Options) (world.Behavior, error) {
	f, ok := factories[strings.ToLower(tag)]
	if !ok {
		return nil, fmt.Errorf("unknown behavior: %s. Available: %s", tag, strings.Join(Tags(), ", "))
	}
	return f(opts)
}

// Register adds or replaces the factory for tag.
func Register(tag string, f Factory) {
	factories[strings.ToLower(tag)] = f
}

// Tags returns the registered behavior tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(factories))
	for t := range factories {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Still holds an object in place.
type Still struct{}

// NewStill creates a Still behavior.
func NewStill() *Still {
	return &Still{}
}

func (*Still) Name() string                         { return TagStill }
func (*Still) Describe() string                     { return TagStill }
func (*Still) OnAttach(*world.Object, world.Lookup) {}
func (*Still) OnDetach(*world.Object)               {}

// Update zeroes the velocity and leaves the position alone.
func (*Still) Update(o *world.Object, _ world.Lookup, _ float64) {
	o.Velocity = geo.Vec{}
}
