// Package world holds the simulated objects, the camera and the registry
// that owns them.
package world

import (
	"github.com/google/uuid"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/geo"
)

// Lookup resolves an object by name. Behaviors keep target names and resolve
// them through a Lookup on every use, so a removed target reads as missing.
type Lookup interface {
	Get(name string) (*Object, bool)
}

// Behavior is a movement policy attached to an object.
type Behavior interface {
	// Name is the behavior tag: still, orbits or follows.
	Name() string
	// Describe returns a one-line summary for status output.
	Describe() string
	OnAttach(o *Object, l Lookup)
	Update(o *Object, l Lookup, dt float64)
	OnDetach(o *Object)
}

// ObjectSpec describes an object to create.
type ObjectSpec struct {
	Name      string
	Shape     string
	Color     string
	SizeClass catalog.SizeClass
	Size      float64
	Position  geo.Vec
}

// Object is a named simulation object.
type Object struct {
	ID        uuid.UUID
	Name      string
	Shape     string
	Color     string
	SizeClass catalog.SizeClass
	// Size is the linear size in meters, fixed at creation.
	Size     float64
	Position geo.Vec
	Velocity geo.Vec

	behavior Behavior
	light    *Light
	released bool
}

// NewObject creates an object from spec with a fresh ID.
func NewObject(spec ObjectSpec) *Object {
	return &Object{
		ID:        uuid.New(),
		Name:      spec.Name,
		Shape:     spec.Shape,
		Color:     spec.Color,
		SizeClass: spec.SizeClass,
		Size:      spec.Size,
		Position:  spec.Position,
	}
}

// Behavior returns the attached behavior, or nil.
func (o *Object) Behavior() Behavior {
	return o.behavior
}

// SetBehavior detaches the current behavior and attaches b. A nil b only
// detaches.
func (o *Object) SetBehavior(b Behavior, l Lookup) {
	if o.behavior != nil {
		o.behavior.OnDetach(o)
	}
	o.behavior = b
	if b != nil {
		b.OnAttach(o, l)
	}
}

// Light returns the attached light, or nil.
func (o *Object) Light() *Light {
	return o.light
}

// SetLight replaces the attached light.
func (o *Object) SetLight(light *Light) {
	if light != nil {
		light.Position = o.Position
	}
	o.light = light
}

// RemoveLight detaches the light and returns it.
func (o *Object) RemoveLight() *Light {
	l := o.light
	o.light = nil
	return l
}

// Step runs one fixed update: the behavior first, then the light.
func (o *Object) Step(dt float64, l Lookup) {
	if o.behavior != nil {
		o.behavior.Update(o, l, dt)
	}
	if o.light != nil {
		o.light.Update(dt, o.Position)
	}
}

// BehaviorName returns the behavior tag or "none".
func (o *Object) BehaviorName() string {
	if o.behavior == nil {
		return "none"
	}
	return o.behavior.Name()
}

// Release drops the behavior and light. It is called when the registry is
// cleared.
func (o *Object) Release() {
	if o.behavior != nil {
		o.behavior.OnDetach(o)
		o.behavior = nil
	}
	o.light = nil
	o.released = true
}

// Released reports whether Release has run.
func (o *Object) Released() bool {
	return o.released
}
