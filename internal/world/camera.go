package world

import (
	"github.com/google/uuid"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/geo"
)

// CameraName is the name the camera reports. It does not take part in the
// registry's name namespace.
const CameraName = "camera"

// travelLookAhead is how far ahead of the camera the focus point is placed
// when it looks along its direction of travel.
const travelLookAhead = 100

// Camera is the observer object. It can look at a named object, at a fixed
// point, or along its direction of travel.
type Camera struct {
	Object

	// FollowTravel makes the camera look where it is heading. A look-at
	// target clears it.
	FollowTravel bool

	lookAtName  string
	lookAtPoint geo.Vec
	hasPoint    bool

	focus    geo.Vec
	hasFocus bool
	previous geo.Vec
}

// NewCamera creates a camera at pos.
func NewCamera(pos geo.Vec) *Camera {
	return &Camera{
		Object: Object{
			ID:        uuid.New(),
			Name:      CameraName,
			Shape:     "camera",
			Color:     "white",
			SizeClass: catalog.Small,
			Position:  pos,
		},
		FollowTravel: true,
		previous:     pos,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos geo.Vec) {
	c.Position = pos
}

// LookAtObject points the camera at the named object. The name is resolved
// on every update.
func (c *Camera) LookAtObject(name string, l Lookup) {
	c.lookAtName = name
	c.hasPoint = false
	c.FollowTravel = false
	c.resolveFocus(l)
}

// LookAtPoint points the camera at a fixed point.
func (c *Camera) LookAtPoint(p geo.Vec) {
	c.lookAtName = ""
	c.lookAtPoint = p
	c.hasPoint = true
	c.FollowTravel = false
	c.focus = p
	c.hasFocus = true
}

// ClearLookAt drops the look-at target and returns to travel direction.
func (c *Camera) ClearLookAt() {
	c.lookAtName = ""
	c.hasPoint = false
	c.FollowTravel = true
}

// LookAtTarget describes the current look-at target.
func (c *Camera) LookAtTarget() string {
	switch {
	case c.lookAtName != "":
		return `"` + c.lookAtName + `"`
	case c.hasPoint:
		return geo.Format(c.lookAtPoint, 2)
	case c.FollowTravel:
		return "travel direction"
	default:
		return "none"
	}
}

// Focus returns the point the camera is looking at, if one has been
// resolved.
func (c *Camera) Focus() (geo.Vec, bool) {
	return c.focus, c.hasFocus
}

// Step runs one fixed update. Velocity is derived from the previous
// position before the behavior runs, and the focus point is resolved last.
func (c *Camera) Step(dt float64, l Lookup) {
	div := dt
	if div <= 0 {
		div = 0.001
	}
	c.Velocity = geo.Velocity(c.previous, c.Position, div)
	c.previous = c.Position

	if c.behavior != nil {
		c.behavior.Update(&c.Object, l, dt)
	}

	if c.lookAtName != "" || c.hasPoint {
		c.resolveFocus(l)
		return
	}
	if c.FollowTravel {
		if geo.Length(c.Velocity) > 0.001 {
			c.focus = geo.Offset(c.Position, geo.Direction(geo.Vec{}, c.Velocity), travelLookAhead)
			c.hasFocus = true
		}
	}
}

func (c *Camera) resolveFocus(l Lookup) {
	if c.hasPoint {
		c.focus = c.lookAtPoint
		c.hasFocus = true
		return
	}
	if c.lookAtName == "" || l == nil {
		return
	}
	if target, ok := l.Get(c.lookAtName); ok {
		c.focus = target.Position
		c.hasFocus = true
	}
}
