// Package scene is the presentation side of the simulation. The core only
// talks to the Scene interface; Headless keeps a plain model of what a
// renderer would show.
package scene

import (
	"log/slog"

	"github.com/rocksandvoids/console/internal/geo"
	"github.com/rocksandvoids/console/internal/world"
)

// Scene receives presentation updates from commands and the scheduler.
type Scene interface {
	AddObject(o *world.Object)
	RemoveObject(o *world.Object)
	AddLight(o *world.Object)
	RemoveLight(o *world.Object)
	SetArenaSize(size float64)
	Sync(o *world.Object)
	SyncCamera(c *world.Camera)
	Render()
}

// Node is the presented state of one object.
type Node struct {
	Name     string
	Shape    string
	Color    string
	Size     float64
	Position geo.Vec
	Lit      bool
}

// Headless is a Scene without a renderer.
type Headless struct {
	logger    *slog.Logger
	nodes     map[string]*Node
	arenaSize float64
	camera    geo.Vec
	focus     geo.Vec
	frames    int
}

// NewHeadless creates a Headless scene of the given arena size.
func NewHeadless(logger *slog.Logger, arenaSize float64) *Headless {
	return &Headless{
		logger:    logger,
		nodes:     make(map[string]*Node),
		arenaSize: arenaSize,
	}
}

func (h *Headless) AddObject(o *world.Object) {
	h.nodes[o.Name] = &Node{
		Name:     o.Name,
		Shape:    o.Shape,
		Color:    o.Color,
		Size:     o.Size,
		Position: o.Position,
	}
	h.logger.Debug("scene node added", "name", o.Name, "shape", o.Shape, "size", o.Size)
}

func (h *Headless) RemoveObject(o *world.Object) {
	delete(h.nodes, o.Name)
	h.logger.Debug("scene node removed", "name", o.Name)
}

func (h *Headless) AddLight(o *world.Object) {
	if n, ok := h.nodes[o.Name]; ok {
		n.Lit = true
	}
}

func (h *Headless) RemoveLight(o *world.Object) {
	if n, ok := h.nodes[o.Name]; ok {
		n.Lit = false
	}
}

func (h *Headless) SetArenaSize(size float64) {
	h.arenaSize = size
	h.logger.Debug("arena resized", "size", size)
}

func (h *Headless) Sync(o *world.Object) {
	if n, ok := h.nodes[o.Name]; ok {
		n.Position = o.Position
	}
}

func (h *Headless) SyncCamera(c *world.Camera) {
	h.camera = c.Position
	if focus, ok := c.Focus(); ok {
		h.focus = focus
	}
}

func (h *Headless) Render() {
	h.frames++
}

// Node returns the presented state for name.
func (h *Headless) Node(name string) (Node, bool) {
	n, ok := h.nodes[name]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// NodeCount returns the number of presented objects.
func (h *Headless) NodeCount() int {
	return len(h.nodes)
}

// ArenaSize returns the current arena size.
func (h *Headless) ArenaSize() float64 {
	return h.arenaSize
}

// CameraView returns the last synced camera position and focus point.
func (h *Headless) CameraView() (pos, focus geo.Vec) {
	return h.camera, h.focus
}

// Frames returns how many renders were requested.
func (h *Headless) Frames() int {
	return h.frames
}
