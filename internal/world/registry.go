package world

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned by Add when the name is taken.
var ErrDuplicateName = errors.New("object already exists")

// Registry owns the named objects and the camera slot. The camera is kept
// apart from the name map and never collides with object names.
//
// Registry is not safe for concurrent use; the console loop owns it.
type Registry struct {
	objects map[string]*Object
	order   []string
	camera  *Camera
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		objects: make(map[string]*Object),
	}
}

// Add registers o under its name.
func (r *Registry) Add(o *Object) error {
	if _, ok := r.objects[o.Name]; ok {
		return fmt.Errorf("add %q: %w", o.Name, ErrDuplicateName)
	}
	r.objects[o.Name] = o
	r.order = append(r.order, o.Name)
	return nil
}

// Get retrieves an object by name.
func (r *Registry) Get(name string) (*Object, bool) {
	o, ok := r.objects[name]
	return o, ok
}

// Has reports whether an object with name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.objects[name]
	return ok
}

// Remove deletes an object by name and returns it.
func (r *Registry) Remove(name string) (*Object, bool) {
	o, ok := r.objects[name]
	if !ok {
		return nil, false
	}
	delete(r.objects, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return o, true
}

// SetCamera installs c in the camera slot, replacing any previous camera.
func (r *Registry) SetCamera(c *Camera) {
	r.camera = c
}

// Camera returns the camera, or nil when none is set.
func (r *Registry) Camera() *Camera {
	return r.camera
}

// HasCamera reports whether a camera is set.
func (r *Registry) HasCamera() bool {
	return r.camera != nil
}

// ForEach calls fn for every object in insertion order. The camera is not
// visited. Objects added or removed by fn do not affect the current pass.
func (r *Registry) ForEach(fn func(o *Object)) {
	names := append([]string(nil), r.order...)
	for _, name := range names {
		if o, ok := r.objects[name]; ok {
			fn(o)
		}
	}
}

// Count returns the number of objects, excluding the camera.
func (r *Registry) Count() int {
	return len(r.objects)
}

// Names returns the object names in insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Clear releases every object and the camera and empties the registry.
func (r *Registry) Clear() {
	for _, name := range r.order {
		r.objects[name].Release()
	}
	r.objects = make(map[string]*Object)
	r.order = nil

	if r.camera != nil {
		r.camera.Release()
		r.camera = nil
	}
}
