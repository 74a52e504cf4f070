package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/geo"
)

func newObject(name string, pos geo.Vec) *Object {
	return NewObject(ObjectSpec{
		Name:      name,
		Shape:     "sphere",
		Color:     "red",
		SizeClass: catalog.Medium,
		Size:      10,
		Position:  pos,
	})
}

func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry()
	sun := newObject("sun", geo.V(0, 0, 0))

	require.NoError(t, r.Add(sun))
	assert.True(t, r.Has("sun"))
	assert.Equal(t, 1, r.Count())

	got, ok := r.Get("sun")
	require.True(t, ok)
	assert.Same(t, sun, got)

	_, ok = r.Get("moon")
	assert.False(t, ok)
}

func TestRegistryDuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(newObject("sun", geo.V(0, 0, 0))))

	err := r.Add(newObject("sun", geo.V(1, 1, 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)

	got, _ := r.Get("sun")
	assert.Equal(t, geo.V(0, 0, 0), got.Position)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryNamesAreCaseSensitive(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(newObject("Sun", geo.Vec{})))
	require.NoError(t, r.Add(newObject("sun", geo.Vec{})))
	assert.Equal(t, 2, r.Count())
}

func TestRegistryInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, r.Add(newObject(name, geo.Vec{})))
	}

	var visited []string
	r.ForEach(func(o *Object) { visited = append(visited, o.Name) })
	assert.Equal(t, []string{"c", "a", "b"}, visited)
	assert.Equal(t, []string{"c", "a", "b"}, r.Names())
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(newObject("a", geo.Vec{})))
	require.NoError(t, r.Add(newObject("b", geo.Vec{})))

	o, ok := r.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", o.Name)
	assert.Equal(t, []string{"b"}, r.Names())

	_, ok = r.Remove("a")
	assert.False(t, ok)

	require.NoError(t, r.Add(newObject("a", geo.Vec{})), "name is free again after removal")
}

func TestRegistryForEachToleratesRemoval(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(newObject("a", geo.Vec{})))
	require.NoError(t, r.Add(newObject("b", geo.Vec{})))

	var visited []string
	r.ForEach(func(o *Object) {
		visited = append(visited, o.Name)
		r.Remove("b")
	})
	assert.Equal(t, []string{"a"}, visited)
}

func TestRegistryCameraSlot(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.HasCamera())
	assert.Nil(t, r.Camera())

	cam := NewCamera(geo.V(0, 50, 100))
	r.SetCamera(cam)
	assert.True(t, r.HasCamera())
	assert.Same(t, cam, r.Camera())

	require.NoError(t, r.Add(newObject(CameraName, geo.Vec{})), "camera does not take part in name collisions")
	assert.Equal(t, 1, r.Count())
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	a := newObject("a", geo.Vec{})
	a.SetLight(NewLight(LightOptions{Intensity: 1}))
	require.NoError(t, r.Add(a))
	cam := NewCamera(geo.Vec{})
	r.SetCamera(cam)

	r.Clear()

	assert.Equal(t, 0, r.Count())
	assert.False(t, r.HasCamera())
	assert.Empty(t, r.Names())
	assert.True(t, a.Released())
	assert.Nil(t, a.Light())
	assert.True(t, cam.Released())
}
