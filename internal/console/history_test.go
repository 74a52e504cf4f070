package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAdd(t *testing.T) {
	h := NewHistory(3)

	h.Add("  place a  ")
	h.Add("place a")
	h.Add("")
	h.Add("   ")
	h.Add("camera")
	h.Add("place a")

	assert.Equal(t, []string{"place a", "camera", "place a"}, h.All())
}

func TestHistoryMaxSize(t *testing.T) {
	h := NewHistory(2)

	h.Add("one")
	h.Add("two")
	h.Add("three")

	assert.Equal(t, []string{"two", "three"}, h.All())
	assert.Equal(t, DefaultHistorySize, NewHistory(0).maxSize)
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory(10)
	h.Add("one")
	h.Add("two")
	h.Add("three")

	_, ok := h.Down()
	assert.False(t, ok)

	line, ok := h.Up("draft")
	assert.True(t, ok)
	assert.Equal(t, "three", line)
	line, _ = h.Up("ignored")
	assert.Equal(t, "two", line)
	line, _ = h.Up("ignored")
	assert.Equal(t, "one", line)
	line, _ = h.Up("ignored")
	assert.Equal(t, "one", line)

	line, _ = h.Down()
	assert.Equal(t, "two", line)
	line, _ = h.Down()
	assert.Equal(t, "three", line)
	line, ok = h.Down()
	assert.True(t, ok)
	assert.Equal(t, "draft", line)

	_, ok = h.Down()
	assert.False(t, ok)
}

func TestHistoryAddResetsNavigation(t *testing.T) {
	h := NewHistory(10)
	h.Add("one")
	h.Up("draft")

	h.Add("two")

	_, ok := h.Down()
	assert.False(t, ok)
	line, _ := h.Up("")
	assert.Equal(t, "two", line)
}

func TestHistoryEmptyAndClear(t *testing.T) {
	h := NewHistory(10)

	_, ok := h.Up("draft")
	assert.False(t, ok)

	h.Add("one")
	h.Up("")
	h.Clear()

	assert.Zero(t, h.Len())
	_, ok = h.Down()
	assert.False(t, ok)
}
