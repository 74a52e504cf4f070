package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(V(0, 0, 0), V(3, 4, 0)), 1e-12)
	assert.InDelta(t, 0.0, Distance(V(1, 2, 3), V(1, 2, 3)), 1e-12)
}

func TestDirection(t *testing.T) {
	d := Direction(V(0, 0, 0), V(0, 0, 10))
	assert.Equal(t, V(0, 0, 1), d)

	assert.Equal(t, Vec{}, Direction(V(1, 1, 1), V(1, 1, 1)), "coincident points have no direction")
}

func TestVelocity(t *testing.T) {
	v := Velocity(V(0, 0, 0), V(1, 2, 3), 0.5)
	assert.Equal(t, V(2, 4, 6), v)

	assert.Equal(t, Vec{}, Velocity(V(0, 0, 0), V(1, 2, 3), 0))
	assert.Equal(t, Vec{}, Velocity(V(0, 0, 0), V(1, 2, 3), -1))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(1.00, -2.50, 3.00)", Format(V(1, -2.5, 3), 2))
	assert.Equal(t, "(1, 2, 3)", Format(V(1, 2, 3), 0))
}

func TestOffsetAndLength(t *testing.T) {
	p := Offset(V(1, 1, 1), V(0, 0, 1), 4)
	assert.Equal(t, V(1, 1, 5), p)
	assert.InDelta(t, 5.0, Length(V(3, 4, 0)), 1e-12)
}
