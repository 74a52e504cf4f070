// Package geo provides the 3D vector helpers shared by the simulation.
// Vectors are gonum r3.Vec values; the arena uses a Y-up, right-handed frame
// with the origin at its center.
package geo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is the vector type used for positions and velocities.
type Vec = r3.Vec

// V builds a vector from its components.
func V(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Direction returns the unit vector pointing from one point to another.
// Coincident points yield the zero vector.
func Direction(from, to Vec) Vec {
	d := r3.Sub(to, from)
	n := r3.Norm(d)
	if n == 0 {
		return Vec{}
	}
	return r3.Scale(1/n, d)
}

// Velocity derives a velocity from two successive positions.
// A non-positive dt yields the zero vector.
func Velocity(prev, cur Vec, dt float64) Vec {
	if dt <= 0 {
		return Vec{}
	}
	return r3.Scale(1/dt, r3.Sub(cur, prev))
}

// Offset moves p by d along the unit vector dir.
func Offset(p, dir Vec, d float64) Vec {
	return r3.Add(p, r3.Scale(d, dir))
}

// Length returns the norm of v.
func Length(v Vec) float64 {
	return r3.Norm(v)
}

// Format renders v as "(x, y, z)" with the given number of decimals.
func Format(v Vec, decimals int) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", decimals, v.X, decimals, v.Y, decimals, v.Z)
}
