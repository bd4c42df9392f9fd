// Package vector provides the 2D vector arithmetic used throughout the
// physics engine. Values are immutable by convention: every operation
// returns a new Vector, which keeps force accumulation easy to reason
// about (force = force.Add(delta)).
package vector

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrDivideByZero is returned by Divide when the scalar is zero.
	ErrDivideByZero = errors.New("vector: division by zero")

	// ErrZeroVector is returned by Normalize on a zero-length vector.
	ErrZeroVector = errors.New("vector: cannot normalize zero vector")
)

// Vector is a 2D value. The zero value is the origin.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) r2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

func fromR2(p r2.Vec) Vector { return Vector{X: p.X, Y: p.Y} }

// Add returns v + o elementwise.
func (v Vector) Add(o Vector) Vector {
	return fromR2(r2.Add(v.r2(), o.r2()))
}

// Subtract returns v - o elementwise.
func (v Vector) Subtract(o Vector) Vector {
	return fromR2(r2.Sub(v.r2(), o.r2()))
}

// Multiply returns v scaled by s.
func (v Vector) Multiply(s float64) Vector {
	return fromR2(r2.Scale(s, v.r2()))
}

// Divide returns v scaled by 1/s. A zero scalar is a call-site bug, not an
// expected simulation state, so it fails instead of returning the origin.
func (v Vector) Divide(s float64) (Vector, error) {
	if s == 0 {
		return Vector{}, ErrDivideByZero
	}
	return fromR2(r2.Scale(1/s, v.r2())), nil
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return r2.Norm(v.r2())
}

// Normalize returns the unit vector in the direction of v. Callers must
// length-check first; normalizing a zero vector is an error.
func (v Vector) Normalize() (Vector, error) {
	if v.X == 0 && v.Y == 0 {
		return Vector{}, ErrZeroVector
	}
	return fromR2(r2.Unit(v.r2())), nil
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return r2.Dot(v.r2(), o.r2())
}

// Cross returns the z-component of the cross product of v and o.
func (v Vector) Cross(o Vector) float64 {
	return r2.Cross(v.r2(), o.r2())
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector) float64 {
	return r2.Norm(r2.Sub(a.r2(), b.r2()))
}

// FromPolar builds a vector from a magnitude and an angle in radians.
func FromPolar(magnitude, angle float64) Vector {
	return Vector{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}
