package vector

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestAddSubtract(t *testing.T) {
	a := Vector{X: 1, Y: 2}
	b := Vector{X: 3, Y: -4}

	sum := a.Add(b)
	if sum.X != 4 || sum.Y != -2 {
		t.Errorf("Add: expected (4,-2), got (%v,%v)", sum.X, sum.Y)
	}

	diff := a.Subtract(b)
	if diff.X != -2 || diff.Y != 6 {
		t.Errorf("Subtract: expected (-2,6), got (%v,%v)", diff.X, diff.Y)
	}

	// Operands must be untouched.
	if a.X != 1 || a.Y != 2 || b.X != 3 || b.Y != -4 {
		t.Error("operands were mutated")
	}
}

func TestMultiply(t *testing.T) {
	v := Vector{X: 2, Y: -3}.Multiply(2.5)
	if v.X != 5 || v.Y != -7.5 {
		t.Errorf("Multiply: expected (5,-7.5), got (%v,%v)", v.X, v.Y)
	}
}

func TestDivide(t *testing.T) {
	v, err := Vector{X: 10, Y: -5}.Divide(2)
	if err != nil {
		t.Fatalf("Divide failed: %v", err)
	}
	if v.X != 5 || v.Y != -2.5 {
		t.Errorf("Divide: expected (5,-2.5), got (%v,%v)", v.X, v.Y)
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := Vector{X: 1, Y: 1}.Divide(0)
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestMagnitude(t *testing.T) {
	if got := (Vector{X: 3, Y: 4}).Magnitude(); !almostEqual(got, 5) {
		t.Errorf("Magnitude: expected 5, got %v", got)
	}
	if got := (Vector{}).Magnitude(); got != 0 {
		t.Errorf("Magnitude of zero vector: expected 0, got %v", got)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	for _, v := range []Vector{
		{X: 3, Y: 4},
		{X: -0.001, Y: 0.002},
		{X: 1e6, Y: -1e6},
	} {
		unit, err := v.Normalize()
		if err != nil {
			t.Fatalf("Normalize(%v) failed: %v", v, err)
		}
		if !almostEqual(unit.Magnitude(), 1) {
			t.Errorf("normalized magnitude of %v is %v, expected 1", v, unit.Magnitude())
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	_, err := Vector{}.Normalize()
	if !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Vector{X: 1, Y: 2}
	b := Vector{X: -4, Y: 7}
	if Distance(a, b) != Distance(b, a) {
		t.Errorf("Distance is not symmetric: %v vs %v", Distance(a, b), Distance(b, a))
	}
	if !almostEqual(Distance(a, a), 0) {
		t.Errorf("Distance(a,a): expected 0, got %v", Distance(a, a))
	}
}

func TestDotCross(t *testing.T) {
	a := Vector{X: 1, Y: 2}
	b := Vector{X: 3, Y: 4}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot: expected 11, got %v", got)
	}
	if got := a.Cross(b); got != -2 {
		t.Errorf("Cross: expected -2, got %v", got)
	}
}

func TestFromPolar(t *testing.T) {
	v := FromPolar(2, math.Pi/2)
	if !almostEqual(v.X, 0) || !almostEqual(v.Y, 2) {
		t.Errorf("FromPolar: expected (0,2), got (%v,%v)", v.X, v.Y)
	}
	if !almostEqual(v.Magnitude(), 2) {
		t.Errorf("FromPolar magnitude: expected 2, got %v", v.Magnitude())
	}
}
