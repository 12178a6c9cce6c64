package geom

import (
	"fmt"
	"math"
)

type Vector2D struct {
	X float64
	Y float64
}

// V2 returns the vector ⟨x, y⟩.
func V2(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar cross product of v and o.
func (v Vector2D) Cross(o Vector2D) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Norm returns the magnitude of the vector.
func (v Vector2D) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Norm2 returns the squared magnitude of the vector.
//
// This is more efficient than squaring the result of [Vector2D.Norm].
func (v Vector2D) Norm2() float64 {
	return v.Dot(v)
}

// Angle returns the angle in radians between the vector and ⟨1, 0⟩.
// This is atan2(y, x).
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// V2FromAngle returns a unit vector of the given angle, in radians.
func V2FromAngle(th float64) Vector2D {
	y, x := math.Sincos(th)
	return Vector2D{X: x, Y: y}
}

// Unit returns a vector of magnitude 1.0 with the same direction.
// This produces a NaN vector if the magnitude is 0.
func (v Vector2D) Unit() Vector2D {
	return v.Mul(1.0 / v.Norm())
}

// Normal returns v rotated a quarter turn anticlockwise.
func (v Vector2D) Normal() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

// Add adds two vectors.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub subtracts two vectors.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2D) Mul(f float64) Vector2D {
	return Vector2D{X: v.X * f, Y: v.Y * f}
}

func (v Vector2D) Div(f float64) Vector2D {
	return Vector2D{X: v.X / f, Y: v.Y / f}
}

// Negate returns a new vector with the signs of x and y flipped.
func (v Vector2D) Negate() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// IsColinearTo reports whether v and o are parallel or antiparallel within tol.
func (v Vector2D) IsColinearTo(o Vector2D, tol float64) bool {
	n := v.Norm() * o.Norm()
	if n == 0 {
		return false
	}
	return math.Abs(math.Abs(v.Dot(o))/n-1) <= tol
}

// IsNaN reports whether at least one component is NaN.
func (v Vector2D) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

type Vector3D struct {
	X float64
	Y float64
	Z float64
}

// V3 returns the vector ⟨x, y, z⟩.
func V3(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

func (v Vector3D) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Dot returns the dot product of v and o.
func (v Vector3D) Dot(o Vector3D) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the magnitude of the vector.
func (v Vector3D) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Norm2 returns the squared magnitude of the vector.
func (v Vector3D) Norm2() float64 {
	return v.Dot(v)
}

// Unit returns a vector of magnitude 1.0 with the same direction.
// This produces a NaN vector if the magnitude is 0.
func (v Vector3D) Unit() Vector3D {
	return v.Mul(1.0 / v.Norm())
}

// Add adds two vectors.
func (v Vector3D) Add(o Vector3D) Vector3D {
	return Vector3D{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub subtracts two vectors.
func (v Vector3D) Sub(o Vector3D) Vector3D {
	return Vector3D{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3D) Mul(f float64) Vector3D {
	return Vector3D{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vector3D) Div(f float64) Vector3D {
	return Vector3D{X: v.X / f, Y: v.Y / f, Z: v.Z / f}
}

// Negate returns a new vector with the signs of all components flipped.
func (v Vector3D) Negate() Vector3D {
	return Vector3D{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// IsColinearTo reports whether v and o are parallel or antiparallel within tol.
func (v Vector3D) IsColinearTo(o Vector3D, tol float64) bool {
	n := v.Norm() * o.Norm()
	if n == 0 {
		return false
	}
	return math.Abs(math.Abs(v.Dot(o))/n-1) <= tol
}

// Rotate rotates the vector around the axis direction by angle radians,
// using Rodrigues' formula. The axis need not be normalized.
func (v Vector3D) Rotate(axis Vector3D, angle float64) Vector3D {
	k := axis.Unit()
	sin, cos := math.Sincos(angle)
	return v.Mul(cos).
		Add(k.Cross(v).Mul(sin)).
		Add(k.Mul(k.Dot(v) * (1 - cos)))
}

// AnyPerpendicular returns a unit vector perpendicular to v. The choice is
// deterministic: the coordinate axis least aligned with v seeds the result.
func (v Vector3D) AnyPerpendicular() Vector3D {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	seed := Vector3D{X: 1}
	if ay <= ax && ay <= az {
		seed = Vector3D{Y: 1}
	} else if az <= ax && az <= ay {
		seed = Vector3D{Z: 1}
	}
	return v.Cross(seed).Unit()
}

// IsNaN reports whether at least one component is NaN.
func (v Vector3D) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// SinCosAngle maps a (cos, sin) pair to its angle in [0, 2π).
func SinCosAngle(u1, u2 float64) float64 {
	th := math.Atan2(u2, u1)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// ClockwiseAngle returns the clockwise angle in [0, 2π) from v to o.
func ClockwiseAngle(v, o Vector2D) float64 {
	th := math.Atan2(v.Cross(o), v.Dot(o))
	if th > 0 {
		return 2*math.Pi - th
	}
	return -th
}
