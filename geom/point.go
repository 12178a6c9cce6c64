package geom

import (
	"fmt"
	"math"
)

type Point2D struct {
	X float64
	Y float64
}

// Pt2 returns the point (x, y).
func Pt2(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (pt Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Sub computes pt−o as a vector.
func (pt Point2D) Sub(o Point2D) Vector2D {
	return Vector2D{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Translate returns the point displaced by v.
func (pt Point2D) Translate(v Vector2D) Point2D {
	return Point2D{
		X: pt.X + v.X,
		Y: pt.Y + v.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point2D) Lerp(o Point2D, t float64) Point2D {
	return Point2D{
		X: pt.X + t*(o.X-pt.X),
		Y: pt.Y + t*(o.Y-pt.Y),
	}
}

// Midpoint returns the midpoint of two points.
func (pt Point2D) Midpoint(o Point2D) Point2D {
	return Point2D{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point2D) Distance(o Point2D) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point2D) DistanceSquared(o Point2D) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// IsClose reports whether two points coincide within tol.
func (pt Point2D) IsClose(o Point2D, tol float64) bool {
	return pt.Distance(o) <= tol
}

// Rotate rotates the point around center by angle radians, anticlockwise.
func (pt Point2D) Rotate(center Point2D, angle float64) Point2D {
	sin, cos := math.Sincos(angle)
	v := pt.Sub(center)
	return center.Translate(Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	})
}

// Vec converts the point to the vector from the origin.
func (pt Point2D) Vec() Vector2D {
	return Vector2D(pt)
}

// IsNaN reports whether at least one coordinate is NaN.
func (pt Point2D) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// To3D places the 2D point on the plane spanned by (u, v) at origin.
func (pt Point2D) To3D(origin Point3D, u, v Vector3D) Point3D {
	return origin.Translate(u.Mul(pt.X)).Translate(v.Mul(pt.Y))
}

// InList reports whether the point coincides with any point of pts within tol.
func (pt Point2D) InList(pts []Point2D, tol float64) bool {
	for _, o := range pts {
		if pt.IsClose(o, tol) {
			return true
		}
	}
	return false
}

type Point3D struct {
	X float64
	Y float64
	Z float64
}

// Pt3 returns the point (x, y, z).
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

func (pt Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
}

// Sub computes pt−o as a vector.
func (pt Point3D) Sub(o Point3D) Vector3D {
	return Vector3D{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
		Z: pt.Z - o.Z,
	}
}

// Translate returns the point displaced by v.
func (pt Point3D) Translate(v Vector3D) Point3D {
	return Point3D{
		X: pt.X + v.X,
		Y: pt.Y + v.Y,
		Z: pt.Z + v.Z,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point3D) Lerp(o Point3D, t float64) Point3D {
	return Point3D{
		X: pt.X + t*(o.X-pt.X),
		Y: pt.Y + t*(o.Y-pt.Y),
		Z: pt.Z + t*(o.Z-pt.Z),
	}
}

// Midpoint returns the midpoint of two points.
func (pt Point3D) Midpoint(o Point3D) Point3D {
	return Point3D{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
		Z: 0.5 * (pt.Z + o.Z),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point3D) Distance(o Point3D) float64 {
	return pt.Sub(o).Norm()
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point3D) DistanceSquared(o Point3D) float64 {
	return pt.Sub(o).Norm2()
}

// IsClose reports whether two points coincide within tol.
func (pt Point3D) IsClose(o Point3D, tol float64) bool {
	return pt.Distance(o) <= tol
}

// Rotate rotates the point around the axis through center by angle radians.
// The axis direction need not be normalized.
func (pt Point3D) Rotate(center Point3D, axis Vector3D, angle float64) Point3D {
	return center.Translate(pt.Sub(center).Rotate(axis, angle))
}

// Vec converts the point to the vector from the origin.
func (pt Point3D) Vec() Vector3D {
	return Vector3D(pt)
}

// IsNaN reports whether at least one coordinate is NaN.
func (pt Point3D) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z)
}

// To2D projects the point onto the plane spanned by (u, v) at origin,
// expressed in plane coordinates.
func (pt Point3D) To2D(origin Point3D, u, v Vector3D) Point2D {
	d := pt.Sub(origin)
	return Point2D{X: d.Dot(u), Y: d.Dot(v)}
}

// InList reports whether the point coincides with any point of pts within tol.
func (pt Point3D) InList(pts []Point3D, tol float64) bool {
	for _, o := range pts {
		if pt.IsClose(o, tol) {
			return true
		}
	}
	return false
}
