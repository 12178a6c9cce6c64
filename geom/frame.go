package geom

import "math"

// Frame2D is a local coordinate system: an origin and two basis vectors.
// The basis is expected to be orthonormal; constructors normalize but the
// fields are exported for value-style composition.
type Frame2D struct {
	Origin Point2D
	U      Vector2D
	V      Vector2D
}

// OXY is the canonical 2D frame.
var OXY = Frame2D{U: Vector2D{X: 1}, V: Vector2D{Y: 1}}

// NewFrame2D builds a frame from an origin and two directions, normalized.
func NewFrame2D(origin Point2D, u, v Vector2D) Frame2D {
	return Frame2D{Origin: origin, U: u.Unit(), V: v.Unit()}
}

// GlobalToLocal expresses a global point in frame coordinates.
func (f Frame2D) GlobalToLocal(p Point2D) Point2D {
	d := p.Sub(f.Origin)
	return Point2D{X: d.Dot(f.U), Y: d.Dot(f.V)}
}

// LocalToGlobal expresses a frame-local point in global coordinates.
func (f Frame2D) LocalToGlobal(p Point2D) Point2D {
	return f.Origin.Translate(f.U.Mul(p.X)).Translate(f.V.Mul(p.Y))
}

// GlobalToLocalVector expresses a global vector in frame coordinates.
func (f Frame2D) GlobalToLocalVector(v Vector2D) Vector2D {
	return Vector2D{X: v.Dot(f.U), Y: v.Dot(f.V)}
}

// LocalToGlobalVector expresses a frame-local vector in global coordinates.
func (f Frame2D) LocalToGlobalVector(v Vector2D) Vector2D {
	return f.U.Mul(v.X).Add(f.V.Mul(v.Y))
}

// Rotate returns the frame rotated around center by angle radians.
func (f Frame2D) Rotate(center Point2D, angle float64) Frame2D {
	sin, cos := math.Sincos(angle)
	rot := func(v Vector2D) Vector2D {
		return Vector2D{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
	}
	return Frame2D{
		Origin: f.Origin.Rotate(center, angle),
		U:      rot(f.U),
		V:      rot(f.V),
	}
}

// Translate returns the frame displaced by offset.
func (f Frame2D) Translate(offset Vector2D) Frame2D {
	f.Origin = f.Origin.Translate(offset)
	return f
}

// IsRightHanded reports whether (U, V) is a direct basis.
func (f Frame2D) IsRightHanded() bool {
	return f.U.Cross(f.V) > 0
}

// Reverse flips the V axis, inverting the frame's orientation.
func (f Frame2D) Reverse() Frame2D {
	f.V = f.V.Negate()
	return f
}

// Frame3D is a local coordinate system: an origin and three basis vectors,
// with W = U × V for a direct frame.
type Frame3D struct {
	Origin Point3D
	U      Vector3D
	V      Vector3D
	W      Vector3D
}

// OXYZ is the canonical 3D frame.
var OXYZ = Frame3D{
	U: Vector3D{X: 1},
	V: Vector3D{Y: 1},
	W: Vector3D{Z: 1},
}

// NewFrame3D builds a frame from an origin and two in-plane directions; W is
// their cross product. The inputs are normalized.
func NewFrame3D(origin Point3D, u, v Vector3D) Frame3D {
	uu := u.Unit()
	vv := v.Unit()
	return Frame3D{Origin: origin, U: uu, V: vv, W: uu.Cross(vv)}
}

// NewFrame3DFromNormal builds a frame whose W axis is the given normal; U and
// V complete a direct orthonormal basis deterministically.
func NewFrame3DFromNormal(origin Point3D, normal Vector3D) Frame3D {
	w := normal.Unit()
	u := w.AnyPerpendicular()
	return Frame3D{Origin: origin, U: u, V: w.Cross(u), W: w}
}

// GlobalToLocal expresses a global point in frame coordinates.
func (f Frame3D) GlobalToLocal(p Point3D) Point3D {
	d := p.Sub(f.Origin)
	return Point3D{X: d.Dot(f.U), Y: d.Dot(f.V), Z: d.Dot(f.W)}
}

// LocalToGlobal expresses a frame-local point in global coordinates.
func (f Frame3D) LocalToGlobal(p Point3D) Point3D {
	return f.Origin.
		Translate(f.U.Mul(p.X)).
		Translate(f.V.Mul(p.Y)).
		Translate(f.W.Mul(p.Z))
}

// GlobalToLocalVector expresses a global vector in frame coordinates.
func (f Frame3D) GlobalToLocalVector(v Vector3D) Vector3D {
	return Vector3D{X: v.Dot(f.U), Y: v.Dot(f.V), Z: v.Dot(f.W)}
}

// LocalToGlobalVector expresses a frame-local vector in global coordinates.
func (f Frame3D) LocalToGlobalVector(v Vector3D) Vector3D {
	return f.U.Mul(v.X).Add(f.V.Mul(v.Y)).Add(f.W.Mul(v.Z))
}

// Rotate returns the frame rotated around the axis through center.
func (f Frame3D) Rotate(center Point3D, axis Vector3D, angle float64) Frame3D {
	return Frame3D{
		Origin: f.Origin.Rotate(center, axis, angle),
		U:      f.U.Rotate(axis, angle),
		V:      f.V.Rotate(axis, angle),
		W:      f.W.Rotate(axis, angle),
	}
}

// Translate returns the frame displaced by offset.
func (f Frame3D) Translate(offset Vector3D) Frame3D {
	f.Origin = f.Origin.Translate(offset)
	return f
}

// Reverse flips the V and W axes, inverting the frame's orientation around U.
func (f Frame3D) Reverse() Frame3D {
	f.V = f.V.Negate()
	f.W = f.W.Negate()
	return f
}

// PlaneEquation returns (a, b, c, d) such that ax + by + cz + d = 0 describes
// the frame's UV plane.
func (f Frame3D) PlaneEquation() (a, b, c, d float64) {
	return f.W.X, f.W.Y, f.W.Z, -f.W.Dot(f.Origin.Vec())
}

// PlaneLineIntersection intersects the frame's UV plane with the line through
// p1 and p2, extended to infinity. The second return value is false when the
// line is parallel to the plane within tol.
func (f Frame3D) PlaneLineIntersection(p1, p2 Point3D, tol float64) (Point3D, bool) {
	u := p2.Sub(p1)
	w := p1.Sub(f.Origin)
	den := f.W.Dot(u)
	if math.Abs(den) <= tol {
		return Point3D{}, false
	}
	t := -f.W.Dot(w) / den
	return p1.Translate(u.Mul(t)), true
}

// PlanePlaneIntersection intersects the UV planes of two frames. It returns
// two points spanning the intersection line, or false when the planes are
// parallel within tol.
func (f Frame3D) PlanePlaneIntersection(other Frame3D, tol float64) (Point3D, Point3D, bool) {
	if f.W.IsColinearTo(other.W, tol) {
		return Point3D{}, Point3D{}, false
	}
	dir := f.W.Cross(other.W)
	if dir.Norm() < tol {
		return Point3D{}, Point3D{}, false
	}
	a1, b1, c1, d1 := f.PlaneEquation()
	a2, b2, c2, d2 := other.PlaneEquation()
	const piv = 1e-10
	var p Point3D
	switch {
	case math.Abs(a1*b2-a2*b1) > piv:
		p = Point3D{
			X: (b1*d2 - b2*d1) / (a1*b2 - a2*b1),
			Y: (a2*d1 - a1*d2) / (a1*b2 - a2*b1),
		}
	case math.Abs(a2*c1-a1*c2) > piv:
		p = Point3D{
			X: (c2*d1 - c1*d2) / (a2*c1 - a1*c2),
			Z: (a1*d2 - a2*d1) / (a2*c1 - a1*c2),
		}
	default:
		p = Point3D{
			Y: (-c2*d1 + c1*d2) / (b1*c2 - c1*b2),
			Z: (-b1*d2 + b2*d1) / (b1*c2 - c1*b2),
		}
	}
	return p, p.Translate(dir), true
}
