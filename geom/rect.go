package geom

import "math"

// Rect is an axis-aligned rectangle in the plane, used as the bounding box of
// planar curves and edges.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1,
// ensuring that width and height are non-negative.
func NewRectFromPoints(p0, p1 Point2D) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// RectFromPoints returns the smallest rectangle enclosing all pts. It returns
// the zero rectangle for an empty slice.
func RectFromPoints(pts []Point2D) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		r = r.UnionPoint(p)
	}
	return r
}

// Abs returns a new rectangle with the same extents as r, but ensuring that
// width and height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Center() Point2D {
	return Point2D{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Contains reports whether pt lies inside r, with a tol margin outward on
// every side.
func (r Rect) Contains(pt Point2D, tol float64) bool {
	return pt.X >= r.X0-tol &&
		pt.X <= r.X1+tol &&
		pt.Y >= r.Y0-tol &&
		pt.Y <= r.Y1+tol
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles. Thus, a
// succession of UnionPoint operations on a series of points yields their
// enclosing rectangle.
func (r Rect) UnionPoint(pt Point2D) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Intersects reports whether r and o overlap, with a tol margin.
func (r Rect) Intersects(o Rect, tol float64) bool {
	return r.X0 <= o.X1+tol &&
		o.X0 <= r.X1+tol &&
		r.Y0 <= o.Y1+tol &&
		o.Y0 <= r.Y1+tol
}

// Inflate expands a rectangle by a constant amount in both directions.
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) ||
		math.IsNaN(r.X1) ||
		math.IsNaN(r.Y0) ||
		math.IsNaN(r.Y1)
}

// Box is an axis-aligned box in space, used as the bounding box of spatial
// curves and edges.
type Box struct {
	Min, Max Point3D
}

// NewBoxFromPoints returns a box with the extents of p0 and p1, ensuring
// non-negative dimensions.
func NewBoxFromPoints(p0, p1 Point3D) Box {
	return Box{
		Min: Point3D{X: min(p0.X, p1.X), Y: min(p0.Y, p1.Y), Z: min(p0.Z, p1.Z)},
		Max: Point3D{X: max(p0.X, p1.X), Y: max(p0.Y, p1.Y), Z: max(p0.Z, p1.Z)},
	}
}

// BoxFromPoints returns the smallest box enclosing all pts. It returns the
// zero box for an empty slice.
func BoxFromPoints(pts []Point3D) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.UnionPoint(p)
	}
	return b
}

func (b Box) Center() Point3D {
	return Point3D{
		X: 0.5 * (b.Min.X + b.Max.X),
		Y: 0.5 * (b.Min.Y + b.Max.Y),
		Z: 0.5 * (b.Min.Z + b.Max.Z),
	}
}

// Contains reports whether pt lies inside b, with a tol margin outward on
// every face.
func (b Box) Contains(pt Point3D, tol float64) bool {
	return pt.X >= b.Min.X-tol && pt.X <= b.Max.X+tol &&
		pt.Y >= b.Min.Y-tol && pt.Y <= b.Max.Y+tol &&
		pt.Z >= b.Min.Z-tol && pt.Z <= b.Max.Z+tol
}

// Union returns the smallest box enclosing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point3D{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: Point3D{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// UnionPoint computes the union with one point.
func (b Box) UnionPoint(pt Point3D) Box {
	return Box{
		Min: Point3D{X: min(b.Min.X, pt.X), Y: min(b.Min.Y, pt.Y), Z: min(b.Min.Z, pt.Z)},
		Max: Point3D{X: max(b.Max.X, pt.X), Y: max(b.Max.Y, pt.Y), Z: max(b.Max.Z, pt.Z)},
	}
}

// Intersects reports whether b and o overlap, with a tol margin.
func (b Box) Intersects(o Box, tol float64) bool {
	return b.Min.X <= o.Max.X+tol && o.Min.X <= b.Max.X+tol &&
		b.Min.Y <= o.Max.Y+tol && o.Min.Y <= b.Max.Y+tol &&
		b.Min.Z <= o.Max.Z+tol && o.Min.Z <= b.Max.Z+tol
}

// Inflate expands a box by a constant amount in all directions.
func (b Box) Inflate(amount float64) Box {
	return Box{
		Min: Point3D{X: b.Min.X - amount, Y: b.Min.Y - amount, Z: b.Min.Z - amount},
		Max: Point3D{X: b.Max.X + amount, Y: b.Max.Y + amount, Z: b.Max.Z + amount},
	}
}
