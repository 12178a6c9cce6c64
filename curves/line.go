package curves

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/geom"
)

// Line2D is an infinite oriented line in the plane, anchored at a point with
// a unit direction. The anchor is the abscissa origin.
type Line2D struct {
	Point geom.Point2D
	Dir   geom.Vector2D
}

// NewLine2D returns the line through p1 and p2, oriented from p1 to p2.
func NewLine2D(p1, p2 geom.Point2D) (Line2D, error) {
	d := p2.Sub(p1)
	if d.Norm() == 0 {
		return Line2D{}, fmt.Errorf("%w: coincident points %v", ErrDegenerate, p1)
	}
	return Line2D{Point: p1, Dir: d.Unit()}, nil
}

// NewLine2DFromDirection returns the line through p with direction d.
func NewLine2DFromDirection(p geom.Point2D, d geom.Vector2D) (Line2D, error) {
	if d.Norm() == 0 {
		return Line2D{}, fmt.Errorf("%w: zero direction", ErrDegenerate)
	}
	return Line2D{Point: p, Dir: d.Unit()}, nil
}

func (l Line2D) Kind() Kind      { return KindLine }
func (l Line2D) Periodic() bool  { return false }
func (l Line2D) Length() float64 { return math.Inf(1) }

func (l Line2D) PointAtAbscissa(s float64) (geom.Point2D, error) {
	return l.Point.Translate(l.Dir.Mul(s)), nil
}

// Abscissa returns the signed projection of p onto the line. Unlike bounded
// edges, any point projects onto an infinite line, so this never fails.
func (l Line2D) Abscissa(p geom.Point2D) (float64, error) {
	return p.Sub(l.Point).Dot(l.Dir), nil
}

// PointProjection returns the orthogonal projection of p onto the line.
func (l Line2D) PointProjection(p geom.Point2D) geom.Point2D {
	s := p.Sub(l.Point).Dot(l.Dir)
	return l.Point.Translate(l.Dir.Mul(s))
}

// PointDistance returns the distance from p to the line.
func (l Line2D) PointDistance(p geom.Point2D) float64 {
	return math.Abs(p.Sub(l.Point).Cross(l.Dir))
}

func (l Line2D) PointBelongs(p geom.Point2D, tol float64) bool {
	return l.PointDistance(p) <= tol
}

// DiscretizationPoints samples a symmetric portion of the line around its
// anchor, one unit of abscissa per step.
func (l Line2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	half := float64(n-1) / 2
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i] = l.Point.Translate(l.Dir.Mul(float64(i) - half))
	}
	return out
}

func (l Line2D) Reverse() Curve2D {
	return Line2D{Point: l.Point, Dir: l.Dir.Negate()}
}

// SortPointsAlongLine orders points by increasing abscissa on the line.
func (l Line2D) SortPointsAlongLine(pts []geom.Point2D) []geom.Point2D {
	out := append([]geom.Point2D(nil), pts...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			sj, _ := l.Abscissa(out[j])
			sp, _ := l.Abscissa(out[j-1])
			if sj >= sp {
				break
			}
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// IsBetweenPoints reports whether the line separates p1 and p2, endpoints
// included.
func (l Line2D) IsBetweenPoints(p1, p2 geom.Point2D) bool {
	if p1.IsClose(p2, DefaultTolerance) {
		return false
	}
	s1 := p1.Sub(l.Point).Cross(l.Dir)
	s2 := p2.Sub(l.Point).Cross(l.Dir)
	return s1*s2 <= 0
}

// Intersection returns the intersection point with another line, or false
// when the lines are parallel within tol.
func (l Line2D) Intersection(o Line2D, tol float64) (geom.Point2D, bool) {
	den := l.Dir.Cross(o.Dir)
	if math.Abs(den) <= tol {
		return geom.Point2D{}, false
	}
	d := o.Point.Sub(l.Point)
	t := d.Cross(o.Dir) / den
	return l.Point.Translate(l.Dir.Mul(t)), true
}

// Line3D is an infinite oriented line in space.
type Line3D struct {
	Point geom.Point3D
	Dir   geom.Vector3D
}

// NewLine3D returns the line through p1 and p2, oriented from p1 to p2.
func NewLine3D(p1, p2 geom.Point3D) (Line3D, error) {
	d := p2.Sub(p1)
	if d.Norm() == 0 {
		return Line3D{}, fmt.Errorf("%w: coincident points %v", ErrDegenerate, p1)
	}
	return Line3D{Point: p1, Dir: d.Unit()}, nil
}

// NewLine3DFromDirection returns the line through p with direction d.
func NewLine3DFromDirection(p geom.Point3D, d geom.Vector3D) (Line3D, error) {
	if d.Norm() == 0 {
		return Line3D{}, fmt.Errorf("%w: zero direction", ErrDegenerate)
	}
	return Line3D{Point: p, Dir: d.Unit()}, nil
}

func (l Line3D) Kind() Kind      { return KindLine }
func (l Line3D) Periodic() bool  { return false }
func (l Line3D) Length() float64 { return math.Inf(1) }

func (l Line3D) PointAtAbscissa(s float64) (geom.Point3D, error) {
	return l.Point.Translate(l.Dir.Mul(s)), nil
}

func (l Line3D) Abscissa(p geom.Point3D) (float64, error) {
	return p.Sub(l.Point).Dot(l.Dir), nil
}

// PointProjection returns the orthogonal projection of p onto the line.
func (l Line3D) PointProjection(p geom.Point3D) geom.Point3D {
	s := p.Sub(l.Point).Dot(l.Dir)
	return l.Point.Translate(l.Dir.Mul(s))
}

// PointDistance returns the distance from p to the line.
func (l Line3D) PointDistance(p geom.Point3D) float64 {
	return p.Sub(l.Point).Cross(l.Dir).Norm()
}

func (l Line3D) PointBelongs(p geom.Point3D, tol float64) bool {
	return l.PointDistance(p) <= tol
}

func (l Line3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	half := float64(n-1) / 2
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i] = l.Point.Translate(l.Dir.Mul(float64(i) - half))
	}
	return out
}

func (l Line3D) Reverse() Curve3D {
	return Line3D{Point: l.Point, Dir: l.Dir.Negate()}
}

// SkewTo reports whether the two lines neither intersect nor are parallel.
func (l Line3D) SkewTo(o Line3D, tol float64) bool {
	if l.Dir.IsColinearTo(o.Dir, tol) {
		return false
	}
	return l.LineDistance(o) > tol
}

// LineDistance returns the minimum distance between two lines.
func (l Line3D) LineDistance(o Line3D) float64 {
	cross := l.Dir.Cross(o.Dir)
	d := o.Point.Sub(l.Point)
	if n := cross.Norm(); n > 0 {
		return math.Abs(d.Dot(cross)) / n
	}
	// Parallel lines.
	return d.Cross(l.Dir).Norm()
}

// MinimumDistancePoints returns the closest points of two lines, on the
// receiver and on o respectively. For parallel lines the receiver's anchor
// and its projection on o are returned.
func (l Line3D) MinimumDistancePoints(o Line3D) (geom.Point3D, geom.Point3D) {
	u := l.Dir
	v := o.Dir
	w := l.Point.Sub(o.Point)
	a := u.Dot(u)
	b := u.Dot(v)
	c := v.Dot(v)
	d := u.Dot(w)
	e := v.Dot(w)
	den := a*c - b*b
	if den == 0 {
		p1 := l.Point
		return p1, o.PointProjection(p1)
	}
	s := (b*e - c*d) / den
	t := (a*e - b*d) / den
	return l.Point.Translate(u.Mul(s)), o.Point.Translate(v.Mul(t))
}

// Intersection returns the intersection point with another line, or false
// when the closest points are more than tol apart.
func (l Line3D) Intersection(o Line3D, tol float64) (geom.Point3D, bool) {
	p1, p2 := l.MinimumDistancePoints(o)
	if p1.Distance(p2) > tol {
		return geom.Point3D{}, false
	}
	return p1.Midpoint(p2), true
}
