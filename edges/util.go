package edges

import (
	"fmt"
	"math"
	"sort"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// IsPointEdgeExtremity2D reports whether p coincides with either endpoint of
// the edge.
func IsPointEdgeExtremity2D(e Edge2D, p geom.Point2D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return p.IsClose(e.Start(), tol) || p.IsClose(e.End(), tol)
}

// IsPointEdgeExtremity3D reports whether p coincides with either endpoint of
// the edge.
func IsPointEdgeExtremity3D(e Edge3D, p geom.Point3D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return p.IsClose(e.Start(), tol) || p.IsClose(e.End(), tol)
}

// LocalDiscretization2D samples n points of the edge between two of its
// points, in traversal order.
func LocalDiscretization2D(e Edge2D, p1, p2 geom.Point2D, n int) ([]geom.Point2D, error) {
	s1, err := e.Abscissa(p1, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	s2, err := e.Abscissa(p2, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i], _ = e.PointAtAbscissa(s1 + (s2-s1)*float64(i)/float64(n-1))
	}
	return out, nil
}

// LocalDiscretization3D samples n points of the edge between two of its
// points, in traversal order.
func LocalDiscretization3D(e Edge3D, p1, p2 geom.Point3D, n int) ([]geom.Point3D, error) {
	s1, err := e.Abscissa(p1, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	s2, err := e.Abscissa(p2, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i], _ = e.PointAtAbscissa(s1 + (s2-s1)*float64(i)/float64(n-1))
	}
	return out, nil
}

// SortPointsAlongEdge2D orders points on the edge by increasing abscissa.
// Points not on the edge are rejected.
func SortPointsAlongEdge2D(e Edge2D, pts []geom.Point2D) ([]geom.Point2D, error) {
	type keyed struct {
		p geom.Point2D
		s float64
	}
	ks := make([]keyed, len(pts))
	for i, p := range pts {
		s, err := e.Abscissa(p, DefaultTolerance)
		if err != nil {
			return nil, err
		}
		ks[i] = keyed{p, s}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].s < ks[j].s })
	out := make([]geom.Point2D, len(ks))
	for i, k := range ks {
		out[i] = k.p
	}
	return out, nil
}

// SortPointsAlongEdge3D orders points on the edge by increasing abscissa.
func SortPointsAlongEdge3D(e Edge3D, pts []geom.Point3D) ([]geom.Point3D, error) {
	type keyed struct {
		p geom.Point3D
		s float64
	}
	ks := make([]keyed, len(pts))
	for i, p := range pts {
		s, err := e.Abscissa(p, DefaultTolerance)
		if err != nil {
			return nil, err
		}
		ks[i] = keyed{p, s}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].s < ks[j].s })
	out := make([]geom.Point3D, len(ks))
	for i, k := range ks {
		out[i] = k.p
	}
	return out, nil
}

// CutCircleByLine splits a circle along a secant line into its two arcs,
// each running from one chord point to the other. A tangent or missing line
// is an error.
func CutCircleByLine(c curves.Circle2D, l curves.Line2D, tol float64) (Arc2D, Arc2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	pts := c.LineIntersections(l, tol)
	if len(pts) < 2 {
		return Arc2D{}, Arc2D{}, fmt.Errorf("%w: line does not cut the circle", ErrDegenerate)
	}
	first, err := NewArc2D(c, pts[0], pts[1])
	if err != nil {
		return Arc2D{}, Arc2D{}, err
	}
	return first, first.Complementary(), nil
}

// circleTangent2D is the exact unit tangent of the circle at abscissa s.
func circleTangent2D(c curves.Circle2D, s float64) geom.Vector2D {
	sin, cos := math.Sincos(s / c.Radius)
	return c.Frame.LocalToGlobalVector(geom.V2(-sin, cos))
}

// ellipseTangent2D is the exact unit tangent of the ellipse at abscissa s.
func ellipseTangent2D(e curves.Ellipse2D, s float64) (geom.Vector2D, error) {
	p, err := e.PointAtAbscissa(s)
	if err != nil {
		return geom.Vector2D{}, err
	}
	local := e.Frame.GlobalToLocal(p)
	th := math.Atan2(local.Y/e.MinorAxis, local.X/e.MajorAxis)
	sin, cos := math.Sincos(th)
	return e.Frame.LocalToGlobalVector(geom.V2(-e.MajorAxis*sin, e.MinorAxis*cos)).Unit(), nil
}

// DirectionAt2D returns the unit tangent of the edge at abscissa s, in the
// direction of traversal. Analytic and spline edges get their exact tangent;
// only unknown edge kinds fall back to a finite difference.
func DirectionAt2D(e Edge2D, s float64) (geom.Vector2D, error) {
	if s < -DefaultTolerance || s > e.Length()+DefaultTolerance {
		return geom.Vector2D{}, fmt.Errorf("%w: abscissa %g", ErrOutOfRange, s)
	}
	switch e := e.(type) {
	case LineSegment2D:
		return e.Dir(), nil
	case *BSplineCurve2D:
		return e.TangentAt(s)
	case Arc2D:
		return circleTangent2D(e.Circle, wrapInterval(e.SA+s, e.Circle.Length(), 0)), nil
	case FullArc2D:
		sa, err := e.Circle.Abscissa(e.Seam)
		if err != nil {
			return geom.Vector2D{}, err
		}
		return circleTangent2D(e.Circle, wrapInterval(sa+s, e.Length(), 0)), nil
	case ArcEllipse2D:
		return ellipseTangent2D(e.Ellipse, wrapInterval(e.SA+s, e.Ellipse.Perimeter(), 0))
	case FullArcEllipse2D:
		sa, err := e.Ellipse.Abscissa(e.Seam)
		if err != nil {
			return geom.Vector2D{}, err
		}
		return ellipseTangent2D(e.Ellipse, wrapInterval(sa+s, e.Length(), 0))
	}
	return tangent2D(e, s), nil
}

// NormalAt2D returns the unit normal of the edge at abscissa s, the tangent
// rotated a quarter turn counter-clockwise.
func NormalAt2D(e Edge2D, s float64) (geom.Vector2D, error) {
	d, err := DirectionAt2D(e, s)
	if err != nil {
		return geom.Vector2D{}, err
	}
	return d.Normal(), nil
}

// circleTangent3D is the exact unit tangent of the circle at abscissa s.
func circleTangent3D(c curves.Circle3D, s float64) geom.Vector3D {
	sin, cos := math.Sincos(s / c.Radius)
	return c.Frame.LocalToGlobalVector(geom.V3(-sin, cos, 0))
}

// ellipseTangent3D is the exact unit tangent of the ellipse at abscissa s.
func ellipseTangent3D(e curves.Ellipse3D, s float64) (geom.Vector3D, error) {
	p, err := e.PointAtAbscissa(s)
	if err != nil {
		return geom.Vector3D{}, err
	}
	local := e.Frame.GlobalToLocal(p)
	th := math.Atan2(local.Y/e.MinorAxis, local.X/e.MajorAxis)
	sin, cos := math.Sincos(th)
	return e.Frame.LocalToGlobalVector(geom.V3(-e.MajorAxis*sin, e.MinorAxis*cos, 0)).Unit(), nil
}

// DirectionAt3D returns the unit tangent of the edge at abscissa s. Analytic
// and spline edges get their exact tangent; only unknown edge kinds fall back
// to a finite difference.
func DirectionAt3D(e Edge3D, s float64) (geom.Vector3D, error) {
	if s < -DefaultTolerance || s > e.Length()+DefaultTolerance {
		return geom.Vector3D{}, fmt.Errorf("%w: abscissa %g", ErrOutOfRange, s)
	}
	switch e := e.(type) {
	case LineSegment3D:
		return e.Dir(), nil
	case *BSplineCurve3D:
		return e.TangentAt(s)
	case Arc3D:
		return circleTangent3D(e.Circle, wrapInterval(e.SA+s, e.Circle.Length(), 0)), nil
	case FullArc3D:
		sa, err := e.Circle.Abscissa(e.Seam)
		if err != nil {
			return geom.Vector3D{}, err
		}
		return circleTangent3D(e.Circle, wrapInterval(sa+s, e.Length(), 0)), nil
	case ArcEllipse3D:
		return ellipseTangent3D(e.Ellipse, wrapInterval(e.SA+s, e.Ellipse.Perimeter(), 0))
	case FullArcEllipse3D:
		sa, err := e.Ellipse.Abscissa(e.Seam)
		if err != nil {
			return geom.Vector3D{}, err
		}
		return ellipseTangent3D(e.Ellipse, wrapInterval(sa+s, e.Length(), 0))
	}
	return tangent3D(e, s), nil
}

// NormalAt3D returns a unit normal of the edge at abscissa s. Curved edges
// yield the principal normal; a straight edge has no preferred normal and
// gets a deterministic perpendicular of its direction.
func NormalAt3D(e Edge3D, s float64) (geom.Vector3D, error) {
	d, err := DirectionAt3D(e, s)
	if err != nil {
		return geom.Vector3D{}, err
	}
	switch e := e.(type) {
	case LineSegment3D:
		return d.AnyPerpendicular(), nil
	case Arc3D:
		p, _ := e.PointAtAbscissa(s)
		return e.Center().Sub(p).Unit(), nil
	case FullArc3D:
		p, _ := e.PointAtAbscissa(s)
		return e.Center().Sub(p).Unit(), nil
	}
	h := e.Length() * 1e-4
	lo := math.Max(s-h, 0)
	hi := math.Min(s+h, e.Length())
	p0, _ := e.PointAtAbscissa(lo)
	pm, _ := e.PointAtAbscissa((lo + hi) / 2)
	p1, _ := e.PointAtAbscissa(hi)
	second := p0.Sub(pm).Add(p1.Sub(pm))
	if second.Norm() < 1e-12 {
		return d.AnyPerpendicular(), nil
	}
	n := second.Sub(d.Mul(second.Dot(d)))
	if n.Norm() < 1e-12 {
		return d.AnyPerpendicular(), nil
	}
	return n.Unit(), nil
}

// AbscissaDiscretization2D samples n points between two abscissas of the
// edge. On a closed edge a descending span wraps through the seam.
func AbscissaDiscretization2D(e Edge2D, a1, a2 float64, n int) ([]geom.Point2D, error) {
	length := e.Length()
	if a1 < -DefaultTolerance || a1 > length+DefaultTolerance ||
		a2 < -DefaultTolerance || a2 > length+DefaultTolerance {
		return nil, fmt.Errorf("%w: abscissa span [%g, %g]", ErrOutOfRange, a1, a2)
	}
	span := a2 - a1
	if span < 0 {
		if !e.Start().IsClose(e.End(), DefaultTolerance) {
			return nil, fmt.Errorf("%w: descending span on an open edge", ErrOutOfRange)
		}
		span += length
	}
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		s := a1 + span*float64(i)/float64(n-1)
		if s > length {
			s -= length
		}
		out[i], _ = e.PointAtAbscissa(s)
	}
	return out, nil
}

// AbscissaDiscretization3D samples n points between two abscissas of the
// edge. On a closed edge a descending span wraps through the seam.
func AbscissaDiscretization3D(e Edge3D, a1, a2 float64, n int) ([]geom.Point3D, error) {
	length := e.Length()
	if a1 < -DefaultTolerance || a1 > length+DefaultTolerance ||
		a2 < -DefaultTolerance || a2 > length+DefaultTolerance {
		return nil, fmt.Errorf("%w: abscissa span [%g, %g]", ErrOutOfRange, a1, a2)
	}
	span := a2 - a1
	if span < 0 {
		if !e.Start().IsClose(e.End(), DefaultTolerance) {
			return nil, fmt.Errorf("%w: descending span on an open edge", ErrOutOfRange)
		}
		span += length
	}
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		s := a1 + span*float64(i)/float64(n-1)
		if s > length {
			s -= length
		}
		out[i], _ = e.PointAtAbscissa(s)
	}
	return out, nil
}
