package edges

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/nurbs"
)

// Trim2D bounds a curve between two of its points, returning the edge type
// matching the curve. Coincident points on a closed curve yield the full
// closed edge. Hyperbola and parabola portions are exact rational quadratic
// spline edges.
func Trim2D(c curves.Curve2D, p1, p2 geom.Point2D) (Edge2D, error) {
	switch cv := c.(type) {
	case curves.Line2D:
		return NewLineSegment2D(cv.PointProjection(p1), cv.PointProjection(p2))
	case curves.Circle2D:
		if p1.IsClose(p2, DefaultTolerance) {
			return NewFullArc2D(cv, p1)
		}
		return NewArc2D(cv, p1, p2)
	case curves.Ellipse2D:
		if p1.IsClose(p2, DefaultTolerance) {
			return NewFullArcEllipse2D(cv, p1)
		}
		return NewArcEllipse2D(cv, p1, p2)
	case curves.Hyperbola2D:
		return trimHyperbola2D(cv, p1, p2)
	case curves.Parabola2D:
		return trimParabola2D(cv, p1, p2)
	}
	return nil, fmt.Errorf("%w: cannot trim %v", curves.ErrUnsupported, c.Kind())
}

// TrimWithSense2D trims c between p1 and p2 following the carrier's
// orientation. With sameSense false the carrier is reversed first, selecting
// the complementary portion of a periodic curve.
func TrimWithSense2D(c curves.Curve2D, p1, p2 geom.Point2D, sameSense bool) (Edge2D, error) {
	if !sameSense {
		c = c.Reverse()
	}
	return Trim2D(c, p1, p2)
}

// TrimWithSense3D trims a spatial curve between two of its points, reversing
// the carrier first when sameSense is false.
func TrimWithSense3D(c curves.Curve3D, p1, p2 geom.Point3D, sameSense bool) (Edge3D, error) {
	if !sameSense {
		c = c.Reverse()
	}
	return Trim3D(c, p1, p2)
}

// Trim3D bounds a spatial curve between two of its points.
func Trim3D(c curves.Curve3D, p1, p2 geom.Point3D) (Edge3D, error) {
	switch cv := c.(type) {
	case curves.Line3D:
		return NewLineSegment3D(cv.PointProjection(p1), cv.PointProjection(p2))
	case curves.Circle3D:
		if p1.IsClose(p2, DefaultTolerance) {
			return NewFullArc3D(cv, p1)
		}
		return NewArc3D(cv, p1, p2)
	case curves.Ellipse3D:
		if p1.IsClose(p2, DefaultTolerance) {
			return NewFullArcEllipse3D(cv, p1)
		}
		return NewArcEllipse3D(cv, p1, p2)
	case curves.Hyperbola3D:
		l1, l2 := cv.Frame.GlobalToLocal(p1), cv.Frame.GlobalToLocal(p2)
		local, err := trimHyperbola2D(curves.Hyperbola2D{
			Frame:         geom.OXY,
			SemiMajorAxis: cv.SemiMajorAxis,
			SemiMinorAxis: cv.SemiMinorAxis,
		}, geom.Pt2(l1.X, l1.Y), geom.Pt2(l2.X, l2.Y))
		if err != nil {
			return nil, err
		}
		return liftSplineEdge(local, cv.Frame)
	case curves.Parabola3D:
		l1, l2 := cv.Frame.GlobalToLocal(p1), cv.Frame.GlobalToLocal(p2)
		local, err := trimParabola2D(curves.Parabola2D{
			Frame:       geom.OXY,
			FocalLength: cv.FocalLength,
		}, geom.Pt2(l1.X, l1.Y), geom.Pt2(l2.X, l2.Y))
		if err != nil {
			return nil, err
		}
		return liftSplineEdge(local, cv.Frame)
	}
	return nil, fmt.Errorf("%w: cannot trim %v", curves.ErrUnsupported, c.Kind())
}

// conicArcSpline builds the rational quadratic spline through p0 and p2 with
// inner control point at the tangent intersection apex and weight derived
// from the shoulder point on the conic.
func conicArcSpline(p0, apex, p2, shoulder geom.Point2D) (*BSplineCurve2D, error) {
	m := p0.Midpoint(p2)
	denom := shoulder.Distance(apex)
	if denom == 0 {
		return nil, fmt.Errorf("%w: shoulder at apex", ErrDegenerate)
	}
	w := m.Distance(shoulder) / denom
	c, err := nurbs.NewCurve(2,
		[][]float64{{p0.X, p0.Y}, {apex.X, apex.Y}, {p2.X, p2.Y}},
		[]float64{0, 0, 0, 1, 1, 1},
		[]float64{1, w, 1})
	if err != nil {
		return nil, err
	}
	return NewBSplineCurve2D(c)
}

func trimHyperbola2D(h curves.Hyperbola2D, p1, p2 geom.Point2D) (*BSplineCurve2D, error) {
	if !h.PointBelongs(p1, DefaultTolerance) || !h.PointBelongs(p2, DefaultTolerance) {
		return nil, fmt.Errorf("%w: trim point off the hyperbola", ErrNotOnEdge)
	}
	if p1.IsClose(p2, DefaultTolerance) {
		return nil, fmt.Errorf("%w: coincident trim points", ErrDegenerate)
	}
	a, b := h.SemiMajorAxis, h.SemiMinorAxis
	l1 := h.Frame.GlobalToLocal(p1)
	l2 := h.Frame.GlobalToLocal(p2)
	t1 := math.Asinh(l1.Y / b)
	t2 := math.Asinh(l2.Y / b)
	tm := (t1 + t2) / 2

	shoulder := geom.Pt2(a*math.Cosh(tm), b*math.Sinh(tm))
	apex, err := tangentIntersection(l1, geom.V2(a*math.Sinh(t1), b*math.Cosh(t1)),
		l2, geom.V2(a*math.Sinh(t2), b*math.Cosh(t2)))
	if err != nil {
		return nil, err
	}
	return conicArcSpline(
		h.Frame.LocalToGlobal(l1),
		h.Frame.LocalToGlobal(apex),
		h.Frame.LocalToGlobal(l2),
		h.Frame.LocalToGlobal(shoulder))
}

func trimParabola2D(p curves.Parabola2D, p1, p2 geom.Point2D) (*BSplineCurve2D, error) {
	if !p.PointBelongs(p1, DefaultTolerance) || !p.PointBelongs(p2, DefaultTolerance) {
		return nil, fmt.Errorf("%w: trim point off the parabola", ErrNotOnEdge)
	}
	if p1.IsClose(p2, DefaultTolerance) {
		return nil, fmt.Errorf("%w: coincident trim points", ErrDegenerate)
	}
	f := p.FocalLength
	l1 := p.Frame.GlobalToLocal(p1)
	l2 := p.Frame.GlobalToLocal(p2)
	xm := (l1.X + l2.X) / 2

	shoulder := geom.Pt2(xm, xm*xm/(4*f))
	apex, err := tangentIntersection(l1, geom.V2(1, l1.X/(2*f)),
		l2, geom.V2(1, l2.X/(2*f)))
	if err != nil {
		return nil, err
	}
	return conicArcSpline(
		p.Frame.LocalToGlobal(l1),
		p.Frame.LocalToGlobal(apex),
		p.Frame.LocalToGlobal(l2),
		p.Frame.LocalToGlobal(shoulder))
}

// tangentIntersection intersects the lines through q1 along d1 and q2 along
// d2.
func tangentIntersection(q1 geom.Point2D, d1 geom.Vector2D, q2 geom.Point2D, d2 geom.Vector2D) (geom.Point2D, error) {
	det := d1.Cross(d2)
	if math.Abs(det) < 1e-14 {
		return geom.Point2D{}, fmt.Errorf("%w: parallel tangents", ErrDegenerate)
	}
	t := q2.Sub(q1).Cross(d2) / det
	return q1.Translate(d1.Mul(t)), nil
}

// liftSplineEdge maps a planar spline edge into space through frame.
func liftSplineEdge(e *BSplineCurve2D, frame geom.Frame3D) (*BSplineCurve3D, error) {
	src := e.Curve
	ctrl := make([][]float64, len(src.ControlPoints))
	for i, p := range src.ControlPoints {
		g := frame.LocalToGlobal(geom.Pt3(p[0], p[1], 0))
		ctrl[i] = []float64{g.X, g.Y, g.Z}
	}
	var weights []float64
	if src.Weights != nil {
		weights = append([]float64(nil), src.Weights...)
	}
	c, err := nurbs.NewCurve(src.Degree, ctrl, append([]float64(nil), src.Knots...), weights)
	if err != nil {
		return nil, err
	}
	return NewBSplineCurve3D(c)
}
