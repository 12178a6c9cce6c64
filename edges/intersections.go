package edges

import (
	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// carrier2D returns the unbounded curve an analytic edge lies on.
func carrier2D(e Edge2D) (curves.Curve2D, bool) {
	switch e := e.(type) {
	case LineSegment2D:
		return e.Line(), true
	case Arc2D:
		return e.Circle, true
	case FullArc2D:
		return e.Circle, true
	case ArcEllipse2D:
		return e.Ellipse, true
	case FullArcEllipse2D:
		return e.Ellipse, true
	}
	return nil, false
}

func carrier3D(e Edge3D) (curves.Curve3D, bool) {
	switch e := e.(type) {
	case LineSegment3D:
		return e.Line(), true
	case Arc3D:
		return e.Circle, true
	case FullArc3D:
		return e.Circle, true
	case ArcEllipse3D:
		return e.Ellipse, true
	case FullArcEllipse3D:
		return e.Ellipse, true
	}
	return nil, false
}

// Intersections2D returns the points where two edges meet. Analytic edge
// pairs intersect their carrier curves and keep the points lying on both
// bounded portions; spline edges go through sampled refinement.
func Intersections2D(a, b Edge2D, tol float64) ([]geom.Point2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	ca, okA := carrier2D(a)
	cb, okB := carrier2D(b)
	if okA && okB {
		pts, err := curves.Intersections2D(ca, cb, tol)
		if err != nil {
			return nil, err
		}
		var out []geom.Point2D
		for _, p := range pts {
			if a.PointBelongs(p, tol) && b.PointBelongs(p, tol) {
				out = append(out, p)
			}
		}
		return out, nil
	}

	fa := func(s float64) geom.Point2D {
		p, _ := a.PointAtAbscissa(s)
		return p
	}
	fb := func(s float64) geom.Point2D {
		p, _ := b.PointAtAbscissa(s)
		return p
	}
	pts := curves.RefineIntersections2D(fa, 0, a.Length(), fb, 0, b.Length(), tol)
	var out []geom.Point2D
	for _, p := range pts {
		if a.PointBelongs(p, tol) && b.PointBelongs(p, tol) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Intersections3D returns the points where two spatial edges meet.
func Intersections3D(a, b Edge3D, tol float64) ([]geom.Point3D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.BoundingBox().Intersects(b.BoundingBox(), tol) {
		return nil, nil
	}
	ca, okA := carrier3D(a)
	cb, okB := carrier3D(b)
	if okA && okB {
		pts, err := curves.Intersections3D(ca, cb, tol)
		if err != nil {
			return nil, err
		}
		var out []geom.Point3D
		for _, p := range pts {
			if a.PointBelongs(p, tol) && b.PointBelongs(p, tol) {
				out = append(out, p)
			}
		}
		return out, nil
	}

	fa := func(s float64) geom.Point3D {
		p, _ := a.PointAtAbscissa(s)
		return p
	}
	fb := func(s float64) geom.Point3D {
		p, _ := b.PointAtAbscissa(s)
		return p
	}
	pts := curves.RefineIntersections3D(fa, 0, a.Length(), fb, 0, b.Length(), tol)
	var out []geom.Point3D
	for _, p := range pts {
		if a.PointBelongs(p, tol) && b.PointBelongs(p, tol) {
			out = append(out, p)
		}
	}
	return out, nil
}

// tangent2D approximates the unit tangent of e at abscissa s by central
// difference, falling back to one-sided steps at the ends.
func tangent2D(e Edge2D, s float64) geom.Vector2D {
	h := e.Length() * 1e-6
	lo, hi := s-h, s+h
	if lo < 0 {
		lo = 0
	}
	if hi > e.Length() {
		hi = e.Length()
	}
	p0, _ := e.PointAtAbscissa(lo)
	p1, _ := e.PointAtAbscissa(hi)
	return p1.Sub(p0).Unit()
}

func tangent3D(e Edge3D, s float64) geom.Vector3D {
	h := e.Length() * 1e-6
	lo, hi := s-h, s+h
	if lo < 0 {
		lo = 0
	}
	if hi > e.Length() {
		hi = e.Length()
	}
	p0, _ := e.PointAtAbscissa(lo)
	p1, _ := e.PointAtAbscissa(hi)
	return p1.Sub(p0).Unit()
}

// Crossings2D returns the intersections where the edges genuinely cross:
// endpoint touches and tangential contacts are filtered out.
func Crossings2D(a, b Edge2D, tol float64) ([]geom.Point2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	pts, err := Intersections2D(a, b, tol)
	if err != nil {
		return nil, err
	}
	var out []geom.Point2D
	for _, p := range pts {
		sa, err := a.Abscissa(p, tol)
		if err != nil {
			continue
		}
		sb, err := b.Abscissa(p, tol)
		if err != nil {
			continue
		}
		if sa <= tol || sa >= a.Length()-tol || sb <= tol || sb >= b.Length()-tol {
			continue
		}
		da, errA := DirectionAt2D(a, sa)
		db, errB := DirectionAt2D(b, sb)
		if errA != nil || errB != nil {
			continue
		}
		if da.IsColinearTo(db, tol) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Crossings3D returns the intersections where the spatial edges genuinely
// cross.
func Crossings3D(a, b Edge3D, tol float64) ([]geom.Point3D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	pts, err := Intersections3D(a, b, tol)
	if err != nil {
		return nil, err
	}
	var out []geom.Point3D
	for _, p := range pts {
		sa, err := a.Abscissa(p, tol)
		if err != nil {
			continue
		}
		sb, err := b.Abscissa(p, tol)
		if err != nil {
			continue
		}
		if sa <= tol || sa >= a.Length()-tol || sb <= tol || sb >= b.Length()-tol {
			continue
		}
		da, errA := DirectionAt3D(a, sa)
		db, errB := DirectionAt3D(b, sb)
		if errA != nil || errB != nil {
			continue
		}
		if da.IsColinearTo(db, tol) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
