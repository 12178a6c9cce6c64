package edges

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// LineSegment2D is the straight edge between two distinct points.
type LineSegment2D struct {
	A, B geom.Point2D
}

// NewLineSegment2D returns the segment from a to b.
func NewLineSegment2D(a, b geom.Point2D) (LineSegment2D, error) {
	if a.Distance(b) == 0 {
		return LineSegment2D{}, fmt.Errorf("%w: coincident endpoints %v", ErrDegenerate, a)
	}
	return LineSegment2D{A: a, B: b}, nil
}

func (s LineSegment2D) Kind() curves.Kind    { return curves.KindLine }
func (s LineSegment2D) Start() geom.Point2D  { return s.A }
func (s LineSegment2D) End() geom.Point2D    { return s.B }
func (s LineSegment2D) Length() float64      { return s.A.Distance(s.B) }
func (s LineSegment2D) Dir() geom.Vector2D   { return s.B.Sub(s.A).Unit() }

// Line returns the segment's carrier line.
func (s LineSegment2D) Line() curves.Line2D {
	l, _ := curves.NewLine2D(s.A, s.B)
	return l
}

func (s LineSegment2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > s.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on segment of length %v", ErrOutOfRange, abs, s.Length())
	}
	return s.A.Translate(s.Dir().Mul(abs)), nil
}

func (s LineSegment2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !s.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	abs := p.Sub(s.A).Dot(s.Dir())
	return math.Min(math.Max(abs, 0), s.Length()), nil
}

func (s LineSegment2D) PointBelongs(p geom.Point2D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	abs := p.Sub(s.A).Dot(s.Dir())
	if abs < -tol || abs > s.Length()+tol {
		return false
	}
	return s.Line().PointDistance(p) <= tol
}

// PointDistance returns the distance from p to the segment.
func (s LineSegment2D) PointDistance(p geom.Point2D) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// ClosestPoint returns the point of the segment nearest to p.
func (s LineSegment2D) ClosestPoint(p geom.Point2D) geom.Point2D {
	abs := p.Sub(s.A).Dot(s.Dir())
	abs = math.Min(math.Max(abs, 0), s.Length())
	return s.A.Translate(s.Dir().Mul(abs))
}

func (s LineSegment2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i] = s.A.Lerp(s.B, float64(i)/float64(n-1))
	}
	return out
}

func (s LineSegment2D) Reverse() Edge2D {
	return LineSegment2D{A: s.B, B: s.A}
}

func (s LineSegment2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := s.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, s.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := s.A.Translate(s.Dir().Mul(abs))
	return LineSegment2D{A: s.A, B: mid}, LineSegment2D{A: mid, B: s.B}, nil
}

func (s LineSegment2D) BoundingBox() geom.Rect {
	return geom.NewRectFromPoints(s.A, s.B)
}

// MergeWith joins two collinear segments sharing an endpoint. The result runs
// from the receiver's free end to the other's.
func (s LineSegment2D) MergeWith(o LineSegment2D, tol float64) (LineSegment2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !s.Dir().IsColinearTo(o.Dir(), tol) {
		return LineSegment2D{}, fmt.Errorf("%w: directions differ", ErrCannotMerge)
	}
	switch {
	case s.B.IsClose(o.A, tol):
		return LineSegment2D{A: s.A, B: o.B}, nil
	case s.B.IsClose(o.B, tol):
		return LineSegment2D{A: s.A, B: o.A}, nil
	case s.A.IsClose(o.A, tol):
		return LineSegment2D{A: o.B, B: s.B}, nil
	case s.A.IsClose(o.B, tol):
		return LineSegment2D{A: o.A, B: s.B}, nil
	}
	return LineSegment2D{}, fmt.Errorf("%w: no shared endpoint", ErrCannotMerge)
}

// LineSegment3D is the straight edge between two distinct points in space.
type LineSegment3D struct {
	A, B geom.Point3D
}

// NewLineSegment3D returns the segment from a to b.
func NewLineSegment3D(a, b geom.Point3D) (LineSegment3D, error) {
	if a.Distance(b) == 0 {
		return LineSegment3D{}, fmt.Errorf("%w: coincident endpoints %v", ErrDegenerate, a)
	}
	return LineSegment3D{A: a, B: b}, nil
}

func (s LineSegment3D) Kind() curves.Kind   { return curves.KindLine }
func (s LineSegment3D) Start() geom.Point3D { return s.A }
func (s LineSegment3D) End() geom.Point3D   { return s.B }
func (s LineSegment3D) Length() float64     { return s.A.Distance(s.B) }
func (s LineSegment3D) Dir() geom.Vector3D  { return s.B.Sub(s.A).Unit() }

// Line returns the segment's carrier line.
func (s LineSegment3D) Line() curves.Line3D {
	l, _ := curves.NewLine3D(s.A, s.B)
	return l
}

func (s LineSegment3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > s.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on segment of length %v", ErrOutOfRange, abs, s.Length())
	}
	return s.A.Translate(s.Dir().Mul(abs)), nil
}

func (s LineSegment3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !s.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	abs := p.Sub(s.A).Dot(s.Dir())
	return math.Min(math.Max(abs, 0), s.Length()), nil
}

func (s LineSegment3D) PointBelongs(p geom.Point3D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	abs := p.Sub(s.A).Dot(s.Dir())
	if abs < -tol || abs > s.Length()+tol {
		return false
	}
	return s.Line().PointDistance(p) <= tol
}

// PointDistance returns the distance from p to the segment.
func (s LineSegment3D) PointDistance(p geom.Point3D) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// ClosestPoint returns the point of the segment nearest to p.
func (s LineSegment3D) ClosestPoint(p geom.Point3D) geom.Point3D {
	abs := p.Sub(s.A).Dot(s.Dir())
	abs = math.Min(math.Max(abs, 0), s.Length())
	return s.A.Translate(s.Dir().Mul(abs))
}

// MinimumDistance returns the smallest distance between two segments.
func (s LineSegment3D) MinimumDistance(o LineSegment3D) float64 {
	p1, p2 := s.Line().MinimumDistancePoints(o.Line())
	// Clamp the line solution back onto both segments.
	p1 = s.ClosestPoint(p1)
	p2 = o.ClosestPoint(p2)
	d := p1.Distance(p2)
	for _, cand := range []float64{
		s.PointDistance(o.A), s.PointDistance(o.B),
		o.PointDistance(s.A), o.PointDistance(s.B),
	} {
		if cand < d {
			d = cand
		}
	}
	return d
}

func (s LineSegment3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i] = s.A.Lerp(s.B, float64(i)/float64(n-1))
	}
	return out
}

func (s LineSegment3D) Reverse() Edge3D {
	return LineSegment3D{A: s.B, B: s.A}
}

func (s LineSegment3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := s.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, s.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := s.A.Translate(s.Dir().Mul(abs))
	return LineSegment3D{A: s.A, B: mid}, LineSegment3D{A: mid, B: s.B}, nil
}

func (s LineSegment3D) BoundingBox() geom.Box {
	return geom.NewBoxFromPoints(s.A, s.B)
}

// To2D projects the segment into the plane spanned by u and v at origin.
func (s LineSegment3D) To2D(origin geom.Point3D, u, v geom.Vector3D) (LineSegment2D, error) {
	return NewLineSegment2D(s.A.To2D(origin, u, v), s.B.To2D(origin, u, v))
}
