package edges

import (
	"fmt"
	"math"
	"sync"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/internal/solve"
	"github.com/brepkit/curve/nurbs"
)

// periodicSeamTol clamps inverted parameters that land within this distance
// of a closed curve's seam back onto the seam.
const periodicSeamTol = 2e-6

// BSplineCurve2D is a bounded planar B-spline edge. The zero value is not
// usable; build one with NewBSplineCurve2D or the fitting constructors.
type BSplineCurve2D struct {
	Curve *nurbs.Curve

	lengthOnce sync.Once
	length     float64
}

// NewBSplineCurve2D wraps a two-dimensional spline as an edge.
func NewBSplineCurve2D(c *nurbs.Curve) (*BSplineCurve2D, error) {
	if c.Dimension() != 2 {
		return nil, fmt.Errorf("%w: want dimension 2, got %d", nurbs.ErrBadInput, c.Dimension())
	}
	return &BSplineCurve2D{Curve: c}, nil
}

// NewBSplineCurve2DFromPoints interpolates a spline of the given degree
// through the points.
func NewBSplineCurve2DFromPoints(points []geom.Point2D, degree int, centripetal bool) (*BSplineCurve2D, error) {
	c, err := nurbs.Interpolate(pts2ToSlices(points), degree, centripetal)
	if err != nil {
		return nil, err
	}
	return &BSplineCurve2D{Curve: c}, nil
}

// ApproximateBSplineCurve2D fits a spline of the given degree and control
// point count through the points in the least-squares sense.
func ApproximateBSplineCurve2D(points []geom.Point2D, degree, numCtrlPts int, centripetal bool) (*BSplineCurve2D, error) {
	c, err := nurbs.Approximate(pts2ToSlices(points), degree, numCtrlPts, centripetal)
	if err != nil {
		return nil, err
	}
	return &BSplineCurve2D{Curve: c}, nil
}

func (b *BSplineCurve2D) Kind() curves.Kind { return curves.KindBSpline }

func (b *BSplineCurve2D) Start() geom.Point2D {
	u0, _ := b.Curve.Domain()
	return pt2(b.Curve.Evaluate(u0))
}

func (b *BSplineCurve2D) End() geom.Point2D {
	_, u1 := b.Curve.Domain()
	return pt2(b.Curve.Evaluate(u1))
}

// IsClosed reports whether the edge's endpoints coincide.
func (b *BSplineCurve2D) IsClosed() bool {
	return b.Start().IsClose(b.End(), periodicSeamTol)
}

func (b *BSplineCurve2D) Length() float64 {
	b.lengthOnce.Do(func() {
		b.length = b.Curve.Length(1e-9)
	})
	return b.length
}

func (b *BSplineCurve2D) speed(u float64) float64 {
	d := b.Curve.Derivatives(u, 1)
	return math.Hypot(d[1][0], d[1][1])
}

func (b *BSplineCurve2D) arcLengthTo(u float64) float64 {
	u0, _ := b.Curve.Domain()
	return solve.Integrate(b.speed, u0, u, 1e-9)
}

// parameterAtAbscissa inverts the arc length function.
func (b *BSplineCurve2D) parameterAtAbscissa(abs float64) float64 {
	u0, u1 := b.Curve.Domain()
	if abs <= 0 {
		return u0
	}
	if abs >= b.Length() {
		return u1
	}
	f := func(u float64) float64 { return b.arcLengthTo(u) - abs }
	return solve.ITP(f, u0, u1, 1e-10, 1, 0.2/(u1-u0), -abs, b.Length()-abs)
}

func (b *BSplineCurve2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > b.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, b.Length())
	}
	return pt2(b.Curve.Evaluate(b.parameterAtAbscissa(abs))), nil
}

// parameterOf locates the parameter whose point is nearest to p. The sampled
// Newton inversion is tried first; when its residual exceeds tol, a golden
// section search over the whole domain and then over every Bezier patch
// refines it. The best parameter and residual found are returned regardless
// of tol.
func (b *BSplineCurve2D) parameterOf(p geom.Point2D, tol float64) (float64, float64) {
	target := []float64{p.X, p.Y}
	bestU, bestD := b.Curve.PointInversion(target, b.IsClosed())
	if bestD <= tol {
		return bestU, bestD
	}

	dist := func(u float64) float64 {
		q := b.Curve.Evaluate(u)
		return math.Hypot(q[0]-p.X, q[1]-p.Y)
	}
	u0, u1 := b.Curve.Domain()
	if u, d := solve.MinimizeBounded(dist, u0, u1, 1e-12); d < bestD {
		bestU, bestD = u, d
	}
	if bestD <= tol {
		return bestU, bestD
	}

	for _, patch := range b.Curve.Decompose() {
		u, d := patch.Curve.PointInversion(target, false)
		if d < bestD {
			// Map the patch parameter back into the full curve's domain.
			lo, hi := patch.Curve.Domain()
			p0, p1 := patch.Range[0], patch.Range[1]
			bestU = p0 + (u-lo)/(hi-lo)*(p1-p0)
			bestD = d
		}
	}
	return bestU, bestD
}

func (b *BSplineCurve2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	u, d := b.parameterOf(p, tol)
	if d > tol {
		return 0, fmt.Errorf("%w: %v at distance %v", ErrNotOnEdge, p, d)
	}
	u0, u1 := b.Curve.Domain()
	if b.IsClosed() && u1-u <= periodicSeamTol {
		u = u0
	}
	return b.arcLengthTo(u), nil
}

func (b *BSplineCurve2D) PointBelongs(p geom.Point2D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	_, d := b.parameterOf(p, tol)
	return d <= tol
}

func (b *BSplineCurve2D) DiscretizationPoints(n int) []geom.Point2D {
	return slicesToPts2(b.Curve.Sample(n))
}

// TangentAt returns the unit tangent at the given abscissa.
func (b *BSplineCurve2D) TangentAt(abs float64) (geom.Vector2D, error) {
	if abs < -DefaultTolerance || abs > b.Length()+DefaultTolerance {
		return geom.Vector2D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, b.Length())
	}
	d := b.Curve.Derivatives(b.parameterAtAbscissa(abs), 1)
	return geom.V2(d[1][0], d[1][1]).Unit(), nil
}

func (b *BSplineCurve2D) Reverse() Edge2D {
	return &BSplineCurve2D{Curve: b.Curve.Reverse()}
}

func (b *BSplineCurve2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, b.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	left, right, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, nil, err
	}
	return &BSplineCurve2D{Curve: left}, &BSplineCurve2D{Curve: right}, nil
}

// CutAfter discards the portion of the edge after p.
func (b *BSplineCurve2D) CutAfter(p geom.Point2D) (*BSplineCurve2D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if abs >= b.Length()-DefaultTolerance {
		return &BSplineCurve2D{Curve: b.Curve.Copy()}, nil
	}
	if abs <= DefaultTolerance {
		return nil, fmt.Errorf("%w: cut at start leaves nothing", ErrDegenerate)
	}
	left, _, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, err
	}
	return &BSplineCurve2D{Curve: left}, nil
}

// CutBefore discards the portion of the edge before p.
func (b *BSplineCurve2D) CutBefore(p geom.Point2D) (*BSplineCurve2D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if abs <= DefaultTolerance {
		return &BSplineCurve2D{Curve: b.Curve.Copy()}, nil
	}
	if abs >= b.Length()-DefaultTolerance {
		return nil, fmt.Errorf("%w: cut at end leaves nothing", ErrDegenerate)
	}
	_, right, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, err
	}
	return &BSplineCurve2D{Curve: right}, nil
}

// MergeWith joins two splines whose endpoints meet, interpolating a single
// spline through both sets of sample points.
func (b *BSplineCurve2D) MergeWith(o *BSplineCurve2D, tol float64) (*BSplineCurve2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	first, second := b, o
	switch {
	case b.End().IsClose(o.Start(), tol):
	case b.End().IsClose(o.End(), tol):
		second = o.Reverse().(*BSplineCurve2D)
	case b.Start().IsClose(o.End(), tol):
		first, second = o, b
	case b.Start().IsClose(o.Start(), tol):
		first = o.Reverse().(*BSplineCurve2D)
		second = b
	default:
		return nil, fmt.Errorf("%w: no shared endpoint", ErrCannotMerge)
	}
	pts := first.DiscretizationPoints(25)
	pts = append(pts, second.DiscretizationPoints(25)[1:]...)
	degree := first.Curve.Degree
	if second.Curve.Degree > degree {
		degree = second.Curve.Degree
	}
	return NewBSplineCurve2DFromPoints(pts, degree, false)
}

// LineCrossings returns the points where the spline crosses an infinite
// line, located by sign changes over a 50-chord polyline.
func (b *BSplineCurve2D) LineCrossings(l curves.Line2D) []geom.Point2D {
	pts := b.DiscretizationPoints(50)
	var out []geom.Point2D
	for i := 0; i+1 < len(pts); i++ {
		s1 := pts[i].Sub(l.Point).Cross(l.Dir)
		s2 := pts[i+1].Sub(l.Point).Cross(l.Dir)
		if s1 == s2 || s1*s2 > 0 {
			continue
		}
		out = append(out, pts[i].Lerp(pts[i+1], s1/(s1-s2)))
	}
	return out
}

// Simplified replaces the edge with a line segment or arc when one fits its
// sample points within tol, and returns the edge itself otherwise.
func (b *BSplineCurve2D) Simplified(tol float64) Edge2D {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	pts := b.DiscretizationPoints(20)
	if seg, err := NewLineSegment2D(b.Start(), b.End()); err == nil {
		ok := true
		for _, p := range pts {
			if seg.PointDistance(p) > tol {
				ok = false
				break
			}
		}
		if ok {
			return seg
		}
	}
	if arc, err := NewArc2DFromThreePoints(b.Start(), pts[len(pts)/2], b.End()); err == nil {
		ok := true
		for _, p := range pts {
			if !arc.Circle.PointBelongs(p, tol) {
				ok = false
				break
			}
		}
		if ok {
			return arc
		}
	}
	return b
}

// BoundingBox bounds the edge by its control polygon.
func (b *BSplineCurve2D) BoundingBox() geom.Rect {
	return geom.RectFromPoints(slicesToPts2(b.Curve.ControlPoints))
}

// BSplineCurve3D is a bounded B-spline edge in space.
type BSplineCurve3D struct {
	Curve *nurbs.Curve

	lengthOnce sync.Once
	length     float64
}

// NewBSplineCurve3D wraps a three-dimensional spline as an edge.
func NewBSplineCurve3D(c *nurbs.Curve) (*BSplineCurve3D, error) {
	if c.Dimension() != 3 {
		return nil, fmt.Errorf("%w: want dimension 3, got %d", nurbs.ErrBadInput, c.Dimension())
	}
	return &BSplineCurve3D{Curve: c}, nil
}

// NewBSplineCurve3DFromPoints interpolates a spline of the given degree
// through the points.
func NewBSplineCurve3DFromPoints(points []geom.Point3D, degree int, centripetal bool) (*BSplineCurve3D, error) {
	c, err := nurbs.Interpolate(pts3ToSlices(points), degree, centripetal)
	if err != nil {
		return nil, err
	}
	return &BSplineCurve3D{Curve: c}, nil
}

// ApproximateBSplineCurve3D fits a spline of the given degree and control
// point count through the points in the least-squares sense.
func ApproximateBSplineCurve3D(points []geom.Point3D, degree, numCtrlPts int, centripetal bool) (*BSplineCurve3D, error) {
	c, err := nurbs.Approximate(pts3ToSlices(points), degree, numCtrlPts, centripetal)
	if err != nil {
		return nil, err
	}
	return &BSplineCurve3D{Curve: c}, nil
}

func (b *BSplineCurve3D) Kind() curves.Kind { return curves.KindBSpline }

func (b *BSplineCurve3D) Start() geom.Point3D {
	u0, _ := b.Curve.Domain()
	return pt3(b.Curve.Evaluate(u0))
}

func (b *BSplineCurve3D) End() geom.Point3D {
	_, u1 := b.Curve.Domain()
	return pt3(b.Curve.Evaluate(u1))
}

// IsClosed reports whether the edge's endpoints coincide.
func (b *BSplineCurve3D) IsClosed() bool {
	return b.Start().IsClose(b.End(), periodicSeamTol)
}

func (b *BSplineCurve3D) Length() float64 {
	b.lengthOnce.Do(func() {
		b.length = b.Curve.Length(1e-9)
	})
	return b.length
}

func (b *BSplineCurve3D) speed(u float64) float64 {
	d := b.Curve.Derivatives(u, 1)
	return math.Sqrt(d[1][0]*d[1][0] + d[1][1]*d[1][1] + d[1][2]*d[1][2])
}

func (b *BSplineCurve3D) arcLengthTo(u float64) float64 {
	u0, _ := b.Curve.Domain()
	return solve.Integrate(b.speed, u0, u, 1e-9)
}

func (b *BSplineCurve3D) parameterAtAbscissa(abs float64) float64 {
	u0, u1 := b.Curve.Domain()
	if abs <= 0 {
		return u0
	}
	if abs >= b.Length() {
		return u1
	}
	f := func(u float64) float64 { return b.arcLengthTo(u) - abs }
	return solve.ITP(f, u0, u1, 1e-10, 1, 0.2/(u1-u0), -abs, b.Length()-abs)
}

func (b *BSplineCurve3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > b.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, b.Length())
	}
	return pt3(b.Curve.Evaluate(b.parameterAtAbscissa(abs))), nil
}

func (b *BSplineCurve3D) parameterOf(p geom.Point3D, tol float64) (float64, float64) {
	target := []float64{p.X, p.Y, p.Z}
	bestU, bestD := b.Curve.PointInversion(target, b.IsClosed())
	if bestD <= tol {
		return bestU, bestD
	}

	dist := func(u float64) float64 {
		q := b.Curve.Evaluate(u)
		return math.Sqrt((q[0]-p.X)*(q[0]-p.X) + (q[1]-p.Y)*(q[1]-p.Y) + (q[2]-p.Z)*(q[2]-p.Z))
	}
	u0, u1 := b.Curve.Domain()
	if u, d := solve.MinimizeBounded(dist, u0, u1, 1e-12); d < bestD {
		bestU, bestD = u, d
	}
	if bestD <= tol {
		return bestU, bestD
	}

	for _, patch := range b.Curve.Decompose() {
		u, d := patch.Curve.PointInversion(target, false)
		if d < bestD {
			lo, hi := patch.Curve.Domain()
			p0, p1 := patch.Range[0], patch.Range[1]
			bestU = p0 + (u-lo)/(hi-lo)*(p1-p0)
			bestD = d
		}
	}
	return bestU, bestD
}

func (b *BSplineCurve3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	u, d := b.parameterOf(p, tol)
	if d > tol {
		return 0, fmt.Errorf("%w: %v at distance %v", ErrNotOnEdge, p, d)
	}
	u0, u1 := b.Curve.Domain()
	if b.IsClosed() && u1-u <= periodicSeamTol {
		u = u0
	}
	return b.arcLengthTo(u), nil
}

func (b *BSplineCurve3D) PointBelongs(p geom.Point3D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	_, d := b.parameterOf(p, tol)
	return d <= tol
}

func (b *BSplineCurve3D) DiscretizationPoints(n int) []geom.Point3D {
	return slicesToPts3(b.Curve.Sample(n))
}

// TangentAt returns the unit tangent at the given abscissa.
func (b *BSplineCurve3D) TangentAt(abs float64) (geom.Vector3D, error) {
	if abs < -DefaultTolerance || abs > b.Length()+DefaultTolerance {
		return geom.Vector3D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, b.Length())
	}
	d := b.Curve.Derivatives(b.parameterAtAbscissa(abs), 1)
	return geom.V3(d[1][0], d[1][1], d[1][2]).Unit(), nil
}

func (b *BSplineCurve3D) Reverse() Edge3D {
	return &BSplineCurve3D{Curve: b.Curve.Reverse()}
}

func (b *BSplineCurve3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, b.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	left, right, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, nil, err
	}
	return &BSplineCurve3D{Curve: left}, &BSplineCurve3D{Curve: right}, nil
}

// CutAfter discards the portion of the edge after p.
func (b *BSplineCurve3D) CutAfter(p geom.Point3D) (*BSplineCurve3D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if abs >= b.Length()-DefaultTolerance {
		return &BSplineCurve3D{Curve: b.Curve.Copy()}, nil
	}
	if abs <= DefaultTolerance {
		return nil, fmt.Errorf("%w: cut at start leaves nothing", ErrDegenerate)
	}
	left, _, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, err
	}
	return &BSplineCurve3D{Curve: left}, nil
}

// CutBefore discards the portion of the edge before p.
func (b *BSplineCurve3D) CutBefore(p geom.Point3D) (*BSplineCurve3D, error) {
	abs, err := b.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	if abs <= DefaultTolerance {
		return &BSplineCurve3D{Curve: b.Curve.Copy()}, nil
	}
	if abs >= b.Length()-DefaultTolerance {
		return nil, fmt.Errorf("%w: cut at end leaves nothing", ErrDegenerate)
	}
	_, right, err := b.Curve.SplitAt(b.parameterAtAbscissa(abs))
	if err != nil {
		return nil, err
	}
	return &BSplineCurve3D{Curve: right}, nil
}

// MergeWith joins two splines whose endpoints meet.
func (b *BSplineCurve3D) MergeWith(o *BSplineCurve3D, tol float64) (*BSplineCurve3D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	first, second := b, o
	switch {
	case b.End().IsClose(o.Start(), tol):
	case b.End().IsClose(o.End(), tol):
		second = o.Reverse().(*BSplineCurve3D)
	case b.Start().IsClose(o.End(), tol):
		first, second = o, b
	case b.Start().IsClose(o.Start(), tol):
		first = o.Reverse().(*BSplineCurve3D)
		second = b
	default:
		return nil, fmt.Errorf("%w: no shared endpoint", ErrCannotMerge)
	}
	pts := first.DiscretizationPoints(25)
	pts = append(pts, second.DiscretizationPoints(25)[1:]...)
	degree := first.Curve.Degree
	if second.Curve.Degree > degree {
		degree = second.Curve.Degree
	}
	return NewBSplineCurve3DFromPoints(pts, degree, false)
}

// BoundingBox bounds the edge by its control polygon.
func (b *BSplineCurve3D) BoundingBox() geom.Box {
	return geom.BoxFromPoints(slicesToPts3(b.Curve.ControlPoints))
}

func pt2(v []float64) geom.Point2D { return geom.Pt2(v[0], v[1]) }
func pt3(v []float64) geom.Point3D { return geom.Pt3(v[0], v[1], v[2]) }

func pts2ToSlices(pts []geom.Point2D) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}

func slicesToPts2(v [][]float64) []geom.Point2D {
	out := make([]geom.Point2D, len(v))
	for i, p := range v {
		out[i] = geom.Pt2(p[0], p[1])
	}
	return out
}

func pts3ToSlices(pts []geom.Point3D) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y, p.Z}
	}
	return out
}

func slicesToPts3(v [][]float64) []geom.Point3D {
	out := make([]geom.Point3D, len(v))
	for i, p := range v {
		out[i] = geom.Pt3(p[0], p[1], p[2])
	}
	return out
}
