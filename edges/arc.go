package edges

import (
	"fmt"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// Arc2D is a circle portion traversed from SA to EA in the circle's own
// orientation. Abscissas are measured along the circle, so the arc length is
// the wrapped difference EA-SA.
type Arc2D struct {
	Circle curves.Circle2D
	SA, EA float64
}

// NewArc2D returns the arc of c running from start to end.
func NewArc2D(c curves.Circle2D, start, end geom.Point2D) (Arc2D, error) {
	if !c.PointBelongs(start, DefaultTolerance) || !c.PointBelongs(end, DefaultTolerance) {
		return Arc2D{}, fmt.Errorf("%w: endpoint off the circle", ErrNotOnEdge)
	}
	sa, _ := c.Abscissa(start)
	ea, _ := c.Abscissa(end)
	if start.IsClose(end, DefaultTolerance) {
		return Arc2D{}, fmt.Errorf("%w: coincident arc endpoints", ErrDegenerate)
	}
	return Arc2D{Circle: c, SA: sa, EA: ea}, nil
}

// NewArc2DFromThreePoints builds the arc from p1 through p2 to p3. The
// circle's orientation follows the traversal order, so p2 always lies on the
// arc.
func NewArc2DFromThreePoints(p1, p2, p3 geom.Point2D) (Arc2D, error) {
	c, err := curves.NewCircle2DFromThreePoints(p1, p2, p3)
	if err != nil {
		return Arc2D{}, err
	}
	return NewArc2D(c, p1, p3)
}

func (a Arc2D) Kind() curves.Kind { return curves.KindCircle }

func (a Arc2D) Start() geom.Point2D {
	p, _ := a.Circle.PointAtAbscissa(a.SA)
	return p
}

func (a Arc2D) End() geom.Point2D {
	p, _ := a.Circle.PointAtAbscissa(a.EA)
	return p
}

func (a Arc2D) Length() float64 {
	l := a.EA - a.SA
	if l <= 0 {
		l += a.Circle.Length()
	}
	return l
}

// Angle returns the swept angle in radians.
func (a Arc2D) Angle() float64 { return a.Length() / a.Circle.Radius }

func (a Arc2D) Center() geom.Point2D { return a.Circle.Center() }
func (a Arc2D) Radius() float64      { return a.Circle.Radius }

func (a Arc2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on arc of length %v", ErrOutOfRange, abs, a.Length())
	}
	s := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return a.Circle.PointAtAbscissa(s)
}

func (a Arc2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Circle.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, _ := a.Circle.Abscissa(p)
	abs := wrapInterval(s-a.SA, a.Circle.Length(), tol)
	if abs > a.Length()+tol {
		return 0, fmt.Errorf("%w: %v outside the arc", ErrNotOnEdge, p)
	}
	if abs > a.Length() {
		abs = a.Length()
	}
	return abs, nil
}

func (a Arc2D) PointBelongs(p geom.Point2D, tol float64) bool {
	_, err := a.Abscissa(p, tol)
	return err == nil
}

func (a Arc2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

// Reverse returns the same arc traversed the other way, on the circle with
// flipped orientation.
func (a Arc2D) Reverse() Edge2D {
	rc := curves.Circle2D{Frame: a.Circle.Frame.Reverse(), Radius: a.Circle.Radius}
	sa, _ := rc.Abscissa(a.End())
	ea, _ := rc.Abscissa(a.Start())
	return Arc2D{Circle: rc, SA: sa, EA: ea}
}

// Complementary returns the rest of the circle, from end back to start.
func (a Arc2D) Complementary() Arc2D {
	return Arc2D{Circle: a.Circle, SA: a.EA, EA: a.SA}
}

// MiddlePoint returns the point halfway along the arc.
func (a Arc2D) MiddlePoint() geom.Point2D {
	p, _ := a.PointAtAbscissa(a.Length() / 2)
	return p
}

// SplitAtAbscissa cuts the arc at an interior arc length.
func (a Arc2D) SplitAtAbscissa(abs float64) (Arc2D, Arc2D, error) {
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return Arc2D{}, Arc2D{}, err
	}
	mid := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return Arc2D{Circle: a.Circle, SA: a.SA, EA: mid},
		Arc2D{Circle: a.Circle, SA: mid, EA: a.EA}, nil
}

func (a Arc2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return Arc2D{Circle: a.Circle, SA: a.SA, EA: mid},
		Arc2D{Circle: a.Circle, SA: mid, EA: a.EA}, nil
}

func (a Arc2D) BoundingBox() geom.Rect {
	c := a.Center()
	r := a.Circle.Radius
	box := geom.NewRectFromPoints(a.Start(), a.End())
	// Extend past each quadrant extreme the arc crosses.
	for _, q := range []geom.Point2D{
		geom.Pt2(c.X+r, c.Y), geom.Pt2(c.X, c.Y+r),
		geom.Pt2(c.X-r, c.Y), geom.Pt2(c.X, c.Y-r),
	} {
		if a.PointBelongs(q, DefaultTolerance) {
			box = box.UnionPoint(q)
		}
	}
	return box
}

// FullArc2D is a closed circular edge: the whole circle with a seam at Seam.
type FullArc2D struct {
	Circle curves.Circle2D
	Seam   geom.Point2D
}

// NewFullArc2D returns the closed circular edge starting and ending at seam.
func NewFullArc2D(c curves.Circle2D, seam geom.Point2D) (FullArc2D, error) {
	if !c.PointBelongs(seam, DefaultTolerance) {
		return FullArc2D{}, fmt.Errorf("%w: seam off the circle", ErrNotOnEdge)
	}
	return FullArc2D{Circle: c, Seam: seam}, nil
}

func (a FullArc2D) Kind() curves.Kind    { return curves.KindCircle }
func (a FullArc2D) Start() geom.Point2D  { return a.Seam }
func (a FullArc2D) End() geom.Point2D    { return a.Seam }
func (a FullArc2D) Length() float64      { return a.Circle.Length() }
func (a FullArc2D) Center() geom.Point2D { return a.Circle.Center() }
func (a FullArc2D) Radius() float64      { return a.Circle.Radius }

func (a FullArc2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, a.Length())
	}
	sa, _ := a.Circle.Abscissa(a.Seam)
	return a.Circle.PointAtAbscissa(wrapInterval(sa+abs, a.Length(), 0))
}

func (a FullArc2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Circle.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, _ := a.Circle.Abscissa(p)
	sa, _ := a.Circle.Abscissa(a.Seam)
	return wrapInterval(s-sa, a.Length(), tol), nil
}

func (a FullArc2D) PointBelongs(p geom.Point2D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return a.Circle.PointBelongs(p, tol)
}

func (a FullArc2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a FullArc2D) Reverse() Edge2D {
	return FullArc2D{
		Circle: curves.Circle2D{Frame: a.Circle.Frame.Reverse(), Radius: a.Circle.Radius},
		Seam:   a.Seam,
	}
}

// SplitAt cuts the closed edge at p, yielding the two arcs between the seam
// and p.
func (a FullArc2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	first, err := NewArc2D(a.Circle, a.Seam, p)
	if err != nil {
		return nil, nil, err
	}
	second, err := NewArc2D(a.Circle, p, a.Seam)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (a FullArc2D) BoundingBox() geom.Rect {
	return a.Circle.BoundingBox()
}

// Arc3D is a circle portion in space, traversed from SA to EA in the
// circle's orientation.
type Arc3D struct {
	Circle curves.Circle3D
	SA, EA float64
}

// NewArc3D returns the arc of c running from start to end.
func NewArc3D(c curves.Circle3D, start, end geom.Point3D) (Arc3D, error) {
	if !c.PointBelongs(start, DefaultTolerance) || !c.PointBelongs(end, DefaultTolerance) {
		return Arc3D{}, fmt.Errorf("%w: endpoint off the circle", ErrNotOnEdge)
	}
	if start.IsClose(end, DefaultTolerance) {
		return Arc3D{}, fmt.Errorf("%w: coincident arc endpoints", ErrDegenerate)
	}
	sa, _ := c.Abscissa(start)
	ea, _ := c.Abscissa(end)
	return Arc3D{Circle: c, SA: sa, EA: ea}, nil
}

// NewArc3DFromThreePoints builds the arc from p1 through p2 to p3.
func NewArc3DFromThreePoints(p1, p2, p3 geom.Point3D) (Arc3D, error) {
	c, err := curves.NewCircle3DFromThreePoints(p1, p2, p3)
	if err != nil {
		return Arc3D{}, err
	}
	a, err := NewArc3D(c, p1, p3)
	if err != nil {
		return Arc3D{}, err
	}
	// The three-point circle's orientation is arbitrary; flip it when the
	// middle point falls on the complementary span.
	if !a.PointBelongs(p2, DefaultTolerance) {
		rc := curves.Circle3D{Frame: c.Frame.Reverse(), Radius: c.Radius}
		return NewArc3D(rc, p1, p3)
	}
	return a, nil
}

func (a Arc3D) Kind() curves.Kind { return curves.KindCircle }

func (a Arc3D) Start() geom.Point3D {
	p, _ := a.Circle.PointAtAbscissa(a.SA)
	return p
}

func (a Arc3D) End() geom.Point3D {
	p, _ := a.Circle.PointAtAbscissa(a.EA)
	return p
}

func (a Arc3D) Length() float64 {
	l := a.EA - a.SA
	if l <= 0 {
		l += a.Circle.Length()
	}
	return l
}

// Angle returns the swept angle in radians.
func (a Arc3D) Angle() float64 { return a.Length() / a.Circle.Radius }

func (a Arc3D) Center() geom.Point3D { return a.Circle.Center() }
func (a Arc3D) Radius() float64      { return a.Circle.Radius }

// Normal returns the circle plane's normal.
func (a Arc3D) Normal() geom.Vector3D { return a.Circle.Normal() }

func (a Arc3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on arc of length %v", ErrOutOfRange, abs, a.Length())
	}
	s := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return a.Circle.PointAtAbscissa(s)
}

func (a Arc3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Circle.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, _ := a.Circle.Abscissa(p)
	abs := wrapInterval(s-a.SA, a.Circle.Length(), tol)
	if abs > a.Length()+tol {
		return 0, fmt.Errorf("%w: %v outside the arc", ErrNotOnEdge, p)
	}
	if abs > a.Length() {
		abs = a.Length()
	}
	return abs, nil
}

func (a Arc3D) PointBelongs(p geom.Point3D, tol float64) bool {
	_, err := a.Abscissa(p, tol)
	return err == nil
}

func (a Arc3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a Arc3D) Reverse() Edge3D {
	rc := curves.Circle3D{Frame: a.Circle.Frame.Reverse(), Radius: a.Circle.Radius}
	sa, _ := rc.Abscissa(a.End())
	ea, _ := rc.Abscissa(a.Start())
	return Arc3D{Circle: rc, SA: sa, EA: ea}
}

// Complementary returns the rest of the circle, from end back to start.
func (a Arc3D) Complementary() Arc3D {
	return Arc3D{Circle: a.Circle, SA: a.EA, EA: a.SA}
}

// MiddlePoint returns the point halfway along the arc.
func (a Arc3D) MiddlePoint() geom.Point3D {
	p, _ := a.PointAtAbscissa(a.Length() / 2)
	return p
}

// SplitAtAbscissa cuts the arc at an interior arc length.
func (a Arc3D) SplitAtAbscissa(abs float64) (Arc3D, Arc3D, error) {
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return Arc3D{}, Arc3D{}, err
	}
	mid := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return Arc3D{Circle: a.Circle, SA: a.SA, EA: mid},
		Arc3D{Circle: a.Circle, SA: mid, EA: a.EA}, nil
}

func (a Arc3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := wrapInterval(a.SA+abs, a.Circle.Length(), 0)
	return Arc3D{Circle: a.Circle, SA: a.SA, EA: mid},
		Arc3D{Circle: a.Circle, SA: mid, EA: a.EA}, nil
}

func (a Arc3D) BoundingBox() geom.Box {
	return geom.BoxFromPoints(a.DiscretizationPoints(30))
}

// FullArc3D is a closed circular edge in space with a seam at Seam.
type FullArc3D struct {
	Circle curves.Circle3D
	Seam   geom.Point3D
}

// NewFullArc3D returns the closed circular edge starting and ending at seam.
func NewFullArc3D(c curves.Circle3D, seam geom.Point3D) (FullArc3D, error) {
	if !c.PointBelongs(seam, DefaultTolerance) {
		return FullArc3D{}, fmt.Errorf("%w: seam off the circle", ErrNotOnEdge)
	}
	return FullArc3D{Circle: c, Seam: seam}, nil
}

func (a FullArc3D) Kind() curves.Kind    { return curves.KindCircle }
func (a FullArc3D) Start() geom.Point3D  { return a.Seam }
func (a FullArc3D) End() geom.Point3D    { return a.Seam }
func (a FullArc3D) Length() float64      { return a.Circle.Length() }
func (a FullArc3D) Center() geom.Point3D { return a.Circle.Center() }
func (a FullArc3D) Radius() float64      { return a.Circle.Radius }

func (a FullArc3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, a.Length())
	}
	sa, _ := a.Circle.Abscissa(a.Seam)
	return a.Circle.PointAtAbscissa(wrapInterval(sa+abs, a.Length(), 0))
}

func (a FullArc3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Circle.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, _ := a.Circle.Abscissa(p)
	sa, _ := a.Circle.Abscissa(a.Seam)
	return wrapInterval(s-sa, a.Length(), tol), nil
}

func (a FullArc3D) PointBelongs(p geom.Point3D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return a.Circle.PointBelongs(p, tol)
}

func (a FullArc3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a FullArc3D) Reverse() Edge3D {
	return FullArc3D{
		Circle: curves.Circle3D{Frame: a.Circle.Frame.Reverse(), Radius: a.Circle.Radius},
		Seam:   a.Seam,
	}
}

func (a FullArc3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	first, err := NewArc3D(a.Circle, a.Seam, p)
	if err != nil {
		return nil, nil, err
	}
	second, err := NewArc3D(a.Circle, p, a.Seam)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (a FullArc3D) BoundingBox() geom.Box {
	return a.Circle.BoundingBox()
}
