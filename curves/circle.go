package curves

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/geom"
)

// Circle2D is a full circle in the plane. Its frame fixes the abscissa
// origin, at Frame.Origin + Frame.U·Radius, and the traversal direction:
// a right-handed frame is traversed counterclockwise.
type Circle2D struct {
	Frame  geom.Frame2D
	Radius float64
}

// NewCircle2D returns a counterclockwise circle with the given center and
// radius.
func NewCircle2D(center geom.Point2D, radius float64) (Circle2D, error) {
	if radius <= 0 {
		return Circle2D{}, fmt.Errorf("%w: radius %v", ErrDegenerate, radius)
	}
	return Circle2D{
		Frame:  geom.NewFrame2D(center, geom.V2(1, 0), geom.V2(0, 1)),
		Radius: radius,
	}, nil
}

// NewCircle2DFromThreePoints returns the circle through three points,
// traversed in their order. Collinear points are rejected.
func NewCircle2DFromThreePoints(p1, p2, p3 geom.Point2D) (Circle2D, error) {
	u := p2.Sub(p1)
	v := p3.Sub(p1)
	den := 2 * u.Cross(v)
	if math.Abs(den) < 1e-14 {
		return Circle2D{}, fmt.Errorf("%w: collinear points %v, %v, %v", ErrDegenerate, p1, p2, p3)
	}
	un := u.Norm2()
	vn := v.Norm2()
	center := p1.Translate(geom.V2(
		(v.Y*un-u.Y*vn)/den,
		(u.X*vn-v.X*un)/den,
	))
	c, err := NewCircle2D(center, center.Distance(p1))
	if err != nil {
		return Circle2D{}, err
	}
	// Orientation follows the point order.
	if p2.Sub(p1).Cross(p3.Sub(p2)) < 0 {
		c.Frame = c.Frame.Reverse()
	}
	return c, nil
}

// IsTrigo reports whether the circle is traversed counterclockwise.
func (c Circle2D) IsTrigo() bool {
	return c.Frame.IsRightHanded()
}

func (c Circle2D) Kind() Kind      { return KindCircle }
func (c Circle2D) Periodic() bool  { return true }
func (c Circle2D) Length() float64 { return 2 * math.Pi * c.Radius }

func (c Circle2D) Center() geom.Point2D { return c.Frame.Origin }

// angleOf returns the traversal angle of p in [0, 2π). The frame handedness
// folds the traversal direction into the local coordinates, so the same
// formula serves both orientations.
func (c Circle2D) angleOf(p geom.Point2D) float64 {
	local := c.Frame.GlobalToLocal(p)
	return geom.SinCosAngle(local.X/c.Radius, local.Y/c.Radius)
}

// PointAtAbscissa returns the point at arc length s from the circle start,
// wrapping around the period.
func (c Circle2D) PointAtAbscissa(s float64) (geom.Point2D, error) {
	th := s / c.Radius
	sin, cos := math.Sincos(th)
	return c.Frame.LocalToGlobal(geom.Pt2(c.Radius*cos, c.Radius*sin)), nil
}

// Abscissa returns the arc length from the circle start to p.
func (c Circle2D) Abscissa(p geom.Point2D) (float64, error) {
	if !c.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on circle centered at %v", ErrNotOnCurve, p, c.Center())
	}
	return c.Radius * c.angleOf(p), nil
}

func (c Circle2D) PointBelongs(p geom.Point2D, tol float64) bool {
	return math.Abs(p.Distance(c.Center())-c.Radius) <= tol
}

// PointDistance returns the distance from p to the circle.
func (c Circle2D) PointDistance(p geom.Point2D) float64 {
	return math.Abs(p.Distance(c.Center()) - c.Radius)
}

// Area returns the disk area.
func (c Circle2D) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// PointInside reports whether p lies strictly inside the disk, within tol.
func (c Circle2D) PointInside(p geom.Point2D, tol float64) bool {
	return p.Distance(c.Center()) <= c.Radius+tol
}

// ClosestPoint returns the point of the circle nearest to p. For the center
// itself the circle start is returned.
func (c Circle2D) ClosestPoint(p geom.Point2D) geom.Point2D {
	d := p.Sub(c.Center())
	if d.Norm() == 0 {
		pt, _ := c.PointAtAbscissa(0)
		return pt
	}
	return c.Center().Translate(d.Unit().Mul(c.Radius))
}

func (c Circle2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		s := c.Length() * float64(i) / float64(n-1)
		out[i], _ = c.PointAtAbscissa(s)
	}
	return out
}

func (c Circle2D) Reverse() Curve2D {
	c.Frame = c.Frame.Reverse()
	return c
}

// BoundingBox returns the circle's bounding rectangle.
func (c Circle2D) BoundingBox() geom.Rect {
	ctr := c.Center()
	return geom.Rect{
		X0: ctr.X - c.Radius, Y0: ctr.Y - c.Radius,
		X1: ctr.X + c.Radius, Y1: ctr.Y + c.Radius,
	}
}

// LineIntersections returns the points where a line crosses the circle, in
// closed form. A tangent line yields one point.
func (c Circle2D) LineIntersections(l Line2D, tol float64) []geom.Point2D {
	proj := l.PointProjection(c.Center())
	d := c.Center().Distance(proj)
	if d > c.Radius+tol {
		return nil
	}
	if math.Abs(d-c.Radius) <= tol {
		return []geom.Point2D{proj}
	}
	offset := math.Sqrt(c.Radius*c.Radius - d*d)
	return []geom.Point2D{
		proj.Translate(l.Dir.Mul(-offset)),
		proj.Translate(l.Dir.Mul(offset)),
	}
}

// CircleIntersections returns the points shared by two circles, using the
// classical radical-line construction. Concentric or too-distant circles
// yield nothing.
func (c Circle2D) CircleIntersections(o Circle2D, tol float64) []geom.Point2D {
	d := c.Center().Distance(o.Center())
	if d > c.Radius+o.Radius+tol {
		return nil
	}
	if d < math.Abs(c.Radius-o.Radius)-tol || d == 0 {
		return nil
	}
	// Distance from c's center to the radical line along the center line.
	a := (c.Radius*c.Radius - o.Radius*o.Radius + d*d) / (2 * d)
	h2 := c.Radius*c.Radius - a*a
	if h2 < 0 {
		if h2 < -tol {
			return nil
		}
		h2 = 0
	}
	h := math.Sqrt(h2)
	dir := o.Center().Sub(c.Center()).Div(d)
	mid := c.Center().Translate(dir.Mul(a))
	if h <= tol {
		return []geom.Point2D{mid}
	}
	n := dir.Normal()
	return []geom.Point2D{
		mid.Translate(n.Mul(h)),
		mid.Translate(n.Mul(-h)),
	}
}

// Circle3D is a full circle in space, lying in the UV plane of its frame,
// centered at the frame origin. The frame's W axis is the circle normal and
// the start point is Origin + U·Radius.
type Circle3D struct {
	Frame  geom.Frame3D
	Radius float64
}

// NewCircle3D returns a circle from a frame and radius.
func NewCircle3D(frame geom.Frame3D, radius float64) (Circle3D, error) {
	if radius <= 0 {
		return Circle3D{}, fmt.Errorf("%w: radius %v", ErrDegenerate, radius)
	}
	return Circle3D{Frame: frame, Radius: radius}, nil
}

// NewCircle3DFromCenterNormal returns the circle of the given radius in
// the plane through center perpendicular to normal.
func NewCircle3DFromCenterNormal(center geom.Point3D, normal geom.Vector3D, radius float64) (Circle3D, error) {
	if normal.Norm() == 0 {
		return Circle3D{}, fmt.Errorf("%w: zero normal", ErrDegenerate)
	}
	return NewCircle3D(geom.NewFrame3DFromNormal(center, normal), radius)
}

// NewCircle3DFromThreePoints returns the circle through three points,
// traversed in their order. Collinear points are rejected.
func NewCircle3DFromThreePoints(p1, p2, p3 geom.Point3D) (Circle3D, error) {
	u := p2.Sub(p1)
	v := p3.Sub(p1)
	normal := u.Cross(v)
	if normal.Norm() < 1e-14 {
		return Circle3D{}, fmt.Errorf("%w: collinear points %v, %v, %v", ErrDegenerate, p1, p2, p3)
	}
	// Reduce to the plane of the three points.
	frame := geom.NewFrame3D(p1, u, normal.Cross(u))
	flat := func(p geom.Point3D) geom.Point2D {
		lp := frame.GlobalToLocal(p)
		return geom.Pt2(lp.X, lp.Y)
	}
	c2, err := NewCircle2DFromThreePoints(flat(p1), flat(p2), flat(p3))
	if err != nil {
		return Circle3D{}, err
	}
	center2 := c2.Center()
	center := frame.LocalToGlobal(geom.Pt3(center2.X, center2.Y, 0))
	circleFrame := geom.NewFrame3D(center, p1.Sub(center), normal.Unit().Cross(p1.Sub(center)))
	return Circle3D{Frame: circleFrame, Radius: center.Distance(p1)}, nil
}

func (c Circle3D) Kind() Kind      { return KindCircle }
func (c Circle3D) Periodic() bool  { return true }
func (c Circle3D) Length() float64 { return 2 * math.Pi * c.Radius }

func (c Circle3D) Center() geom.Point3D { return c.Frame.Origin }

// Normal returns the unit normal of the circle's plane.
func (c Circle3D) Normal() geom.Vector3D { return c.Frame.W }

func (c Circle3D) PointAtAbscissa(s float64) (geom.Point3D, error) {
	th := s / c.Radius
	sin, cos := math.Sincos(th)
	return c.Frame.LocalToGlobal(geom.Pt3(c.Radius*cos, c.Radius*sin, 0)), nil
}

func (c Circle3D) Abscissa(p geom.Point3D) (float64, error) {
	if !c.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on circle centered at %v", ErrNotOnCurve, p, c.Center())
	}
	local := c.Frame.GlobalToLocal(p)
	return c.Radius * geom.SinCosAngle(local.X/c.Radius, local.Y/c.Radius), nil
}

func (c Circle3D) PointBelongs(p geom.Point3D, tol float64) bool {
	local := c.Frame.GlobalToLocal(p)
	if math.Abs(local.Z) > tol {
		return false
	}
	return math.Abs(math.Hypot(local.X, local.Y)-c.Radius) <= tol
}

// PointDistance returns the distance from p to the circle.
func (c Circle3D) PointDistance(p geom.Point3D) float64 {
	local := c.Frame.GlobalToLocal(p)
	inPlane := math.Hypot(local.X, local.Y) - c.Radius
	return math.Hypot(inPlane, local.Z)
}

// ClosestPoint returns the point of the circle nearest to p.
func (c Circle3D) ClosestPoint(p geom.Point3D) geom.Point3D {
	local := c.Frame.GlobalToLocal(p)
	r := math.Hypot(local.X, local.Y)
	if r == 0 {
		pt, _ := c.PointAtAbscissa(0)
		return pt
	}
	scale := c.Radius / r
	return c.Frame.LocalToGlobal(geom.Pt3(local.X*scale, local.Y*scale, 0))
}

func (c Circle3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		s := c.Length() * float64(i) / float64(n-1)
		out[i], _ = c.PointAtAbscissa(s)
	}
	return out
}

func (c Circle3D) Reverse() Curve3D {
	c.Frame = c.Frame.Reverse()
	return c
}

// BoundingBox returns the circle's axis-aligned bounding box.
func (c Circle3D) BoundingBox() geom.Box {
	// Extent along each axis: R·sqrt(1 − (W·axis)²).
	ext := func(wc float64) float64 {
		v := 1 - wc*wc
		if v < 0 {
			v = 0
		}
		return c.Radius * math.Sqrt(v)
	}
	ctr := c.Center()
	ex, ey, ez := ext(c.Frame.W.X), ext(c.Frame.W.Y), ext(c.Frame.W.Z)
	return geom.Box{
		Min: geom.Pt3(ctr.X-ex, ctr.Y-ey, ctr.Z-ez),
		Max: geom.Pt3(ctr.X+ex, ctr.Y+ey, ctr.Z+ez),
	}
}

// LineIntersections returns the points where a line crosses the circle. A
// line in the circle's plane reduces to the planar case; otherwise the line
// pierces the plane in one point, kept if it lies on the circle.
func (c Circle3D) LineIntersections(l Line3D, tol float64) []geom.Point3D {
	inPlane := math.Abs(l.Dir.Dot(c.Frame.W)) <= tol &&
		math.Abs(l.Point.Sub(c.Frame.Origin).Dot(c.Frame.W)) <= tol
	if inPlane {
		toLocal := func(p geom.Point3D) geom.Point2D {
			lp := c.Frame.GlobalToLocal(p)
			return geom.Pt2(lp.X, lp.Y)
		}
		l2, err := NewLine2D(toLocal(l.Point), toLocal(l.Point.Translate(l.Dir)))
		if err != nil {
			return nil
		}
		c2 := Circle2D{Frame: geom.OXY, Radius: c.Radius}
		var out []geom.Point3D
		for _, p := range c2.LineIntersections(l2, tol) {
			out = append(out, c.Frame.LocalToGlobal(geom.Pt3(p.X, p.Y, 0)))
		}
		return out
	}
	p, ok := c.Frame.PlaneLineIntersection(l.Point, l.Point.Translate(l.Dir), tol)
	if !ok {
		return nil
	}
	if !c.PointBelongs(p, tol) {
		return nil
	}
	return []geom.Point3D{p}
}

// CircleIntersections intersects two circles in space. Coplanar circles use
// the planar construction; otherwise the intersection line of the two carrier
// planes is intersected with both circles.
func (c Circle3D) CircleIntersections(o Circle3D, tol float64) []geom.Point3D {
	if c.Frame.W.IsColinearTo(o.Frame.W, tol) {
		// Parallel planes: coplanar or disjoint.
		if math.Abs(o.Center().Sub(c.Center()).Dot(c.Frame.W)) > tol {
			return nil
		}
		toLocal := func(p geom.Point3D) geom.Point2D {
			lp := c.Frame.GlobalToLocal(p)
			return geom.Pt2(lp.X, lp.Y)
		}
		c2 := Circle2D{Frame: geom.OXY, Radius: c.Radius}
		o2 := Circle2D{Frame: geom.OXY, Radius: o.Radius}
		o2.Frame.Origin = toLocal(o.Center())
		var out []geom.Point3D
		for _, p := range c2.CircleIntersections(o2, tol) {
			out = append(out, c.Frame.LocalToGlobal(geom.Pt3(p.X, p.Y, 0)))
		}
		return out
	}
	p1, p2, ok := c.Frame.PlanePlaneIntersection(o.Frame, tol)
	if !ok {
		return nil
	}
	line, err := NewLine3D(p1, p2)
	if err != nil {
		return nil
	}
	var out []geom.Point3D
	for _, p := range c.LineIntersections(line, tol) {
		if o.PointBelongs(p, tol) && !p.InList(out, tol) {
			out = append(out, p)
		}
	}
	return out
}
