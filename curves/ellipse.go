package curves

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/internal/solve"
)

// Ellipse2D is a full ellipse in the plane. The frame's U axis carries the
// major axis, V the minor one; the start point is Origin + U·MajorAxis. A
// right-handed frame is traversed counterclockwise.
type Ellipse2D struct {
	Frame     geom.Frame2D
	MajorAxis float64
	MinorAxis float64
}

// NewEllipse2D returns an ellipse from a frame and its half-axes.
func NewEllipse2D(frame geom.Frame2D, major, minor float64) (Ellipse2D, error) {
	if major <= 0 || minor <= 0 || minor > major {
		return Ellipse2D{}, fmt.Errorf("%w: axes %v, %v", ErrDegenerate, major, minor)
	}
	return Ellipse2D{Frame: frame, MajorAxis: major, MinorAxis: minor}, nil
}

func (e Ellipse2D) Kind() Kind     { return KindEllipse }
func (e Ellipse2D) Periodic() bool { return true }

func (e Ellipse2D) Center() geom.Point2D { return e.Frame.Origin }

// Length returns the perimeter, by Ramanujan's approximation.
func (e Ellipse2D) Length() float64 {
	a, b := e.MajorAxis, e.MinorAxis
	return math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
}

// Perimeter returns the perimeter by quadrature of the arc length integral.
// It agrees with PointAtAbscissa and Abscissa, where Length's Ramanujan
// approximation does not at high eccentricity.
func (e Ellipse2D) Perimeter() float64 {
	return e.arcLengthTo(2 * math.Pi)
}

// speed is the derivative norm of the angular parametrization.
func (e Ellipse2D) speed(th float64) float64 {
	sin, cos := math.Sincos(th)
	return math.Hypot(e.MajorAxis*sin, e.MinorAxis*cos)
}

// arcLengthTo integrates arc length from the start angle to th.
func (e Ellipse2D) arcLengthTo(th float64) float64 {
	return solve.Integrate(e.speed, 0, th, 1e-10)
}

// angleOf returns the parametric angle of p in [0, 2π), in traversal
// direction.
func (e Ellipse2D) angleOf(p geom.Point2D) float64 {
	local := e.Frame.GlobalToLocal(p)
	return geom.SinCosAngle(local.X/e.MajorAxis, local.Y/e.MinorAxis)
}

// PointAngleWithMajorDir returns the parametric angle of p measured from the
// major axis, in [0, 2π).
func (e Ellipse2D) PointAngleWithMajorDir(p geom.Point2D) float64 {
	return e.angleOf(p)
}

func (e Ellipse2D) pointAtAngle(th float64) geom.Point2D {
	sin, cos := math.Sincos(th)
	return e.Frame.LocalToGlobal(geom.Pt2(e.MajorAxis*cos, e.MinorAxis*sin))
}

// PointAtAbscissa returns the point at arc length s from the start, inverting
// the arc length integral with the ITP root solver.
func (e Ellipse2D) PointAtAbscissa(s float64) (geom.Point2D, error) {
	total := e.arcLengthTo(2 * math.Pi)
	s = math.Mod(s, total)
	if s < 0 {
		s += total
	}
	if s == 0 {
		return e.pointAtAngle(0), nil
	}
	f := func(th float64) float64 { return e.arcLengthTo(th) - s }
	th := solve.ITP(f, 0, 2*math.Pi, 1e-10, 1, 0.2/(2*math.Pi), -s, total-s)
	return e.pointAtAngle(th), nil
}

// Abscissa returns the arc length from the ellipse start to p.
func (e Ellipse2D) Abscissa(p geom.Point2D) (float64, error) {
	if !e.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on ellipse centered at %v", ErrNotOnCurve, p, e.Center())
	}
	return e.arcLengthTo(e.angleOf(p)), nil
}

func (e Ellipse2D) PointBelongs(p geom.Point2D, tol float64) bool {
	local := e.Frame.GlobalToLocal(p)
	r := math.Hypot(local.X/e.MajorAxis, local.Y/e.MinorAxis)
	return math.Abs(r-1)*e.MinorAxis <= tol
}

func (e Ellipse2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		th := 2 * math.Pi * float64(i) / float64(n-1)
		out[i] = e.pointAtAngle(th)
	}
	return out
}

func (e Ellipse2D) Reverse() Curve2D {
	e.Frame = e.Frame.Reverse()
	return e
}

// BoundingBox returns the ellipse's bounding rectangle.
func (e Ellipse2D) BoundingBox() geom.Rect {
	// Extents of a rotated ellipse along the global axes.
	ex := math.Hypot(e.MajorAxis*e.Frame.U.X, e.MinorAxis*e.Frame.V.X)
	ey := math.Hypot(e.MajorAxis*e.Frame.U.Y, e.MinorAxis*e.Frame.V.Y)
	ctr := e.Center()
	return geom.Rect{X0: ctr.X - ex, Y0: ctr.Y - ey, X1: ctr.X + ex, Y1: ctr.Y + ey}
}

// LineIntersections returns the points where a line crosses the ellipse, by
// solving the ellipse equation along the line in the ellipse frame.
func (e Ellipse2D) LineIntersections(l Line2D, tol float64) []geom.Point2D {
	p := e.Frame.GlobalToLocal(l.Point)
	d := e.Frame.GlobalToLocalVector(l.Dir)
	a2 := e.MajorAxis * e.MajorAxis
	b2 := e.MinorAxis * e.MinorAxis

	c2 := d.X*d.X/a2 + d.Y*d.Y/b2
	c1 := 2 * (p.X*d.X/a2 + p.Y*d.Y/b2)
	c0 := p.X*p.X/a2 + p.Y*p.Y/b2 - 1
	roots, n := solve.Quadratic(c0, c1, c2)
	var out []geom.Point2D
	for _, t := range roots[:n] {
		pt := l.Point.Translate(l.Dir.Mul(t))
		if !pt.InList(out, tol) {
			out = append(out, pt)
		}
	}
	return out
}

// Ellipse3D is a full ellipse in space, lying in the UV plane of its frame
// with the major axis along U.
type Ellipse3D struct {
	Frame     geom.Frame3D
	MajorAxis float64
	MinorAxis float64
}

// NewEllipse3D returns an ellipse from a frame and its half-axes.
func NewEllipse3D(frame geom.Frame3D, major, minor float64) (Ellipse3D, error) {
	if major <= 0 || minor <= 0 || minor > major {
		return Ellipse3D{}, fmt.Errorf("%w: axes %v, %v", ErrDegenerate, major, minor)
	}
	return Ellipse3D{Frame: frame, MajorAxis: major, MinorAxis: minor}, nil
}

func (e Ellipse3D) Kind() Kind     { return KindEllipse }
func (e Ellipse3D) Periodic() bool { return true }

func (e Ellipse3D) Center() geom.Point3D { return e.Frame.Origin }

// planar returns the ellipse expressed in its own frame.
func (e Ellipse3D) planar() Ellipse2D {
	return Ellipse2D{Frame: geom.OXY, MajorAxis: e.MajorAxis, MinorAxis: e.MinorAxis}
}

func (e Ellipse3D) lift(p geom.Point2D) geom.Point3D {
	return e.Frame.LocalToGlobal(geom.Pt3(p.X, p.Y, 0))
}

func (e Ellipse3D) flat(p geom.Point3D) geom.Point2D {
	lp := e.Frame.GlobalToLocal(p)
	return geom.Pt2(lp.X, lp.Y)
}

func (e Ellipse3D) Length() float64 {
	return e.planar().Length()
}

// Perimeter returns the perimeter by quadrature, consistent with
// PointAtAbscissa and Abscissa.
func (e Ellipse3D) Perimeter() float64 {
	return e.planar().Perimeter()
}

func (e Ellipse3D) PointAtAbscissa(s float64) (geom.Point3D, error) {
	p, err := e.planar().PointAtAbscissa(s)
	if err != nil {
		return geom.Point3D{}, err
	}
	return e.lift(p), nil
}

func (e Ellipse3D) Abscissa(p geom.Point3D) (float64, error) {
	if !e.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on ellipse centered at %v", ErrNotOnCurve, p, e.Center())
	}
	return e.planar().Abscissa(e.flat(p))
}

func (e Ellipse3D) PointBelongs(p geom.Point3D, tol float64) bool {
	local := e.Frame.GlobalToLocal(p)
	if math.Abs(local.Z) > tol {
		return false
	}
	return e.planar().PointBelongs(geom.Pt2(local.X, local.Y), tol)
}

func (e Ellipse3D) DiscretizationPoints(n int) []geom.Point3D {
	pts2 := e.planar().DiscretizationPoints(n)
	out := make([]geom.Point3D, len(pts2))
	for i, p := range pts2 {
		out[i] = e.lift(p)
	}
	return out
}

func (e Ellipse3D) Reverse() Curve3D {
	e.Frame = e.Frame.Reverse()
	return e
}

// LineIntersections returns the points where a line crosses the ellipse.
func (e Ellipse3D) LineIntersections(l Line3D, tol float64) []geom.Point3D {
	inPlane := math.Abs(l.Dir.Dot(e.Frame.W)) <= tol &&
		math.Abs(l.Point.Sub(e.Frame.Origin).Dot(e.Frame.W)) <= tol
	if inPlane {
		l2, err := NewLine2D(e.flat(l.Point), e.flat(l.Point.Translate(l.Dir)))
		if err != nil {
			return nil
		}
		var out []geom.Point3D
		for _, p := range e.planar().LineIntersections(l2, tol) {
			out = append(out, e.lift(p))
		}
		return out
	}
	p, ok := e.Frame.PlaneLineIntersection(l.Point, l.Point.Translate(l.Dir), tol)
	if !ok || !e.PointBelongs(p, tol) {
		return nil
	}
	return []geom.Point3D{p}
}
