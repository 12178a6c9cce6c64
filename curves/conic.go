package curves

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/internal/solve"
)

// Hyperbola2D is the positive branch of a hyperbola in the plane. In its
// frame the branch satisfies (x/a)² − (y/b)² = 1 with x > 0, parametrized as
// (a·cosh t, b·sinh t). The vertex, at t = 0, is the abscissa origin.
type Hyperbola2D struct {
	Frame         geom.Frame2D
	SemiMajorAxis float64
	SemiMinorAxis float64
}

// NewHyperbola2D returns a hyperbola branch from a frame and semi-axes.
func NewHyperbola2D(frame geom.Frame2D, a, b float64) (Hyperbola2D, error) {
	if a <= 0 || b <= 0 {
		return Hyperbola2D{}, fmt.Errorf("%w: semi-axes %v, %v", ErrDegenerate, a, b)
	}
	return Hyperbola2D{Frame: frame, SemiMajorAxis: a, SemiMinorAxis: b}, nil
}

func (h Hyperbola2D) Kind() Kind      { return KindHyperbola }
func (h Hyperbola2D) Periodic() bool  { return false }
func (h Hyperbola2D) Length() float64 { return math.Inf(1) }

func (h Hyperbola2D) pointAtParameter(t float64) geom.Point2D {
	return h.Frame.LocalToGlobal(geom.Pt2(
		h.SemiMajorAxis*math.Cosh(t),
		h.SemiMinorAxis*math.Sinh(t),
	))
}

// parameterOf recovers the branch parameter of a point on the curve.
func (h Hyperbola2D) parameterOf(p geom.Point2D) float64 {
	local := h.Frame.GlobalToLocal(p)
	return math.Asinh(local.Y / h.SemiMinorAxis)
}

func (h Hyperbola2D) speed(t float64) float64 {
	return math.Hypot(h.SemiMajorAxis*math.Sinh(t), h.SemiMinorAxis*math.Cosh(t))
}

// Abscissa returns the signed arc length from the vertex to p.
func (h Hyperbola2D) Abscissa(p geom.Point2D) (float64, error) {
	if !h.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on hyperbola", ErrNotOnCurve, p)
	}
	return solve.Integrate(h.speed, 0, h.parameterOf(p), 1e-10), nil
}

// PointAtAbscissa returns the point at signed arc length s from the vertex.
func (h Hyperbola2D) PointAtAbscissa(s float64) (geom.Point2D, error) {
	if s == 0 {
		return h.pointAtParameter(0), nil
	}
	arclen := func(t float64) float64 { return solve.Integrate(h.speed, 0, t, 1e-10) }
	// Grow a bracket until it encloses the target arc length.
	hi := 1.0
	for math.Abs(arclen(math.Copysign(hi, s))) < math.Abs(s) {
		hi *= 2
		if hi > 1e6 {
			return geom.Point2D{}, fmt.Errorf("%w: abscissa %v", ErrOutOfRange, s)
		}
	}
	var t float64
	if s > 0 {
		t = solve.ITP(func(t float64) float64 { return arclen(t) - s },
			0, hi, 1e-10, 1, 0.2/hi, -s, arclen(hi)-s)
	} else {
		t = solve.ITP(func(t float64) float64 { return arclen(t) - s },
			-hi, 0, 1e-10, 1, 0.2/hi, arclen(-hi)-s, -s)
	}
	return h.pointAtParameter(t), nil
}

func (h Hyperbola2D) PointBelongs(p geom.Point2D, tol float64) bool {
	local := h.Frame.GlobalToLocal(p)
	if local.X <= 0 {
		return false
	}
	x := local.X / h.SemiMajorAxis
	y := local.Y / h.SemiMinorAxis
	return math.Abs(x*x-y*y-1)*math.Min(h.SemiMajorAxis, h.SemiMinorAxis) <= tol
}

// GetX returns the branch abscissa coordinate for a local y value.
func (h Hyperbola2D) GetX(y float64) float64 {
	r := y / h.SemiMinorAxis
	return h.SemiMajorAxis * math.Sqrt(1+r*r)
}

// TangentAt returns the unit tangent at a point of the curve.
func (h Hyperbola2D) TangentAt(p geom.Point2D) geom.Vector2D {
	t := h.parameterOf(p)
	return h.Frame.LocalToGlobalVector(geom.V2(
		h.SemiMajorAxis*math.Sinh(t),
		h.SemiMinorAxis*math.Cosh(t),
	)).Unit()
}

// DiscretizationPoints samples the branch over a symmetric parameter range.
func (h Hyperbola2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	const tmax = 2.0
	out := make([]geom.Point2D, n)
	for i := range out {
		t := -tmax + 2*tmax*float64(i)/float64(n-1)
		out[i] = h.pointAtParameter(t)
	}
	return out
}

func (h Hyperbola2D) Reverse() Curve2D {
	h.Frame = h.Frame.Reverse()
	return h
}

// LineIntersections returns the points where a line crosses the branch.
func (h Hyperbola2D) LineIntersections(l Line2D, tol float64) []geom.Point2D {
	p := h.Frame.GlobalToLocal(l.Point)
	d := h.Frame.GlobalToLocalVector(l.Dir)
	a2 := h.SemiMajorAxis * h.SemiMajorAxis
	b2 := h.SemiMinorAxis * h.SemiMinorAxis

	c2 := d.X*d.X/a2 - d.Y*d.Y/b2
	c1 := 2 * (p.X*d.X/a2 - p.Y*d.Y/b2)
	c0 := p.X*p.X/a2 - p.Y*p.Y/b2 - 1
	roots, n := solve.Quadratic(c0, c1, c2)
	var out []geom.Point2D
	for _, t := range roots[:n] {
		pt := l.Point.Translate(l.Dir.Mul(t))
		// Keep the positive branch only.
		if h.Frame.GlobalToLocal(pt).X > 0 && !pt.InList(out, tol) {
			out = append(out, pt)
		}
	}
	return out
}

// Parabola2D is a parabola in the plane. In its frame the curve satisfies
// y = x²/(4f), where f is the focal length; the vertex at the origin is the
// abscissa origin.
type Parabola2D struct {
	Frame       geom.Frame2D
	FocalLength float64
}

// NewParabola2D returns a parabola from a frame and focal length.
func NewParabola2D(frame geom.Frame2D, focal float64) (Parabola2D, error) {
	if focal <= 0 {
		return Parabola2D{}, fmt.Errorf("%w: focal length %v", ErrDegenerate, focal)
	}
	return Parabola2D{Frame: frame, FocalLength: focal}, nil
}

func (p Parabola2D) Kind() Kind      { return KindParabola }
func (p Parabola2D) Periodic() bool  { return false }
func (p Parabola2D) Length() float64 { return math.Inf(1) }

func (p Parabola2D) pointAtParameter(t float64) geom.Point2D {
	return p.Frame.LocalToGlobal(geom.Pt2(t, t*t/(4*p.FocalLength)))
}

func (p Parabola2D) parameterOf(pt geom.Point2D) float64 {
	return p.Frame.GlobalToLocal(pt).X
}

func (p Parabola2D) speed(t float64) float64 {
	return math.Hypot(1, t/(2*p.FocalLength))
}

// GetY returns the local ordinate of the parabola at local abscissa x.
func (p Parabola2D) GetY(x float64) float64 {
	return x * x / (4 * p.FocalLength)
}

// Abscissa returns the signed arc length from the vertex to pt.
func (p Parabola2D) Abscissa(pt geom.Point2D) (float64, error) {
	if !p.PointBelongs(pt, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on parabola", ErrNotOnCurve, pt)
	}
	return solve.Integrate(p.speed, 0, p.parameterOf(pt), 1e-10), nil
}

// PointAtAbscissa returns the point at signed arc length s from the vertex.
func (p Parabola2D) PointAtAbscissa(s float64) (geom.Point2D, error) {
	if s == 0 {
		return p.pointAtParameter(0), nil
	}
	arclen := func(t float64) float64 { return solve.Integrate(p.speed, 0, t, 1e-10) }
	hi := 1.0
	for math.Abs(arclen(math.Copysign(hi, s))) < math.Abs(s) {
		hi *= 2
		if hi > 1e9 {
			return geom.Point2D{}, fmt.Errorf("%w: abscissa %v", ErrOutOfRange, s)
		}
	}
	var t float64
	if s > 0 {
		t = solve.ITP(func(t float64) float64 { return arclen(t) - s },
			0, hi, 1e-10, 1, 0.2/hi, -s, arclen(hi)-s)
	} else {
		t = solve.ITP(func(t float64) float64 { return arclen(t) - s },
			-hi, 0, 1e-10, 1, 0.2/hi, arclen(-hi)-s, -s)
	}
	return p.pointAtParameter(t), nil
}

func (p Parabola2D) PointBelongs(pt geom.Point2D, tol float64) bool {
	local := p.Frame.GlobalToLocal(pt)
	return math.Abs(local.Y-p.GetY(local.X)) <= tol
}

// TangentAt returns the unit tangent at a point of the curve.
func (p Parabola2D) TangentAt(pt geom.Point2D) geom.Vector2D {
	t := p.parameterOf(pt)
	return p.Frame.LocalToGlobalVector(geom.V2(1, t/(2*p.FocalLength))).Unit()
}

// DiscretizationPoints samples the parabola over a symmetric local range.
func (p Parabola2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	span := 4 * p.FocalLength
	out := make([]geom.Point2D, n)
	for i := range out {
		t := -span + 2*span*float64(i)/float64(n-1)
		out[i] = p.pointAtParameter(t)
	}
	return out
}

func (p Parabola2D) Reverse() Curve2D {
	p.Frame = p.Frame.Reverse()
	return p
}

// LineIntersections returns the points where a line crosses the parabola.
func (p Parabola2D) LineIntersections(l Line2D, tol float64) []geom.Point2D {
	lp := p.Frame.GlobalToLocal(l.Point)
	d := p.Frame.GlobalToLocalVector(l.Dir)
	f4 := 4 * p.FocalLength

	// (lp.Y + t·d.Y)·4f = (lp.X + t·d.X)²
	c2 := d.X * d.X
	c1 := 2*lp.X*d.X - f4*d.Y
	c0 := lp.X*lp.X - f4*lp.Y
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

// Hyperbola3D is the positive branch of a hyperbola lying in the UV plane of
// its frame.
type Hyperbola3D struct {
	Frame         geom.Frame3D
	SemiMajorAxis float64
	SemiMinorAxis float64
}

// NewHyperbola3D returns a hyperbola branch from a frame and semi-axes.
func NewHyperbola3D(frame geom.Frame3D, a, b float64) (Hyperbola3D, error) {
	if a <= 0 || b <= 0 {
		return Hyperbola3D{}, fmt.Errorf("%w: semi-axes %v, %v", ErrDegenerate, a, b)
	}
	return Hyperbola3D{Frame: frame, SemiMajorAxis: a, SemiMinorAxis: b}, nil
}

func (h Hyperbola3D) Kind() Kind      { return KindHyperbola }
func (h Hyperbola3D) Periodic() bool  { return false }
func (h Hyperbola3D) Length() float64 { return math.Inf(1) }

func (h Hyperbola3D) planar() Hyperbola2D {
	return Hyperbola2D{Frame: geom.OXY, SemiMajorAxis: h.SemiMajorAxis, SemiMinorAxis: h.SemiMinorAxis}
}

func (h Hyperbola3D) lift(p geom.Point2D) geom.Point3D {
	return h.Frame.LocalToGlobal(geom.Pt3(p.X, p.Y, 0))
}

func (h Hyperbola3D) flat(p geom.Point3D) geom.Point2D {
	lp := h.Frame.GlobalToLocal(p)
	return geom.Pt2(lp.X, lp.Y)
}

func (h Hyperbola3D) PointAtAbscissa(s float64) (geom.Point3D, error) {
	p, err := h.planar().PointAtAbscissa(s)
	if err != nil {
		return geom.Point3D{}, err
	}
	return h.lift(p), nil
}

func (h Hyperbola3D) Abscissa(p geom.Point3D) (float64, error) {
	if !h.PointBelongs(p, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on hyperbola", ErrNotOnCurve, p)
	}
	return h.planar().Abscissa(h.flat(p))
}

func (h Hyperbola3D) PointBelongs(p geom.Point3D, tol float64) bool {
	if math.Abs(h.Frame.GlobalToLocal(p).Z) > tol {
		return false
	}
	return h.planar().PointBelongs(h.flat(p), tol)
}

func (h Hyperbola3D) DiscretizationPoints(n int) []geom.Point3D {
	pts := h.planar().DiscretizationPoints(n)
	out := make([]geom.Point3D, len(pts))
	for i, p := range pts {
		out[i] = h.lift(p)
	}
	return out
}

func (h Hyperbola3D) Reverse() Curve3D {
	h.Frame = h.Frame.Reverse()
	return h
}

// LineIntersections returns the points where a line crosses the branch.
func (h Hyperbola3D) LineIntersections(l Line3D, tol float64) []geom.Point3D {
	inPlane := math.Abs(l.Dir.Dot(h.Frame.W)) <= tol &&
		math.Abs(l.Point.Sub(h.Frame.Origin).Dot(h.Frame.W)) <= tol
	if inPlane {
		l2, err := NewLine2D(h.flat(l.Point), h.flat(l.Point.Translate(l.Dir)))
		if err != nil {
			return nil
		}
		var out []geom.Point3D
		for _, p := range h.planar().LineIntersections(l2, tol) {
			out = append(out, h.lift(p))
		}
		return out
	}
	p, ok := h.Frame.PlaneLineIntersection(l.Point, l.Point.Translate(l.Dir), tol)
	if !ok || !h.PointBelongs(p, tol) {
		return nil
	}
	return []geom.Point3D{p}
}

// Parabola3D is a parabola lying in the UV plane of its frame.
type Parabola3D struct {
	Frame       geom.Frame3D
	FocalLength float64
}

// NewParabola3D returns a parabola from a frame and focal length.
func NewParabola3D(frame geom.Frame3D, focal float64) (Parabola3D, error) {
	if focal <= 0 {
		return Parabola3D{}, fmt.Errorf("%w: focal length %v", ErrDegenerate, focal)
	}
	return Parabola3D{Frame: frame, FocalLength: focal}, nil
}

func (p Parabola3D) Kind() Kind      { return KindParabola }
func (p Parabola3D) Periodic() bool  { return false }
func (p Parabola3D) Length() float64 { return math.Inf(1) }

func (p Parabola3D) planar() Parabola2D {
	return Parabola2D{Frame: geom.OXY, FocalLength: p.FocalLength}
}

func (p Parabola3D) lift(pt geom.Point2D) geom.Point3D {
	return p.Frame.LocalToGlobal(geom.Pt3(pt.X, pt.Y, 0))
}

func (p Parabola3D) flat(pt geom.Point3D) geom.Point2D {
	lp := p.Frame.GlobalToLocal(pt)
	return geom.Pt2(lp.X, lp.Y)
}

func (p Parabola3D) PointAtAbscissa(s float64) (geom.Point3D, error) {
	pt, err := p.planar().PointAtAbscissa(s)
	if err != nil {
		return geom.Point3D{}, err
	}
	return p.lift(pt), nil
}

func (p Parabola3D) Abscissa(pt geom.Point3D) (float64, error) {
	if !p.PointBelongs(pt, DefaultTolerance) {
		return 0, fmt.Errorf("%w: %v on parabola", ErrNotOnCurve, pt)
	}
	return p.planar().Abscissa(p.flat(pt))
}

func (p Parabola3D) PointBelongs(pt geom.Point3D, tol float64) bool {
	if math.Abs(p.Frame.GlobalToLocal(pt).Z) > tol {
		return false
	}
	return p.planar().PointBelongs(p.flat(pt), tol)
}

func (p Parabola3D) DiscretizationPoints(n int) []geom.Point3D {
	pts := p.planar().DiscretizationPoints(n)
	out := make([]geom.Point3D, len(pts))
	for i, pt := range pts {
		out[i] = p.lift(pt)
	}
	return out
}

func (p Parabola3D) Reverse() Curve3D {
	p.Frame = p.Frame.Reverse()
	return p
}

// LineIntersections returns the points where a line crosses the parabola.
func (p Parabola3D) LineIntersections(l Line3D, tol float64) []geom.Point3D {
	inPlane := math.Abs(l.Dir.Dot(p.Frame.W)) <= tol &&
		math.Abs(l.Point.Sub(p.Frame.Origin).Dot(p.Frame.W)) <= tol
	if inPlane {
		l2, err := NewLine2D(p.flat(l.Point), p.flat(l.Point.Translate(l.Dir)))
		if err != nil {
			return nil
		}
		var out []geom.Point3D
		for _, pt := range p.planar().LineIntersections(l2, tol) {
			out = append(out, p.lift(pt))
		}
		return out
	}
	pt, ok := p.Frame.PlaneLineIntersection(l.Point, l.Point.Translate(l.Dir), tol)
	if !ok || !p.PointBelongs(pt, tol) {
		return nil
	}
	return []geom.Point3D{pt}
}
