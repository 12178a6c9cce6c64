package curves

import (
	"errors"
	"math"
	"testing"

	"github.com/brepkit/curve/geom"
)

func approxPoint2(t *testing.T, got, want geom.Point2D, tol float64) {
	t.Helper()
	if got.Distance(want) > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func approxPoint3(t *testing.T, got, want geom.Point3D, tol float64) {
	t.Helper()
	if got.Distance(want) > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func containsPoint2(pts []geom.Point2D, p geom.Point2D, tol float64) bool {
	for _, q := range pts {
		if q.Distance(p) <= tol {
			return true
		}
	}
	return false
}

func containsPoint3(pts []geom.Point3D, p geom.Point3D, tol float64) bool {
	for _, q := range pts {
		if q.Distance(p) <= tol {
			return true
		}
	}
	return false
}

func TestLine2DBasics(t *testing.T) {
	l, err := NewLine2D(geom.Pt2(0, 0), geom.Pt2(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := l.Abscissa(geom.Pt2(3, 4)); s != 3 {
		t.Errorf("got abscissa %v, want 3", s)
	}
	approxPoint2(t, l.PointProjection(geom.Pt2(3, 4)), geom.Pt2(3, 0), 1e-12)
	if d := l.PointDistance(geom.Pt2(3, 4)); d != 4 {
		t.Errorf("got distance %v, want 4", d)
	}
	if !l.PointBelongs(geom.Pt2(5, 0), 1e-9) {
		t.Error("expected point on line")
	}

	if _, err := NewLine2D(geom.Pt2(1, 1), geom.Pt2(1, 1)); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestLine2DIntersection(t *testing.T) {
	// The diagonals of the unit square cross at its middle.
	l1, _ := NewLine2D(geom.Pt2(0, 0), geom.Pt2(1, 1))
	l2, _ := NewLine2D(geom.Pt2(0, 1), geom.Pt2(1, 0))
	p, ok := l1.Intersection(l2, 1e-9)
	if !ok {
		t.Fatal("expected an intersection")
	}
	approxPoint2(t, p, geom.Pt2(0.5, 0.5), 1e-12)

	// Parallel lines.
	l3, _ := NewLine2D(geom.Pt2(0, 1), geom.Pt2(1, 2))
	if _, ok := l1.Intersection(l3, 1e-9); ok {
		t.Error("expected no intersection for parallel lines")
	}
}

func TestLine2DSortPoints(t *testing.T) {
	l, _ := NewLine2D(geom.Pt2(0, 0), geom.Pt2(1, 0))
	sorted := l.SortPointsAlongLine([]geom.Point2D{
		geom.Pt2(3, 0), geom.Pt2(-1, 0), geom.Pt2(1, 0),
	})
	want := []geom.Point2D{geom.Pt2(-1, 0), geom.Pt2(1, 0), geom.Pt2(3, 0)}
	for i := range want {
		approxPoint2(t, sorted[i], want[i], 1e-12)
	}
}

func TestLine3DDistanceAndSkew(t *testing.T) {
	l1, _ := NewLine3D(geom.Pt3(0, 0, 0), geom.Pt3(1, 0, 0))
	l2, _ := NewLine3D(geom.Pt3(0, 1, 1), geom.Pt3(0, 2, 1))
	if !l1.SkewTo(l2, 1e-9) {
		t.Error("expected skew lines")
	}
	if d := l1.LineDistance(l2); math.Abs(d-1) > 1e-12 {
		t.Errorf("got distance %v, want 1", d)
	}
	p1, p2 := l1.MinimumDistancePoints(l2)
	approxPoint3(t, p1, geom.Pt3(0, 0, 0), 1e-12)
	approxPoint3(t, p2, geom.Pt3(0, 0, 1), 1e-12)

	// Crossing lines are not skew.
	l3, _ := NewLine3D(geom.Pt3(0, -1, 0), geom.Pt3(0, 1, 0))
	if l1.SkewTo(l3, 1e-9) {
		t.Error("expected intersecting lines not to be skew")
	}
	p, ok := l1.Intersection(l3, 1e-9)
	if !ok {
		t.Fatal("expected an intersection")
	}
	approxPoint3(t, p, geom.Pt3(0, 0, 0), 1e-12)
}

func TestCircle2DAbscissaRoundTrip(t *testing.T) {
	c, err := NewCircle2D(geom.Pt2(1, -2), 2.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []float64{0, 1, 2.5, 4, c.Length() * 0.99} {
		p, err := c.PointAtAbscissa(s)
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.Abscissa(p)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-s) > 1e-9 {
			t.Errorf("abscissa round trip: got %v, want %v", got, s)
		}
	}
}

func TestCircle2DFromThreePoints(t *testing.T) {
	c, err := NewCircle2DFromThreePoints(geom.Pt2(1, 0), geom.Pt2(0, 1), geom.Pt2(-1, 0))
	if err != nil {
		t.Fatal(err)
	}
	approxPoint2(t, c.Center(), geom.Pt2(0, 0), 1e-12)
	if math.Abs(c.Radius-1) > 1e-12 {
		t.Errorf("got radius %v, want 1", c.Radius)
	}
	if !c.IsTrigo() {
		t.Error("expected counterclockwise orientation")
	}

	// Reversed point order flips the orientation.
	cw, err := NewCircle2DFromThreePoints(geom.Pt2(-1, 0), geom.Pt2(0, 1), geom.Pt2(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if cw.IsTrigo() {
		t.Error("expected clockwise orientation")
	}

	if _, err := NewCircle2DFromThreePoints(geom.Pt2(0, 0), geom.Pt2(1, 0), geom.Pt2(2, 0)); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate for collinear points", err)
	}
}

func TestCircle2DLineIntersections(t *testing.T) {
	c, _ := NewCircle2D(geom.Pt2(0, 0), 1)
	l, _ := NewLine2D(geom.Pt2(-2, 0), geom.Pt2(2, 0))
	pts := c.LineIntersections(l, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	if !containsPoint2(pts, geom.Pt2(1, 0), 1e-9) || !containsPoint2(pts, geom.Pt2(-1, 0), 1e-9) {
		t.Errorf("got %v, want (±1, 0)", pts)
	}

	// Tangent line.
	lt, _ := NewLine2D(geom.Pt2(-2, 1), geom.Pt2(2, 1))
	pts = c.LineIntersections(lt, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points for tangent, want 1", len(pts))
	}
	approxPoint2(t, pts[0], geom.Pt2(0, 1), 1e-9)

	// Missing line.
	lm, _ := NewLine2D(geom.Pt2(-2, 2), geom.Pt2(2, 2))
	if pts := c.LineIntersections(lm, 1e-9); len(pts) != 0 {
		t.Errorf("got %v, want none", pts)
	}
}

func TestCircle2DCircleIntersections(t *testing.T) {
	c1, _ := NewCircle2D(geom.Pt2(0, 0), 1)
	c2, _ := NewCircle2D(geom.Pt2(1, 0), 1)
	pts := c1.CircleIntersections(c2, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	want := math.Sqrt(3) / 2
	if !containsPoint2(pts, geom.Pt2(0.5, want), 1e-9) || !containsPoint2(pts, geom.Pt2(0.5, -want), 1e-9) {
		t.Errorf("got %v", pts)
	}

	// Externally tangent circles.
	c3, _ := NewCircle2D(geom.Pt2(2, 0), 1)
	pts = c1.CircleIntersections(c3, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points for tangent circles, want 1", len(pts))
	}
	approxPoint2(t, pts[0], geom.Pt2(1, 0), 1e-9)

	// Disjoint and concentric circles.
	c4, _ := NewCircle2D(geom.Pt2(5, 0), 1)
	if pts := c1.CircleIntersections(c4, 1e-9); len(pts) != 0 {
		t.Errorf("got %v for disjoint circles", pts)
	}
	c5, _ := NewCircle2D(geom.Pt2(0, 0), 0.5)
	if pts := c1.CircleIntersections(c5, 1e-9); len(pts) != 0 {
		t.Errorf("got %v for concentric circles", pts)
	}
}

func TestCircle2DReverseAbscissa(t *testing.T) {
	c, _ := NewCircle2D(geom.Pt2(0, 0), 1)
	r := c.Reverse().(Circle2D)
	if r.IsTrigo() {
		t.Error("expected reversed circle to be clockwise")
	}
	// A quarter turn counterclockwise is three quarters clockwise.
	p := geom.Pt2(0, 1)
	s1, _ := c.Abscissa(p)
	s2, _ := r.Abscissa(p)
	if math.Abs(s1-math.Pi/2) > 1e-9 {
		t.Errorf("got %v, want %v", s1, math.Pi/2)
	}
	if math.Abs(s2-3*math.Pi/2) > 1e-9 {
		t.Errorf("got %v, want %v", s2, 3*math.Pi/2)
	}
}

func TestCircle3DFromThreePoints(t *testing.T) {
	c, err := NewCircle3DFromThreePoints(geom.Pt3(1, 0, 1), geom.Pt3(0, 1, 1), geom.Pt3(-1, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	approxPoint3(t, c.Center(), geom.Pt3(0, 0, 1), 1e-12)
	if math.Abs(c.Radius-1) > 1e-12 {
		t.Errorf("got radius %v, want 1", c.Radius)
	}
	if !c.Normal().IsColinearTo(geom.V3(0, 0, 1), 1e-9) {
		t.Errorf("got normal %v, want ±z", c.Normal())
	}
	// The abscissa origin is the first defining point.
	p, _ := c.PointAtAbscissa(0)
	approxPoint3(t, p, geom.Pt3(1, 0, 1), 1e-12)
}

func TestCircle3DLineIntersections(t *testing.T) {
	frame := geom.NewFrame3D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	c, _ := NewCircle3D(frame, 1)

	// In-plane diameter line.
	l, _ := NewLine3D(geom.Pt3(-2, 0, 0), geom.Pt3(2, 0, 0))
	pts := c.LineIntersections(l, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	if !containsPoint3(pts, geom.Pt3(1, 0, 0), 1e-9) || !containsPoint3(pts, geom.Pt3(-1, 0, 0), 1e-9) {
		t.Errorf("got %v", pts)
	}

	// A transversal line piercing the plane on the circle.
	lt, _ := NewLine3D(geom.Pt3(1, 0, -1), geom.Pt3(1, 0, 1))
	pts = c.LineIntersections(lt, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	approxPoint3(t, pts[0], geom.Pt3(1, 0, 0), 1e-9)

	// A transversal missing the circle.
	lm, _ := NewLine3D(geom.Pt3(0.5, 0, -1), geom.Pt3(0.5, 0, 1))
	if pts := c.LineIntersections(lm, 1e-9); len(pts) != 0 {
		t.Errorf("got %v, want none", pts)
	}
}

func TestCircle3DCircleIntersections(t *testing.T) {
	// Two unit circles in perpendicular planes sharing the x axis points.
	xy := geom.NewFrame3D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	xz := geom.NewFrame3D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 0, 1))
	c1, _ := NewCircle3D(xy, 1)
	c2, _ := NewCircle3D(xz, 1)
	pts := c1.CircleIntersections(c2, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2: %v", len(pts), pts)
	}
	if !containsPoint3(pts, geom.Pt3(1, 0, 0), 1e-6) || !containsPoint3(pts, geom.Pt3(-1, 0, 0), 1e-6) {
		t.Errorf("got %v, want (±1, 0, 0)", pts)
	}

	// Coplanar overlapping circles.
	xyShift := xy.Translate(geom.V3(1, 0, 0))
	c3, _ := NewCircle3D(xyShift, 1)
	pts = c1.CircleIntersections(c3, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points for coplanar circles, want 2", len(pts))
	}

	// Parallel distinct planes.
	c4, _ := NewCircle3D(xy.Translate(geom.V3(0, 0, 1)), 1)
	if pts := c1.CircleIntersections(c4, 1e-9); len(pts) != 0 {
		t.Errorf("got %v for circles in parallel planes", pts)
	}
}

func TestEllipse2DLength(t *testing.T) {
	// A circle-shaped ellipse has circumference 2πr.
	e, err := NewEllipse2D(geom.OXY, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.Length()-4*math.Pi) > 1e-6 {
		t.Errorf("got length %v, want %v", e.Length(), 4*math.Pi)
	}

	// Ramanujan against quadrature.
	e2, _ := NewEllipse2D(geom.OXY, 3, 1)
	quad := e2.arcLengthTo(2 * math.Pi)
	if math.Abs(e2.Length()-quad) > 1e-3*quad {
		t.Errorf("approximate length %v disagrees with quadrature %v", e2.Length(), quad)
	}
}

func TestEllipse2DAbscissaRoundTrip(t *testing.T) {
	frame := geom.NewFrame2D(geom.Pt2(1, 1), geom.V2(1, 1), geom.V2(-1, 1))
	e, err := NewEllipse2D(frame, 3, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	total := e.arcLengthTo(2 * math.Pi)
	for _, s := range []float64{0, 0.5, 2, total / 2, total * 0.9} {
		p, err := e.PointAtAbscissa(s)
		if err != nil {
			t.Fatal(err)
		}
		if !e.PointBelongs(p, 1e-6) {
			t.Errorf("point at abscissa %v not on ellipse", s)
		}
		got, err := e.Abscissa(p)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-s) > 1e-6 {
			t.Errorf("abscissa round trip: got %v, want %v", got, s)
		}
	}
}

func TestEllipse2DLineIntersections(t *testing.T) {
	e, _ := NewEllipse2D(geom.OXY, 2, 1)

	// Major axis line.
	l, _ := NewLine2D(geom.Pt2(-3, 0), geom.Pt2(3, 0))
	pts := e.LineIntersections(l, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	if !containsPoint2(pts, geom.Pt2(2, 0), 1e-9) || !containsPoint2(pts, geom.Pt2(-2, 0), 1e-9) {
		t.Errorf("got %v", pts)
	}

	// Vertical line through a focus region.
	lv, _ := NewLine2D(geom.Pt2(1, -2), geom.Pt2(1, 2))
	pts = e.LineIntersections(lv, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points for vertical line, want 2", len(pts))
	}
	want := math.Sqrt(3) / 2
	if !containsPoint2(pts, geom.Pt2(1, want), 1e-9) || !containsPoint2(pts, geom.Pt2(1, -want), 1e-9) {
		t.Errorf("got %v", pts)
	}

	// Vertical tangent at the vertex.
	ltan, _ := NewLine2D(geom.Pt2(2, -1), geom.Pt2(2, 1))
	pts = e.LineIntersections(ltan, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points for tangent, want 1: %v", len(pts), pts)
	}
	approxPoint2(t, pts[0], geom.Pt2(2, 0), 1e-6)
}

func TestHyperbola2D(t *testing.T) {
	h, err := NewHyperbola2D(geom.OXY, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !h.PointBelongs(geom.Pt2(math.Sqrt2, 1), 1e-9) {
		t.Error("expected point on hyperbola")
	}
	if h.PointBelongs(geom.Pt2(-math.Sqrt2, 1), 1e-9) {
		t.Error("expected the negative branch to be excluded")
	}
	if got := h.GetX(1); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("got x %v, want %v", got, math.Sqrt2)
	}

	// Horizontal line cuts the branch once.
	l, _ := NewLine2D(geom.Pt2(-5, 1), geom.Pt2(5, 1))
	pts := h.LineIntersections(l, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1: %v", len(pts), pts)
	}
	approxPoint2(t, pts[0], geom.Pt2(math.Sqrt2, 1), 1e-9)

	// Vertical line right of the vertex cuts twice.
	lv, _ := NewLine2D(geom.Pt2(2, -5), geom.Pt2(2, 5))
	pts = h.LineIntersections(lv, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2: %v", len(pts), pts)
	}

	// Abscissa round trip through the vertex.
	p, err := h.PointAtAbscissa(1.25)
	if err != nil {
		t.Fatal(err)
	}
	s, err := h.Abscissa(p)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s-1.25) > 1e-6 {
		t.Errorf("abscissa round trip: got %v, want 1.25", s)
	}
}

func TestParabola2D(t *testing.T) {
	p, err := NewParabola2D(geom.OXY, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.GetY(2); math.Abs(got-1) > 1e-12 {
		t.Errorf("got y %v, want 1", got)
	}
	if !p.PointBelongs(geom.Pt2(2, 1), 1e-9) {
		t.Error("expected point on parabola")
	}

	// Horizontal line above the vertex cuts twice, symmetrically.
	l, _ := NewLine2D(geom.Pt2(-5, 1), geom.Pt2(5, 1))
	pts := p.LineIntersections(l, 1e-9)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2: %v", len(pts), pts)
	}
	if !containsPoint2(pts, geom.Pt2(2, 1), 1e-9) || !containsPoint2(pts, geom.Pt2(-2, 1), 1e-9) {
		t.Errorf("got %v", pts)
	}

	// The axis line is tangent in the parametric sense: one contact point.
	lv, _ := NewLine2D(geom.Pt2(0, -1), geom.Pt2(0, 1))
	pts = p.LineIntersections(lv, 1e-9)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1: %v", len(pts), pts)
	}
	approxPoint2(t, pts[0], geom.Pt2(0, 0), 1e-9)

	// Abscissa round trip.
	pt, err := p.PointAtAbscissa(-2)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Abscissa(pt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s+2) > 1e-6 {
		t.Errorf("abscissa round trip: got %v, want -2", s)
	}
}

func TestIntersections2DDispatch(t *testing.T) {
	l1, _ := NewLine2D(geom.Pt2(0, 0), geom.Pt2(1, 1))
	l2, _ := NewLine2D(geom.Pt2(0, 1), geom.Pt2(1, 0))
	pts, err := Intersections2D(l1, l2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	approxPoint2(t, pts[0], geom.Pt2(0.5, 0.5), 1e-9)

	// Reversed operand order goes through the (circle, line) entry.
	c, _ := NewCircle2D(geom.Pt2(0, 0), 1)
	l, _ := NewLine2D(geom.Pt2(-2, 0), geom.Pt2(2, 0))
	direct, err := Intersections2D(c, l, 0)
	if err != nil {
		t.Fatal(err)
	}
	swapped, err := Intersections2D(l, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(direct) != 2 || len(swapped) != 2 {
		t.Fatalf("got %d and %d points, want 2 and 2", len(direct), len(swapped))
	}
	for _, p := range direct {
		if !containsPoint2(swapped, p, 1e-9) {
			t.Errorf("symmetry violated: %v missing from %v", p, swapped)
		}
	}
}

func TestIntersections2DGenericFallback(t *testing.T) {
	// Ellipse-circle has no closed-form entry and exercises the sampled
	// machinery.
	e, _ := NewEllipse2D(geom.OXY, 2, 1)
	c, _ := NewCircle2D(geom.Pt2(0, 0), 1.5)
	pts, err := Intersections2D(e, c, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4: %v", len(pts), pts)
	}
	for _, p := range pts {
		if !e.PointBelongs(p, 1e-4) {
			t.Errorf("point %v not on ellipse", p)
		}
		if !c.PointBelongs(p, 1e-4) {
			t.Errorf("point %v not on circle", p)
		}
	}
}

func TestIntersections3DDispatch(t *testing.T) {
	l1, _ := NewLine3D(geom.Pt3(0, 0, 0), geom.Pt3(1, 1, 0))
	l2, _ := NewLine3D(geom.Pt3(0, 1, 0), geom.Pt3(1, 0, 0))
	pts, err := Intersections3D(l1, l2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	approxPoint3(t, pts[0], geom.Pt3(0.5, 0.5, 0), 1e-9)
}

func TestCircle2DAreaAndInside(t *testing.T) {
	c, err := NewCircle2D(geom.Pt2(1, 1), 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Area(); math.Abs(got-4*math.Pi) > 1e-12 {
		t.Errorf("got area %v, want %v", got, 4*math.Pi)
	}
	if !c.PointInside(geom.Pt2(2, 1), 1e-9) {
		t.Error("expected interior point inside")
	}
	if c.PointInside(geom.Pt2(5, 1), 1e-9) {
		t.Error("did not expect exterior point inside")
	}
}

func TestCircle3DFromCenterNormal(t *testing.T) {
	c, err := NewCircle3DFromCenterNormal(geom.Pt3(0, 0, 2), geom.V3(0, 0, 5), 1)
	if err != nil {
		t.Fatal(err)
	}
	approxPoint3(t, c.Center(), geom.Pt3(0, 0, 2), 1e-12)
	if math.Abs(c.Normal().Dot(geom.V3(0, 0, 1))) < 1-1e-12 {
		t.Errorf("got normal %v, want along z", c.Normal())
	}
	p, _ := c.PointAtAbscissa(0)
	if math.Abs(p.Z-2) > 1e-12 {
		t.Errorf("start point %v not in circle plane", p)
	}

	if _, err := NewCircle3DFromCenterNormal(geom.Pt3(0, 0, 0), geom.V3(0, 0, 0), 1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestLine2DIsBetweenPoints(t *testing.T) {
	l, _ := NewLine2D(geom.Pt2(0, 0), geom.Pt2(1, 0))
	if !l.IsBetweenPoints(geom.Pt2(0, -1), geom.Pt2(3, 2)) {
		t.Error("expected line between points on opposite sides")
	}
	if l.IsBetweenPoints(geom.Pt2(0, 1), geom.Pt2(3, 2)) {
		t.Error("did not expect line between points on the same side")
	}
	if l.IsBetweenPoints(geom.Pt2(1, 1), geom.Pt2(1, 1)) {
		t.Error("coincident points never straddle a line")
	}
}

func TestEllipse2DPointAngleWithMajorDir(t *testing.T) {
	e, err := NewEllipse2D(geom.OXY, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.PointAngleWithMajorDir(geom.Pt2(0, 1)); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("got angle %v, want pi/2", got)
	}
	if got := e.PointAngleWithMajorDir(geom.Pt2(-2, 0)); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("got angle %v, want pi", got)
	}
}

func TestLine2DRotationTranslation(t *testing.T) {
	l, err := NewLine2D(geom.Pt2(0, 0), geom.Pt2(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	rot := l.Rotation(geom.Pt2(0, 0), math.Pi/2)
	if math.Abs(rot.Dir.X) > 1e-12 || math.Abs(rot.Dir.Y-1) > 1e-12 {
		t.Errorf("rotated direction = %v, want (0,1)", rot.Dir)
	}
	tr := l.Translation(geom.V2(3, 4))
	approxPoint2(t, tr.Point, geom.Pt2(3, 4), 1e-12)
	if tr.Dir != l.Dir {
		t.Errorf("translation changed direction: %v", tr.Dir)
	}
}

func TestCircle2DFrameMappingRoundTrip(t *testing.T) {
	c := Circle2D{Frame: geom.NewFrame2D(geom.Pt2(1, 0), geom.V2(1, 0), geom.V2(0, 1)), Radius: 2}
	f := geom.NewFrame2D(geom.Pt2(5, 5), geom.V2(0, 1), geom.V2(-1, 0))

	mapped := c.FrameMapping(f, MapOld)
	approxPoint2(t, mapped.Center(), geom.Pt2(5, 6), 1e-12)

	back := mapped.FrameMapping(f, MapNew)
	approxPoint2(t, back.Center(), c.Center(), 1e-12)
	if back.Radius != c.Radius {
		t.Errorf("radius changed: %v", back.Radius)
	}
}

func TestCircleTo3DAndBack(t *testing.T) {
	c := Circle2D{Frame: geom.NewFrame2D(geom.Pt2(1, 2), geom.V2(1, 0), geom.V2(0, 1)), Radius: 3}
	c3 := c.To3D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	approxPoint3(t, c3.Center(), geom.Pt3(1, 2, 0), 1e-12)
	if c3.Radius != 3 {
		t.Errorf("radius = %v, want 3", c3.Radius)
	}
	back := c3.To2D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	approxPoint2(t, back.Center(), geom.Pt2(1, 2), 1e-12)
}

func TestLine3DTo2D(t *testing.T) {
	l, err := NewLine3D(geom.Pt3(0, 0, 0), geom.Pt3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	flat, err := l.To2D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	want := geom.V2(1, 1).Unit()
	if math.Abs(flat.Dir.X-want.X) > 1e-12 || math.Abs(flat.Dir.Y-want.Y) > 1e-12 {
		t.Errorf("projected dir = %v, want %v", flat.Dir, want)
	}

	vertical, err := NewLine3D(geom.Pt3(0, 0, 0), geom.Pt3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vertical.To2D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0)); !errors.Is(err, ErrDegenerate) {
		t.Errorf("perpendicular line projection: got %v, want ErrDegenerate", err)
	}
}

func TestEllipse3DTo2DDegenerate(t *testing.T) {
	e := Ellipse3D{
		Frame:     geom.NewFrame3D(geom.Pt3(0, 0, 0), geom.V3(0, 0, 1), geom.V3(1, 0, 0)),
		MajorAxis: 2,
		MinorAxis: 1,
	}
	if _, err := e.To2D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0)); !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestEllipse2DTo3DRoundTrip(t *testing.T) {
	e := Ellipse2D{Frame: geom.NewFrame2D(geom.Pt2(2, 1), geom.V2(1, 0), geom.V2(0, 1)), MajorAxis: 4, MinorAxis: 2}
	e3 := e.To3D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	approxPoint3(t, e3.Center(), geom.Pt3(2, 1, 0), 1e-12)
	back, err := e3.To2D(geom.Pt3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	approxPoint2(t, back.Center(), e.Center(), 1e-12)
	if back.MajorAxis != e.MajorAxis || back.MinorAxis != e.MinorAxis {
		t.Errorf("axes changed: %v %v", back.MajorAxis, back.MinorAxis)
	}
}

func TestParabolaRotation(t *testing.T) {
	p := Parabola2D{Frame: geom.OXY, FocalLength: 1}
	rot := p.Rotation(geom.Pt2(0, 0), math.Pi/2)
	// The local x axis maps onto global y.
	if math.Abs(rot.Frame.U.Y-1) > 1e-12 {
		t.Errorf("rotated frame U = %v, want (0,1)", rot.Frame.U)
	}
	if rot.FocalLength != 1 {
		t.Errorf("focal length changed: %v", rot.FocalLength)
	}
}
