package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	opts = append(opts, cmpopts.EquateApprox(0, 1e-12))
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt2(-10, 0), Pt2(0, 0).Translate(V2(-10, 0)))
	diff(t, V3(1, 2, 3), Pt3(2, 4, 6).Sub(Pt3(1, 2, 3)))
	diff(t, Pt2(1, 1), Pt2(0, 0).Midpoint(Pt2(2, 2)))
	diff(t, Pt3(0.25, 0, 0), Pt3(0, 0, 0).Lerp(Pt3(1, 0, 0), 0.25))
}

func TestPointDistance(t *testing.T) {
	if d := Pt2(0, 10).Distance(Pt2(0, 5)); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := Pt2(-11, 1).Distance(Pt2(-7, -2)); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := Pt3(1, 2, 3).Distance(Pt3(1, 2, 3)); d != 0 {
		t.Errorf("got distance %v, want 0", d)
	}
	if d := Pt3(0, 0, 0).DistanceSquared(Pt3(1, 2, 2)); d != 9 {
		t.Errorf("got squared distance %v, want 9", d)
	}
}

func TestPointRotate(t *testing.T) {
	got := Pt2(1, 0).Rotate(Pt2(0, 0), math.Pi/2)
	diff(t, Pt2(0, 1), got)

	got3 := Pt3(1, 0, 0).Rotate(Pt3(0, 0, 0), V3(0, 0, 1), math.Pi/2)
	diff(t, Pt3(0, 1, 0), got3)

	// Rotation about an off-origin center.
	got = Pt2(2, 1).Rotate(Pt2(1, 1), math.Pi)
	diff(t, Pt2(0, 1), got)
}

func TestVectorProducts(t *testing.T) {
	if d := V2(1, 2).Dot(V2(3, 4)); d != 11 {
		t.Errorf("got dot %v, want 11", d)
	}
	if c := V2(1, 0).Cross(V2(0, 1)); c != 1 {
		t.Errorf("got cross %v, want 1", c)
	}
	diff(t, V3(0, 0, 1), V3(1, 0, 0).Cross(V3(0, 1, 0)))
	if n := V3(2, 3, 6).Norm(); n != 7 {
		t.Errorf("got norm %v, want 7", n)
	}
}

func TestVectorAngles(t *testing.T) {
	approxEqual := func(x, y float64) bool {
		return math.Abs(x-y) < 1e-12
	}

	if a := SinCosAngle(0, 1); !approxEqual(a, math.Pi/2) {
		t.Errorf("got angle %v, want %v", a, math.Pi/2)
	}
	if a := SinCosAngle(0, -1); !approxEqual(a, 3*math.Pi/2) {
		t.Errorf("got angle %v, want %v", a, 3*math.Pi/2)
	}
	if a := SinCosAngle(1, 0); a != 0 {
		t.Errorf("got angle %v, want 0", a)
	}

	if a := ClockwiseAngle(V2(1, 0), V2(0, 1)); !approxEqual(a, 3*math.Pi/2) {
		t.Errorf("got clockwise angle %v, want %v", a, 3*math.Pi/2)
	}
	if a := ClockwiseAngle(V2(1, 0), V2(0, -1)); !approxEqual(a, math.Pi/2) {
		t.Errorf("got clockwise angle %v, want %v", a, math.Pi/2)
	}
}

func TestVectorColinear(t *testing.T) {
	if !V3(1, 2, 3).IsColinearTo(V3(-2, -4, -6), 1e-9) {
		t.Error("expected antiparallel vectors to be colinear")
	}
	if V3(1, 0, 0).IsColinearTo(V3(0, 1, 0), 1e-9) {
		t.Error("expected orthogonal vectors not to be colinear")
	}
}

func TestVectorRotate(t *testing.T) {
	got := V3(1, 0, 0).Rotate(V3(0, 0, 1), math.Pi/2)
	diff(t, V3(0, 1, 0), got)

	// Rodrigues formula around a diagonal axis keeps the norm.
	v := V3(1, 2, 3)
	r := v.Rotate(V3(1, 1, 1), 0.7)
	if math.Abs(v.Norm()-r.Norm()) > 1e-12 {
		t.Errorf("rotation changed the norm: %v vs %v", v.Norm(), r.Norm())
	}
}

func TestAnyPerpendicular(t *testing.T) {
	for _, v := range []Vector3D{
		V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), V3(1, 2, 3), V3(-0.1, 0.5, -2),
	} {
		p := v.AnyPerpendicular()
		if math.Abs(p.Dot(v)) > 1e-12 {
			t.Errorf("AnyPerpendicular(%v) = %v, not perpendicular", v, p)
		}
		if math.Abs(p.Norm()-1) > 1e-12 {
			t.Errorf("AnyPerpendicular(%v) = %v, not unit", v, p)
		}
	}
}

func TestFrame2DRoundTrip(t *testing.T) {
	f := NewFrame2D(Pt2(3, -1), V2(1, 1), V2(-1, 1))
	p := Pt2(0.5, 2)
	diff(t, p, f.LocalToGlobal(f.GlobalToLocal(p)))
	diff(t, p, f.GlobalToLocal(f.LocalToGlobal(p)))
}

func TestFrame3DRoundTrip(t *testing.T) {
	f := NewFrame3D(Pt3(1, 2, 3), V3(0, 1, 0), V3(0, 0, 1))
	p := Pt3(-4, 0.5, 2)
	diff(t, p, f.LocalToGlobal(f.GlobalToLocal(p)))

	v := V3(1, -2, 0.25)
	diff(t, v, f.LocalToGlobalVector(f.GlobalToLocalVector(v)))
}

func TestFrame3DFromNormal(t *testing.T) {
	f := NewFrame3DFromNormal(Pt3(0, 0, 5), V3(0, 0, 2))
	if math.Abs(f.U.Dot(f.V)) > 1e-12 || math.Abs(f.U.Dot(f.W)) > 1e-12 {
		t.Error("basis not orthogonal")
	}
	diff(t, V3(0, 0, 1), f.W)
	diff(t, f.W, f.U.Cross(f.V))
}

func TestPlaneLineIntersection(t *testing.T) {
	f := OXYZ
	p, ok := f.PlaneLineIntersection(Pt3(1, 1, -1), Pt3(1, 1, 1), 1e-9)
	if !ok {
		t.Fatal("expected an intersection")
	}
	diff(t, Pt3(1, 1, 0), p)

	// Line parallel to the plane.
	if _, ok := f.PlaneLineIntersection(Pt3(0, 0, 1), Pt3(1, 0, 1), 1e-9); ok {
		t.Error("expected no intersection for a parallel line")
	}
}

func TestPlanePlaneIntersection(t *testing.T) {
	xy := OXYZ
	xz := NewFrame3D(Pt3(0, 0, 0), V3(1, 0, 0), V3(0, 0, 1))
	p1, p2, ok := xy.PlanePlaneIntersection(xz, 1e-9)
	if !ok {
		t.Fatal("expected an intersection line")
	}
	// Both points must lie on the X axis.
	for _, p := range []Point3D{p1, p2} {
		if math.Abs(p.Y) > 1e-12 || math.Abs(p.Z) > 1e-12 {
			t.Errorf("point %v not on the x axis", p)
		}
	}
	if p1.Distance(p2) == 0 {
		t.Error("expected two distinct points on the intersection line")
	}

	// Parallel planes.
	shifted := xy.Translate(V3(0, 0, 1))
	if _, _, ok := xy.PlanePlaneIntersection(shifted, 1e-9); ok {
		t.Error("expected no intersection for parallel planes")
	}
}

func TestPlanePlacement(t *testing.T) {
	origin := Pt3(1, 0, 0)
	u := V3(0, 1, 0)
	v := V3(0, 0, 1)
	p2 := Pt3(1, 3, 4).To2D(origin, u, v)
	diff(t, Pt2(3, 4), p2)
	diff(t, Pt3(1, 3, 4), p2.To3D(origin, u, v))
}

func TestRect(t *testing.T) {
	r := NewRectFromPoints(Pt2(2, 2), Pt2(0, 0))
	diff(t, Rect{0, 0, 2, 2}, r)

	if !r.Contains(Pt2(1, 1), 0) {
		t.Error("expected point inside")
	}
	if r.Contains(Pt2(3, 1), 0) {
		t.Error("expected point outside")
	}
	if !r.Contains(Pt2(2.05, 1), 0.1) {
		t.Error("expected point inside with tolerance")
	}

	o := Rect{1, 1, 3, 3}
	diff(t, Rect{0, 0, 3, 3}, r.Union(o))
	if !r.Intersects(o, 0) {
		t.Error("expected overlapping rectangles to intersect")
	}
	if r.Intersects(Rect{5, 5, 6, 6}, 0) {
		t.Error("expected disjoint rectangles not to intersect")
	}
	// Disjoint but within tolerance.
	if !r.Intersects(Rect{2.5, 0, 3, 1}, 0.6) {
		t.Error("expected near rectangles to intersect with tolerance")
	}

	diff(t, r, RectFromPoints([]Point2D{Pt2(0, 2), Pt2(2, 0), Pt2(1, 1)}))
}

func TestBox(t *testing.T) {
	b := NewBoxFromPoints(Pt3(1, 1, 1), Pt3(-1, -1, -1))
	diff(t, Box{Min: Pt3(-1, -1, -1), Max: Pt3(1, 1, 1)}, b)

	if !b.Contains(Pt3(0, 0, 0), 0) {
		t.Error("expected point inside")
	}
	if b.Contains(Pt3(0, 0, 2), 0) {
		t.Error("expected point outside")
	}

	o := NewBoxFromPoints(Pt3(0.5, 0.5, 0.5), Pt3(2, 2, 2))
	if !b.Intersects(o, 0) {
		t.Error("expected overlapping boxes to intersect")
	}
	far := NewBoxFromPoints(Pt3(5, 5, 5), Pt3(6, 6, 6))
	if b.Intersects(far, 0) {
		t.Error("expected disjoint boxes not to intersect")
	}

	diff(t, b, BoxFromPoints([]Point3D{Pt3(-1, 1, 0), Pt3(1, -1, 1), Pt3(0, 0, -1)}))
}

func TestPointInList(t *testing.T) {
	pts := []Point2D{Pt2(0, 0), Pt2(1, 0)}
	if !Pt2(1+1e-9, 0).InList(pts, 1e-6) {
		t.Error("expected near point to be found")
	}
	if Pt2(2, 0).InList(pts, 1e-6) {
		t.Error("expected far point not to be found")
	}
}
