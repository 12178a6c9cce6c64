package curves

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/geom"
)

// discretizeCount is the sample count of the generic intersection machinery.
const discretizeCount = 30

type intersector2D func(a, b Curve2D, tol float64) []geom.Point2D

// The dispatch table holds one entry per analytically solvable ordered pair.
// Lookups try (a, b), then (b, a), then fall back to the sampled machinery.
var intersectors2D = map[[2]Kind]intersector2D{
	{KindLine, KindLine}: func(a, b Curve2D, tol float64) []geom.Point2D {
		p, ok := a.(Line2D).Intersection(b.(Line2D), tol)
		if !ok {
			return nil
		}
		return []geom.Point2D{p}
	},
	{KindCircle, KindLine}: func(a, b Curve2D, tol float64) []geom.Point2D {
		return a.(Circle2D).LineIntersections(b.(Line2D), tol)
	},
	{KindCircle, KindCircle}: func(a, b Curve2D, tol float64) []geom.Point2D {
		return a.(Circle2D).CircleIntersections(b.(Circle2D), tol)
	},
	{KindEllipse, KindLine}: func(a, b Curve2D, tol float64) []geom.Point2D {
		return a.(Ellipse2D).LineIntersections(b.(Line2D), tol)
	},
	{KindHyperbola, KindLine}: func(a, b Curve2D, tol float64) []geom.Point2D {
		return a.(Hyperbola2D).LineIntersections(b.(Line2D), tol)
	},
	{KindParabola, KindLine}: func(a, b Curve2D, tol float64) []geom.Point2D {
		return a.(Parabola2D).LineIntersections(b.(Line2D), tol)
	},
}

// Intersections2D returns the intersection points of two planar curves. Pairs
// without a closed-form routine are solved by sampling and refinement.
func Intersections2D(a, b Curve2D, tol float64) ([]geom.Point2D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if fn, ok := intersectors2D[[2]Kind{a.Kind(), b.Kind()}]; ok {
		return fn(a, b, tol), nil
	}
	if fn, ok := intersectors2D[[2]Kind{b.Kind(), a.Kind()}]; ok {
		return fn(b, a, tol), nil
	}
	fa, a0, a1, err := paramSpan2D(a)
	if err != nil {
		return nil, err
	}
	fb, b0, b1, err := paramSpan2D(b)
	if err != nil {
		return nil, err
	}
	return RefineIntersections2D(fa, a0, a1, fb, b0, b1, tol), nil
}

// paramSpan2D exposes a curve as a point generator over a finite parameter
// window, matching the window its DiscretizationPoints cover.
func paramSpan2D(c Curve2D) (func(float64) geom.Point2D, float64, float64, error) {
	switch c := c.(type) {
	case Line2D:
		return func(s float64) geom.Point2D {
			p, _ := c.PointAtAbscissa(s)
			return p
		}, -float64(discretizeCount) / 2, float64(discretizeCount) / 2, nil
	case Circle2D:
		return func(s float64) geom.Point2D {
			p, _ := c.PointAtAbscissa(s)
			return p
		}, 0, c.Length(), nil
	case Ellipse2D:
		return c.pointAtAngle, 0, 2 * math.Pi, nil
	case Hyperbola2D:
		return c.pointAtParameter, -2, 2, nil
	case Parabola2D:
		return c.pointAtParameter, -4 * c.FocalLength, 4 * c.FocalLength, nil
	default:
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrUnsupported, c.Kind())
	}
}

type candidate struct {
	a0, a1 float64
	b0, b1 float64
}

// RefineIntersections2D intersects two sampled curve portions. Each portion
// is discretized into a polyline; crossing segment pairs become candidate
// parameter windows that are resampled until the windows are tight enough,
// then the segment crossing point is emitted. Duplicates within tol collapse.
func RefineIntersections2D(
	fa func(float64) geom.Point2D, a0, a1 float64,
	fb func(float64) geom.Point2D, b0, b1 float64,
	tol float64,
) []geom.Point2D {
	work := []candidate{{a0, a1, b0, b1}}
	var out []geom.Point2D
	for iter := 0; iter < 60 && len(work) > 0; iter++ {
		var next []candidate
		for _, c := range work {
			ptsA := samplePoints2D(fa, c.a0, c.a1, discretizeCount)
			ptsB := samplePoints2D(fb, c.b0, c.b1, discretizeCount)
			stepA := (c.a1 - c.a0) / float64(discretizeCount-1)
			stepB := (c.b1 - c.b0) / float64(discretizeCount-1)
			// Inflate the crossing test by the local chord size so that
			// near-miss discretizations are not lost between iterations.
			margin := maxChord(ptsA) + maxChord(ptsB)
			for i := 0; i+1 < len(ptsA); i++ {
				for j := 0; j+1 < len(ptsB); j++ {
					p, d := segmentClosestApproach(ptsA[i], ptsA[i+1], ptsB[j], ptsB[j+1])
					if d > margin+tol {
						continue
					}
					if maxChord(ptsA) <= tol && maxChord(ptsB) <= tol {
						if d <= tol && !p.InList(out, 10*tol) {
							out = append(out, p)
						}
						continue
					}
					next = append(next, candidate{
						a0: c.a0 + float64(i)*stepA, a1: c.a0 + float64(i+1)*stepA,
						b0: c.b0 + float64(j)*stepB, b1: c.b0 + float64(j+1)*stepB,
					})
				}
			}
		}
		work = mergeCandidates(next)
	}
	return out
}

func samplePoints2D(f func(float64) geom.Point2D, lo, hi float64, n int) []geom.Point2D {
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i] = f(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return out
}

func maxChord(pts []geom.Point2D) float64 {
	var m float64
	for i := 0; i+1 < len(pts); i++ {
		if d := pts[i].Distance(pts[i+1]); d > m {
			m = d
		}
	}
	return m
}

// segmentClosestApproach returns the closest approach of two segments: a
// point midway between the nearest points, and their distance. Crossing
// segments yield the crossing point and zero distance.
func segmentClosestApproach(a1, a2, b1, b2 geom.Point2D) (geom.Point2D, float64) {
	u := a2.Sub(a1)
	v := b2.Sub(b1)
	den := u.Cross(v)
	if den != 0 {
		w := b1.Sub(a1)
		t := w.Cross(v) / den
		s := w.Cross(u) / den
		if t >= 0 && t <= 1 && s >= 0 && s <= 1 {
			return a1.Translate(u.Mul(t)), 0
		}
	}
	// No interior crossing: take the best endpoint projection.
	best := math.Inf(1)
	var bp geom.Point2D
	check := func(p geom.Point2D, q1, q2 geom.Point2D) {
		d := q2.Sub(q1)
		t := 0.0
		if n2 := d.Norm2(); n2 > 0 {
			t = math.Min(math.Max(p.Sub(q1).Dot(d)/n2, 0), 1)
		}
		proj := q1.Translate(d.Mul(t))
		if dist := p.Distance(proj); dist < best {
			best = dist
			bp = p.Midpoint(proj)
		}
	}
	check(a1, b1, b2)
	check(a2, b1, b2)
	check(b1, a1, a2)
	check(b2, a1, a2)
	return bp, best
}

// mergeCandidates coalesces overlapping candidate windows so the worklist
// does not blow up on tangential configurations.
func mergeCandidates(cands []candidate) []candidate {
	var out []candidate
	for _, c := range cands {
		merged := false
		for i := range out {
			if overlaps(out[i].a0, out[i].a1, c.a0, c.a1) && overlaps(out[i].b0, out[i].b1, c.b0, c.b1) {
				out[i].a0 = math.Min(out[i].a0, c.a0)
				out[i].a1 = math.Max(out[i].a1, c.a1)
				out[i].b0 = math.Min(out[i].b0, c.b0)
				out[i].b1 = math.Max(out[i].b1, c.b1)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, c)
		}
	}
	return out
}

func overlaps(a0, a1, b0, b1 float64) bool {
	return a0 <= b1 && b0 <= a1
}

type intersector3D func(a, b Curve3D, tol float64) []geom.Point3D

var intersectors3D = map[[2]Kind]intersector3D{
	{KindLine, KindLine}: func(a, b Curve3D, tol float64) []geom.Point3D {
		p, ok := a.(Line3D).Intersection(b.(Line3D), tol)
		if !ok {
			return nil
		}
		return []geom.Point3D{p}
	},
	{KindCircle, KindLine}: func(a, b Curve3D, tol float64) []geom.Point3D {
		return a.(Circle3D).LineIntersections(b.(Line3D), tol)
	},
	{KindCircle, KindCircle}: func(a, b Curve3D, tol float64) []geom.Point3D {
		return a.(Circle3D).CircleIntersections(b.(Circle3D), tol)
	},
	{KindEllipse, KindLine}: func(a, b Curve3D, tol float64) []geom.Point3D {
		return a.(Ellipse3D).LineIntersections(b.(Line3D), tol)
	},
	{KindHyperbola, KindLine}: func(a, b Curve3D, tol float64) []geom.Point3D {
		return a.(Hyperbola3D).LineIntersections(b.(Line3D), tol)
	},
	{KindParabola, KindLine}: func(a, b Curve3D, tol float64) []geom.Point3D {
		return a.(Parabola3D).LineIntersections(b.(Line3D), tol)
	},
}

// Intersections3D returns the intersection points of two spatial curves.
func Intersections3D(a, b Curve3D, tol float64) ([]geom.Point3D, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if fn, ok := intersectors3D[[2]Kind{a.Kind(), b.Kind()}]; ok {
		return fn(a, b, tol), nil
	}
	if fn, ok := intersectors3D[[2]Kind{b.Kind(), a.Kind()}]; ok {
		return fn(b, a, tol), nil
	}
	fa, a0, a1, err := paramSpan3D(a)
	if err != nil {
		return nil, err
	}
	fb, b0, b1, err := paramSpan3D(b)
	if err != nil {
		return nil, err
	}
	return RefineIntersections3D(fa, a0, a1, fb, b0, b1, tol), nil
}

func paramSpan3D(c Curve3D) (func(float64) geom.Point3D, float64, float64, error) {
	switch c := c.(type) {
	case Line3D:
		return func(s float64) geom.Point3D {
			p, _ := c.PointAtAbscissa(s)
			return p
		}, -float64(discretizeCount) / 2, float64(discretizeCount) / 2, nil
	case Circle3D:
		return func(s float64) geom.Point3D {
			p, _ := c.PointAtAbscissa(s)
			return p
		}, 0, c.Length(), nil
	case Ellipse3D:
		return func(th float64) geom.Point3D {
			return c.lift(c.planar().pointAtAngle(th))
		}, 0, 2 * math.Pi, nil
	case Hyperbola3D:
		return func(t float64) geom.Point3D {
			return c.lift(c.planar().pointAtParameter(t))
		}, -2, 2, nil
	case Parabola3D:
		return func(t float64) geom.Point3D {
			return c.lift(c.planar().pointAtParameter(t))
		}, -4 * c.FocalLength, 4 * c.FocalLength, nil
	default:
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrUnsupported, c.Kind())
	}
}

// RefineIntersections3D intersects two sampled spatial curve portions.
// Bounding boxes of the sampled sub-ranges cull candidate windows; surviving
// windows are resampled until the closest approach decides the outcome.
func RefineIntersections3D(
	fa func(float64) geom.Point3D, a0, a1 float64,
	fb func(float64) geom.Point3D, b0, b1 float64,
	tol float64,
) []geom.Point3D {
	work := []candidate{{a0, a1, b0, b1}}
	var out []geom.Point3D
	for iter := 0; iter < 60 && len(work) > 0; iter++ {
		var next []candidate
		for _, c := range work {
			ptsA := samplePoints3D(fa, c.a0, c.a1, discretizeCount)
			ptsB := samplePoints3D(fb, c.b0, c.b1, discretizeCount)
			if !geom.BoxFromPoints(ptsA).Intersects(geom.BoxFromPoints(ptsB), tol) {
				continue
			}
			stepA := (c.a1 - c.a0) / float64(discretizeCount-1)
			stepB := (c.b1 - c.b0) / float64(discretizeCount-1)
			margin := maxChord3D(ptsA) + maxChord3D(ptsB)
			for i := 0; i+1 < len(ptsA); i++ {
				for j := 0; j+1 < len(ptsB); j++ {
					p, d := segmentClosestApproach3D(ptsA[i], ptsA[i+1], ptsB[j], ptsB[j+1])
					if d > margin+tol {
						continue
					}
					if maxChord3D(ptsA) <= tol && maxChord3D(ptsB) <= tol {
						if d <= tol && !p.InList(out, 10*tol) {
							out = append(out, p)
						}
						continue
					}
					next = append(next, candidate{
						a0: c.a0 + float64(i)*stepA, a1: c.a0 + float64(i+1)*stepA,
						b0: c.b0 + float64(j)*stepB, b1: c.b0 + float64(j+1)*stepB,
					})
				}
			}
		}
		work = mergeCandidates(next)
	}
	return out
}

func samplePoints3D(f func(float64) geom.Point3D, lo, hi float64, n int) []geom.Point3D {
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i] = f(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return out
}

func maxChord3D(pts []geom.Point3D) float64 {
	var m float64
	for i := 0; i+1 < len(pts); i++ {
		if d := pts[i].Distance(pts[i+1]); d > m {
			m = d
		}
	}
	return m
}

// segmentClosestApproach3D returns the closest approach of two spatial
// segments: a point midway between the nearest points, and their distance.
func segmentClosestApproach3D(a1, a2, b1, b2 geom.Point3D) (geom.Point3D, float64) {
	u := a2.Sub(a1)
	v := b2.Sub(b1)
	w := a1.Sub(b1)
	a := u.Dot(u)
	b := u.Dot(v)
	c := v.Dot(v)
	d := u.Dot(w)
	e := v.Dot(w)
	den := a*c - b*b
	var s, t float64
	if den > 1e-14 {
		s = (b*e - c*d) / den
		t = (a*e - b*d) / den
	} else {
		// Parallel segments.
		s = 0
		if b > c {
			t = d / b
		} else if c > 0 {
			t = e / c
		}
	}
	s = math.Min(math.Max(s, 0), 1)
	t = math.Min(math.Max(t, 0), 1)
	// Re-clamp each against the other's clamped value.
	if c > 0 {
		t = math.Min(math.Max((b*s+e)/c, 0), 1)
	}
	if a > 0 {
		s = math.Min(math.Max((b*t-d)/a, 0), 1)
	}
	pa := a1.Translate(u.Mul(s))
	pb := b1.Translate(v.Mul(t))
	return pa.Midpoint(pb), pa.Distance(pb)
}
