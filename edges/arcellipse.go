package edges

import (
	"fmt"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// ArcEllipse2D is an ellipse portion traversed from SA to EA in the
// ellipse's own orientation. SA and EA are curvilinear abscissas along the
// ellipse.
type ArcEllipse2D struct {
	Ellipse curves.Ellipse2D
	SA, EA  float64
}

// NewArcEllipse2D returns the arc of e running from start to end.
func NewArcEllipse2D(e curves.Ellipse2D, start, end geom.Point2D) (ArcEllipse2D, error) {
	if !e.PointBelongs(start, DefaultTolerance) || !e.PointBelongs(end, DefaultTolerance) {
		return ArcEllipse2D{}, fmt.Errorf("%w: endpoint off the ellipse", ErrNotOnEdge)
	}
	if start.IsClose(end, DefaultTolerance) {
		return ArcEllipse2D{}, fmt.Errorf("%w: coincident arc endpoints", ErrDegenerate)
	}
	sa, err := e.Abscissa(start)
	if err != nil {
		return ArcEllipse2D{}, err
	}
	ea, err := e.Abscissa(end)
	if err != nil {
		return ArcEllipse2D{}, err
	}
	return ArcEllipse2D{Ellipse: e, SA: sa, EA: ea}, nil
}

func (a ArcEllipse2D) Kind() curves.Kind { return curves.KindEllipse }

func (a ArcEllipse2D) Start() geom.Point2D {
	p, _ := a.Ellipse.PointAtAbscissa(a.SA)
	return p
}

func (a ArcEllipse2D) End() geom.Point2D {
	p, _ := a.Ellipse.PointAtAbscissa(a.EA)
	return p
}

func (a ArcEllipse2D) Length() float64 {
	l := a.EA - a.SA
	if l <= 0 {
		l += a.Ellipse.Perimeter()
	}
	return l
}

func (a ArcEllipse2D) Center() geom.Point2D { return a.Ellipse.Center() }

func (a ArcEllipse2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on arc of length %v", ErrOutOfRange, abs, a.Length())
	}
	return a.Ellipse.PointAtAbscissa(wrapInterval(a.SA+abs, a.Ellipse.Perimeter(), 0))
}

func (a ArcEllipse2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Ellipse.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, err := a.Ellipse.Abscissa(p)
	if err != nil {
		return 0, err
	}
	abs := wrapInterval(s-a.SA, a.Ellipse.Perimeter(), tol)
	if abs > a.Length()+tol {
		return 0, fmt.Errorf("%w: %v outside the arc", ErrNotOnEdge, p)
	}
	if abs > a.Length() {
		abs = a.Length()
	}
	return abs, nil
}

func (a ArcEllipse2D) PointBelongs(p geom.Point2D, tol float64) bool {
	_, err := a.Abscissa(p, tol)
	return err == nil
}

func (a ArcEllipse2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a ArcEllipse2D) Reverse() Edge2D {
	re := curves.Ellipse2D{
		Frame:     a.Ellipse.Frame.Reverse(),
		MajorAxis: a.Ellipse.MajorAxis,
		MinorAxis: a.Ellipse.MinorAxis,
	}
	sa, _ := re.Abscissa(a.End())
	ea, _ := re.Abscissa(a.Start())
	return ArcEllipse2D{Ellipse: re, SA: sa, EA: ea}
}

// Complementary returns the rest of the ellipse, from end back to start.
func (a ArcEllipse2D) Complementary() ArcEllipse2D {
	return ArcEllipse2D{Ellipse: a.Ellipse, SA: a.EA, EA: a.SA}
}

func (a ArcEllipse2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := wrapInterval(a.SA+abs, a.Ellipse.Perimeter(), 0)
	return ArcEllipse2D{Ellipse: a.Ellipse, SA: a.SA, EA: mid},
		ArcEllipse2D{Ellipse: a.Ellipse, SA: mid, EA: a.EA}, nil
}

func (a ArcEllipse2D) BoundingBox() geom.Rect {
	return geom.RectFromPoints(a.DiscretizationPoints(30))
}

// FullArcEllipse2D is a closed elliptical edge with a seam at Seam.
type FullArcEllipse2D struct {
	Ellipse curves.Ellipse2D
	Seam    geom.Point2D
}

// NewFullArcEllipse2D returns the closed elliptical edge starting and ending
// at seam.
func NewFullArcEllipse2D(e curves.Ellipse2D, seam geom.Point2D) (FullArcEllipse2D, error) {
	if !e.PointBelongs(seam, DefaultTolerance) {
		return FullArcEllipse2D{}, fmt.Errorf("%w: seam off the ellipse", ErrNotOnEdge)
	}
	return FullArcEllipse2D{Ellipse: e, Seam: seam}, nil
}

func (a FullArcEllipse2D) Kind() curves.Kind    { return curves.KindEllipse }
func (a FullArcEllipse2D) Start() geom.Point2D  { return a.Seam }
func (a FullArcEllipse2D) End() geom.Point2D    { return a.Seam }
func (a FullArcEllipse2D) Center() geom.Point2D { return a.Ellipse.Center() }

// Length is the quadrature perimeter, so abscissas wrap exactly where the
// ellipse's arc length inversion wraps.
func (a FullArcEllipse2D) Length() float64 { return a.Ellipse.Perimeter() }

func (a FullArcEllipse2D) PointAtAbscissa(abs float64) (geom.Point2D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point2D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, a.Length())
	}
	sa, err := a.Ellipse.Abscissa(a.Seam)
	if err != nil {
		return geom.Point2D{}, err
	}
	return a.Ellipse.PointAtAbscissa(wrapInterval(sa+abs, a.Length(), 0))
}

func (a FullArcEllipse2D) Abscissa(p geom.Point2D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Ellipse.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, err := a.Ellipse.Abscissa(p)
	if err != nil {
		return 0, err
	}
	sa, err := a.Ellipse.Abscissa(a.Seam)
	if err != nil {
		return 0, err
	}
	return wrapInterval(s-sa, a.Length(), tol), nil
}

func (a FullArcEllipse2D) PointBelongs(p geom.Point2D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return a.Ellipse.PointBelongs(p, tol)
}

func (a FullArcEllipse2D) DiscretizationPoints(n int) []geom.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point2D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a FullArcEllipse2D) Reverse() Edge2D {
	return FullArcEllipse2D{
		Ellipse: curves.Ellipse2D{
			Frame:     a.Ellipse.Frame.Reverse(),
			MajorAxis: a.Ellipse.MajorAxis,
			MinorAxis: a.Ellipse.MinorAxis,
		},
		Seam: a.Seam,
	}
}

func (a FullArcEllipse2D) SplitAt(p geom.Point2D) (Edge2D, Edge2D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	first, err := NewArcEllipse2D(a.Ellipse, a.Seam, p)
	if err != nil {
		return nil, nil, err
	}
	second, err := NewArcEllipse2D(a.Ellipse, p, a.Seam)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (a FullArcEllipse2D) BoundingBox() geom.Rect {
	return a.Ellipse.BoundingBox()
}

// ArcEllipse3D is an ellipse portion in space.
type ArcEllipse3D struct {
	Ellipse curves.Ellipse3D
	SA, EA  float64
}

// NewArcEllipse3D returns the arc of e running from start to end.
func NewArcEllipse3D(e curves.Ellipse3D, start, end geom.Point3D) (ArcEllipse3D, error) {
	if !e.PointBelongs(start, DefaultTolerance) || !e.PointBelongs(end, DefaultTolerance) {
		return ArcEllipse3D{}, fmt.Errorf("%w: endpoint off the ellipse", ErrNotOnEdge)
	}
	if start.IsClose(end, DefaultTolerance) {
		return ArcEllipse3D{}, fmt.Errorf("%w: coincident arc endpoints", ErrDegenerate)
	}
	sa, err := e.Abscissa(start)
	if err != nil {
		return ArcEllipse3D{}, err
	}
	ea, err := e.Abscissa(end)
	if err != nil {
		return ArcEllipse3D{}, err
	}
	return ArcEllipse3D{Ellipse: e, SA: sa, EA: ea}, nil
}

func (a ArcEllipse3D) Kind() curves.Kind { return curves.KindEllipse }

func (a ArcEllipse3D) Start() geom.Point3D {
	p, _ := a.Ellipse.PointAtAbscissa(a.SA)
	return p
}

func (a ArcEllipse3D) End() geom.Point3D {
	p, _ := a.Ellipse.PointAtAbscissa(a.EA)
	return p
}

func (a ArcEllipse3D) Length() float64 {
	l := a.EA - a.SA
	if l <= 0 {
		l += a.Ellipse.Perimeter()
	}
	return l
}

func (a ArcEllipse3D) Center() geom.Point3D { return a.Ellipse.Center() }

func (a ArcEllipse3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on arc of length %v", ErrOutOfRange, abs, a.Length())
	}
	return a.Ellipse.PointAtAbscissa(wrapInterval(a.SA+abs, a.Ellipse.Perimeter(), 0))
}

func (a ArcEllipse3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Ellipse.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, err := a.Ellipse.Abscissa(p)
	if err != nil {
		return 0, err
	}
	abs := wrapInterval(s-a.SA, a.Ellipse.Perimeter(), tol)
	if abs > a.Length()+tol {
		return 0, fmt.Errorf("%w: %v outside the arc", ErrNotOnEdge, p)
	}
	if abs > a.Length() {
		abs = a.Length()
	}
	return abs, nil
}

func (a ArcEllipse3D) PointBelongs(p geom.Point3D, tol float64) bool {
	_, err := a.Abscissa(p, tol)
	return err == nil
}

func (a ArcEllipse3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a ArcEllipse3D) Reverse() Edge3D {
	re := curves.Ellipse3D{
		Frame:     a.Ellipse.Frame.Reverse(),
		MajorAxis: a.Ellipse.MajorAxis,
		MinorAxis: a.Ellipse.MinorAxis,
	}
	sa, _ := re.Abscissa(a.End())
	ea, _ := re.Abscissa(a.Start())
	return ArcEllipse3D{Ellipse: re, SA: sa, EA: ea}
}

// Complementary returns the rest of the ellipse, from end back to start.
func (a ArcEllipse3D) Complementary() ArcEllipse3D {
	return ArcEllipse3D{Ellipse: a.Ellipse, SA: a.EA, EA: a.SA}
}

func (a ArcEllipse3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	mid := wrapInterval(a.SA+abs, a.Ellipse.Perimeter(), 0)
	return ArcEllipse3D{Ellipse: a.Ellipse, SA: a.SA, EA: mid},
		ArcEllipse3D{Ellipse: a.Ellipse, SA: mid, EA: a.EA}, nil
}

func (a ArcEllipse3D) BoundingBox() geom.Box {
	return geom.BoxFromPoints(a.DiscretizationPoints(30))
}

// FullArcEllipse3D is a closed elliptical edge in space with a seam at Seam.
type FullArcEllipse3D struct {
	Ellipse curves.Ellipse3D
	Seam    geom.Point3D
}

// NewFullArcEllipse3D returns the closed elliptical edge starting and ending
// at seam.
func NewFullArcEllipse3D(e curves.Ellipse3D, seam geom.Point3D) (FullArcEllipse3D, error) {
	if !e.PointBelongs(seam, DefaultTolerance) {
		return FullArcEllipse3D{}, fmt.Errorf("%w: seam off the ellipse", ErrNotOnEdge)
	}
	return FullArcEllipse3D{Ellipse: e, Seam: seam}, nil
}

func (a FullArcEllipse3D) Kind() curves.Kind    { return curves.KindEllipse }
func (a FullArcEllipse3D) Start() geom.Point3D  { return a.Seam }
func (a FullArcEllipse3D) End() geom.Point3D    { return a.Seam }
func (a FullArcEllipse3D) Center() geom.Point3D { return a.Ellipse.Center() }

// Length is the quadrature perimeter, matching the arc length inversion.
func (a FullArcEllipse3D) Length() float64 { return a.Ellipse.Perimeter() }

func (a FullArcEllipse3D) PointAtAbscissa(abs float64) (geom.Point3D, error) {
	if abs < -DefaultTolerance || abs > a.Length()+DefaultTolerance {
		return geom.Point3D{}, fmt.Errorf("%w: %v on edge of length %v", ErrOutOfRange, abs, a.Length())
	}
	sa, err := a.Ellipse.Abscissa(a.Seam)
	if err != nil {
		return geom.Point3D{}, err
	}
	return a.Ellipse.PointAtAbscissa(wrapInterval(sa+abs, a.Length(), 0))
}

func (a FullArcEllipse3D) Abscissa(p geom.Point3D, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if !a.Ellipse.PointBelongs(p, tol) {
		return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, p)
	}
	s, err := a.Ellipse.Abscissa(p)
	if err != nil {
		return 0, err
	}
	sa, err := a.Ellipse.Abscissa(a.Seam)
	if err != nil {
		return 0, err
	}
	return wrapInterval(s-sa, a.Length(), tol), nil
}

func (a FullArcEllipse3D) PointBelongs(p geom.Point3D, tol float64) bool {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return a.Ellipse.PointBelongs(p, tol)
}

func (a FullArcEllipse3D) DiscretizationPoints(n int) []geom.Point3D {
	if n < 2 {
		n = 2
	}
	out := make([]geom.Point3D, n)
	for i := range out {
		out[i], _ = a.PointAtAbscissa(a.Length() * float64(i) / float64(n-1))
	}
	return out
}

func (a FullArcEllipse3D) Reverse() Edge3D {
	return FullArcEllipse3D{
		Ellipse: curves.Ellipse3D{
			Frame:     a.Ellipse.Frame.Reverse(),
			MajorAxis: a.Ellipse.MajorAxis,
			MinorAxis: a.Ellipse.MinorAxis,
		},
		Seam: a.Seam,
	}
}

func (a FullArcEllipse3D) SplitAt(p geom.Point3D) (Edge3D, Edge3D, error) {
	abs, err := a.Abscissa(p, DefaultTolerance)
	if err != nil {
		return nil, nil, err
	}
	if err := splitAbscissa(abs, a.Length(), DefaultTolerance); err != nil {
		return nil, nil, err
	}
	first, err := NewArcEllipse3D(a.Ellipse, a.Seam, p)
	if err != nil {
		return nil, nil, err
	}
	second, err := NewArcEllipse3D(a.Ellipse, p, a.Seam)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (a FullArcEllipse3D) BoundingBox() geom.Box {
	// No closed form for an arbitrarily oriented ellipse; sample it.
	return geom.BoxFromPoints(a.DiscretizationPoints(60))
}
