// Package curves provides the analytic curve primitives of the kernel: lines,
// circles, ellipses, hyperbolas and parabolas, in the plane and in space,
// together with their intersection computations.
//
// Curves are infinite or periodic carriers; bounded portions of them live in
// the edges package.
package curves

import (
	"errors"

	"github.com/brepkit/curve/geom"
)

// DefaultTolerance is the geometric tolerance used when the caller does not
// supply one.
const DefaultTolerance = 1e-6

var (
	// ErrDegenerate is returned when inputs collapse a construction, such as
	// three collinear points defining a circle.
	ErrDegenerate = errors.New("curves: degenerate construction")
	// ErrUnsupported is returned when no intersection routine exists for a
	// pair of curve kinds.
	ErrUnsupported = errors.New("curves: unsupported curve pair")
	// ErrOutOfRange is returned when a parameter or abscissa lies outside the
	// valid range.
	ErrOutOfRange = errors.New("curves: out of range")
	// ErrNotOnCurve is returned when a point does not lie on the curve within
	// tolerance.
	ErrNotOnCurve = errors.New("curves: point not on curve")
)

// Kind discriminates curve types for intersection dispatch.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindEllipse
	KindHyperbola
	KindParabola
	KindBSpline
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindHyperbola:
		return "hyperbola"
	case KindParabola:
		return "parabola"
	case KindBSpline:
		return "bspline"
	default:
		return "unknown"
	}
}

// Curve2D is a planar curve carrier.
type Curve2D interface {
	Kind() Kind
	// Periodic reports whether the curve closes on itself.
	Periodic() bool
	// Length returns the curve length over one period, or +Inf for an
	// unbounded curve.
	Length() float64
	// PointAtAbscissa returns the point at curvilinear abscissa s from the
	// curve's start.
	PointAtAbscissa(s float64) (geom.Point2D, error)
	// Abscissa returns the curvilinear abscissa of a point on the curve.
	Abscissa(p geom.Point2D) (float64, error)
	// PointBelongs reports whether p lies on the curve within tol.
	PointBelongs(p geom.Point2D, tol float64) bool
	// DiscretizationPoints returns n points along the curve. Unbounded curves
	// discretize a representative finite portion.
	DiscretizationPoints(n int) []geom.Point2D
	// Reverse returns the curve with opposite orientation.
	Reverse() Curve2D
}

// Curve3D is a spatial curve carrier.
type Curve3D interface {
	Kind() Kind
	Periodic() bool
	Length() float64
	PointAtAbscissa(s float64) (geom.Point3D, error)
	Abscissa(p geom.Point3D) (float64, error)
	PointBelongs(p geom.Point3D, tol float64) bool
	DiscretizationPoints(n int) []geom.Point3D
	Reverse() Curve3D
}
