// Package edges provides bounded curve portions: line segments, circular and
// elliptical arcs, full arcs, and B-spline edges, in the plane and in space.
// Every edge is parametrized by curvilinear abscissa from its start point.
package edges

import (
	"errors"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/geom"
)

// DefaultTolerance mirrors the curve layer's default geometric tolerance.
const DefaultTolerance = curves.DefaultTolerance

var (
	// ErrOutOfRange is returned for an abscissa outside [0, Length].
	ErrOutOfRange = errors.New("edges: abscissa out of range")
	// ErrNotOnEdge is returned when a point does not lie on the edge within
	// tolerance.
	ErrNotOnEdge = errors.New("edges: point not on edge")
	// ErrDegenerate is returned when inputs collapse a construction.
	ErrDegenerate = errors.New("edges: degenerate construction")
	// ErrCannotMerge is returned when two edges cannot be joined into one.
	ErrCannotMerge = errors.New("edges: cannot merge")
)

// Edge2D is a bounded planar curve portion.
type Edge2D interface {
	Kind() curves.Kind
	Start() geom.Point2D
	End() geom.Point2D
	// Length returns the edge's arc length.
	Length() float64
	// PointAtAbscissa returns the point at arc length s from the start,
	// with s in [0, Length].
	PointAtAbscissa(s float64) (geom.Point2D, error)
	// Abscissa returns the arc length from the start to p, which must lie on
	// the edge within tol.
	Abscissa(p geom.Point2D, tol float64) (float64, error)
	PointBelongs(p geom.Point2D, tol float64) bool
	// DiscretizationPoints returns n points from start to end.
	DiscretizationPoints(n int) []geom.Point2D
	Reverse() Edge2D
	// SplitAt splits the edge at an interior point into two edges sharing it.
	SplitAt(p geom.Point2D) (Edge2D, Edge2D, error)
	BoundingBox() geom.Rect
}

// Edge3D is a bounded spatial curve portion.
type Edge3D interface {
	Kind() curves.Kind
	Start() geom.Point3D
	End() geom.Point3D
	Length() float64
	PointAtAbscissa(s float64) (geom.Point3D, error)
	Abscissa(p geom.Point3D, tol float64) (float64, error)
	PointBelongs(p geom.Point3D, tol float64) bool
	DiscretizationPoints(n int) []geom.Point3D
	Reverse() Edge3D
	SplitAt(p geom.Point3D) (Edge3D, Edge3D, error)
	BoundingBox() geom.Box
}

// wrapInterval maps a value onto [0, period). Values within tol of the period
// collapse to 0 so that the seam of a periodic edge is a single location.
func wrapInterval(v, period, tol float64) float64 {
	for v < 0 {
		v += period
	}
	for v >= period {
		v -= period
	}
	if period-v <= tol {
		return 0
	}
	return v
}

// splitAbscissa validates that s is interior to (0, length) before a split.
func splitAbscissa(s, length, tol float64) error {
	if s <= tol || s >= length-tol {
		return ErrOutOfRange
	}
	return nil
}
