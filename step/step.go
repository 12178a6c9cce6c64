// Package step emits ISO-10303-21 geometric entity records. A Writer assigns
// strictly increasing entity IDs as records are appended, so nested emission
// (a circle emitting its placement, a placement emitting its point and
// directions) stays monotonic. Lengths are written in millimeters.
package step

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/edges"
	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/nurbs"
)

// unitScale converts model lengths to the millimeters STEP files carry.
const unitScale = 1000

// Writer accumulates entity records.
type Writer struct {
	buf  strings.Builder
	next int
}

// NewWriter returns a writer whose first record gets ID startID+1.
func NewWriter(startID int) *Writer {
	return &Writer{next: startID}
}

// NextID returns the ID the next record will receive.
func (w *Writer) NextID() int { return w.next + 1 }

// String returns the accumulated records.
func (w *Writer) String() string { return w.buf.String() }

// record appends one entity and returns its ID.
func (w *Writer) record(format string, args ...any) int {
	w.next++
	fmt.Fprintf(&w.buf, "#%d = "+format+";\n", append([]any{w.next}, args...)...)
	return w.next
}

// fnum renders a float the way STEP files expect, always with a decimal
// point.
func fnum(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func flist(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fnum(v)
	}
	return strings.Join(parts, ",")
}

func ilist(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func refList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// CartesianPoint2D writes a planar point in millimeters.
func (w *Writer) CartesianPoint2D(p geom.Point2D) int {
	return w.record("CARTESIAN_POINT('',(%s,%s))", fnum(p.X*unitScale), fnum(p.Y*unitScale))
}

// CartesianPoint3D writes a point in millimeters.
func (w *Writer) CartesianPoint3D(p geom.Point3D) int {
	return w.record("CARTESIAN_POINT('',(%s,%s,%s))",
		fnum(p.X*unitScale), fnum(p.Y*unitScale), fnum(p.Z*unitScale))
}

// Direction2D writes a unit direction.
func (w *Writer) Direction2D(v geom.Vector2D) int {
	u := v.Unit()
	return w.record("DIRECTION('',(%s,%s))", fnum(u.X), fnum(u.Y))
}

// Direction3D writes a unit direction.
func (w *Writer) Direction3D(v geom.Vector3D) int {
	u := v.Unit()
	return w.record("DIRECTION('',(%s,%s,%s))", fnum(u.X), fnum(u.Y), fnum(u.Z))
}

// VertexPoint writes a topological vertex referencing a cartesian point.
func (w *Writer) VertexPoint(pointID int) int {
	return w.record("VERTEX_POINT('',#%d)", pointID)
}

// Axis2Placement2D writes a planar placement: origin and x direction.
func (w *Writer) Axis2Placement2D(f geom.Frame2D) int {
	origin := w.CartesianPoint2D(f.Origin)
	dir := w.Direction2D(f.U)
	return w.record("AXIS2_PLACEMENT_2D('',#%d,#%d)", origin, dir)
}

// Axis2Placement3D writes a placement: origin, axis (z) and reference (x)
// directions.
func (w *Writer) Axis2Placement3D(f geom.Frame3D) int {
	origin := w.CartesianPoint3D(f.Origin)
	axis := w.Direction3D(f.W)
	ref := w.Direction3D(f.U)
	return w.record("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", origin, axis, ref)
}

// Line3D writes an infinite line as a point and a direction vector.
func (w *Writer) Line3D(l curves.Line3D) int {
	p := w.CartesianPoint3D(l.Point)
	d := w.Direction3D(l.Dir)
	return w.record("LINE('',#%d,#%d)", p, d)
}

// Circle3D writes a circle on its placement, radius in millimeters.
func (w *Writer) Circle3D(c curves.Circle3D) int {
	frame := w.Axis2Placement3D(c.Frame)
	return w.record("CIRCLE('',#%d,%s)", frame, fnum(c.Radius*unitScale))
}

// Ellipse3D writes an ellipse on its placement, half-axes in millimeters.
func (w *Writer) Ellipse3D(e curves.Ellipse3D) int {
	frame := w.Axis2Placement3D(e.Frame)
	return w.record("ELLIPSE('',#%d,%s,%s)",
		frame, fnum(e.MajorAxis*unitScale), fnum(e.MinorAxis*unitScale))
}

// BSplineCurveWithKnots writes a spline's control points and knot data. The
// control points are written with the curve's own dimension.
func (w *Writer) BSplineCurveWithKnots(c *nurbs.Curve) int {
	ids := make([]int, len(c.ControlPoints))
	for i, p := range c.ControlPoints {
		if len(p) == 2 {
			ids[i] = w.CartesianPoint2D(geom.Pt2(p[0], p[1]))
		} else {
			ids[i] = w.CartesianPoint3D(geom.Pt3(p[0], p[1], p[2]))
		}
	}
	knots, mults := uniqueKnots(c.Knots)
	return w.record("B_SPLINE_CURVE_WITH_KNOTS('',%d,(%s),.UNSPECIFIED.,.F.,.F.,(%s),(%s),.UNSPECIFIED.)",
		c.Degree, refList(ids), ilist(mults), flist(knots))
}

// uniqueKnots collapses a knot vector into distinct values and their
// multiplicities.
func uniqueKnots(knots []float64) ([]float64, []int) {
	var vals []float64
	var mults []int
	for _, k := range knots {
		if len(vals) > 0 && k == vals[len(vals)-1] {
			mults[len(mults)-1]++
			continue
		}
		vals = append(vals, k)
		mults = append(mults, 1)
	}
	return vals, mults
}

// carrierID writes the unbounded curve under an edge and returns its ID.
func carrierID(w *Writer, e edges.Edge3D) (int, error) {
	switch e := e.(type) {
	case edges.LineSegment3D:
		return w.Line3D(e.Line()), nil
	case edges.Arc3D:
		return w.Circle3D(e.Circle), nil
	case edges.FullArc3D:
		return w.Circle3D(e.Circle), nil
	case edges.ArcEllipse3D:
		return w.Ellipse3D(e.Ellipse), nil
	case edges.FullArcEllipse3D:
		return w.Ellipse3D(e.Ellipse), nil
	case *edges.BSplineCurve3D:
		return w.BSplineCurveWithKnots(e.Curve), nil
	}
	return 0, fmt.Errorf("%w: no STEP record for %v edge", curves.ErrUnsupported, e.Kind())
}

// EdgeCurve writes an edge as an EDGE_CURVE bounded by two vertex points.
func EdgeCurve(w *Writer, e edges.Edge3D) (int, error) {
	curve, err := carrierID(w, e)
	if err != nil {
		return 0, err
	}
	start := w.VertexPoint(w.CartesianPoint3D(e.Start()))
	end := w.VertexPoint(w.CartesianPoint3D(e.End()))
	return w.record("EDGE_CURVE('',#%d,#%d,#%d,.T.)", start, end, curve), nil
}

// TrimmedCurve writes an edge as a TRIMMED_CURVE with cartesian trim points.
func TrimmedCurve(w *Writer, e edges.Edge3D) (int, error) {
	curve, err := carrierID(w, e)
	if err != nil {
		return 0, err
	}
	start := w.CartesianPoint3D(e.Start())
	end := w.CartesianPoint3D(e.End())
	return w.record("TRIMMED_CURVE('',#%d,(#%d),(#%d),.T.,.CARTESIAN.)", curve, start, end), nil
}
