package step

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/brepkit/curve/curves"
	"github.com/brepkit/curve/edges"
	"github.com/brepkit/curve/geom"
	"github.com/brepkit/curve/nurbs"
)

func TestAxis2Placement3D(t *testing.T) {
	w := NewWriter(10)
	id := w.Axis2Placement3D(geom.OXYZ)
	if id != 14 {
		t.Errorf("got id %d, want 14", id)
	}
	want := "#11 = CARTESIAN_POINT('',(0.0,0.0,0.0));\n" +
		"#12 = DIRECTION('',(0.0,0.0,1.0));\n" +
		"#13 = DIRECTION('',(1.0,0.0,0.0));\n" +
		"#14 = AXIS2_PLACEMENT_3D('',#11,#12,#13);\n"
	if got := w.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if w.NextID() != 15 {
		t.Errorf("got next id %d, want 15", w.NextID())
	}
}

func TestCircleRecordScalesToMillimeters(t *testing.T) {
	c, err := curves.NewCircle3D(geom.OXYZ, 0.002)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(0)
	id := w.Circle3D(c)
	wantLast := "#5 = CIRCLE('',#4,2.0);\n"
	if got := w.String(); !strings.HasSuffix(got, wantLast) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, wantLast)
	}
	if id != 5 {
		t.Errorf("got id %d, want 5", id)
	}
}

func TestEllipseRecord(t *testing.T) {
	e, err := curves.NewEllipse3D(geom.OXYZ, 0.003, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(0)
	w.Ellipse3D(e)
	if !strings.Contains(w.String(), "ELLIPSE('',#4,3.0,1.0);") {
		t.Errorf("missing ellipse record in:\n%s", w.String())
	}
}

func TestBSplineCurveWithKnots(t *testing.T) {
	c, err := nurbs.NewCurve(2,
		[][]float64{{0, 0}, {0.001, 0.002}, {0.002, 0}},
		[]float64{0, 0, 0, 1, 1, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(0)
	id := w.BSplineCurveWithKnots(c)
	want := "#1 = CARTESIAN_POINT('',(0.0,0.0));\n" +
		"#2 = CARTESIAN_POINT('',(1.0,2.0));\n" +
		"#3 = CARTESIAN_POINT('',(2.0,0.0));\n" +
		"#4 = B_SPLINE_CURVE_WITH_KNOTS('',2,(#1,#2,#3),.UNSPECIFIED.,.F.,.F.,(3,3),(0.0,1.0),.UNSPECIFIED.);\n"
	if got := w.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if id != 4 {
		t.Errorf("got id %d, want 4", id)
	}
}

func TestEdgeCurveSegment(t *testing.T) {
	seg, err := edges.NewLineSegment3D(geom.Pt3(0, 0, 0), geom.Pt3(0.001, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(0)
	id, err := EdgeCurve(w, seg)
	if err != nil {
		t.Fatal(err)
	}
	got := w.String()
	if !strings.Contains(got, "LINE('',#1,#2);") {
		t.Errorf("missing line record in:\n%s", got)
	}
	if !strings.Contains(got, "VERTEX_POINT('',#4);") {
		t.Errorf("missing vertex record in:\n%s", got)
	}
	wantLast := "#8 = EDGE_CURVE('',#5,#7,#3,.T.);\n"
	if !strings.HasSuffix(got, wantLast) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, wantLast)
	}
	if id != 8 {
		t.Errorf("got id %d, want 8", id)
	}
}

func TestTrimmedCurveArc(t *testing.T) {
	arc, err := edges.NewArc3DFromThreePoints(
		geom.Pt3(0.001, 0, 0), geom.Pt3(0, 0.001, 0), geom.Pt3(-0.001, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(100)
	id, err := TrimmedCurve(w, arc)
	if err != nil {
		t.Fatal(err)
	}
	got := w.String()
	if !strings.Contains(got, "CIRCLE('',#104,1.0);") {
		t.Errorf("missing circle record in:\n%s", got)
	}
	if !strings.Contains(got, "TRIMMED_CURVE('',#105,(#106),(#107),.T.,.CARTESIAN.);") {
		t.Errorf("missing trimmed curve record in:\n%s", got)
	}
	if id != 108 {
		t.Errorf("got id %d, want 108", id)
	}
}

func TestRecordIDsStrictlyIncrease(t *testing.T) {
	b, err := edges.NewBSplineCurve3DFromPoints([]geom.Point3D{
		geom.Pt3(0, 0, 0), geom.Pt3(0.001, 0.001, 0), geom.Pt3(0.002, 0, 0.001), geom.Pt3(0.003, 0, 0),
	}, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(0)
	if _, err := EdgeCurve(w, b); err != nil {
		t.Fatal(err)
	}
	seg, _ := edges.NewLineSegment3D(geom.Pt3(0, 0, 0), geom.Pt3(0, 0.001, 0))
	if _, err := TrimmedCurve(w, seg); err != nil {
		t.Fatal(err)
	}

	re := regexp.MustCompile(`(?m)^#(\d+) = `)
	prev := 0
	for _, m := range re.FindAllStringSubmatch(w.String(), -1) {
		id, _ := strconv.Atoi(m[1])
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
	if prev == 0 {
		t.Fatal("no records written")
	}
}
