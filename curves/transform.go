package curves

import (
	"fmt"

	"github.com/brepkit/curve/geom"
)

// MapSide selects the direction of a frame mapping. MapOld expresses a curve
// whose placement is given in frame-local coordinates globally; MapNew
// expresses a globally placed curve in frame-local coordinates.
type MapSide int

const (
	MapOld MapSide = iota
	MapNew
)

func mapFrame2D(f, target geom.Frame2D, side MapSide) geom.Frame2D {
	if side == MapOld {
		return geom.Frame2D{
			Origin: target.LocalToGlobal(f.Origin),
			U:      target.LocalToGlobalVector(f.U),
			V:      target.LocalToGlobalVector(f.V),
		}
	}
	return geom.Frame2D{
		Origin: target.GlobalToLocal(f.Origin),
		U:      target.GlobalToLocalVector(f.U),
		V:      target.GlobalToLocalVector(f.V),
	}
}

func mapFrame3D(f, target geom.Frame3D, side MapSide) geom.Frame3D {
	if side == MapOld {
		return geom.Frame3D{
			Origin: target.LocalToGlobal(f.Origin),
			U:      target.LocalToGlobalVector(f.U),
			V:      target.LocalToGlobalVector(f.V),
			W:      target.LocalToGlobalVector(f.W),
		}
	}
	return geom.Frame3D{
		Origin: target.GlobalToLocal(f.Origin),
		U:      target.GlobalToLocalVector(f.U),
		V:      target.GlobalToLocalVector(f.V),
		W:      target.GlobalToLocalVector(f.W),
	}
}

// Rotation returns the line rotated around center by angle radians.
func (l Line2D) Rotation(center geom.Point2D, angle float64) Line2D {
	p := l.Point.Rotate(center, angle)
	q := l.Point.Translate(l.Dir).Rotate(center, angle)
	return Line2D{Point: p, Dir: q.Sub(p).Unit()}
}

// Translation returns the line displaced by offset.
func (l Line2D) Translation(offset geom.Vector2D) Line2D {
	l.Point = l.Point.Translate(offset)
	return l
}

// FrameMapping re-expresses the line relative to a frame.
func (l Line2D) FrameMapping(f geom.Frame2D, side MapSide) Line2D {
	if side == MapOld {
		return Line2D{Point: f.LocalToGlobal(l.Point), Dir: f.LocalToGlobalVector(l.Dir).Unit()}
	}
	return Line2D{Point: f.GlobalToLocal(l.Point), Dir: f.GlobalToLocalVector(l.Dir).Unit()}
}

// To3D lifts the line onto the plane spanned by u and v at origin.
func (l Line2D) To3D(origin geom.Point3D, u, v geom.Vector3D) (Line3D, error) {
	p1 := l.Point.To3D(origin, u, v)
	p2 := l.Point.Translate(l.Dir).To3D(origin, u, v)
	return NewLine3D(p1, p2)
}

// Rotation returns the line rotated around the axis through center.
func (l Line3D) Rotation(center geom.Point3D, axis geom.Vector3D, angle float64) Line3D {
	return Line3D{
		Point: l.Point.Rotate(center, axis, angle),
		Dir:   l.Dir.Rotate(axis, angle),
	}
}

// Translation returns the line displaced by offset.
func (l Line3D) Translation(offset geom.Vector3D) Line3D {
	l.Point = l.Point.Translate(offset)
	return l
}

// FrameMapping re-expresses the line relative to a frame.
func (l Line3D) FrameMapping(f geom.Frame3D, side MapSide) Line3D {
	if side == MapOld {
		return Line3D{Point: f.LocalToGlobal(l.Point), Dir: f.LocalToGlobalVector(l.Dir).Unit()}
	}
	return Line3D{Point: f.GlobalToLocal(l.Point), Dir: f.GlobalToLocalVector(l.Dir).Unit()}
}

// To2D projects the line onto the plane spanned by u and v at origin. A line
// perpendicular to the plane has no planar image and is an error.
func (l Line3D) To2D(origin geom.Point3D, u, v geom.Vector3D) (Line2D, error) {
	p1 := l.Point.To2D(origin, u, v)
	p2 := l.Point.Translate(l.Dir).To2D(origin, u, v)
	line, err := NewLine2D(p1, p2)
	if err != nil {
		return Line2D{}, fmt.Errorf("%w: line perpendicular to the plane", ErrDegenerate)
	}
	return line, nil
}

// Rotation returns the circle rotated around center by angle radians.
func (c Circle2D) Rotation(center geom.Point2D, angle float64) Circle2D {
	c.Frame = c.Frame.Rotate(center, angle)
	return c
}

// Translation returns the circle displaced by offset.
func (c Circle2D) Translation(offset geom.Vector2D) Circle2D {
	c.Frame = c.Frame.Translate(offset)
	return c
}

// FrameMapping re-expresses the circle relative to a frame.
func (c Circle2D) FrameMapping(f geom.Frame2D, side MapSide) Circle2D {
	c.Frame = mapFrame2D(c.Frame, f, side)
	return c
}

// To3D lifts the circle onto the plane spanned by u and v at origin.
func (c Circle2D) To3D(origin geom.Point3D, u, v geom.Vector3D) Circle3D {
	center := c.Center().To3D(origin, u, v)
	return Circle3D{Frame: geom.NewFrame3D(center, u, v), Radius: c.Radius}
}

// Rotation returns the circle rotated around the axis through center.
func (c Circle3D) Rotation(center geom.Point3D, axis geom.Vector3D, angle float64) Circle3D {
	c.Frame = c.Frame.Rotate(center, axis, angle)
	return c
}

// Translation returns the circle displaced by offset.
func (c Circle3D) Translation(offset geom.Vector3D) Circle3D {
	c.Frame = c.Frame.Translate(offset)
	return c
}

// FrameMapping re-expresses the circle relative to a frame.
func (c Circle3D) FrameMapping(f geom.Frame3D, side MapSide) Circle3D {
	c.Frame = mapFrame3D(c.Frame, f, side)
	return c
}

// To2D projects the circle's center onto the plane spanned by u and v at
// origin, keeping the radius.
func (c Circle3D) To2D(origin geom.Point3D, u, v geom.Vector3D) Circle2D {
	center := c.Center().To2D(origin, u, v)
	return Circle2D{Frame: geom.NewFrame2D(center, geom.V2(1, 0), geom.V2(0, 1)), Radius: c.Radius}
}

// projectDir2D maps a spatial direction into plane coordinates; the second
// return value is false when the direction is perpendicular to the plane.
func projectDir2D(d, u, v geom.Vector3D) (geom.Vector2D, bool) {
	flat := geom.V2(d.Dot(u), d.Dot(v))
	if flat.Norm() < DefaultTolerance {
		return geom.Vector2D{}, false
	}
	return flat.Unit(), true
}

// Rotation returns the ellipse rotated around center by angle radians.
func (e Ellipse2D) Rotation(center geom.Point2D, angle float64) Ellipse2D {
	e.Frame = e.Frame.Rotate(center, angle)
	return e
}

// Translation returns the ellipse displaced by offset.
func (e Ellipse2D) Translation(offset geom.Vector2D) Ellipse2D {
	e.Frame = e.Frame.Translate(offset)
	return e
}

// FrameMapping re-expresses the ellipse relative to a frame.
func (e Ellipse2D) FrameMapping(f geom.Frame2D, side MapSide) Ellipse2D {
	e.Frame = mapFrame2D(e.Frame, f, side)
	return e
}

// To3D lifts the ellipse onto the plane spanned by u and v at origin.
func (e Ellipse2D) To3D(origin geom.Point3D, u, v geom.Vector3D) Ellipse3D {
	center := e.Center().To3D(origin, u, v)
	major := u.Mul(e.Frame.U.X).Add(v.Mul(e.Frame.U.Y))
	minor := u.Mul(e.Frame.V.X).Add(v.Mul(e.Frame.V.Y))
	return Ellipse3D{
		Frame:     geom.NewFrame3D(center, major, minor),
		MajorAxis: e.MajorAxis,
		MinorAxis: e.MinorAxis,
	}
}

// Rotation returns the ellipse rotated around the axis through center.
func (e Ellipse3D) Rotation(center geom.Point3D, axis geom.Vector3D, angle float64) Ellipse3D {
	e.Frame = e.Frame.Rotate(center, axis, angle)
	return e
}

// Translation returns the ellipse displaced by offset.
func (e Ellipse3D) Translation(offset geom.Vector3D) Ellipse3D {
	e.Frame = e.Frame.Translate(offset)
	return e
}

// FrameMapping re-expresses the ellipse relative to a frame.
func (e Ellipse3D) FrameMapping(f geom.Frame3D, side MapSide) Ellipse3D {
	e.Frame = mapFrame3D(e.Frame, f, side)
	return e
}

// To2D projects the ellipse onto the plane spanned by u and v at origin. An
// ellipse whose major axis is perpendicular to the plane is an error.
func (e Ellipse3D) To2D(origin geom.Point3D, u, v geom.Vector3D) (Ellipse2D, error) {
	major, ok := projectDir2D(e.Frame.U, u, v)
	if !ok {
		return Ellipse2D{}, fmt.Errorf("%w: major axis perpendicular to the plane", ErrDegenerate)
	}
	center := e.Center().To2D(origin, u, v)
	return Ellipse2D{
		Frame:     geom.NewFrame2D(center, major, major.Normal()),
		MajorAxis: e.MajorAxis,
		MinorAxis: e.MinorAxis,
	}, nil
}

// Rotation returns the hyperbola rotated around center by angle radians.
func (h Hyperbola2D) Rotation(center geom.Point2D, angle float64) Hyperbola2D {
	h.Frame = h.Frame.Rotate(center, angle)
	return h
}

// Translation returns the hyperbola displaced by offset.
func (h Hyperbola2D) Translation(offset geom.Vector2D) Hyperbola2D {
	h.Frame = h.Frame.Translate(offset)
	return h
}

// FrameMapping re-expresses the hyperbola relative to a frame.
func (h Hyperbola2D) FrameMapping(f geom.Frame2D, side MapSide) Hyperbola2D {
	h.Frame = mapFrame2D(h.Frame, f, side)
	return h
}

// To3D lifts the hyperbola onto the plane spanned by u and v at origin.
func (h Hyperbola2D) To3D(origin geom.Point3D, u, v geom.Vector3D) Hyperbola3D {
	center := h.Frame.Origin.To3D(origin, u, v)
	major := u.Mul(h.Frame.U.X).Add(v.Mul(h.Frame.U.Y))
	minor := u.Mul(h.Frame.V.X).Add(v.Mul(h.Frame.V.Y))
	return Hyperbola3D{
		Frame:         geom.NewFrame3D(center, major, minor),
		SemiMajorAxis: h.SemiMajorAxis,
		SemiMinorAxis: h.SemiMinorAxis,
	}
}

// Rotation returns the hyperbola rotated around the axis through center.
func (h Hyperbola3D) Rotation(center geom.Point3D, axis geom.Vector3D, angle float64) Hyperbola3D {
	h.Frame = h.Frame.Rotate(center, axis, angle)
	return h
}

// Translation returns the hyperbola displaced by offset.
func (h Hyperbola3D) Translation(offset geom.Vector3D) Hyperbola3D {
	h.Frame = h.Frame.Translate(offset)
	return h
}

// FrameMapping re-expresses the hyperbola relative to a frame.
func (h Hyperbola3D) FrameMapping(f geom.Frame3D, side MapSide) Hyperbola3D {
	h.Frame = mapFrame3D(h.Frame, f, side)
	return h
}

// To2D projects the hyperbola onto the plane spanned by u and v at origin.
func (h Hyperbola3D) To2D(origin geom.Point3D, u, v geom.Vector3D) (Hyperbola2D, error) {
	major, ok := projectDir2D(h.Frame.U, u, v)
	if !ok {
		return Hyperbola2D{}, fmt.Errorf("%w: transverse axis perpendicular to the plane", ErrDegenerate)
	}
	center := h.Frame.Origin.To2D(origin, u, v)
	return Hyperbola2D{
		Frame:         geom.NewFrame2D(center, major, major.Normal()),
		SemiMajorAxis: h.SemiMajorAxis,
		SemiMinorAxis: h.SemiMinorAxis,
	}, nil
}

// Rotation returns the parabola rotated around center by angle radians.
func (p Parabola2D) Rotation(center geom.Point2D, angle float64) Parabola2D {
	p.Frame = p.Frame.Rotate(center, angle)
	return p
}

// Translation returns the parabola displaced by offset.
func (p Parabola2D) Translation(offset geom.Vector2D) Parabola2D {
	p.Frame = p.Frame.Translate(offset)
	return p
}

// FrameMapping re-expresses the parabola relative to a frame.
func (p Parabola2D) FrameMapping(f geom.Frame2D, side MapSide) Parabola2D {
	p.Frame = mapFrame2D(p.Frame, f, side)
	return p
}

// To3D lifts the parabola onto the plane spanned by u and v at origin.
func (p Parabola2D) To3D(origin geom.Point3D, u, v geom.Vector3D) Parabola3D {
	vertex := p.Frame.Origin.To3D(origin, u, v)
	du := u.Mul(p.Frame.U.X).Add(v.Mul(p.Frame.U.Y))
	dv := u.Mul(p.Frame.V.X).Add(v.Mul(p.Frame.V.Y))
	return Parabola3D{
		Frame:       geom.NewFrame3D(vertex, du, dv),
		FocalLength: p.FocalLength,
	}
}

// Rotation returns the parabola rotated around the axis through center.
func (p Parabola3D) Rotation(center geom.Point3D, axis geom.Vector3D, angle float64) Parabola3D {
	p.Frame = p.Frame.Rotate(center, axis, angle)
	return p
}

// Translation returns the parabola displaced by offset.
func (p Parabola3D) Translation(offset geom.Vector3D) Parabola3D {
	p.Frame = p.Frame.Translate(offset)
	return p
}

// FrameMapping re-expresses the parabola relative to a frame.
func (p Parabola3D) FrameMapping(f geom.Frame3D, side MapSide) Parabola3D {
	p.Frame = mapFrame3D(p.Frame, f, side)
	return p
}

// To2D projects the parabola onto the plane spanned by u and v at origin.
func (p Parabola3D) To2D(origin geom.Point3D, u, v geom.Vector3D) (Parabola2D, error) {
	du, ok := projectDir2D(p.Frame.U, u, v)
	if !ok {
		return Parabola2D{}, fmt.Errorf("%w: parabola axis plane perpendicular to the target plane", ErrDegenerate)
	}
	vertex := p.Frame.Origin.To2D(origin, u, v)
	return Parabola2D{
		Frame:       geom.NewFrame2D(vertex, du, du.Normal()),
		FocalLength: p.FocalLength,
	}, nil
}
