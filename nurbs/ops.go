package nurbs

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/internal/solve"
)

// knotSnapTol is the tolerance under which a split parameter is snapped onto
// an existing knot, so that near-knot splits do not create sliver spans.
const knotSnapTol = 1e-12

// InsertKnot returns a copy of the curve with u inserted r times (algorithm
// A5.1, applied in homogeneous coordinates). The multiplicity of u may not
// exceed the degree.
func (c *Curve) InsertKnot(u float64, r int) (*Curve, error) {
	lo, hi := c.Domain()
	if u < lo || u > hi {
		return nil, fmt.Errorf("%w: knot %v outside domain [%v, %v]", ErrBadInput, u, lo, hi)
	}
	s := KnotMultiplicity(c.Knots, u, knotSnapTol)
	if r+s > c.Degree {
		return nil, fmt.Errorf("%w: inserting %v %d times exceeds degree %d (multiplicity %d)",
			ErrBadInput, u, r, c.Degree, s)
	}
	if r == 0 {
		return c.Copy(), nil
	}

	p := c.Degree
	hpts := c.homogeneous()
	np := len(hpts)
	k := FindSpan(p, np, c.Knots, u)

	newKnots := make([]float64, len(c.Knots)+r)
	copy(newKnots, c.Knots[:k+1])
	for i := 1; i <= r; i++ {
		newKnots[k+i] = u
	}
	copy(newKnots[k+r+1:], c.Knots[k+1:])

	newPts := make([][]float64, np+r)
	for i := 0; i <= k-p; i++ {
		newPts[i] = hpts[i]
	}
	for i := k - s; i < np; i++ {
		newPts[i+r] = hpts[i]
	}

	tmp := make([][]float64, p-s+1)
	for i := 0; i <= p-s; i++ {
		tmp[i] = append([]float64(nil), hpts[k-p+i]...)
	}
	var last int
	for j := 1; j <= r; j++ {
		l := k - p + j
		for i := 0; i <= p-j-s; i++ {
			alpha := (u - c.Knots[l+i]) / (c.Knots[i+k+1] - c.Knots[l+i])
			for d := range tmp[i] {
				tmp[i][d] = alpha*tmp[i+1][d] + (1-alpha)*tmp[i][d]
			}
		}
		newPts[l] = append([]float64(nil), tmp[0]...)
		newPts[k+r-j-s] = append([]float64(nil), tmp[p-j-s]...)
		last = l
	}
	for i := last + 1; i < k-s; i++ {
		newPts[i] = append([]float64(nil), tmp[i-last]...)
	}

	pts, weights := fromHomogeneous(newPts, c.Rational())
	return &Curve{
		Degree:        p,
		Knots:         newKnots,
		ControlPoints: pts,
		Weights:       weights,
	}, nil
}

// SplitAt splits the curve at parameter u into two curves that share the
// split point. Parameters within knotSnapTol of an existing knot are snapped
// onto it. Splitting at a domain bound is an error.
func (c *Curve) SplitAt(u float64) (*Curve, *Curve, error) {
	lo, hi := c.Domain()
	for _, k := range c.Knots {
		if math.Abs(k-u) <= knotSnapTol {
			u = k
			break
		}
	}
	if u <= lo || u >= hi {
		return nil, nil, fmt.Errorf("%w: split parameter %v not interior to [%v, %v]",
			ErrBadInput, u, lo, hi)
	}

	p := c.Degree
	s := KnotMultiplicity(c.Knots, u, knotSnapTol)
	full, err := c.InsertKnot(u, p-s)
	if err != nil {
		return nil, nil, err
	}

	// The split point index in the refined knot vector.
	span := FindSpan(p, len(full.ControlPoints), full.Knots, u) + 1

	leftKnots := append([]float64(nil), full.Knots[:span]...)
	leftKnots = append(leftKnots, u)
	rightKnots := append([]float64(nil), full.Knots[span-p-1:]...)
	for i := 0; i <= p; i++ {
		rightKnots[i] = u
	}

	nLeft := len(leftKnots) - p - 1
	left := &Curve{
		Degree:        p,
		Knots:         leftKnots,
		ControlPoints: full.ControlPoints[:nLeft],
	}
	right := &Curve{
		Degree:        p,
		Knots:         rightKnots,
		ControlPoints: full.ControlPoints[nLeft-1:],
	}
	if full.Weights != nil {
		left.Weights = full.Weights[:nLeft]
		right.Weights = full.Weights[nLeft-1:]
	}
	return left, right, nil
}

// Patch is one Bézier segment of a decomposed curve, with the parameter
// range it covers on the original curve.
type Patch struct {
	Curve *Curve
	Range [2]float64
}

// Decompose splits the curve into Bézier patches, one per non-empty knot
// span, each annotated with its parameter range on the original curve.
func (c *Curve) Decompose() []Patch {
	rest := c.Copy()
	var out []Patch
	for {
		var splitAt float64
		found := false
		restLo, restHi := rest.Domain()
		for _, k := range rest.Knots {
			if k > restLo+knotSnapTol && k < restHi-knotSnapTol {
				splitAt = k
				found = true
				break
			}
		}
		if !found {
			out = append(out, Patch{Curve: rest, Range: [2]float64{restLo, restHi}})
			break
		}
		left, right, err := rest.SplitAt(splitAt)
		if err != nil {
			// No interior split possible, keep the remainder whole.
			out = append(out, Patch{Curve: rest, Range: [2]float64{restLo, restHi}})
			break
		}
		out = append(out, Patch{Curve: left, Range: [2]float64{restLo, splitAt}})
		rest = right
	}
	return out
}

// Length returns the arc length of the curve over its full domain, computed
// by adaptive Gauss-Legendre quadrature of the derivative norm.
func (c *Curve) Length(accuracy float64) float64 {
	lo, hi := c.Domain()
	return solve.Integrate(func(u float64) float64 {
		ders := c.Derivatives(u, 1)
		return norm(ders[1])
	}, lo, hi, accuracy)
}
