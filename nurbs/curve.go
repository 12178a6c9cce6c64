package nurbs

import (
	"fmt"
	"math"
)

// Curve is a B-spline or NURBS curve over control points of any dimension.
// A nil Weights slice means the curve is non-rational.
type Curve struct {
	Degree        int
	Knots         []float64
	ControlPoints [][]float64
	Weights       []float64
}

// NewCurve validates and returns a curve. A nil knots slice gets a clamped
// uniform knot vector. A nil weights slice makes the curve non-rational.
func NewCurve(degree int, ctrlPts [][]float64, knots, weights []float64) (*Curve, error) {
	if degree < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrBadInput, degree)
	}
	if len(ctrlPts) < degree+1 {
		return nil, fmt.Errorf("%w: %d control points for degree %d, need at least %d",
			ErrBadInput, len(ctrlPts), degree, degree+1)
	}
	if knots == nil {
		knots = UniformKnotVector(degree, len(ctrlPts))
	} else if err := ValidateKnotVector(degree, len(ctrlPts), knots); err != nil {
		return nil, err
	}
	if weights != nil && len(weights) != len(ctrlPts) {
		return nil, fmt.Errorf("%w: %d weights for %d control points",
			ErrBadInput, len(weights), len(ctrlPts))
	}
	return &Curve{
		Degree:        degree,
		Knots:         knots,
		ControlPoints: ctrlPts,
		Weights:       weights,
	}, nil
}

// Rational reports whether the curve carries weights.
func (c *Curve) Rational() bool {
	return c.Weights != nil
}

// Dimension returns the coordinate dimension of the control points.
func (c *Curve) Dimension() int {
	return len(c.ControlPoints[0])
}

// Domain returns the parameter interval the curve is defined on.
func (c *Curve) Domain() (float64, float64) {
	return c.Knots[c.Degree], c.Knots[len(c.Knots)-c.Degree-1]
}

// ClampParameter clamps u into the curve's domain.
func (c *Curve) ClampParameter(u float64) float64 {
	lo, hi := c.Domain()
	return math.Min(math.Max(u, lo), hi)
}

// homogeneous returns the control points lifted to homogeneous coordinates,
// (w·x, ..., w). For a non-rational curve w is 1.
func (c *Curve) homogeneous() [][]float64 {
	dim := c.Dimension()
	out := make([][]float64, len(c.ControlPoints))
	for i, pt := range c.ControlPoints {
		w := 1.0
		if c.Weights != nil {
			w = c.Weights[i]
		}
		hp := make([]float64, dim+1)
		for j, x := range pt {
			hp[j] = x * w
		}
		hp[dim] = w
		out[i] = hp
	}
	return out
}

// fromHomogeneous projects homogeneous control points back to weighted
// cartesian points, splitting off the weights.
func fromHomogeneous(hpts [][]float64, rational bool) ([][]float64, []float64) {
	dim := len(hpts[0]) - 1
	pts := make([][]float64, len(hpts))
	var weights []float64
	if rational {
		weights = make([]float64, len(hpts))
	}
	for i, hp := range hpts {
		w := hp[dim]
		pt := make([]float64, dim)
		for j := range pt {
			pt[j] = hp[j] / w
		}
		pts[i] = pt
		if rational {
			weights[i] = w
		}
	}
	return pts, weights
}

// Evaluate returns the curve point at parameter u, clamped to the domain.
func (c *Curve) Evaluate(u float64) []float64 {
	u = c.ClampParameter(u)
	dim := c.Dimension()
	span := FindSpan(c.Degree, len(c.ControlPoints), c.Knots, u)
	basis := BasisFunctions(c.Degree, c.Knots, span, u)

	if !c.Rational() {
		pt := make([]float64, dim)
		for j := 0; j <= c.Degree; j++ {
			cp := c.ControlPoints[span-c.Degree+j]
			for k := range pt {
				pt[k] += basis[j] * cp[k]
			}
		}
		return pt
	}

	pt := make([]float64, dim)
	var wSum float64
	for j := 0; j <= c.Degree; j++ {
		idx := span - c.Degree + j
		w := c.Weights[idx] * basis[j]
		cp := c.ControlPoints[idx]
		for k := range pt {
			pt[k] += w * cp[k]
		}
		wSum += w
	}
	for k := range pt {
		pt[k] /= wSum
	}
	return pt
}

// Derivatives returns the curve point and derivatives up to the given order
// at u: out[0] is the point, out[k] the k-th derivative. Rational curves use
// the quotient-rule expansion over homogeneous derivatives (algorithm A4.2).
func (c *Curve) Derivatives(u float64, order int) [][]float64 {
	u = c.ClampParameter(u)
	dim := c.Dimension()
	du := min(order, c.Degree)
	span := FindSpan(c.Degree, len(c.ControlPoints), c.Knots, u)
	ders := BasisFunctionsDerivatives(c.Degree, c.Knots, span, u, du)

	if !c.Rational() {
		out := make([][]float64, order+1)
		for k := range out {
			out[k] = make([]float64, dim)
		}
		for k := 0; k <= du; k++ {
			for j := 0; j <= c.Degree; j++ {
				cp := c.ControlPoints[span-c.Degree+j]
				for d := range out[k] {
					out[k][d] += ders[k][j] * cp[d]
				}
			}
		}
		return out
	}

	// Homogeneous derivatives A^(k) and w^(k).
	aders := make([][]float64, order+1)
	wders := make([]float64, order+1)
	for k := range aders {
		aders[k] = make([]float64, dim)
	}
	for k := 0; k <= du; k++ {
		for j := 0; j <= c.Degree; j++ {
			idx := span - c.Degree + j
			w := c.Weights[idx] * ders[k][j]
			cp := c.ControlPoints[idx]
			for d := 0; d < dim; d++ {
				aders[k][d] += w * cp[d]
			}
			wders[k] += w
		}
	}

	out := make([][]float64, order+1)
	for k := 0; k <= order; k++ {
		v := append([]float64(nil), aders[k]...)
		for i := 1; i <= k; i++ {
			b := binomial(k, i) * wders[i]
			for d := range v {
				v[d] -= b * out[k-i][d]
			}
		}
		for d := range v {
			v[d] /= wders[0]
		}
		out[k] = v
	}
	return out
}

// Sample returns n points evenly spaced in parameter over the curve's domain.
func (c *Curve) Sample(n int) [][]float64 {
	if n < 2 {
		n = 2
	}
	lo, hi := c.Domain()
	out := make([][]float64, n)
	for i := range out {
		u := lo + (hi-lo)*float64(i)/float64(n-1)
		out[i] = c.Evaluate(u)
	}
	return out
}

// Copy returns a deep copy of the curve.
func (c *Curve) Copy() *Curve {
	cp := &Curve{
		Degree: c.Degree,
		Knots:  append([]float64(nil), c.Knots...),
	}
	cp.ControlPoints = make([][]float64, len(c.ControlPoints))
	for i, pt := range c.ControlPoints {
		cp.ControlPoints[i] = append([]float64(nil), pt...)
	}
	if c.Weights != nil {
		cp.Weights = append([]float64(nil), c.Weights...)
	}
	return cp
}

// Reverse returns the curve traversed in the opposite direction.
func (c *Curve) Reverse() *Curve {
	out := c.Copy()
	lo := c.Knots[0]
	hi := c.Knots[len(c.Knots)-1]
	for i, k := range c.Knots {
		out.Knots[len(c.Knots)-1-i] = lo + hi - k
	}
	n := len(c.ControlPoints)
	for i := range out.ControlPoints {
		out.ControlPoints[i] = append([]float64(nil), c.ControlPoints[n-1-i]...)
	}
	if c.Weights != nil {
		for i := range out.Weights {
			out.Weights[i] = c.Weights[n-1-i]
		}
	}
	return out
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	out := 1.0
	for i := 0; i < k; i++ {
		out = out * float64(n-i) / float64(i+1)
	}
	return out
}

// distance returns the euclidean distance between coordinate slices.
func distance(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
