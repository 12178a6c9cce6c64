package nurbs

import (
	"fmt"
	"math"

	"github.com/brepkit/curve/internal/solve"
)

// ParametrizePoints computes per-point parameters in [0, 1] by the
// chord-length method, or the centripetal method when centripetal is true
// (The NURBS Book, eqs. 9.4-9.6).
func ParametrizePoints(points [][]float64, centripetal bool) []float64 {
	n := len(points)
	chords := make([]float64, n-1)
	total := 0.0
	for i := range chords {
		d := distance(points[i+1], points[i])
		if centripetal {
			d = math.Sqrt(d)
		}
		chords[i] = d
		total += d
	}
	params := make([]float64, n)
	for i := 1; i < n-1; i++ {
		params[i] = params[i-1] + chords[i-1]/total
	}
	params[n-1] = 1
	return params
}

// averageKnotVector builds the interpolation knot vector by knot averaging
// (eq. 9.8).
func averageKnotVector(degree int, params []float64) []float64 {
	n := len(params)
	m := n + degree
	knots := make([]float64, m+1)
	for i := 0; i <= degree; i++ {
		knots[m-i] = 1
	}
	for j := 1; j < n-degree; j++ {
		var s float64
		for i := j; i < j+degree; i++ {
			s += params[i]
		}
		knots[j+degree] = s / float64(degree)
	}
	return knots
}

// Interpolate computes the degree-d B-spline curve passing through all the
// given points, in order (The NURBS Book, section 9.2.1). Parameters come
// from the chord-length method, or the centripetal one when centripetal is
// true.
func Interpolate(points [][]float64, degree int, centripetal bool) (*Curve, error) {
	n := len(points)
	if n < degree+1 {
		return nil, fmt.Errorf("%w: %d points cannot define a degree-%d interpolant",
			ErrBadInput, n, degree)
	}
	params := ParametrizePoints(points, centripetal)
	knots := averageKnotVector(degree, params)

	// Coefficient matrix of basis functions at the parameters.
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		span := FindSpan(degree, n, knots, params[i])
		basis := BasisFunctions(degree, knots, span, params[i])
		for j := 0; j <= degree; j++ {
			a[i][span-degree+j] = basis[j]
		}
	}
	rhs := make([][]float64, n)
	for i, pt := range points {
		rhs[i] = append([]float64(nil), pt...)
	}
	ctrlPts, ok := solve.LinearSystem(a, rhs)
	if !ok {
		return nil, fmt.Errorf("%w: singular interpolation system", ErrBadInput)
	}
	return &Curve{
		Degree:        degree,
		Knots:         knots,
		ControlPoints: ctrlPts,
	}, nil
}

// Approximate computes a degree-d B-spline curve with numCtrlPts control
// points fitting the given points in the least-squares sense, with fixed end
// points (The NURBS Book, section 9.4.1, eqs. 9.63-9.67).
func Approximate(points [][]float64, degree, numCtrlPts int, centripetal bool) (*Curve, error) {
	m := len(points)
	if numCtrlPts < degree+1 {
		return nil, fmt.Errorf("%w: %d control points for degree %d", ErrBadInput, numCtrlPts, degree)
	}
	if numCtrlPts > m {
		return nil, fmt.Errorf("%w: %d control points exceed %d data points", ErrBadInput, numCtrlPts, m)
	}
	if numCtrlPts == m {
		return Interpolate(points, degree, centripetal)
	}
	dim := len(points[0])
	params := ParametrizePoints(points, centripetal)
	knots := approximationKnotVector(degree, numCtrlPts, params)

	// R_k = Q_k − N_0(u_k)·Q_0 − N_n(u_k)·Q_m  (eq. 9.63)
	basisAt := make([][]float64, m)
	spans := make([]int, m)
	for k := 0; k < m; k++ {
		spans[k] = FindSpan(degree, numCtrlPts, knots, params[k])
		basisAt[k] = BasisFunctions(degree, knots, spans[k], params[k])
	}
	basisValue := func(k, i int) float64 {
		j := i - (spans[k] - degree)
		if j < 0 || j > degree {
			return 0
		}
		return basisAt[k][j]
	}

	inner := numCtrlPts - 2
	rk := make([][]float64, m)
	for k := 0; k < m; k++ {
		r := append([]float64(nil), points[k]...)
		n0 := basisValue(k, 0)
		nn := basisValue(k, numCtrlPts-1)
		for d := 0; d < dim; d++ {
			r[d] -= n0*points[0][d] + nn*points[m-1][d]
		}
		rk[k] = r
	}

	// Normal equations NᵀN·P = NᵀR over the interior control points.
	ntn := make([][]float64, inner)
	rhs := make([][]float64, inner)
	for i := 0; i < inner; i++ {
		ntn[i] = make([]float64, inner)
		rhs[i] = make([]float64, dim)
		for j := 0; j < inner; j++ {
			var s float64
			for k := 1; k < m-1; k++ {
				s += basisValue(k, i+1) * basisValue(k, j+1)
			}
			ntn[i][j] = s
		}
		for d := 0; d < dim; d++ {
			var s float64
			for k := 1; k < m-1; k++ {
				s += basisValue(k, i+1) * rk[k][d]
			}
			rhs[i][d] = s
		}
	}
	interior, ok := solve.LinearSystem(ntn, rhs)
	if !ok {
		return nil, fmt.Errorf("%w: singular approximation system", ErrBadInput)
	}

	ctrlPts := make([][]float64, numCtrlPts)
	ctrlPts[0] = append([]float64(nil), points[0]...)
	ctrlPts[numCtrlPts-1] = append([]float64(nil), points[m-1]...)
	for i := 0; i < inner; i++ {
		ctrlPts[i+1] = interior[i]
	}
	return &Curve{
		Degree:        degree,
		Knots:         knots,
		ControlPoints: ctrlPts,
	}, nil
}

// approximationKnotVector places interior knots by averaging parameter groups
// (eqs. 9.68-9.69).
func approximationKnotVector(degree, numCtrlPts int, params []float64) []float64 {
	m := len(params)
	n := numCtrlPts
	knots := make([]float64, n+degree+1)
	for i := 0; i <= degree; i++ {
		knots[n+degree-i] = 1
	}
	d := float64(m) / float64(n-degree)
	for j := 1; j < n-degree; j++ {
		i := int(float64(j) * d)
		alpha := float64(j)*d - float64(i)
		knots[degree+j] = (1-alpha)*params[i-1] + alpha*params[i]
	}
	return knots
}
