// Package nurbs implements the B-spline machinery shared by the planar and
// spatial spline types: basis functions, evaluation, derivatives, knot
// insertion, splitting, decomposition into Bézier patches, and global
// interpolation and approximation.
//
// The algorithms follow Piegl & Tiller, "The NURBS Book", 2nd edition.
// Control points are coordinate slices so the same engine serves any
// dimension.
package nurbs

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadKnotVector is returned when a knot vector fails validation.
	ErrBadKnotVector = errors.New("nurbs: invalid knot vector")
	// ErrBadInput is returned when construction or fitting inputs are
	// inconsistent.
	ErrBadInput = errors.New("nurbs: invalid input")
)

// UniformKnotVector returns a clamped uniform knot vector on [0, 1] for the
// given degree and number of control points.
func UniformKnotVector(degree, numCtrlPts int) []float64 {
	n := numCtrlPts - 1
	m := n + degree + 1
	knots := make([]float64, m+1)
	for i := 0; i <= degree; i++ {
		knots[i] = 0
		knots[m-i] = 1
	}
	inner := n - degree
	for i := 1; i <= inner; i++ {
		knots[degree+i] = float64(i) / float64(inner+1)
	}
	return knots
}

// ValidateKnotVector checks that knots is non-decreasing and sized for the
// given degree and control point count.
func ValidateKnotVector(degree, numCtrlPts int, knots []float64) error {
	if want := numCtrlPts + degree + 1; len(knots) != want {
		return fmt.Errorf("%w: got %d knots, want %d for degree %d with %d control points",
			ErrBadKnotVector, len(knots), want, degree, numCtrlPts)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return fmt.Errorf("%w: knots decrease at index %d", ErrBadKnotVector, i)
		}
	}
	return nil
}

// StandardizeKnotVector rescales knots affinely onto [0, 1].
func StandardizeKnotVector(knots []float64) []float64 {
	lo := knots[0]
	hi := knots[len(knots)-1]
	span := hi - lo
	out := make([]float64, len(knots))
	for i, k := range knots {
		out[i] = (k - lo) / span
	}
	return out
}

// KnotMultiplicity returns how many times u appears in knots, within tol.
func KnotMultiplicity(knots []float64, u, tol float64) int {
	mult := 0
	for _, k := range knots {
		if math.Abs(k-u) <= tol {
			mult++
		}
	}
	return mult
}

// FindSpan locates the knot span index containing u (algorithm A2.1). The
// parameter numCtrlPts is the number of control points of the curve.
func FindSpan(degree, numCtrlPts int, knots []float64, u float64) int {
	n := numCtrlPts - 1
	if u >= knots[n+1] {
		return n
	}
	if u <= knots[degree] {
		return degree
	}
	low := degree
	high := n + 1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// BasisFunctions computes the degree+1 non-vanishing basis functions at u
// (algorithm A2.2) for the given span.
func BasisFunctions(degree int, knots []float64, span int, u float64) []float64 {
	out := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	out[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := out[r] / (right[r+1] + left[j-r])
			out[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		out[j] = saved
	}
	return out
}

// BasisFunctionsDerivatives computes basis functions and their derivatives up
// to order at u (algorithm A2.3). The result is indexed [k][j] for the k-th
// derivative of the j-th non-vanishing function.
func BasisFunctionsDerivatives(degree int, knots []float64, span int, u float64, order int) [][]float64 {
	ndu := make([][]float64, degree+1)
	for i := range ndu {
		ndu[i] = make([]float64, degree+1)
	}
	ndu[0][0] = 1
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders := make([][]float64, order+1)
	for k := range ders {
		ders[k] = make([]float64, degree+1)
	}
	for j := 0; j <= degree; j++ {
		ders[0][j] = ndu[j][degree]
	}

	a := [2][]float64{make([]float64, degree+1), make([]float64, degree+1)}
	for r := 0; r <= degree; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= order; k++ {
			d := 0.0
			rk := r - k
			pk := degree - k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk < -1 {
				j1 = -rk
			}
			j2 := k - 1
			if r-1 > pk {
				j2 = degree - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}

	r := float64(degree)
	for k := 1; k <= order; k++ {
		for j := 0; j <= degree; j++ {
			ders[k][j] *= r
		}
		r *= float64(degree - k)
	}
	return ders
}
