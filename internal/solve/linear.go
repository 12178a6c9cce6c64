package solve

import "math"

// LinearSystem solves A·x = b in place by Gaussian elimination with partial
// pivoting, where b holds several right-hand sides as rows of width nrhs per
// equation. A is a square matrix in row-major order; its contents are
// destroyed. The second return value is false when the matrix is singular.
func LinearSystem(a [][]float64, b [][]float64) ([][]float64, bool) {
	n := len(a)
	for col := 0; col < n; col++ {
		// Partial pivoting.
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			for k := range b[row] {
				b[row][k] -= factor * b[col][k]
			}
		}
	}
	// Back substitution.
	for col := n - 1; col >= 0; col-- {
		for k := range b[col] {
			s := b[col][k]
			for j := col + 1; j < n; j++ {
				s -= a[col][j] * b[j][k]
			}
			b[col][k] = s / a[col][col]
		}
	}
	return b, true
}
