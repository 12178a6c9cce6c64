package nurbs

import "math"

// Point inversion tolerances: tolPoint bounds the euclidean distance to the
// target, tolCosine the cosine measure of orthogonality between the residual
// and the tangent.
const (
	inversionMaxIter   = 50
	inversionTolPoint  = 1e-7
	inversionTolCosine = 1e-8
)

// InitialGuess returns the parameter of the sample, among n evenly spaced
// ones, that lies nearest to point.
func (c *Curve) InitialGuess(point []float64, n int) float64 {
	lo, hi := c.Domain()
	best := lo
	bestDist := math.Inf(1)
	for i := 0; i < n; i++ {
		u := lo + (hi-lo)*float64(i)/float64(n-1)
		if d := distance(c.Evaluate(u), point); d < bestDist {
			bestDist = d
			best = u
		}
	}
	return best
}

// PointInversion finds the parameter whose curve point is nearest to point,
// by Newton iteration on the orthogonality condition C'(u)·(C(u)−P) = 0,
// seeded from the nearest of 25 samples. For a periodic curve the iterate
// wraps around the domain; otherwise it clamps to the bounds.
//
// It returns the parameter and the remaining distance to point.
func (c *Curve) PointInversion(point []float64, periodic bool) (float64, float64) {
	lo, hi := c.Domain()
	u := c.InitialGuess(point, 25)

	for iter := 0; iter < inversionMaxIter; iter++ {
		ders := c.Derivatives(u, 2)
		diff := sub(ders[0], point)
		dist := norm(diff)
		if dist < inversionTolPoint {
			return u, dist
		}
		tangentNorm := norm(ders[1])
		if tangentNorm == 0 {
			break
		}
		cosine := math.Abs(dot(ders[1], diff)) / (tangentNorm * dist)
		if cosine < inversionTolCosine {
			return u, dist
		}

		f := dot(ders[1], diff)
		df := dot(ders[2], diff) + tangentNorm*tangentNorm
		if df == 0 {
			break
		}
		next := u - f/df
		if periodic {
			span := hi - lo
			for next < lo {
				next += span
			}
			for next > hi {
				next -= span
			}
		} else {
			next = math.Min(math.Max(next, lo), hi)
		}
		step := math.Abs(next-u) * tangentNorm
		u = next
		if step < inversionTolPoint {
			break
		}
	}
	return u, distance(c.Evaluate(u), point)
}
