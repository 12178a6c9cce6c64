package solve

import "math"

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}

func quadrature(coeffs [][2]float64, f func(float64) float64, a, b float64) float64 {
	half := 0.5 * (b - a)
	mid := 0.5 * (a + b)
	var sum float64
	for _, wx := range coeffs {
		sum += wx[0] * f(mid+half*wx[1])
	}
	return sum * half
}

// GaussLegendre8 integrates f over [a, b] with an 8-point rule.
func GaussLegendre8(f func(float64) float64, a, b float64) float64 {
	return quadrature(gaussLegendreCoeffs8[:], f, a, b)
}

// GaussLegendre16 integrates f over [a, b] with a 16-point rule.
func GaussLegendre16(f func(float64) float64, a, b float64) float64 {
	return quadrature(gaussLegendreCoeffs16[:], f, a, b)
}

// Integrate computes the integral of f over [a, b] to the given accuracy,
// halving intervals where the 8-point and 16-point estimates disagree.
func Integrate(f func(float64) float64, a, b, accuracy float64) float64 {
	return integrateRec(f, a, b, accuracy, 10)
}

func integrateRec(f func(float64) float64, a, b, accuracy float64, depth int) float64 {
	coarse := GaussLegendre8(f, a, b)
	fine := GaussLegendre16(f, a, b)
	if math.Abs(fine-coarse) <= accuracy || depth == 0 {
		return fine
	}
	mid := 0.5 * (a + b)
	return integrateRec(f, a, mid, 0.5*accuracy, depth-1) +
		integrateRec(f, mid, b, 0.5*accuracy, depth-1)
}
