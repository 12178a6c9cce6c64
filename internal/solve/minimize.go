package solve

const invPhi = 0.6180339887498949

// MinimizeBounded finds a local minimum of f on [a, b] by golden-section
// search. It returns the abscissa of the minimum and the function value there.
// The result is accurate to xtol in the argument.
func MinimizeBounded(f func(float64) float64, a, b, xtol float64) (float64, float64) {
	if b < a {
		a, b = b, a
	}
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc := f(c)
	fd := f(d)
	for b-a > xtol {
		if fc < fd {
			b = d
			d = c
			fd = fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a = c
			c = d
			fc = fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	x := 0.5 * (a + b)
	return x, f(x)
}
