package solve

import (
	"math"
	"sort"
	"testing"
)

func verifyRoots(t *testing.T, got []float64, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d roots %v, want %d roots %v", len(got), got, len(want), want)
	}
	sorted := append([]float64(nil), got...)
	sort.Float64s(sorted)
	for i := range sorted {
		if math.Abs(sorted[i]-want[i]) > 1e-12 {
			t.Errorf("root %d: got %v, want %v", i, sorted[i], want[i])
		}
	}
}

func TestQuadratic(t *testing.T) {
	roots, n := Quadratic(-5.0, 0.0, 5.0)
	verifyRoots(t, roots[:n], []float64{-1, 1})

	roots, n = Quadratic(5.0, 0.0, 5.0)
	verifyRoots(t, roots[:n], nil)

	roots, n = Quadratic(25.0, -10.0, 1.0)
	verifyRoots(t, roots[:n], []float64{5})

	// Nearly linear.
	roots, n = Quadratic(-10.0, 2.0, 0.0)
	verifyRoots(t, roots[:n], []float64{5})
}

func TestITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := ITP(f, 1.0, 2.0, 1e-12, 0, 0.2, f(1.0), f(2.0))
	if math.Abs(f(x)) > 6e-12 {
		t.Errorf("residual %v too large at %v", f(x), x)
	}
}

func TestGaussLegendre(t *testing.T) {
	got := GaussLegendre16(math.Cos, 0, math.Pi/2)
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("integral of cos over [0, π/2]: got %v, want 1", got)
	}

	// A peaked integrand needs the adaptive halving.
	f := func(x float64) float64 { return 1 / (1e-4 + x*x) }
	want := math.Atan(1/1e-2) / 1e-2
	got = Integrate(f, 0, 1, 1e-9)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("adaptive integral: got %v, want %v", got, want)
	}
}

func TestMinimizeBounded(t *testing.T) {
	f := func(x float64) float64 { return (x - 0.3) * (x - 0.3) }
	x, fx := MinimizeBounded(f, 0, 1, 1e-10)
	if math.Abs(x-0.3) > 1e-8 {
		t.Errorf("got minimum at %v, want 0.3", x)
	}
	if fx > 1e-15 {
		t.Errorf("got value %v, want ~0", fx)
	}
}

func TestLinearSystem(t *testing.T) {
	a := [][]float64{
		{2, 1, -1},
		{-3, -1, 2},
		{-2, 1, 2},
	}
	b := [][]float64{{8}, {-11}, {-3}}
	x, ok := LinearSystem(a, b)
	if !ok {
		t.Fatal("expected a solution")
	}
	want := []float64{2, 3, -1}
	for i := range want {
		if math.Abs(x[i][0]-want[i]) > 1e-12 {
			t.Errorf("x[%d]: got %v, want %v", i, x[i][0], want[i])
		}
	}

	// Singular matrix.
	a = [][]float64{{1, 1}, {2, 2}}
	b = [][]float64{{1}, {2}}
	if _, ok := LinearSystem(a, b); ok {
		t.Error("expected singular matrix to be reported")
	}
}
