package calculator

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		v      float64
		digits int
		want   float64
	}{
		{0, 15, 0},
		{1, 15, 1},
		{0.1 + 0.2, 15, 0.3},
		{1.0 / 3, 3, 0.333},
		{2.0 / 3, 3, 0.667},
		{-2.0 / 3, 3, -0.667},
		{123.456, 4, 123.5},
		{123.456, 3, 123},
		{123456, 3, 123000},
		{-987654, 2, -980000},
		{1e-20, 15, 0},
		{-1e-20, 15, 0},
		{999999999999999.9, 15, 1e15},
		{1e20 + 12345, 15, 1e20},
		{-123456789012345678, 15, -123456789012345000},
		{2.257679986032471e276, 15, 2.25767998603247e276},
		{1e300, 15, 1e300},
		{math.MaxFloat64, 15, 1.79769313486231e308},
		{math.Inf(1), 15, math.Inf(1)},
		{math.Inf(-1), 15, math.Inf(-1)},
	}
	for _, c := range cases {
		if got := Normalize(c.v, c.digits); got != c.want {
			t.Errorf("Normalize(%v, %d): want %v, got %v", c.v, c.digits, c.want, got)
		}
	}
	if got := Normalize(math.NaN(), 15); !math.IsNaN(got) {
		t.Errorf("Normalize(NaN): want NaN, got %v", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	vals := []float64{
		0.1, 1.0 / 7, math.Pi, 12345.6789, -0.000123456789,
		1e16 / 3, 2.257679986032471e276, 9.999999999999904e299, -7.7e305, math.MaxFloat64,
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20000; i++ {
		// Magnitudes from 1e-20 to 1e306, both signs.
		v := (1 + 9*rng.Float64()) * math.Pow(10, float64(rng.IntN(327)-20))
		if rng.IntN(2) == 0 {
			v = -v
		}
		vals = append(vals, v)
	}
	for _, digits := range []int{DefaultPrecision, 3} {
		for _, v := range vals {
			n := Normalize(v, digits)
			if m := Normalize(n, digits); m != n {
				t.Errorf("Normalize(%v, %d) not idempotent: %v then %v", v, digits, n, m)
			}
		}
	}
}

func TestStepBy(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 0.3, 1e15, 1e300, 9.99999999999999e299, -1e300, 1.7e308} {
		span := MinimumSpan(x, DefaultPrecision)
		up := stepBy(x, span)
		if up <= x {
			t.Errorf("stepBy(%v, %v) = %v did not increase", x, span, up)
		}
		if Normalize(up, DefaultPrecision) != up {
			t.Errorf("stepBy(%v, %v) = %v is not normalized", x, span, up)
		}
		down := stepBy(x, -span)
		if down >= x {
			t.Errorf("stepBy(%v, %v) = %v did not decrease", x, -span, down)
		}
	}
}

func TestMinimumSpan(t *testing.T) {
	cases := []struct {
		ref    float64
		digits int
		want   float64
	}{
		{0, 15, 1e-15},
		{0.5, 15, 1e-15},
		{1, 15, 1e-14},
		{99, 15, 1e-13},
		{-100, 15, 1e-12},
		{12345, 3, 100},
		{5, 1, 1},
		{2e300, 15, 1e286},
	}
	for _, c := range cases {
		if got := MinimumSpan(c.ref, c.digits); got != c.want {
			t.Errorf("MinimumSpan(%v, %d): want %v, got %v", c.ref, c.digits, c.want, got)
		}
	}
}

func TestNormalizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for zero digits")
		}
	}()
	Normalize(1, 0)
}

func TestIntDigits(t *testing.T) {
	cases := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1, 1},
		{9.9, 1},
		{10, 2},
		{999.999, 3},
		{1000, 4},
		{-1000, 4},
		{1e20, 21},
		{1e300, 301},
		{math.Inf(1), 0},
	}
	for _, c := range cases {
		if got := intDigits(c.v); got != c.want {
			t.Errorf("intDigits(%v): want %d, got %d", c.v, c.want, got)
		}
	}
}
