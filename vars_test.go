package calculator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/daoshengwanwu/calculator"
)

func sweep(t *testing.T, v *calculator.Variable) []float64 {
	t.Helper()
	vals := []float64{v.Value()}
	for v.HasNext() {
		x, err := v.Advance()
		if err != nil {
			t.Fatalf("advancing %s: %v", v.Name(), err)
		}
		vals = append(vals, x)
	}
	return vals
}

func TestVariableSteps(t *testing.T) {
	cases := []struct {
		name      string
		lower     float64
		lowerOpen bool
		upper     float64
		upperOpen bool
		span      float64
		want      []float64
	}{
		{"closed", 0, false, 1, false, 0.5, []float64{0, 0.5, 1}},
		{"clamped", 0, false, 1, false, 0.4, []float64{0, 0.4, 0.8, 1}},
		{"tenths", 0, false, 0.5, false, 0.1, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}},
		{"open-lower", 0, true, 1, false, 0.5, []float64{0.5, 1}},
		{"open-upper", 0, false, 1, true, 0.5, []float64{0, 0.5}},
		{"open-both", 0, true, 2, true, 0.5, []float64{0.5, 1, 1.5}},
		{"point", 3, false, 3, false, 1, []float64{3}},
		{"negative", -1, false, 1, false, 1, []float64{-1, 0, 1}},
		{"wide-span", 0, false, 1, false, 5, []float64{0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vs, err := calculator.NewVarSet().Add("x", c.lower, c.lowerOpen, c.upper, c.upperOpen, c.span)
			if err != nil {
				t.Fatal(err)
			}
			v, err := vs.Lookup("x")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, sweep(t, v)); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
			if v.HasNext() {
				t.Error("HasNext after reaching the upper bound")
			}
			var exh *calculator.ExhaustedError
			if _, err := v.Advance(); !errors.As(err, &exh) || exh.Name != "x" {
				t.Errorf("want ExhaustedError for x, got %v", err)
			}
		})
	}
}

func TestVariableMinimumSpan(t *testing.T) {
	vs := calculator.NewVarSet().
		MustAdd("tiny", 0, false, 1, false, 1e-20).
		MustAdd("zero", 0, false, 100, false, 0)
	cases := []struct {
		name string
		want float64
	}{
		{"tiny", 1e-14},
		{"zero", 1e-12},
	}
	for _, c := range cases {
		v, err := vs.Lookup(c.name)
		if err != nil {
			t.Fatal(err)
		}
		if v.Span() != c.want {
			t.Errorf("%s: want span %v, got %v", c.name, c.want, v.Span())
		}
		if _, err := v.Advance(); err != nil {
			t.Fatal(err)
		}
		if v.Value() == v.Lower() {
			t.Errorf("%s: advancing did not change the value", c.name)
		}
	}
}

func TestVariableHugeBounds(t *testing.T) {
	vs := calculator.NewVarSet().
		MustAdd("x", 1e300, false, 2e300, false, 0).
		MustAdd("y", -2e300, false, -1e300, true, 0)
	x, err := vs.Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	if x.Lower() != 1e300 || x.Span() != 1e286 {
		t.Fatalf("want lower 1e300 and span 1e286, got %v and %v", x.Lower(), x.Span())
	}
	prev := x.Value()
	for i := 0; i < 1000; i++ {
		v, err := x.Advance()
		if err != nil {
			t.Fatal(err)
		}
		if v <= prev {
			t.Fatalf("step %d: advanced from %v to %v", i, prev, v)
		}
		if calculator.Normalize(v, calculator.DefaultPrecision) != v {
			t.Fatalf("step %d: %v is not normalized", i, v)
		}
		prev = v
	}
	y, err := vs.Lookup("y")
	if err != nil {
		t.Fatal(err)
	}
	if y.Upper() >= -1e300 {
		t.Errorf("open upper bound not moved inward: %v", y.Upper())
	}
}

func TestVariableHugeSweep(t *testing.T) {
	vs, err := calculator.NewVarSet().Add("x", 1e300, false, 2e300, false, 2.5e299)
	if err != nil {
		t.Fatal(err)
	}
	x, err := vs.Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	vals := []float64{x.Value()}
	for x.HasNext() {
		if len(vals) > 10 {
			t.Fatalf("sweep did not finish: %v", vals)
		}
		v, err := x.Advance()
		if err != nil {
			t.Fatal(err)
		}
		if v <= vals[len(vals)-1] {
			t.Fatalf("advanced from %v to %v", vals[len(vals)-1], v)
		}
		vals = append(vals, v)
	}
	if vals[0] != 1e300 || vals[len(vals)-1] != 2e300 {
		t.Errorf("want a sweep from 1e300 to 2e300, got %v", vals)
	}
}

func TestVariableDomainErrors(t *testing.T) {
	cases := []struct {
		name      string
		lower     float64
		lowerOpen bool
		upper     float64
		upperOpen bool
		span      float64
	}{
		{"inverted", 2, false, 1, false, 0.1},
		{"negative-span", 0, false, 1, false, -0.1},
		{"span-too-wide", 0, true, 1, true, 0.6},
		{"open-point", 1, true, 1, false, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vs := calculator.NewVarSet()
			_, err := vs.Add("x", c.lower, c.lowerOpen, c.upper, c.upperOpen, c.span)
			var verr *calculator.VariableDomainError
			if !errors.As(err, &verr) {
				t.Fatalf("want *VariableDomainError, got %v", err)
			}
			if vs.Has("x") {
				t.Error("failed Add left a variable behind")
			}
		})
	}
}

func TestVarSetConflicts(t *testing.T) {
	vs := calculator.NewVarSet().MustAdd("x", 0, false, 1, false, 1)
	cases := []struct {
		name string
		with string
	}{
		{"x", "variable"},
		{"pi", "constant"},
		{"e", "constant"},
		{"sin", "operator"},
		{"log", "operator"},
	}
	for _, c := range cases {
		_, err := vs.Add(c.name, 0, false, 1, false, 1)
		var cerr *calculator.ConflictError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: want *ConflictError, got %v", c.name, err)
			continue
		}
		if cerr.With != c.with {
			t.Errorf("%s: conflicts with %s, want %s", c.name, cerr.With, c.with)
		}
	}
	for _, name := range []string{"", "1x", "a-b", "x y"} {
		_, err := vs.Add(name, 0, false, 1, false, 1)
		var lerr *calculator.LexError
		if !errors.As(err, &lerr) {
			t.Errorf("%q: want *LexError, got %v", name, err)
		}
	}
}

func TestVarSetAdvance(t *testing.T) {
	vs := calculator.NewVarSet().
		MustAdd("x", 0, false, 1, false, 1).
		MustAdd("y", 0, false, 2, false, 1)
	var got [][]float64
	got = append(got, vs.Values())
	for vs.HasNext() {
		if err := vs.Advance(); err != nil {
			t.Fatal(err)
		}
		got = append(got, vs.Values())
	}
	want := [][]float64{{0, 0}, {1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sequential sweep (-want +got):\n%s", diff)
	}
	var exh *calculator.ExhaustedError
	if err := vs.Advance(); !errors.As(err, &exh) {
		t.Errorf("want *ExhaustedError, got %v", err)
	}
}

func TestVarSetAdvanceCarry(t *testing.T) {
	vs := calculator.NewVarSet().
		MustAdd("x", 0, false, 1, false, 1).
		MustAdd("y", 0, false, 2, false, 1)
	var got [][]float64
	got = append(got, vs.Values())
	for vs.HasNext() {
		if err := vs.AdvanceCarry(); err != nil {
			t.Fatal(err)
		}
		got = append(got, vs.Values())
	}
	want := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("product sweep (-want +got):\n%s", diff)
	}
	var exh *calculator.ExhaustedError
	if err := vs.AdvanceCarry(); !errors.As(err, &exh) {
		t.Errorf("want *ExhaustedError, got %v", err)
	}
	vs.Reset()
	if diff := cmp.Diff([]float64{0, 0}, vs.Values()); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
}

func TestVarSetSetLookupRemove(t *testing.T) {
	vs := calculator.NewVarSet().
		MustAdd("a", 0, false, 10, false, 1).
		MustAdd("b", 0, false, 10, false, 1).
		MustAdd("c", 0, false, 10, false, 1)
	if err := vs.Set("b", 2.5); err != nil {
		t.Fatal(err)
	}
	b, err := vs.Lookup("b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Value() != 2.5 {
		t.Errorf("want 2.5, got %v", b.Value())
	}
	var verr *calculator.VariableDomainError
	if err := vs.Set("b", 11); !errors.As(err, &verr) {
		t.Errorf("want *VariableDomainError for out of bounds value, got %v", err)
	}
	var nerr *calculator.NameError
	if err := vs.Set("z", 1); !errors.As(err, &nerr) {
		t.Errorf("want *NameError, got %v", err)
	}
	vs.Remove("b").Remove("nope")
	if diff := cmp.Diff([]string{"a", "c"}, vs.Names()); diff != "" {
		t.Errorf("names after remove (-want +got):\n%s", diff)
	}
	if _, err := vs.Lookup("c"); err != nil {
		t.Errorf("lookup after remove: %v", err)
	}
	if _, err := vs.Add("b", 0, false, 1, false, 1); err != nil {
		t.Errorf("re-adding removed name: %v", err)
	}
	if vs.Len() != 3 {
		t.Errorf("want 3 variables, got %d", vs.Len())
	}
}
