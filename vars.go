package calculator

import (
	"math"
	"strconv"
)

// Variable is a named numeric slot stepping through a closed interval. Its
// value starts at the lower bound and only increases, except through Set and
// Reset.
type Variable struct {
	name  string
	lower float64
	upper float64
	span  float64
	cur   float64
}

// newVariable creates a variable. An open bound is moved inward by one span.
// The span is raised to the smallest step distinguishable at DefaultPrecision
// for the larger bound.
func newVariable(name string, lower float64, lowerOpen bool, upper float64, upperOpen bool, span float64) (*Variable, error) {
	for _, x := range [...]float64{lower, upper, span} {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, &VariableDomainError{Name: name, Reason: "bounds and span must be finite"}
		}
	}
	lower = Normalize(lower, DefaultPrecision)
	upper = Normalize(upper, DefaultPrecision)
	span = Normalize(span, DefaultPrecision)
	if lower > upper {
		return nil, &VariableDomainError{Name: name, Reason: "lower bound " + fmtf(lower) + " exceeds upper bound " + fmtf(upper)}
	}
	if span < 0 {
		return nil, &VariableDomainError{Name: name, Reason: "negative span " + fmtf(span)}
	}
	ref := upper
	if math.Abs(lower) > math.Abs(upper) {
		ref = lower
	}
	if m := MinimumSpan(ref, DefaultPrecision); span < m {
		span = m
	}
	if lowerOpen {
		lower = stepBy(lower, span)
	}
	if upperOpen {
		upper = stepBy(upper, -span)
	}
	if lower > upper {
		return nil, &VariableDomainError{Name: name, Reason: "span " + fmtf(span) + " leaves no values in the interval"}
	}
	v := Variable{
		name:  name,
		lower: lower,
		upper: upper,
		span:  span,
		cur:   lower,
	}
	return &v, nil
}

// stepBy returns the normalized value of x+d. The result differs from x
// whenever |d| is at least the minimum span for x: a sum that float rounding
// leaves just short of the next step is rounded instead of truncated.
func stepBy(x, d float64) float64 {
	r := Normalize(x+d, DefaultPrecision)
	if d > 0 && r <= x || d < 0 && r >= x {
		r = Normalize(roundDigits(x+d, DefaultPrecision), DefaultPrecision)
	}
	return r
}

func fmtf(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Name returns the variable's identifier.
func (v *Variable) Name() string {
	return v.name
}

// Lower returns the lowest value of the variable, after adjusting for an open
// bound.
func (v *Variable) Lower() float64 {
	return v.lower
}

// Upper returns the highest value of the variable, after adjusting for an
// open bound.
func (v *Variable) Upper() float64 {
	return v.upper
}

// Span returns the step between successive values.
func (v *Variable) Span() float64 {
	return v.span
}

// Value returns the current value.
func (v *Variable) Value() float64 {
	return v.cur
}

// HasNext reports whether the current value is below the upper bound.
func (v *Variable) HasNext() bool {
	return v.cur < v.upper
}

// Advance steps the variable by its span, stopping at the upper bound, and
// returns the new value. The value strictly increases on each call that
// succeeds.
func (v *Variable) Advance() (float64, error) {
	if !v.HasNext() {
		return v.cur, &ExhaustedError{Name: v.name}
	}
	next := stepBy(v.cur, v.span)
	if next <= v.cur || next > v.upper {
		next = v.upper
	}
	v.cur = next
	return v.cur, nil
}

// Set assigns the current value directly. x is normalized and must lie within
// the variable's bounds.
func (v *Variable) Set(x float64) error {
	x = Normalize(x, DefaultPrecision)
	if !(v.lower <= x && x <= v.upper) {
		return &VariableDomainError{Name: v.name, Reason: fmtf(x) + " outside [" + fmtf(v.lower) + ", " + fmtf(v.upper) + "]"}
	}
	v.cur = x
	return nil
}

// Reset returns the variable to its lower bound.
func (v *Variable) Reset() {
	v.cur = v.lower
}

func (v *Variable) String() string {
	return v.name + "=" + fmtf(v.cur)
}

// VarSet is an insertion-ordered set of variables. A VarSet is not safe for
// concurrent use.
type VarSet struct {
	vars []*Variable
	idx  map[string]int
}

// NewVarSet creates an empty variable set.
func NewVarSet() *VarSet {
	return &VarSet{idx: make(map[string]int)}
}

// Add creates a variable ranging from lower to upper in steps of span. Either
// bound may be open, in which case it is moved inward by one span. The name
// must be a valid identifier that is not already a variable, a named
// constant, or an operator. Returns vs for chaining.
func (vs *VarSet) Add(name string, lower float64, lowerOpen bool, upper float64, upperOpen bool, span float64) (*VarSet, error) {
	if !isIdent(name) {
		return vs, &LexError{Text: name, Kind: "identifier name"}
	}
	switch {
	case vs.Has(name):
		return vs, &ConflictError{Name: name, With: "variable"}
	case IsConstant(name):
		return vs, &ConflictError{Name: name, With: "constant"}
	case defaultRegistry.Exists(name):
		return vs, &ConflictError{Name: name, With: "operator"}
	}
	v, err := newVariable(name, lower, lowerOpen, upper, upperOpen, span)
	if err != nil {
		return vs, err
	}
	if vs.idx == nil {
		vs.idx = make(map[string]int)
	}
	vs.idx[name] = len(vs.vars)
	vs.vars = append(vs.vars, v)
	return vs, nil
}

// MustAdd is like Add but panics on error.
func (vs *VarSet) MustAdd(name string, lower float64, lowerOpen bool, upper float64, upperOpen bool, span float64) *VarSet {
	if _, err := vs.Add(name, lower, lowerOpen, upper, upperOpen, span); err != nil {
		panic("calculator: " + err.Error())
	}
	return vs
}

func isIdent(name string) bool {
	for i, r := range name {
		if !isWord(r) && (i == 0 || !isDigit(r)) {
			return false
		}
	}
	return name != ""
}

func (vs *VarSet) lookup(name string) (*Variable, bool) {
	i, ok := vs.idx[name]
	if !ok {
		return nil, false
	}
	return vs.vars[i], true
}

// Lookup returns the variable with the given name.
func (vs *VarSet) Lookup(name string) (*Variable, error) {
	v, ok := vs.lookup(name)
	if !ok {
		return nil, &NameError{Name: name}
	}
	return v, nil
}

// Has reports whether the set has a variable with the given name.
func (vs *VarSet) Has(name string) bool {
	_, ok := vs.idx[name]
	return ok
}

// Remove deletes a variable from the set. Expressions already parsed with the
// variable keep referring to it. Returns vs for chaining.
func (vs *VarSet) Remove(name string) *VarSet {
	i, ok := vs.idx[name]
	if !ok {
		return vs
	}
	vs.vars = append(vs.vars[:i], vs.vars[i+1:]...)
	delete(vs.idx, name)
	for j := i; j < len(vs.vars); j++ {
		vs.idx[vs.vars[j].name] = j
	}
	return vs
}

// Set assigns the current value of a variable.
func (vs *VarSet) Set(name string, x float64) error {
	v, err := vs.Lookup(name)
	if err != nil {
		return err
	}
	return v.Set(x)
}

// Names returns the variable names in insertion order.
func (vs *VarSet) Names() []string {
	r := make([]string, len(vs.vars))
	for i, v := range vs.vars {
		r[i] = v.name
	}
	return r
}

// Len returns the number of variables in the set.
func (vs *VarSet) Len() int {
	return len(vs.vars)
}

// Values returns the current value of each variable in insertion order.
func (vs *VarSet) Values() []float64 {
	r := make([]float64, len(vs.vars))
	for i, v := range vs.vars {
		r[i] = v.cur
	}
	return r
}

// HasNext reports whether any variable has a next value.
func (vs *VarSet) HasNext() bool {
	for _, v := range vs.vars {
		if v.HasNext() {
			return true
		}
	}
	return false
}

// Advance advances the first variable in insertion order that has a next
// value. Variables that have reached their upper bounds stay there, so a
// sweep of several variables visits each one's values in turn rather than
// every combination.
func (vs *VarSet) Advance() error {
	for _, v := range vs.vars {
		if v.HasNext() {
			_, err := v.Advance()
			return err
		}
	}
	return &ExhaustedError{}
}

// AdvanceCarry advances the set like an odometer: the first variable in
// insertion order that has a next value is advanced and every variable before
// it is reset to its lower bound. Repeated calls visit every combination of
// values, with the first variable changing fastest.
func (vs *VarSet) AdvanceCarry() error {
	for i, v := range vs.vars {
		if v.HasNext() {
			if _, err := v.Advance(); err != nil {
				return err
			}
			for _, w := range vs.vars[:i] {
				w.Reset()
			}
			return nil
		}
	}
	return &ExhaustedError{}
}

// Reset returns every variable to its lower bound.
func (vs *VarSet) Reset() {
	for _, v := range vs.vars {
		v.Reset()
	}
}
