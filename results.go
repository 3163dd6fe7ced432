package calculator

import "iter"

// ResultsOption is an option for creating Results.
type ResultsOption interface {
	resultsOption(*Results)
}

type productopt struct{}

func (productopt) resultsOption(r *Results) {
	r.advance = (*VarSet).AdvanceCarry
}

// Product makes Results sweep every combination of variable values, resetting
// earlier variables each time a later one advances. Without it, Results
// advance the first variable that has values left and never reset any.
func Product() ResultsOption {
	return productopt{}
}

// Results evaluates an expression once per step of its variables. An
// expression without variables has exactly one result. The sequence can only
// be restarted by resetting the variables.
type Results struct {
	e       *Expr
	vars    *VarSet
	ctx     *Context
	advance func(*VarSet) error
}

// NewResults creates a result sequence for e over the variables it was
// parsed with.
func NewResults(e *Expr, opts ...ResultsOption) *Results {
	r := Results{
		e:       e,
		vars:    e.vars,
		ctx:     NewContext(),
		advance: (*VarSet).Advance,
	}
	for _, opt := range opts {
		opt.resultsOption(&r)
	}
	return &r
}

// Current evaluates the expression with the current variable values.
func (r *Results) Current() (float64, error) {
	return r.ctx.Eval(r.e)
}

// HasNext reports whether any variable has a next value.
func (r *Results) HasNext() bool {
	return r.vars != nil && r.vars.HasNext()
}

// Advance steps the variables and evaluates the expression.
func (r *Results) Advance() (float64, error) {
	if r.vars == nil {
		return 0, &ExhaustedError{}
	}
	if err := r.advance(r.vars); err != nil {
		return 0, err
	}
	return r.Current()
}

// Collect evaluates the current result and every following result. Evaluation
// stops at the first error.
func (r *Results) Collect() ([]float64, error) {
	var vals []float64
	for v, err := range r.All() {
		if err != nil {
			return vals, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// All yields the current result, then advances and yields each following
// result. The sequence ends after the first error.
func (r *Results) All() iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		v, err := r.Current()
		if !yield(v, err) || err != nil {
			return
		}
		for r.HasNext() {
			v, err := r.Advance()
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
