package calculator

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	varsopt struct {
		vars *VarSet
	}
	eofopt struct {
		ws string
	}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// reg is the operator registry used to resolve symbols.
	reg *Registry
	// vars is the variable set that binds identifiers, possibly nil.
	vars *VarSet
	// wseof is a string containing the whitespace characters that end the
	// expression.
	wseof string
}

// WithVars binds identifiers in the expression to the variables in vs. The
// expression reads the variables' current values each time it is evaluated.
func WithVars(vs *VarSet) ParseOption {
	return varsopt{vs}
}

func (o varsopt) parseOption(p parsectx) parsectx {
	p.vars = o.vars
	return p
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. Whitespace before the first token of an expression is
// skipped regardless. StopOn overrides the effect of any previous StopOn in
// the parsing options. With no arguments, StopOn produces the default
// termination behavior, which is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("calculator: cannot stop on " + strconv.QuoteRune(r))
		}
		v = append(v, r)
	}
	return eofopt{string(v)}
}

func (o eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}
