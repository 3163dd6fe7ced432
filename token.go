package calculator

import (
	"strconv"
	"strings"
)

// TokenKind is the variant of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenOperand is a number or named constant.
	TokenOperand
	// TokenVariable is a reference to a variable, read when evaluated.
	TokenVariable
	// TokenOperator is a resolved operator.
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenOperand:
		return "Operand"
	case TokenVariable:
		return "Variable"
	case TokenOperator:
		return "Operator"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one item of a parsed expression. Exactly one of the payloads
// selected by Kind is meaningful.
type Token struct {
	kind TokenKind
	num  Operand
	v    *Variable
	op   *Operator
	pos  int
}

// Kind returns the token's variant.
func (t Token) Kind() TokenKind {
	return t.kind
}

// Operand returns the value of an operand token.
func (t Token) Operand() Operand {
	return t.num
}

// Variable returns the variable of a variable token, or nil.
func (t Token) Variable() *Variable {
	return t.v
}

// Operator returns the operator of an operator token, or nil.
func (t Token) Operator() *Operator {
	return t.op
}

// Pos returns the rune column where the token starts. The start and end
// markers have positions 0 and one past the last rune, respectively.
func (t Token) Pos() int {
	return t.pos
}

// value returns the current numeric value of an operand or variable token.
func (t Token) value() Operand {
	if t.kind == TokenVariable {
		return NewOperand(t.v.Value())
	}
	return t.num
}

func (t Token) String() string {
	switch t.kind {
	case TokenOperand:
		return t.num.String()
	case TokenVariable:
		return t.v.Name()
	case TokenOperator:
		return t.op.sym
	default:
		return "$"
	}
}

// Expr is a parsed expression: a token stream delimited by the start and end
// markers. An Expr is immutable, but the variables it references are not.
type Expr struct {
	toks []Token
	vars *VarSet
}

// Tokens returns a copy of the expression's token stream, including the
// start and end markers.
func (e *Expr) Tokens() []Token {
	r := make([]Token, len(e.toks))
	copy(r, e.toks)
	return r
}

// Vars returns the variable set the expression was parsed with, or nil.
func (e *Expr) Vars() *VarSet {
	return e.vars
}

// String formats the token stream between the markers, with operators
// resolved from ambiguous symbols written in their resolved form, e.g. neg
// for unary minus.
func (e *Expr) String() string {
	var b strings.Builder
	inner := e.toks
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	for i, t := range inner {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.describe())
	}
	return b.String()
}

// describe is like String but distinguishes the forms of ambiguous operators.
func (t Token) describe() string {
	if t.kind != TokenOperator {
		return t.String()
	}
	switch {
	case t.op.sym == "-" && t.op.arity == 1:
		return "neg"
	case t.op.sym == "|" && t.op.cat == Open:
		return "|<"
	case t.op.sym == "|" && t.op.cat == Close:
		return ">|"
	}
	return t.op.sym
}
