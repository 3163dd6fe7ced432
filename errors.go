package calculator

import "strconv"

// LexError indicates an invalid token, an unknown operator, an unbound
// identifier, or a name that cannot be an identifier. It implements
// InputError.
type LexError struct {
	// Text is the offending token.
	Text string
	// Kind is the type of token: "number", "identifier", "operator", or the
	// empty string if a token kind hadn't been decided.
	Kind string
	// Col is the position of the token, or 0 if the error did not come from
	// scanning source text.
	Col int
}

func (err *LexError) Error() string {
	kind := "token"
	if err.Kind != "" {
		kind = err.Kind + " token"
	}
	msg := "invalid " + kind + " " + strconv.Quote(err.Text)
	if err.Kind == "identifier" {
		msg = "unbound identifier " + strconv.Quote(err.Text)
	}
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *LexError) Pos() int {
	return err.Col
}

// BracketError indicates a Close operator that does not match the Open
// operator it unwinds to. It implements InputError.
type BracketError struct {
	// Col is the position of the Close operator.
	Col int
	// Left is the Open operator.
	Left string
	// Right is the mismatched Close operator.
	Right string
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "mismatched "+strconv.Quote(err.Left)+" and "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// ArityError indicates an operator reduced with the wrong number of operands.
type ArityError struct {
	// Operator is the operator's symbol.
	Operator string
	// Want is the operator's arity.
	Want int
	// Got is the number of operands supplied.
	Got int
}

func (err *ArityError) Error() string {
	return "operator " + strconv.Quote(err.Operator) + " needs " + strconv.Itoa(err.Want) + " operands, got " + strconv.Itoa(err.Got)
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X float64
	// Arg is the 1-based index of the operand.
	Arg int
	// Func is the operator's symbol.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// StructuralError indicates an expression that does not reduce to exactly
// one value, e.g. an empty expression or a missing operand.
type StructuralError struct {
	// Operands is the number of values left on the operand stack.
	Operands int
	// Operators is the number of operators left on the operator stack.
	Operators int
	// Col is the position of the token being evaluated when the error was
	// detected.
	Col int
}

func (err *StructuralError) Error() string {
	if err.Operands == 0 && err.Operators == 0 {
		return "no expression"
	}
	return errpos(err.Col, "malformed expression: "+strconv.Itoa(err.Operands)+" operands and "+strconv.Itoa(err.Operators)+" operators left")
}

func (err *StructuralError) Pos() int {
	return err.Col
}

// VariableDomainError indicates variable bounds or a span that cannot define
// any values.
type VariableDomainError struct {
	// Name is the variable name.
	Name string
	// Reason describes the violated constraint.
	Reason string
}

func (err *VariableDomainError) Error() string {
	return "variable " + strconv.Quote(err.Name) + ": " + err.Reason
}

// ConflictError indicates a variable name already in use.
type ConflictError struct {
	// Name is the contested identifier.
	Name string
	// With is what already uses the name: "variable", "constant", or
	// "operator".
	With string
}

func (err *ConflictError) Error() string {
	return "identifier " + strconv.Quote(err.Name) + " is already a " + err.With
}

// ExhaustedError is returned when a variable or variable set is advanced past
// its last value.
type ExhaustedError struct {
	// Name is the variable that was advanced, or the empty string for a set.
	Name string
}

func (err *ExhaustedError) Error() string {
	if err.Name == "" {
		return "no variable has a next value"
	}
	return "variable " + strconv.Quote(err.Name) + " has no next value"
}

// NameError is an error from a lookup for a variable that is missing from a
// variable set.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*StructuralError)(nil)
)
