// Package calculator parses and evaluates arithmetic expressions over float64,
// optionally with free variables that step through intervals.
//
// Expressions use the usual infix operators + - * / % ^, prefix functions
// such as sin and sqrt, postfix !, parentheses, absolute value bars |x|, and
// the two-part logarithm "log b ~ x". Whether - is subtraction or negation,
// and whether | opens or closes, is decided by the token before it. Operators
// of equal priority associate to the left, so "2^3^2" is 64.
//
// Every value is normalized to DefaultPrecision significant digits, which
// makes "0.1+0.2" equal to "0.3".
//
// Variables let you parse an expression once and evaluate it for many
// inputs. Results walks an expression through the values of its variables:
//
//	vs := calculator.NewVarSet().MustAdd("x", 0, false, 2, false, 1)
//	e, _ := calculator.ParseString("x + 1", calculator.WithVars(vs))
//	r, _ := calculator.NewResults(e).Collect() // [1 2 3]
package calculator
