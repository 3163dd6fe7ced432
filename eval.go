package calculator

import (
	"io"
	"strings"
)

// Context is a context for evaluating expressions. It holds the operand and
// operator stacks, which are reused by each evaluation. It is not safe to use
// a Context concurrently. Evaluating expressions that share a VarSet
// concurrently is unsafe even with separate contexts, since advancing the
// variables mutates them.
type Context struct {
	operands []Operand
	ops      []Token
	args     []float64
}

// NewContext creates a new evaluation context.
func NewContext() *Context {
	return &Context{
		operands: make([]Operand, 0, 8),
		ops:      make([]Token, 0, 8),
	}
}

// Eval evaluates an expression with the current values of its variables.
//
// Operands are pushed as they appear. An operator with a left priority first
// reduces operators on the stack whose right priority is at least its own, so
// operators of equal priority associate to the left. A Close operator reduces
// everything above its Open operator, then the Open operator itself; if the
// Close operator is the middle of a two-part construct such as log b ~ x, it
// then stands in for the Open operator until the construct ends.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	ctx.operands = ctx.operands[:0]
	ctx.ops = ctx.ops[:0]
	toks := e.toks
	for i := 0; i < len(toks); {
		t := toks[i]
		switch t.kind {
		case TokenOperand, TokenVariable:
			ctx.operands = append(ctx.operands, t.value())
			i++
			continue
		case TokenOperator:
			// handled below
		default:
			panic("calculator: invalid token kind " + t.kind.String())
		}
		op := t.op
		switch op.cat {
		case Normal:
			if op.left == noPrio {
				ctx.ops = append(ctx.ops, t)
				i++
				continue
			}
			top, ok := ctx.top()
			if !ok {
				return 0, ctx.malformed(t)
			}
			if top.op.cat == Open || top.op.right != noPrio && op.left > top.op.right {
				ctx.ops = append(ctx.ops, t)
				i++
				continue
			}
			if err := ctx.reduce(t); err != nil {
				return 0, err
			}
		case Open:
			ctx.ops = append(ctx.ops, t)
			i++
		case Close:
			top, ok := ctx.top()
			if !ok {
				return 0, ctx.malformed(t)
			}
			if err := ctx.reduce(t); err != nil {
				return 0, err
			}
			if top.op.cat != Open {
				// Keep closing with the same token.
				continue
			}
			if top.op.pair != op.pair {
				return 0, &BracketError{Col: t.pos, Left: top.op.sym, Right: op.sym}
			}
			if op.push {
				ctx.ops = append(ctx.ops, t)
			}
			i++
		}
	}
	if len(ctx.operands) != 1 || len(ctx.ops) != 0 {
		return 0, ctx.malformed(toks[len(toks)-1])
	}
	return ctx.operands[0].Value(), nil
}

// top returns the top of the operator stack.
func (ctx *Context) top() (Token, bool) {
	if len(ctx.ops) == 0 {
		return Token{}, false
	}
	return ctx.ops[len(ctx.ops)-1], true
}

// reduce pops the top operator and, if it computes anything, replaces its
// operands with its result. at is the token being processed.
func (ctx *Context) reduce(at Token) error {
	t := ctx.ops[len(ctx.ops)-1]
	ctx.ops = ctx.ops[:len(ctx.ops)-1]
	op := t.op
	if op.fn == nil {
		return nil
	}
	k := len(ctx.operands) - op.arity
	if k < 0 {
		return ctx.malformed(at)
	}
	ctx.args = ctx.args[:0]
	for _, v := range ctx.operands[k:] {
		ctx.args = append(ctx.args, v.Value())
	}
	r, err := op.apply(ctx.args)
	if err != nil {
		return err
	}
	ctx.operands = append(ctx.operands[:k], r)
	return nil
}

func (ctx *Context) malformed(at Token) error {
	return &StructuralError{Operands: len(ctx.operands), Operators: len(ctx.ops), Col: at.pos}
}

// Eval evaluates the expression with a new context.
func (e *Expr) Eval() (float64, error) {
	return NewContext().Eval(e)
}

// Eval is a shortcut to parse an expression without variables and return its
// result.
func Eval(src io.RuneScanner) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}
