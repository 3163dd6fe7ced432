package calculator

import (
	"math"
	"strconv"
)

// Category is the syntactic role of a resolved operator.
type Category int8

const (
	// Normal operators are prefix, infix, or postfix operators ordered by
	// priority.
	Normal Category = iota
	// Open operators begin a paired construct, e.g. (.
	Open
	// Close operators end a paired construct begun by the Open operator with
	// the same pairing id, e.g. ).
	Close
)

func (c Category) String() string {
	switch c {
	case Normal:
		return "Normal"
	case Open:
		return "Open"
	case Close:
		return "Close"
	default:
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
}

// Pairing ids group Open operators with their Close operators.
const (
	pairAbs = iota
	pairMarker
	pairParen
	pairLog
)

// noPrio marks a missing left or right priority.
const noPrio = -1

// Operator is a fully resolved operator. Each symbol in a registry maps to
// one shared descriptor; descriptors are never modified after the registry is
// built.
type Operator struct {
	sym   string
	cat   Category
	arity int
	left  int
	right int
	pair  int
	// push is set on Close operators that reopen as a barrier after closing.
	push bool
	fn   func(args []float64) (float64, error)
}

// Symbol returns the operator's source text. The start and end markers have
// symbols that cannot appear in source.
func (op *Operator) Symbol() string {
	return op.sym
}

// Category returns the operator's category.
func (op *Operator) Category() Category {
	return op.cat
}

// Arity returns the number of operands the operator consumes when it is
// reduced.
func (op *Operator) Arity() int {
	return op.arity
}

// LeftPriority returns the priority with which the operator binds the operand
// to its left, if it has one.
func (op *Operator) LeftPriority() (int, bool) {
	return op.left, op.left != noPrio
}

// RightPriority returns the priority with which the operator binds the operand
// to its right, if it has one.
func (op *Operator) RightPriority() (int, bool) {
	return op.right, op.right != noPrio
}

// Pair returns the pairing id of an Open or Close operator. It is meaningless
// for Normal operators.
func (op *Operator) Pair() int {
	return op.pair
}

// PushAfterClose reports whether a Close operator pushes itself onto the
// operator stack after it matches its Open operator.
func (op *Operator) PushAfterClose() bool {
	return op.push
}

// awaitsOperand reports whether an operand or prefix operator is expected
// after op.
func (op *Operator) awaitsOperand() bool {
	return op.cat == Open || op.right != noPrio
}

// apply evaluates the operator on args, which must have exactly Arity
// elements.
func (op *Operator) apply(args []float64) (Operand, error) {
	if len(args) != op.arity {
		return Operand{}, &ArityError{Operator: op.sym, Want: op.arity, Got: len(args)}
	}
	r, err := op.fn(args)
	if err != nil {
		return Operand{}, err
	}
	return NewOperand(r), nil
}

func (op *Operator) String() string {
	return op.sym
}

func binary(sym string, prio int, fn func(x, y float64) (float64, error)) *Operator {
	return &Operator{
		sym:   sym,
		cat:   Normal,
		arity: 2,
		left:  prio,
		right: prio,
		fn:    func(a []float64) (float64, error) { return fn(a[0], a[1]) },
	}
}

func prefix(sym string, fn func(x float64) (float64, error)) *Operator {
	return &Operator{
		sym:   sym,
		cat:   Normal,
		arity: 1,
		left:  noPrio,
		right: 200,
		fn:    func(a []float64) (float64, error) { return fn(a[0]) },
	}
}

func postfix(sym string, fn func(x float64) (float64, error)) *Operator {
	return &Operator{
		sym:   sym,
		cat:   Normal,
		arity: 1,
		left:  400,
		right: noPrio,
		fn:    func(a []float64) (float64, error) { return fn(a[0]) },
	}
}

func open(sym string, pair int) *Operator {
	return &Operator{sym: sym, cat: Open, left: noPrio, right: noPrio, pair: pair}
}

func closer(sym string, pair int) *Operator {
	return &Operator{sym: sym, cat: Close, left: noPrio, right: noPrio, pair: pair}
}

// total wraps a function defined on all reals.
func total(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// bounded wraps a function whose domain is checked by ok.
func bounded(name string, f func(float64) float64, ok func(float64) bool) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if !ok(x) {
			return 0, &DomainError{X: x, Arg: 1, Func: name}
		}
		return f(x), nil
	}
}

func positive(x float64) bool    { return x > 0 }
func nonnegative(x float64) bool { return x >= 0 }
func unit(x float64) bool        { return -1 <= x && x <= 1 }

func factorial(x float64) (float64, error) {
	if x < 0 || !NewOperand(x-math.Trunc(x)).Equal(Operand{}) {
		return 0, &DomainError{X: x, Arg: 1, Func: "!"}
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
		if math.IsInf(r, 0) {
			break
		}
	}
	return r, nil
}

func logBase(a []float64) (float64, error) {
	b, x := a[0], a[1]
	if b <= 0 || b == 1 {
		return 0, &DomainError{X: b, Arg: 1, Func: "log~"}
	}
	if x <= 0 {
		return 0, &DomainError{X: x, Arg: 2, Func: "log~"}
	}
	return math.Log(x) / math.Log(b), nil
}

// Registry maps operator symbols to their descriptors. A Registry is
// read-only once built and is safe for concurrent use.
type Registry struct {
	certain map[string]*Operator
	// uncertain maps symbols whose operator depends on the preceding token to
	// the prefix or opening form and the infix or closing form, in order.
	uncertain map[string][2]*Operator
	start     *Operator
	end       *Operator
}

var defaultRegistry = newRegistry()

// DefaultRegistry returns the registry of built-in operators.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func newRegistry() *Registry {
	r := Registry{
		certain:   make(map[string]*Operator),
		uncertain: make(map[string][2]*Operator),
		start:     open("^start", pairMarker),
		end:       closer("$end", pairMarker),
	}
	for _, op := range []*Operator{
		binary("+", 0, func(x, y float64) (float64, error) { return x + y, nil }),
		binary("*", 100, func(x, y float64) (float64, error) { return x * y, nil }),
		binary("/", 100, func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, &DomainError{X: y, Arg: 2, Func: "/"}
			}
			return x / y, nil
		}),
		binary("%", 100, func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, &DomainError{X: y, Arg: 2, Func: "%"}
			}
			return math.Mod(x, y), nil
		}),
		binary("^", 300, func(x, y float64) (float64, error) {
			r := math.Pow(x, y)
			if math.IsNaN(r) {
				return 0, &DomainError{X: x, Arg: 1, Func: "^"}
			}
			return r, nil
		}),
		prefix("sin", total(math.Sin)),
		prefix("cos", total(math.Cos)),
		prefix("tan", total(math.Tan)),
		prefix("asin", bounded("asin", math.Asin, unit)),
		prefix("acos", bounded("acos", math.Acos, unit)),
		prefix("atan", total(math.Atan)),
		prefix("ln", bounded("ln", math.Log, positive)),
		prefix("lg", bounded("lg", math.Log10, positive)),
		prefix("sqrt", bounded("sqrt", math.Sqrt, nonnegative)),
		postfix("!", factorial),
		open("(", pairParen),
		closer(")", pairParen),
		open("log", pairLog),
		{
			sym:   "~",
			cat:   Close,
			arity: 2,
			left:  noPrio,
			right: 200,
			pair:  pairLog,
			push:  true,
			fn:    logBase,
		},
	} {
		r.certain[op.sym] = op
	}
	r.uncertain["-"] = [2]*Operator{
		prefix("-", total(func(x float64) float64 { return -x })),
		binary("-", 0, func(x, y float64) (float64, error) { return x - y, nil }),
	}
	r.uncertain["|"] = [2]*Operator{
		{
			sym:   "|",
			cat:   Open,
			arity: 1,
			left:  noPrio,
			right: noPrio,
			pair:  pairAbs,
			fn:    func(a []float64) (float64, error) { return math.Abs(a[0]), nil },
		},
		closer("|", pairAbs),
	}
	return &r
}

// Exists reports whether sym is an operator symbol.
func (r *Registry) Exists(sym string) bool {
	if _, ok := r.certain[sym]; ok {
		return true
	}
	_, ok := r.uncertain[sym]
	return ok
}

// Resolve returns the operator for sym given the token preceding it. For
// context-sensitive symbols, the infix or closing form is chosen when prev is
// an operand, a variable, or an operator that expects nothing on its right;
// otherwise the prefix or opening form is chosen.
func (r *Registry) Resolve(sym string, prev Token) (*Operator, error) {
	if op := r.certain[sym]; op != nil {
		return op, nil
	}
	forms, ok := r.uncertain[sym]
	if !ok {
		return nil, &LexError{Text: sym, Kind: "operator"}
	}
	if prev.kind != TokenOperator || !prev.op.awaitsOperand() {
		return forms[1], nil
	}
	return forms[0], nil
}

// Start returns the operator that begins every token stream.
func (r *Registry) Start() *Operator {
	return r.start
}

// End returns the operator that ends every token stream.
func (r *Registry) End() *Operator {
	return r.end
}
