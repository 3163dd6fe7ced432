package calculator

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Operand is a numeric value normalized to DefaultPrecision significant
// digits. The zero Operand is 0.
type Operand struct {
	v float64
}

// NewOperand creates a normalized operand.
func NewOperand(v float64) Operand {
	return Operand{v: Normalize(v, DefaultPrecision)}
}

// Value returns the normalized value.
func (o Operand) Value() float64 {
	return o.v
}

// Equal reports whether two operands have bit-identical normalized values.
func (o Operand) Equal(p Operand) bool {
	return o.v == p.v
}

func (o Operand) String() string {
	return strconv.FormatFloat(o.v, 'g', -1, 64)
}

// constprec is the precision in bits used to derive named constants.
const constprec = 128

// constants are the reserved names that lex as fixed operands. Their values
// are not normalized so that they carry full float64 precision into
// arithmetic.
var constants = map[string]Operand{
	"pi": {v: bigconst(bigfloat.Pi)},
	"e": {v: bigconst(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(constprec).SetInt64(1)
		return bigfloat.Exp(out, one)
	})},
}

func bigconst(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(constprec)
	f(r)
	v, _ := r.Float64()
	return v
}

// Constant returns the value of a named constant.
func Constant(name string) (Operand, bool) {
	o, ok := constants[name]
	return o, ok
}

// IsConstant reports whether name is reserved for a named constant.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}
