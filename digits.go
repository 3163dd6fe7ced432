package calculator

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant decimal digits kept by every
// Operand.
const DefaultPrecision = 15

// pow10 holds the powers of ten that float64 represents exactly.
var pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
	1e20, 1e21, 1e22,
}

func exp10(n int) float64 {
	if 0 <= n && n < len(pow10) {
		return pow10[n]
	}
	// ParseFloat gives the nearest float64, which Pow does not promise.
	r, _ := strconv.ParseFloat("1e"+strconv.Itoa(n), 64)
	return r
}

// intDigits returns the number of decimal digits in the integer part of v,
// read from its shortest decimal representation. Values with magnitude below
// 1 have no integer digits.
func intDigits(v float64) int {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	_, exp := decimal(v)
	if exp < 0 {
		return 0
	}
	return exp + 1
}

// decimal splits the shortest decimal representation of v into its
// significant digits, without sign or point, and its decimal exponent.
func decimal(v float64) (string, int) {
	s := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	mant, e, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(e)
	return strings.Replace(mant, ".", "", 1), exp
}

func checkDigits(digits int) {
	if digits <= 0 {
		panic("calculator: precision must be positive, not " + strconv.Itoa(digits))
	}
}

// Normalize rounds v to the given number of significant decimal digits. When
// the integer part of v alone has more digits than that, the excess low-order
// digits are truncated. Normalize is idempotent, so normalized values may be
// compared with ==. Infinities and NaN are returned unchanged. Panics if
// digits is not positive.
func Normalize(v float64, digits int) float64 {
	checkDigits(digits)
	if math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
		return v
	}
	n := intDigits(v)
	if n > digits {
		return truncDigits(v, digits)
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits-n, 64), 64)
	if r == 0 {
		// No negative zero.
		return 0
	}
	return r
}

// truncDigits cuts the shortest decimal representation of v to the given
// number of significant digits.
func truncDigits(v float64, digits int) float64 {
	d, exp := decimal(v)
	if len(d) <= digits {
		return v
	}
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	b.WriteString(d[:1])
	if digits > 1 {
		b.WriteByte('.')
		b.WriteString(d[1:digits])
	}
	b.WriteString("e")
	b.WriteString(strconv.Itoa(exp))
	r, _ := strconv.ParseFloat(b.String(), 64)
	return r
}

// roundDigits rounds v to the nearest value with the given number of
// significant digits.
func roundDigits(v float64, digits int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'e', digits-1, 64), 64)
	return r
}

// MinimumSpan returns the smallest step that changes the normalized value of
// a number with the magnitude of ref. Panics if digits is not positive.
func MinimumSpan(ref float64, digits int) float64 {
	checkDigits(digits)
	n := intDigits(ref)
	if n > digits {
		return exp10(n - digits)
	}
	return 1 / exp10(digits-n)
}
