package calc

import (
	"math"
	"math/big"
	"strconv"
)

// integralTolerance is the largest distance from an integer at which a
// result is presented as that integer.
const integralTolerance = 1e-12

// Number is the result of evaluating an expression. A result within 1e-12 of
// an integer is integral and holds exactly that integer, at any magnitude.
type Number struct {
	f        float64
	integral bool
}

// Float64 returns the value of n.
func (n Number) Float64() float64 {
	return n.f
}

// IsInt reports whether n is integral.
func (n Number) IsInt() bool {
	return n.integral
}

// Int64 returns the value of n as an integer, with false if n is not
// integral or is outside the range of int64.
func (n Number) Int64() (int64, bool) {
	if !n.integral || !inInt64(n.f) {
		return 0, false
	}
	return int64(n.f), true
}

// Int returns the exact value of n as a new big.Int, or nil if n is not
// integral.
func (n Number) Int() *big.Int {
	if !n.integral {
		return nil
	}
	z, _ := big.NewFloat(n.f).Int(nil)
	return z
}

// inInt64 reports whether an integral float64 converts to int64 exactly.
// -2^63 is exact in float64, 2^63 is just past the largest int64.
func inInt64(f float64) bool {
	return f >= math.MinInt64 && f < -math.MinInt64
}

// String formats n. Integral numbers have no fractional part. Other numbers
// use the shortest representation that round-trips, switching to exponent
// notation for very large or very small magnitudes.
func (n Number) String() string {
	switch {
	case n.integral && inInt64(n.f):
		return strconv.FormatInt(int64(n.f), 10)
	case n.integral:
		// Every float64 this large is an integer and 'f' prints it exactly.
		return strconv.FormatFloat(n.f, 'f', 0, 64)
	}
	if a := math.Abs(n.f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}

// normalize creates a Number from a final result.
func normalize(f float64) Number {
	r := math.Round(f)
	if math.Abs(f-r) < integralTolerance {
		// Adding 0 turns -0 into 0.
		return Number{f: r + 0, integral: true}
	}
	return Number{f: f}
}

// Compile tokenizes an infix expression, marks its unary minus operators,
// and converts it to postfix order.
func Compile(text string) ([]Token, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ToPostfix(Annotate(toks))
}

// Evaluate computes the value of an infix expression. Every error it returns
// implements Error.
func Evaluate(text string) (Number, error) {
	postfix, err := Compile(text)
	if err != nil {
		return Number{}, err
	}
	f, err := EvalPostfix(postfix)
	if err != nil {
		return Number{}, err
	}
	return normalize(f), nil
}
