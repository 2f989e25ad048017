package cyclo

import (
	"fmt"
	"math/big"
)

// Rational is an exact fraction over arbitrary-precision integers. The
// denominator is always normalized to be positive and non-zero; the sign
// lives entirely on the numerator.
type Rational struct {
	num *big.Int
	den *big.Int
}

var oneInt = big.NewInt(1)

// Zero is the rational 0/1.
var Zero = Rational{num: big.NewInt(0), den: big.NewInt(1)}

// One is the rational 1/1.
var One = Rational{num: big.NewInt(1), den: big.NewInt(1)}

// NewRational builds a normalized Rational from an integer numerator and
// denominator. It panics if den is zero - callers that might legitimately
// divide by a pattern-supplied zero (e.g. fast(0)) must special-case that
// before reaching here; Fast collapses 0 to Silence for this reason.
func NewRational(n, d int64) Rational {
	return newRational(big.NewInt(n), big.NewInt(d))
}

// FromInt lifts a whole number to a Rational.
func FromInt(n int64) Rational {
	return Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// FromFloat converts a float64 to the Rational it represents exactly (a
// binary fraction, so 0.1 does not become 1/10); NaN and infinities give
// Zero. Used only where float values enter the engine; the engine's own
// arithmetic never goes through floats.
func FromFloat(f float64) Rational {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return Zero
	}
	return newRational(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
}

func newRational(n, d *big.Int) Rational {
	if d.Sign() == 0 {
		panic("cyclo: rational with zero denominator")
	}
	if d.Sign() < 0 {
		n = new(big.Int).Neg(n)
		d = new(big.Int).Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Sign() != 0 && g.Cmp(oneInt) != 0 {
		n = new(big.Int).Quo(n, g)
		d = new(big.Int).Quo(d, g)
	}
	return Rational{num: n, den: d}
}

// Num and Den expose the normalized numerator/denominator as int64. They
// do not check for overflow: a value outside the int64 range gives an
// undefined result. The engine calls them on cycle indices and step
// counts.
func (r Rational) Num() int64 { return r.num.Int64() }
func (r Rational) Den() int64 { return r.den.Int64() }

func (r Rational) Add(o Rational) Rational {
	n := new(big.Int).Add(new(big.Int).Mul(r.num, o.den), new(big.Int).Mul(o.num, r.den))
	d := new(big.Int).Mul(r.den, o.den)
	return newRational(n, d)
}

func (r Rational) Sub(o Rational) Rational {
	n := new(big.Int).Sub(new(big.Int).Mul(r.num, o.den), new(big.Int).Mul(o.num, r.den))
	d := new(big.Int).Mul(r.den, o.den)
	return newRational(n, d)
}

func (r Rational) Mul(o Rational) Rational {
	return newRational(new(big.Int).Mul(r.num, o.num), new(big.Int).Mul(r.den, o.den))
}

func (r Rational) Div(o Rational) Rational {
	if o.num.Sign() == 0 {
		panic("cyclo: division by zero rational")
	}
	return newRational(new(big.Int).Mul(r.num, o.den), new(big.Int).Mul(r.den, o.num))
}

func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.num), den: r.den}
}

// Mod is the rational modulo: r - o*floor(r/o). Always returns a value in
// [0, o) for positive o, matching cyclePos-style wraparound math.
func (r Rational) Mod(o Rational) Rational {
	q := r.Div(o).Floor()
	return r.Sub(q.Mul(o))
}

// MaybeRational pairs a Rational with a presence flag, for arithmetic
// whose result may be undefined (optional wholes' endpoints, MulMaybe).
type MaybeRational struct {
	Value Rational
	Ok    bool
}

func SomeRational(r Rational) MaybeRational { return MaybeRational{Value: r, Ok: true} }
func NoRational() MaybeRational             { return MaybeRational{} }

// MulMaybe returns None if either operand is None, else Some(a*b).
func MulMaybe(a, b MaybeRational) MaybeRational {
	if !a.Ok || !b.Ok {
		return NoRational()
	}
	return SomeRational(a.Value.Mul(b.Value))
}

func (r Rational) Equal(o Rational) bool { return r.num.Cmp(o.num) == 0 && r.den.Cmp(o.den) == 0 }

func (r Rational) Cmp(o Rational) int {
	l := new(big.Int).Mul(r.num, o.den)
	rr := new(big.Int).Mul(o.num, r.den)
	return l.Cmp(rr)
}

func (r Rational) Less(o Rational) bool         { return r.Cmp(o) < 0 }
func (r Rational) LessEqual(o Rational) bool    { return r.Cmp(o) <= 0 }
func (r Rational) Greater(o Rational) bool      { return r.Cmp(o) > 0 }
func (r Rational) GreaterEqual(o Rational) bool { return r.Cmp(o) >= 0 }
func (r Rational) IsZero() bool                 { return r.num.Sign() == 0 }
func (r Rational) Sign() int                    { return r.num.Sign() }

// Floor rounds down to the nearest whole-number Rational.
func (r Rational) Floor() Rational {
	q, m := new(big.Int).QuoRem(r.num, r.den, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (r.den.Sign() < 0) {
		q.Sub(q, oneInt)
	}
	return Rational{num: q, den: big.NewInt(1)}
}

// Ceil rounds up to the nearest whole-number Rational.
func (r Rational) Ceil() Rational {
	f := r.Floor()
	if f.Equal(r) {
		return f
	}
	return f.Add(One)
}

// Sam returns the start of the cycle containing r - floor(r).
func (r Rational) Sam() Rational { return r.Floor() }

// NextSam returns the start of the following cycle.
func (r Rational) NextSam() Rational { return r.Sam().Add(One) }

// CyclePos returns the fractional position within the current cycle,
// always in [0, 1).
func (r Rational) CyclePos() Rational { return r.Sub(r.Sam()) }

func (r Rational) Float64() float64 {
	f := new(big.Float).Quo(new(big.Float).SetInt(r.num), new(big.Float).SetInt(r.den))
	v, _ := f.Float64()
	return v
}

func (r Rational) String() string {
	if r.den.Cmp(oneInt) == 0 {
		return r.num.String()
	}
	return fmt.Sprintf("%s/%s", r.num.String(), r.den.String())
}

// RMin and RMax return the smaller/larger of two Rationals.
func RMin(a, b Rational) Rational {
	if a.Less(b) {
		return a
	}
	return b
}

func RMax(a, b Rational) Rational {
	if a.Greater(b) {
		return a
	}
	return b
}

func gcdInt(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// Gcd computes the rational greatest common divisor, used by the stepwise
// sublanguage when aligning step counts that may themselves be fractional.
func (r Rational) Gcd(o Rational) Rational {
	commonDen := new(big.Int).Mul(r.den, o.den)
	an := new(big.Int).Mul(r.num, o.den)
	bn := new(big.Int).Mul(o.num, r.den)
	g := gcdInt(an, bn)
	if g.Sign() == 0 {
		return Zero
	}
	return newRational(g, commonDen)
}

// Lcm computes the rational least common multiple.
func (r Rational) Lcm(o Rational) Rational {
	if r.IsZero() || o.IsZero() {
		return Zero
	}
	g := r.Gcd(o)
	return r.Mul(o).Div(g).Abs()
}

func (r Rational) Abs() Rational {
	if r.num.Sign() < 0 {
		return r.Neg()
	}
	return r
}
