package cyclo

import "math"

// MixHow names the eight ways two operand patterns can be combined,
// crossed against the valueOps operation table below.
type MixHow int

const (
	HowIn MixHow = iota
	HowOut
	HowMix
	HowSqueeze
	HowSqueezeOut
	HowReset
	HowRestart
	HowPoly
)

// OpFunc combines two already-reified values into a result value.
type OpFunc func(a, b any) any

// valueOps maps operation names to their value-level functions. Methods
// below dispatch through this table rather than hand-writing every
// op×how combination.
var valueOps = map[string]OpFunc{
	"add":     numOp(func(a, b float64) float64 { return a + b }),
	"sub":     numOp(func(a, b float64) float64 { return a - b }),
	"mul":     numOp(func(a, b float64) float64 { return a * b }),
	"div":     numOp(func(a, b float64) float64 { return a / b }),
	"mod":     numOp(math.Mod),
	"pow":     numOp(math.Pow),
	"band":    intOp(func(a, b int64) int64 { return a & b }),
	"bor":     intOp(func(a, b int64) int64 { return a | b }),
	"bxor":    intOp(func(a, b int64) int64 { return a ^ b }),
	"blshift": intOp(func(a, b int64) int64 { return a << uint(b) }),
	"brshift": intOp(func(a, b int64) int64 { return a >> uint(b) }),
	"lt":      cmpOp(func(c int) bool { return c < 0 }),
	"gt":      cmpOp(func(c int) bool { return c > 0 }),
	"lte":     cmpOp(func(c int) bool { return c <= 0 }),
	"gte":     cmpOp(func(c int) bool { return c >= 0 }),
	"eq":      cmpOp(func(c int) bool { return c == 0 }),
	"ne":      cmpOp(func(c int) bool { return c != 0 }),
	"and":     boolOp(func(a, b bool) bool { return a && b }),
	"or":      boolOp(func(a, b bool) bool { return a || b }),
	"set":     func(a, b any) any { return mergeValues(a, b, func(av, bv any) any { return bv }) },
	"keep":    func(a, b any) any { return mergeValues(a, b, func(av, bv any) any { return av }) },
	"keepIf":  func(a, b any) any { return keepIf(a, b) },
}

func numOp(f func(a, b float64) float64) OpFunc {
	return func(a, b any) any {
		return mergeValues(a, b, func(av, bv any) any {
			af, aok := parseNumeral(av)
			bf, bok := parseNumeral(bv)
			if !aok || !bok {
				return undefinedValue
			}
			return f(af, bf)
		})
	}
}

func intOp(f func(a, b int64) int64) OpFunc {
	return func(a, b any) any {
		return mergeValues(a, b, func(av, bv any) any {
			af, aok := parseNumeral(av)
			bf, bok := parseNumeral(bv)
			if !aok || !bok {
				return undefinedValue
			}
			return f(int64(af), int64(bf))
		})
	}
}

func cmpOp(test func(int) bool) OpFunc {
	return func(a, b any) any {
		af, aok := parseNumeral(a)
		bf, bok := parseNumeral(b)
		if !aok || !bok {
			return false
		}
		switch {
		case af < bf:
			return test(-1)
		case af > bf:
			return test(1)
		default:
			return test(0)
		}
	}
}

func boolOp(f func(a, b bool) bool) OpFunc {
	return func(a, b any) any { return f(truthy(a), truthy(b)) }
}

// mergeValues applies f to scalar values directly, but to ControlMaps
// field-by-field via unionWithObj-style merge (named controls compose
// field-wise, right-biased).
func mergeValues(a, b any, f func(av, bv any) any) any {
	am, aIsMap := asControlMap(a)
	bm, bIsMap := asControlMap(b)
	if aIsMap && bIsMap {
		out := am.Clone()
		for k, bv := range bm {
			if av, ok := am[k]; ok {
				out[k] = f(av, bv)
			} else {
				out[k] = bv
			}
		}
		return out
	}
	if aIsMap || bIsMap {
		return unionWithObj(coerceMap(a), coerceMap(b))
	}
	return f(a, b)
}

func coerceMap(v any) ControlMap {
	if m, ok := asControlMap(v); ok {
		return m
	}
	return nil
}

// applyHow lifts the combination of a curried-function pattern (fnPat,
// whose values are func(any) any) and an operand pattern (other) through
// the applicative or join matching how.
func applyHow(how MixHow, fnPat, other Pattern) Pattern {
	switch how {
	case HowIn:
		return fnPat.AppLeft(other)
	case HowOut:
		return fnPat.AppRight(other)
	case HowMix:
		return fnPat.AppBoth(other)
	case HowSqueeze:
		return SqueezeJoin(fnPat.Fmap(func(fnv any) any {
			fn := fnv.(func(any) any)
			return other.Fmap(fn)
		}))
	case HowSqueezeOut:
		return SqueezeJoin(other.Fmap(func(bv any) any {
			return fnPat.Fmap(func(fnv any) any { return fnv.(func(any) any)(bv) })
		}))
	case HowReset:
		return ResetJoin(fnPat.Fmap(func(fnv any) any {
			fn := fnv.(func(any) any)
			return other.Fmap(fn)
		}))
	case HowRestart:
		return RestartJoin(fnPat.Fmap(func(fnv any) any {
			fn := fnv.(func(any) any)
			return other.Fmap(fn)
		}))
	case HowPoly:
		return PolyJoin(fnPat.Fmap(func(fnv any) any {
			fn := fnv.(func(any) any)
			return other.Fmap(fn)
		}))
	default:
		return fnPat.AppBoth(other)
	}
}

// Compose is the generic matrix-composer entry point: look up opName in
// the operation table, lift both operands, and combine them per how.
// other is reified first, so callers may pass a bare value, a Pattern, or
// a string (parsed via the injected notation hook).
func (p Pattern) Compose(opName string, how MixHow, other any) Pattern {
	op, ok := valueOps[opName]
	if !ok {
		return Silence()
	}
	otherPat := Reify(other)
	fnPat := p.Fmap(func(a any) any {
		av := a
		return func(b any) any { return op(av, b) }
	})
	result := applyHow(how, fnPat, otherPat)
	return result.FilterValues(func(v any) bool { return !isUndefined(v) })
}

// The following convenience methods expose each operation directly; each
// defaults to the "mix" how (appBoth), with In/Out/Squeeze
// siblings for the combinators that are actually exercised elsewhere in
// this package (Ply-like squeezes, pattern arithmetic under a shared
// structure).
func (p Pattern) Add(other any) Pattern        { return p.Compose("add", HowMix, other) }
func (p Pattern) AddIn(other any) Pattern      { return p.Compose("add", HowIn, other) }
func (p Pattern) AddOut(other any) Pattern     { return p.Compose("add", HowOut, other) }
func (p Pattern) AddSqueeze(other any) Pattern { return p.Compose("add", HowSqueeze, other) }

func (p Pattern) Sub(other any) Pattern     { return p.Compose("sub", HowMix, other) }
func (p Pattern) Mul(other any) Pattern     { return p.Compose("mul", HowMix, other) }
func (p Pattern) Div(other any) Pattern     { return p.Compose("div", HowMix, other) }
func (p Pattern) ModOp(other any) Pattern   { return p.Compose("mod", HowMix, other) }
func (p Pattern) Pow(other any) Pattern     { return p.Compose("pow", HowMix, other) }
func (p Pattern) Band(other any) Pattern    { return p.Compose("band", HowMix, other) }
func (p Pattern) Bor(other any) Pattern     { return p.Compose("bor", HowMix, other) }
func (p Pattern) Bxor(other any) Pattern    { return p.Compose("bxor", HowMix, other) }
func (p Pattern) Blshift(other any) Pattern { return p.Compose("blshift", HowMix, other) }
func (p Pattern) Brshift(other any) Pattern { return p.Compose("brshift", HowMix, other) }
func (p Pattern) Lt(other any) Pattern      { return p.Compose("lt", HowMix, other) }
func (p Pattern) Gt(other any) Pattern      { return p.Compose("gt", HowMix, other) }
func (p Pattern) Lte(other any) Pattern     { return p.Compose("lte", HowMix, other) }
func (p Pattern) Gte(other any) Pattern     { return p.Compose("gte", HowMix, other) }
func (p Pattern) Eq(other any) Pattern      { return p.Compose("eq", HowMix, other) }
func (p Pattern) Ne(other any) Pattern      { return p.Compose("ne", HowMix, other) }
func (p Pattern) And(other any) Pattern     { return p.Compose("and", HowMix, other) }
func (p Pattern) Or(other any) Pattern      { return p.Compose("or", HowMix, other) }
func (p Pattern) Set(other any) Pattern     { return p.Compose("set", HowMix, other) }
func (p Pattern) Keep(other any) Pattern    { return p.Compose("keep", HowMix, other) }

// Func applies an arbitrary binary value function as a matrix operator
// under the given how, without needing a table entry.
func (p Pattern) Func(how MixHow, other any, f func(a, b any) any) Pattern {
	otherPat := Reify(other)
	fnPat := p.Fmap(func(a any) any {
		av := a
		return func(b any) any { return f(av, b) }
	})
	return applyHow(how, fnPat, otherPat)
}

// Struct imposes boolPat's structure onto p's values: struct = keepIf.out
// (appRight - structure from the right/boolPat operand).
func (p Pattern) Struct(boolPat Pattern) Pattern {
	fnPat := p.Fmap(func(v any) any {
		val := v
		return func(b any) any { return keepIf(val, b) }
	})
	return fnPat.AppRight(boolPat).FilterValues(func(v any) bool { return !isUndefined(v) })
}

// Mask keeps p's own structure, dropping events where boolPat is false at
// that time: mask = keepIf.in (appLeft - structure from the left/p
// operand).
func (p Pattern) Mask(boolPat Pattern) Pattern {
	fnPat := p.Fmap(func(v any) any {
		val := v
		return func(b any) any { return keepIf(val, b) }
	})
	return fnPat.AppLeft(boolPat).FilterValues(func(v any) bool { return !isUndefined(v) })
}

// Reset re-aligns p's cycle to onsetPat's onsets, dropping p where
// onsetPat is false: reset = keepIf.reset.
func (p Pattern) Reset(onsetPat Pattern) Pattern {
	outer := onsetPat.Fmap(func(b any) any {
		if truthy(b) {
			return p
		}
		return Nothing()
	})
	return ResetJoin(outer)
}

// Restart restarts p from time zero at onsetPat's onsets, dropping p
// where onsetPat is false: restart = keepIf.restart.
func (p Pattern) Restart(onsetPat Pattern) Pattern {
	outer := onsetPat.Fmap(func(b any) any {
		if truthy(b) {
			return p
		}
		return Nothing()
	})
	return RestartJoin(outer)
}
