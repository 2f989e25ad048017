package cyclo

// RegisteredFunc is the shape every registered pattern operation reduces
// to: a slice of already-reified arguments plus the pattern being acted
// on, producing a result pattern.
type RegisteredFunc func(args []Pattern, target Pattern) Pattern

// Registration describes how Register should treat a function's
// arguments before calling it: whether each non-final argument should be
// auto-patternified (reified and, if it yields more than one value per
// cycle, bound in rather than passed through as a constant pattern), and
// whether the result should keep the target's Steps.
type Registration struct {
	Name          string
	Arity         int
	Join          JoinKind
	PreserveSteps bool
	Fn            RegisteredFunc
}

// registry holds every operation registered through Register, keyed by
// name - the lookup table Invoke uses to turn a function name into an
// actual combinator for any name-driven caller.
var registry = map[string]Registration{}

// Register installs fn under name so it can later be invoked by name
// (Invoke) or discovered (Registered). Each non-final positional argument
// is patternified automatically: if the caller passes a non-Pattern
// value, or a string, it is reified once; if it's already a Pattern with
// more than a single constant value, argument patterning is resolved by
// binding via join before fn ever sees a plain value.
func Register(name string, arity int, join JoinKind, preserveSteps bool, fn RegisteredFunc) {
	registry[name] = Registration{
		Name:          name,
		Arity:         arity,
		Join:          join,
		PreserveSteps: preserveSteps,
		Fn:            fn,
	}
}

// Registered reports whether name has been registered, and returns its
// Registration.
func Registered(name string) (Registration, bool) {
	r, ok := registry[name]
	return r, ok
}

// Invoke calls the named registered function, reifying each raw argument
// first. If any argument pattern produces more than one distinct value
// across a cycle (i.e. it isn't a simple Pure-constant), the call is
// auto-patternified: args are bound in one at a time via the
// registration's Join before fn runs, so e.g. register("fast", ...) lets
// `fast("1 2")` apply a different speed each half-cycle instead of
// requiring a literal number.
func Invoke(name string, rawArgs []any, target Pattern) Pattern {
	reg, ok := registry[name]
	if !ok {
		defaultRuntime.log("unregistered operation invoked", LogError, name)
		return target
	}
	if reg.Arity == 1 && len(rawArgs) > 1 {
		rawArgs = []any{Sequence(rawArgs...)}
	}
	patterns := make([]Pattern, len(rawArgs))
	for i, a := range rawArgs {
		patterns[i] = Reify(a)
	}
	return invokeBound(reg, patterns, 0, nil, target)
}

// Sequence reifies each value and plays them one after another within a
// single cycle - the implicit sequencing applied when a single-argument
// registered operation is handed several arguments at once.
func Sequence(values ...any) Pattern {
	pats := make([]Pattern, len(values))
	for i, v := range values {
		pats[i] = Reify(v)
	}
	return FastCat(pats...)
}

// invokeBound recursively binds each remaining auto-patternified argument
// via reg.Join, accumulating resolved constant values in resolved, until
// every argument has a concrete value for this event and reg.Fn can run.
func invokeBound(reg Registration, patterns []Pattern, idx int, resolved []Pattern, target Pattern) Pattern {
	if idx >= len(patterns) {
		out := reg.Fn(resolved, target)
		if reg.PreserveSteps {
			out.Steps = cloneSteps(target.Steps)
		}
		return out
	}
	arg := patterns[idx]
	if v, ok := arg.IsPureValue(); ok {
		next := append(append([]Pattern(nil), resolved...), Pure(v))
		return invokeBound(reg, patterns, idx+1, next, target)
	}
	return arg.Bind(func(v any) Pattern {
		next := append(append([]Pattern(nil), resolved...), Pure(v))
		return invokeBound(reg, patterns, idx+1, next, target)
	}, reg.Join)
}

func init() {
	registerCoreOps()
}

// registerCoreOps wires the combinators already implemented as methods
// into the name-based registry, so a name-driven caller can reach them
// through Invoke without a hand-written switch per operation.
func registerCoreOps() {
	Register("fast", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		k, _ := args[0].IsPureValue()
		return p.Fast(toRational(k))
	})
	Register("slow", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		k, _ := args[0].IsPureValue()
		return p.Slow(toRational(k))
	})
	Register("early", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		k, _ := args[0].IsPureValue()
		return p.Early(toRational(k))
	})
	Register("late", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		k, _ := args[0].IsPureValue()
		return p.Late(toRational(k))
	})
	Register("rev", 0, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		return p.Rev()
	})
	Register("segment", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		n, _ := args[0].IsPureValue()
		return p.Segment(toRational(n))
	})
	Register("ply", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		n, _ := args[0].IsPureValue()
		return p.Ply(toRational(n))
	})
	Register("struct", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		return p.Struct(args[0])
	})
	Register("mask", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		return p.Mask(args[0])
	})
	Register("degradeBy", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		prob, _ := args[0].IsPureValue()
		f, _ := parseNumeral(prob)
		return p.DegradeBy(f)
	})
	Register("chop", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		n, _ := args[0].IsPureValue()
		nf, _ := parseNumeral(n)
		return Chop(int(nf), p)
	})
	Register("striate", 1, JoinInner, false, func(args []Pattern, p Pattern) Pattern {
		n, _ := args[0].IsPureValue()
		nf, _ := parseNumeral(n)
		return Striate(int(nf), p)
	})
}

func toRational(v any) Rational {
	switch val := v.(type) {
	case Rational:
		return val
	case int:
		return FromInt(int64(val))
	case int64:
		return FromInt(val)
	case float64:
		return FromFloat(val)
	default:
		return One
	}
}
