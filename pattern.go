package cyclo

// QueryFunc is the core contract: given a State, produce the events whose
// Part intersects State.Span.
type QueryFunc func(State) []Hap

// Pattern is a pure query function over time, optionally carrying a
// stepwise length (Steps) and a "this came from Pure" sideband used by
// Register's constant-folding fast path and by source-location
// preservation.
type Pattern struct {
	query     QueryFunc
	Steps     *Rational
	pureValue *any
	pureLoc   *SourceLocation
}

// Query runs the pattern's query function, containing any panic raised by
// a user-supplied callback to this single call: the
// panic is logged and an empty result returned, so one malformed
// sub-pattern never corrupts a sibling's events.
func (p Pattern) Query(s State) (haps []Hap) {
	if p.query == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			defaultRuntime.log("pattern query panicked", LogError, r)
			haps = nil
		}
	}()
	return p.query(s)
}

// QueryArc is the single public operation of the engine:
// sample the pattern over [begin, end) with the given controls and
// receive back the events that fall inside.
func (p Pattern) QueryArc(begin, end Rational, controls map[string]any) []Hap {
	if !begin.Less(end) {
		return nil
	}
	s := State{Span: Timespan{Begin: begin, End: end}, Controls: controls}
	return p.Query(s)
}

// withQuery returns a copy of p with its query function replaced, keeping
// Steps and the pure sidebands intact, for combinators that only touch
// query behaviour. Nothing in the package calls it; Fmap builds its
// Pattern directly.
func (p Pattern) withQuery(q QueryFunc) Pattern {
	out := p
	out.query = q
	return out
}

// stepsOrNil returns r wrapped as *Rational unless step tracking is
// disabled on the default runtime, in which case it returns nil so all
// step tracking is skipped.
func stepsOrNil(r Rational) *Rational {
	if !defaultRuntime.ComputeSteps() {
		return nil
	}
	out := r
	return &out
}

func cloneSteps(r *Rational) *Rational {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

// Pure returns a pattern that repeats v once per cycle.
func Pure(v any) Pattern {
	val := v
	p := Pattern{
		query: func(s State) []Hap {
			var haps []Hap
			for _, span := range s.Span.SpanCycles() {
				whole := CycleContaining(span.Begin)
				haps = append(haps, NewHap(whole, span, val, Context{}))
			}
			return haps
		},
		Steps:     stepsOrNil(One),
		pureValue: &val,
	}
	return p
}

// Gap is an empty pattern carrying the given step count - the stepwise
// "rest" building block. Silence is Gap(1), Nothing is Gap(0); the
// distinction is load-bearing in stepwise code, so the two are never
// unified.
func Gap(n Rational) Pattern {
	steps := n
	return Pattern{
		query: func(State) []Hap { return nil },
		Steps: stepsOrNil(steps),
	}
}

// Silence is the continuous-context empty pattern (one step per cycle,
// but no events).
func Silence() Pattern { return Gap(One) }

// Nothing is the stepwise-context empty pattern (zero steps).
func Nothing() Pattern { return Gap(Zero) }

// Signal lifts a pure function of time into a continuous pattern: one
// Hap per query, with no Whole, sampled at the span's Begin.
func Signal(f func(Rational) any) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			return []Hap{NewContinuousHap(s.Span, f(s.Span.Begin), Context{})}
		},
	}
}

// Steady is a constant-valued Signal.
func Steady(v any) Pattern {
	return Signal(func(Rational) any { return v })
}

// SplitQueries wraps p so its query is issued once per integer-aligned
// sub-span of whatever span it's asked about, concatenating the results.
// Many transforms (anything that reasons about "the current cycle") need
// this to avoid seeing a query that straddles a cycle boundary.
func SplitQueries(p Pattern) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			var haps []Hap
			for _, span := range s.Span.SpanCycles() {
				haps = append(haps, p.Query(s.WithSpan(span))...)
			}
			return haps
		},
		Steps:     cloneSteps(p.Steps),
		pureValue: p.pureValue,
		pureLoc:   p.pureLoc,
	}
}

// IsPureValue reports whether p was built by Pure (directly, not through a
// combinator that lost the sideband), returning the constant value.
func (p Pattern) IsPureValue() (any, bool) {
	if p.pureValue == nil {
		return nil, false
	}
	return *p.pureValue, true
}

// WithLoc attaches a source location to a pattern built from Pure, used by
// Register to preserve source highlighting across constant-folding.
func (p Pattern) WithLoc(loc SourceLocation) Pattern {
	out := p
	out.pureLoc = &loc
	return out
}
