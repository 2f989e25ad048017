package cyclo

import "sort"

// Hap ("happening") is a single timed event: a value occupying Part of a
// query's span, whose full lifetime (Whole) may extend past what was
// queried. A nil Whole marks a continuous, sampled event (a signal).
type Hap struct {
	Whole   *Timespan
	Part    Timespan
	Value   any
	Context Context
}

// NewHap builds a discrete Hap with both whole and part set.
func NewHap(whole, part Timespan, value any, ctx Context) Hap {
	w := whole
	return Hap{Whole: &w, Part: part, Value: value, Context: ctx}
}

// NewContinuousHap builds a Hap with no whole - a sampled signal value.
func NewContinuousHap(part Timespan, value any, ctx Context) Hap {
	return Hap{Whole: nil, Part: part, Value: value, Context: ctx}
}

// HasOnset reports whether this Hap's part begins exactly where its whole
// begins - i.e. this is the first fragment of the event, not a
// continuation carried over from a prior query.
func (h Hap) HasOnset() bool {
	return h.Whole != nil && h.Whole.Begin.Equal(h.Part.Begin)
}

// WholeOrPart returns Whole if present, else Part - the span to use when
// an operation needs "the event's extent" regardless of continuity.
func (h Hap) WholeOrPart() Timespan {
	if h.Whole != nil {
		return *h.Whole
	}
	return h.Part
}

// WithValue returns a copy of h with Value replaced by f(Value).
func (h Hap) WithValue(f func(any) any) Hap {
	out := h
	out.Value = f(h.Value)
	return out
}

// WithSpan maps both Part and Whole (if present) through f.
func (h Hap) WithSpan(f func(Timespan) Timespan) Hap {
	out := h
	out.Part = f(h.Part)
	if h.Whole != nil {
		w := f(*h.Whole)
		out.Whole = &w
	}
	return out
}

// WithContext returns a copy of h with Context replaced by f(Context).
func (h Hap) WithContext(f func(Context) Context) Hap {
	out := h
	out.Context = f(h.Context)
	return out
}

// combineHapContext merges two Haps' contexts using CombineContext, the
// order in which applicatives typically need to combine function/value
// event metadata.
func combineHapContext(a, b Hap) Context {
	return CombineContext(a.Context, b.Context)
}

// sortHapsByPart sorts haps by (part.begin, part.end, whole.begin,
// whole.end) for deterministic test comparisons. Production code does
// not rely on this order.
func sortHapsByPart(haps []Hap) []Hap {
	out := append([]Hap(nil), haps...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := a.Part.Begin.Cmp(b.Part.Begin); c != 0 {
			return c < 0
		}
		if c := a.Part.End.Cmp(b.Part.End); c != 0 {
			return c < 0
		}
		aw, bw := a.WholeOrPart(), b.WholeOrPart()
		if c := aw.Begin.Cmp(bw.Begin); c != 0 {
			return c < 0
		}
		return aw.End.Cmp(bw.End) < 0
	})
	return out
}
