package cyclo

// JoinKind tags one of the six ways a pattern-of-patterns can collapse
// into a pattern. All joins dispatch through Join.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinOuter
	JoinSqueeze
	JoinReset
	JoinRestart
	JoinPoly
)

// innerOuterJoin implements both InnerJoin and OuterJoin: they differ only
// in which side's Whole survives. Both query the inner pattern restricted
// to the outer event's Part.
func innerOuterJoin(pp Pattern, outerWins bool) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			outerHaps := pp.Query(s)
			var out []Hap
			for _, oh := range outerHaps {
				inner, ok := oh.Value.(Pattern)
				if !ok {
					continue
				}
				innerHaps := inner.Query(s.WithSpan(oh.Part))
				for _, ih := range innerHaps {
					part, ok := oh.Part.Intersection(ih.Part)
					if !ok {
						continue
					}
					whole := ih.Whole
					if outerWins {
						whole = oh.Whole
					}
					out = append(out, Hap{
						Whole:   cloneTimespan(whole),
						Part:    part,
						Value:   ih.Value,
						Context: combineHapContext(oh, ih),
					})
				}
			}
			return out
		},
	}
}

// InnerJoin: inner structure dominates; the outer pattern only selects
// which inner cycle is queried.
func InnerJoin(pp Pattern) Pattern {
	out := innerOuterJoin(pp, false)
	out.Steps = nil
	return out
}

// OuterJoin: outer structure dominates.
func OuterJoin(pp Pattern) Pattern {
	out := innerOuterJoin(pp, true)
	out.Steps = cloneSteps(pp.Steps)
	return out
}

// SqueezeJoin compresses one cycle of each outer event's inner pattern
// into that event's whole, keeping only fragments whose resulting part
// is non-empty.
func SqueezeJoin(pp Pattern) Pattern {
	out := Pattern{
		query: func(s State) []Hap {
			outerHaps := pp.Query(s)
			var result []Hap
			for _, oh := range outerHaps {
				inner, ok := oh.Value.(Pattern)
				if !ok {
					continue
				}
				squeezed := focusSpan(inner, oh.WholeOrPart())
				innerHaps := squeezed.Query(s.WithSpan(oh.Part))
				for _, ih := range innerHaps {
					part, ok := ih.Part.Intersection(oh.Part)
					if !ok {
						continue
					}
					result = append(result, Hap{
						Whole:   cloneTimespan(ih.Whole),
						Part:    part,
						Value:   ih.Value,
						Context: combineHapContext(oh, ih),
					})
				}
			}
			return result
		},
	}
	return out
}

// resetRestartJoin implements both ResetJoin and RestartJoin: they differ
// only in how far the inner pattern's timeline is shifted at each outer
// onset.
func resetRestartJoin(pp Pattern, cyclePosOnly bool) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			outerHaps := pp.Query(s)
			var out []Hap
			for _, oh := range outerHaps {
				inner, ok := oh.Value.(Pattern)
				if !ok {
					continue
				}
				begin := oh.WholeOrPart().Begin
				offset := begin
				if cyclePosOnly {
					offset = begin.CyclePos()
				}
				shifted := inner.Late(offset)
				innerHaps := shifted.Query(s.WithSpan(oh.Part))
				for _, ih := range innerHaps {
					part, ok := oh.Part.Intersection(ih.Part)
					if !ok {
						continue
					}
					out = append(out, Hap{
						Whole:   cloneTimespan(oh.Whole),
						Part:    part,
						Value:   ih.Value,
						Context: combineHapContext(oh, ih),
					})
				}
			}
			return out
		},
		Steps: cloneSteps(pp.Steps),
	}
}

// ResetJoin: the inner pattern's cycle is re-aligned so its cycle start
// coincides with the outer onset.
func ResetJoin(pp Pattern) Pattern { return resetRestartJoin(pp, true) }

// RestartJoin: the inner pattern restarts from its absolute time zero at
// each outer onset.
func RestartJoin(pp Pattern) Pattern { return resetRestartJoin(pp, false) }

// PolyJoin extends each inner pattern by outer.Steps/inner.Steps before
// an OuterJoin, so differently-stepped inner patterns align to the outer
// structure's step count.
func PolyJoin(pp Pattern) Pattern {
	outerSteps := pp.Steps
	extended := pp.Fmap(func(v any) any {
		inner, ok := v.(Pattern)
		if !ok {
			return v
		}
		if outerSteps == nil || inner.Steps == nil || inner.Steps.IsZero() {
			return inner
		}
		factor := outerSteps.Div(*inner.Steps)
		return inner.Extend(factor)
	})
	return OuterJoin(extended)
}

// Join dispatches to the join variant named by kind. Register's join
// parameter routes through here.
func Join(pp Pattern, kind JoinKind) Pattern {
	switch kind {
	case JoinInner:
		return InnerJoin(pp)
	case JoinOuter:
		return OuterJoin(pp)
	case JoinSqueeze:
		return SqueezeJoin(pp)
	case JoinReset:
		return ResetJoin(pp)
	case JoinRestart:
		return RestartJoin(pp)
	case JoinPoly:
		return PolyJoin(pp)
	default:
		return InnerJoin(pp)
	}
}

// Bind is the monadic bind: fmap f over p, then collapse the resulting
// pattern-of-patterns with the given join.
func (p Pattern) Bind(f func(any) Pattern, kind JoinKind) Pattern {
	pp := p.Fmap(func(v any) any { return f(v) })
	return Join(pp, kind)
}

// InnerBind, OuterBind and SqueezeBind fix Bind's join kind. SqueezeBind
// backs the per-event sub-patterns of ply, chop, bite, arp and scramble;
// InnerBind backs index-driven slicing in chop.go; OuterBind has no caller
// inside the package.
func (p Pattern) InnerBind(f func(any) Pattern) Pattern { return p.Bind(f, JoinInner) }
func (p Pattern) OuterBind(f func(any) Pattern) Pattern { return p.Bind(f, JoinOuter) }
func (p Pattern) SqueezeBind(f func(any) Pattern) Pattern {
	return p.Bind(f, JoinSqueeze)
}
