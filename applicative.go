package cyclo

// wholeCombiner derives a result Hap's Whole from the two input Haps'
// Wholes. AppWhole takes one as a parameter and AppBoth passes
// wholeIntersect; AppLeft and AppRight derive Wholes in their own queries.
type wholeCombiner func(a, b *Timespan) *Timespan

func wholeIntersect(a, b *Timespan) *Timespan {
	if a == nil || b == nil {
		return nil
	}
	inter, ok := a.Intersection(*b)
	if !ok {
		return nil
	}
	return &inter
}

func wholeLeft(a, _ *Timespan) *Timespan  { return cloneTimespan(a) }
func wholeRight(_, b *Timespan) *Timespan { return cloneTimespan(b) }

func asFunc(v any) (func(any) any, bool) {
	f, ok := v.(func(any) any)
	return f, ok
}

func lcmSteps(a, b *Rational) *Rational {
	if a == nil || b == nil {
		return nil
	}
	l := a.Lcm(*b)
	return &l
}

// AppWhole is the generic applicative combinator: pf must produce
// func(any) any values. Every pair of events from pf and pv whose Parts
// intersect yields one event, combined via whole and with contexts
// merged. AppBoth is built on it with wholeIntersect; AppLeft and
// AppRight have query functions of their own and do not call it.
func AppWhole(whole wholeCombiner, pf, pv Pattern) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			fHaps := pf.Query(s)
			vHaps := pv.Query(s)
			var out []Hap
			for _, fh := range fHaps {
				fn, ok := asFunc(fh.Value)
				if !ok {
					continue
				}
				for _, vh := range vHaps {
					part, ok := fh.Part.Intersection(vh.Part)
					if !ok {
						continue
					}
					out = append(out, Hap{
						Whole:   whole(fh.Whole, vh.Whole),
						Part:    part,
						Value:   fn(vh.Value),
						Context: combineHapContext(fh, vh),
					})
				}
			}
			return out
		},
	}
}

// AppBoth is the "mix" applicative: both structures contribute, events
// exist only where both exist, and Steps is the lcm of the two arms.
func (p Pattern) AppBoth(other Pattern) Pattern {
	out := AppWhole(wholeIntersect, p, other)
	out.Steps = lcmSteps(p.Steps, other.Steps)
	return out
}

// AppLeft takes structure from the left (p): for each left event, the
// right pattern is queried restricted to that event's whole (or part, if
// continuous), not the full outer span.
func (p Pattern) AppLeft(other Pattern) Pattern {
	out := Pattern{
		query: func(s State) []Hap {
			fHaps := p.Query(s)
			var result []Hap
			for _, fh := range fHaps {
				fn, ok := asFunc(fh.Value)
				if !ok {
					continue
				}
				restrict := fh.WholeOrPart()
				vHaps := other.Query(s.WithSpan(restrict))
				for _, vh := range vHaps {
					part, ok := fh.Part.Intersection(vh.Part)
					if !ok {
						continue
					}
					result = append(result, Hap{
						Whole:   cloneTimespan(fh.Whole),
						Part:    part,
						Value:   fn(vh.Value),
						Context: combineHapContext(fh, vh),
					})
				}
			}
			return result
		},
		Steps: cloneSteps(p.Steps),
	}
	return out
}

// AppRight is AppLeft with structure taken from the right (other): the
// left pattern is queried restricted to each right event's whole/part.
func (p Pattern) AppRight(other Pattern) Pattern {
	out := Pattern{
		query: func(s State) []Hap {
			vHaps := other.Query(s)
			var result []Hap
			for _, vh := range vHaps {
				restrict := vh.WholeOrPart()
				fHaps := p.Query(s.WithSpan(restrict))
				for _, fh := range fHaps {
					fn, ok := asFunc(fh.Value)
					if !ok {
						continue
					}
					part, ok := fh.Part.Intersection(vh.Part)
					if !ok {
						continue
					}
					result = append(result, Hap{
						Whole:   cloneTimespan(vh.Whole),
						Part:    part,
						Value:   fn(vh.Value),
						Context: combineHapContext(fh, vh),
					})
				}
			}
			return result
		},
		Steps: cloneSteps(other.Steps),
	}
	return out
}
