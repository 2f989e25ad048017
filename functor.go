package cyclo

// Fmap maps every event's value through f, leaving structure (and Steps)
// untouched.
func (p Pattern) Fmap(f func(any) any) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			haps := p.Query(s)
			out := make([]Hap, len(haps))
			for i, h := range haps {
				out[i] = h.WithValue(f)
			}
			return out
		},
		Steps: cloneSteps(p.Steps),
	}
}

// WithContext maps every event's context through f.
func (p Pattern) WithContext(f func(Context) Context) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			haps := p.Query(s)
			out := make([]Hap, len(haps))
			for i, h := range haps {
				out[i] = h.WithContext(f)
			}
			return out
		},
		Steps: cloneSteps(p.Steps),
	}
}

// FilterHaps keeps only the events for which keep returns true.
func (p Pattern) FilterHaps(keep func(Hap) bool) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			haps := p.Query(s)
			out := make([]Hap, 0, len(haps))
			for _, h := range haps {
				if keep(h) {
					out = append(out, h)
				}
			}
			return out
		},
		Steps: cloneSteps(p.Steps),
	}
}

// FilterValues keeps only events whose value satisfies keep.
func (p Pattern) FilterValues(keep func(any) bool) Pattern {
	return p.FilterHaps(func(h Hap) bool { return keep(h.Value) })
}

// FilterOnsets keeps only onset events: those whose part begins exactly
// at their whole's begin.
func (p Pattern) FilterOnsets() Pattern {
	return p.FilterHaps(Hap.HasOnset)
}

func cloneTimespan(t *Timespan) *Timespan {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
