package cyclo

// Fast plays p k times faster per cycle. Fast(0) collapses to Silence
// rather than dividing by zero.
func (p Pattern) Fast(k Rational) Pattern {
	if k.IsZero() {
		return Silence()
	}
	out := Pattern{
		query: func(s State) []Hap {
			fastState := s.WithSpanTime(func(t Rational) Rational { return t.Mul(k) })
			haps := p.Query(fastState)
			result := make([]Hap, len(haps))
			for i, h := range haps {
				result[i] = h.WithSpan(func(t Timespan) Timespan {
					return t.WithTime(func(r Rational) Rational { return r.Div(k) })
				})
			}
			return result
		},
		Steps: cloneSteps(p.Steps),
	}
	return out
}

// Slow plays p k times slower per cycle. Slow(k) == Fast(1/k).
func (p Pattern) Slow(k Rational) Pattern {
	if k.IsZero() {
		return Silence()
	}
	return p.Fast(One.Div(k))
}

// Early shifts p earlier in time by o cycles.
func (p Pattern) Early(o Rational) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			shifted := s.WithSpanTime(func(t Rational) Rational { return t.Add(o) })
			haps := p.Query(shifted)
			result := make([]Hap, len(haps))
			for i, h := range haps {
				result[i] = h.WithSpan(func(t Timespan) Timespan {
					return t.WithTime(func(r Rational) Rational { return r.Sub(o) })
				})
			}
			return result
		},
		Steps: cloneSteps(p.Steps),
	}
}

// Late shifts p later in time by o cycles. Late(o) == Early(-o).
func (p Pattern) Late(o Rational) Pattern { return p.Early(o.Neg()) }

// Rev reflects each cycle of p across its midpoint.
func (p Pattern) Rev() Pattern {
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			nextCycle := cycle.Add(One)
			reflect := func(t Rational) Rational { return cycle.Add(nextCycle).Sub(t) }
			reflectedSpan := Timespan{Begin: reflect(s.Span.End), End: reflect(s.Span.Begin)}
			haps := p.Query(s.WithSpan(reflectedSpan))
			result := make([]Hap, len(haps))
			for i, h := range haps {
				result[i] = h.WithSpan(func(t Timespan) Timespan {
					return Timespan{Begin: reflect(t.End), End: reflect(t.Begin)}
				})
			}
			return result
		},
		Steps: cloneSteps(p.Steps),
	})
}

// Compress plays p inside [b,e] of every cycle, silent outside. A
// degenerate interval (not 0<=b<e<=1) collapses to Silence.
func (p Pattern) Compress(b, e Rational) Pattern {
	if b.Greater(e) || b.Greater(One) || e.Greater(One) || b.Less(Zero) || e.Less(Zero) || b.Equal(e) {
		defaultRuntime.log("compress called with a degenerate interval", LogError, Timespan{Begin: b, End: e})
		return Silence()
	}
	return p.FastGap(One.Div(e.Sub(b))).Late(b)
}

// FastGap plays one cycle of p compressed into [0, 1/k], silent in
// [1/k, 1). Unlike Fast, FastGap never repeats p more than once per
// cycle: the compressed copy is followed by a true gap.
func (p Pattern) FastGap(k Rational) Pattern {
	if k.LessEqual(Zero) {
		return Silence()
	}
	if k.Less(One) {
		k = One
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			beginOffset := s.Span.Begin.Sub(cycle)
			endOffset := s.Span.End.Sub(cycle)
			begin := cycle.Add(RMin(beginOffset.Mul(k), One))
			end := cycle.Add(RMin(endOffset.Mul(k), One))
			if !begin.Less(cycle.Add(One)) {
				return nil
			}
			unmunge := func(t Rational) Rational { return cycle.Add(t.Sub(cycle).Div(k)) }
			haps := p.Query(s.WithSpan(Timespan{Begin: begin, End: end}))
			result := make([]Hap, len(haps))
			for i, h := range haps {
				result[i] = h.WithSpan(func(t Timespan) Timespan { return t.WithTime(unmunge) })
			}
			return result
		},
		Steps: cloneSteps(p.Steps),
	})
}

// focusSpan maps p's cycle [0,1) onto the real-time span w:
// early(b.sam()), then fast(1/(e-b)), then late(b).
func focusSpan(p Pattern, w Timespan) Pattern {
	dur := w.Duration()
	if dur.IsZero() {
		return Silence()
	}
	return p.Early(w.Begin.Sam()).Fast(One.Div(dur)).Late(w.Begin)
}

// Focus is like Compress but without a gap, and can span more than one
// cycle.
func (p Pattern) Focus(b, e Rational) Pattern {
	return focusSpan(p, Timespan{Begin: b, End: e})
}

// Zoom plays the [b,e] slice of p over one full cycle - the reverse of
// Focus. A degenerate interval collapses to Nothing.
func (p Pattern) Zoom(b, e Rational) Pattern {
	d := e.Sub(b)
	if d.LessEqual(Zero) {
		return Nothing()
	}
	out := SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			mapIn := func(t Rational) Rational { return t.Sub(cycle).Mul(d).Add(b).Add(cycle) }
			mapOut := func(t Rational) Rational { return t.Sub(cycle).Sub(b).Div(d).Add(cycle) }
			zoomSpan := s.Span.WithTime(mapIn)
			haps := p.Query(s.WithSpan(zoomSpan))
			result := make([]Hap, len(haps))
			for i, h := range haps {
				result[i] = h.WithSpan(func(t Timespan) Timespan { return t.WithTime(mapOut) })
			}
			return result
		},
	})
	if p.Steps != nil {
		scaled := p.Steps.Mul(d)
		out.Steps = &scaled
	}
	return out
}

// Ply repeats each event n times inside its original span.
func (p Pattern) Ply(n Rational) Pattern {
	out := p.SqueezeBind(func(v any) Pattern {
		return Pure(v).Fast(n)
	})
	if p.Steps != nil {
		scaled := p.Steps.Mul(n)
		out.Steps = &scaled
	}
	return out
}

// Linger selects the [0,t] slice of each cycle and loops it. Negative t
// loops the tail [1+t, 1] instead.
func (p Pattern) Linger(t Rational) Pattern {
	if t.IsZero() {
		return p
	}
	if t.Less(Zero) {
		return p.Zoom(One.Add(t), One).Fast(One.Div(t.Neg()))
	}
	return p.Zoom(Zero, t).Fast(One.Div(t))
}

// Iter shifts p by c/n on cycle c (c the query cycle index), rotating
// through n phases.
func (p Pattern) Iter(n int) Pattern {
	return iterBy(p, n, false)
}

// IterBack is Iter in the opposite direction.
func (p Pattern) IterBack(n int) Pattern {
	return iterBy(p, n, true)
}

func iterBy(p Pattern, n int, back bool) Pattern {
	if n == 0 {
		return p
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			cycleInt := cycle.Num()
			idx := ((cycleInt % int64(n)) + int64(n)) % int64(n)
			shift := NewRational(idx, int64(n))
			if back {
				shift = shift.Neg()
			}
			return p.Early(shift).Query(s)
		},
		Steps: cloneSteps(p.Steps),
	})
}

// RepeatCycles samples cycle k from source cycle floor(k/n).
func (p Pattern) RepeatCycles(n int) Pattern {
	if n <= 1 {
		return p
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			cycleInt := cycle.Num()
			srcCycle := floorDivInt(cycleInt, int64(n))
			offset := cycle.Sub(FromInt(srcCycle))
			return p.Late(offset).Query(s)
		},
		Steps: cloneSteps(p.Steps),
	})
}

func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Chunk splits p into n equal time-slices and applies f to slice (c mod
// n) only, where c is the current cycle index.
func (p Pattern) Chunk(n int, f func(Pattern) Pattern) Pattern {
	return chunkWith(p, n, f, false, true)
}

// ChunkBack walks the slice index backwards each cycle.
func (p Pattern) ChunkBack(n int, f func(Pattern) Pattern) Pattern {
	return chunkWith(p, n, f, true, true)
}

// FastChunk behaves like Chunk but does not RepeatCycles the source
// pattern first.
func (p Pattern) FastChunk(n int, f func(Pattern) Pattern) Pattern {
	return chunkWith(p, n, f, false, false)
}

func chunkWith(p Pattern, n int, f func(Pattern) Pattern, back, repeat bool) Pattern {
	if n <= 0 {
		return p
	}
	source := p
	if repeat {
		source = p.RepeatCycles(n)
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam().Num()
			idx := ((cycle % int64(n)) + int64(n)) % int64(n)
			if back {
				idx = (int64(n) - 1 - idx + int64(n)) % int64(n)
			}
			b := NewRational(idx, int64(n))
			e := NewRational(idx+1, int64(n))
			inSlice := func(h Hap) bool {
				pos := h.Part.Begin.CyclePos()
				return pos.GreaterEqual(b) && pos.Less(e)
			}
			inside := f(source).FilterHaps(inSlice)
			outside := source.FilterHaps(func(h Hap) bool { return !inSlice(h) })
			return Stack(inside, outside).Query(s)
		},
		Steps: cloneSteps(p.Steps),
	})
}

// ChunkInto applies f on slice c mod n using a binary rotating mask
// rather than RepeatCycles: the transformed copy is masked into the
// active slice and the untouched copy masked everywhere else, so events
// are cut at the slice boundary instead of partitioned by onset.
func (p Pattern) ChunkInto(n int, f func(Pattern) Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam().Num()
			idx := ((cycle % int64(n)) + int64(n)) % int64(n)
			b := NewRational(idx, int64(n))
			e := NewRational(idx+1, int64(n))
			on := Pure(true).Compress(b, e)
			off := make([]Pattern, 0, 2)
			if b.Greater(Zero) {
				off = append(off, Pure(true).Compress(Zero, b))
			}
			if e.Less(One) {
				off = append(off, Pure(true).Compress(e, One))
			}
			combined := Stack(f(p).Mask(on), p.Mask(Stack(off...)))
			return combined.Query(s)
		},
		Steps: cloneSteps(p.Steps),
	})
}

// Every applies f on cycles whose index is 0 mod n (alias: FirstOf).
func (p Pattern) Every(n int, f func(Pattern) Pattern) Pattern {
	return p.FirstOf(n, f)
}

// FirstOf applies f when cycle mod n == 0.
func (p Pattern) FirstOf(n int, f func(Pattern) Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return p.When(cycleModPattern(n, 0), f)
}

// LastOf applies f when cycle mod n == n-1.
func (p Pattern) LastOf(n int, f func(Pattern) Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return p.When(cycleModPattern(n, n-1), f)
}

func cycleModPattern(n, target int) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam().Num()
			idx := ((cycle % int64(n)) + int64(n)) % int64(n)
			val := idx == int64(target)
			whole := CycleContaining(s.Span.Begin)
			return []Hap{NewHap(whole, s.Span, val, Context{})}
		},
	}
}

// Off stacks p with a late-shifted, f-transformed copy of itself.
func (p Pattern) Off(t Rational, f func(Pattern) Pattern) Pattern {
	return Stack(p, f(p.Late(t)))
}

// When applies f to p when condPat's value (sampled once per cycle) is
// truthy, else leaves p unchanged.
func (p Pattern) When(condPat Pattern, f func(Pattern) Pattern) Pattern {
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cond := false
			for _, h := range condPat.Query(s) {
				cond = truthy(h.Value)
				break
			}
			if cond {
				return f(p).Query(s)
			}
			return p.Query(s)
		},
	})
}

// Within applies f only to onsets whose cyclePos falls in [a,b],
// stacking the result with the untouched remainder.
func (p Pattern) Within(a, b Rational, f func(Pattern) Pattern) Pattern {
	inRange := func(h Hap) bool {
		pos := h.Part.Begin.CyclePos()
		return pos.GreaterEqual(a) && pos.LessEqual(b)
	}
	inside := f(p).FilterHaps(inRange)
	outside := p.FilterHaps(func(h Hap) bool { return !inRange(h) })
	return Stack(inside, outside)
}

// Inside slows p by n, applies f, then speeds back up by n.
func (p Pattern) Inside(n Rational, f func(Pattern) Pattern) Pattern {
	return f(p.Slow(n)).Fast(n)
}

// Outside is Inside with fast/slow swapped.
func (p Pattern) Outside(n Rational, f func(Pattern) Pattern) Pattern {
	return f(p.Fast(n)).Slow(n)
}

// Ribbon loops `cycles` cycles of p starting at `offset`. The restart
// grid is shifted by the offset too, so cutting an already-ribboned
// pattern at the same place reproduces it rather than rotating the loop.
func (p Pattern) Ribbon(offset, cycles Rational) Pattern {
	return p.Early(offset).Restart(Pure(true).Slow(cycles).Late(offset))
}

// Segment discretizes a continuous pattern by structuring it with n
// evenly-spaced onsets per cycle.
func (p Pattern) Segment(n Rational) Pattern {
	out := p.Struct(Pure(true).Fast(n))
	out.Steps = stepsOrNil(n)
	return out
}
