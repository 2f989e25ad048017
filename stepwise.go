package cyclo

// Expand multiplies p's step count by factor without changing what plays:
// the pattern presents the same events but claims a wider share of any
// step-weighted layout (StepCat, Polymeter) it takes part in.
func (p Pattern) Expand(factor Rational) Pattern {
	out := p
	if p.Steps != nil {
		s := p.Steps.Mul(factor)
		out.Steps = &s
	}
	return out
}

// Contract is Expand's inverse.
func (p Pattern) Contract(factor Rational) Pattern {
	if factor.IsZero() {
		return Nothing()
	}
	return p.Expand(One.Div(factor))
}

// Extend repeats p factor times per cycle while also widening its step
// count by factor: Fast(factor) then Expand(factor). PolyJoin uses this to
// align an inner pattern's step grid to the outer structure's step count.
func (p Pattern) Extend(factor Rational) Pattern {
	return p.Fast(factor).Expand(factor)
}

// Pace retimes p so it presents target steps per cycle: Fast(target/steps)
// with Steps set to target. A stepless or zero-step p yields Nothing.
func (p Pattern) Pace(target Rational) Pattern {
	if p.Steps == nil || p.Steps.IsZero() || target.IsZero() {
		return Nothing()
	}
	out := p.Fast(target.Div(*p.Steps))
	steps := target
	out.Steps = &steps
	return out
}

// timeCat compresses one cycle of each pattern into a slice of a single
// cycle proportional to its weight. The weighted building block behind
// StepCat and Arrange.
func timeCat(parts ...TimedPattern) Pattern {
	total := Zero
	for _, part := range parts {
		total = total.Add(part.Cycles)
	}
	if total.IsZero() {
		return Silence()
	}
	arms := make([]Pattern, 0, len(parts))
	cursor := Zero
	for _, part := range parts {
		b := cursor.Div(total)
		cursor = cursor.Add(part.Cycles)
		e := cursor.Div(total)
		if b.Equal(e) {
			continue
		}
		arms = append(arms, part.Pattern.Compress(b, e))
	}
	return Stack(arms...)
}

// StepCat arranges patterns end to end within one cycle, each given a
// share of the cycle proportional to its own Steps (defaulting to 1 for a
// pattern with no step count) - the weighted sibling of FastCat.
func StepCat(patterns ...Pattern) Pattern {
	if len(patterns) == 0 {
		return Silence()
	}
	total := Zero
	parts := make([]TimedPattern, len(patterns))
	for i, p := range patterns {
		w := One
		if p.Steps != nil {
			w = *p.Steps
		}
		total = total.Add(w)
		parts[i] = TimedPattern{Cycles: w, Pattern: p}
	}
	out := timeCat(parts...)
	out.Steps = &total
	return out
}

// StepJoin collapses a pattern-of-patterns by slicing each cycle at the
// outer events' part boundaries and playing, inside each slice, the inner
// patterns active there on their own timelines. The result's step count is
// the duration-weighted sum of the inner step counts over the first
// cycle; inner patterns with no step count share the weighted mean the
// stepped ones contribute.
func StepJoin(pp Pattern) Pattern {
	out := SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycleSpan := CycleContaining(s.Span.Begin)
			outer := pp.Query(s.WithSpan(cycleSpan))
			var haps []Hap
			for _, oh := range outer {
				inner, ok := oh.Value.(Pattern)
				if !ok {
					continue
				}
				slice, ok := oh.Part.Intersection(s.Span)
				if !ok || slice.IsZeroWidth() {
					continue
				}
				for _, ih := range inner.Query(s.WithSpan(slice)) {
					part, ok := ih.Part.Intersection(slice)
					if !ok {
						continue
					}
					haps = append(haps, Hap{
						Whole:   cloneTimespan(ih.Whole),
						Part:    part,
						Value:   ih.Value,
						Context: combineHapContext(oh, ih),
					})
				}
			}
			return haps
		},
	})
	out.Steps = stepJoinSteps(pp)
	return out
}

// stepJoinSteps derives a StepJoin result's step count from the outer
// pattern's first cycle: each outer event contributes its part duration
// times its inner step count; stepless inners adopt the duration-weighted
// mean of the stepped ones.
func stepJoinSteps(pp Pattern) *Rational {
	outer := pp.QueryArc(Zero, One, nil)
	steppedTotal := Zero
	steppedWeight := Zero
	steplessWeight := Zero
	for _, oh := range outer {
		inner, ok := oh.Value.(Pattern)
		if !ok {
			continue
		}
		w := oh.Part.Duration()
		if inner.Steps == nil {
			steplessWeight = steplessWeight.Add(w)
			continue
		}
		steppedTotal = steppedTotal.Add(w.Mul(*inner.Steps))
		steppedWeight = steppedWeight.Add(w)
	}
	if steppedWeight.IsZero() {
		return nil
	}
	mean := steppedTotal.Div(steppedWeight)
	total := steppedTotal.Add(steplessWeight.Mul(mean))
	return stepsOrNil(total)
}

// Polymeter stacks patterns of differing step counts, pacing every arm to
// the lcm of the step counts so their steps line up while each arm wraps
// at its own length.
func Polymeter(patterns ...Pattern) Pattern {
	if len(patterns) == 0 {
		return Silence()
	}
	var target *Rational
	for _, p := range patterns {
		if p.Steps == nil || p.Steps.IsZero() {
			continue
		}
		if target == nil {
			target = cloneSteps(p.Steps)
			continue
		}
		l := target.Lcm(*p.Steps)
		target = &l
	}
	if target == nil {
		return Nothing()
	}
	return Pace(*target, patterns...)
}

// Pace retimes every arm to n steps per cycle and stacks them. Arms
// without a usable step count yield Nothing, dropping out of the stack.
func Pace(n Rational, patterns ...Pattern) Pattern {
	arms := make([]Pattern, len(patterns))
	for i, p := range patterns {
		arms[i] = p.Pace(n)
	}
	out := Stack(arms...)
	steps := n
	out.Steps = &steps
	return out
}

// Take keeps only the first n steps of p (the last |n| steps if n is
// negative), rescaled to fill a full cycle. A stepless p yields Nothing;
// n == 0 yields Nothing; |n| at or past the step count yields the whole
// pattern unchanged.
func (p Pattern) Take(n int) Pattern {
	if p.Steps == nil || p.Steps.IsZero() {
		return Nothing()
	}
	if n == 0 {
		return Nothing()
	}
	total := *p.Steps
	count := FromInt(int64(abs(n)))
	if count.GreaterEqual(total) {
		return p
	}
	frac := count.Div(total)
	var out Pattern
	if n > 0 {
		out = p.Zoom(Zero, frac)
	} else {
		out = p.Zoom(One.Sub(frac), One)
	}
	out.Steps = &count
	return out
}

// Drop removes the first n steps of p (the last |n| steps if n is
// negative), keeping the remainder and rescaling it to fill a full cycle.
// A stepless p yields Nothing; n == 0 keeps p unchanged; |n| at or past
// the step count yields Nothing.
func (p Pattern) Drop(n int) Pattern {
	if p.Steps == nil || p.Steps.IsZero() {
		return Nothing()
	}
	if n == 0 {
		return p
	}
	total := *p.Steps
	count := FromInt(int64(abs(n)))
	if count.GreaterEqual(total) {
		return Nothing()
	}
	frac := count.Div(total)
	remaining := total.Sub(count)
	var out Pattern
	if n > 0 {
		out = p.Zoom(frac, One)
	} else {
		out = p.Zoom(Zero, One.Sub(frac))
	}
	out.Steps = &remaining
	return out
}

// Shrink plays p, then p with the first n steps removed, then the first
// 2n, and so on until nothing is left, the stages laid out as one
// step-weighted sequence. Negative n trims from the end instead. A
// stepless p yields Nothing.
func (p Pattern) Shrink(n int) Pattern {
	if p.Steps == nil || p.Steps.IsZero() || n == 0 {
		return Nothing()
	}
	total := *p.Steps
	var stages []Pattern
	for k := 0; FromInt(int64(k * abs(n))).Less(total); k++ {
		stages = append(stages, p.Drop(k*n))
	}
	return StepCat(stages...)
}

// Grow is Shrink's reverse accumulation: the first n steps, then the
// first 2n, and so on up to the whole of p. Negative n grows from the end.
func (p Pattern) Grow(n int) Pattern {
	if p.Steps == nil || p.Steps.IsZero() || n == 0 {
		return Nothing()
	}
	total := *p.Steps
	var stages []Pattern
	for k := 1; FromInt(int64(k * abs(n))).Less(total); k++ {
		stages = append(stages, p.Take(k*n))
	}
	stages = append(stages, p)
	return StepCat(stages...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Replicate repeats each cycle of p n times in a row while widening its
// step grid to match: RepeatCycles(n), Fast(n), Expand(n).
func (p Pattern) Replicate(n int) Pattern {
	if n <= 0 {
		return Nothing()
	}
	k := FromInt(int64(n))
	return p.RepeatCycles(n).Fast(k).Expand(k)
}

// Zip interleaves arms step by step over one cycle: step i of the result
// is taken from arm i mod n, each arm first paced to the lcm of the step
// counts, which is also the result's step count. Arms without a step
// count are left out of the lcm but keep their slots in the rotation, and
// those slots are silent; a non-integral lcm makes the interleave
// undefined and yields Nothing.
func Zip(patterns ...Pattern) Pattern {
	if len(patterns) == 0 {
		return Silence()
	}
	var target *Rational
	for _, p := range patterns {
		if p.Steps == nil || p.Steps.IsZero() {
			continue
		}
		if target == nil {
			target = cloneSteps(p.Steps)
			continue
		}
		l := target.Lcm(*p.Steps)
		target = &l
	}
	if target == nil || target.Den() != 1 {
		return Nothing()
	}
	slots := target.Num()
	paced := make([]Pattern, len(patterns))
	for i, p := range patterns {
		paced[i] = p.Pace(*target)
	}
	n := int64(len(paced))
	arms := make([]Pattern, 0, slots)
	for i := int64(0); i < slots; i++ {
		arm := paced[i%n]
		b := NewRational(i, slots)
		e := NewRational(i+1, slots)
		arms = append(arms, arm.Zoom(b, e))
	}
	out := FastCat(arms...)
	out.Steps = cloneSteps(target)
	return out
}

// Tour inserts pivot into the others list at progressively earlier
// positions each repetition: repetition 0 plays pivot last, the final
// repetition plays it first. Built as a SlowCat of n+1 FastCats, one per
// insertion point.
func Tour(pivot Pattern, others ...Pattern) Pattern {
	n := len(others)
	if n == 0 {
		return pivot
	}
	arrangements := make([]Pattern, n+1)
	for i := 0; i <= n; i++ {
		arm := make([]Pattern, 0, n+1)
		pos := n - i
		arm = append(arm, others[:pos]...)
		arm = append(arm, pivot)
		arm = append(arm, others[pos:]...)
		arrangements[i] = FastCat(arm...)
	}
	return SlowCat(arrangements...)
}

// StepAlt picks a whole different source pattern each cycle, round robin,
// always sampling the chosen pattern from its own cycle zero - unlike
// SlowCat, which preserves each arm's internal continuity across the
// cycles it isn't playing.
func StepAlt(patterns ...Pattern) Pattern {
	n := int64(len(patterns))
	if n == 0 {
		return Silence()
	}
	out := SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam().Num()
			idx := ((cycle % n) + n) % n
			return patterns[idx].Late(s.Span.Begin.Sam()).Query(s)
		},
	})
	out.Steps = cloneSteps(patterns[0].Steps)
	return out
}
