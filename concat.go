package cyclo

// Stack plays every pattern simultaneously, each keeping its own cycle.
// Steps is the lcm of all arms that track steps.
func Stack(patterns ...Pattern) Pattern {
	arms := append([]Pattern(nil), patterns...)
	out := Pattern{
		query: func(s State) []Hap {
			var haps []Hap
			for _, a := range arms {
				haps = append(haps, a.Query(s)...)
			}
			return haps
		},
	}
	var steps *Rational
	for _, a := range arms {
		if a.Steps == nil {
			continue
		}
		if steps == nil {
			steps = cloneSteps(a.Steps)
			continue
		}
		l := steps.Lcm(*a.Steps)
		steps = &l
	}
	out.Steps = steps
	return out
}

// SlowCat concatenates patterns end to end, one per cycle, looping through
// the list. The per-arm offset subtraction keeps each arm's
// internal timeline continuous across the cycles where it isn't playing,
// so resuming an arm picks up where it left off rather than restarting.
func SlowCat(patterns ...Pattern) Pattern {
	arms := append([]Pattern(nil), patterns...)
	n := int64(len(arms))
	if n == 0 {
		return Silence()
	}
	out := SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			cycleInt := cycle.Num()
			idx := ((cycleInt % n) + n) % n
			chosen := arms[idx]
			offset := cycle.Sub(FromInt(floorDivInt(cycleInt, n)))
			return chosen.Late(offset).Query(s)
		},
	})
	var steps *Rational
	for _, a := range arms {
		if a.Steps == nil {
			continue
		}
		if steps == nil {
			steps = cloneSteps(a.Steps)
			continue
		}
		l := steps.Lcm(*a.Steps)
		steps = &l
	}
	out.Steps = steps
	return out
}

// FastCat concatenates patterns within a single cycle: SlowCat sped up by
// the arm count.
func FastCat(patterns ...Pattern) Pattern {
	n := int64(len(patterns))
	if n == 0 {
		return Silence()
	}
	out := SlowCat(patterns...).Fast(NewRational(n, 1))
	steps := NewRational(n, 1)
	out.Steps = &steps
	return out
}

// TimedPattern pairs a pattern with the number of cycles it should occupy
// inside an Arrange timeline.
type TimedPattern struct {
	Cycles  Rational
	Pattern Pattern
}

// Arrange lays out patterns end to end, each playing its own cycles for
// its own Cycles duration, the whole timeline repeating after the total.
func Arrange(parts ...TimedPattern) Pattern {
	total := Zero
	sections := make([]TimedPattern, len(parts))
	for i, part := range parts {
		total = total.Add(part.Cycles)
		sections[i] = TimedPattern{Cycles: part.Cycles, Pattern: part.Pattern.Fast(part.Cycles)}
	}
	if total.IsZero() {
		return Silence()
	}
	return timeCat(sections...).Slow(total)
}

// padGap returns n minus the Steps of p (as a Gap), or Gap(Zero) if p has
// no step count or is already at least n steps wide.
func padGap(p Pattern, n Rational) Pattern {
	if p.Steps == nil {
		return Gap(Zero)
	}
	diff := n.Sub(*p.Steps)
	if diff.LessEqual(Zero) {
		return Gap(Zero)
	}
	return Gap(diff)
}

func maxSteps(patterns []Pattern) Rational {
	max := Zero
	for _, p := range patterns {
		if p.Steps != nil && p.Steps.Greater(max) {
			max = *p.Steps
		}
	}
	return max
}

// StackLeft stacks patterns of differing step counts, left-aligning each
// arm within the widest arm's step count by padding its right edge with a
// silent gap.
func StackLeft(patterns ...Pattern) Pattern {
	n := maxSteps(patterns)
	padded := make([]Pattern, len(patterns))
	for i, p := range patterns {
		padded[i] = StepCat(p, padGap(p, n))
	}
	return Stack(padded...)
}

// StackRight right-aligns each arm, padding its left edge instead.
func StackRight(patterns ...Pattern) Pattern {
	n := maxSteps(patterns)
	padded := make([]Pattern, len(patterns))
	for i, p := range patterns {
		padded[i] = StepCat(padGap(p, n), p)
	}
	return Stack(padded...)
}

// StackCentre centres each arm within the widest arm's step count, padding
// both edges as evenly as the step counts allow.
func StackCentre(patterns ...Pattern) Pattern {
	n := maxSteps(patterns)
	padded := make([]Pattern, len(patterns))
	for i, p := range patterns {
		if p.Steps == nil {
			padded[i] = p
			continue
		}
		diff := n.Sub(*p.Steps)
		if diff.LessEqual(Zero) {
			padded[i] = p
			continue
		}
		half := diff.Div(NewRational(2, 1))
		padded[i] = StepCat(Gap(half), p, Gap(diff.Sub(half)))
	}
	return Stack(padded...)
}

// StackBy picks the alignment per cycle from by's value: "left", "right"
// or "centre" select the matching aligned stack, anything else falls back
// to a plain Stack.
func StackBy(by Pattern, patterns ...Pattern) Pattern {
	aligned := map[string]Pattern{
		"left":   StackLeft(patterns...),
		"right":  StackRight(patterns...),
		"centre": StackCentre(patterns...),
	}
	plain := Stack(patterns...)
	out := SplitQueries(Pattern{
		query: func(s State) []Hap {
			mode := ""
			for _, h := range by.Query(s) {
				mode, _ = h.Value.(string)
				break
			}
			if chosen, ok := aligned[mode]; ok {
				return chosen.Query(s)
			}
			return plain.Query(s)
		},
	})
	out.Steps = cloneSteps(plain.Steps)
	return out
}

// SeqPLoop is SlowCat restricted to a finite window of cycles [from, to),
// looping only that sub-range - used for bounded rehearsal loops over a
// longer arrangement.
func SeqPLoop(from, to int64, patterns ...Pattern) Pattern {
	if to <= from {
		return Silence()
	}
	full := SlowCat(patterns...)
	span := to - from
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam().Num()
			rel := ((cycle-from)%span + span) % span
			offset := FromInt(cycle - (from + rel))
			return full.Late(offset).Query(s)
		},
		Steps: cloneSteps(full.Steps),
	})
}
