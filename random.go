package cyclo

import (
	"math"
	"sort"

	"github.com/cbegin/cyclo/internal/prng"
)

// Rand is a continuous signal of deterministic pseudo-random floats in
// [0,1), hashed from query time so the same span always samples the same
// values.
func Rand() Pattern {
	return Signal(func(t Rational) any { return prng.TimeToRand(t.Float64()) })
}

// Irand returns a continuous signal of deterministic pseudo-random
// integers in [0,n).
func Irand(n int) Pattern {
	if n <= 0 {
		n = 1
	}
	return Signal(func(t Rational) any {
		r := prng.TimeToRand(t.Float64())
		return int(r * float64(n))
	})
}

// Brand is a continuous signal of deterministic pseudo-random booleans,
// true half the time.
func Brand() Pattern { return BrandBy(0.5) }

// BrandBy is Brand with an explicit probability of true.
func BrandBy(prob float64) Pattern {
	return Signal(func(t Rational) any { return prng.TimeToRand(t.Float64()) < prob })
}

// Perlin is a smoothly interpolated noise signal over cycle time, built by
// smootherstep-interpolating between hashed values at each integer time
// step - the classic 1D value-noise construction.
func Perlin() Pattern {
	return Signal(func(t Rational) any {
		f := t.Float64()
		return perlinAt(f)
	})
}

func perlinAt(f float64) float64 {
	i0 := math.Floor(f)
	i1 := i0 + 1
	frac := f - i0
	v0 := prng.TimeToRand(i0)
	v1 := prng.TimeToRand(i1)
	smooth := frac * frac * frac * (frac*(frac*6-15) + 10)
	return v0 + smooth*(v1-v0)
}

// Berlin is Perlin remapped to [-1,1).
func Berlin() Pattern {
	return Signal(func(t Rational) any { return ToBipolar(perlinAt(t.Float64())) })
}

// Choose picks uniformly among the given values each query, deterministic
// per query time.
func Choose(values ...any) Pattern {
	return ChooseWith(Rand(), values...)
}

// ChooseWith picks among values using rand as the source of randomness
// instead of the default Rand() signal - Choose calls it with Rand(), and
// it is exposed for callers that want a shared random stream.
func ChooseWith(rand Pattern, values ...any) Pattern {
	if len(values) == 0 {
		return Silence()
	}
	return rand.Fmap(func(r any) any {
		rv, ok := r.(float64)
		if !ok {
			return values[0]
		}
		idx := int(rv * float64(len(values)))
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx]
	})
}

// ChooseCycles picks a fixed value for the whole of each cycle rather than
// continuously, by segmenting Choose to one event per cycle.
func ChooseCycles(values ...any) Pattern {
	return Choose(values...).Segment(One)
}

// Wchoose is Choose with relative weights: values[i] is picked with
// probability proportional to weights[i].
func Wchoose(values []any, weights []float64) Pattern {
	if len(values) == 0 || len(weights) != len(values) {
		return Silence()
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return Rand().Fmap(func(r any) any {
		rv := r.(float64) * total
		acc := 0.0
		for i, w := range weights {
			acc += w
			if rv < acc {
				return values[i]
			}
		}
		return values[len(values)-1]
	})
}

// Shuffle randomly permutes n equal-width per-cycle slices of p, picking a
// fresh deterministic permutation every cycle.
func Shuffle(p Pattern, n int) Pattern {
	if n <= 0 {
		return p
	}
	return SplitQueries(Pattern{
		query: func(s State) []Hap {
			cycle := s.Span.Begin.Sam()
			perm := permFor(cycle.Float64(), n)
			return scrambleLike(p, n, perm).Query(s)
		},
		Steps: stepsOrNil(FromInt(int64(n))),
	})
}

// Scramble re-samples n equal-width per-cycle slices of p, each slot
// independently choosing (with repetition allowed) a random source slot -
// unlike Shuffle, which produces a permutation with no repeats.
func Scramble(p Pattern, n int) Pattern {
	if n <= 0 {
		return p
	}
	slot := Irand(n).Segment(FromInt(int64(n)))
	return slot.SqueezeBind(func(v any) Pattern {
		idx := v.(int)
		return p.Zoom(NewRational(int64(idx), int64(n)), NewRational(int64(idx+1), int64(n)))
	})
}

func scrambleLike(p Pattern, n int, perm []int) Pattern {
	arms := make([]Pattern, n)
	for slot, src := range perm {
		arms[slot] = p.Zoom(NewRational(int64(src), int64(n)), NewRational(int64(src+1), int64(n)))
	}
	return FastCat(arms...)
}

// permFor derives a permutation of [0,n) by sorting the n hashed draws
// taken at the middle of the given cycle: slot i plays the source slice
// whose draw ranks i-th.
func permFor(cycle float64, n int) []int {
	rands := prng.TimeToRands(cycle+0.5, n)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return rands[perm[a]] < rands[perm[b]] })
	return perm
}

// DegradeBy randomly drops events with probability prob, deterministic per
// event onset time.
func (p Pattern) DegradeBy(prob float64) Pattern {
	return p.degradeWith(prob, false)
}

// UndegradeBy keeps only the events whose complemented draw 1-r clears
// prob, i.e. those with r <= 1-prob.
func (p Pattern) UndegradeBy(prob float64) Pattern {
	return p.degradeWith(prob, true)
}

func (p Pattern) degradeWith(prob float64, invert bool) Pattern {
	fnPat := p.Fmap(func(v any) any {
		val := v
		return func(r any) any {
			rv, _ := r.(float64)
			keep := rv >= prob
			if invert {
				keep = 1-rv >= prob
			}
			if keep {
				return val
			}
			return undefinedValue
		}
	})
	return fnPat.AppLeft(Rand()).FilterValues(func(v any) bool { return !isUndefined(v) })
}

// SometimesBy applies f to a randomly chosen fraction (prob) of events,
// leaving the rest untouched: stack(degradeBy(p), f(undegradeBy(1-p))).
func (p Pattern) SometimesBy(prob float64, f func(Pattern) Pattern) Pattern {
	return Stack(p.DegradeBy(prob), f(p.UndegradeBy(1-prob)))
}

// Sometimes applies f to roughly half of p's events.
func (p Pattern) Sometimes(f func(Pattern) Pattern) Pattern { return p.SometimesBy(0.5, f) }

// Often applies f to roughly three quarters of p's events.
func (p Pattern) Often(f func(Pattern) Pattern) Pattern { return p.SometimesBy(0.75, f) }

// Rarely applies f to roughly a quarter of p's events.
func (p Pattern) Rarely(f func(Pattern) Pattern) Pattern { return p.SometimesBy(0.25, f) }

// Always applies f to every event (the prob=1 degenerate case).
func (p Pattern) Always(f func(Pattern) Pattern) Pattern { return f(p) }

// Never never applies f (the prob=0 degenerate case).
func (p Pattern) Never(func(Pattern) Pattern) Pattern { return p }

// AlmostAlways applies f to most (seven-eighths) of p's events.
func (p Pattern) AlmostAlways(f func(Pattern) Pattern) Pattern { return p.SometimesBy(0.875, f) }

// AlmostNever applies f to few (one-eighth) of p's events.
func (p Pattern) AlmostNever(f func(Pattern) Pattern) Pattern { return p.SometimesBy(0.125, f) }
