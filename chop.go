package cyclo

// withBeginEnd returns v as a ControlMap with begin/end set to b/e,
// preserving any other fields v already carries.
func withBeginEnd(v any, b, e float64) any {
	cm, ok := asControlMap(v)
	var out ControlMap
	if ok {
		out = cm.Clone()
	} else {
		out = ControlMap{}
	}
	out["begin"] = b
	out["end"] = e
	return out
}

func sliceBounds(v any) (float64, float64) {
	cm, ok := asControlMap(v)
	b, e := 0.0, 1.0
	if !ok {
		return b, e
	}
	if bv, ok2 := cm["begin"]; ok2 {
		b, _ = parseNumeral(bv)
	}
	if ev, ok2 := cm["end"]; ok2 {
		e, _ = parseNumeral(ev)
	}
	return b, e
}

// Chop cuts each event's sample region into n equal consecutive slices,
// played in order within the event's own span.
func Chop(n int, p Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return p.SqueezeBind(func(v any) Pattern {
		b, e := sliceBounds(v)
		width := (e - b) / float64(n)
		slices := make([]Pattern, n)
		for i := 0; i < n; i++ {
			nb := b + width*float64(i)
			ne := b + width*float64(i+1)
			slices[i] = Pure(withBeginEnd(v, nb, ne))
		}
		return FastCat(slices...)
	})
}

// Striate cuts every event's sample region into n equal slices like Chop,
// but interleaves slice index across the whole cycle: the first repeat of
// the pattern plays slice 0 of every event, the next plays slice 1, and
// so on.
func Striate(n int, p Pattern) Pattern {
	if n <= 0 {
		return p
	}
	slices := make([]Pattern, n)
	for i := 0; i < n; i++ {
		b := float64(i) / float64(n)
		e := float64(i+1) / float64(n)
		slices[i] = p.Fmap(func(v any) any { return withBeginEnd(v, b, e) })
	}
	return FastCat(slices...)
}

// Slice imposes indexPat's structure on p, playing the slice of p named by
// each index event - indexPat's values must be numeral-coercible. The
// slice count is recorded on each value as _slices so Splice can pick it
// up downstream.
func Slice(n int, indexPat, p Pattern) Pattern {
	if n <= 0 {
		return p
	}
	bounds := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		bounds[i] = float64(i) / float64(n)
	}
	return SliceAt(bounds, indexPat, p)
}

// SliceAt is Slice with explicit slice boundaries in [0,1] instead of n
// equal cuts: index i plays [bounds[i], bounds[i+1]).
func SliceAt(bounds []float64, indexPat, p Pattern) Pattern {
	n := len(bounds) - 1
	if n < 1 {
		return p
	}
	return indexPat.InnerBind(func(iv any) Pattern {
		idxF, _ := parseNumeral(iv)
		idx := ((int(idxF) % n) + n) % n
		b := bounds[idx]
		e := bounds[idx+1]
		return p.Fmap(func(v any) any {
			out := withBeginEnd(v, b, e)
			if cm, ok := asControlMap(out); ok {
				cm["_slices"] = n
			}
			return out
		})
	})
}

// Splice is Slice with playback speed set so each slice exactly fills the
// duration of its own event: speed = (cps / n / hapDuration) * originalSpeed,
// unit set to "c" (cycle-relative).
func Splice(n int, indexPat, p Pattern) Pattern {
	base := Slice(n, indexPat, p)
	return Pattern{
		query: func(s State) []Hap {
			cps := s.Cps()
			haps := base.Query(s)
			out := make([]Hap, len(haps))
			for i, h := range haps {
				d := h.WholeOrPart().Duration().Float64()
				out[i] = h.WithValue(func(v any) any {
					cm, ok := asControlMap(v)
					if !ok {
						cm = ControlMap{}
					} else {
						cm = cm.Clone()
					}
					origSpeed := 1.0
					if sv, ok := cm["speed"]; ok {
						origSpeed, _ = parseNumeral(sv)
					}
					speed := origSpeed
					if d > 0 {
						speed = (cps / float64(n) / d) * origSpeed
					}
					cm["speed"] = speed
					cm["unit"] = "c"
					return cm
				})
			}
			return out
		},
		Steps: cloneSteps(base.Steps),
	}
}

// Fit sets playback speed so the sample fits exactly into each event's
// own duration: speed = cps * (end-begin) / hapDuration, unit "c".
func Fit(p Pattern) Pattern {
	return Pattern{
		query: func(s State) []Hap {
			cps := s.Cps()
			haps := p.Query(s)
			out := make([]Hap, len(haps))
			for i, h := range haps {
				d := h.WholeOrPart().Duration().Float64()
				out[i] = h.WithValue(func(v any) any {
					cm, ok := asControlMap(v)
					if !ok {
						cm = ControlMap{}
					} else {
						cm = cm.Clone()
					}
					b, e := sliceBounds(v)
					speed := 1.0
					if d > 0 {
						speed = cps * (e - b) / d
					}
					cm["speed"] = speed
					cm["unit"] = "c"
					return cm
				})
			}
			return out
		},
		Steps: cloneSteps(p.Steps),
	}
}

// LoopAt stretches p to fill n cycles and sets speed = cps/n, unit "c":
// the combinator used to drop a whole sample into a slower loop.
func LoopAt(n Rational, p Pattern) Pattern {
	slowed := p.Slow(n)
	return Pattern{
		query: func(s State) []Hap {
			cps := s.Cps()
			haps := slowed.Query(s)
			out := make([]Hap, len(haps))
			for i, h := range haps {
				out[i] = h.WithValue(func(v any) any {
					cm, ok := asControlMap(v)
					if !ok {
						cm = ControlMap{}
					} else {
						cm = cm.Clone()
					}
					cm["speed"] = cps / n.Float64()
					cm["unit"] = "c"
					return cm
				})
			}
			return out
		},
		Steps: cloneSteps(slowed.Steps),
	}
}

// Bite divides p's cycle into n indexed chunks and plays the chunk named
// by each onset of indexPat, squeezing it into that onset's span.
func Bite(n int, indexPat, p Pattern) Pattern {
	if n <= 0 {
		return p
	}
	return indexPat.SqueezeBind(func(iv any) Pattern {
		idxF, _ := parseNumeral(iv)
		idx := ((int(idxF) % n) + n) % n
		return p.Zoom(NewRational(int64(idx), int64(n)), NewRational(int64(idx+1), int64(n)))
	})
}

// Arp spreads each chord-valued event (a []any of notes) across its own
// span according to the named arpeggio mode.
func Arp(mode string, p Pattern) Pattern {
	return p.SqueezeBind(func(v any) Pattern {
		notes, ok := v.([]any)
		if !ok || len(notes) == 0 {
			return Pure(v)
		}
		ordered := arpOrder(mode, notes)
		parts := make([]Pattern, len(ordered))
		for i, note := range ordered {
			parts[i] = Pure(note)
		}
		return FastCat(parts...)
	})
}

func arpOrder(mode string, notes []any) []any {
	switch mode {
	case "down":
		out := make([]any, len(notes))
		for i, n := range notes {
			out[len(notes)-1-i] = n
		}
		return out
	case "updown":
		out := append([]any(nil), notes...)
		for i := len(notes) - 2; i >= 1; i-- {
			out = append(out, notes[i])
		}
		return out
	case "downup":
		down := make([]any, len(notes))
		for i, n := range notes {
			down[len(notes)-1-i] = n
		}
		out := append([]any(nil), down...)
		for i := len(notes) - 2; i >= 1; i-- {
			out = append(out, down[i])
		}
		return out
	default: // "up"
		return notes
	}
}
