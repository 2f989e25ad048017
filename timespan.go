package cyclo

import "fmt"

// Timespan is a half-open interval [Begin, End) over exact rationals.
type Timespan struct {
	Begin Rational
	End   Rational
}

// NewTimespan builds a Timespan. It does not itself enforce Begin <= End;
// transforms that could violate the invariant (e.g. Rev) are responsible
// for restoring it before returning.
func NewTimespan(begin, end Rational) Timespan {
	return Timespan{Begin: begin, End: end}
}

func (t Timespan) String() string {
	return fmt.Sprintf("%s-%s", t.Begin.String(), t.End.String())
}

// Duration returns End - Begin.
func (t Timespan) Duration() Rational { return t.End.Sub(t.Begin) }

// IsZeroWidth reports whether Begin == End.
func (t Timespan) IsZeroWidth() bool { return t.Begin.Equal(t.End) }

// WithTime maps both endpoints through f.
func (t Timespan) WithTime(f func(Rational) Rational) Timespan {
	return Timespan{Begin: f(t.Begin), End: f(t.End)}
}

// WithEitherTime maps Begin and End through two different functions -
// used by transforms (like Rev) whose begin/end mapping isn't the same
// function applied twice.
func (t Timespan) WithEitherTime(fb, fe func(Rational) Rational) Timespan {
	return Timespan{Begin: fb(t.Begin), End: fe(t.End)}
}

// Intersection returns the overlap of two timespans. An empty overlap, or
// an overlap that only touches the non-zero-width end of either span,
// yields (_, false): adjacent spans never intersect.
func (t Timespan) Intersection(o Timespan) (Timespan, bool) {
	begin := RMax(t.Begin, o.Begin)
	end := RMin(t.End, o.End)
	if begin.Greater(end) {
		return Timespan{}, false
	}
	if begin.Equal(end) {
		if begin.Equal(t.End) && t.Begin.Less(t.End) {
			return Timespan{}, false
		}
		if begin.Equal(o.End) && o.Begin.Less(o.End) {
			return Timespan{}, false
		}
	}
	return Timespan{Begin: begin, End: end}, true
}

// CycleArc returns the span restricted to the cycle containing Begin: the
// same duration, relocated so Begin lands at its cyclePos.
func (t Timespan) CycleArc() Timespan {
	pos := t.Begin.CyclePos()
	return Timespan{Begin: pos, End: pos.Add(t.Duration())}
}

// SpanCycles splits the span at every integer boundary strictly inside
// (Begin, End), returning the ordered list of sub-spans. A zero-width span
// returns itself unchanged.
func (t Timespan) SpanCycles() []Timespan {
	if t.Begin.Greater(t.End) {
		return nil
	}
	if t.Begin.Equal(t.End) {
		return []Timespan{t}
	}
	var spans []Timespan
	begin := t.Begin
	end := t.End
	for end.Greater(begin) {
		nextBegin := begin.NextSam()
		if end.Less(nextBegin) {
			spans = append(spans, Timespan{Begin: begin, End: end})
			break
		}
		spans = append(spans, Timespan{Begin: begin, End: nextBegin})
		begin = nextBegin
	}
	return spans
}

// CycleContaining returns the unit cycle [sam, sam+1) containing t.
func CycleContaining(t Rational) Timespan {
	sam := t.Sam()
	return Timespan{Begin: sam, End: sam.Add(One)}
}
