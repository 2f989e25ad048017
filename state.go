package cyclo

// State is the query context threaded through every Pattern.Query call: the
// span being asked about, plus whatever named controls the host wants
// visible to signal-valued patterns (e.g. "cps").
type State struct {
	Span     Timespan
	Controls map[string]any
}

// NewState builds a State over [begin,end) with no controls set.
func NewState(begin, end Rational) State {
	return State{Span: Timespan{Begin: begin, End: end}}
}

// WithSpan returns a copy of s with Span replaced.
func (s State) WithSpan(span Timespan) State {
	out := s
	out.Span = span
	return out
}

// WithSpanTime maps the current span's endpoints through f.
func (s State) WithSpanTime(f func(Rational) Rational) State {
	return s.WithSpan(s.Span.WithTime(f))
}

// WithControl returns a copy of s with key=value merged into Controls.
func (s State) WithControl(key string, value any) State {
	out := s
	m := make(map[string]any, len(s.Controls)+1)
	for k, v := range s.Controls {
		m[k] = v
	}
	m[key] = value
	out.Controls = m
	return out
}

// Control looks up a named control, returning (nil, false) if unset.
func (s State) Control(key string) (any, bool) {
	v, ok := s.Controls[key]
	return v, ok
}

// Cps reads the "cps" (cycles-per-second) control, defaulting to 1.0.
// Only Splice, Fit and LoopAt consult it.
func (s State) Cps() float64 {
	if v, ok := s.Control("cps"); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 1.0
}
