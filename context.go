package cyclo

// SourceLocation tags a span of source text an event was derived from -
// carried purely for host-side highlighting; the engine never reads it.
type SourceLocation struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// TriggerClock is supplied by the host (never read from any system clock
// by the engine itself) when it fires an event's OnTrigger callbacks.
type TriggerClock struct {
	CurrentTime float64
	Cps         float64
	TargetTime  float64
}

// TriggerFunc is a host-invoked callback attached to an event's lifetime.
type TriggerFunc func(TriggerClock)

// Context is the free-form bag carried by every Hap. It accumulates
// immutably: combining two contexts concatenates locations and tags and
// chains OnTrigger callbacks so earlier-added triggers fire before later
// ones.
type Context struct {
	Locations []SourceLocation
	Tags      []string
	OnTrigger []TriggerFunc
	Color     string
	Extra     map[string]any
}

// WithTag returns a copy of c with tag appended.
func (c Context) WithTag(tag string) Context {
	out := c
	out.Tags = append(append([]string{}, c.Tags...), tag)
	return out
}

// WithLocation returns a copy of c with loc appended.
func (c Context) WithLocation(loc SourceLocation) Context {
	out := c
	out.Locations = append(append([]SourceLocation{}, c.Locations...), loc)
	return out
}

// WithColor returns a copy of c with Color set.
func (c Context) WithColor(color string) Context {
	out := c
	out.Color = color
	return out
}

// WithExtra returns a copy of c with key=value merged into Extra.
func (c Context) WithExtra(key string, value any) Context {
	out := c
	m := make(map[string]any, len(c.Extra)+1)
	for k, v := range c.Extra {
		m[k] = v
	}
	m[key] = value
	out.Extra = m
	return out
}

// CombineContext appends-and-chains two contexts. Triggers in a fire
// before triggers in b.
func CombineContext(a, b Context) Context {
	out := Context{
		Locations: append(append([]SourceLocation{}, a.Locations...), b.Locations...),
		Tags:      append(append([]string{}, a.Tags...), b.Tags...),
		OnTrigger: append(append([]TriggerFunc{}, a.OnTrigger...), b.OnTrigger...),
	}
	out.Color = a.Color
	if b.Color != "" {
		out.Color = b.Color
	}
	if len(a.Extra) > 0 || len(b.Extra) > 0 {
		out.Extra = make(map[string]any, len(a.Extra)+len(b.Extra))
		for k, v := range a.Extra {
			out.Extra[k] = v
		}
		for k, v := range b.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Fire invokes every OnTrigger callback in order with the given clock.
func (c Context) Fire(clock TriggerClock) {
	for _, fn := range c.OnTrigger {
		fn(clock)
	}
}
