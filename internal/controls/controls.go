// Package controls holds the canonical control-name table: the engine
// itself is agnostic about what a control means, but callers building
// notation or UI layers need a stable set of short, chainable aliases.
package controls

import "github.com/cbegin/cyclo"

// aliases maps shorthand control names to their canonical long form.
// Unknown names pass through unchanged.
var aliases = map[string]string{
	"n":     "note",
	"s":     "sound",
	"g":     "gain",
	"sp":    "speed",
	"lpf":   "cutoff",
	"hpf":   "hcutoff",
	"leg":   "legato",
	"pan":   "pan",
	"b":     "begin",
	"e":     "end",
	"shape": "shape",
}

// Canonicalize returns a copy of m with every key rewritten to its
// canonical long form via the alias table.
func Canonicalize(m cyclo.ControlMap) cyclo.ControlMap {
	out := make(cyclo.ControlMap, len(m))
	for k, v := range m {
		name := k
		if canon, ok := aliases[k]; ok {
			name = canon
		}
		out[name] = v
	}
	return out
}

// Make builds the tagged record for a named control. A plain value sets
// just the canonical field; a ControlMap carrying a "value" field sets the
// canonical field from it and merges the remaining fields alongside.
func Make(name string, value any) cyclo.ControlMap {
	canon := name
	if c, ok := aliases[name]; ok {
		canon = c
	}
	if m, ok := value.(cyclo.ControlMap); ok {
		if v, ok := m["value"]; ok {
			out := cyclo.ControlMap{canon: v}
			for k, extra := range m {
				if k == "value" {
					continue
				}
				out[k] = extra
			}
			return out
		}
	}
	return cyclo.ControlMap{canon: value}
}

// Apply sets the named control on every event value of p, merging into
// any ControlMap the events already carry and replacing non-record values
// outright.
func Apply(p cyclo.Pattern, name string, value any) cyclo.Pattern {
	record := Make(name, value)
	return p.Fmap(func(v any) any {
		if m, ok := v.(cyclo.ControlMap); ok {
			out := m.Clone()
			for k, cv := range record {
				out[k] = cv
			}
			return out
		}
		return record.Clone()
	})
}

// Chain applies a sequence of control-merging steps to a base ControlMap
// in order, each later step overriding fields the earlier steps set.
func Chain(base cyclo.ControlMap, steps ...cyclo.ControlMap) cyclo.ControlMap {
	out := base.Clone()
	for _, step := range steps {
		canon := Canonicalize(step)
		for k, v := range canon {
			out[k] = v
		}
	}
	return out
}
