package cyclo

import (
	"testing"

	"github.com/cbegin/cyclo/internal/prng"
)

// Scenario 9: rand.queryArc(0,1) returns one continuous event whose value
// agrees with timeToRand(0).
func TestRandScenario(t *testing.T) {
	haps := Rand().QueryArc(Zero, One, nil)
	if len(haps) != 1 {
		t.Fatalf("got %d haps, want 1", len(haps))
	}
	if haps[0].Whole != nil {
		t.Error("rand events must be continuous (nil whole)")
	}
	v := haps[0].Value.(float64)
	want := prng.TimeToRand(0)
	if v != want {
		t.Errorf("rand value = %v, want %v", v, want)
	}
	if v < 0 || v >= 1 {
		t.Errorf("rand value %v out of [0,1)", v)
	}
}

// Invariant 11: rand is deterministic given the same begin time.
func TestRandDeterministic(t *testing.T) {
	a := Rand().QueryArc(NewRational(1, 3), NewRational(2, 3), nil)
	b := Rand().QueryArc(NewRational(1, 3), NewRational(2, 3), nil)
	if a[0].Value != b[0].Value {
		t.Errorf("rand not deterministic: %v vs %v", a[0].Value, b[0].Value)
	}
}

// Scenario 10: degradeBy(1) drops everything, degradeBy(0) keeps it all.
func TestDegradeByExtremes(t *testing.T) {
	all := Pure("x").DegradeBy(1)
	if haps := all.QueryArc(Zero, One, nil); len(haps) != 0 {
		t.Errorf("degradeBy(1) should drop everything, got %v", haps)
	}
	none := Pure("x").DegradeBy(0)
	haps := none.QueryArc(Zero, One, nil)
	if len(haps) != 1 || haps[0].Value.(string) != "x" {
		t.Errorf("degradeBy(0) should keep the event, got %v", haps)
	}
}

func TestUndegradeByIsComplement(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"), Pure("d"), Pure("e"), Pure("f"), Pure("g"), Pure("h"))
	for _, prob := range []float64{0.25, 0.5, 0.75} {
		kept := p.DegradeBy(prob).QueryArc(Zero, One, nil)
		dropped := p.UndegradeBy(1-prob).QueryArc(Zero, One, nil)
		if len(kept)+len(dropped) != 8 {
			t.Errorf("prob %v: degradeBy(p)+undegradeBy(1-p) should partition all 8 events, got %d+%d",
				prob, len(kept), len(dropped))
		}
	}
}

func TestSometimesByTransformsDegradedComplement(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"), Pure("d"), Pure("e"), Pure("f"), Pure("g"), Pure("h"))
	prob := 0.75
	transformed := map[string]bool{}
	for _, h := range p.UndegradeBy(1-prob).QueryArc(Zero, One, nil) {
		transformed[h.Value.(string)] = true
	}
	out := p.SometimesBy(prob, func(q Pattern) Pattern {
		return q.Fmap(func(v any) any { return v.(string) + "!" })
	})
	haps := out.QueryArc(Zero, One, nil)
	if len(haps) != 8 {
		t.Fatalf("sometimesBy should keep all 8 events, got %d", len(haps))
	}
	for _, h := range haps {
		name := h.Value.(string)
		bang := false
		if name[len(name)-1] == '!' {
			name = name[:len(name)-1]
			bang = true
		}
		if bang != transformed[name] {
			t.Errorf("event %q transformed=%v, want %v (undegradeBy(1-p) selects the transformed set)",
				name, bang, transformed[name])
		}
	}
}

func TestIrandBounds(t *testing.T) {
	p := Irand(4)
	for c := int64(0); c < 20; c++ {
		haps := p.QueryArc(FromInt(c), FromInt(c+1), nil)
		v := haps[0].Value.(int)
		if v < 0 || v >= 4 {
			t.Fatalf("irand(4) = %d, out of range", v)
		}
	}
}

func TestChooseAlwaysFromValues(t *testing.T) {
	vals := []any{"a", "b", "c"}
	p := Choose(vals...)
	for c := int64(0); c < 10; c++ {
		haps := p.QueryArc(FromInt(c), FromInt(c+1), nil)
		v := haps[0].Value.(string)
		found := false
		for _, want := range vals {
			if want == v {
				found = true
			}
		}
		if !found {
			t.Errorf("choose produced %v, not in %v", v, vals)
		}
	}
}

func TestShuffleIsAPermutation(t *testing.T) {
	p := Shuffle(FastCat(Pure(0), Pure(1), Pure(2), Pure(3)), 4)
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 4 {
		t.Fatalf("got %d haps, want 4", len(haps))
	}
	seen := map[int]bool{}
	for _, h := range haps {
		seen[h.Value.(int)] = true
	}
	if len(seen) != 4 {
		t.Errorf("shuffle did not produce a permutation: %v", haps)
	}
}
