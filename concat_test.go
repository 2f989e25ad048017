package cyclo

import "testing"

// Scenario 1: fastcat("a","b","c").queryArc(0,1).
func TestFastCatScenario(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3", len(haps))
	}
	wantVals := []string{"a", "b", "c"}
	wantSpans := []Timespan{
		NewTimespan(Zero, NewRational(1, 3)),
		NewTimespan(NewRational(1, 3), NewRational(2, 3)),
		NewTimespan(NewRational(2, 3), One),
	}
	for i, h := range haps {
		if h.Value.(string) != wantVals[i] {
			t.Errorf("hap %d value = %v, want %v", i, h.Value, wantVals[i])
		}
		if !equalSpan(h.Part, wantSpans[i]) || !equalSpan(*h.Whole, wantSpans[i]) {
			t.Errorf("hap %d span = %v, want %v", i, h.Part, wantSpans[i])
		}
	}
	if p.Steps == nil || !p.Steps.Equal(FromInt(3)) {
		t.Errorf("fastcat Steps = %v, want 3", p.Steps)
	}
}

// Scenario 3: stack preserves arm order and gives each arm a full cycle.
func TestStackScenario(t *testing.T) {
	p := Stack(Pure("x"), Pure("y"))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 2 {
		t.Fatalf("got %d haps, want 2", len(haps))
	}
	if haps[0].Value.(string) != "x" || haps[1].Value.(string) != "y" {
		t.Errorf("stack order = %v,%v want x,y", haps[0].Value, haps[1].Value)
	}
	for _, h := range haps {
		if !equalSpan(*h.Whole, NewTimespan(Zero, One)) {
			t.Errorf("whole = %v, want [0,1)", *h.Whole)
		}
	}
}

// Invariant 7: stack commutes with fast.
func TestStackCommutesWithFast(t *testing.T) {
	a, b := Pure("x"), Pure("y")
	k := FromInt(2)
	lhs := Stack(a, b).Fast(k)
	rhs := Stack(a.Fast(k), b.Fast(k))
	want := sortHapsByPart(lhs.QueryArc(Zero, One, nil))
	got := sortHapsByPart(rhs.QueryArc(Zero, One, nil))
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Scenario 4 reprised via concat: fastcat("a","b").rev().
func TestFastCatRevScenario(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b")).Rev()
	haps := sortHapsByPart(p.QueryArc(Zero, One, nil))
	if len(haps) != 2 || haps[0].Value.(string) != "b" || haps[1].Value.(string) != "a" {
		t.Fatalf("got %v, want [b a]", haps)
	}
}

// Invariant 8: fastcat == slowcat + fast(n), with Steps == n.
func TestFastCatEqualsSlowCatFast(t *testing.T) {
	a, b, c := Pure("a"), Pure("b"), Pure("c")
	fastcat := FastCat(a, b, c)
	manual := SlowCat(a, b, c).Fast(FromInt(3))
	want := sortHapsByPart(manual.QueryArc(Zero, FromInt(2), nil))
	got := sortHapsByPart(fastcat.QueryArc(Zero, FromInt(2), nil))
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if fastcat.Steps == nil || !fastcat.Steps.Equal(FromInt(3)) {
		t.Errorf("fastcat.Steps = %v, want 3", fastcat.Steps)
	}
}

func TestSlowCatRoundRobinsWithContinuity(t *testing.T) {
	p := SlowCat(Pure("a"), Pure("b"), Pure("c"))
	for c := int64(0); c < 6; c++ {
		haps := p.QueryArc(FromInt(c), FromInt(c+1), nil)
		if len(haps) != 1 {
			t.Fatalf("cycle %d: got %d haps, want 1", c, len(haps))
		}
		want := []string{"a", "b", "c"}[c%3]
		if haps[0].Value.(string) != want {
			t.Errorf("cycle %d = %v, want %v", c, haps[0].Value, want)
		}
	}
}

func TestArrangeAllocatesProportionalCycles(t *testing.T) {
	p := Arrange(
		TimedPattern{Cycles: FromInt(2), Pattern: Pure("a")},
		TimedPattern{Cycles: FromInt(1), Pattern: Pure("b")},
	)
	haps := p.QueryArc(Zero, One, nil)
	var vals []string
	for _, h := range haps {
		vals = append(vals, h.Value.(string))
	}
	if len(vals) == 0 || vals[0] != "a" {
		t.Errorf("expected arrange to start with a, got %v", vals)
	}
}

func TestStackLeftPadsWithGap(t *testing.T) {
	short := FastCat(Pure("a"))
	long := FastCat(Pure("x"), Pure("y"), Pure("z"))
	p := StackLeft(short, long)
	haps := p.QueryArc(Zero, One, nil)
	count := 0
	for _, h := range haps {
		if h.Value == "a" {
			count++
			if !equalSpan(h.Part, NewTimespan(Zero, NewRational(1, 3))) {
				t.Errorf("left-aligned 'a' part = %v, want [0,1/3)", h.Part)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one 'a' event, got %d", count)
	}
}
