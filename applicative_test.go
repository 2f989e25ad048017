package cyclo

import "testing"

// Invariant 10: pure(identity).appBoth(p) == p.
func TestAppBothIdentity(t *testing.T) {
	identity := func(v any) any { return v }
	p := FastCat(Pure("a"), Pure("b"), Pure("c"))
	lhs := Pure(identity).AppBoth(p)
	want := p.QueryArc(Zero, One, nil)
	got := lhs.QueryArc(Zero, One, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAppLeftTakesStructureFromLeft(t *testing.T) {
	addOne := func(v any) any { return v.(int) + 1 }
	left := FastCat(Pure(addOne), Pure(addOne), Pure(addOne))
	right := Pure(10)
	p := left.AppLeft(right)
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3 (structure from left)", len(haps))
	}
	for _, h := range haps {
		if h.Value.(int) != 11 {
			t.Errorf("value = %v, want 11", h.Value)
		}
	}
}

func TestAppRightTakesStructureFromRight(t *testing.T) {
	addOne := func(v any) any { return v.(int) + 1 }
	left := Pure(addOne)
	right := FastCat(Pure(10), Pure(20), Pure(30))
	p := left.AppRight(right)
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3 (structure from right)", len(haps))
	}
}

func TestFmapPreservesSteps(t *testing.T) {
	p := FastCat(Pure(1), Pure(2)).Fmap(func(v any) any { return v.(int) * 10 })
	if p.Steps == nil || !p.Steps.Equal(FromInt(2)) {
		t.Errorf("Fmap should preserve Steps, got %v", p.Steps)
	}
}
