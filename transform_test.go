package cyclo

import "testing"

func equalSpan(a, b Timespan) bool {
	return a.Begin.Equal(b.Begin) && a.End.Equal(b.End)
}

// pure(1).fast(2) over one cycle gives two events with wholes [0,1/2)
// and [1/2,1).
func TestFastSplitsEvents(t *testing.T) {
	p := Pure(1).Fast(FromInt(2))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 2 {
		t.Fatalf("got %d haps, want 2", len(haps))
	}
	want := []Timespan{
		NewTimespan(Zero, NewRational(1, 2)),
		NewTimespan(NewRational(1, 2), One),
	}
	for i, h := range haps {
		if !equalSpan(*h.Whole, want[i]) {
			t.Errorf("hap %d whole = %v, want %v", i, *h.Whole, want[i])
		}
		if h.Value.(int) != 1 {
			t.Errorf("hap %d value = %v, want 1", i, h.Value)
		}
	}
}

// Invariant 4: fast/slow are inverses.
func TestFastSlowInverse(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"))
	k := NewRational(3, 2)
	roundtrip := p.Fast(k).Slow(k)
	want := sortHapsByPart(p.QueryArc(Zero, FromInt(4), nil))
	got := sortHapsByPart(roundtrip.QueryArc(Zero, FromInt(4), nil))
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Fast(a)∘Fast(b) == Fast(a*b).
func TestFastComposes(t *testing.T) {
	p := Pure("x")
	a, b := FromInt(2), FromInt(3)
	composed := p.Fast(a).Fast(b)
	direct := p.Fast(a.Mul(b))
	wantHaps := direct.QueryArc(Zero, One, nil)
	gotHaps := composed.QueryArc(Zero, One, nil)
	if len(gotHaps) != len(wantHaps) {
		t.Fatalf("got %d haps, want %d", len(gotHaps), len(wantHaps))
	}
}

func TestFastZeroIsSilence(t *testing.T) {
	p := Pure("x").Fast(Zero)
	if haps := p.QueryArc(Zero, One, nil); len(haps) != 0 {
		t.Errorf("fast(0) should be silent, got %v", haps)
	}
}

// Invariant 5: early/late are inverses.
func TestEarlyLateInverse(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"))
	o := NewRational(1, 3)
	roundtrip := p.Early(o).Late(o)
	want := sortHapsByPart(p.QueryArc(Zero, FromInt(2), nil))
	got := sortHapsByPart(roundtrip.QueryArc(Zero, FromInt(2), nil))
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Scenario 4: rev reverses fastcat (involution is TestRevInvolution).
func TestRevScenario(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b")).Rev()
	haps := sortHapsByPart(p.QueryArc(Zero, One, nil))
	if len(haps) != 2 {
		t.Fatalf("got %d haps, want 2", len(haps))
	}
	if haps[0].Value.(string) != "b" || haps[1].Value.(string) != "a" {
		t.Errorf("rev order = %v,%v want b,a", haps[0].Value, haps[1].Value)
	}
	wantFirst := NewTimespan(Zero, NewRational(1, 2))
	wantSecond := NewTimespan(NewRational(1, 2), One)
	if !equalSpan(*haps[0].Whole, wantFirst) || !equalSpan(*haps[1].Whole, wantSecond) {
		t.Errorf("rev wholes = %v,%v", *haps[0].Whole, *haps[1].Whole)
	}
}

func TestRevInvolution(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"))
	twice := p.Rev().Rev()
	want := p.QueryArc(Zero, FromInt(3), nil)
	got := twice.QueryArc(Zero, FromInt(3), nil)
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Scenario 5: ply(3) produces three equal-duration repeats.
func TestPlyRepeatsEvent(t *testing.T) {
	p := Pure(1).Ply(FromInt(3))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3", len(haps))
	}
	third := NewRational(1, 3)
	for i, h := range haps {
		if !h.Part.Duration().Equal(third) {
			t.Errorf("hap %d duration = %s, want 1/3", i, h.Part.Duration())
		}
		if h.Value.(int) != 1 {
			t.Errorf("hap %d value = %v, want 1", i, h.Value)
		}
	}
}

func TestCompressDegenerateIsSilence(t *testing.T) {
	p := Pure("x").Compress(NewRational(3, 4), NewRational(1, 4))
	if haps := p.QueryArc(Zero, One, nil); len(haps) != 0 {
		t.Errorf("degenerate compress should be silent, got %v", haps)
	}
}

func TestCompressPlacesPatternInWindow(t *testing.T) {
	p := Pure("x").Compress(NewRational(1, 4), NewRational(3, 4))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 1 {
		t.Fatalf("got %d haps, want 1", len(haps))
	}
	want := NewTimespan(NewRational(1, 4), NewRational(3, 4))
	if !equalSpan(*haps[0].Whole, want) {
		t.Errorf("whole = %v, want %v", *haps[0].Whole, want)
	}
}

// Scenario 8: zoom scales Steps by (e-b).
func TestZoomScalesSteps(t *testing.T) {
	p := Pure(1)
	zoomed := p.Zoom(NewRational(1, 4), NewRational(3, 4))
	if p.Steps == nil || zoomed.Steps == nil {
		t.Fatal("expected both Steps to be defined")
	}
	want := p.Steps.Mul(NewRational(1, 2))
	if !zoomed.Steps.Equal(want) {
		t.Errorf("zoomed.Steps = %s, want %s", zoomed.Steps, want)
	}
}

func TestZoomDegenerateIsNothing(t *testing.T) {
	p := Pure("x").Zoom(NewRational(1, 2), NewRational(1, 2))
	if haps := p.QueryArc(Zero, One, nil); len(haps) != 0 {
		t.Errorf("degenerate zoom should yield no events, got %v", haps)
	}
}

func TestEveryAppliesOnMatchingCycle(t *testing.T) {
	p := Pure("a").Every(3, func(q Pattern) Pattern { return q.Fmap(func(any) any { return "b" }) })
	for c := int64(0); c < 6; c++ {
		haps := p.QueryArc(FromInt(c), FromInt(c+1), nil)
		if len(haps) != 1 {
			t.Fatalf("cycle %d: got %d haps, want 1", c, len(haps))
		}
		want := "a"
		if c%3 == 0 {
			want = "b"
		}
		if haps[0].Value.(string) != want {
			t.Errorf("cycle %d value = %v, want %v", c, haps[0].Value, want)
		}
	}
}

func TestRibbonIdempotent(t *testing.T) {
	p := FastCat(Pure("a"), Pure("b"), Pure("c"), Pure("d"))
	once := p.Ribbon(NewRational(1, 2), One)
	twice := once.Ribbon(NewRational(1, 2), One)
	want := sortHapsByPart(once.QueryArc(Zero, FromInt(3), nil))
	got := sortHapsByPart(twice.QueryArc(Zero, FromInt(3), nil))
	if len(got) != len(want) {
		t.Fatalf("got %d haps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Value != want[i].Value || !equalSpan(got[i].Part, want[i].Part) {
			t.Errorf("hap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
