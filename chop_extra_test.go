package cyclo

import "testing"

func TestSpliceSetsCycleRelativeSpeed(t *testing.T) {
	indexPat := FastCat(Pure(0), Pure(1))
	p := Splice(2, indexPat, Pure(ControlMap{"s": "bd"}))
	haps := p.QueryArc(Zero, One, map[string]any{"cps": 1.0})
	if len(haps) != 2 {
		t.Fatalf("got %d haps, want 2", len(haps))
	}
	for _, h := range haps {
		cm := h.Value.(ControlMap)
		if cm["unit"] != "c" {
			t.Errorf("splice should tag unit=c, got %v", cm["unit"])
		}
		if _, ok := cm["speed"]; !ok {
			t.Errorf("splice should set a speed field")
		}
	}
}

func TestFitSetsSpeedFromEventDuration(t *testing.T) {
	p := Fit(Pure(ControlMap{"s": "bd"}))
	haps := p.QueryArc(Zero, One, map[string]any{"cps": 1.0})
	if len(haps) != 1 {
		t.Fatalf("got %d haps, want 1", len(haps))
	}
	cm := haps[0].Value.(ControlMap)
	speed, _ := parseNumeral(cm["speed"])
	if speed != 1 {
		t.Errorf("fit over a whole-cycle event with default bounds should yield speed=1, got %v", speed)
	}
}

func TestLoopAtStretchesAndSetsSpeed(t *testing.T) {
	p := LoopAt(NewRational(2, 1), Pure(ControlMap{"s": "bd"}))
	haps := p.QueryArc(Zero, NewRational(2, 1), map[string]any{"cps": 1.0})
	if len(haps) != 1 {
		t.Fatalf("loopAt(2) over 2 cycles should yield 1 stretched event, got %d", len(haps))
	}
	cm := haps[0].Value.(ControlMap)
	speed, _ := parseNumeral(cm["speed"])
	if speed != 0.5 {
		t.Errorf("loopAt(2) at cps=1 should set speed=0.5, got %v", speed)
	}
}

func TestBiteSqueezesChunksIntoIndexSpans(t *testing.T) {
	source := FastCat(Pure("a"), Pure("b"), Pure("c"), Pure("d"))
	p := Bite(4, FastCat(Pure(2), Pure(0)), source)
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 2 {
		t.Fatalf("got %d haps, want 2", len(haps))
	}
	if haps[0].Value.(string) != "c" || haps[1].Value.(string) != "a" {
		t.Errorf("bite(4, <2 0>) = %v %v, want c a", haps[0].Value, haps[1].Value)
	}
}

func TestArpUpOrdersNotesAscending(t *testing.T) {
	p := Arp("up", Pure([]any{1, 2, 3}))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3", len(haps))
	}
	for i, want := range []int{1, 2, 3} {
		if haps[i].Value.(int) != want {
			t.Errorf("arp up note %d = %v, want %v", i, haps[i].Value, want)
		}
	}
}

func TestArpDownReversesNotes(t *testing.T) {
	p := Arp("down", Pure([]any{1, 2, 3}))
	haps := p.QueryArc(Zero, One, nil)
	if len(haps) != 3 {
		t.Fatalf("got %d haps, want 3", len(haps))
	}
	for i, want := range []int{3, 2, 1} {
		if haps[i].Value.(int) != want {
			t.Errorf("arp down note %d = %v, want %v", i, haps[i].Value, want)
		}
	}
}
