package cyclo

import "testing"

func TestRationalArithmetic(t *testing.T) {
	half := NewRational(1, 2)
	third := NewRational(1, 3)

	if got := half.Add(third); !got.Equal(NewRational(5, 6)) {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := half.Sub(third); !got.Equal(NewRational(1, 6)) {
		t.Errorf("1/2 - 1/3 = %s, want 1/6", got)
	}
	if got := half.Mul(third); !got.Equal(NewRational(1, 6)) {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
	}
	if got := half.Div(third); !got.Equal(NewRational(3, 2)) {
		t.Errorf("1/2 / 1/3 = %s, want 3/2", got)
	}
}

func TestRationalNormalizesSign(t *testing.T) {
	got := NewRational(1, -2)
	if !got.Equal(NewRational(-1, 2)) {
		t.Errorf("1/-2 = %s, want -1/2", got)
	}
}

func TestRationalReducesToLowestTerms(t *testing.T) {
	got := NewRational(4, 8)
	if got.Num() != 1 || got.Den() != 2 {
		t.Errorf("4/8 = %d/%d, want 1/2", got.Num(), got.Den())
	}
}

func TestRationalFloorCeil(t *testing.T) {
	v := NewRational(7, 2) // 3.5
	if !v.Floor().Equal(FromInt(3)) {
		t.Errorf("floor(7/2) = %s, want 3", v.Floor())
	}
	if !v.Ceil().Equal(FromInt(4)) {
		t.Errorf("ceil(7/2) = %s, want 4", v.Ceil())
	}

	neg := NewRational(-7, 2) // -3.5
	if !neg.Floor().Equal(FromInt(-4)) {
		t.Errorf("floor(-7/2) = %s, want -4", neg.Floor())
	}
	if !neg.Ceil().Equal(FromInt(-3)) {
		t.Errorf("ceil(-7/2) = %s, want -3", neg.Ceil())
	}
}

func TestRationalSamAndCyclePos(t *testing.T) {
	v := NewRational(11, 4) // 2.75
	if !v.Sam().Equal(FromInt(2)) {
		t.Errorf("sam(11/4) = %s, want 2", v.Sam())
	}
	if !v.NextSam().Equal(FromInt(3)) {
		t.Errorf("nextSam(11/4) = %s, want 3", v.NextSam())
	}
	if !v.CyclePos().Equal(NewRational(3, 4)) {
		t.Errorf("cyclePos(11/4) = %s, want 3/4", v.CyclePos())
	}
}

func TestRationalMod(t *testing.T) {
	v := NewRational(-1, 4)
	got := v.Mod(One)
	if !got.Equal(NewRational(3, 4)) {
		t.Errorf("-1/4 mod 1 = %s, want 3/4", got)
	}
}

func TestRationalCompare(t *testing.T) {
	a := NewRational(1, 3)
	b := NewRational(1, 2)
	if !a.Less(b) {
		t.Error("1/3 should be less than 1/2")
	}
	if !b.Greater(a) {
		t.Error("1/2 should be greater than 1/3")
	}
	if !a.Equal(NewRational(2, 6)) {
		t.Error("1/3 should equal 2/6")
	}
}

func TestRationalLcmGcd(t *testing.T) {
	a := FromInt(4)
	b := FromInt(6)
	if !a.Lcm(b).Equal(FromInt(12)) {
		t.Errorf("lcm(4,6) = %s, want 12", a.Lcm(b))
	}
	if !a.Gcd(b).Equal(FromInt(2)) {
		t.Errorf("gcd(4,6) = %s, want 2", a.Gcd(b))
	}
}

func TestRationalFromFloat(t *testing.T) {
	got := FromFloat(0.5)
	if !got.Equal(NewRational(1, 2)) {
		t.Errorf("FromFloat(0.5) = %s, want 1/2", got)
	}
}

func TestRationalDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic dividing by zero rational")
		}
	}()
	One.Div(Zero)
}
