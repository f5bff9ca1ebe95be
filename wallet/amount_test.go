package wallet

import (
	"testing"
)

func TestAmountRoundTrip(t *testing.T) {
	tests := []struct {
		lovelace int64
	}{
		{0},
		{1_000_000},
		{45_000_000},
		{123_000_000_000},
	}
	for _, test := range tests {
		a := Lovelace(test.lovelace)
		back := Ada(a.Ada())
		if back.Lovelace() != test.lovelace {
			t.Fatalf("round trip of %v expected %v, but got %v", test.lovelace, test.lovelace, back.Lovelace())
		}
	}
}

func TestAdaTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		ada  float64
		want int64
	}{
		{1.5, 1_500_000},
		{2.25, 2_250_000},
		{0.000001, 1},
		{0.0000014, 1},
		{0.0000019, 1},
	}
	for _, test := range tests {
		a := Ada(test.ada)
		if a.Lovelace() != test.want {
			t.Fatalf("Ada(%v) expected %v lovelace, but got %v", test.ada, test.want, a.Lovelace())
		}
	}
}

func TestAmountArithmeticKeepsLeftUnit(t *testing.T) {
	sum := Lovelace(1_000_000).Add(Ada(1.5))
	if sum.Unit() != UnitLovelace {
		t.Fatalf("sum unit expected %v, but got %v", UnitLovelace, sum.Unit())
	}
	if sum.Lovelace() != 2_500_000 {
		t.Fatalf("sum expected %v, but got %v", 2_500_000, sum.Lovelace())
	}

	diff := Ada(2.5).Sub(Lovelace(1_000_000))
	if diff.Unit() != UnitAda {
		t.Fatalf("diff unit expected %v, but got %v", UnitAda, diff.Unit())
	}
	if diff.Lovelace() != 1_500_000 {
		t.Fatalf("diff expected %v, but got %v", 1_500_000, diff.Lovelace())
	}
}

func TestAmountCmp(t *testing.T) {
	tests := []struct {
		a    Amount
		b    Amount
		want int
	}{
		{Lovelace(1), Lovelace(2), -1},
		{Lovelace(2), Lovelace(1), 1},
		{Ada(1), Lovelace(1_000_000), 0},
	}
	for _, test := range tests {
		if got := test.a.Cmp(test.b); got != test.want {
			t.Fatalf("%v cmp %v expected %v, but got %v", test.a, test.b, test.want, got)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	a, err := CoerceAmount(int64(42))
	if err != nil {
		t.Fatalf("coerce int64 failed: %v", err)
	}
	if a.Unit() != UnitLovelace || a.Lovelace() != 42 {
		t.Fatalf("coerce int64 expected 42 lovelace, but got %v", a)
	}

	a, err = CoerceAmount(1.5)
	if err != nil {
		t.Fatalf("coerce float64 failed: %v", err)
	}
	if a.Unit() != UnitAda || a.Lovelace() != 1_500_000 {
		t.Fatalf("coerce float64 expected 1.5 ada, but got %v", a)
	}

	if _, err = CoerceAmount("1000000"); err != ErrTypeMismatch {
		t.Fatalf("coerce string expected %v, but got %v", ErrTypeMismatch, err)
	}
}

func TestAmountString(t *testing.T) {
	if got := Lovelace(1_500_000).String(); got != "1500000 lovelace" {
		t.Fatalf("expected %q, but got %q", "1500000 lovelace", got)
	}
	if got := Ada(1.5).String(); got != "1.5 ada" {
		t.Fatalf("expected %q, but got %q", "1.5 ada", got)
	}
}
