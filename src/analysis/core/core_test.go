package core

import (
	"math"
	"testing"
)

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 || std != 2 {
		t.Errorf("got mean=%v std=%v, want 5 and 2", mean, std)
	}

	mean, std = CalculateMeanStd(nil)
	if mean != 0 || std != 0 {
		t.Errorf("empty input should give zeros")
	}

	mean, std = CalculateMeanStd([]float64{3.5})
	if mean != 3.5 || std != 0 {
		t.Errorf("single value: got %v/%v", mean, std)
	}
}

func TestCalculateZScore(t *testing.T) {
	if z := CalculateZScore(9, 5, 2); z != 2 {
		t.Errorf("expected z=2, got %v", z)
	}
	if z := CalculateZScore(9, 5, 0); z != 0 {
		t.Errorf("zero std should give 0, got %v", z)
	}
}

func TestComputeRange(t *testing.T) {
	r := ComputeRange([]float64{10, 12, 8, 11})
	if r.Open != 10 || r.High != 12 || r.Low != 8 || r.Close != 11 {
		t.Errorf("unexpected range %+v", r)
	}
	if (ComputeRange(nil) != PriceRange{}) {
		t.Errorf("empty series should be zero")
	}
}

func TestRoundCents(t *testing.T) {
	cases := map[float64]float64{
		182.634: 182.63,
		1.125:   1.13,
		-2.375:  -2.38,
		0:       0,
	}
	for in, want := range cases {
		if got := RoundCents(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("RoundCents(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestCalculateChangePercent(t *testing.T) {
	if got := CalculateChangePercent(110, 100); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10%%, got %v", got)
	}
	if got := CalculateChangePercent(1, 0); got != 0 {
		t.Errorf("zero base should give 0, got %v", got)
	}
}
