package panels

import (
	"testing"

	"market-climber/src/models"
)

func points(prices ...float64) []models.MChartPoint {
	out := make([]models.MChartPoint, len(prices))
	for i, p := range prices {
		out[i] = models.MChartPoint{Price: p}
	}
	return out
}

func TestSparkline(t *testing.T) {
	cases := []struct {
		name string
		in   []models.MChartPoint
		want string
	}{
		{"empty", nil, ""},
		{"rising", points(1, 2, 3), "▁▄█"},
		{"flat", points(5, 5), "▅▅"},
	}
	for _, tc := range cases {
		if got := Sparkline(tc.in); got != tc.want {
			t.Errorf("%s: Sparkline = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestMoverListSelectionClamps(t *testing.T) {
	p := NewElevatorPanel()
	p.SetSymbols([]models.MSymbol{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}}, nil)
	p.selectedIndex = 2

	p.SetSymbols([]models.MSymbol{{Symbol: "A"}}, nil)
	if sym, ok := p.Selected(); !ok || sym.Symbol != "A" {
		t.Errorf("selection should clamp to the last row, got %+v", sym)
	}

	p.SetSymbols(nil, nil)
	if _, ok := p.Selected(); ok {
		t.Errorf("empty list has no selection")
	}
}

func TestStairsStepsPutFirstGainerOnTop(t *testing.T) {
	p := NewStairsPanel()
	p.SetSymbols([]models.MSymbol{{Symbol: "TOP"}, {Symbol: "NEXT"}}, nil)

	steps := p.Steps()
	top := steps[len(steps)-1]
	if top.Symbol == nil || top.Symbol.Symbol != "TOP" || top.Level != 10 {
		t.Errorf("unexpected top step %+v", top)
	}
	if steps[0].Symbol != nil {
		t.Errorf("bottom step should be empty")
	}
}
