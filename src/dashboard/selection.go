package dashboard

import (
	"fmt"
	"strings"

	"market-climber/src/models"
)

// Layouts and how many movers each one shows
const (
	LayoutElevator = "elevator"
	LayoutCompact  = "compact"
	LayoutStairs   = "stairs"
)

var layoutDepths = map[string]int{
	LayoutElevator: 6,
	LayoutCompact:  9,
	LayoutStairs:   10,
}

// Layouts lists every layout in cycling order.
var Layouts = []string{LayoutStairs, LayoutCompact, LayoutElevator}

// -----------------------------------------------------------------------------

// ParseLayout normalizes a layout name; empty means def.
func ParseLayout(s, def string) (string, error) {
	layout := strings.ToLower(strings.TrimSpace(s))
	if layout == "" {
		layout = def
	}
	if _, ok := layoutDepths[layout]; !ok {
		return "", fmt.Errorf("unknown layout %q (want one of %v)", s, Layouts)
	}
	return layout, nil
}

// -----------------------------------------------------------------------------

// LayoutDepth returns K for a layout, or 0 if unknown.
func LayoutDepth(layout string) int {
	return layoutDepths[layout]
}

// -----------------------------------------------------------------------------

// NextLayout returns the layout after current in cycling order.
func NextLayout(current string) string {
	for i, l := range Layouts {
		if l == current {
			return Layouts[(i+1)%len(Layouts)]
		}
	}
	return Layouts[0]
}

// -----------------------------------------------------------------------------

// TopK copies the first k entries, preserving order. The source is never touched.
func TopK(list []models.MSymbol, k int) []models.MSymbol {
	if k < 0 {
		k = 0
	}
	if k > len(list) {
		k = len(list)
	}
	out := make([]models.MSymbol, k)
	copy(out, list[:k])
	return out
}

// -----------------------------------------------------------------------------

// SelectMovers builds the top-K view of snapshot for layout.
func SelectMovers(snapshot models.MMarketSnapshot, layout string) models.MMovers {
	depth := LayoutDepth(layout)
	return models.MMovers{
		Layout:    layout,
		Depth:     depth,
		Gainers:   TopK(snapshot.Gainers, depth),
		Losers:    TopK(snapshot.Losers, depth),
		Timestamp: snapshot.Timestamp,
		Source:    snapshot.Source,
	}
}
