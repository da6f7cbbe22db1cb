package models

// MSymbol is one tradable instrument's snapshot as shown on the dashboard.
type MSymbol struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// IsGainer reports whether the symbol moved up since the previous close.
func (s MSymbol) IsGainer() bool {
	return s.Change > 0
}
