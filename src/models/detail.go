package models

// MSymbolDetail holds the key stats shown in the detail panel. Everything but
// the embedded symbol and the derived prices is simulated.
type MSymbolDetail struct {
	MSymbol
	Kind              string  `json:"kind"` // "gainer" or "loser"
	Volume            int64   `json:"volume"`
	MarketCap         int64   `json:"marketCap"`
	PE                float64 `json:"pe"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	Open              float64 `json:"open"`
	PreviousClose     float64 `json:"previousClose"`
	Week52Low         float64 `json:"week52Low"`
	Week52High        float64 `json:"week52High"`
	VolatilityPercent float64 `json:"volatilityPercent"`
}

// MMarketSummary describes the spread of one snapshot.
type MMarketSummary struct {
	GainerCount      int      `json:"gainerCount"`
	LoserCount       int      `json:"loserCount"`
	AvgGainerPercent float64  `json:"avgGainerPercent"`
	StdGainerPercent float64  `json:"stdGainerPercent"`
	AvgLoserPercent  float64  `json:"avgLoserPercent"`
	StdLoserPercent  float64  `json:"stdLoserPercent"`
	TopGainer        *MSymbol `json:"topGainer,omitempty"`
	WorstLoser       *MSymbol `json:"worstLoser,omitempty"`
}
