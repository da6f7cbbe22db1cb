package models

// Chart timeframes
const (
	Timeframe1D = "1D"
	Timeframe1W = "1W"
	Timeframe1M = "1M"
	Timeframe3M = "3M"
	Timeframe1Y = "1Y"
)

// Timeframes lists every supported chart timeframe in display order.
var Timeframes = []string{Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M, Timeframe1Y}

// MChartPoint is one synthetic chart sample.
type MChartPoint struct {
	Time     string  `json:"time"`
	Price    float64 `json:"price"`
	FullDate string  `json:"fullDate"`
}
