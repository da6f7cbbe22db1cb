package core

import "math"

// -----------------------------------------------------------------------------

// PriceRange summarises a price series.
type PriceRange struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// ComputeRange returns open/high/low/close of prices; zero for an empty series.
func ComputeRange(prices []float64) PriceRange {
	if len(prices) == 0 {
		return PriceRange{}
	}

	r := PriceRange{
		Open:  prices[0],
		Close: prices[len(prices)-1],
		High:  math.Inf(-1),
		Low:   math.Inf(1),
	}
	for _, p := range prices {
		r.High = math.Max(r.High, p)
		r.Low = math.Min(r.Low, p)
	}
	return r
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change in percent units.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous * 100
}

// -----------------------------------------------------------------------------

// RoundCents rounds to two decimals, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
