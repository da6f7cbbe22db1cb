package alphavantage

import (
	"time"

	"market-climber/src/models"
)

var fallbackGainers = []models.MSymbol{
	{Symbol: "AAPL", Price: 182.63, Change: 5.28, ChangePercent: 2.98},
	{Symbol: "TSLA", Price: 247.92, Change: 12.35, ChangePercent: 5.24},
	{Symbol: "NVDA", Price: 434.58, Change: 23.45, ChangePercent: 5.71},
	{Symbol: "MSFT", Price: 334.27, Change: 7.89, ChangePercent: 2.42},
	{Symbol: "AMZN", Price: 178.15, Change: 6.72, ChangePercent: 3.92},
	{Symbol: "GOOG", Price: 138.45, Change: 4.28, ChangePercent: 3.19},
	{Symbol: "META", Price: 465.73, Change: 18.93, ChangePercent: 4.24},
}

var fallbackLosers = []models.MSymbol{
	{Symbol: "GME", Price: 13.24, Change: -2.37, ChangePercent: -15.18},
	{Symbol: "AMC", Price: 4.85, Change: -0.75, ChangePercent: -13.40},
	{Symbol: "BBBY", Price: 0.05, Change: -0.01, ChangePercent: -16.67},
	{Symbol: "PLTR", Price: 19.87, Change: -2.13, ChangePercent: -9.68},
	{Symbol: "RIVN", Price: 10.54, Change: -0.86, ChangePercent: -7.54},
	{Symbol: "COIN", Price: 217.65, Change: -12.35, ChangePercent: -5.37},
	{Symbol: "HOOD", Price: 14.78, Change: -0.92, ChangePercent: -5.86},
}

// -----------------------------------------------------------------------------

// FallbackSnapshot returns a fresh copy of the built-in snapshot stamped with now.
func FallbackSnapshot(now time.Time, reason string) models.MMarketSnapshot {
	gainers := make([]models.MSymbol, len(fallbackGainers))
	copy(gainers, fallbackGainers)
	losers := make([]models.MSymbol, len(fallbackLosers))
	copy(losers, fallbackLosers)

	return models.MMarketSnapshot{
		Gainers:        gainers,
		Losers:         losers,
		Timestamp:      FormatTimestamp(now),
		Source:         models.SnapshotSourceFallback,
		FallbackReason: reason,
	}
}
