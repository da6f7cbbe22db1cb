package analysis

import (
	"market-climber/src/analysis/core"
	"market-climber/src/models"
)

// -----------------------------------------------------------------------------

// Summarize computes the spread of change percentages across a snapshot.
func Summarize(snapshot models.MMarketSnapshot) models.MMarketSummary {
	summary := models.MMarketSummary{
		GainerCount: len(snapshot.Gainers),
		LoserCount:  len(snapshot.Losers),
	}

	summary.AvgGainerPercent, summary.StdGainerPercent = core.CalculateMeanStd(changePercents(snapshot.Gainers))
	summary.AvgLoserPercent, summary.StdLoserPercent = core.CalculateMeanStd(changePercents(snapshot.Losers))

	for i := range snapshot.Gainers {
		if summary.TopGainer == nil || snapshot.Gainers[i].ChangePercent > summary.TopGainer.ChangePercent {
			top := snapshot.Gainers[i]
			summary.TopGainer = &top
		}
	}
	for i := range snapshot.Losers {
		if summary.WorstLoser == nil || snapshot.Losers[i].ChangePercent < summary.WorstLoser.ChangePercent {
			worst := snapshot.Losers[i]
			summary.WorstLoser = &worst
		}
	}

	return summary
}

// -----------------------------------------------------------------------------

// Outliers returns the symbols whose change percent lies more than threshold
// standard deviations from the mean of their own list.
func Outliers(symbols []models.MSymbol, threshold float64) []models.MSymbol {
	mean, std := core.CalculateMeanStd(changePercents(symbols))
	var out []models.MSymbol
	for _, s := range symbols {
		z := core.CalculateZScore(s.ChangePercent, mean, std)
		if z > threshold || z < -threshold {
			out = append(out, s)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func changePercents(symbols []models.MSymbol) []float64 {
	out := make([]float64, len(symbols))
	for i, s := range symbols {
		out[i] = s.ChangePercent
	}
	return out
}
