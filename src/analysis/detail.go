package analysis

import (
	"math"
	"math/rand/v2"

	"market-climber/src/analysis/core"
	"market-climber/src/models"
)

// Detail kinds
const (
	KindGainer = "gainer"
	KindLoser  = "loser"
)

// -----------------------------------------------------------------------------

// BuildDetail fills the key stats panel. Open, previous close, the 52-week band
// and the volatility bar derive from the symbol; the rest is simulated.
func BuildDetail(symbol models.MSymbol, rng *rand.Rand) models.MSymbolDetail {
	if rng == nil {
		rng = NewRand()
	}

	kind := KindLoser
	if symbol.IsGainer() {
		kind = KindGainer
	}

	price := symbol.Price
	return models.MSymbolDetail{
		MSymbol:           symbol,
		Kind:              kind,
		Volume:            int64(math.Floor(rng.Float64()*10_000_000)) + 100_000,
		MarketCap:         int64(math.Floor(rng.Float64()*1_000_000_000)) + 10_000_000,
		PE:                core.RoundCents(rng.Float64()*30 + 5),
		DayHigh:           core.RoundCents(price + rng.Float64()*2),
		DayLow:            core.RoundCents(math.Max(0, price-rng.Float64()*2)),
		Open:              core.RoundCents(price - symbol.Change),
		PreviousClose:     core.RoundCents(price - symbol.Change*1.05),
		Week52Low:         core.RoundCents(price * 0.7),
		Week52High:        core.RoundCents(price * 1.3),
		VolatilityPercent: math.Min(math.Abs(symbol.ChangePercent*2), 100),
	}
}
