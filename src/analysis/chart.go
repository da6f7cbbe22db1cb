package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"market-climber/src/analysis/core"
	"market-climber/src/models"
	"market-climber/src/utils"
)

// chartShape describes how a timeframe is sampled
type chartShape struct {
	points int
	step   time.Duration
	start  func(now time.Time) time.Time
	label  string // time.Format layout
}

var chartShapes = map[string]chartShape{
	models.Timeframe1D: {
		points: 14,
		step:   30 * time.Minute,
		start: func(now time.Time) time.Time {
			return time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, now.Location())
		},
		label: "15:04",
	},
	models.Timeframe1W: {
		points: 7,
		step:   24 * time.Hour,
		start:  func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
		label:  "Mon",
	},
	models.Timeframe1M: {
		points: 30,
		step:   24 * time.Hour,
		start:  func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
		label:  "02 Jan",
	},
	models.Timeframe3M: {
		points: 30,
		step:   3 * 24 * time.Hour,
		start:  func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
		label:  "02 Jan",
	},
	models.Timeframe1Y: {
		points: 52,
		step:   7 * 24 * time.Hour,
		start:  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
		label:  "Jan",
	},
}

// -----------------------------------------------------------------------------

// IsTimeframe reports whether tf is a supported chart timeframe.
func IsTimeframe(tf string) bool {
	_, ok := chartShapes[tf]
	return ok
}

// -----------------------------------------------------------------------------

// NewRand returns a time-seeded generator for the synthetic views.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>17|1))
}

// -----------------------------------------------------------------------------

// GenerateChart builds an illustrative price path around the symbol's current
// price. The walk is biased upward for gainers and downward otherwise; it is
// not market data. Labels are rendered in loc (the exchange time zone).
func GenerateChart(symbol models.MSymbol, timeframe string, now time.Time, loc *time.Location, rng *rand.Rand) ([]models.MChartPoint, error) {
	shape, ok := chartShapes[timeframe]
	if !ok {
		return nil, fmt.Errorf("unknown timeframe %q (want one of %v)", timeframe, models.Timeframes)
	}
	if loc == nil {
		loc = time.UTC
	}
	if rng == nil {
		rng = NewRand()
	}

	base := symbol.Price
	volatility := math.Abs(symbol.ChangePercent) / 100
	bias := 0.4
	if symbol.Change > 0 {
		bias = 0.6
	}

	start := shape.start(now.In(loc))
	points := make([]models.MChartPoint, 0, shape.points)

	// 1. Walk
	for i := 0; i < shape.points; i++ {
		at := start.Add(time.Duration(i) * shape.step)

		random := rng.Float64()*volatility*2 - volatility
		directed := random - volatility/2
		if rng.Float64() > bias {
			directed = random + volatility/2
		}
		price := base * (1 + directed*(float64(i)/float64(shape.points)))

		points = append(points, models.MChartPoint{
			Time:     at.Format(shape.label),
			Price:    core.RoundCents(price),
			FullDate: at.UTC().Format(utils.TIMESTAMP_LAYOUT),
		})
	}

	return points, nil
}

// -----------------------------------------------------------------------------

// ChartRange summarises a generated series for axis scaling.
func ChartRange(points []models.MChartPoint) core.PriceRange {
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return core.ComputeRange(prices)
}
