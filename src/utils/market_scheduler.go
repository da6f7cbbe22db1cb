package utils

import (
	"sync"
	"time"

	"market-climber/src/logger"
)

// MarketScheduler answers "is the exchange open" for the refresh loop and the display layer.
type MarketScheduler struct {
	Calendar *TradingCalendar
	Logger   *logger.Logger
	Now      func() time.Time
	mu       sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(mic string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{Logger: l, Now: time.Now}
	ms.SetExchange(mic)
	return ms
}

// -----------------------------------------------------------------------------

// SetExchange swaps the tracked exchange calendar
func (ms *MarketScheduler) SetExchange(mic string) {
	cal := GetCalendar(mic)

	ms.mu.Lock()
	ms.Calendar = cal
	ms.mu.Unlock()

	if ms.Logger != nil {
		ms.Logger.Info("MarketScheduler: tracking exchange %s (fallback=%v, tz=%s)",
			cal.MIC, cal.Fallback, cal.Location())
	}
}

// -----------------------------------------------------------------------------

// Exchange returns the MIC of the tracked exchange
func (ms *MarketScheduler) Exchange() string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.Calendar.MIC
}

// -----------------------------------------------------------------------------

// IsOpen checks the tracked exchange at the current time
func (ms *MarketScheduler) IsOpen() bool {
	return ms.IsOpenAt(ms.Now())
}

// -----------------------------------------------------------------------------

func (ms *MarketScheduler) IsOpenAt(t time.Time) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.Calendar.IsOpenOnMinute(t)
}

// -----------------------------------------------------------------------------

// Location returns the exchange time zone used for chart labels
func (ms *MarketScheduler) Location() *time.Location {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.Calendar.Location()
}
