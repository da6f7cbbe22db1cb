package utils

import (
	"testing"
	"time"
)

func TestWeekendIsClosed(t *testing.T) {
	ms := NewMarketScheduler("xnys", nil)

	// Saturday 2024-06-15, midday in New York
	saturday := time.Date(2024, time.June, 15, 16, 0, 0, 0, time.UTC)
	if ms.IsOpenAt(saturday) {
		t.Errorf("expected exchange closed on Saturday")
	}
	if ms.Calendar.IsTradingDay(saturday) {
		t.Errorf("expected Saturday not to be a trading day")
	}
}

func TestWeekdayNightIsClosed(t *testing.T) {
	ms := NewMarketScheduler("xnys", nil)

	// Wednesday 2024-06-12 at 03:00 New York (07:00 UTC)
	night := time.Date(2024, time.June, 12, 7, 0, 0, 0, time.UTC)
	if ms.IsOpenAt(night) {
		t.Errorf("expected exchange closed overnight")
	}
}

func TestUnknownExchangeFallsBack(t *testing.T) {
	cal := GetCalendar("")
	if cal.MIC != DEFAULT_EXCHANGE {
		t.Errorf("expected default exchange %q, got %q", DEFAULT_EXCHANGE, cal.MIC)
	}
	if cal.Location() == nil {
		t.Fatal("location must never be nil")
	}
}

func TestFallbackSessionHours(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	tc := &TradingCalendar{MIC: "test", Fallback: true, Timezone: ny}

	open := time.Date(2024, time.June, 12, 10, 0, 0, 0, ny)
	if !tc.IsOpenOnMinute(open) {
		t.Errorf("expected open at 10:00 on a Wednesday")
	}
	beforeBell := time.Date(2024, time.June, 12, 9, 29, 0, 0, ny)
	if tc.IsOpenOnMinute(beforeBell) {
		t.Errorf("expected closed at 09:29")
	}
	afterClose := time.Date(2024, time.June, 12, 16, 0, 0, 0, ny)
	if tc.IsOpenOnMinute(afterClose) {
		t.Errorf("expected closed at 16:00")
	}
}
