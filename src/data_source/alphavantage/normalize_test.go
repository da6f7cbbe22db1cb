package alphavantage

import (
	"errors"
	"math"
	"testing"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/models"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 15, 123000000, time.UTC)

const aaplPayload = `{
	"metadata": "Top gainers, losers, and most actively traded US tickers",
	"last_updated": "2024-01-01T00:00:00Z",
	"top_gainers": [
		{"ticker": "AAPL", "price": "182.63", "change_amount": "5.28", "change_percentage": "2.98%", "volume": "1000"}
	],
	"top_losers": [
		{"ticker": "GME", "price": "13.24", "change_amount": "-2.37", "change_percentage": "-15.18%", "volume": "2000"}
	]
}`

func TestNormalizeSnapshotExample(t *testing.T) {
	snap, err := NormalizeSnapshot([]byte(aaplPayload), fixedNow)
	if err != nil {
		t.Fatalf("NormalizeSnapshot: %v", err)
	}

	want := models.MSymbol{Symbol: "AAPL", Price: 182.63, Change: 5.28, ChangePercent: 2.98}
	if len(snap.Gainers) != 1 || snap.Gainers[0] != want {
		t.Errorf("unexpected gainers %+v", snap.Gainers)
	}
	if len(snap.Losers) != 1 || snap.Losers[0].ChangePercent != -15.18 {
		t.Errorf("unexpected losers %+v", snap.Losers)
	}
	if snap.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("expected upstream timestamp verbatim, got %q", snap.Timestamp)
	}
	if snap.Source != models.SnapshotSourceLive || snap.FallbackReason != "" {
		t.Errorf("expected live snapshot, got %q/%q", snap.Source, snap.FallbackReason)
	}
}

func TestNormalizeSnapshotIsDeterministic(t *testing.T) {
	a, errA := NormalizeSnapshot([]byte(aaplPayload), fixedNow)
	b, errB := NormalizeSnapshot([]byte(aaplPayload), fixedNow.Add(time.Hour))
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a.Timestamp != b.Timestamp || a.Gainers[0] != b.Gainers[0] || a.Losers[0] != b.Losers[0] {
		t.Errorf("expected identical output, got %+v and %+v", a, b)
	}
}

func TestNormalizeSnapshotKeepsUpstreamOrder(t *testing.T) {
	payload := `{
		"top_gainers": [
			{"ticker": "LOW", "price": "1", "change_amount": "0.1", "change_percentage": "1%"},
			{"ticker": "HIGH", "price": "2", "change_amount": "1", "change_percentage": "50%"}
		],
		"top_losers": [
			{"ticker": "X", "price": "3", "change_amount": "-1", "change_percentage": "-25%"}
		]
	}`
	snap, err := NormalizeSnapshot([]byte(payload), fixedNow)
	if err != nil {
		t.Fatalf("NormalizeSnapshot: %v", err)
	}
	if snap.Gainers[0].Symbol != "LOW" || snap.Gainers[1].Symbol != "HIGH" {
		t.Errorf("order must not be re-sorted: %+v", snap.Gainers)
	}
}

func TestNormalizeSnapshotTimestampFallsBackToNow(t *testing.T) {
	payload := `{
		"top_gainers": [{"ticker": "A", "price": "1", "change_amount": "1", "change_percentage": "1%"}],
		"top_losers": [{"ticker": "B", "price": "1", "change_amount": "-1", "change_percentage": "-1%"}]
	}`
	snap, err := NormalizeSnapshot([]byte(payload), fixedNow)
	if err != nil {
		t.Fatalf("NormalizeSnapshot: %v", err)
	}
	if snap.Timestamp != "2024-03-05T14:30:15.123Z" {
		t.Errorf("unexpected timestamp %q", snap.Timestamp)
	}
}

func TestParseChangePercent(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"-15.18%", -15.18, false},
		{"2.98%", 2.98, false},
		{"2.98", 2.98, false},
		{" 0% ", 0, false},
		{"2.98%%", 0, true},
		{"abc%", 0, true},
		{"NaN%", 0, true},
		{"Inf", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseChangePercent(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseChangePercent(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseChangePercent(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestNormalizeSnapshotFailures(t *testing.T) {
	const loser = `{"ticker": "B", "price": "1", "change_amount": "-1", "change_percentage": "-1%"}`
	const gainer = `{"ticker": "A", "price": "1", "change_amount": "1", "change_percentage": "1%"}`

	cases := []struct {
		name    string
		payload string
		kind    string
	}{
		{"not json", `<html>oops</html>`, helpers.KindParse},
		{"missing gainers", `{"top_losers": [` + loser + `]}`, helpers.KindMalformed},
		{"empty losers", `{"top_gainers": [` + gainer + `], "top_losers": []}`, helpers.KindMalformed},
		{"wrong type", `{"top_gainers": "none", "top_losers": [` + loser + `]}`, helpers.KindMalformed},
		{"rate limited", `{"Information": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`, helpers.KindUpstream},
		{"note", `{"Note": "call frequency"}`, helpers.KindUpstream},
		{"error message", `{"Error Message": "Invalid API call."}`, helpers.KindUpstream},
		{"error field", `{"error": "bad key", "top_gainers": [` + gainer + `], "top_losers": [` + loser + `]}`, helpers.KindUpstream},
		{"empty ticker", `{"top_gainers": [{"ticker": " ", "price": "1", "change_amount": "1", "change_percentage": "1%"}], "top_losers": [` + loser + `]}`, helpers.KindMalformed},
		{"negative price", `{"top_gainers": [{"ticker": "A", "price": "-1", "change_amount": "1", "change_percentage": "1%"}], "top_losers": [` + loser + `]}`, helpers.KindMalformed},
		{"bad number", `{"top_gainers": [` + gainer + `], "top_losers": [{"ticker": "B", "price": "1", "change_amount": "n/a", "change_percentage": "-1%"}]}`, helpers.KindParse},
		{"nan price", `{"top_gainers": [{"ticker": "A", "price": "NaN", "change_amount": "1", "change_percentage": "1%"}], "top_losers": [` + loser + `]}`, helpers.KindParse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := NormalizeSnapshot([]byte(tc.payload), fixedNow)
			if err == nil {
				t.Fatalf("expected error, got %+v", snap)
			}
			if got := helpers.ErrorKind(err); got != tc.kind {
				t.Errorf("ErrorKind = %q, want %q (%v)", got, tc.kind, err)
			}
			if len(snap.Gainers) != 0 || len(snap.Losers) != 0 {
				t.Errorf("expected no partial output, got %+v", snap)
			}
		})
	}
}

func TestNullErrorFieldIsIgnored(t *testing.T) {
	payload := `{"error": null,
		"top_gainers": [{"ticker": "A", "price": "1", "change_amount": "1", "change_percentage": "1%"}],
		"top_losers": [{"ticker": "B", "price": "1", "change_amount": "-1", "change_percentage": "-1%"}]}`
	if _, err := NormalizeSnapshot([]byte(payload), fixedNow); err != nil {
		t.Errorf("null error field should not trigger fallback: %v", err)
	}
}

func TestFallbackSnapshotIsFresh(t *testing.T) {
	a := FallbackSnapshot(fixedNow, helpers.KindTransport)
	a.Gainers[0].Price = -1

	b := FallbackSnapshot(fixedNow, helpers.KindTransport)
	if b.Gainers[0].Price != 182.63 {
		t.Errorf("fallback data must not be shared between calls")
	}
	if len(b.Gainers) != 7 || len(b.Losers) != 7 {
		t.Errorf("expected 7 gainers and 7 losers, got %d/%d", len(b.Gainers), len(b.Losers))
	}
	if b.Gainers[0].Symbol != "AAPL" || b.Losers[0].Symbol != "GME" {
		t.Errorf("unexpected fallback order")
	}
	for _, s := range append(b.Gainers, b.Losers...) {
		if math.IsNaN(s.Price) || math.IsNaN(s.Change) || math.IsNaN(s.ChangePercent) {
			t.Errorf("fallback symbol %s has NaN", s.Symbol)
		}
	}
	if !b.UsedFallback() || b.FallbackReason != helpers.KindTransport {
		t.Errorf("expected fallback markers, got %q/%q", b.Source, b.FallbackReason)
	}
}

func TestErrorsAreTyped(t *testing.T) {
	_, err := NormalizeSnapshot([]byte(`{}`), fixedNow)
	var valErr *helpers.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
