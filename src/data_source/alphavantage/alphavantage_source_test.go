package alphavantage

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/logger"
	"market-climber/src/models"
	"market-climber/src/network"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) (*AlphaVantageSource, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &models.MConfig{
		Network: models.MNetworkConfig{RequestTimeout: 5},
		DataSource: models.MDataSourceConfig{
			Endpoint: srv.URL,
			Function: "TOP_GAINERS_LOSERS",
			APIKey:   "demo",
		},
	}
	log := logger.NewLogger(cfg, "AlphaVantageTest").WithOutput(io.Discard)
	src := NewAlphaVantageSource(cfg, network.NewNetworkManager(cfg, log), log)
	src.Now = func() time.Time { return fixedNow }
	return src, &calls
}

func TestGetMarketSnapshotLive(t *testing.T) {
	src, calls := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "demo" || r.URL.Query().Get("function") != "TOP_GAINERS_LOSERS" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		io.WriteString(w, aaplPayload)
	})

	snap := src.GetMarketSnapshot(context.Background())
	if snap.Source != models.SnapshotSourceLive {
		t.Fatalf("expected live snapshot, got %+v", snap)
	}
	if snap.Gainers[0].Symbol != "AAPL" {
		t.Errorf("unexpected gainers %+v", snap.Gainers)
	}
	if *calls != 1 {
		t.Errorf("expected one outbound call, got %d", *calls)
	}
	if src.Errors.Consecutive() != 0 {
		t.Errorf("a live fetch should not count as a failure")
	}
}

func TestGetMarketSnapshotFallsBackOnMissingGainers(t *testing.T) {
	src, calls := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"top_losers": []}`)
	})

	snap := src.GetMarketSnapshot(context.Background())
	if !snap.UsedFallback() || snap.FallbackReason != helpers.KindMalformed {
		t.Errorf("expected malformed fallback, got %q/%q", snap.Source, snap.FallbackReason)
	}
	if snap.Timestamp != FormatTimestamp(fixedNow) {
		t.Errorf("expected fresh timestamp, got %q", snap.Timestamp)
	}
	if *calls != 1 {
		t.Errorf("fallback must not trigger a second call, got %d", *calls)
	}
}

func TestGetMarketSnapshotFallsBackOnStatus(t *testing.T) {
	src, calls := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	snap := src.GetMarketSnapshot(context.Background())
	if snap.FallbackReason != helpers.KindStatus {
		t.Errorf("expected status fallback, got %q", snap.FallbackReason)
	}
	if *calls != 1 {
		t.Errorf("expected no retries, got %d calls", *calls)
	}

	src.GetMarketSnapshot(context.Background())
	if src.Errors.Consecutive() != 2 {
		t.Errorf("expected 2 consecutive failures, got %d", src.Errors.Consecutive())
	}
}

func TestGetMarketSnapshotFallsBackOnTransportError(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {})
	src.Config.DataSource.Endpoint = "http://127.0.0.1:1"

	snap := src.GetMarketSnapshot(context.Background())
	if snap.FallbackReason != helpers.KindTransport {
		t.Errorf("expected transport fallback, got %q", snap.FallbackReason)
	}
	for _, s := range append(snap.Gainers, snap.Losers...) {
		if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) || math.IsNaN(s.ChangePercent) {
			t.Errorf("non-finite value in %+v", s)
		}
	}
}

func TestFetchMarketSnapshotSurfacesError(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"Information": "rate limit"}`)
	})

	_, err := src.FetchMarketSnapshot(context.Background())
	if helpers.ErrorKind(err) != helpers.KindUpstream {
		t.Errorf("expected upstream error, got %v", err)
	}
}
