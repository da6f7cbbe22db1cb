package grpc_control

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"market-climber/src/config"
	"market-climber/src/logger"
	"market-climber/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeDashboard struct {
	mu        sync.Mutex
	state     models.MDashboardState
	interval  time.Duration
	refreshes int
}

func (f *fakeDashboard) State() models.MDashboardState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *fakeDashboard) Refresh(ctx context.Context) models.MDashboardState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	f.state.Sequence++
	return f.state.Clone()
}

func (f *fakeDashboard) PollInterval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

func (f *fakeDashboard) SetPollInterval(d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = d
	return nil
}

// -----------------------------------------------------------------------------

func newFakeDashboard() *fakeDashboard {
	snap := models.MMarketSnapshot{
		Gainers:        []models.MSymbol{{Symbol: "AAPL", Price: 190, Change: 2, ChangePercent: 1.06}},
		Losers:         []models.MSymbol{},
		Timestamp:      "2024-05-01 16:00:00 US/Eastern",
		Source:         models.SnapshotSourceFallback,
		FallbackReason: "status",
	}
	return &fakeDashboard{
		state: models.MDashboardState{
			Sequence: 3,
			Snapshot: &snap,
			Market:   models.MMarketStatus{Exchange: "xnys", Open: true},
		},
		interval: time.Minute,
	}
}

func startControl(t *testing.T, svc *ControlService) *ControlClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterControlServer(srv, svc)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewControlClient(conn)
}

func newService(dash *fakeDashboard, path string) *ControlService {
	cfg := config.Default()
	return NewControlService(cfg, dash, path, logger.NewLogger(cfg.MConfig, "ControlTest").WithOutput(io.Discard))
}

func field(s *structpb.Struct, name string) interface{} {
	return s.AsMap()[name]
}

// -----------------------------------------------------------------------------

func TestGetStatus(t *testing.T) {
	client := startControl(t, newService(newFakeDashboard(), ""))

	out, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if field(out, "sequence") != float64(3) || field(out, "source") != "fallback" || field(out, "fallback_reason") != "status" {
		t.Errorf("unexpected status %v", out.AsMap())
	}
	if field(out, "gainers") != float64(1) || field(out, "market_open") != true || field(out, "poll_interval_seconds") != float64(60) {
		t.Errorf("unexpected status %v", out.AsMap())
	}
}

func TestRefresh(t *testing.T) {
	dash := newFakeDashboard()
	client := startControl(t, newService(dash, ""))

	out, err := client.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	dash.mu.Lock()
	refreshes := dash.refreshes
	dash.mu.Unlock()
	if refreshes != 1 || field(out, "sequence") != float64(4) {
		t.Errorf("expected one refresh at sequence 4, got %d refreshes, %v", refreshes, out.AsMap())
	}
}

func TestSetPollIntervalPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	dash := newFakeDashboard()
	client := startControl(t, newService(dash, path))

	out, err := client.SetPollInterval(context.Background(), 30)
	if err != nil {
		t.Fatalf("SetPollInterval: %v", err)
	}
	if field(out, "persisted") != true || dash.PollInterval() != 30*time.Second {
		t.Errorf("unexpected response %v, interval %v", out.AsMap(), dash.PollInterval())
	}

	reloaded, err := config.NewConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.DataSource.UpdateIntervalSeconds != 30 {
		t.Errorf("expected persisted interval 30, got %d", reloaded.DataSource.UpdateIntervalSeconds)
	}
}

func TestSetPollIntervalRejectsBadInput(t *testing.T) {
	dash := newFakeDashboard()
	svc := newService(dash, "")
	client := startControl(t, svc)

	for _, seconds := range []int{0, -5} {
		_, err := client.SetPollInterval(context.Background(), seconds)
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("seconds=%d: expected InvalidArgument, got %v", seconds, err)
		}
	}

	cases := []map[string]interface{}{
		{},
		{"seconds": "ten"},
		{"seconds": 1.5},
	}
	for _, fields := range cases {
		req, _ := structpb.NewStruct(fields)
		if _, err := svc.SetPollInterval(context.Background(), req); status.Code(err) != codes.InvalidArgument {
			t.Errorf("%v: expected InvalidArgument, got %v", fields, err)
		}
	}

	if dash.PollInterval() != time.Minute {
		t.Errorf("rejected requests must not change the interval, got %v", dash.PollInterval())
	}
}
