package grpc_control

import (
	"context"
	"math"
	"sync"
	"time"

	"market-climber/src/config"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ControlService implements the ControlServer interface on top of the dashboard poller
type ControlService struct {
	Config     *config.Config
	Dashboard  interfaces.IDashboard
	ConfigPath string
	Logger     *logger.Logger

	mu sync.Mutex
}

// NewControlService creates a new instance of ControlService. An empty
// cfgPath keeps interval changes in memory only.
func NewControlService(
	cfg *config.Config,
	dash interfaces.IDashboard,
	cfgPath string,
	log *logger.Logger,
) *ControlService {
	return &ControlService{
		Config:     cfg,
		Dashboard:  dash,
		ConfigPath: cfgPath,
		Logger:     log,
	}
}

// -----------------------------------------------------------------------------

// Refresh fetches now and returns the resulting status
func (s *ControlService) Refresh(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := s.Dashboard.Refresh(ctx)
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	s.Logger.Info("gRPC: Refresh -> sequence %d", st.Sequence)
	return s.statusStruct(st)
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.statusStruct(s.Dashboard.State())
}

// -----------------------------------------------------------------------------

// SetPollInterval expects {"seconds": N} with N a whole number of seconds
func (s *ControlService) SetPollInterval(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	field, ok := req.GetFields()["seconds"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "seconds is required")
	}
	if _, isNumber := field.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return nil, status.Error(codes.InvalidArgument, "seconds must be a number")
	}
	seconds := field.GetNumberValue()
	if seconds != math.Trunc(seconds) || seconds < 1 || seconds > math.MaxInt32 {
		return nil, status.Errorf(codes.InvalidArgument, "seconds must be a whole number >= 1, got %v", seconds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Dashboard.SetPollInterval(time.Duration(seconds) * time.Second); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.Config.DataSource.UpdateIntervalSeconds = int(seconds)

	persisted := false
	if s.ConfigPath != "" {
		if err := s.Config.Save(s.ConfigPath); err != nil {
			s.Logger.Error("gRPC: Failed to persist poll interval: %v", err)
		} else {
			persisted = true
		}
	}

	s.Logger.Info("gRPC: SetPollInterval success: %ds (persisted: %v)", int(seconds), persisted)
	return structpb.NewStruct(map[string]interface{}{
		"poll_interval_seconds": int(seconds),
		"persisted":             persisted,
	})
}

// -----------------------------------------------------------------------------

func (s *ControlService) statusStruct(st models.MDashboardState) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"sequence":              st.Sequence,
		"loading":               st.Loading,
		"refreshing":            st.Refreshing,
		"error":                 st.Error,
		"exchange":              st.Market.Exchange,
		"market_open":           st.Market.Open,
		"poll_interval_seconds": int(s.Dashboard.PollInterval() / time.Second),
	}
	if st.Snapshot != nil {
		fields["source"] = st.Snapshot.Source
		fields["fallback_reason"] = st.Snapshot.FallbackReason
		fields["timestamp"] = st.Snapshot.Timestamp
		fields["gainers"] = len(st.Snapshot.Gainers)
		fields["losers"] = len(st.Snapshot.Losers)
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode status: %v", err)
	}
	return out, nil
}
