package alphavantage

import (
	"context"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"
	"market-climber/src/utils"
)

type AlphaVantageSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
	Errors  *helpers.ErrorHandler
	Now     func() time.Time
}

// -----------------------------------------------------------------------------

func NewAlphaVantageSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *AlphaVantageSource {
	if log == nil {
		log = logger.NewLogger(cfg, "AlphaVantageSource")
	}
	return &AlphaVantageSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
		Errors:  helpers.NewErrorHandler(log),
		Now:     time.Now,
	}
}

// -----------------------------------------------------------------------------

func (s *AlphaVantageSource) Name() string {
	if s.Config.DataSource.Name != "" {
		return s.Config.DataSource.Name
	}
	return "alphavantage"
}

// -----------------------------------------------------------------------------

// FetchMarketSnapshot performs exactly one request and returns the live
// snapshot or a typed error from helpers.
func (s *AlphaVantageSource) FetchMarketSnapshot(ctx context.Context) (models.MMarketSnapshot, error) {
	endpoint := s.Config.DataSource.Endpoint
	if endpoint == "" {
		endpoint = utils.ALPHA_VANTAGE_ENDPOINT
	}
	function := s.Config.DataSource.Function
	if function == "" {
		function = utils.ALPHA_VANTAGE_FUNCTION
	}

	body, err := s.Network.Get(ctx, endpoint, map[string]string{
		"function": function,
		"apikey":   s.Config.DataSource.APIKey,
	})
	if err != nil {
		return models.MMarketSnapshot{}, err
	}

	return NormalizeSnapshot(body, s.Now())
}

// -----------------------------------------------------------------------------

// GetMarketSnapshot always yields a usable snapshot: any failure of the live
// path is logged and replaced by the built-in data, tagged with the failure kind.
func (s *AlphaVantageSource) GetMarketSnapshot(ctx context.Context) models.MMarketSnapshot {
	snapshot, err := s.FetchMarketSnapshot(ctx)
	if err == nil {
		s.Errors.ResetErrorCount()
		s.Logger.Debug("Fetched %d gainers and %d losers (updated %s)",
			len(snapshot.Gainers), len(snapshot.Losers), snapshot.Timestamp)
		return snapshot
	}

	s.Errors.Handle(err, "top movers fetch")
	kind := helpers.ErrorKind(err)
	s.Logger.Warning("Using fallback data (%s)", kind)
	return FallbackSnapshot(s.Now(), kind)
}
