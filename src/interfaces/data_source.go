package interfaces

import (
	"context"

	"market-climber/src/models"
)

// -----------------------------------------------------------------------------
// IMarketDataProvider supplies a gainers/losers snapshot from some upstream.
// -----------------------------------------------------------------------------

type IMarketDataProvider interface {

	// Name returns the unique identifier of the provider
	Name() string

	// -----------------------------------------------------------------------------

	// GetMarketSnapshot never fails: any upstream problem yields the built-in
	// fallback snapshot with Source set to "fallback".
	GetMarketSnapshot(ctx context.Context) models.MMarketSnapshot
}
