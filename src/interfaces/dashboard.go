package interfaces

import (
	"context"
	"time"

	"market-climber/src/models"
)

// -----------------------------------------------------------------------------
// IDashboard is the display-state owner shared by the HTTP, gRPC and terminal surfaces.
// -----------------------------------------------------------------------------

type IDashboard interface {

	// State returns a copy of the current display state
	State() models.MDashboardState

	// Refresh fetches now and returns the resulting state.
	// A refresh that was superseded by a newer one returns the newer state.
	Refresh(ctx context.Context) models.MDashboardState

	// PollInterval returns the current automatic refresh interval
	PollInterval() time.Duration

	// SetPollInterval changes the interval of the running loop
	SetPollInterval(d time.Duration) error
}
