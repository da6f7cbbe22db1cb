package interfaces

import "market-climber/src/models"

// -----------------------------------------------------------------------------
// IStatePublisher receives every new dashboard state, in sequence order.
// -----------------------------------------------------------------------------

type IStatePublisher interface {
	Publish(state models.MDashboardState)
}

// -----------------------------------------------------------------------------
// IDataExchanger is a publisher with its own lifecycle (HTTP server, etc).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	IStatePublisher

	// Start the server
	Start() error

	// Stop the server gracefully
	Stop() error
}
