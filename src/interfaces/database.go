package interfaces

import (
	"context"

	"market-climber/src/models"
)

// -----------------------------------------------------------------------------
// IWatchlistStore defines the contract for persisting watched symbols.
// -----------------------------------------------------------------------------

type IWatchlistStore interface {

	// Initialize sets up the schema (or checks connectivity for key-value stores).
	Initialize(ctx context.Context) error

	// -----------------------------------------------------------------------------

	// Add stores a symbol. Adding an existing symbol returns the stored item.
	Add(ctx context.Context, symbol string) (models.MWatchlistItem, error)

	// -----------------------------------------------------------------------------

	// Remove deletes a symbol; it reports whether anything was removed.
	Remove(ctx context.Context, symbol string) (bool, error)

	// -----------------------------------------------------------------------------

	// List returns all items, oldest first.
	List(ctx context.Context) ([]models.MWatchlistItem, error)

	// -----------------------------------------------------------------------------

	// Close the underlying connection
	Close() error
}
