package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"

	"github.com/google/uuid"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

// -----------------------------------------------------------------------------

// ValidateSymbol upper-cases a ticker and checks it against the allowed alphabet.
func ValidateSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", helpers.NewValidationError("invalid symbol %q", symbol)
	}
	return s, nil
}

// -----------------------------------------------------------------------------

// NewWatchlistStore picks the backend named by storage.db_type.
func NewWatchlistStore(cfg *models.MConfig, log *logger.Logger) (interfaces.IWatchlistStore, error) {
	switch cfg.Storage.DBType {
	case "sqlite", "":
		return NewSQLiteWatchlist(cfg, log), nil
	case "postgres":
		return NewPostgresWatchlist(cfg, log), nil
	case "redis":
		return NewRedisWatchlist(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Storage.DBType)
	}
}

// -----------------------------------------------------------------------------

func newItem(symbol string, now time.Time) models.MWatchlistItem {
	return models.MWatchlistItem{
		ID:      uuid.NewString(),
		Symbol:  symbol,
		AddedAt: now.UTC().Truncate(time.Millisecond),
	}
}
