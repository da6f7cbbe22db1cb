package main

import (
	"context"

	"market-climber/src/data_source/alphavantage"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"
	"market-climber/src/network"
	"market-climber/src/storage"
	"market-climber/src/utils"
)

// -----------------------------------------------------------------------------

// setupWatchlist opens the configured watchlist backend. The dashboard runs
// without one if the backend is unreachable.
func setupWatchlist(ctx context.Context, config *models.MConfig, appLogger *logger.Logger) interfaces.IWatchlistStore {
	storeLogger := logger.NewLogger(config, "Watchlist")
	store, err := storage.NewWatchlistStore(config, storeLogger)
	if err != nil {
		appLogger.Error("Failed to init watchlist storage: %v", err)
		return nil
	}
	if err := store.Initialize(ctx); err != nil {
		appLogger.Error("Failed to open watchlist storage (%s): %v; watchlist disabled", config.Storage.DBType, err)
		store.Close()
		return nil
	}
	return store
}

// -----------------------------------------------------------------------------

// setupScheduler loads the trading calendar of the configured exchange
func setupScheduler(config *models.MConfig) *utils.MarketScheduler {
	return utils.NewMarketScheduler(config.DataSource.Exchange, logger.NewLogger(config, "MarketScheduler"))
}

// -----------------------------------------------------------------------------

// setupDataSource wires the Alpha Vantage provider onto the network manager
func setupDataSource(config *models.MConfig) interfaces.IMarketDataProvider {
	networkManager := network.NewNetworkManager(config, logger.NewLogger(config, "NetworkManager"))
	return alphavantage.NewAlphaVantageSource(config, networkManager, logger.NewLogger(config, "AlphaVantage"))
}
