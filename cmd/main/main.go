package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"market-climber/src/config"
	"market-climber/src/dashboard"
	"market-climber/src/logger"
	"market-climber/src/server"
)

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	if !conf.HasAPIKey() {
		appLogger.Warning("No API key found (set %s); the dashboard will show reference data", conf.DataSource.APIKeyEnv)
	}

	// Lifecycle Management
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Setup Components
	watchlist := setupWatchlist(ctx, conf.MConfig, appLogger)
	scheduler := setupScheduler(conf.MConfig)
	source := setupDataSource(conf.MConfig)

	poller := dashboard.NewPoller(conf.MConfig, source, scheduler, logger.NewLogger(conf.MConfig, "Poller"))
	srv := server.NewDashboardServer(conf.MConfig, poller, watchlist, scheduler, logger.NewLogger(conf.MConfig, "DashboardServer"))
	poller.AddPublisher(srv)

	// 5. Start Servers
	grpcServer := startServers(srv, poller, conf, *configPath, appLogger)

	// 6. Start the poll loop
	var wg sync.WaitGroup
	if err := poller.Start(ctx, &wg); err != nil {
		appLogger.Critical("Failed to start poller: %v", err)
	}
	appLogger.Info("Dashboard running on http://%s:%d", conf.Host, conf.Port)

	// 7. Wait for shutdown
	<-ctx.Done()
	appLogger.Info("Shutting down...")

	if err := srv.Stop(); err != nil {
		appLogger.Error("Server shutdown: %v", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	wg.Wait()
	if watchlist != nil {
		watchlist.Close()
	}
	appLogger.Info("Shutdown complete.")
}
