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
	"market-climber/src/data_source/alphavantage"
	"market-climber/src/logger"
	"market-climber/src/network"
	"market-climber/src/tui"
	"market-climber/src/utils"
)

func main() {
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	logPath := flag.String("log", "market-climber.log", "log file (the terminal is taken by the UI)")
	flag.Parse()

	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	appLogger := logger.NewLogger(conf.MConfig, conf.Name).WithOutput(logFile)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Market data provider and exchange calendar
	networkManager := network.NewNetworkManager(conf.MConfig, appLogger.Named("NetworkManager"))
	source := alphavantage.NewAlphaVantageSource(conf.MConfig, networkManager, appLogger.Named("AlphaVantage"))
	scheduler := utils.NewMarketScheduler(conf.DataSource.Exchange, appLogger.Named("MarketScheduler"))

	// 2. Poller feeding the UI
	poller := dashboard.NewPoller(conf.MConfig, source, scheduler, appLogger.Named("Poller"))
	publisher := tui.NewStatePublisher()
	poller.AddPublisher(publisher)

	model := tui.NewModel(poller, publisher, conf.MConfig)
	model.Location = scheduler.Location()

	// 3. Start polling in background
	var wg sync.WaitGroup
	if err := poller.Start(ctx, &wg); err != nil {
		appLogger.Critical("Failed to start poller: %v", err)
	}

	// 4. Start UI
	appLogger.Info("Starting terminal UI...")
	if err := tui.Run(ctx, model); err != nil {
		appLogger.Error("UI error: %v", err)
	}

	cancel()
	wg.Wait()
	appLogger.Info("Application shut down successfully")
}
