package main

import (
	"fmt"
	"net"

	"market-climber/src/config"
	pb "market-climber/src/grpc_control"
	"market-climber/src/interfaces"
	"market-climber/src/logger"

	"google.golang.org/grpc"
)

// -----------------------------------------------------------------------------

// startServers orchestrates the startup of all server components. It returns
// the gRPC server, or nil when the control plane is disabled.
func startServers(
	srv interfaces.IDataExchanger,
	dash interfaces.IDashboard,
	config *config.Config,
	configPath string,
	appLogger *logger.Logger,
) *grpc.Server {

	// 1. Dashboard HTTP/WebSocket server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 2. gRPC Control Server
	if config.GrpcPort == 0 {
		appLogger.Info("gRPC control server disabled")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", config.GrpcHost, config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		appLogger.Error("Failed to listen for gRPC on %s: %v", addr, err)
		return nil
	}

	grpcServer := grpc.NewServer()
	controlService := pb.NewControlService(config, dash, configPath, logger.NewLogger(config.MConfig, "ControlService"))
	pb.RegisterControlServer(grpcServer, controlService)

	go func() {
		appLogger.Info("Starting gRPC Control Server on %s", addr)
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server stopped: %v", err)
		}
	}()
	return grpcServer
}
