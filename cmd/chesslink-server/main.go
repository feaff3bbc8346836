package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"chesslink/internal/config"
	"chesslink/internal/server"
	"chesslink/internal/version"
)

func main() {
	config.ParseArguments()
	config.SetupServerLogger()
	logger := config.Logger
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("chesslink server", zap.String("version", version.Version()))

	analytics := server.NewAnalytics(config.KafkaBrokers(), config.KafkaTopic(), logger.Named("analytics"))

	s := server.New(
		server.WithLogger(logger),
		server.WithServerAnalytics(analytics),
	)

	address := fmt.Sprintf(":%d", listenPort(logger))
	if err := s.Listen(address); err != nil {
		logger.Fatal("failed to listen", zap.String("address", address), zap.Error(err))
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-interrupt
		logger.Info("signal received", zap.String("signal", sig.String()))
		s.Stop()
	}()

	if err := s.Serve(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// listenPort takes the port from the first positional argument, keeping
// the default when the argument is missing or not a number.
func listenPort(logger *zap.Logger) int {
	arg := flag.Arg(0)
	if arg == "" {
		return config.DefaultServerPort
	}

	port, err := strconv.Atoi(arg)
	if err != nil || port <= 0 || port > 65535 {
		logger.Warn("invalid port argument, using default",
			zap.String("argument", arg),
			zap.Int("default", config.DefaultServerPort),
		)
		return config.DefaultServerPort
	}
	return port
}
