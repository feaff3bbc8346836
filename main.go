package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"chesslink/internal/config"
	"chesslink/internal/storage"
	"chesslink/internal/view"
	"chesslink/pkg/client"
)

func main() {
	config.ParseArguments()
	config.SetupLogger()
	defer func() {
		_ = config.Logger.Sync()
	}()

	ctx, quit := context.WithCancel(context.Background())
	defer quit()

	playerStorage := createStorage()
	forwarder := view.NewForwarder(config.Logger.Named("view"))

	options := []client.Option{
		client.WithContext(ctx),
		client.WithLogger(config.Logger.Named("client")),
		client.WithListener(forwarder),
	}
	if playerStorage != nil {
		options = append(options, client.WithPlayerID(playerStorage.PlayerID()))
	}

	c := client.NewClient(options...)
	if c == nil {
		config.Logger.Error("failed to create client")
		os.Exit(1)
	}
	defer c.Shutdown()

	code := view.Run(c, playerStorage, forwarder, config.Logger)
	os.Exit(code)
}

func createStorage() *storage.Storage {
	if config.Anonymous() {
		return nil
	}

	playerStorage, err := storage.NewStorage("", config.Logger.Named("storage"))
	if err != nil {
		config.Logger.Warn("failed to open local storage, continuing anonymous", zap.Error(err))
		return nil
	}
	return playerStorage
}
