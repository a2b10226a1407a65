package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rentflow/app"
	"rentflow/config"
	"rentflow/utils"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		_ = a.Shutdown(context.Background())
		utils.GetLogger().Fatal("main: init failed", zap.Error(err))
	}

	runErr := a.Run(ctx)
	if runErr != nil {
		utils.GetLogger().Error("main: server stopped with error", zap.Error(runErr))
	}
	if err := a.Shutdown(context.Background()); err != nil {
		utils.GetLogger().Error("main: shutdown failed", zap.Error(err))
	}
	if runErr != nil {
		os.Exit(1)
	}
}
