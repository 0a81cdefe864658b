package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/temirov/pathstamp/internal/cli"
	"github.com/temirov/pathstamp/internal/services/clipboard"
	"github.com/temirov/pathstamp/internal/utils"
)

// main is the entry point for the pathstamp command.
func main() {
	level := zap.NewAtomicLevel()
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(level)
	if loggerInitializationError != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	executionError := cli.Execute(ctx, cli.Dependencies{
		Logger:    loggerInstance,
		Level:     level,
		Clipboard: clipboard.NewService(),
	}, os.Args[1:])
	stop()
	if executionError != nil {
		_ = loggerInstance.Sync()
		os.Exit(1)
	}
}
