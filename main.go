package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"finance-insights/app"
	"finance-insights/config"
)

func main() {
	// Load config from .env file
	cfg := config.LoadFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
