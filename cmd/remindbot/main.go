package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"remindbot/internal/app"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine, the environment may be set by the supervisor.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
