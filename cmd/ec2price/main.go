package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelfederation/ec2-price-compare/cmd/ec2price/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := app.NewRootCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
