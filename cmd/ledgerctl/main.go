package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/localhy/credit-ledger/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.DefaultOpener).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
