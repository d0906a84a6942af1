package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/piraterna/piratpkg/cmd"
	"github.com/piraterna/piratpkg/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
