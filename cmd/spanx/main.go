package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/spanx/internal/runner"
)

func main() {
	cliOpts := runner.ParseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := runner.New(cliOpts)
	if err != nil {
		gologger.Fatal().Msgf("failed to build pattern library got %v", err)
	}
	if err := r.Run(ctx); err != nil {
		gologger.Fatal().Msgf("failed to match input got %v", err)
	}
}
