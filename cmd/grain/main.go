package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/grain/internal/buildinfo"
	"github.com/dmitrijs2005/grain/internal/client/cli"
	"github.com/dmitrijs2005/grain/internal/client/config"
	"github.com/dmitrijs2005/grain/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	app, db, err := cli.Build(ctx, cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.Error(ctx, "error starting grain", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	app.Run(ctx)

}
