package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/amirasaad/finlabs/infra/initializer"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/webapi"
	accountweb "github.com/amirasaad/finlabs/webapi/account"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return webapi.Serve(ctx, deps, accountweb.VariantDeposit)
}
