package config

import (
	"log/slog"

	"github.com/amirasaad/finlabs/pkg/eventbus"
	"github.com/amirasaad/finlabs/pkg/repository"
)

// Deps holds the infrastructure the banking apps are built from.
type Deps struct {
	Accounts repository.AccountRepository
	EventBus eventbus.Bus
	Guard    repository.Guard
	Logger   *slog.Logger
	Config   *App
}
