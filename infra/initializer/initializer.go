package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/finlabs/infra"
	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/infra/cache"
	"github.com/amirasaad/finlabs/infra/dynamo"
	infra_eventbus "github.com/amirasaad/finlabs/infra/eventbus"
	infra_repository "github.com/amirasaad/finlabs/infra/repository"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/amirasaad/finlabs/pkg/eventbus"
	"github.com/amirasaad/finlabs/pkg/repository"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
)

// EventFactories lists every event type the buses can decode.
var EventFactories = infra_eventbus.Factories{
	account.EventTypeTransactionPosted: func() eventbus.Event { return &account.TransactionPosted{} },
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	ctx := context.Background()
	logger := SetupLogger(cfg.Log)
	deps := &config.Deps{Logger: logger, Config: cfg}

	accounts, err := initLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger", "source", cfg.DB.Source, "error", err)
		return nil, err
	}
	deps.Accounts = accounts

	bus, err := initEventBus(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.EventBus = bus

	guard, err := InitGuard(cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Guard = guard

	logger.Info("Dependencies initialized",
		"ledger", cfg.DB.Source,
		"event_bus", cfg.EventBus.Driver,
		"guard", cfg.Guard.Driver,
	)
	return deps, nil
}

func initLedger(ctx context.Context, cfg *config.App, logger *slog.Logger) (repository.AccountRepository, error) {
	switch cfg.DB.Source {
	case "", "dynamodb":
		awsCfg, err := infra_aws.Load(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		logger.Debug("Using DynamoDB ledger",
			"accounts", cfg.Dynamo.AccountsTable,
			"transactions", cfg.Dynamo.TransactionsTable,
		)
		return dynamo.NewLedger(
			dynamodb.NewFromConfig(awsCfg),
			cfg.Dynamo.AccountsTable,
			cfg.Dynamo.TransactionsTable,
		), nil
	default:
		db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
		if err != nil {
			return nil, err
		}
		return infra_repository.NewLedger(infra_repository.NewUoW(db)), nil
	}
}

// initEventBus picks the bus by driver. A Redis bus that cannot connect
// falls back to memory so a cache outage does not take the apps down.
func initEventBus(ctx context.Context, cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	switch cfg.EventBus.Driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if cfg.Redis.URL == "" {
			return nil, errors.New("event bus driver redis requires REDIS_URL")
		}
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		bus, err := infra_eventbus.NewWithRedis(ctx, client, cfg.EventBus.Stream, cfg.EventBus.Group, EventFactories, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	case "kafka":
		return infra_eventbus.NewWithKafka(cfg.Kafka.Brokers, cfg.EventBus.Group, cfg.Kafka.TopicPrefix, EventFactories, logger)
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", cfg.EventBus.Driver)
	}
}

// InitGuard builds the replay guard used by the stream handlers.
func InitGuard(cfg *config.App, logger *slog.Logger) (repository.Guard, error) {
	switch cfg.Guard.Driver {
	case "", "memory":
		return cache.NewMemoryGuard(cfg.Guard.TTL), nil
	case "redis":
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisGuard(client, cfg.Redis.KeyPrefix, cfg.Guard.TTL, logger), nil
	default:
		return nil, fmt.Errorf("unknown guard driver %q", cfg.Guard.Driver)
	}
}

func newRedisClient(cfg *config.Redis) (*redis.Client, error) {
	return cache.NewRedisClient(cfg.URL, cfg.PoolSize, cfg.DialTimeout, cfg.ReadTimeout, cfg.WriteTimeout)
}
