package initializer

import (
	"context"
	"fmt"
	"log/slog"

	infra_aws "github.com/amirasaad/finlabs/infra/aws"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
)

// Runtime is the cold-start state shared by the Lambda entrypoints.
type Runtime struct {
	Config *config.App
	Logger *slog.Logger
	AWS    sdkaws.Config
}

// InitializeLambda loads the configuration from the environment, installs
// the logger and resolves AWS credentials.
func InitializeLambda(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := SetupLogger(cfg.Log)
	awsCfg, err := infra_aws.Load(ctx, cfg.AWS)
	if err != nil {
		logger.Error("Failed to load AWS configuration", "error", err)
		return nil, err
	}
	return &Runtime{Config: cfg, Logger: logger, AWS: awsCfg}, nil
}

// Once returns the replay guard for stream handlers. When the configured
// guard cannot be built the handler runs without one.
func (r *Runtime) Once() *common.Once {
	guard, err := InitGuard(r.Config, r.Logger)
	if err != nil {
		r.Logger.Warn("Idempotency guard unavailable, records will not be deduplicated", "error", err)
		return nil
	}
	return common.NewOnce(guard, r.Logger)
}
