package webapi

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/finlabs/pkg/config"
	accountweb "github.com/amirasaad/finlabs/webapi/account"
)

// shutdownTimeout bounds how long in-flight requests get after ctx is done.
const shutdownTimeout = 10 * time.Second

// Serve runs the variant app until ctx is cancelled or the listener fails.
func Serve(ctx context.Context, deps *config.Deps, variant accountweb.Variant) error {
	cfg := deps.Config
	app := SetupApp(deps, variant)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	deps.Logger.Info("Starting server",
		"variant", variant,
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		deps.Logger.Info("Shutting down server", "variant", variant)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
