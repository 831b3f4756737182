package common

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finlabs/pkg/repository"
	"golang.org/x/sync/singleflight"
)

// Once runs records through fn at most once per key, across invocations
// when the guard is shared (Redis) and within one invocation otherwise.
type Once struct {
	guard    repository.Guard
	inflight singleflight.Group
	logger   *slog.Logger
}

// NewOnce wraps guard. A nil guard disables the check.
func NewOnce(guard repository.Guard, logger *slog.Logger) *Once {
	return &Once{guard: guard, logger: Logger(logger)}
}

// Do calls fn unless key was already processed. When fn fails the key is
// forgotten so the redelivered record is processed again. An empty key
// always runs fn.
func (o *Once) Do(ctx context.Context, key string, fn func(context.Context) error) (skipped bool, err error) {
	if o == nil || o.guard == nil || key == "" {
		return false, fn(ctx)
	}
	log := o.logger.With("idempotency_key", key)

	v, err, _ := o.inflight.Do(key, func() (any, error) {
		seen, err := o.guard.Seen(ctx, key)
		if err != nil {
			// A guard outage must not stop the pipeline.
			log.Warn("Idempotency check failed, processing anyway", "error", err)
			return false, fn(ctx)
		}
		if seen {
			log.Info("🔁 [SKIP] Record already processed")
			return true, nil
		}
		if err := fn(ctx); err != nil {
			if ferr := o.guard.Forget(ctx, key); ferr != nil {
				log.Error("Failed to release idempotency key", "error", ferr)
			}
			return false, err
		}
		return false, nil
	})
	skipped, _ = v.(bool)
	return skipped, err
}
