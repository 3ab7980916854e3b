package retry_utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

var initialInterval = 2 * time.Second

// Do runs op with exponential backoff until it succeeds, the attempt budget
// is spent, ctx is done, or op fails with a permanent HTTP status (400, 401,
// 403). Retries stay invisible to the caller except as latency.
func Do[T any](ctx context.Context, logger outbound.LoggerPort, label string, maxAttempts int, op func() (T, error)) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval

	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		result, err := op()
		if err == nil {
			return result, nil
		}
		if domain.IsPermanentStatus(err) {
			logger.WarnWithFields("Permanent failure, not retrying", map[string]interface{}{
				"call":    label,
				"attempt": attempt,
				"error":   err.Error(),
			})
			return result, backoff.Permanent(err)
		}
		if attempt >= maxAttempts {
			return result, backoff.Permanent(err)
		}
		logger.WarnWithFields("Transient failure, retrying", map[string]interface{}{
			"call":    label,
			"attempt": attempt,
			"error":   err.Error(),
		})
		return result, err
	}

	return backoff.RetryWithData(wrapped, backoff.WithContext(policy, ctx))
}
