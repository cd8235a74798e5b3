package failover

import (
	"context"
	"errors"
	"time"
)

// ErrNoEndpoints is returned when Do is called with an empty endpoint list.
var ErrNoEndpoints = errors.New("failover: no endpoints configured")

// Do runs attempt against each endpoint strictly in order, pausing delay
// between attempts. The first success short-circuits the remaining
// endpoints; once every endpoint has failed the last error is returned.
// onFailure, when non-nil, observes each failed attempt.
func Do[T any](
	ctx context.Context,
	endpoints []string,
	delay time.Duration,
	attempt func(ctx context.Context, endpoint string) (T, error),
	onFailure func(endpoint string, err error),
) (T, error) {
	var zero T
	if len(endpoints) == 0 {
		return zero, ErrNoEndpoints
	}

	var lastErr error
	for i, endpoint := range endpoints {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := attempt(ctx, endpoint)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if onFailure != nil {
			onFailure(endpoint, err)
		}
		lastErr = err
	}
	return zero, lastErr
}
