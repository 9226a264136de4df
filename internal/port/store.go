package port

import "context"

type Store interface {
	// Get returns the value under key, found is false when the key was never set
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set replaces the value under key
	Set(ctx context.Context, key, value string) error
}

// HealthChecker is implemented by stores backed by an external service.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
