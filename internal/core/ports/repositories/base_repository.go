package repositories

import (
	"context"
)

// HealthChecker is implemented by adapters that can report whether storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
