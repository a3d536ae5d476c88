package health

import "context"

// ReadinessCheck is implemented by dependencies the service cannot serve without.
type ReadinessCheck interface {
	IsReady(ctx context.Context) error
	Name() string
}
