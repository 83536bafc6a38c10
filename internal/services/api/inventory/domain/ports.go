package domain

import "context"

// ServicePort is the service contract the http layer binds to
type ServicePort interface {
	Sync(ctx context.Context, in SyncInput) (SyncOutput, error)
	Alerts(ctx context.Context, in AlertsInput) (AlertsOutput, error)
}
