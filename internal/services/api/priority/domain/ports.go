package domain

import "context"

// ServicePort is the service contract the http layer binds to
type ServicePort interface {
	// Update applies overrides from in, re-ranks, and returns the snapshot
	Update(ctx context.Context, in UpdateInput) (QueueOutput, error)

	// Queue returns the current ranking without mutating anything
	Queue(ctx context.Context) (QueueOutput, error)
}
