package domain

import "context"

// ServicePort is the service contract the http layer binds to
type ServicePort interface {
	Send(ctx context.Context, in SendInput) (SendOutput, error)
	Remind(ctx context.Context, in RemindInput) (RemindOutput, error)
	List(ctx context.Context) (ListOutput, error)
}
