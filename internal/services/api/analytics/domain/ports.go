package domain

import "context"

// ServicePort is the service contract the http layer binds to
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeOutput, error)
}
