// Package service contains the analytics workflows
package service

import (
	"context"

	"fixqueue/internal/core/analytics"
	"fixqueue/internal/modkit"

	"fixqueue/internal/services/api/analytics/domain"
)

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service. Stateless: every call computes over
// the collections in the request
type Svc struct {
	limit int
}

// New constructs the analytics service. ENGINE_RECOMMEND_LIMIT caps the
// diagnosis shortlist length
func New(deps modkit.Deps) *Svc {
	return &Svc{
		limit: deps.Cfg.Prefix("ENGINE_").MayInt("RECOMMEND_LIMIT", analytics.DefaultRecommendLimit),
	}
}

// Analyze runs duration estimation, symptom correlation, and (when issue
// text is present) diagnosis recommendation over the supplied history
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error) {
	return domain.AnalyzeOutput{
		Metrics:         analytics.EstimateDurations(in.Repairs),
		Correlations:    analytics.CorrelateSymptoms(in.Repairs),
		Recommendations: analytics.RecommendDiagnosis(in.Repairs, in.IssueText, s.limit),
	}, nil
}
