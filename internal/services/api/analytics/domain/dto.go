// Package domain holds DTOs for the analytics http and service contracts
package domain

import (
	"fixqueue/internal/core/analytics"
	"fixqueue/internal/core/repair"
)

// AnalyzeInput is the historical repair set plus an optional free-text issue
// to match recommendations against
type AnalyzeInput struct {
	Repairs   []repair.Order `json:"repairs" validate:"required"`
	IssueText string         `json:"issueText,omitempty" validate:"omitempty,max=2000"`
}

// AnalyzeOutput bundles the three analytics products of one pass
type AnalyzeOutput struct {
	Metrics         map[string]analytics.DurationStats `json:"metrics"`
	Correlations    []analytics.Correlation            `json:"correlations"`
	Recommendations []analytics.Recommendation         `json:"recommendations"`
}
