// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"

	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/services/api/analytics/domain"
	svc "fixqueue/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// duration metrics + correlations + optional recommendations
	httpkit.PostJSON[domain.AnalyzeInput](r, "/", h.analyze)
}

type handlers struct{ svc svc.Service }

func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}
