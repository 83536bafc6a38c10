// Package http provides http transport for inventory sync and alerts
package http

import (
	stdhttp "net/http"

	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/services/api/inventory/domain"
	svc "fixqueue/internal/services/api/inventory/service"
)

// RegisterSync mounts the reservation walk endpoint
func RegisterSync(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SyncInput](r, "/", h.sync)
}

// RegisterAlerts mounts the standalone reorder scan endpoint. Callers put
// the shared-secret middleware in front of this group
func RegisterAlerts(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AlertsInput](r, "/", h.alerts)
}

type handlers struct{ svc svc.Service }

func (h *handlers) sync(r *stdhttp.Request, in domain.SyncInput) (any, error) {
	return h.svc.Sync(r.Context(), in)
}

func (h *handlers) alerts(r *stdhttp.Request, in domain.AlertsInput) (any, error) {
	return h.svc.Alerts(r.Context(), in)
}
