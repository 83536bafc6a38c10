// Package http provides http transport for the priority queue
package http

import (
	stdhttp "net/http"

	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/services/api/priority/domain"
	svc "fixqueue/internal/services/api/priority/service"
)

// Register mounts priority endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// set config and/or queue, respond with the ranking
	httpkit.PostJSON[domain.UpdateInput](r, "/", h.update)

	// read the current ranking
	httpkit.Get(r, "/", h.queue)
}

type handlers struct{ svc svc.Service }

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), in)
}

func (h *handlers) queue(r *stdhttp.Request) (any, error) {
	return h.svc.Queue(r.Context())
}
