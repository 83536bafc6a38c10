// Package http provides http transport for communications
package http

import (
	stdhttp "net/http"

	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/services/api/comms/domain"
	svc "fixqueue/internal/services/api/comms/service"
)

// Register mounts communications endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// send one message now
	httpkit.PostJSON[domain.SendInput](r, "/", h.send)

	// the full message log
	httpkit.Get(r, "/", h.list)

	// one reminder evaluation pass
	httpkit.PostJSON[domain.RemindInput](r, "/reminders", h.remind)
}

type handlers struct{ svc svc.Service }

func (h *handlers) send(r *stdhttp.Request, in domain.SendInput) (any, error) {
	return h.svc.Send(r.Context(), in)
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) remind(r *stdhttp.Request, in domain.RemindInput) (any, error) {
	return h.svc.Remind(r.Context(), in)
}
