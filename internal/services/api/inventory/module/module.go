// Package module wires inventory sync into the API using modkit
package module

import (
	stdhttp "net/http"

	modkit "fixqueue/internal/modkit"
	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/platform/net/middleware"
	str "fixqueue/internal/platform/strings"
	inventoryhttp "fixqueue/internal/services/api/inventory/http"
	inventorysvc "fixqueue/internal/services/api/inventory/service"
)

// Module implements the inventory module. It owns two route groups: the
// reservation walk under /repairs/inventory and the protected reorder scan
// under /inventory/alerts
type Module struct {
	deps modkit.Deps
	name string

	mws []func(stdhttp.Handler) stdhttp.Handler
	svc inventorysvc.Service

	// alert endpoint shared-secret; empty means the endpoint is open
	keySecret string
}

// New constructs the inventory module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("inventory")}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		mws:       b.Mw,
		svc:       inventorysvc.New(deps),
		keySecret: deps.Cfg.MayString("PRIORITIZATION_API_KEY", ""),
	}
	return m
}

// MountRoutes mounts both route groups on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route("/repairs/inventory", func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		inventoryhttp.RegisterSync(rr, m.svc)
	})

	r.Route("/inventory/alerts", func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		rr.Use(httpkit.APIKey(middleware.HeaderKey{
			Header: "X-Api-Key",
			Secret: m.keySecret,
		}))
		inventoryhttp.RegisterAlerts(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
