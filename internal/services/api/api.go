// Package api provides the HTTP API for the prioritization engine
package api

import (
	"time"

	"fixqueue/internal/platform/config"
	"fixqueue/internal/platform/logger"
	phttp "fixqueue/internal/platform/net/http"

	"fixqueue/internal/modkit"
	"fixqueue/internal/modkit/httpkit"
	"fixqueue/internal/platform/net/middleware"

	analyticsmod "fixqueue/internal/services/api/analytics/module"
	commsmod "fixqueue/internal/services/api/comms/module"
	inventorymod "fixqueue/internal/services/api/inventory/module"
	prioritymod "fixqueue/internal/services/api/priority/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger

	// Clock overrides "now" for scoring and reminders; nil means wall clock
	Clock func() time.Time
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}

	deps := modkit.Deps{
		Log:   *log,
		Cfg:   opt.Config,
		Clock: opt.Clock,
	}

	// liveness probe at the root, outside the versioned prefix
	r.Use(middleware.Heartbeat("/health"))

	mods := []modkit.Module{
		prioritymod.New(deps),
		analyticsmod.New(deps),
		inventorymod.New(deps),
		commsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
