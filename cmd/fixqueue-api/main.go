package main

import (
	"context"

	"fixqueue/internal/platform/config"
	"fixqueue/internal/platform/logger"
	phttp "fixqueue/internal/platform/net/http"

	"fixqueue/internal/services/api"
)

func main() {
	// root config; modules read ENGINE_* and PRIORITIZATION_API_KEY off it
	root := config.New()

	// service-scoped config for HTTP (CORE_API_PORT / CORE_API_ADDR)
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config: root,
		Logger: l,
	})

	l.Info().Str("addr", srv.Addr()).Msg("prioritization api starting")

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
