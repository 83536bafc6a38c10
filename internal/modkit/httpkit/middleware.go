package httpkit

import (
	"net/http"
	"time"

	phttp "fixqueue/internal/platform/net/http"
	"fixqueue/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with the api key middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// APIKey wires the shared-secret middleware to the platform JSON writer
func APIKey(p middleware.KeyPort) func(http.Handler) http.Handler {
	// middleware expects write func(w http.ResponseWriter, status int, body any)
	// use phttp.JSON which matches that signature
	return middleware.APIKey(p, phttp.JSON)
}
