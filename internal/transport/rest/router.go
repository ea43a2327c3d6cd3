package rest

import "net/http"

// NewRouter registers the public routes: the resolution endpoint and the
// health probes. Middleware is layered on top by the caller.
func NewRouter(resolveHandler *ResolveHandler, healthHandler *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /q/{slug}", resolveHandler.Resolve)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	return mux
}
