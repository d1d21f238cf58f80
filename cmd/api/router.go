package main

import (
	"net/http"

	"github.com/crucial707/tagwatch/internal/config"
	"github.com/crucial707/tagwatch/internal/handlers"
	"github.com/crucial707/tagwatch/internal/middleware"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the full middleware chain and routes. Split out from main
// so tests can run the whole API against an httptest server.
func newRouter(st *store.Store, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	assetH := &handlers.AssetHandler{Store: st}
	scanH := &handlers.ScanHandler{Store: st}
	incidentH := &handlers.IncidentHandler{Store: st}
	auditH := &handlers.AuditHandler{Store: st}

	limiter := middleware.MutationRateLimiter(cfg.RateLimitPerMin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithIdentity([]byte(cfg.JWTSecret)))
		r.Use(middleware.RequestLog)

		r.Get("/assets", assetH.ListAssets)
		r.Get("/assets/{id}", assetH.GetAsset)
		r.Get("/audit", auditH.ListAudit)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

			r.Post("/scans", scanH.CreateScan)
			r.Post("/incidents", incidentH.CreateIncident)
			r.Post("/incidents/{assetID}/resolve", incidentH.ResolveIncident)
		})
	})

	return r
}
