package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/tagwatch/internal/config"
	"github.com/crucial707/tagwatch/internal/metrics"
	"github.com/crucial707/tagwatch/internal/simulator"
	"github.com/crucial707/tagwatch/internal/store"
)

func main() {

	// Load configuration
	cfg := config.Load()

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	// Structured logging, text or JSON per LOG_FORMAT
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// The store owns all state; seeded deterministically so the console
	// shows the same data on every start with the same SEED.
	st := store.New(store.SystemClock{}, store.UUIDGenerator{}, cfg.Seed)
	metrics.SetOpenIncidents(st.OpenIncidentCount())
	slog.Info("store seeded", "seed", cfg.Seed)

	if cfg.SimEnabled {
		sim := simulator.New(st, cfg.SimInterval)
		if err := sim.Start(); err != nil {
			log.Fatalf("Failed to start simulator: %v", err)
		}
		defer sim.Stop()
	}

	r := newRouter(st, cfg)

	// Start server LAST
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		if err := http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r); err != nil {
			log.Fatal(err)
		}
		return
	}
	slog.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
