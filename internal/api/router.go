package api

import (
	"net/http"

	"dock-allocation-service/internal/api/handlers"
	"dock-allocation-service/internal/ports"
	"dock-allocation-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Runner   handlers.AllocationRunner
	Reports  ports.ReportRepository
	Defaults services.RunAllocationRequest
	// Metrics source for /metrics; the default gatherer when nil.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	allocHandler := &handlers.AllocationHandler{
		Runner:   d.Runner,
		Reports:  d.Reports,
		Defaults: d.Defaults,
	}

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/allocations", allocHandler.Collection)
	mux.HandleFunc("/allocations/{run_id}", allocHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return loggingMiddleware(d.Logger, mux)
}
