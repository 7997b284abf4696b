package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crsc/internal/platform/health"
	"crsc/internal/platform/metrics"
	"crsc/internal/statuscheck/handler"
	request "crsc/pkg/platform/middleware/request"
	"crsc/pkg/platform/middleware/requesttime"
)

// Options carries what the API router needs besides the responder.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Health         *health.Handler
	RequestTimeout time.Duration
	// Clock stamps each request; nil means time.Now.
	Clock func() time.Time
}

// NewRouter wires the public status endpoint with middleware.
func NewRouter(responder handler.Responder, opts Options) http.Handler {
	r := chi.NewRouter()

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	r.Use(request.Recovery(opts.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(requesttime.Clocked(clock))
	r.Use(request.Logger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(request.Latency(opts.Metrics))
	}
	if opts.RequestTimeout > 0 {
		r.Use(request.Timeout(opts.RequestTimeout))
	}

	if opts.Health != nil {
		r.Get("/health", opts.Health.HandleStatus)
	}
	handler.New(responder, opts.Logger).Register(r)

	return r
}

// NewOpsRouter serves metrics and health probes on the internal listener.
func NewOpsRouter(gatherer prometheus.Gatherer, h *health.Handler) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	h.Register(r)
	return r
}
