package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

type Deps struct {
	Handler  *Handler
	Webhooks *WebhookHandler
	// Gatherer backs GET /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.AccessLog(logger))

	r.Get("/health", d.Handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Post("/api/requests", d.Handler.CreateRequest)

	if d.Webhooks != nil {
		r.Post("/telegram", d.Webhooks.Telegram)
		r.Get("/whatsapp", d.Webhooks.WhatsAppVerify)
		r.Post("/whatsapp", d.Webhooks.WhatsApp)
	}

	return r
}
