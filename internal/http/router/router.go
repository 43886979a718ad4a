package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-api/internal/http/handlers"
	"storefront-api/internal/http/middleware"
	"storefront-api/internal/http/middleware/ratelimit"
	"storefront-api/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// The cart endpoints are POST-only; chi answers other verbs with the 405
// handler, the single hard failure the widget ever sees.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	shippingH *handlers.ShippingHandler,
	taxH *handlers.TaxHandler,
	vatH *handlers.VATHandler,
	contactH *handlers.ContactHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(logger))
	r.Use(chimw.Recoverer)
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Post("/shipping-rates", shippingH.Rates)
	r.Post("/taxes", taxH.Taxes)
	r.Post("/validate-vat", vatH.Validate)
	r.Post("/contact", contactH.Submit)

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.NotFound(http.HandlerFunc(h.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(h.MethodNotAllowed))

	return r
}
