package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/foliage-shop/internal/handler/middleware"
	"github.com/nikolayk812/foliage-shop/internal/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter mounts the storefront routes. Pages and actions get a visitor id, infrastructure routes do not.
func NewRouter(h *Handler, cookie middleware.CookieOptions, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimw.Recoverer)

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Visitor(cookie))

		r.Get("/", h.Index)
		r.Get("/products/{slug}", h.Product)
		r.Get("/cart", h.Cart)

		r.Post("/cart/items", h.AddItem)
		r.Post("/cart/items/{id}/delete", h.RemoveItem)
		r.Post("/cart/positions/{position}/delete", h.RemoveAt)
		r.Post("/checkout", h.Checkout)
		r.Post("/language", h.Language)
		r.Post("/questions", h.Question)
	})

	return r
}
