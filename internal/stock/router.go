package stock

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health)

	r.Get("/products/{productId}", h.GetProduct)
	r.Get("/stock/{productId}", h.GetStock)
	r.Post("/stock/adjust", h.Adjust)

	return r
}
