package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketshoes/cart-service-go/internal/middleware"
)

func NewRouter(h *CartHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CorrelationID)

	r.Get("/health", h.Health)

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productId}", h.UpdateItemAmount)
		r.Delete("/items/{productId}", h.RemoveItem)
	})

	return r
}
