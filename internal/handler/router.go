package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	custommiddleware "github.com/mmeshcher/gamestore/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware магазина.
// Пустой corsOrigin отключает CORS.
func (h *Handler) SetupRouter(corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	if corsOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{corsOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Encoding"},
			AllowCredentials: true,
			MaxAge:           int((5 * time.Minute).Seconds()),
		}))
	}
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/session", h.Session)
		})

		r.Get("/games", h.ListGames)
		r.Get("/games/{id}", h.GetGame)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/cart", h.GetCart)
			r.Post("/cart/{gameID}", h.AddToCart)
			r.Patch("/cart/{gameID}", h.ChangeQty)
			r.Delete("/cart/{gameID}", h.RemoveFromCart)

			r.Post("/payment/validate", h.ValidatePayment)
			r.Post("/checkout", h.Checkout)

			r.Get("/orders", h.GetOrders)
			r.Get("/orders/last-success", h.ConsumeLastSuccess)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
