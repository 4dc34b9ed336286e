package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/api-gateway/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(r chi.Router) {
		r.Use(middlewares.Identity)

		r.Post("/orders", handler.PlaceOrder)
		r.Get("/orders", handler.ListOrders)
		r.Get("/orders/{id}", handler.GetOrder)
		r.Get("/checkout/estimate", handler.EstimateDelivery)
		r.Get("/products/{pid}/stock", handler.TotalStock)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handler.GetCart)
			r.Delete("/", handler.ClearCart)
			r.Post("/items", handler.AddCartItem)
			r.Delete("/items/{pid}", handler.RemoveCartItem)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.RequirePrivileged)
			r.Get("/orders", handler.ListAllOrders)
			r.Post("/warehouses/{wid}/stock", handler.AddStock)
			r.Put("/warehouses/{wid}/stock/{pid}", handler.SetStock)
			r.Delete("/warehouses/{wid}/stock/{pid}", handler.RemoveStock)
		})
	})
	return r
}
