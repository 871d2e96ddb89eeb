package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inventory-suite/product-catalog/internal/http/handlers"
)

// NewRouter wires all routes. Listing, history and categories require any
// authenticated role; every mutating route and the export require "admin".
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handlers.HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/register", handlers.RegisterHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/products", handlers.ListProductsHandler)
		r.Get("/products/categories", handlers.GetCategoriesHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/products/{id}/history", handlers.GetProductHistoryHandler)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole("admin"))

			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
			r.Get("/products/export", handlers.ExportProductsHandler)
		})
	})

	return r
}
