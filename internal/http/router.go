package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/pos-register/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// Auth endpoints are rate limited per client to slow brute forcing.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	// Read-only surface.
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.FilterProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/customers", handlers.GetCustomersHandler)
	r.Get("/customers/{id}", handlers.GetCustomerByIDHandler)
	r.Get("/customers/{id}/payments", handlers.GetPaymentsHandler)
	r.Get("/sales", handlers.GetSalesHandler)
	r.Get("/sales/export", handlers.ExportSalesHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Operator actions require a token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/restock", handlers.RestockProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)

		r.Post("/customers", handlers.CreateCustomerHandler)
		r.Put("/customers/{id}", handlers.UpdateCustomerHandler)
		r.Post("/customers/{id}/payments", handlers.RecordPaymentHandler)

		r.Post("/carts", handlers.CreateCartHandler)
		r.Get("/carts/{id}", handlers.GetCartHandler)
		r.Post("/carts/{id}/items", handlers.AddCartItemHandler)
		r.Delete("/carts/{id}/items", handlers.ClearCartHandler)
		r.Post("/carts/{id}/checkout", handlers.CheckoutHandler)

		r.Post("/admin/users", handlers.RegisterAsAdminHandler)
	})

	return r
}
