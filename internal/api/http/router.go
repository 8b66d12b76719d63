package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/http/handlers"
	"github.com/spec-kit/pos-service/internal/security"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Gate           *security.Gate
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Images         *handlers.ImagesHandler
	Categories     *handlers.CategoriesHandler
	Suppliers      *handlers.SuppliersHandler
	Sales          *handlers.SalesHandler
	Expenses       *handlers.ExpensesHandler
	PurchaseOrders *handlers.PurchaseOrdersHandler
	Loans          *handlers.LoansHandler
	BorrowedItems  *handlers.BorrowedItemsHandler
	Users          *handlers.UsersHandler
	Settings       *handlers.SettingsHandler
	Reports        *handlers.ReportsHandler
}

// RegisterRoutes wires HTTP routes. Every /api route passes through the
// security gate; health probes stay outside it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Gate.Handle)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)

	api.Get("/products", cfg.Products.List)
	api.Post("/products", cfg.Products.Create)
	api.Post("/products/bulk", cfg.Products.CreateBulk)
	api.Put("/products/:id", cfg.Products.Update)
	api.Delete("/products/:id", cfg.Products.Delete)
	api.Post("/products/image", cfg.Products.UploadImage)
	api.Delete("/products/image", cfg.Products.DeleteImage)

	api.Get("/images/:filename", cfg.Images.Serve)

	api.Get("/categories", cfg.Categories.List)
	api.Post("/categories", cfg.Categories.Create)
	api.Put("/categories/:id", cfg.Categories.Update)
	api.Delete("/categories/:id", cfg.Categories.Delete)

	api.Get("/suppliers", cfg.Suppliers.List)
	api.Post("/suppliers", cfg.Suppliers.Create)
	api.Get("/suppliers/:id", cfg.Suppliers.Get)
	api.Put("/suppliers/:id", cfg.Suppliers.Update)
	api.Delete("/suppliers/:id", cfg.Suppliers.Delete)

	api.Get("/sales", cfg.Sales.List)
	api.Post("/sales", cfg.Sales.Create)

	api.Get("/expenses", cfg.Expenses.List)
	api.Post("/expenses", cfg.Expenses.Create)
	api.Put("/expenses/:id", cfg.Expenses.Update)
	api.Delete("/expenses/:id", cfg.Expenses.Delete)

	api.Get("/purchase-orders", cfg.PurchaseOrders.List)
	api.Post("/purchase-orders", cfg.PurchaseOrders.Create)
	api.Get("/purchase-orders/:id", cfg.PurchaseOrders.Get)
	api.Put("/purchase-orders/:id", cfg.PurchaseOrders.Update)
	api.Delete("/purchase-orders/:id", cfg.PurchaseOrders.Delete)
	api.Post("/purchase-orders/:id/receive", cfg.PurchaseOrders.Receive)

	api.Get("/loans", cfg.Loans.List)
	api.Post("/loans", cfg.Loans.Create)
	api.Put("/loans/:id", cfg.Loans.Update)
	api.Post("/loans/:id/return", cfg.Loans.Return)

	api.Get("/borrowed-items", cfg.BorrowedItems.List)
	api.Post("/borrowed-items", cfg.BorrowedItems.Create)
	api.Put("/borrowed-items/:id", cfg.BorrowedItems.Update)
	api.Delete("/borrowed-items/:id", cfg.BorrowedItems.Delete)

	api.Get("/users", cfg.Users.List)
	api.Post("/users", cfg.Users.Create)
	api.Put("/users/:id", cfg.Users.Update)
	api.Delete("/users/:id", cfg.Users.Delete)

	api.Get("/settings", cfg.Settings.Get)
	api.Put("/settings", cfg.Settings.Update)

	api.Get("/reports/summary", cfg.Reports.Summary)
}
