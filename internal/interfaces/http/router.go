package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/facturas-api/internal/application/auth"
	"github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC        *billing.ClientUseCase
	ProductUC       *usecase.ProductUseCase
	CatalogUC       *billing.CatalogUseCase
	GenerateInvoice *billing.GenerateInvoiceUseCase
	InvoiceQuery    *billing.InvoiceQueryUseCase
	ExportUC        *billing.ExportUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Billing (protegido): catálogo de la pantalla de nueva factura
	invoiceHandler := NewInvoiceHandler(deps.GenerateInvoice, deps.InvoiceQuery, deps.ExportUC, deps.CatalogUC)
	protected.Get("/billing/catalog", invoiceHandler.Catalog)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Get("/:id/xml", invoiceHandler.GetXML)
}
