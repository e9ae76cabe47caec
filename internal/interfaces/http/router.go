package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/auth"
	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/documents"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/application/purchasing"
	"github.com/jhoicas/textil-erp/internal/application/sales"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MaterialUC   *catalog.MaterialUseCase
	ProductUC    *catalog.ProductUseCase
	SupplierUC   *catalog.SupplierUseCase
	CustomerUC   *catalog.CustomerUseCase
	Ledger       *inventory.Ledger
	PurchaseUC   *purchasing.UseCase
	SalesUC      *sales.UseCase
	ProductionUC *production.UseCase
	DocumentsUC  *documents.UseCase
	JWTSecret    string
	Log          zerolog.Logger

	// MetricsHandler se monta en /metrics si no es nil.
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log

	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Materials
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, log)
	inventoryHandler := NewInventoryHandler(deps.Ledger, log)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Get("/:id/ledger-check", inventoryHandler.LedgerCheck)
	materials.Post("/", catalogWrite, materialHandler.Create)
	materials.Put("/:id", catalogWrite, materialHandler.Update)
	materials.Delete("/:id", catalogWrite, materialHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Delete("/:id", catalogWrite, productHandler.Delete)

	// Suppliers / Customers
	partyHandler := NewPartyHandler(deps.SupplierUC, deps.CustomerUC, log)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", partyHandler.ListSuppliers)
	suppliers.Get("/:id", partyHandler.GetSupplier)
	suppliers.Post("/", catalogWrite, partyHandler.CreateSupplier)
	customers := protected.Group("/customers")
	customers.Get("/", partyHandler.ListCustomers)
	customers.Get("/:id", partyHandler.GetCustomer)
	customers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVendedor), partyHandler.CreateCustomer)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", catalogWrite, inventoryHandler.CreateMovement)

	// Purchase orders
	purchases := protected.Group("/purchase-orders", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC, log)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Patch("/:id/status", purchaseHandler.UpdateStatus)
	docHandler := NewDocumentHandler(deps.DocumentsUC, log)
	purchases.Get("/:id/pdf", docHandler.PurchaseOrderPDF)

	// Sales orders
	salesGroup := protected.Group("/sales-orders", RequireRole(entity.RoleAdmin, entity.RoleVendedor))
	salesHandler := NewSalesOrderHandler(deps.SalesUC, log)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.Get)
	salesGroup.Put("/:id", salesHandler.Update)
	salesGroup.Delete("/:id", salesHandler.Delete)
	salesGroup.Patch("/:id/status", salesHandler.UpdateStatus)
	salesGroup.Get("/:id/pdf", docHandler.SalesOrderPDF)

	// Production orders
	prod := protected.Group("/production-orders", RequireRole(entity.RoleAdmin, entity.RoleProduccion))
	prodHandler := NewProductionOrderHandler(deps.ProductionUC, log)
	prod.Post("/", prodHandler.Create)
	prod.Get("/", prodHandler.List)
	prod.Get("/:id", prodHandler.Get)
	prod.Put("/:id", prodHandler.Update)
	prod.Delete("/:id", prodHandler.Delete)
	prod.Patch("/:id/status", prodHandler.UpdateStatus)
}
