package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/customers"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/receivables"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	SettingsUC   *settings.SettingsUseCase
	CustomerUC   *customers.CustomerUseCase
	ProductUC    *inventory.ProductUseCase
	MovementUC   *inventory.MovementUseCase
	ExportUC     *inventory.ExportUseCase
	SaleUC       *sales.SaleUseCase
	ReceivableUC *receivables.ReceivableUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: catálogo, movimientos, alertas y exportación
	inv := protected.Group("/inventory")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.ExportUC)
	inv.Get("/", productHandler.List)
	inv.Post("/", productHandler.Create)
	inv.Get("/alerts/low-stock", productHandler.LowStock)
	inv.Get("/movements", inventoryHandler.RecentMovements)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/export", inventoryHandler.Export)
	inv.Put("/:id", productHandler.Update)
	inv.Delete("/:id", productHandler.Delete)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)

	// Cuentas por cobrar
	recv := protected.Group("/receivables")
	receivableHandler := NewReceivableHandler(deps.ReceivableUC)
	recv.Get("/", receivableHandler.List)
	recv.Post("/:id/pay", receivableHandler.MarkPaid)

	// Clientes
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", customerHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Ajustes
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/tenant", RequireRole(entity.RoleOwner, entity.RoleAdmin), settingsHandler.UpdateTenant)
	settingsGroup.Put("/password", settingsHandler.UpdatePassword)
}
