package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/application/payment"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC    *ordering.OrderUseCase
	PaymentUC  *payment.UseCase
	PurchaseUC *inventory.PurchaseUseCase
	LowStockUC *inventory.LowStockUseCase
	JournalUC  *inventory.JournalUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(entity.RoleAdmin, entity.RoleCashier, entity.RoleCook, entity.RoleDelivery)
	cashier := RequireRole(entity.RoleAdmin, entity.RoleCashier)
	kitchen := RequireRole(entity.RoleAdmin, entity.RoleCashier, entity.RoleCook)
	admin := RequireRole(entity.RoleAdmin)

	// Pedidos
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PaymentUC, deps.JournalUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", staff, orderHandler.ListByStatus)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", staff, orderHandler.UpdateStatus)
	orders.Put("/:id/delay", kitchen, orderHandler.AddDelay)
	orders.Post("/:id/credit-note", cashier, orderHandler.CreditNote)
	orders.Get("/:id/movements", cashier, orderHandler.Movements)

	// Cobros
	orders.Post("/:id/payments/cash", cashier, orderHandler.PayCash)
	orders.Post("/:id/payments/mercadopago", orderHandler.StartMercadoPago)
	orders.Post("/:id/payments/confirm", cashier, orderHandler.ConfirmMercadoPago)

	// Inventario
	inv := api.Group("/inventory", admin)
	inventoryHandler := NewInventoryHandler(deps.PurchaseUC, deps.LowStockUC, deps.JournalUC)
	inv.Post("/items/:id/purchases", inventoryHandler.RegisterPurchase)
	inv.Get("/items/:id/movements", inventoryHandler.ItemMovements)
	inv.Get("/low-stock", inventoryHandler.GetLowStock)
}
