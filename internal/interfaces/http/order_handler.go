package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/application/payment"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// statusTargetsByRole estados que cada rol operativo puede fijar. Administrador y cajero no tienen restricción.
var statusTargetsByRole = map[string][]entity.OrderStatus{
	entity.RoleCook:     {entity.OrderStatusInKitchen, entity.OrderStatusReady},
	entity.RoleDelivery: {entity.OrderStatusInDelivery, entity.OrderStatusDelivered},
}

func canSetStatus(role string, status entity.OrderStatus) bool {
	if role == entity.RoleAdmin || role == entity.RoleCashier {
		return true
	}
	for _, s := range statusTargetsByRole[role] {
		if s == status {
			return true
		}
	}
	return false
}

// OrderHandler maneja las peticiones HTTP de pedidos y cobros (protegido).
type OrderHandler struct {
	orders   *ordering.OrderUseCase
	payments *payment.UseCase
	journal  *inventory.JournalUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *ordering.OrderUseCase, payments *payment.UseCase, journal *inventory.JournalUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments, journal: journal}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Valida, reserva stock y persiste el pedido en estado a_confirmar.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "clave de reenvío"
// @Param        body             body    dto.CreateOrderRequest  true   "líneas, promociones, entrega y pago"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.IdempotencyKey = c.Get("Idempotency-Key")
	order, err := h.orders.CreateOrder(c.Context(), userID, GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	// Un cliente solo ve sus propios pedidos.
	if GetRole(c) == entity.RoleClient && order.UserID != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.JSON(order)
}

// ListByStatus godoc
// @Summary      Listar pedidos por estado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true   "a_confirmar | en_cocina | listo | en_delivery | entregado | facturado"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListByStatus(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	list, err := h.orders.ListByStatus(c.Context(), entity.OrderStatus(c.Query("status")), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Cocinero: en_cocina, listo. Delivery: en_delivery, entregado. Administrador y cajero: cualquiera permitido por la máquina de estados.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "id del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "nuevo estado"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status := entity.OrderStatus(in.Status)
	if !canSetStatus(GetRole(c), status) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no puede fijar el estado " + in.Status})
	}
	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// AddDelay godoc
// @Summary      Sumar demora al tiempo estimado
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "id del pedido"
// @Param        body  body  dto.AddDelayRequest  true  "minutos (> 0)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delay [put]
func (h *OrderHandler) AddDelay(c *fiber.Ctx) error {
	var in dto.AddDelayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.AddDelay(c.Context(), c.Params("id"), in.Minutes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// CreditNote godoc
// @Summary      Nota de crédito
// @Description  Restituye al stock lo consumido por el pedido. Solo una vez por pedido.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/credit-note [post]
func (h *OrderHandler) CreditNote(c *fiber.Ctx) error {
	order, err := h.orders.ReverseForCreditNote(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// Movements godoc
// @Summary      Asientos de stock del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "id del pedido"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/orders/{id}/movements [get]
func (h *OrderHandler) Movements(c *fiber.Ctx) error {
	list, err := h.journal.ByTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// PayCash godoc
// @Summary      Registrar pago en efectivo
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments/cash [post]
func (h *OrderHandler) PayCash(c *fiber.Ctx) error {
	order, err := h.payments.ProcessCashPayment(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// StartMercadoPago godoc
// @Summary      Iniciar pago con Mercado Pago
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del pedido"
// @Success      200  {object}  dto.PaymentStartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments/mercadopago [post]
func (h *OrderHandler) StartMercadoPago(c *fiber.Ctx) error {
	if GetRole(c) == entity.RoleClient {
		order, err := h.orders.GetOrder(c.Context(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		if order.UserID != GetUserID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
	}
	resp, err := h.payments.StartMercadoPagoPayment(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ConfirmMercadoPago godoc
// @Summary      Confirmar pago con Mercado Pago
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "id del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments/confirm [post]
func (h *OrderHandler) ConfirmMercadoPago(c *fiber.Ctx) error {
	order, err := h.payments.ConfirmPayment(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}
