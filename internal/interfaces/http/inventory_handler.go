package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de compras y consultas de stock (protegido).
type InventoryHandler struct {
	purchases *inventory.PurchaseUseCase
	lowStock  *inventory.LowStockUseCase
	journal   *inventory.JournalUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(purchases *inventory.PurchaseUseCase, lowStock *inventory.LowStockUseCase, journal *inventory.JournalUseCase) *InventoryHandler {
	return &InventoryHandler{purchases: purchases, lowStock: lowStock, journal: journal}
}

// RegisterPurchase godoc
// @Summary      Registrar compra de insumo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "id del insumo"
// @Param        body  body  dto.RegisterPurchaseRequest  true  "quantity (> 0), unit_cost, notes"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/purchases [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.purchases.RegisterPurchaseFromRequest(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetLowStock godoc
// @Summary      Insumos bajo stock mínimo
// @Description  Devuelve los insumos por debajo del mínimo con la cantidad sugerida de compra,
//
//	ordenados por mayor déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.lowStock.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// ItemMovements godoc
// @Summary      Diario de stock de un insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "id del insumo"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ItemMovements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	list, err := h.journal.ByItem(c.Context(), c.Params("id"), from, to, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
