package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetailRequest línea de producto elaborado solicitada.
type OrderDetailRequest struct {
	ManufacturedItemID string `json:"manufactured_item_id"`
	Quantity           int    `json:"quantity"`
}

// OrderInventoryDetailRequest línea de artículo de inventario solicitada.
type OrderInventoryDetailRequest struct {
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        int    `json:"quantity"`
}

// OrderPromotionRequest promoción solicitada y cuántas veces.
type OrderPromotionRequest struct {
	PromotionID string `json:"promotion_id"`
	Quantity    int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	DeliveryMethod   string                        `json:"delivery_method"`
	PaymentMethod    string                        `json:"payment_method"`
	AddressID        string                        `json:"address_id,omitempty"`
	Notes            string                        `json:"notes,omitempty"`
	Details          []OrderDetailRequest          `json:"details"`
	InventoryDetails []OrderInventoryDetailRequest `json:"inventory_details"`
	Promotions       []OrderPromotionRequest       `json:"promotion_details"`
	IdempotencyKey   string                        `json:"-"`
}

// IsEmpty indica que el pedido no trae ninguna línea.
func (r CreateOrderRequest) IsEmpty() bool {
	return len(r.Details) == 0 && len(r.InventoryDetails) == 0 && len(r.Promotions) == 0
}

// UpdateOrderStatusRequest body para PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// AddDelayRequest body para PUT /api/orders/:id/delay.
type AddDelayRequest struct {
	Minutes int `json:"minutes"`
}

// OrderDetailResponse línea de elaborado persistida.
type OrderDetailResponse struct {
	ID                 string          `json:"id"`
	ManufacturedItemID string          `json:"manufactured_item_id"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// OrderInventoryDetailResponse línea de artículo de inventario persistida.
type OrderInventoryDetailResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido con líneas y montos.
type OrderResponse struct {
	ID               string                         `json:"id"`
	UserID           string                         `json:"user_id"`
	AddressID        string                         `json:"address_id,omitempty"`
	Status           string                         `json:"status"`
	DeliveryMethod   string                         `json:"delivery_method"`
	PaymentMethod    string                         `json:"payment_method"`
	Total            decimal.Decimal                `json:"total"`
	Discount         decimal.Decimal                `json:"discount"`
	FinalTotal       decimal.Decimal                `json:"final_total"`
	EstimatedTime    int                            `json:"estimated_time"`
	IsPaid           bool                           `json:"is_paid"`
	PaymentID        string                         `json:"payment_id,omitempty"`
	Notes            string                         `json:"notes,omitempty"`
	RestoredAt       *time.Time                     `json:"restored_at,omitempty"`
	Details          []OrderDetailResponse          `json:"details"`
	InventoryDetails []OrderInventoryDetailResponse `json:"inventory_details"`
	CreatedAt        time.Time                      `json:"created_at"`
}

// OrderListResponse página de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PaymentStartResponse resultado de iniciar un pago con Mercado Pago.
type PaymentStartResponse struct {
	OrderID      string `json:"order_id"`
	PreferenceID string `json:"preference_id"`
	PaymentURL   string `json:"payment_url"`
}
