package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPurchaseRequest body para POST /api/inventory/items/:id/purchases.
type RegisterPurchaseRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Notes    string          `json:"notes,omitempty"`
}

// PurchaseResponse resultado de una compra registrada.
type PurchaseResponse struct {
	PurchaseID   string          `json:"purchase_id"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
}

// LowStockItemDTO insumo por debajo de su stock mínimo.
type LowStockItemDTO struct {
	ItemID             string          `json:"item_id"`
	Name               string          `json:"name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinimumStock       decimal.Decimal `json:"minimum_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // MinimumStock * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	PurchaseCost       decimal.Decimal `json:"purchase_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * PurchaseCost
	IsIngredient       bool            `json:"is_ingredient"`
	Priority           int             `json:"priority"`
}

// MovementDTO asiento del diario de stock.
type MovementDTO struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Date            time.Time       `json:"date"`
	CreatedBy       string          `json:"created_by,omitempty"`
}
