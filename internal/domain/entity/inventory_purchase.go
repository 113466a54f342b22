package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryPurchase registro de una compra de insumos.
type InventoryPurchase struct {
	ID              string
	InventoryItemID string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	Notes           string
	PurchaseDate    time.Time
	CreatedBy       string
}
