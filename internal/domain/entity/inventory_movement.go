package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReserve  = "RESERVE"  // consumo por pedido
	MovementTypeRestore  = "RESTORE"  // devolución por nota de crédito
	MovementTypePurchase = "PURCHASE" // ingreso por compra
)

// InventoryMovement asiento del diario de stock. TransactionID agrupa los asientos de un mismo pedido o compra.
type InventoryMovement struct {
	ID              string
	TransactionID   string
	InventoryItemID string
	Type            string
	Quantity        decimal.Decimal // positivo ingreso, negativo consumo
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
