package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem insumo o artículo de reventa con stock propio.
// CurrentStock solo lo modifica el libro de stock (reserva, restitución y compras).
type InventoryItem struct {
	ID           string
	Name         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	Price        decimal.Decimal // precio de venta unitario
	PurchaseCost decimal.Decimal // último costo de compra
	UnitMeasure  string
	IsIngredient bool // los ingredientes no se venden sueltos
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (i *InventoryItem) BelowMinimum() bool {
	return i.CurrentStock.LessThan(i.MinimumStock)
}
