package inventory

import (
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReservePolicy piso de stock que una reserva no puede perforar.
type ReservePolicy string

const (
	// ReservePolicyZero el stock no puede quedar negativo.
	ReservePolicyZero ReservePolicy = "zero"
	// ReservePolicyMinimum el stock no puede quedar por debajo de minimum_stock.
	ReservePolicyMinimum ReservePolicy = "minimum"
)

// ParseReservePolicy devuelve la política indicada o zero si no se reconoce.
func ParseReservePolicy(s string) ReservePolicy {
	if ReservePolicy(s) == ReservePolicyMinimum {
		return ReservePolicyMinimum
	}
	return ReservePolicyZero
}

// CanCover indica si el insumo puede entregar needed unidades sin perforar el piso.
func (p ReservePolicy) CanCover(item *entity.InventoryItem, needed decimal.Decimal) bool {
	floor := decimal.Zero
	if p == ReservePolicyMinimum {
		floor = item.MinimumStock
	}
	return !item.CurrentStock.Sub(needed).LessThan(floor)
}
