package ordering

import (
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals montos calculados del pedido.
type Totals struct {
	Total      decimal.Decimal
	Discount   decimal.Decimal
	FinalTotal decimal.Decimal
}

// ComputeTotals suma los subtotales de todas las líneas y aplica el descuento por retiro en local.
func ComputeTotals(
	method entity.DeliveryMethod,
	details []entity.OrderDetail,
	inventoryDetails []entity.OrderInventoryDetail,
	pickupDiscountRate decimal.Decimal,
) Totals {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Subtotal)
	}
	for _, d := range inventoryDetails {
		total = total.Add(d.Subtotal)
	}
	discount := decimal.Zero
	if method == entity.DeliveryMethodPickup {
		discount = total.Mul(pickupDiscountRate)
	}
	return Totals{
		Total:      total,
		Discount:   discount,
		FinalTotal: total.Sub(discount),
	}
}

// LineSubtotal precio unitario por cantidad.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
