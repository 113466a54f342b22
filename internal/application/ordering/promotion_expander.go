package ordering

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	domorder "github.com/jhoicas/buen-sabor-api/internal/domain/ordering"
)

// PromotionLine promoción pedida y cuántas veces.
type PromotionLine struct {
	PromotionID string
	Quantity    int
}

// PromotionExpander convierte promociones en líneas normales con el descuento aplicado al precio unitario.
// Si dos promociones aportan el mismo artículo las líneas se fusionan con precio promedio ponderado.
type PromotionExpander struct {
	catalog Catalog
}

// NewPromotionExpander construye el expansor.
func NewPromotionExpander(catalog Catalog) *PromotionExpander {
	return &PromotionExpander{catalog: catalog}
}

// Expand devuelve las líneas de elaborados y de inventario que resultan de las promociones, en orden de aparición.
func (e *PromotionExpander) Expand(ctx context.Context, promos []PromotionLine) ([]entity.OrderDetail, []entity.OrderInventoryDetail, error) {
	var details []entity.OrderDetail
	var invDetails []entity.OrderInventoryDetail
	detailIdx := make(map[string]int)
	invIdx := make(map[string]int)

	for _, pl := range promos {
		if pl.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		promo, err := e.catalog.GetPromotion(ctx, pl.PromotionID)
		if err != nil {
			return nil, nil, err
		}
		multiplier := promo.DiscountMultiplier()

		for _, c := range promo.ManufacturedItems {
			item, err := e.catalog.GetRecipe(ctx, c.ItemID)
			if err != nil {
				return nil, nil, err
			}
			qty := c.Quantity * pl.Quantity
			price := item.Price.Mul(multiplier)
			if i, ok := detailIdx[c.ItemID]; ok {
				details[i].UnitPrice, details[i].Quantity = merge(details[i].Quantity, details[i].UnitPrice, qty, price)
				details[i].Subtotal = domorder.LineSubtotal(details[i].UnitPrice, details[i].Quantity)
				continue
			}
			detailIdx[c.ItemID] = len(details)
			details = append(details, entity.OrderDetail{
				ManufacturedItemID: c.ItemID,
				Quantity:           qty,
				UnitPrice:          price,
				Subtotal:           domorder.LineSubtotal(price, qty),
			})
		}

		for _, c := range promo.InventoryItems {
			item, err := e.catalog.GetInventoryItem(ctx, c.ItemID)
			if err != nil {
				return nil, nil, err
			}
			qty := c.Quantity * pl.Quantity
			price := item.Price.Mul(multiplier)
			if i, ok := invIdx[c.ItemID]; ok {
				invDetails[i].UnitPrice, invDetails[i].Quantity = merge(invDetails[i].Quantity, invDetails[i].UnitPrice, qty, price)
				invDetails[i].Subtotal = domorder.LineSubtotal(invDetails[i].UnitPrice, invDetails[i].Quantity)
				continue
			}
			invIdx[c.ItemID] = len(invDetails)
			invDetails = append(invDetails, entity.OrderInventoryDetail{
				InventoryItemID: c.ItemID,
				Quantity:        qty,
				UnitPrice:       price,
				Subtotal:        domorder.LineSubtotal(price, qty),
			})
		}
	}
	return details, invDetails, nil
}

func merge(oldQty int, oldPrice decimal.Decimal, addQty int, addPrice decimal.Decimal) (decimal.Decimal, int) {
	price := domorder.WeightedUnitPrice(
		decimal.NewFromInt(int64(oldQty)), oldPrice,
		decimal.NewFromInt(int64(addQty)), addPrice,
	)
	return price, oldQty + addQty
}
