package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionComponent artículo incluido en una promoción y su cantidad por promoción.
type PromotionComponent struct {
	ItemID   string
	Quantity int
}

// Promotion combo con descuento porcentual sobre el precio de catálogo de sus componentes.
type Promotion struct {
	ID                 string
	Name               string
	Description        string
	DiscountPercentage decimal.Decimal // 0..100
	Active             bool
	ManufacturedItems  []PromotionComponent
	InventoryItems     []PromotionComponent
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DiscountMultiplier devuelve 1 - descuento/100.
func (p *Promotion) DiscountMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.DiscountPercentage.Div(decimal.NewFromInt(100)))
}
