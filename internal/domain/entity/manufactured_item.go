package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeComponent línea de la receta: cantidad de insumo consumida por cada unidad elaborada.
type RecipeComponent struct {
	InventoryItemID string
	Quantity        decimal.Decimal
}

// ManufacturedItem producto elaborado en cocina con su receta (lista de materiales ordenada).
type ManufacturedItem struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	PreparationTime int // minutos por unidad
	Active          bool
	Details         []RecipeComponent
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
