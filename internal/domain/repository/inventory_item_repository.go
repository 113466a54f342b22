package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository define el puerto de persistencia para insumos (DIP).
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetManyForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de id.
	// Los ids inexistentes se omiten del resultado.
	GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error
	UpdatePurchaseCost(ctx context.Context, id string, cost decimal.Decimal) error
	// ListBelowMinimum insumos activos con current_stock < minimum_stock.
	ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error)
}
