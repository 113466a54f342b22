package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// InventoryPurchaseRepository persistencia de compras de insumos.
type InventoryPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.InventoryPurchase) error
}
