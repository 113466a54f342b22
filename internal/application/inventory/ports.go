package inventory

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para las compras de insumos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		purchaseRepo repository.InventoryPurchaseRepository,
	) error) error
}

// RecipeReader resuelve la receta de un producto elaborado (catálogo).
type RecipeReader interface {
	GetRecipe(ctx context.Context, id string) (*entity.ManufacturedItem, error)
}
