package repository

import (
	"context"
	"time"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el diario de stock.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error)
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
