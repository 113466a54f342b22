package memory

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ ordering.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre Store: serializadas y con descarte completo ante error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run transacción de compras de insumos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	purchaseRepo repository.InventoryPurchaseRepository,
) error) error {
	return r.store.runTx(ctx, func(sc scope) error {
		return fn(&InventoryItemRepo{sc: sc}, &InventoryMovementRepo{sc: sc}, &InventoryPurchaseRepo{sc: sc})
	})
}

// RunOrdering transacción de pedidos: stock, diario y pedidos.
func (r *TxRunner) RunOrdering(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.store.runTx(ctx, func(sc scope) error {
		return fn(&InventoryItemRepo{sc: sc}, &InventoryMovementRepo{sc: sc}, &OrderRepo{sc: sc})
	})
}
