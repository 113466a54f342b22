package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and ordering.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ ordering.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con repos de insumos, diario y compras (para RegisterPurchase).
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	purchaseRepo repository.InventoryPurchaseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewInventoryMovementRepository(tx), NewInventoryPurchaseRepository(tx))
	})
}

// RunOrdering inicia una transacción con repos de insumos, diario y pedidos. Un error en fn
// deshace la reserva completa y el alta del pedido.
func (r *TxRunner) RunOrdering(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewInventoryMovementRepository(tx), NewOrderRepository(tx))
	})
}
