package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var (
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
	_ repository.InventoryPurchaseRepository = (*InventoryPurchaseRepo)(nil)
)

const movementColumns = `id, transaction_id, inventory_item_id, type, quantity, unit_cost, total_cost, date, created_at, created_by`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.TransactionID, movement.InventoryItemID,
		movement.Type, movement.Quantity, movement.UnitCost, movement.TotalCost,
		movement.Date, movement.CreatedAt, nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByTransaction movimientos de un pedido o compra, en el orden en que se registraron.
func (r *InventoryMovementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements WHERE transaction_id = $1
		ORDER BY created_at, inventory_item_id`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list by transaction: %w", err)
	}
	return scanMovements(rows)
}

// ListByItem lista movimientos de un insumo en un rango de fechas.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE inventory_item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.InventoryItemID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.CreatedBy = stringOrEmpty(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// InventoryPurchaseRepo compras de insumos.
type InventoryPurchaseRepo struct {
	q Querier
}

// NewInventoryPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryPurchaseRepository(q Querier) *InventoryPurchaseRepo {
	return &InventoryPurchaseRepo{q: q}
}

// Create persiste la compra.
func (r *InventoryPurchaseRepo) Create(ctx context.Context, p *entity.InventoryPurchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_purchases (id, inventory_item_id, quantity, unit_cost, total_cost, notes, purchase_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.InventoryItemID, p.Quantity, p.UnitCost, p.TotalCost,
		nullIfEmpty(p.Notes), p.PurchaseDate, nullIfEmpty(p.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory purchase: %w", err)
	}
	return nil
}
