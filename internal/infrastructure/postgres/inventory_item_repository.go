package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, name, current_stock, minimum_stock, price, purchase_cost, unit_measure, is_ingredient, active, created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var unit *string
	if err := row.Scan(&it.ID, &it.Name, &it.CurrentStock, &it.MinimumStock, &it.Price, &it.PurchaseCost,
		&unit, &it.IsIngredient, &it.Active, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.UnitMeasure = stringOrEmpty(unit)
	return &it, nil
}

// GetByID obtiene un insumo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetManyForUpdate bloquea las filas en orden de id. Dos reservas concurrentes adquieren los
// locks en el mismo orden y no pueden quedar en deadlock.
func (r *InventoryItemRepo) GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.InventoryItem, error) {
	if len(ids) == 0 {
		return []*entity.InventoryItem{}, nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, sorted)
	if err != nil {
		return nil, lockError(err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryItem, 0, len(sorted))
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, lockError(err)
	}
	return list, nil
}

// lockError traduce el corte por lock_timeout a domain.ErrConflict: otra reserva retiene los insumos.
func lockError(err error) error {
	if isLockTimeout(err) {
		return fmt.Errorf("%w: insumos bloqueados por otra reserva", domain.ErrConflict)
	}
	return fmt.Errorf("lock inventory items: %w", err)
}

// UpdateStock fija current_stock. El CHECK (current_stock >= 0) de la tabla es la última barrera.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, currentStock)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("stock negativo en %s: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return requireOneRow(tag)
}

// UpdatePurchaseCost fija el último costo de compra.
func (r *InventoryItemRepo) UpdatePurchaseCost(ctx context.Context, id string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET purchase_cost = $2, updated_at = now() WHERE id = $1`,
		id, cost)
	if err != nil {
		return fmt.Errorf("update purchase cost: %w", err)
	}
	return requireOneRow(tag)
}

// ListBelowMinimum insumos activos con stock bajo el mínimo.
func (r *InventoryItemRepo) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE active AND current_stock < minimum_stock
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func requireOneRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
