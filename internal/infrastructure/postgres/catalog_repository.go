package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var (
	_ repository.ManufacturedItemRepository = (*ManufacturedItemRepo)(nil)
	_ repository.PromotionRepository        = (*PromotionRepo)(nil)
)

// ManufacturedItemRepo productos elaborados con su receta.
type ManufacturedItemRepo struct {
	q Querier
}

// NewManufacturedItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturedItemRepository(q Querier) *ManufacturedItemRepo {
	return &ManufacturedItemRepo{q: q}
}

// GetByID obtiene el elaborado y sus líneas de receta en el orden en que se cargaron.
func (r *ManufacturedItemRepo) GetByID(ctx context.Context, id string) (*entity.ManufacturedItem, error) {
	query := `
		SELECT id, name, description, price, preparation_time, active, created_at, updated_at
		FROM manufactured_items WHERE id = $1`
	var m entity.ManufacturedItem
	var desc *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &desc, &m.Price, &m.PreparationTime, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufactured item: %w", err)
	}
	m.Description = stringOrEmpty(desc)

	rows, err := r.q.Query(ctx, `
		SELECT inventory_item_id, quantity
		FROM manufactured_item_details
		WHERE manufactured_item_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.RecipeComponent
		if err := rows.Scan(&c.InventoryItemID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		m.Details = append(m.Details, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// PromotionRepo promociones con sus componentes.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

// GetByID obtiene la promoción con sus elaborados e insumos incluidos.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*entity.Promotion, error) {
	query := `
		SELECT id, name, description, discount_percentage, active, created_at, updated_at
		FROM promotions WHERE id = $1`
	var p entity.Promotion
	var desc *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &desc, &p.DiscountPercentage, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	p.Description = stringOrEmpty(desc)

	if p.ManufacturedItems, err = r.components(ctx, `
		SELECT manufactured_item_id, quantity FROM promotion_manufactured_items
		WHERE promotion_id = $1 ORDER BY manufactured_item_id`, id); err != nil {
		return nil, err
	}
	if p.InventoryItems, err = r.components(ctx, `
		SELECT inventory_item_id, quantity FROM promotion_inventory_items
		WHERE promotion_id = $1 ORDER BY inventory_item_id`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepo) components(ctx context.Context, query, promotionID string) ([]entity.PromotionComponent, error) {
	rows, err := r.q.Query(ctx, query, promotionID)
	if err != nil {
		return nil, fmt.Errorf("get promotion components: %w", err)
	}
	defer rows.Close()
	var list []entity.PromotionComponent
	for rows.Next() {
		var c entity.PromotionComponent
		if err := rows.Scan(&c.ItemID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan promotion component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
