package catalog

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// Lookup acceso de solo lectura al catálogo: recetas, insumos y promociones.
// Un registro inexistente o inactivo se informa como domain.ErrNotFound.
type Lookup struct {
	items      repository.InventoryItemRepository
	recipes    repository.ManufacturedItemRepository
	promotions repository.PromotionRepository
}

// NewLookup construye el catálogo sobre los repositorios indicados.
func NewLookup(
	items repository.InventoryItemRepository,
	recipes repository.ManufacturedItemRepository,
	promotions repository.PromotionRepository,
) *Lookup {
	return &Lookup{items: items, recipes: recipes, promotions: promotions}
}

// GetRecipe devuelve el producto elaborado con su lista de materiales.
func (l *Lookup) GetRecipe(ctx context.Context, id string) (*entity.ManufacturedItem, error) {
	m, err := l.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.Active {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// GetInventoryItem devuelve el insumo.
func (l *Lookup) GetInventoryItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := l.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil || !it.Active {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

// GetPromotion devuelve la promoción con sus componentes.
func (l *Lookup) GetPromotion(ctx context.Context, id string) (*entity.Promotion, error) {
	p, err := l.promotions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
