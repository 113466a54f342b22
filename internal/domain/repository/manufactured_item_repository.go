package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// ManufacturedItemRepository lectura de productos elaborados con su receta.
type ManufacturedItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ManufacturedItem, error)
}
