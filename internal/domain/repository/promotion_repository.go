package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// PromotionRepository lectura de promociones con sus componentes.
type PromotionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Promotion, error)
}
