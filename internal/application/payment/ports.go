package payment

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// Preference resultado de crear una preferencia de cobro en la pasarela.
type Preference struct {
	ID         string
	PaymentURL string
}

// Gateway pasarela de pagos externa. Se invoca siempre fuera de transacciones de stock.
type Gateway interface {
	CreatePreference(ctx context.Context, order *entity.Order, itemNames map[string]string) (*Preference, error)
}

// RecipeNames resuelve el nombre de los elaborados para describir los ítems cobrados.
type RecipeNames interface {
	GetRecipe(ctx context.Context, id string) (*entity.ManufacturedItem, error)
}
