package ordering

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repositorios de stock, diario y pedidos atados a ella.
// Reserva, persistencia del pedido y restitución comparten esa misma transacción.
type TxRunner interface {
	RunOrdering(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Catalog lectura de recetas, insumos y promociones.
type Catalog interface {
	GetRecipe(ctx context.Context, id string) (*entity.ManufacturedItem, error)
	GetInventoryItem(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetPromotion(ctx context.Context, id string) (*entity.Promotion, error)
}

// KitchenLoad carga actual de cocina (suma de tiempos estimados por estado).
type KitchenLoad interface {
	SumEstimatedTimeByStatus(ctx context.Context, status entity.OrderStatus) (int, error)
}

// IdempotencyStore reserva claves de envío para no crear dos veces el mismo pedido.
type IdempotencyStore interface {
	// Acquire devuelve false si la clave ya estaba tomada.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// EventPublisher publica eventos de pedido una vez confirmada la transacción.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}
