package repository

import (
	"context"
	"time"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
// Las actualizaciones son parciales y explícitas: cada método toca solo sus columnas.
type OrderRepository interface {
	// Create persiste el pedido y todas sus líneas.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido. No carga líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListByStatus(ctx context.Context, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	SumEstimatedTimeByStatus(ctx context.Context, status entity.OrderStatus) (int, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	UpdateEstimatedTime(ctx context.Context, id string, minutes int) error
	// UpdatePayment fija payment_id e is_paid solo si el pedido sigue impago;
	// si ya estaba pagado devuelve domain.ErrConflict y no escribe nada.
	UpdatePayment(ctx context.Context, id, paymentID string, isPaid bool) error
	// MarkRestored fija restored_at solo si estaba vacío; si ya tenía valor devuelve domain.ErrAlreadyRestored.
	MarkRestored(ctx context.Context, id string, at time.Time) error
}
