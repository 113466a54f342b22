package ordering

import (
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys de eventos de pedido.
const (
	RoutingKeyOrderPlaced     = "order.placed"
	RoutingKeyOrderStatus     = "order.status"
	RoutingKeyOrderCreditNote = "order.credit_note"
)

// OrderEvent mensaje publicado tras cada cambio confirmado en un pedido.
type OrderEvent struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id,omitempty"`
	Status        string          `json:"status"`
	FinalTotal    decimal.Decimal `json:"final_total"`
	EstimatedTime int             `json:"estimated_time"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
