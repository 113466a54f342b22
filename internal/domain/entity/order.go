package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido en cocina/entrega.
type OrderStatus string

const (
	OrderStatusToConfirm  OrderStatus = "a_confirmar"
	OrderStatusInKitchen  OrderStatus = "en_cocina"
	OrderStatusReady      OrderStatus = "listo"
	OrderStatusInDelivery OrderStatus = "en_delivery"
	OrderStatusDelivered  OrderStatus = "entregado"
	OrderStatusInvoiced   OrderStatus = "facturado"
)

// DeliveryMethod forma de entrega del pedido.
type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "pickup"
)

// PaymentMethod medio de pago del pedido.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodMercadoPago PaymentMethod = "mercado_pago"
)

// Referencias de pago fijas.
const (
	CashPaymentID       = "Pago en efectivo"
	MercadoPagoIDPrefix = "MP-"
)

var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusToConfirm:  {OrderStatusInKitchen},
	OrderStatusInKitchen:  {OrderStatusReady},
	OrderStatusReady:      {OrderStatusInDelivery, OrderStatusDelivered},
	OrderStatusInDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusInvoiced},
	OrderStatusInvoiced:   {},
}

// Valid indica si el estado es uno de los definidos.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Successors devuelve los estados alcanzables en un paso desde s.
func (s OrderStatus) Successors() []OrderStatus {
	next := allowedTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition indica si el pedido puede pasar de from a to.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Valid indica si el método de entrega es conocido.
func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodDelivery || m == DeliveryMethodPickup
}

// Valid indica si el medio de pago es conocido.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodMercadoPago
}

// OrderDetail línea de producto elaborado. UnitPrice es una foto del precio al momento del pedido.
type OrderDetail struct {
	ID                 string
	OrderID            string
	ManufacturedItemID string
	Quantity           int
	UnitPrice          decimal.Decimal
	Subtotal           decimal.Decimal
}

// OrderInventoryDetail línea de artículo de inventario vendido sin elaborar.
type OrderInventoryDetail struct {
	ID              string
	OrderID         string
	InventoryItemID string
	Quantity        int
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
}

// Order pedido con sus líneas. Los montos se calculan una sola vez al crearlo.
type Order struct {
	ID               string
	UserID           string
	AddressID        string
	Status           OrderStatus
	DeliveryMethod   DeliveryMethod
	PaymentMethod    PaymentMethod
	Total            decimal.Decimal
	Discount         decimal.Decimal
	FinalTotal       decimal.Decimal
	EstimatedTime    int // minutos
	PaymentID        string
	IsPaid           bool
	Notes            string
	RestoredAt       *time.Time
	Details          []OrderDetail
	InventoryDetails []OrderInventoryDetail
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
