package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidArgument   = errors.New("argumento inválido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyRestored   = errors.New("el stock del pedido ya fue restituido")
)

// InsufficientStockError indica qué insumo no alcanza para cubrir la demanda agregada del pedido.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ItemID   string
	ItemName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s", e.ItemName)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error para el insumo indicado.
func NewInsufficientStock(itemID, itemName string) error {
	return &InsufficientStockError{ItemID: itemID, ItemName: itemName}
}
