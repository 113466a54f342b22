package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

var allStatuses = []entity.OrderStatus{
	entity.OrderStatusToConfirm,
	entity.OrderStatusInKitchen,
	entity.OrderStatusReady,
	entity.OrderStatusInDelivery,
	entity.OrderStatusDelivered,
	entity.OrderStatusInvoiced,
}

func TestCanTransition_CaminosValidos(t *testing.T) {
	cases := [][2]entity.OrderStatus{
		{entity.OrderStatusToConfirm, entity.OrderStatusInKitchen},
		{entity.OrderStatusInKitchen, entity.OrderStatusReady},
		{entity.OrderStatusReady, entity.OrderStatusInDelivery},
		{entity.OrderStatusReady, entity.OrderStatusDelivered},
		{entity.OrderStatusInDelivery, entity.OrderStatusDelivered},
		{entity.OrderStatusDelivered, entity.OrderStatusInvoiced},
	}
	for _, c := range cases {
		assert.True(t, entity.CanTransition(c[0], c[1]), "%s -> %s debe ser válido", c[0], c[1])
	}
}

func TestCanTransition_ClausuraDelGrafo(t *testing.T) {
	// Toda transición aceptada debe pertenecer al conjunto de sucesores del estado actual.
	for _, from := range allStatuses {
		succ := from.Successors()
		for _, to := range allStatuses {
			assert.Equal(t, contains(succ, to), entity.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_FacturadoEsTerminal(t *testing.T) {
	assert.Empty(t, entity.OrderStatusInvoiced.Successors())
	assert.False(t, entity.CanTransition(entity.OrderStatusInvoiced, entity.OrderStatusToConfirm))
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, entity.OrderStatusReady.Valid())
	assert.False(t, entity.OrderStatus("cancelado").Valid())
}

func contains(list []entity.OrderStatus, s entity.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
