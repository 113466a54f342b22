package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
)

func TestDemand_AcumulaPorInsumo(t *testing.T) {
	dm := inventory.NewDemand()
	dm.Add("queso", decimal.NewFromInt(4))
	dm.Add("pan", decimal.NewFromInt(2))
	dm.Add("queso", decimal.NewFromInt(3))

	assert.Equal(t, 2, dm.Len())
	assert.True(t, dm.Of("queso").Equal(decimal.NewFromInt(7)))
	assert.Equal(t, []string{"pan", "queso"}, dm.ItemIDs(), "los ids deben salir ordenados")
}

func TestReservePolicy_CanCover(t *testing.T) {
	item := &entity.InventoryItem{CurrentStock: decimal.NewFromInt(10), MinimumStock: decimal.NewFromInt(4)}

	assert.True(t, inventory.ReservePolicyZero.CanCover(item, decimal.NewFromInt(10)))
	assert.False(t, inventory.ReservePolicyZero.CanCover(item, decimal.NewFromInt(11)))

	assert.True(t, inventory.ReservePolicyMinimum.CanCover(item, decimal.NewFromInt(6)))
	assert.False(t, inventory.ReservePolicyMinimum.CanCover(item, decimal.NewFromInt(7)))
}

func TestParseReservePolicy(t *testing.T) {
	assert.Equal(t, inventory.ReservePolicyMinimum, inventory.ParseReservePolicy("minimum"))
	assert.Equal(t, inventory.ReservePolicyZero, inventory.ParseReservePolicy(""))
	assert.Equal(t, inventory.ReservePolicyZero, inventory.ParseReservePolicy("otra"))
}
