package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	dominv "github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
)

func TestRegisterPurchase_SumaStockYActualizaCosto(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	uc := inventory.NewPurchaseUseCase(f.tx, f.ledger, zerolog.Nop())

	resp, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{
		UserID: "admin-1", ItemID: "queso", Quantity: dec(15), UnitCost: dec(7),
	})
	require.NoError(t, err)
	assert.True(t, resp.CurrentStock.Equal(dec(25)))
	assert.True(t, resp.PurchaseCost.Equal(dec(7)))
	assert.True(t, resp.TotalCost.Equal(dec(105)))

	assert.True(t, f.stock(t, "queso").Equal(dec(25)))
	it, _ := f.items.GetByID(context.Background(), "queso")
	assert.True(t, it.PurchaseCost.Equal(dec(7)))

	purchases := f.store.Purchases()
	require.Len(t, purchases, 1)
	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].Type)
	assert.Equal(t, purchases[0].ID, movs[0].TransactionID, "el asiento referencia la compra")
}

func TestRegisterPurchase_CostoCeroConservaCostoAnterior(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	uc := inventory.NewPurchaseUseCase(f.tx, f.ledger, zerolog.Nop())

	resp, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{ItemID: "pan", Quantity: dec(5), UnitCost: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, resp.PurchaseCost.Equal(dec(1)))
	assert.True(t, resp.CurrentStock.Equal(dec(25)))
}

func TestRegisterPurchase_CantidadInvalida(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	uc := inventory.NewPurchaseUseCase(f.tx, f.ledger, zerolog.Nop())

	_, err := uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{ItemID: "pan", Quantity: decimal.Zero, UnitCost: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = uc.RegisterPurchase(context.Background(), inventory.PurchaseInput{ItemID: "no-existe", Quantity: dec(1), UnitCost: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.Purchases())
}

func TestLowStock_OrdenaPorDeficit(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	f.store.SeedInventoryItem(entity.InventoryItem{ID: "tomate", Name: "Tomate", CurrentStock: dec(1), MinimumStock: dec(10), PurchaseCost: dec(2), Active: true})
	f.store.SeedInventoryItem(entity.InventoryItem{ID: "lechuga", Name: "Lechuga", CurrentStock: dec(3), MinimumStock: dec(4), PurchaseCost: dec(1), Active: true})

	list, err := inventory.NewLowStockUseCase(f.items).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "tomate", list[0].ItemID, "mayor déficit primero")
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec(14)), "10*1.5 - 1")
	assert.True(t, list[0].EstimatedOrderCost.Equal(dec(28)))
	assert.Equal(t, 2, list[1].Priority)
}
