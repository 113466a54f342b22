package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

func seeded() *Store {
	s := NewStore()
	s.SeedInventoryItem(entity.InventoryItem{ID: "queso", Name: "Queso", CurrentStock: decimal.NewFromInt(10), Active: true})
	s.SeedOrder(entity.Order{ID: "o-1", Status: entity.OrderStatusToConfirm})
	return s
}

func TestRunOrdering_ErrorDescartaCambios(t *testing.T) {
	s := seeded()
	tx := NewTxRunner(s)
	boom := errors.New("falla")

	err := tx.RunOrdering(context.Background(), func(
		items repository.InventoryItemRepository,
		movs repository.InventoryMovementRepository,
		orders repository.OrderRepository,
	) error {
		require.NoError(t, items.UpdateStock(context.Background(), "queso", decimal.NewFromInt(1)))
		require.NoError(t, movs.Create(context.Background(), &entity.InventoryMovement{TransactionID: "o-1", InventoryItemID: "queso"}))
		require.NoError(t, orders.UpdateStatus(context.Background(), "o-1", entity.OrderStatusInKitchen))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, _ := NewInventoryItemRepository(s).GetByID(context.Background(), "queso")
	assert.True(t, it.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, s.Movements())
	o, _ := NewOrderRepository(s).GetByID(context.Background(), "o-1")
	assert.Equal(t, entity.OrderStatusToConfirm, o.Status)
}

func TestUpdateStock_RechazaNegativo(t *testing.T) {
	s := seeded()
	err := NewInventoryItemRepository(s).UpdateStock(context.Background(), "queso", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMarkRestored_SoloUnaVez(t *testing.T) {
	s := seeded()
	repo := NewOrderRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.MarkRestored(ctx, "o-1", time.Now()))
	assert.ErrorIs(t, repo.MarkRestored(ctx, "o-1", time.Now()), domain.ErrAlreadyRestored)
	assert.ErrorIs(t, repo.MarkRestored(ctx, "nada", time.Now()), domain.ErrNotFound)
}

func TestGetManyForUpdate_OrdenadoYSinFaltantes(t *testing.T) {
	s := seeded()
	s.SeedInventoryItem(entity.InventoryItem{ID: "arroz", Name: "Arroz", Active: true})
	list, err := NewInventoryItemRepository(s).GetManyForUpdate(context.Background(), []string{"queso", "nada", "arroz"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "arroz", list[0].ID)
	assert.Equal(t, "queso", list[1].ID)
}
