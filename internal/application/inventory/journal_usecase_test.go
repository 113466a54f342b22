package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	dominv "github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/memory"
)

func TestJournal_ReservaYRestitucion(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	details := []entity.OrderDetail{{ManufacturedItemID: "hamburguesa", Quantity: 1}}
	require.NoError(t, f.reserve(t, "pedido-1", details, nil))
	require.NoError(t, f.restore(t, "pedido-1"))

	uc := inventory.NewJournalUseCase(memory.NewInventoryMovementRepository(f.store))
	movs, err := uc.ByTransaction(context.Background(), "pedido-1")
	require.NoError(t, err)
	require.Len(t, movs, 4, "queso y pan, reserva y restitución")

	sum := dec(0)
	for _, m := range movs {
		if m.InventoryItemID == "queso" {
			sum = sum.Add(m.Quantity)
		}
	}
	assert.True(t, sum.IsZero(), "reserva y restitución se compensan")

	byItem, err := uc.ByItem(context.Background(), "pan", nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, byItem, 2)
}

func TestJournal_Validaciones(t *testing.T) {
	f := newFixture(t, dominv.ReservePolicyZero)
	uc := inventory.NewJournalUseCase(memory.NewInventoryMovementRepository(f.store))

	_, err := uc.ByTransaction(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = uc.ByItem(context.Background(), "pan", &from, &to, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
