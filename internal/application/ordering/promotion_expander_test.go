package ordering_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

func TestExpand_AplicaDescuentoYMultiplicaCantidades(t *testing.T) {
	f := newFixture(t)
	exp := ordering.NewPromotionExpander(f.lookup)

	details, inv, err := exp.Expand(context.Background(), []ordering.PromotionLine{{PromotionID: "combo", Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, inv, 1)

	assert.Equal(t, "hamburguesa", details[0].ManufacturedItemID)
	assert.Equal(t, 2, details[0].Quantity)
	assert.True(t, details[0].UnitPrice.Equal(dec(64)), "80 con 20 por ciento de descuento, obtenido %s", details[0].UnitPrice)
	assert.True(t, details[0].Subtotal.Equal(dec(128)))

	assert.Equal(t, 2, inv[0].Quantity)
	assert.True(t, inv[0].UnitPrice.Equal(dec(16)))
}

// Dos promociones aportan hamburguesas: 1 a 64 (combo) + 1 a 40 (doble) → 2 a 52.
func TestExpand_FusionaConPromedioPonderado(t *testing.T) {
	f := newFixture(t)
	exp := ordering.NewPromotionExpander(f.lookup)

	details, _, err := exp.Expand(context.Background(), []ordering.PromotionLine{
		{PromotionID: "combo", Quantity: 1},
		{PromotionID: "doble", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, details, 1, "las líneas del mismo elaborado se fusionan")

	assert.Equal(t, 2, details[0].Quantity)
	assert.True(t, details[0].UnitPrice.Equal(dec(52)), "obtenido %s", details[0].UnitPrice)
	assert.True(t, details[0].Subtotal.Equal(dec(104)))
}

func TestExpand_PromocionSinComponentes(t *testing.T) {
	f := newFixture(t)
	f.store.SeedPromotion(entity.Promotion{ID: "vacia", Name: "Vacía", Active: true})
	exp := ordering.NewPromotionExpander(f.lookup)

	details, inv, err := exp.Expand(context.Background(), []ordering.PromotionLine{{PromotionID: "vacia", Quantity: 3}})
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Empty(t, inv)
}

func TestExpand_PromocionInexistente(t *testing.T) {
	f := newFixture(t)
	exp := ordering.NewPromotionExpander(f.lookup)

	_, _, err := exp.Expand(context.Background(), []ordering.PromotionLine{{PromotionID: "nada", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
