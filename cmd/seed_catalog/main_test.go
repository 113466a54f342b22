package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseItems_OrdenaYDeduplica(t *testing.T) {
	in := "id;nombre;unidad;stock_actual;stock_minimo;precio;costo;es_ingrediente\n" +
		"queso;Queso;kg;10,5;2;0;5;si\n" +
		"gaseosa;Gaseosa;u;24;6;20;8;no\n" +
		"queso;Queso muzzarella;kg;10,5;3;0;6;true\n"
	items, err := parseItems(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "gaseosa", items[0].ID)
	assert.False(t, items[0].IsIngredient)
	assert.Equal(t, "Queso muzzarella", items[1].Name)
	assert.Equal(t, "10.5", items[1].CurrentStock.String())
	assert.True(t, items[1].IsIngredient)
}

func TestParseItems_FilaInvalida(t *testing.T) {
	_, err := parseItems(strings.NewReader("pan;Pan;u;-1;0;0;0;si\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 1")

	_, err = parseItems(strings.NewReader(";Sin id;u;1;0;0;0;si\n"))
	require.Error(t, err)
}

func TestParseItems_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("jamon;Jamón cocido;kg;4;1;0;9;sí\n")
	require.NoError(t, err)
	items, err := parseItems(transform.NewReader(strings.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Jamón cocido", items[0].Name)
	assert.True(t, items[0].IsIngredient)
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	items, err := parseItems(strings.NewReader("ajo;Ajo d'Italia;;1;0;0;2;si\n"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, items))
	out := buf.String()
	assert.Contains(t, out, "('ajo', 'Ajo d''Italia', NULL, 1, 0, 0, 2, true)")
	assert.Contains(t, out, "ON CONFLICT (id) DO UPDATE")
	assert.NotContains(t, out, "current_stock = EXCLUDED")
}
