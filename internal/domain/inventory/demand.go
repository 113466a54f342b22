package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Demand cantidad total requerida por insumo, sumada sobre todas las líneas de un pedido.
type Demand struct {
	qty map[string]decimal.Decimal
}

// NewDemand construye una demanda vacía.
func NewDemand() *Demand {
	return &Demand{qty: make(map[string]decimal.Decimal)}
}

// Add acumula q unidades del insumo itemID.
func (d *Demand) Add(itemID string, q decimal.Decimal) {
	d.qty[itemID] = d.qty[itemID].Add(q)
}

// Of devuelve la demanda acumulada del insumo.
func (d *Demand) Of(itemID string) decimal.Decimal {
	return d.qty[itemID]
}

// Len cantidad de insumos distintos.
func (d *Demand) Len() int { return len(d.qty) }

// ItemIDs ids ordenados ascendente; el orden fija la secuencia de bloqueo de filas.
func (d *Demand) ItemIDs() []string {
	ids := make([]string, 0, len(d.qty))
	for id := range d.qty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
