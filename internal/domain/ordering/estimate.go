package ordering

import "github.com/shopspring/decimal"

// EstimateInput datos ya resueltos para estimar la preparación.
type EstimateInput struct {
	ItemsPrepMinutes   int // Σ tiempo de preparación × cantidad de los elaborados
	HasManufactured    bool
	KitchenLoadMinutes int // Σ tiempo estimado de los pedidos en cocina
	Cooks              int
	OverheadMinutes    int // recargo de envío, 0 si retira en local
}

// EstimateMinutes items + carga de cocina repartida entre cocineros + recargo de envío.
// La fracción de cocina se redondea hacia arriba. Sin elaborados el pedido no pasa por cocina y vale 0.
func EstimateMinutes(in EstimateInput) int {
	if !in.HasManufactured {
		return 0
	}
	cooks := in.Cooks
	if cooks < 1 {
		cooks = 1
	}
	kitchen := decimal.NewFromInt(int64(in.KitchenLoadMinutes)).
		Div(decimal.NewFromInt(int64(cooks))).
		Ceil().
		IntPart()
	return in.ItemsPrepMinutes + int(kitchen) + in.OverheadMinutes
}
