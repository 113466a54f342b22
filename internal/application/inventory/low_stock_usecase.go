package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// LowStockUseCase genera la lista de insumos por debajo del stock mínimo con la cantidad sugerida de compra.
type LowStockUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(itemRepo repository.InventoryItemRepository) *LowStockUseCase {
	return &LowStockUseCase{itemRepo: itemRepo}
}

// List devuelve los insumos bajo mínimo ordenados por mayor déficit. Priority 1 = más urgente.
func (uc *LowStockUseCase) List(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	factor := decimal.NewFromFloat(1.5)
	for _, it := range items {
		ideal := it.MinimumStock.Mul(factor)
		suggested := ideal.Sub(it.CurrentStock)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockItemDTO{
			ItemID:             it.ID,
			Name:               it.Name,
			CurrentStock:       it.CurrentStock,
			MinimumStock:       it.MinimumStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			PurchaseCost:       it.PurchaseCost,
			EstimatedOrderCost: suggested.Mul(it.PurchaseCost),
			IsIngredient:       it.IsIngredient,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		defA := out[i].MinimumStock.Sub(out[i].CurrentStock)
		defB := out[j].MinimumStock.Sub(out[j].CurrentStock)
		return defA.GreaterThan(defB)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
