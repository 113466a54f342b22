package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// JournalUseCase consulta el diario de movimientos de stock.
type JournalUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewJournalUseCase construye el caso de uso.
func NewJournalUseCase(movRepo repository.InventoryMovementRepository) *JournalUseCase {
	return &JournalUseCase{movRepo: movRepo}
}

// ByTransaction asientos de un pedido o una compra.
func (uc *JournalUseCase) ByTransaction(ctx context.Context, transactionID string) ([]dto.MovementDTO, error) {
	if transactionID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return toMovementDTOs(list), nil
}

// ByItem asientos de un insumo entre from y to (ambos opcionales), más recientes primero.
func (uc *JournalUseCase) ByItem(ctx context.Context, itemID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementDTO, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidArgument
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByItem(ctx, itemID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementDTOs(list), nil
}

func toMovementDTOs(list []*entity.InventoryMovement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementDTO{
			ID:              m.ID,
			TransactionID:   m.TransactionID,
			InventoryItemID: m.InventoryItemID,
			Type:            m.Type,
			Quantity:        m.Quantity,
			UnitCost:        m.UnitCost,
			TotalCost:       m.TotalCost,
			Date:            m.Date,
			CreatedBy:       m.CreatedBy,
		})
	}
	return out
}
