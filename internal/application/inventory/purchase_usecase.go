package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// PurchaseUseCase registra compras de insumos: suma stock, actualiza costo y deja asiento y comprobante,
// todo dentro de una transacción con la fila del insumo bloqueada.
type PurchaseUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
	log      zerolog.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner, ledger *StockLedger, log zerolog.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// PurchaseInput entrada para registrar una compra.
type PurchaseInput struct {
	UserID   string
	ItemID   string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
	Notes    string
}

// RegisterPurchase suma Quantity al stock del insumo. Si UnitCost > 0 pasa a ser su nuevo costo de compra.
func (uc *PurchaseUseCase) RegisterPurchase(ctx context.Context, in PurchaseInput) (*dto.PurchaseResponse, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now()
	purchase := &entity.InventoryPurchase{
		ID:              uuid.New().String(),
		InventoryItemID: in.ItemID,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		TotalCost:       in.Quantity.Mul(in.UnitCost),
		Notes:           in.Notes,
		PurchaseDate:    now,
		CreatedBy:       in.UserID,
	}

	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		purchaseRepo repository.InventoryPurchaseRepository,
	) error {
		it, err := uc.ledger.Receive(ctx, itemRepo, movRepo, in.ItemID, in.Quantity, in.UnitCost, MovementRef{
			TransactionID: purchase.ID,
			UserID:        in.UserID,
			Date:          now,
		})
		if err != nil {
			return err
		}
		if in.UnitCost.GreaterThan(decimal.Zero) {
			if err := itemRepo.UpdatePurchaseCost(ctx, it.ID, in.UnitCost); err != nil {
				return err
			}
			it.PurchaseCost = in.UnitCost
		}
		updated = it
		return purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("purchase_id", purchase.ID).
		Str("item_id", updated.ID).
		Str("quantity", in.Quantity.String()).
		Str("current_stock", updated.CurrentStock.String()).
		Msg("compra de insumo registrada")

	return &dto.PurchaseResponse{
		PurchaseID:   purchase.ID,
		ItemID:       updated.ID,
		ItemName:     updated.Name,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		TotalCost:    purchase.TotalCost,
		CurrentStock: updated.CurrentStock,
		PurchaseCost: updated.PurchaseCost,
	}, nil
}

// RegisterPurchaseFromRequest adapta el request HTTP al caso de uso.
func (uc *PurchaseUseCase) RegisterPurchaseFromRequest(ctx context.Context, userID, itemID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	return uc.RegisterPurchase(ctx, PurchaseInput{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: in.Quantity,
		UnitCost: in.UnitCost,
		Notes:    in.Notes,
	})
}
