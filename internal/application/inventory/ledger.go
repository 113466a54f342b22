package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	dominv "github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// MovementRef datos comunes de los asientos que genera una operación del libro.
type MovementRef struct {
	TransactionID string // id del pedido o de la compra
	UserID        string
	Date          time.Time
}

// StockLedger valida y aplica de forma atómica los cambios de stock de insumos.
// No abre transacciones: opera con los repositorios que le pasa el caller, atados a su tx.
type StockLedger struct {
	recipes RecipeReader
	policy  dominv.ReservePolicy
	log     zerolog.Logger
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(recipes RecipeReader, policy dominv.ReservePolicy, log zerolog.Logger) *StockLedger {
	return &StockLedger{recipes: recipes, policy: policy, log: log}
}

// Demand suma, por insumo, lo que consumen todas las líneas del pedido.
// Elaborados: cantidad de receta × cantidad de línea. Artículos de inventario: cantidad de línea.
func (l *StockLedger) Demand(
	ctx context.Context,
	details []entity.OrderDetail,
	inventoryDetails []entity.OrderInventoryDetail,
) (*dominv.Demand, error) {
	dm := dominv.NewDemand()
	for _, d := range details {
		recipe, err := l.recipes.GetRecipe(ctx, d.ManufacturedItemID)
		if err != nil {
			return nil, err
		}
		lineQty := decimal.NewFromInt(int64(d.Quantity))
		for _, c := range recipe.Details {
			dm.Add(c.InventoryItemID, c.Quantity.Mul(lineQty))
		}
	}
	for _, d := range inventoryDetails {
		dm.Add(d.InventoryItemID, decimal.NewFromInt(int64(d.Quantity)))
	}
	return dm, nil
}

// Reserve descuenta del stock la demanda agregada del pedido.
// Primero suma la demanda, luego bloquea las filas en orden de id y compara una sola vez por insumo.
// Si algún insumo no alcanza devuelve *domain.InsufficientStockError sin escribir nada.
func (l *StockLedger) Reserve(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	details []entity.OrderDetail,
	inventoryDetails []entity.OrderInventoryDetail,
	ref MovementRef,
) error {
	dm, err := l.Demand(ctx, details, inventoryDetails)
	if err != nil {
		return err
	}
	if dm.Len() == 0 {
		return nil
	}
	items, err := lockItems(ctx, itemRepo, dm.ItemIDs())
	if err != nil {
		return err
	}

	for _, it := range items {
		if !l.policy.CanCover(it, dm.Of(it.ID)) {
			l.log.Info().
				Str("item_id", it.ID).
				Str("item", it.Name).
				Str("needed", dm.Of(it.ID).String()).
				Str("current", it.CurrentStock.String()).
				Str("order_id", ref.TransactionID).
				Msg("reserva rechazada por stock insuficiente")
			return domain.NewInsufficientStock(it.ID, it.Name)
		}
	}

	for _, it := range items {
		needed := dm.Of(it.ID)
		if err := itemRepo.UpdateStock(ctx, it.ID, it.CurrentStock.Sub(needed)); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			TransactionID:   ref.TransactionID,
			InventoryItemID: it.ID,
			Type:            entity.MovementTypeReserve,
			Quantity:        needed.Neg(),
			UnitCost:        it.PurchaseCost,
			TotalCost:       needed.Neg().Mul(it.PurchaseCost),
			Date:            ref.Date,
			CreatedAt:       ref.Date,
			CreatedBy:       ref.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// Restore devuelve al stock exactamente lo que descontó Reserve para ref.TransactionID.
// La cantidad sale de los asientos RESERVE del pedido y no del catálogo actual, así que una
// receta editada o dada de baja después de la venta no cambia lo restituido. Solo suma, nunca
// falla por límites. El caller garantiza que se invoque una sola vez por pedido.
func (l *StockLedger) Restore(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	ref MovementRef,
) error {
	dm, err := reservedDemand(ctx, movRepo, ref.TransactionID)
	if err != nil {
		return err
	}
	if dm.Len() == 0 {
		l.log.Warn().Str("order_id", ref.TransactionID).Msg("restitución sin asientos de reserva, no se mueve stock")
		return nil
	}
	items, err := lockItems(ctx, itemRepo, dm.ItemIDs())
	if err != nil {
		return err
	}
	for _, it := range items {
		qty := dm.Of(it.ID)
		if err := itemRepo.UpdateStock(ctx, it.ID, it.CurrentStock.Add(qty)); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			TransactionID:   ref.TransactionID,
			InventoryItemID: it.ID,
			Type:            entity.MovementTypeRestore,
			Quantity:        qty,
			UnitCost:        it.PurchaseCost,
			TotalCost:       qty.Mul(it.PurchaseCost),
			Date:            ref.Date,
			CreatedAt:       ref.Date,
			CreatedBy:       ref.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// reservedDemand suma, por insumo, los asientos RESERVE de la transacción (cantidades negativas).
func reservedDemand(ctx context.Context, movRepo repository.InventoryMovementRepository, transactionID string) (*dominv.Demand, error) {
	movs, err := movRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	dm := dominv.NewDemand()
	for _, m := range movs {
		if m.Type == entity.MovementTypeReserve {
			dm.Add(m.InventoryItemID, m.Quantity.Neg())
		}
	}
	return dm, nil
}

// Receive suma qty al insumo por una compra y registra el asiento PURCHASE al costo indicado.
func (l *StockLedger) Receive(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	itemID string,
	qty, unitCost decimal.Decimal,
	ref MovementRef,
) (*entity.InventoryItem, error) {
	items, err := lockItems(ctx, itemRepo, []string{itemID})
	if err != nil {
		return nil, err
	}
	it := items[0]
	it.CurrentStock = it.CurrentStock.Add(qty)
	if err := itemRepo.UpdateStock(ctx, it.ID, it.CurrentStock); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		TransactionID:   ref.TransactionID,
		InventoryItemID: it.ID,
		Type:            entity.MovementTypePurchase,
		Quantity:        qty,
		UnitCost:        unitCost,
		TotalCost:       qty.Mul(unitCost),
		Date:            ref.Date,
		CreatedAt:       ref.Date,
		CreatedBy:       ref.UserID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return it, nil
}

// lockItems bloquea las filas (SELECT FOR UPDATE) y exige que existan todas.
func lockItems(ctx context.Context, itemRepo repository.InventoryItemRepository, ids []string) ([]*entity.InventoryItem, error) {
	items, err := itemRepo.GetManyForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, domain.ErrNotFound
	}
	return items, nil
}
