package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	domorder "github.com/jhoicas/buen-sabor-api/internal/domain/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// OrderUseCaseDeps dependencias del armado de pedidos. Idempotency y Events son opcionales.
type OrderUseCaseDeps struct {
	TxRunner       TxRunner
	Catalog        Catalog
	Expander       *PromotionExpander
	Ledger         *inventory.StockLedger
	Estimator      *Estimator
	Orders         repository.OrderRepository
	Addresses      repository.AddressRepository
	Idempotency    IdempotencyStore
	Events         EventPublisher
	PickupDiscount decimal.Decimal
	Log            zerolog.Logger
}

// OrderUseCase arma, persiste y hace avanzar pedidos. La reserva de stock y el alta del pedido
// ocurren en una sola transacción; los eventos salen después del commit.
type OrderUseCase struct {
	txRunner       TxRunner
	catalog        Catalog
	expander       *PromotionExpander
	ledger         *inventory.StockLedger
	estimator      *Estimator
	orders         repository.OrderRepository
	addresses      repository.AddressRepository
	idem           IdempotencyStore
	events         EventPublisher
	pickupDiscount decimal.Decimal
	log            zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(deps OrderUseCaseDeps) *OrderUseCase {
	return &OrderUseCase{
		txRunner:       deps.TxRunner,
		catalog:        deps.Catalog,
		expander:       deps.Expander,
		ledger:         deps.Ledger,
		estimator:      deps.Estimator,
		orders:         deps.Orders,
		addresses:      deps.Addresses,
		idem:           deps.Idempotency,
		events:         deps.Events,
		pickupDiscount: deps.PickupDiscount,
		log:            deps.Log,
	}
}

// CreateOrder valida el pedido, expande promociones, reserva stock, calcula montos y tiempo
// y lo persiste en estado a_confirmar. Ninguna validación toca stock.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID, role string, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.validate(ctx, userID, req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" && uc.idem != nil {
		key := userID + ":" + req.IdempotencyKey
		ok, err := uc.idem.Acquire(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrDuplicate
		}
		resp, err := uc.createOrder(ctx, userID, role, req)
		if err != nil {
			if rerr := uc.idem.Release(ctx, key); rerr != nil {
				uc.log.Warn().Err(rerr).Str("key", key).Msg("no se pudo liberar la clave de idempotencia")
			}
			return nil, err
		}
		return resp, nil
	}
	return uc.createOrder(ctx, userID, role, req)
}

func (uc *OrderUseCase) createOrder(ctx context.Context, userID, role string, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	details, invDetails, err := uc.buildLines(ctx, req)
	if err != nil {
		return nil, err
	}

	method := entity.DeliveryMethod(req.DeliveryMethod)
	now := time.Now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		UserID:           userID,
		Status:           entity.OrderStatusToConfirm,
		DeliveryMethod:   method,
		PaymentMethod:    entity.PaymentMethod(req.PaymentMethod),
		Notes:            req.Notes,
		Details:          details,
		InventoryDetails: invDetails,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if method == entity.DeliveryMethodDelivery {
		order.AddressID = req.AddressID
	}
	for i := range order.Details {
		order.Details[i].ID = uuid.New().String()
		order.Details[i].OrderID = order.ID
	}
	for i := range order.InventoryDetails {
		order.InventoryDetails[i].ID = uuid.New().String()
		order.InventoryDetails[i].OrderID = order.ID
	}

	totals := domorder.ComputeTotals(method, details, invDetails, uc.pickupDiscount)
	order.Total, order.Discount, order.FinalTotal = totals.Total, totals.Discount, totals.FinalTotal

	err = uc.txRunner.RunOrdering(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		ref := inventory.MovementRef{TransactionID: order.ID, UserID: userID, Date: now}
		if err := uc.ledger.Reserve(ctx, itemRepo, movRepo, order.Details, order.InventoryDetails, ref); err != nil {
			return err
		}
		est, err := uc.estimator.Estimate(ctx, orderRepo, method, order.Details)
		if err != nil {
			return err
		}
		order.EstimatedTime = est
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("role", role).
		Str("final_total", order.FinalTotal.String()).
		Int("estimated_time", order.EstimatedTime).
		Msg("pedido creado")
	uc.publish(ctx, RoutingKeyOrderPlaced, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// validate aplica todas las reglas que no dependen del stock.
func (uc *OrderUseCase) validate(ctx context.Context, userID string, req dto.CreateOrderRequest) error {
	if req.IsEmpty() {
		return domain.ErrInvalidInput
	}
	method := entity.DeliveryMethod(req.DeliveryMethod)
	if !method.Valid() || !entity.PaymentMethod(req.PaymentMethod).Valid() {
		return domain.ErrInvalidInput
	}
	for _, d := range req.Details {
		if d.ManufacturedItemID == "" || d.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	for _, p := range req.Promotions {
		if p.PromotionID == "" || p.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	for _, d := range req.InventoryDetails {
		if d.InventoryItemID == "" || d.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		it, err := uc.catalog.GetInventoryItem(ctx, d.InventoryItemID)
		if err != nil {
			return err
		}
		if it.IsIngredient {
			return domain.ErrInvalidInput
		}
	}

	if method == entity.DeliveryMethodPickup {
		return nil
	}
	if req.AddressID == "" {
		return domain.ErrInvalidInput
	}
	if entity.PaymentMethod(req.PaymentMethod) != entity.PaymentMethodMercadoPago {
		return domain.ErrInvalidInput
	}
	addr, err := uc.addresses.GetByID(ctx, req.AddressID)
	if err != nil {
		return err
	}
	if addr == nil || !addr.Active || addr.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

// buildLines valoriza las líneas pedidas al precio de catálogo y les agrega las que salen de promociones.
func (uc *OrderUseCase) buildLines(ctx context.Context, req dto.CreateOrderRequest) ([]entity.OrderDetail, []entity.OrderInventoryDetail, error) {
	details := make([]entity.OrderDetail, 0, len(req.Details))
	for _, d := range req.Details {
		recipe, err := uc.catalog.GetRecipe(ctx, d.ManufacturedItemID)
		if err != nil {
			return nil, nil, err
		}
		details = append(details, entity.OrderDetail{
			ManufacturedItemID: d.ManufacturedItemID,
			Quantity:           d.Quantity,
			UnitPrice:          recipe.Price,
			Subtotal:           domorder.LineSubtotal(recipe.Price, d.Quantity),
		})
	}
	invDetails := make([]entity.OrderInventoryDetail, 0, len(req.InventoryDetails))
	for _, d := range req.InventoryDetails {
		it, err := uc.catalog.GetInventoryItem(ctx, d.InventoryItemID)
		if err != nil {
			return nil, nil, err
		}
		invDetails = append(invDetails, entity.OrderInventoryDetail{
			InventoryItemID: d.InventoryItemID,
			Quantity:        d.Quantity,
			UnitPrice:       it.Price,
			Subtotal:        domorder.LineSubtotal(it.Price, d.Quantity),
		})
	}

	promos := make([]PromotionLine, 0, len(req.Promotions))
	for _, p := range req.Promotions {
		promos = append(promos, PromotionLine{PromotionID: p.PromotionID, Quantity: p.Quantity})
	}
	expDetails, expInv, err := uc.expander.Expand(ctx, promos)
	if err != nil {
		return nil, nil, err
	}
	return append(details, expDetails...), append(invDetails, expInv...), nil
}

// UpdateStatus mueve el pedido al estado indicado si pertenece a los sucesores del actual. No toca stock.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*dto.OrderResponse, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.Order
	err := uc.txRunner.RunOrdering(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.InventoryMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(o.Status, status) {
			return domain.ErrInvalidTransition
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		o.Status = status
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("status", string(status)).Msg("estado de pedido actualizado")
	uc.publish(ctx, RoutingKeyOrderStatus, order)
	return uc.GetOrder(ctx, orderID)
}

// AddDelay suma minutes al tiempo estimado del pedido.
func (uc *OrderUseCase) AddDelay(ctx context.Context, orderID string, minutes int) (*dto.OrderResponse, error) {
	if minutes <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	err := uc.txRunner.RunOrdering(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.InventoryMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		return orderRepo.UpdateEstimatedTime(ctx, orderID, o.EstimatedTime+minutes)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetOrder(ctx, orderID)
}

// ReverseForCreditNote devuelve al stock lo que consumió el pedido. Marca restored_at en la misma
// transacción; una segunda llamada devuelve domain.ErrAlreadyRestored y no restituye nada.
func (uc *OrderUseCase) ReverseForCreditNote(ctx context.Context, orderID, userID string) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrdering(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := orderRepo.MarkRestored(ctx, orderID, now); err != nil {
			return err
		}
		ref := inventory.MovementRef{TransactionID: orderID, UserID: userID, Date: now}
		if err := uc.ledger.Restore(ctx, itemRepo, movRepo, ref); err != nil {
			return err
		}
		o.RestoredAt = &now
		order = o
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRestored) {
			uc.log.Warn().Str("order_id", orderID).Msg("nota de crédito repetida, stock ya restituido")
		}
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Msg("stock restituido por nota de crédito")
	uc.publish(ctx, RoutingKeyOrderCreditNote, order)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetOrder devuelve el pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListByStatus pedidos en el estado indicado, más antiguos primero.
func (uc *OrderUseCase) ListByStatus(ctx context.Context, status entity.OrderStatus, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orders.ListByStatus(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, ToOrderResponse(o))
	}
	return out, nil
}

// publish no devuelve error: el pedido ya está confirmado y un fallo del broker solo se registra.
func (uc *OrderUseCase) publish(ctx context.Context, routingKey string, o *entity.Order) {
	if uc.events == nil || o == nil {
		return
	}
	ev := OrderEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		FinalTotal:    o.FinalTotal,
		EstimatedTime: o.EstimatedTime,
		OccurredAt:    time.Now(),
	}
	if err := uc.events.Publish(ctx, routingKey, ev); err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Str("routing_key", routingKey).Msg("no se pudo publicar evento de pedido")
	}
}
