package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// UseCase cobro de pedidos en efectivo o con Mercado Pago.
type UseCase struct {
	orders  repository.OrderRepository
	recipes RecipeNames
	gateway Gateway
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. gateway puede ser nil si Mercado Pago no está configurado.
func NewUseCase(orders repository.OrderRepository, recipes RecipeNames, gateway Gateway, log zerolog.Logger) *UseCase {
	return &UseCase{orders: orders, recipes: recipes, gateway: gateway, log: log}
}

// unpaidOrder valida medio de pago y estado antes de llamar a la pasarela. La escritura final
// vuelve a exigir is_paid = false en el repositorio, que es la única garantía ante cobros concurrentes.
func (uc *UseCase) unpaidOrder(ctx context.Context, orderID string, method entity.PaymentMethod) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.IsPaid {
		return nil, domain.ErrConflict
	}
	if o.PaymentMethod != method {
		return nil, domain.ErrInvalidInput
	}
	return o, nil
}

// ProcessCashPayment marca pagado en efectivo un pedido cuyo medio de pago es cash.
func (uc *UseCase) ProcessCashPayment(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.unpaidOrder(ctx, orderID, entity.PaymentMethodCash)
	if err != nil {
		return nil, err
	}
	if err := uc.orders.UpdatePayment(ctx, o.ID, entity.CashPaymentID, true); err != nil {
		return nil, err
	}
	o.PaymentID, o.IsPaid = entity.CashPaymentID, true
	uc.log.Info().Str("order_id", o.ID).Msg("pago en efectivo registrado")
	resp := ordering.ToOrderResponse(o)
	return &resp, nil
}

// StartMercadoPagoPayment crea la preferencia de cobro y guarda su id en el pedido. El pago
// queda pendiente hasta ConfirmPayment.
func (uc *UseCase) StartMercadoPagoPayment(ctx context.Context, orderID string) (*dto.PaymentStartResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrConflict
	}
	o, err := uc.unpaidOrder(ctx, orderID, entity.PaymentMethodMercadoPago)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(o.Details))
	for _, d := range o.Details {
		if r, err := uc.recipes.GetRecipe(ctx, d.ManufacturedItemID); err == nil {
			names[d.ManufacturedItemID] = r.Name
		}
	}
	pref, err := uc.gateway.CreatePreference(ctx, o, names)
	if err != nil {
		return nil, err
	}
	if err := uc.orders.UpdatePayment(ctx, o.ID, entity.MercadoPagoIDPrefix+pref.ID, false); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.log.Warn().Str("order_id", o.ID).Str("preference_id", pref.ID).Msg("pedido pagado mientras se creaba la preferencia, se descarta")
		}
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("preference_id", pref.ID).Msg("preferencia de Mercado Pago creada")
	return &dto.PaymentStartResponse{OrderID: o.ID, PreferenceID: pref.ID, PaymentURL: pref.PaymentURL}, nil
}

// ConfirmPayment marca pagado un pedido con preferencia de Mercado Pago ya creada.
func (uc *UseCase) ConfirmPayment(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.unpaidOrder(ctx, orderID, entity.PaymentMethodMercadoPago)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(o.PaymentID, entity.MercadoPagoIDPrefix) {
		return nil, domain.ErrConflict
	}
	if err := uc.orders.UpdatePayment(ctx, o.ID, o.PaymentID, true); err != nil {
		return nil, err
	}
	o.IsPaid = true
	uc.log.Info().Str("order_id", o.ID).Str("payment_id", o.PaymentID).Msg("pago con Mercado Pago confirmado")
	resp := ordering.ToOrderResponse(o)
	return &resp, nil
}
