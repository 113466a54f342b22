package ordering

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	domorder "github.com/jhoicas/buen-sabor-api/internal/domain/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

// Estimator calcula el tiempo estimado de un pedido según receta, carga de cocina y cocineros activos.
type Estimator struct {
	catalog          Catalog
	users            repository.UserRepository
	cookRole         string
	deliveryOverhead int
}

// NewEstimator construye el estimador. deliveryOverhead son los minutos que suma un envío a domicilio.
func NewEstimator(catalog Catalog, users repository.UserRepository, cookRole string, deliveryOverhead int) *Estimator {
	if cookRole == "" {
		cookRole = entity.RoleCook
	}
	return &Estimator{catalog: catalog, users: users, cookRole: cookRole, deliveryOverhead: deliveryOverhead}
}

// Estimate devuelve los minutos estimados. kitchen se pasa desde el caller para leer la carga dentro de su tx.
func (e *Estimator) Estimate(ctx context.Context, kitchen KitchenLoad, method entity.DeliveryMethod, details []entity.OrderDetail) (int, error) {
	if len(details) == 0 {
		return 0, nil
	}
	itemsPrep := 0
	for _, d := range details {
		recipe, err := e.catalog.GetRecipe(ctx, d.ManufacturedItemID)
		if err != nil {
			return 0, err
		}
		itemsPrep += recipe.PreparationTime * d.Quantity
	}
	load, err := kitchen.SumEstimatedTimeByStatus(ctx, entity.OrderStatusInKitchen)
	if err != nil {
		return 0, err
	}
	cooks, err := e.users.CountActiveByRole(ctx, e.cookRole)
	if err != nil {
		return 0, err
	}
	overhead := 0
	if method == entity.DeliveryMethodDelivery {
		overhead = e.deliveryOverhead
	}
	return domorder.EstimateMinutes(domorder.EstimateInput{
		ItemsPrepMinutes:   itemsPrep,
		HasManufactured:    true,
		KitchenLoadMinutes: load,
		Cooks:              cooks,
		OverheadMinutes:    overhead,
	}), nil
}
