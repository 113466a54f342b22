package ordering_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/application/catalog"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	dominv "github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	clientID = "cliente-1"
	otherID  = "cliente-2"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fakeIdempotency clave → tomada, con el mismo contrato que el adaptador Redis.
type fakeIdempotency struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdempotency) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	return nil
}

// fakePublisher registra las routing keys publicadas.
type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, routingKey)
	return nil
}

type fixture struct {
	store  *memory.Store
	items  *memory.InventoryItemRepo
	orders *memory.OrderRepo
	lookup *catalog.Lookup
	idem   *fakeIdempotency
	events *fakePublisher
	uc     *ordering.OrderUseCase
}

// newFixture arma un catálogo chico:
//   - Insumos: Cheese (10), Pan (20), Gaseosa (5, reventa), Harina (ingrediente).
//   - Hamburguesa (80, 10 min): 2 Cheese + 1 Pan. Pizza (100, 15 min): 3 Cheese.
//   - Promo "combo" 20%: 1 Hamburguesa + 1 Gaseosa. Promo "doble" 50%: 1 Hamburguesa.
//   - Un cocinero activo y un domicilio de clientID.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedInventoryItem(entity.InventoryItem{ID: "queso", Name: "Cheese", CurrentStock: dec(10), PurchaseCost: dec(5), IsIngredient: true, Active: true})
	store.SeedInventoryItem(entity.InventoryItem{ID: "pan", Name: "Pan", CurrentStock: dec(20), PurchaseCost: dec(1), IsIngredient: true, Active: true})
	store.SeedInventoryItem(entity.InventoryItem{ID: "gaseosa", Name: "Gaseosa", CurrentStock: dec(5), Price: dec(20), Active: true})
	store.SeedInventoryItem(entity.InventoryItem{ID: "harina", Name: "Harina", CurrentStock: dec(50), Price: dec(3), IsIngredient: true, Active: true})
	store.SeedManufacturedItem(entity.ManufacturedItem{
		ID: "hamburguesa", Name: "Hamburguesa", Price: dec(80), PreparationTime: 10, Active: true,
		Details: []entity.RecipeComponent{
			{InventoryItemID: "queso", Quantity: dec(2)},
			{InventoryItemID: "pan", Quantity: dec(1)},
		},
	})
	store.SeedManufacturedItem(entity.ManufacturedItem{
		ID: "pizza", Name: "Pizza", Price: dec(100), PreparationTime: 15, Active: true,
		Details: []entity.RecipeComponent{{InventoryItemID: "queso", Quantity: dec(3)}},
	})
	store.SeedPromotion(entity.Promotion{
		ID: "combo", Name: "Combo", DiscountPercentage: dec(20), Active: true,
		ManufacturedItems: []entity.PromotionComponent{{ItemID: "hamburguesa", Quantity: 1}},
		InventoryItems:    []entity.PromotionComponent{{ItemID: "gaseosa", Quantity: 1}},
	})
	store.SeedPromotion(entity.Promotion{
		ID: "doble", Name: "Mitad de precio", DiscountPercentage: dec(50), Active: true,
		ManufacturedItems: []entity.PromotionComponent{{ItemID: "hamburguesa", Quantity: 1}},
	})
	store.SeedUser(entity.User{ID: "cocinero-1", Role: entity.RoleCook, Active: true})
	store.SeedAddress(entity.Address{ID: "dir-1", UserID: clientID, Street: "San Martín", Number: "123", Active: true})

	items := memory.NewInventoryItemRepository(store)
	orders := memory.NewOrderRepository(store)
	lookup := catalog.NewLookup(items, memory.NewManufacturedItemRepository(store), memory.NewPromotionRepository(store))
	idem := &fakeIdempotency{keys: map[string]bool{}}
	events := &fakePublisher{}

	uc := ordering.NewOrderUseCase(ordering.OrderUseCaseDeps{
		TxRunner:       memory.NewTxRunner(store),
		Catalog:        lookup,
		Expander:       ordering.NewPromotionExpander(lookup),
		Ledger:         inventory.NewStockLedger(lookup, dominv.ReservePolicyZero, zerolog.Nop()),
		Estimator:      ordering.NewEstimator(lookup, memory.NewUserRepository(store), entity.RoleCook, 10),
		Orders:         orders,
		Addresses:      memory.NewAddressRepository(store),
		Idempotency:    idem,
		Events:         events,
		PickupDiscount: decimal.NewFromFloat(0.1),
		Log:            zerolog.Nop(),
	})
	return &fixture{store: store, items: items, orders: orders, lookup: lookup, idem: idem, events: events, uc: uc}
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := f.items.GetByID(context.Background(), id)
	if err != nil || it == nil {
		t.Fatalf("insumo %s no encontrado", id)
	}
	return it.CurrentStock
}
