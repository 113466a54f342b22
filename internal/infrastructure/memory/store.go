package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// state copia completa de los datos. Una transacción trabaja sobre un clon y lo publica al confirmar.
type state struct {
	items      map[string]entity.InventoryItem
	recipes    map[string]*entity.ManufacturedItem
	promotions map[string]*entity.Promotion
	users      map[string]*entity.User
	addresses  map[string]*entity.Address
	orders     map[string]*entity.Order
	movements  []entity.InventoryMovement
	purchases  []entity.InventoryPurchase
}

func newState() *state {
	return &state{
		items:      make(map[string]entity.InventoryItem),
		recipes:    make(map[string]*entity.ManufacturedItem),
		promotions: make(map[string]*entity.Promotion),
		users:      make(map[string]*entity.User),
		addresses:  make(map[string]*entity.Address),
		orders:     make(map[string]*entity.Order),
	}
}

// clone copia lo que una transacción puede modificar. Catálogo, usuarios y domicilios se comparten.
func (s *state) clone() *state {
	c := &state{
		items:      make(map[string]entity.InventoryItem, len(s.items)),
		recipes:    s.recipes,
		promotions: s.promotions,
		users:      s.users,
		addresses:  s.addresses,
		orders:     make(map[string]*entity.Order, len(s.orders)),
		movements:  append([]entity.InventoryMovement(nil), s.movements...),
		purchases:  append([]entity.InventoryPurchase(nil), s.purchases...),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	return c
}

// Store almacenamiento en memoria con la misma semántica transaccional que PostgreSQL:
// las transacciones se serializan y un error descarta todos sus cambios.
type Store struct {
	mu   sync.Mutex
	st   *state
	txMu sync.Mutex
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// scope vincula un repositorio al estado confirmado (tx == nil) o al de una transacción abierta.
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) with(fn func(s *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	return fn(sc.store.st)
}

// write como with, pero fuera de una transacción espera a que no haya ninguna abierta
// para que el commit de esa transacción no pise la escritura.
func (sc scope) write(fn func(s *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.txMu.Lock()
	defer sc.store.txMu.Unlock()
	return sc.with(fn)
}

func (s *Store) root() scope { return scope{store: s} }

// runTx ejecuta fn sobre un clon del estado y lo publica solo si fn no devuelve error.
func (s *Store) runTx(ctx context.Context, fn func(sc scope) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	work := s.st.clone()
	s.mu.Unlock()

	if err := fn(scope{store: s, tx: work}); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// SeedInventoryItem registra o reemplaza un insumo.
func (s *Store) SeedInventoryItem(it entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.items[it.ID] = it
}

// SeedManufacturedItem registra o reemplaza un elaborado con su receta.
func (s *Store) SeedManufacturedItem(m entity.ManufacturedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.recipes[m.ID] = &m
}

// SeedPromotion registra o reemplaza una promoción.
func (s *Store) SeedPromotion(p entity.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.promotions[p.ID] = &p
}

// SeedUser registra o reemplaza un usuario.
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = &u
}

// SeedAddress registra o reemplaza un domicilio.
func (s *Store) SeedAddress(a entity.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.addresses[a.ID] = &a
}

// SeedOrder registra o reemplaza un pedido.
func (s *Store) SeedOrder(o entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orders[o.ID] = copyOrder(&o)
}

// Movements devuelve una copia del diario de stock confirmado.
func (s *Store) Movements() []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InventoryMovement(nil), s.st.movements...)
}

// Purchases devuelve una copia de las compras confirmadas.
func (s *Store) Purchases() []entity.InventoryPurchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InventoryPurchase(nil), s.st.purchases...)
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Details = append([]entity.OrderDetail(nil), o.Details...)
	c.InventoryDetails = append([]entity.OrderInventoryDetail(nil), o.InventoryDetails...)
	if o.RestoredAt != nil {
		t := *o.RestoredAt
		c.RestoredAt = &t
	}
	return &c
}
