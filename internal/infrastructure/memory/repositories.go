package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository     = (*InventoryItemRepo)(nil)
	_ repository.ManufacturedItemRepository  = (*ManufacturedItemRepo)(nil)
	_ repository.PromotionRepository         = (*PromotionRepo)(nil)
	_ repository.OrderRepository             = (*OrderRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
	_ repository.AddressRepository           = (*AddressRepo)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
	_ repository.InventoryPurchaseRepository = (*InventoryPurchaseRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Insumos
// ──────────────────────────────────────────────────────────────────────────────

// InventoryItemRepo insumos en memoria.
type InventoryItemRepo struct{ sc scope }

// NewInventoryItemRepository repositorio sobre el estado confirmado.
func NewInventoryItemRepository(s *Store) *InventoryItemRepo { return &InventoryItemRepo{sc: s.root()} }

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	_ = r.sc.with(func(s *state) error {
		if it, ok := s.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, nil
}

func (r *InventoryItemRepo) GetManyForUpdate(_ context.Context, ids []string) ([]*entity.InventoryItem, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	var out []*entity.InventoryItem
	_ = r.sc.with(func(s *state) error {
		for _, id := range sorted {
			if it, ok := s.items[id]; ok {
				c := it
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, nil
}

func (r *InventoryItemRepo) UpdateStock(_ context.Context, id string, currentStock decimal.Decimal) error {
	return r.sc.write(func(s *state) error {
		it, ok := s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		// mismo CHECK (current_stock >= 0) que la tabla
		if currentStock.LessThan(decimal.Zero) {
			return domain.ErrConflict
		}
		it.CurrentStock = currentStock
		it.UpdatedAt = time.Now()
		s.items[id] = it
		return nil
	})
}

func (r *InventoryItemRepo) UpdatePurchaseCost(_ context.Context, id string, cost decimal.Decimal) error {
	return r.sc.write(func(s *state) error {
		it, ok := s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.PurchaseCost = cost
		s.items[id] = it
		return nil
	})
}

func (r *InventoryItemRepo) ListBelowMinimum(_ context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	_ = r.sc.with(func(s *state) error {
		for _, it := range s.items {
			if it.Active && it.BelowMinimum() {
				c := it
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

// ManufacturedItemRepo elaborados en memoria.
type ManufacturedItemRepo struct{ sc scope }

// NewManufacturedItemRepository construye el repositorio.
func NewManufacturedItemRepository(s *Store) *ManufacturedItemRepo {
	return &ManufacturedItemRepo{sc: s.root()}
}

func (r *ManufacturedItemRepo) GetByID(_ context.Context, id string) (*entity.ManufacturedItem, error) {
	var out *entity.ManufacturedItem
	_ = r.sc.with(func(s *state) error {
		if m, ok := s.recipes[id]; ok {
			c := *m
			c.Details = append([]entity.RecipeComponent(nil), m.Details...)
			out = &c
		}
		return nil
	})
	return out, nil
}

// PromotionRepo promociones en memoria.
type PromotionRepo struct{ sc scope }

// NewPromotionRepository construye el repositorio.
func NewPromotionRepository(s *Store) *PromotionRepo { return &PromotionRepo{sc: s.root()} }

func (r *PromotionRepo) GetByID(_ context.Context, id string) (*entity.Promotion, error) {
	var out *entity.Promotion
	_ = r.sc.with(func(s *state) error {
		if p, ok := s.promotions[id]; ok {
			c := *p
			c.ManufacturedItems = append([]entity.PromotionComponent(nil), p.ManufacturedItems...)
			c.InventoryItems = append([]entity.PromotionComponent(nil), p.InventoryItems...)
			out = &c
		}
		return nil
	})
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y domicilios
// ──────────────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ sc scope }

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{sc: s.root()} }

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	_ = r.sc.with(func(s *state) error {
		if u, ok := s.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, nil
}

func (r *UserRepo) CountActiveByRole(_ context.Context, role string) (int, error) {
	n := 0
	_ = r.sc.with(func(s *state) error {
		for _, u := range s.users {
			if u.Active && u.Role == role {
				n++
			}
		}
		return nil
	})
	return n, nil
}

// AddressRepo domicilios en memoria.
type AddressRepo struct{ sc scope }

// NewAddressRepository construye el repositorio.
func NewAddressRepository(s *Store) *AddressRepo { return &AddressRepo{sc: s.root()} }

func (r *AddressRepo) GetByID(_ context.Context, id string) (*entity.Address, error) {
	var out *entity.Address
	_ = r.sc.with(func(s *state) error {
		if a, ok := s.addresses[id]; ok {
			c := *a
			out = &c
		}
		return nil
	})
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

// OrderRepo pedidos en memoria.
type OrderRepo struct{ sc scope }

// NewOrderRepository construye el repositorio.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{sc: s.root()} }

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.sc.write(func(s *state) error {
		if _, ok := s.orders[order.ID]; ok {
			return domain.ErrDuplicate
		}
		s.orders[order.ID] = copyOrder(order)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	_ = r.sc.with(func(s *state) error {
		if o, ok := s.orders[id]; ok {
			out = copyOrder(o)
		}
		return nil
	})
	return out, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := r.GetByID(ctx, id)
	if o != nil {
		o.Details, o.InventoryDetails = nil, nil
	}
	return o, err
}

func (r *OrderRepo) ListByStatus(_ context.Context, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	var all []*entity.Order
	_ = r.sc.with(func(s *state) error {
		for _, o := range s.orders {
			if o.Status == status {
				all = append(all, copyOrder(o))
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []*entity.Order{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *OrderRepo) SumEstimatedTimeByStatus(_ context.Context, status entity.OrderStatus) (int, error) {
	total := 0
	_ = r.sc.with(func(s *state) error {
		for _, o := range s.orders {
			if o.Status == status {
				total += o.EstimatedTime
			}
		}
		return nil
	})
	return total, nil
}

func (r *OrderRepo) update(id string, fn func(o *entity.Order) error) error {
	return r.sc.write(func(s *state) error {
		o, ok := s.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := fn(o); err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	return r.update(id, func(o *entity.Order) error { o.Status = status; return nil })
}

func (r *OrderRepo) UpdateEstimatedTime(_ context.Context, id string, minutes int) error {
	return r.update(id, func(o *entity.Order) error { o.EstimatedTime = minutes; return nil })
}

func (r *OrderRepo) UpdatePayment(_ context.Context, id, paymentID string, isPaid bool) error {
	return r.update(id, func(o *entity.Order) error {
		if o.IsPaid {
			return domain.ErrConflict
		}
		o.PaymentID, o.IsPaid = paymentID, isPaid
		return nil
	})
}

func (r *OrderRepo) MarkRestored(_ context.Context, id string, at time.Time) error {
	return r.update(id, func(o *entity.Order) error {
		if o.RestoredAt != nil {
			return domain.ErrAlreadyRestored
		}
		t := at
		o.RestoredAt = &t
		return nil
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Diario y compras
// ──────────────────────────────────────────────────────────────────────────────

// InventoryMovementRepo diario de stock en memoria.
type InventoryMovementRepo struct{ sc scope }

// NewInventoryMovementRepository construye el repositorio.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{sc: s.root()}
}

func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.sc.write(func(s *state) error {
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *InventoryMovementRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	_ = r.sc.with(func(s *state) error {
		for _, m := range s.movements {
			if m.TransactionID == transactionID {
				c := m
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, nil
}

func (r *InventoryMovementRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var all []*entity.InventoryMovement
	_ = r.sc.with(func(s *state) error {
		for _, m := range s.movements {
			if m.InventoryItemID != itemID {
				continue
			}
			if from != nil && m.Date.Before(*from) {
				continue
			}
			if to != nil && m.Date.After(*to) {
				continue
			}
			c := m
			all = append(all, &c)
		}
		return nil
	})
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if offset >= len(all) {
		return []*entity.InventoryMovement{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// InventoryPurchaseRepo compras en memoria.
type InventoryPurchaseRepo struct{ sc scope }

// NewInventoryPurchaseRepository construye el repositorio.
func NewInventoryPurchaseRepository(s *Store) *InventoryPurchaseRepo {
	return &InventoryPurchaseRepo{sc: s.root()}
}

func (r *InventoryPurchaseRepo) Create(_ context.Context, p *entity.InventoryPurchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.sc.write(func(s *state) error {
		s.purchases = append(s.purchases, *p)
		return nil
	})
}
