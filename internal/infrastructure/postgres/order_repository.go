package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/buen-sabor-api/internal/domain"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, address_id, status, delivery_method, payment_method, total, discount, final_total,
	estimated_time, payment_id, is_paid, notes, restored_at, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y todas las líneas. Llamar dentro de una tx para que sea atómico.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, nullIfEmpty(o.AddressID), o.Status, o.DeliveryMethod, o.PaymentMethod,
		o.Total, o.Discount, o.FinalTotal, o.EstimatedTime, nullIfEmpty(o.PaymentID), o.IsPaid,
		nullIfEmpty(o.Notes), o.RestoredAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order %s already exists: %w", o.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Details {
		d := &o.Details[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.OrderID = o.ID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO order_details (id, order_id, manufactured_item_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.OrderID, d.ManufacturedItemID, d.Quantity, d.UnitPrice, d.Subtotal); err != nil {
			return fmt.Errorf("insert order detail: %w", err)
		}
	}
	for i := range o.InventoryDetails {
		d := &o.InventoryDetails[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.OrderID = o.ID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO order_inventory_details (id, order_id, inventory_item_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.OrderID, d.InventoryItemID, d.Quantity, d.UnitPrice, d.Subtotal); err != nil {
			return fmt.Errorf("insert order inventory detail: %w", err)
		}
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var addressID, paymentID, notes *string
	if err := row.Scan(&o.ID, &o.UserID, &addressID, &o.Status, &o.DeliveryMethod, &o.PaymentMethod,
		&o.Total, &o.Discount, &o.FinalTotal, &o.EstimatedTime, &paymentID, &o.IsPaid, &notes,
		&o.RestoredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.AddressID = stringOrEmpty(addressID)
	o.PaymentID = stringOrEmpty(paymentID)
	o.Notes = stringOrEmpty(notes)
	return &o, nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate bloquea la cabecera del pedido (SELECT FOR UPDATE). No carga líneas.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, o *entity.Order) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, manufactured_item_id, quantity, unit_price, subtotal
		FROM order_details WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("get order details: %w", err)
	}
	for rows.Next() {
		var d entity.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ManufacturedItemID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			rows.Close()
			return fmt.Errorf("scan order detail: %w", err)
		}
		o.Details = append(o.Details, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, order_id, inventory_item_id, quantity, unit_price, subtotal
		FROM order_inventory_details WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("get order inventory details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.OrderInventoryDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.InventoryItemID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return fmt.Errorf("scan order inventory detail: %w", err)
		}
		o.InventoryDetails = append(o.InventoryDetails, d)
	}
	return rows.Err()
}

// ListByStatus pedidos en un estado, más antiguos primero, con sus líneas.
func (r *OrderRepo) ListByStatus(ctx context.Context, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+`
		FROM orders WHERE status = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Las líneas se leen después de cerrar rows: una tx de pgx no admite dos consultas abiertas.
	for _, o := range list {
		if err := r.loadLines(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SumEstimatedTimeByStatus suma los minutos estimados de los pedidos en ese estado.
func (r *OrderRepo) SumEstimatedTimeByStatus(ctx context.Context, status entity.OrderStatus) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(estimated_time), 0) FROM orders WHERE status = $1`, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum estimated time: %w", err)
	}
	return total, nil
}

// UpdateStatus fija el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireOneRow(tag)
}

// UpdateEstimatedTime fija los minutos estimados.
func (r *OrderRepo) UpdateEstimatedTime(ctx context.Context, id string, minutes int) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET estimated_time = $2, updated_at = now() WHERE id = $1`, id, minutes)
	if err != nil {
		return fmt.Errorf("update estimated time: %w", err)
	}
	return requireOneRow(tag)
}

// UpdatePayment fija payment_id e is_paid con un UPDATE condicional sobre is_paid = false,
// así un cobro confirmado no vuelve a quedar pendiente por una escritura concurrente.
func (r *OrderRepo) UpdatePayment(ctx context.Context, id, paymentID string, isPaid bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET payment_id = $2, is_paid = $3, updated_at = now() WHERE id = $1 AND is_paid = false`,
		id, nullIfEmpty(paymentID), isPaid)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// MarkRestored fija restored_at con un UPDATE condicional; ninguna fila afectada significa
// pedido inexistente o ya restituido.
func (r *OrderRepo) MarkRestored(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET restored_at = $2, updated_at = now() WHERE id = $1 AND restored_at IS NULL`,
		id, at)
	if err != nil {
		return fmt.Errorf("mark order restored: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyRestored
}

// exists distingue "pedido inexistente" de "condición no cumplida" tras un UPDATE sin filas.
func (r *OrderRepo) exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check order: %w", err)
	}
	return ok, nil
}
