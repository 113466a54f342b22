package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.AddressRepository = (*AddressRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, name, role, active, created_at, updated_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// CountActiveByRole cuenta usuarios activos con el rol dado (ej. cocineros para el tiempo estimado).
func (r *UserRepo) CountActiveByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND active`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// AddressRepo domicilios de entrega.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// GetByID obtiene un domicilio por ID.
func (r *AddressRepo) GetByID(ctx context.Context, id string) (*entity.Address, error) {
	query := `
		SELECT id, user_id, street, number, postal_code, city, active, created_at
		FROM addresses WHERE id = $1`
	var a entity.Address
	var postal, city *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Street, &a.Number, &postal, &city, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	a.PostalCode, a.City = stringOrEmpty(postal), stringOrEmpty(city)
	return &a, nil
}
