package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios (DIP).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	CountActiveByRole(ctx context.Context, role string) (int, error)
}
