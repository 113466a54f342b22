package repository

import (
	"context"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// AddressRepository lectura de domicilios.
type AddressRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Address, error)
}
