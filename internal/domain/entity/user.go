package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "administrador"
	RoleCashier  = "cajero"
	RoleCook     = "cocinero"
	RoleDelivery = "delivery"
	RoleClient   = "cliente"
)

// User usuario del sistema. La autenticación vive fuera de este servicio; aquí solo importan rol y estado.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
