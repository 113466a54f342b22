package entity

import "time"

// Address domicilio de entrega de un usuario.
type Address struct {
	ID         string
	UserID     string
	Street     string
	Number     string
	PostalCode string
	City       string
	Active     bool
	CreatedAt  time.Time
}
