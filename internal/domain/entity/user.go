package entity

import "time"

// User representa un usuario que puede iniciar sesión y emitir facturas.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
