package entity

import "time"

// Client representa un cliente del negocio (facturación).
// Las facturas guardan una copia desnormalizada de sus datos, por lo que
// editar o eliminar un cliente nunca altera facturas ya emitidas.
type Client struct {
	ID             string
	Name           string
	Identification string // NIT o Cédula
	Phone          string
	Email          string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
