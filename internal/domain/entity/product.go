package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su inventario.
// Stock solo se modifica por la generación de facturas (descuento) o por
// edición directa del producto (valor absoluto).
type Product struct {
	ID          string
	Name        string
	SKU         string          // código único
	Price       decimal.Decimal // precio de venta, siempre positivo
	Stock       int64           // unidades disponibles, nunca negativo por edición directa
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
