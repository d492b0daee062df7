package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatusIssued estado fijo asignado al crear la factura.
const InvoiceStatusIssued = "Emitida"

// Invoice representa la cabecera de una factura emitida.
// Cliente y líneas quedan desnormalizados al momento de la venta: la factura
// es inmutable aunque el cliente o los productos cambien después.
// Invariante: SubTotal = Σ item.Subtotal; Taxes = SubTotal × 0.19; Total = SubTotal + Taxes.
type Invoice struct {
	ID                   string
	ClientID             string
	ClientName           string
	ClientIdentification string
	Date                 time.Time
	SalespersonID        string // usuario autenticado que emite
	SalespersonEmail     string
	SubTotal             decimal.Decimal
	Taxes                decimal.Decimal
	Total                decimal.Decimal
	Status               string
	CreatedAt            time.Time
}

// InvoiceItem representa una línea de la factura con los datos del producto
// congelados al momento de la venta. LineNumber es la posición de la línea
// dentro de la factura (1..N, el orden en que entró al carrito): las líneas
// son una secuencia ordenada y se recuperan siempre en ese orden.
type InvoiceItem struct {
	ID         string
	InvoiceID  string
	LineNumber int
	ProductID  string
	Name       string
	Price      decimal.Decimal
	Quantity   int64
	Subtotal   decimal.Decimal // Price × Quantity
}
