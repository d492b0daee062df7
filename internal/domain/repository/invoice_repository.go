package repository

import (
	"context"

	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Create persiste cabecera y líneas como un solo documento atómico: o queda
// la factura completa o no queda nada. El descuento de stock NO hace parte
// de esa atomicidad (ver caso de uso GenerateInvoice).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// ListByDateDesc lista facturas ordenadas por fecha de emisión descendente.
	ListByDateDesc(limit, offset int) ([]*entity.Invoice, error)
	Count() (int, error)
}
