package billing

import (
	"context"

	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error)
}

// InvoiceXMLBuilder genera la representación XML de una factura para
// importación contable.
type InvoiceXMLBuilder interface {
	BuildInvoiceXML(invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error)
}
