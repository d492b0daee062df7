package billing

import (
	"context"

	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

// ExportUseCase exporta una factura emitida como PDF o XML.
type ExportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdf         InvoicePDFGenerator
	xml         InvoiceXMLBuilder
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(invoiceRepo repository.InvoiceRepository, pdf InvoicePDFGenerator, xml InvoiceXMLBuilder) *ExportUseCase {
	return &ExportUseCase{invoiceRepo: invoiceRepo, pdf: pdf, xml: xml}
}

// InvoicePDF genera el PDF de la factura indicada.
func (uc *ExportUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	inv, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInvoicePDF(ctx, inv, items)
}

// InvoiceXML genera el XML de la factura indicada.
func (uc *ExportUseCase) InvoiceXML(ctx context.Context, id string) ([]byte, error) {
	inv, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return uc.xml.BuildInvoiceXML(inv, items)
}

func (uc *ExportUseCase) load(id string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}
