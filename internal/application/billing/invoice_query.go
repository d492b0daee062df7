package billing

import (
	"context"
	"time"

	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

// InvoiceQueryUseCase lecturas del historial de facturas (solo presentación).
type InvoiceQueryUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo}
}

// List lista facturas de la más reciente a la más antigua y asigna el
// consecutivo de presentación: con N facturas en total, la más reciente es la
// N. El número no se persiste, se deriva de la posición.
func (uc *InvoiceQueryUseCase) List(ctx context.Context, limit, offset int) ([]*dto.InvoiceSummaryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	total, err := uc.invoiceRepo.Count()
	if err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.ListByDateDesc(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceSummaryResponse, 0, len(list))
	for i, inv := range list {
		out = append(out, &dto.InvoiceSummaryResponse{
			ID:     inv.ID,
			Number: total - offset - i,
			Client: dto.InvoiceClientSnapshot{
				ID:             inv.ClientID,
				Name:           inv.ClientName,
				Identification: inv.ClientIdentification,
			},
			Date:   inv.Date.Format(time.RFC3339),
			Total:  inv.Total,
			Status: inv.Status,
		})
	}
	return out, nil
}

// GetByID devuelve una factura con todas sus líneas.
func (uc *InvoiceQueryUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items, 0), nil
}
