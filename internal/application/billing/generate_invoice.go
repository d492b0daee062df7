// Package billing implementa los casos de uso de facturación: generar una
// factura descontando inventario, consultar el historial y cargar el catálogo
// de la pantalla de nueva factura.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain"
	domainbilling "github.com/dmorales/facturas-api/internal/domain/billing"
	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

// GenerateInvoiceUseCase crea una factura y descuenta el stock de cada línea.
//
// La factura (cabecera + líneas) se guarda como un solo documento atómico.
// Los descuentos de stock se emiten DESPUÉS y por separado, uno por línea, en
// paralelo y sin transacción que los cubra junto con la factura: si alguno
// falla la factura ya quedó persistida y los descuentos aplicados no se
// revierten. Esa brecha de consistencia es un comportamiento asumido del
// modelo; el caso de uso la reporta como error y la deja en el log, nunca
// la oculta.
type GenerateInvoiceUseCase struct {
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	log         zerolog.Logger
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	log zerolog.Logger,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		log:         log,
	}
}

// GenerateInvoice valida la solicitud, reconstruye el carrito contra el
// catálogo vivo, persiste la factura y descuenta el inventario.
func (uc *GenerateInvoiceUseCase) GenerateInvoice(ctx context.Context, userID, userEmail string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	// Cantidades por producto: líneas repetidas de la solicitud se suman,
	// el carrito garantiza a lo sumo una línea por producto.
	quantities := make(map[string]int64, len(in.Items))
	order := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := quantities[item.ProductID]; !ok {
			order = append(order, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	// Reconstruir el carrito con las reglas de stock del dominio: agregar
	// captura la foto de stock y fijar cantidad valida contra esa foto.
	cart := domainbilling.NewCart()
	for _, productID := range order {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if err := cart.AddProduct(product); err != nil {
			return nil, err
		}
		if err := cart.SetQuantity(productID, quantities[productID]); err != nil {
			return nil, err
		}
	}

	cartItems := cart.Items()
	totals := domainbilling.CalculateTotals(cartItems)
	now := time.Now()

	inv := &entity.Invoice{
		ID:                   uuid.New().String(),
		ClientID:             client.ID,
		ClientName:           client.Name,
		ClientIdentification: client.Identification,
		Date:                 now,
		SalespersonID:        userID,
		SalespersonEmail:     userEmail,
		SubTotal:             totals.SubTotal,
		Taxes:                totals.Taxes,
		Total:                totals.Total,
		Status:               entity.InvoiceStatusIssued,
		CreatedAt:            now,
	}
	items := make([]*entity.InvoiceItem, 0, len(cartItems))
	for i, ci := range cartItems {
		items = append(items, &entity.InvoiceItem{
			ID:         uuid.New().String(),
			InvoiceID:  inv.ID,
			LineNumber: i + 1,
			ProductID:  ci.ProductID,
			Name:       ci.Name,
			Price:      ci.Price,
			Quantity:   ci.Quantity,
			Subtotal:   ci.Subtotal,
		})
	}

	// 1) Persistir la factura como documento único. Si falla, no se toca el
	// inventario y el carrito del cliente queda intacto para reintentar.
	if err := uc.invoiceRepo.Create(ctx, inv, items); err != nil {
		return nil, err
	}

	// 2) Descontar stock: un comando independiente por línea, en paralelo,
	// esperando a que todos terminen. El fallo de una línea no cancela las
	// hermanas: cada descuento se resuelve por su cuenta. No hay rollback de
	// la factura ni de los descuentos ya aplicados (brecha de commit parcial
	// asumida).
	var g errgroup.Group
	for _, item := range items {
		g.Go(func() error {
			return uc.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Warn().
			Err(err).
			Str("invoice_id", inv.ID).
			Msg("factura guardada pero con descuentos de stock incompletos")
		return nil, err
	}

	return toInvoiceResponse(inv, items, 0), nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem, number int) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:     inv.ID,
		Number: number,
		Client: dto.InvoiceClientSnapshot{
			ID:             inv.ClientID,
			Name:           inv.ClientName,
			Identification: inv.ClientIdentification,
		},
		Items:            make([]dto.InvoiceItemResponse, 0, len(items)),
		Date:             inv.Date.Format(time.RFC3339),
		SalespersonID:    inv.SalespersonID,
		SalespersonEmail: inv.SalespersonEmail,
		SubTotal:         inv.SubTotal,
		Taxes:            inv.Taxes,
		Total:            inv.Total,
		Status:           inv.Status,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
