package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/facturas-api/internal/application/billing"
	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain"
)

// InvoiceHandler maneja generación, historial y exportación de facturas.
type InvoiceHandler struct {
	generate *billing.GenerateInvoiceUseCase
	query    *billing.InvoiceQueryUseCase
	export   *billing.ExportUseCase
	catalog  *billing.CatalogUseCase
}

// NewInvoiceHandler construye el handler de facturación.
func NewInvoiceHandler(
	generate *billing.GenerateInvoiceUseCase,
	query *billing.InvoiceQueryUseCase,
	export *billing.ExportUseCase,
	catalog *billing.CatalogUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{generate: generate, query: query, export: export, catalog: catalog}
}

// Create godoc
// @Summary      Generar factura
// @Description  Valida el carrito contra el catálogo vivo, persiste la factura y descuenta el stock de cada línea.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "client_id y líneas {product_id, quantity}"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.generate.GenerateInvoice(c.Context(), GetUserID(c), GetUserEmail(c), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// List GET /api/invoices?limit=50&offset=0 — de la más reciente a la más antigua.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.query.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/invoices/:id — factura con todas sus líneas.
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(inv)
}

// GetPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.export.InvoicePDF(c.Context(), id)
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

// GetXML GET /api/invoices/:id/xml — representación XML de la factura.
func (h *InvoiceHandler) GetXML(c *fiber.Ctx) error {
	id := c.Params("id")
	xmlBytes, err := h.export.InvoiceXML(c.Context(), id)
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="factura-%s.xml"`, id))
	return c.Send(xmlBytes)
}

// Catalog GET /api/billing/catalog — clientes y productos para la pantalla
// de nueva factura, siempre frescos desde el store.
func (h *InvoiceHandler) Catalog(c *fiber.Ctx) error {
	cat, err := h.catalog.Load(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cat)
}

func invoiceError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id y al menos una línea con cantidad positiva son requeridos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura, cliente o producto no encontrado"})
	case domain.ErrOutOfStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: "producto sin stock disponible"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la cantidad solicitada supera el stock disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
