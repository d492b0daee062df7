package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id"`
	Items    []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea solicitada: producto y cantidad.
type InvoiceItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// InvoiceClientSnapshot copia del cliente embebida en la factura.
type InvoiceClientSnapshot struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification"`
}

// InvoiceItemResponse línea de la factura en respuestas.
type InvoiceItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura completa.
// Number es un consecutivo de presentación: la factura más reciente recibe el
// número más alto; no se persiste.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	Number           int                   `json:"number,omitempty"`
	Client           InvoiceClientSnapshot `json:"client"`
	Items            []InvoiceItemResponse `json:"items"`
	Date             string                `json:"date"`
	SalespersonID    string                `json:"salesperson_id"`
	SalespersonEmail string                `json:"salesperson_email"`
	SubTotal         decimal.Decimal       `json:"sub_total"`
	Taxes            decimal.Decimal       `json:"taxes"`
	Total            decimal.Decimal       `json:"total"`
	Status           string                `json:"status"`
}

// InvoiceSummaryResponse elemento del listado de facturas.
type InvoiceSummaryResponse struct {
	ID     string                `json:"id"`
	Number int                   `json:"number"`
	Client InvoiceClientSnapshot `json:"client"`
	Date   string                `json:"date"`
	Total  decimal.Decimal       `json:"total"`
	Status string                `json:"status"`
}

// CatalogResponse clientes y productos para la pantalla de nueva factura.
// Se recarga completo en cada foco de la vista: sin política de caché.
type CatalogResponse struct {
	Clients  []*ClientResponse  `json:"clients"`
	Products []*ProductResponse `json:"products"`
}
