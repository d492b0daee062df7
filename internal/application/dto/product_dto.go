package dto

import "github.com/shopspring/decimal"

// SaveProductRequest body para POST /api/products y PUT /api/products/:id.
// price debe ser positivo y stock no negativo; editar un producto fija el
// stock en valor absoluto (el descuento lo hace solo la facturación).
type SaveProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description,omitempty"`
}
