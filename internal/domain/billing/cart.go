// Package billing contiene la lógica pura de facturación: el carrito de una
// factura en construcción y el cálculo de totales. No tiene dependencias de
// persistencia ni de transporte, lo que permite probarla de forma aislada.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// CartItem es una línea del carrito. Stock es la foto del inventario tomada
// cuando el producto entró al carrito; las validaciones de cantidad se hacen
// contra esa foto, no contra el inventario vivo.
type CartItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	Subtotal  decimal.Decimal // Price × Quantity
	Stock     int64           // foto de stock al momento de agregar
}

// Cart acumula las líneas de una factura en construcción.
// Invariantes: a lo sumo una línea por producto; toda cantidad es un entero
// positivo que no supera la foto de stock de su línea.
type Cart struct {
	items []CartItem // orden de inserción
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// AddProduct agrega un producto al carrito con cantidad 1.
// Si el producto no tiene stock retorna ErrOutOfStock y el carrito no cambia.
// Si ya está en el carrito, delega en SetQuantity con cantidad actual + 1.
func (c *Cart) AddProduct(p *entity.Product) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	if p.Stock <= 0 {
		return domain.ErrOutOfStock
	}
	for _, item := range c.items {
		if item.ProductID == p.ID {
			return c.SetQuantity(p.ID, item.Quantity+1)
		}
	}
	c.items = append(c.items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		Subtotal:  p.Price,
		Stock:     p.Stock,
	})
	return nil
}

// SetQuantity fija la cantidad de una línea y recalcula su subtotal.
// Cantidad <= 0 elimina la línea. Si la cantidad supera la foto de stock
// retorna ErrInsufficientStock y deja el estado intacto.
// Un producto que no está en el carrito se ignora.
func (c *Cart) SetQuantity(productID string, quantity int64) error {
	idx := -1
	for i, item := range c.items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	if quantity > c.items[idx].Stock {
		return domain.ErrInsufficientStock
	}
	c.items[idx].Quantity = quantity
	c.items[idx].Subtotal = c.items[idx].Price.Mul(decimal.NewFromInt(quantity))
	return nil
}

// RemoveItem elimina la línea del producto indicado sin condiciones.
func (c *Cart) RemoveItem(productID string) {
	for i, item := range c.items {
		if item.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len devuelve el número de líneas.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
